package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/puntofijo/internal/angle"
	"github.com/msto63/puntofijo/internal/iteration"
)

var transformUnit string

var transformCmd = &cobra.Command{
	Use:   "transform <expresión>",
	Short: "Muestra la expresión que se evalúa para una unidad angular",
	Long: `Reescribe los argumentos de las funciones trigonométricas para que
una expresión escrita en grados se evalúe en radianes.

Ejemplos:
  puntofijo transform "sin(2*x) + cos(x)"
  puntofijo transform --unit radians "tan(x)"`,
	Args: cobra.ExactArgs(1),
	RunE: runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)

	transformCmd.Flags().StringVar(&transformUnit, "unit", "degrees", "Unidad angular: radians|degrees")
}

func runTransform(cmd *cobra.Command, args []string) error {
	unit, err := angle.ParseUnit(transformUnit)
	if err != nil {
		return err
	}

	_, transformed, err := iteration.Compile(args[0], unit)
	fmt.Println(transformed)
	if err != nil {
		return fmt.Errorf("expresión inválida: %w", err)
	}
	return nil
}
