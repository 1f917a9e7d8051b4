// ============================================================================
// puntofijo - Iteración de punto fijo
// ============================================================================
//
// Package:     cmd
// Description: CLI command for the step-by-step TUI
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/puntofijo/internal/tui/stepper"
)

var (
	stepFlags iterationFlags
	stepF     string
)

var stepCmd = &cobra.Command{
	Use:     "step",
	Aliases: []string{"stepper", "paso"},
	Short:   "Recorre una iteración paso a paso",
	Long: `Inicia el visor interactivo paso a paso.

El visor muestra la tabla de iteraciones junto a la explicación de cada
paso: la transformación f(x) → g(x), la condición de convergencia, cada
iteración y el resultado final.

Atajos de teclado:
  ← / →       Paso anterior / siguiente
  g / G       Primer / último paso
  ↑ / ↓       Desplazar la explicación
  q / Ctrl+C  Salir`,
	Args: cobra.NoArgs,
	RunE: runStep,
}

func init() {
	rootCmd.AddCommand(stepCmd)

	stepFlags.register(stepCmd)
	stepCmd.Flags().StringVar(&stepF, "f", "", "Ecuación original f(x) = 0 (solo informativa)")
}

func runStep(cmd *cobra.Command, args []string) error {
	opts, err := stepFlags.options(cmd)
	if err != nil {
		return err
	}
	fmtOpts, err := stepFlags.formatOptions()
	if err != nil {
		return err
	}

	return stepper.Run(stepper.Config{
		Options: opts,
		F:       stepF,
		Format:  fmtOpts,
		Engine:  engine(),
	})
}
