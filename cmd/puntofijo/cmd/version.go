package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/puntofijo/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Muestra la versión",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
		if verbose {
			for _, c := range []string{"engine", "mathexpr", "report", "cobweb", "stepper"} {
				fmt.Printf("  %-9s %s\n", c, version.ComponentVersion(c))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
