package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/puntofijo/foundation/core/log"
	"github.com/msto63/puntofijo/pkg/core/config"
	"github.com/msto63/puntofijo/pkg/core/logging"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string

	appConfig *config.Config
	appLogger *mdwlog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "puntofijo",
	Short: "puntofijo - Iteración de punto fijo",
	Long: `puntofijo resuelve ecuaciones f(x) = 0 mediante la iteración de
punto fijo x(n+1) = g(x(n)).

Comandos:
  run        - Ejecuta una iteración y muestra la tabla de resultados
  transform  - Muestra la conversión de grados a radianes de una expresión
  derive     - Estima g'(x) por diferencias centrales
  plot       - Dibuja el diagrama de telaraña
  batch      - Ejecuta un conjunto de problemas desde YAML
  step       - Recorre una iteración paso a paso (interactivo)
  version    - Muestra la versión`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Archivo de configuración TOML o YAML (default: $"+config.EnvConfigPath+" o ./puntofijo.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Salida detallada (nivel debug)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Formato de log: text, json o console")
}

// setup loads the configuration and installs the logger
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return fmt.Errorf("configuración: %w", err)
	}

	level := appConfig.General.LogLevel
	if verbose {
		level = "debug"
	}
	format := appConfig.General.LogFormat
	if logFormat != "" {
		if _, err := mdwlog.ParseFormat(logFormat); err != nil {
			return fmt.Errorf("--log-format: %w", err)
		}
		format = logFormat
	}

	appLogger = logging.NewLogger(logging.LoggerConfig{
		ServiceName: appConfig.General.Name,
		Level:       level,
		Format:      format,
		Output:      os.Stderr,
	})
	mdwlog.SetDefault(appLogger)

	appLogger.Debug("configuration loaded", mdwlog.Fields{
		"command":   cmd.Name(),
		"log_level": level,
	})
	return nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
