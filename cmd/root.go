package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "credit-advisor",
	Short: "Recomendación de productos de crédito y explicación de fallas",
	Long: `credit-advisor toma los hechos detectados por el motor de inferencia,
el registro del solicitante y su perfil de riesgo, y calcula la lista
ordenada de productos de crédito elegibles junto con la explicación de
cada falla reportada.`,
	SilenceUsage: true,
}

// Execute ejecuta el comando raíz.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "salida detallada")
}

// getVerbose devuelve el valor de la bandera --verbose.
func getVerbose() (result bool) {
	result = verbose
	return result
}
