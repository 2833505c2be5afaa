package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"credit-advisor/service"
)

//nolint:gochecknoglobals // Cobra boilerplate
var explainJSON bool

//nolint:gochecknoglobals // Cobra boilerplate
var explainCmd = &cobra.Command{
	Use:     "explain CODE...",
	Short:   "Explica los códigos de falla emitidos por el motor de inferencia",
	Example: `  credit-advisor explain FALLA_EDAD_FUERA_RANGO FALLA_MORA_RECIENTE`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runExplain,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	explainCmd.Flags().BoolVar(&explainJSON, "json", false, "imprime JSON en lugar de texto")
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, args []string) error {
	explanations := service.ExplainAll(args)
	if explainJSON {
		return printJSON(cmd.OutOrStdout(), explanations)
	}

	out := cmd.OutOrStdout()
	for _, e := range explanations {
		fmt.Fprintf(out, "%s\n  %s\n  → %s\n", e.Code, e.Message, e.Remediation)
	}
	return nil
}
