package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"credit-advisor/service"
)

//nolint:gochecknoglobals // Cobra boilerplate
var recommendFile string

//nolint:gochecknoglobals // Cobra boilerplate
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recomienda productos a partir de una evaluación guardada",
	Long: `Lee un documento JSON con facts_detected, input, risk_profile y
failures_detected (tal como lo devuelve el motor de inferencia) e imprime
las ofertas de productos ordenadas junto con la explicación de las fallas.

Use --file - para leer de la entrada estándar.`,
	Example: `  credit-advisor recommend --file evaluation.json
  cat evaluation.json | credit-advisor recommend --file -`,
	RunE: runRecommend,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	recommendCmd.Flags().StringVarP(&recommendFile, "file", "f", "", "archivo JSON con la salida del motor (- para entrada estándar)")
	_ = recommendCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) (err error) {
	var r io.Reader
	if recommendFile == "-" {
		r = cmd.InOrStdin()
	} else {
		f, openErr := os.Open(recommendFile)
		if openErr != nil {
			err = errors.Wrapf(openErr, "no se pudo abrir %s", recommendFile)
			return err
		}
		defer f.Close()
		r = f
	}

	var req service.AdviceRequest
	err = json.NewDecoder(r).Decode(&req)
	if err != nil {
		err = errors.Wrap(err, "salida del motor inválida")
		return err
	}

	advice := service.Advise(req)
	if getVerbose() {
		cmd.PrintErrf("%d producto(s), %d falla(s)\n", len(advice.Products), len(advice.Failures))
	}

	return printJSON(cmd.OutOrStdout(), advice)
}
