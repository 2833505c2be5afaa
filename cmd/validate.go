package cmd

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"credit-advisor/domain"
	"credit-advisor/format"
	"credit-advisor/service"
)

//nolint:gochecknoglobals // Cobra boilerplate
var validateCmd = &cobra.Command{
	Use:   "validate FIELD VALUE",
	Short: "Valida un campo del solicitante",
	Long: `Compara un valor con los límites del campo. VALUE acepta los formatos
que se escriben en el formulario, p. ej. "1.300.000" o "$ 2.500.000"; un
único punto seguido de tres dígitos se lee como separador de miles.

Campos: age, monthly_income, credit_score, debt_to_income_ratio,
max_days_delinquency, recent_inquiries, down_payment_percentage,
payment_to_income_ratio, historical_compliance.`,
	Example: `  credit-advisor validate age 17
  credit-advisor validate monthly_income "$ 1.299.999"`,
	Args: cobra.ExactArgs(2),
	RunE: runValidate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) (err error) {
	field := domain.FieldID(args[0])
	value := format.ParseNumber(args[1])

	if !slices.Contains(service.ValidatedFields(), field) {
		cmd.PrintErrf("%s no tiene límites definidos; campos con regla: %v\n", field, service.ValidatedFields())
	}

	res := service.ValidateField(field, value)
	if res.IsValid {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: válido\n", field)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", field, res.Message)
	err = errors.Errorf("el campo %s no es válido", field)
	return err
}
