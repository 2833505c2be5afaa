package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-advisor/domain"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestExplainCommand(t *testing.T) {

	out, err := run(t, "", "explain", "FALLA_EDAD_FUERA_RANGO", "SIN_TEXTO")

	require.NoError(t, err)
	assert.Contains(t, out, "FALLA_EDAD_FUERA_RANGO")
	assert.Contains(t, out, "18 a 75 años")
	assert.Contains(t, out, "Sin Texto")
}

func TestExplainCommand_JSON(t *testing.T) {

	out, err := run(t, "", "explain", "--json", "FALLA_MORA_RECIENTE")
	explainJSON = false

	require.NoError(t, err)
	var got []domain.FailureExplanation
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "FALLA_MORA_RECIENTE", got[0].Code)
}

func TestValidateCommand(t *testing.T) {

	out, err := run(t, "", "validate", "monthly_income", "$ 1.300.000")
	require.NoError(t, err)
	assert.Contains(t, out, "válido")

	out, err = run(t, "", "validate", "monthly_income", "1.299.999")
	require.Error(t, err)
	assert.Contains(t, out, "SMMLV")

	_, err = run(t, "", "validate", "age")
	assert.Error(t, err)
}

func TestValidateCommand_ThousandsSeparator(t *testing.T) {

	// "$ 1.300" son mil trescientos pesos, no 1,3.
	out, err := run(t, "", "validate", "monthly_income", "$ 1.300")
	require.Error(t, err)
	assert.Contains(t, out, "SMMLV")

	out, err = run(t, "", "validate", "age", "18.500")
	require.Error(t, err)
	assert.Contains(t, out, "edad")
}

const engineOutput = `{
	"session_id": "cli",
	"facts_detected": ["FACT_FINALIDAD_VIVIENDA", "FACT_INGRESOS_MIN_4_SMMLV", "FACT_CUOTA_MAX_30_INGRESOS"],
	"input": {"monthly_income": 4000000},
	"risk_profile": "RIESGO_BAJO",
	"failures_detected": []
}`

func TestRecommendCommand_File(t *testing.T) {

	path := filepath.Join(t.TempDir(), "evaluation.json")
	require.NoError(t, os.WriteFile(path, []byte(engineOutput), 0o600))

	out, err := run(t, "", "recommend", "--file", path)

	require.NoError(t, err)
	var advice domain.Advice
	require.NoError(t, json.Unmarshal([]byte(out), &advice))
	require.Len(t, advice.Products, 1)
	assert.Equal(t, 95, advice.Products[0].Eligibility)
}

func TestRecommendCommand_Stdin(t *testing.T) {

	out, err := run(t, engineOutput, "recommend", "--file", "-")

	require.NoError(t, err)
	assert.Contains(t, out, "credito-vivienda")
}

func TestRecommendCommand_Errors(t *testing.T) {

	_, err := run(t, "", "recommend", "--file", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = run(t, "{not json", "recommend", "--file", "-")
	assert.Error(t, err)
}

func TestHelpIsSpanish(t *testing.T) {

	for _, c := range []string{"serve", "recommend", "explain", "validate"} {
		sub, _, err := rootCmd.Find([]string{c})
		require.NoError(t, err)
		t.Cleanup(func() { _ = sub.Flags().Set("help", "false") })

		out, err := run(t, "", c, "--help")
		require.NoError(t, err)
		for _, english := range []string{"Run the", "Validate a", "Explain failure", "Recommend products", "overrides", "print JSON", "for stdin"} {
			assert.NotContains(t, out, english, "help de %s", c)
		}
	}

	out, err := run(t, "", "validate", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Valida un campo del solicitante")
	assert.Contains(t, out, "separador de miles")
}
