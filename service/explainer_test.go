package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExplain_AgeOutOfRange(t *testing.T) {

	exp := Explain(FailureAgeOutOfRange)

	assert.Equal(t, FailureAgeOutOfRange, exp.Code)
	assert.Contains(t, exp.Message, "(18 a 75 años)")
	assert.NotEqual(t, defaultRemediation, exp.Remediation)
}

func TestExplain_EveryKnownCodeHasBothTexts(t *testing.T) {

	codes := []string{
		FailureAgeOutOfRange,
		FailureInsufficientIncome,
		FailureInsufficientScore,
		FailureExcessiveDebt,
		FailureRecentDelinquency,
		FailureHighRiskActivity,
		FailurePepWithoutApproval,
		FailureMultipleInquiries,
		FailureIncompleteDocuments,
		FailureNegativeReferences,
		FailureInsufficientGuaranty,
		FailureNegativeHistory,
		FailurePaymentCapacity,
		FailureEmploymentStability,
	}

	assert.Len(t, failureMessages, len(codes))
	assert.Len(t, failureRemediations, len(codes))

	for _, code := range codes {
		assert.True(t, KnownFailureCode(code), code)
		assert.Contains(t, failureRemediations, code)
	}
}

func TestExplain_UnknownCodeIsHumanized(t *testing.T) {

	exp := Explain("UNKNOWN_CODE")

	assert.Equal(t, "UNKNOWN_CODE", exp.Code)
	assert.Equal(t, "Unknown Code", exp.Message)
	assert.Equal(t, defaultRemediation, exp.Remediation)
	assert.False(t, KnownFailureCode("UNKNOWN_CODE"))
}

func TestExplain_EmptyCode(t *testing.T) {

	exp := Explain("")

	assert.Equal(t, "Falla no especificada", exp.Message)
	assert.Equal(t, defaultRemediation, exp.Remediation)
}

func TestExplainAll_KeepsOrder(t *testing.T) {

	out := ExplainAll([]string{FailureRecentDelinquency, "OTRA_FALLA", FailureAgeOutOfRange})

	if assert.Len(t, out, 3) {
		assert.Equal(t, FailureRecentDelinquency, out[0].Code)
		assert.Equal(t, "OTRA_FALLA", out[1].Code)
		assert.Equal(t, FailureAgeOutOfRange, out[2].Code)
	}

	assert.NotNil(t, ExplainAll(nil))
}
