package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-advisor/domain"
)

func TestEstimateInstallment_WithInterest(t *testing.T) {

	product := domain.ProductCandidate{
		MaxAmount:    decimal.NewFromInt(10_000_000),
		InterestRate: 1.0,
		TermMonths:   12,
	}

	cuota, ok := EstimateInstallment(product, 0)

	require.True(t, ok)
	assert.InDelta(t, 888_487.89, cuota.InexactFloat64(), 0.01)
}

func TestEstimateInstallment_ZeroInterest(t *testing.T) {

	product := domain.ProductCandidate{
		MaxAmount:  decimal.NewFromInt(5_000_000),
		TermMonths: 12,
	}

	cuota, ok := EstimateInstallment(product, 1200)

	require.True(t, ok)
	assert.Equal(t, 100.0, cuota.InexactFloat64())
}

func TestEstimateInstallment_RequestedAboveCap(t *testing.T) {

	product := domain.ProductCandidate{
		MaxAmount:    decimal.NewFromInt(60_000_000),
		InterestRate: 1.2,
		TermMonths:   240,
	}

	capped, ok := EstimateInstallment(product, 500_000_000)
	require.True(t, ok)

	atCap, _ := EstimateInstallment(product, 60_000_000)
	assert.True(t, capped.Equal(atCap))
	assert.InDelta(t, 763_606.01, capped.InexactFloat64(), 0.01)
}

func TestEstimateInstallment_NotApplicable(t *testing.T) {

	card := domain.ProductCandidate{MaxAmount: decimal.NewFromInt(6_000_000), InterestRate: 2.8}
	_, ok := EstimateInstallment(card, 1_000_000)
	assert.False(t, ok)

	empty := domain.ProductCandidate{MaxAmount: decimal.Zero, InterestRate: 2.8, TermMonths: 36}
	_, ok = EstimateInstallment(empty, 0)
	assert.False(t, ok)
}

func TestRoundTo2Decimals(t *testing.T) {

	assert.Equal(t, 10.13, roundTo2Decimals(10.125))
	assert.Equal(t, 3.0, roundTo2Decimals(2.999))
}
