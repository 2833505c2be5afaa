package service

import (
	"math"

	"github.com/shopspring/decimal"

	"credit-advisor/domain"
)

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// EstimateInstallment calcula la cuota fija mensual (sistema francés) para
// el monto solicitado, limitado al cupo máximo del producto. La tasa del
// producto ya es mensual. Devuelve false para productos rotativos o cuando
// no hay monto que financiar.
func EstimateInstallment(
	product domain.ProductCandidate,
	requested float64,
) (decimal.Decimal, bool) {

	if product.IsRevolving() || product.TermMonths > MaxInstallmentTermMonth {
		return decimal.Zero, false
	}

	principal := product.MaxAmount
	if req := sanitize(requested); req > 0 {
		principal = decimal.Min(principal, decimal.NewFromFloat(req))
	}
	if !principal.IsPositive() {
		return decimal.Zero, false
	}

	amount := principal.InexactFloat64()
	n := float64(product.TermMonths)
	rate := product.InterestRate / 100

	var cuota float64
	if rate <= 0 {
		cuota = amount / n
	} else {
		cuota = amount * (rate / (1 - math.Pow(1+rate, -n)))
	}

	return decimal.NewFromFloat(roundTo2Decimals(cuota)), true
}
