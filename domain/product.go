package domain

import "github.com/shopspring/decimal"

// ProductCandidate es un producto de crédito elegible para el solicitante.
// Se crea en cada evaluación y no se modifica después.
type ProductCandidate struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	MaxAmount    decimal.Decimal `json:"max_amount"`
	InterestRate float64         `json:"interest_rate"`
	TermMonths   int             `json:"term_months"` // 0 = rotativo
	Conditions   []string        `json:"conditions"`
	Eligibility  int             `json:"eligibility"`
}

// IsRevolving indica si el producto no tiene plazo fijo.
func (p ProductCandidate) IsRevolving() bool {
	return p.TermMonths == 0
}

// ProductOffer es la vista de un candidato lista para renderizar.
type ProductOffer struct {
	ProductCandidate
	FormattedMaxAmount   string           `json:"formatted_max_amount"`
	FormattedRate        string           `json:"formatted_rate"`
	EstimatedInstallment *decimal.Decimal `json:"estimated_installment,omitempty"`
	FormattedInstallment string           `json:"formatted_installment,omitempty"`
}
