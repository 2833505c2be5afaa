package service

import (
	"credit-advisor/domain"
	"credit-advisor/format"
)

// AdviceRequest reúne las salidas del motor que alimentan la recomendación.
type AdviceRequest struct {
	SessionID        string              `json:"session_id,omitempty"`
	FactsDetected    []string            `json:"facts_detected"`
	Input            domain.AppInputData `json:"input"`
	RiskProfile      string              `json:"risk_profile"`
	FailuresDetected []string            `json:"failures_detected"`
}

// Advise es la llamada única que arma el modelo de presentación: productos
// ordenados con montos formateados y fallas explicadas.
func Advise(req AdviceRequest) domain.Advice {
	facts := domain.NewFactSet(req.FactsDetected...)
	profile := domain.RiskProfile(req.RiskProfile)

	candidates := Recommend(facts, req.Input, profile)

	offers := make([]domain.ProductOffer, 0, len(candidates))
	for _, c := range candidates {
		offers = append(offers, newOffer(c, req.Input.RequestedAmount))
	}

	return domain.Advice{
		SessionID:   req.SessionID,
		RiskProfile: profile,
		RiskTier:    domain.ResolveRiskTier(facts, profile).String(),
		Products:    offers,
		Failures:    ExplainAll(req.FailuresDetected),
	}
}

func newOffer(c domain.ProductCandidate, requested float64) domain.ProductOffer {
	offer := domain.ProductOffer{
		ProductCandidate:   c,
		FormattedMaxAmount: format.FormatCurrency(c.MaxAmount),
		FormattedRate:      format.FormatPercent(c.InterestRate) + " M.V.",
	}
	if installment, ok := EstimateInstallment(c, requested); ok {
		offer.EstimatedInstallment = &installment
		offer.FormattedInstallment = format.FormatCurrency(installment.Round(0))
	}
	return offer
}
