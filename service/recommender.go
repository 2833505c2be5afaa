package service

import (
	"sort"

	"credit-advisor/domain"
)

// Recommend evalúa todos los productos y devuelve los candidatos ordenados
// por elegibilidad descendente. Los empates conservan el orden de evaluación.
// Una lista vacía significa que ningún producto aplicó.
func Recommend(
	facts domain.FactSet,
	input domain.AppInputData,
	profile domain.RiskProfile,
) []domain.ProductCandidate {

	c := newEvalContext(facts, input, profile)

	candidates := evaluateRules(primaryRules, c)
	if len(candidates) == 0 {
		candidates = evaluateRules(fallbackRules, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Eligibility > candidates[j].Eligibility
	})

	return candidates
}

func evaluateRules(rules []productRule, c evalContext) []domain.ProductCandidate {
	candidates := []domain.ProductCandidate{}
	for _, rule := range rules {
		if candidate, ok := rule.evaluate(c); ok {
			candidates = append(candidates, candidate)
		}
	}
	return candidates
}
