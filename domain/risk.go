package domain

import "strings"

// RiskProfile es la etiqueta de riesgo entregada por el motor, p. ej.
// "RIESGO_BAJO" o simplemente "BAJO".
type RiskProfile string

// RiskTier es el nivel de riesgo resuelto a partir del perfil y los hechos.
type RiskTier int

const (
	RiskUnknown RiskTier = iota
	RiskLow
	RiskMedium
	RiskHigh
)

func (t RiskTier) String() string {
	switch t {
	case RiskLow:
		return "BAJO"
	case RiskMedium:
		return "MEDIO"
	case RiskHigh:
		return "ALTO"
	default:
		return "DESCONOCIDO"
	}
}

// ResolveRiskTier determina el nivel de riesgo. Manda el perfil: se busca
// BAJO, MEDIO y ALTO (en ese orden) como subcadena, distinguiendo
// mayúsculas. Los hechos de perfil solo se consultan cuando el perfil no
// nombra ningún nivel.
func ResolveRiskTier(facts FactSet, profile RiskProfile) RiskTier {
	p := string(profile)
	switch {
	case strings.Contains(p, "BAJO"):
		return RiskLow
	case strings.Contains(p, "MEDIO"):
		return RiskMedium
	case strings.Contains(p, "ALTO"):
		return RiskHigh
	}

	switch {
	case facts.Has(FactPerfilRiesgoBajo):
		return RiskLow
	case facts.Has(FactPerfilRiesgoMedio):
		return RiskMedium
	case facts.Has(FactPerfilRiesgoAlto):
		return RiskHigh
	}
	return RiskUnknown
}
