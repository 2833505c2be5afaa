package domain

// Advice es el modelo combinado que consume la interfaz: productos
// ordenados por elegibilidad y fallas explicadas.
type Advice struct {
	SessionID   string               `json:"session_id,omitempty"`
	RiskProfile RiskProfile          `json:"risk_profile"`
	RiskTier    string               `json:"risk_tier"`
	Products    []ProductOffer       `json:"products"`
	Failures    []FailureExplanation `json:"failures"`
}

// HasProducts indica si al menos un producto aplicó.
func (a Advice) HasProducts() bool {
	return len(a.Products) > 0
}
