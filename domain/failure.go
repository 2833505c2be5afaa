package domain

// FailureExplanation traduce un código de falla del motor a un diagnóstico
// legible y una acción de remediación.
type FailureExplanation struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Remediation string `json:"remediation"`
}
