package domain

// FieldID identifica un campo numérico del formulario.
type FieldID string

const (
	FieldAge                   FieldID = "age"
	FieldMonthlyIncome         FieldID = "monthly_income"
	FieldCreditScore           FieldID = "credit_score"
	FieldDebtToIncomeRatio     FieldID = "debt_to_income_ratio"
	FieldMaxDaysDelinquency    FieldID = "max_days_delinquency"
	FieldRecentInquiries       FieldID = "recent_inquiries"
	FieldDownPaymentPercentage FieldID = "down_payment_percentage"
	FieldPaymentToIncomeRatio  FieldID = "payment_to_income_ratio"
	FieldHistoricalCompliance  FieldID = "historical_compliance"
)

type ValidationResult struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message,omitempty"`
}
