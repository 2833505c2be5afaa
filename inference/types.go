package inference

import (
	"time"

	"credit-advisor/domain"
)

// EvaluationRequest es el cuerpo de POST /inference-engine/evaluate. Los
// campos opcionales son punteros para omitirlos cuando no se informan; el
// motor no acepta null.
type EvaluationRequest struct {
	SessionID string `json:"session_id,omitempty"`

	Age              float64 `json:"age"`
	MonthlyIncome    float64 `json:"monthly_income"`
	CreditScore      float64 `json:"credit_score"`
	EmploymentStatus string  `json:"employment_status"`
	CreditPurpose    string  `json:"credit_purpose"`
	RequestedAmount  float64 `json:"requested_amount"`

	DebtToIncomeRatio      *float64 `json:"debt_to_income_ratio,omitempty"`
	MaxDaysDelinquency     *float64 `json:"max_days_delinquency,omitempty"`
	EmploymentTenureMonths *float64 `json:"employment_tenure_months,omitempty"`
	PaymentToIncomeRatio   *float64 `json:"payment_to_income_ratio,omitempty"`
	DownPaymentPercentage  *float64 `json:"down_payment_percentage,omitempty"`
	CoBorrowerIncome       *float64 `json:"co_borrower_income,omitempty"`
	RecentInquiries        *float64 `json:"recent_inquiries,omitempty"`
	CustomerTenureMonths   *float64 `json:"customer_tenure_months,omitempty"`
	HistoricalCompliance   *float64 `json:"historical_compliance,omitempty"`
	PensionAmount          *float64 `json:"pension_amount,omitempty"`

	EconomicActivity *string `json:"economic_activity,omitempty"`
	EmploymentType   *string `json:"employment_type,omitempty"`

	IsPep                     *bool `json:"is_pep,omitempty"`
	PepCommitteeApproval      *bool `json:"pep_committee_approval,omitempty"`
	IsMicroenterprise         *bool `json:"is_microenterprise,omitempty"`
	IsConventionEmployee      *bool `json:"is_convention_employee,omitempty"`
	PayrollDiscountAuthorized *bool `json:"payroll_discount_authorized,omitempty"`
	IsLegalPension            *bool `json:"is_legal_pension,omitempty"`
}

// NewEvaluationRequest arma la solicitud a partir del registro del
// formulario. Ceros, cadenas vacías y false se consideran no informados.
func NewEvaluationRequest(input domain.AppInputData, sessionID string) EvaluationRequest {
	return EvaluationRequest{
		SessionID:        sessionID,
		Age:              input.Age,
		MonthlyIncome:    input.MonthlyIncome,
		CreditScore:      input.CreditScore,
		EmploymentStatus: input.EmploymentStatus,
		CreditPurpose:    input.CreditPurpose,
		RequestedAmount:  input.RequestedAmount,

		DebtToIncomeRatio:      optFloat(input.DebtToIncomeRatio),
		MaxDaysDelinquency:     optFloat(input.MaxDaysDelinquency),
		EmploymentTenureMonths: optFloat(input.EmploymentTenureMonths),
		PaymentToIncomeRatio:   optFloat(input.PaymentToIncomeRatio),
		DownPaymentPercentage:  optFloat(input.DownPaymentPercentage),
		CoBorrowerIncome:       optFloat(input.CoBorrowerIncome),
		RecentInquiries:        optFloat(input.RecentInquiries),
		CustomerTenureMonths:   optFloat(input.CustomerTenureMonths),
		HistoricalCompliance:   optFloat(input.HistoricalCompliance),
		PensionAmount:          optFloat(input.PensionAmount),

		EconomicActivity: optString(input.EconomicActivity),
		EmploymentType:   optString(input.EmploymentType),

		IsPep:                     optBool(input.IsPep),
		PepCommitteeApproval:      optBool(input.PepCommitteeApproval),
		IsMicroenterprise:         optBool(input.IsMicroenterprise),
		IsConventionEmployee:      optBool(input.IsConventionEmployee),
		PayrollDiscountAuthorized: optBool(input.PayrollDiscountAuthorized),
		IsLegalPension:            optBool(input.IsLegalPension),
	}
}

func optFloat(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

func optString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func optBool(v bool) *bool {
	if !v {
		return nil
	}
	return &v
}

// RuleExecution es la traza de una regla disparada por el motor.
type RuleExecution struct {
	RuleID          string   `json:"rule_id"`
	RuleName        string   `json:"rule_name"`
	Fired           bool     `json:"fired"`
	FactsProduced   []string `json:"facts_produced,omitempty"`
	ExecutionTimeMs float64  `json:"execution_time_ms"`
}

// RecommendedProduct es una recomendación propia del motor; se muestra solo
// como referencia, el ranking lo calcula service.Recommend.
type RecommendedProduct struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Eligibility float64 `json:"eligibility,omitempty"`
}

// EvaluationResponse es la respuesta de POST /inference-engine/evaluate.
type EvaluationResponse struct {
	SessionID            string               `json:"session_id"`
	FinalDecision        string               `json:"final_decision"`
	RiskProfile          string               `json:"risk_profile"`
	ConfidenceScore      float64              `json:"confidence_score"`
	Explanation          string               `json:"explanation"`
	FactsDetected        []string             `json:"facts_detected"`
	FailuresDetected     []string             `json:"failures_detected"`
	RecommendedProducts  []RecommendedProduct `json:"recommended_products"`
	RuleExecutions       []RuleExecution      `json:"rule_executions"`
	TotalExecutionTimeMs float64              `json:"total_execution_time_ms"`
	EvaluatedAt          time.Time            `json:"evaluated_at"`
}

// EvaluationSession es un registro del historial administrativo.
type EvaluationSession struct {
	ID               string              `json:"id"`
	SessionID        string              `json:"session_id"`
	InputData        domain.AppInputData `json:"input_data"`
	FinalDecision    string              `json:"final_decision"`
	RiskProfile      string              `json:"risk_profile"`
	ConfidenceScore  float64             `json:"confidence_score"`
	FactsDetected    []string            `json:"facts_detected"`
	FailuresDetected []string            `json:"failures_detected"`
	EvaluatedAt      time.Time           `json:"evaluated_at"`
}

// EvaluationsPage es la respuesta de GET /inference-engine/evaluations.
type EvaluationsPage struct {
	Evaluations []EvaluationSession `json:"evaluations"`
	Total       int                 `json:"total"`
}
