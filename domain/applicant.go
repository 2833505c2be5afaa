package domain

// AppInputData es el registro del solicitante tal como lo entrega el formulario.
// Los campos numéricos ausentes llegan en cero y los booleanos en false.
type AppInputData struct {
	Age                    float64 `json:"age"`
	MonthlyIncome          float64 `json:"monthly_income"`
	CreditScore            float64 `json:"credit_score"`
	RequestedAmount        float64 `json:"requested_amount"`
	DebtToIncomeRatio      float64 `json:"debt_to_income_ratio"`
	MaxDaysDelinquency     float64 `json:"max_days_delinquency"`
	EmploymentTenureMonths float64 `json:"employment_tenure_months"`
	PaymentToIncomeRatio   float64 `json:"payment_to_income_ratio"`
	DownPaymentPercentage  float64 `json:"down_payment_percentage"`
	CoBorrowerIncome       float64 `json:"co_borrower_income"`
	RecentInquiries        float64 `json:"recent_inquiries"`
	CustomerTenureMonths   float64 `json:"customer_tenure_months"`
	HistoricalCompliance   float64 `json:"historical_compliance"`
	PensionAmount          float64 `json:"pension_amount"`

	EmploymentStatus string `json:"employment_status"`
	CreditPurpose    string `json:"credit_purpose"`
	EconomicActivity string `json:"economic_activity"`
	EmploymentType   string `json:"employment_type"`

	IsPep                     bool `json:"is_pep"`
	PepCommitteeApproval      bool `json:"pep_committee_approval"`
	IsMicroenterprise         bool `json:"is_microenterprise"`
	IsConventionEmployee      bool `json:"is_convention_employee"`
	PayrollDiscountAuthorized bool `json:"payroll_discount_authorized"`
	IsLegalPension            bool `json:"is_legal_pension"`
}

// Finalidades de crédito conocidas por el formulario.
const (
	PurposeHousing        = "vivienda"
	PurposeVehicle        = "vehiculo"
	PurposeFreeInvestment = "libre_inversion"
)
