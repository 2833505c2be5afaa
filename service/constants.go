package service

// LegalMinimumWage es el salario mínimo legal mensual vigente (SMMLV), base
// de todos los multiplicadores de ingreso.
const LegalMinimumWage = 1_300_000.0

const (
	// Topes por producto
	MortgageCap           = 200_000_000
	VehicleCap            = 80_000_000
	FreeInvestmentCap     = 50_000_000
	CoSignedCap           = 30_000_000
	CreditCardCap         = 15_000_000
	PayrollCap            = 40_000_000
	MicroenterpriseAmount = 25_000_000

	// Topes del pase de respaldo
	BasicFreeInvestmentCap = 30_000_000
	BasicCreditCardCap     = 10_000_000

	// Límites del validador de campos
	MinAge                  = 18
	MaxAge                  = 75
	MinCreditScore          = 300
	MaxCreditScore          = 1000
	MaxDebtToIncomeRatio    = 50
	MaxDaysDelinquency      = 90
	MaxRecentInquiries      = 3
	MaxPercentage           = 100
	MaxInstallmentTermMonth = 600 // 50 años
)
