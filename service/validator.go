package service

import (
	"fmt"

	"credit-advisor/domain"
	"credit-advisor/format"
)

// fieldRule describe los límites de un campo. Un límite nil no se evalúa.
type fieldRule struct {
	min      *float64
	max      *float64
	belowMin string
	aboveMax string
	extract  func(domain.AppInputData) float64
}

func bound(v float64) *float64 { return &v }

//nolint:gochecknoglobals // tabla de reglas de negocio
var fieldRules = map[domain.FieldID]fieldRule{
	domain.FieldAge: {
		min:      bound(MinAge),
		max:      bound(MaxAge),
		belowMin: fmt.Sprintf("La edad debe estar entre %d y %d años", MinAge, MaxAge),
		aboveMax: fmt.Sprintf("La edad debe estar entre %d y %d años", MinAge, MaxAge),
		extract:  func(in domain.AppInputData) float64 { return in.Age },
	},
	domain.FieldMonthlyIncome: {
		min:      bound(LegalMinimumWage),
		belowMin: fmt.Sprintf("Los ingresos mensuales deben ser al menos 1 SMMLV (%s)", format.FormatCurrencyFloat(LegalMinimumWage)),
		extract:  func(in domain.AppInputData) float64 { return in.MonthlyIncome },
	},
	domain.FieldCreditScore: {
		min:      bound(MinCreditScore),
		max:      bound(MaxCreditScore),
		belowMin: fmt.Sprintf("El puntaje crediticio no puede ser menor a %d", MinCreditScore),
		aboveMax: fmt.Sprintf("El puntaje crediticio no puede ser mayor a %d", MaxCreditScore),
		extract:  func(in domain.AppInputData) float64 { return in.CreditScore },
	},
	domain.FieldDebtToIncomeRatio: {
		max:      bound(MaxDebtToIncomeRatio),
		aboveMax: "El nivel de endeudamiento no puede superar el 50%",
		extract:  func(in domain.AppInputData) float64 { return in.DebtToIncomeRatio },
	},
	domain.FieldMaxDaysDelinquency: {
		max:      bound(MaxDaysDelinquency),
		aboveMax: "La mora máxima no puede superar los 90 días",
		extract:  func(in domain.AppInputData) float64 { return in.MaxDaysDelinquency },
	},
	domain.FieldRecentInquiries: {
		max:      bound(MaxRecentInquiries),
		aboveMax: "No se permiten más de 3 consultas recientes",
		extract:  func(in domain.AppInputData) float64 { return in.RecentInquiries },
	},
	domain.FieldDownPaymentPercentage: {
		max:      bound(MaxPercentage),
		aboveMax: "La cuota inicial no puede superar el 100%",
		extract:  func(in domain.AppInputData) float64 { return in.DownPaymentPercentage },
	},
	domain.FieldPaymentToIncomeRatio: {
		max:      bound(MaxPercentage),
		aboveMax: "La relación cuota/ingreso no puede superar el 100%",
		extract:  func(in domain.AppInputData) float64 { return in.PaymentToIncomeRatio },
	},
	domain.FieldHistoricalCompliance: {
		max:      bound(MaxPercentage),
		aboveMax: "El cumplimiento histórico no puede superar el 100%",
		extract:  func(in domain.AppInputData) float64 { return in.HistoricalCompliance },
	},
}

// validatedFields fija el orden de ValidateInput.
//
//nolint:gochecknoglobals // orden del formulario
var validatedFields = []domain.FieldID{
	domain.FieldAge,
	domain.FieldMonthlyIncome,
	domain.FieldCreditScore,
	domain.FieldDebtToIncomeRatio,
	domain.FieldMaxDaysDelinquency,
	domain.FieldRecentInquiries,
	domain.FieldDownPaymentPercentage,
	domain.FieldPaymentToIncomeRatio,
	domain.FieldHistoricalCompliance,
}

// ValidateField valida un valor contra la tabla de límites. Los campos sin
// regla son siempre válidos.
func ValidateField(field domain.FieldID, value float64) domain.ValidationResult {
	rule, ok := fieldRules[field]
	if !ok {
		return domain.ValidationResult{IsValid: true}
	}
	if rule.min != nil && value < *rule.min {
		return domain.ValidationResult{IsValid: false, Message: rule.belowMin}
	}
	if rule.max != nil && value > *rule.max {
		return domain.ValidationResult{IsValid: false, Message: rule.aboveMax}
	}
	return domain.ValidationResult{IsValid: true}
}

// ValidateInput valida todos los campos con regla y devuelve solo los que
// fallan. Un mapa vacío significa que el registro es válido.
func ValidateInput(input domain.AppInputData) map[domain.FieldID]string {
	errs := make(map[domain.FieldID]string)
	for _, field := range validatedFields {
		rule := fieldRules[field]
		if res := ValidateField(field, rule.extract(input)); !res.IsValid {
			errs[field] = res.Message
		}
	}
	return errs
}

// ValidatedFields devuelve los campos que tienen regla, en orden de formulario.
func ValidatedFields() []domain.FieldID {
	out := make([]domain.FieldID, len(validatedFields))
	copy(out, validatedFields)
	return out
}
