package service

import (
	"math"

	"github.com/shopspring/decimal"

	"credit-advisor/domain"
)

// evalContext agrupa las entradas de una evaluación.
type evalContext struct {
	facts domain.FactSet
	input domain.AppInputData
	risk  domain.RiskTier
}

func newEvalContext(facts domain.FactSet, input domain.AppInputData, profile domain.RiskProfile) evalContext {
	return evalContext{
		facts: facts,
		input: input,
		risk:  domain.ResolveRiskTier(facts, profile),
	}
}

// income devuelve el ingreso mensual saneado: negativos, NaN e infinitos
// cuentan como cero.
func (c evalContext) income() float64 {
	return sanitize(c.input.MonthlyIncome)
}

func (c evalContext) has(f domain.Fact) bool { return c.facts.Has(f) }

func (c evalContext) lowRisk() bool { return c.risk == domain.RiskLow }
func (c evalContext) mediumRisk() bool { return c.risk == domain.RiskMedium }

func (c evalContext) hasCoBorrower() bool {
	return c.has(domain.FactCodeudorIngresos) ||
		sanitize(c.input.CoBorrowerIncome) >= 2*LegalMinimumWage
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// tier es una fila de la tabla de decisión de un producto. Las filas se
// evalúan en orden y gana la primera cuyo predicado se cumple; when nil
// siempre se cumple.
type tier struct {
	when        func(evalContext) bool
	eligibility int
	conditions  []string
}

// ratePolicy es la tasa mensual por nivel de riesgo; base aplica cuando el
// nivel es desconocido.
type ratePolicy struct {
	base   float64
	low    float64
	medium float64
	high   float64
}

func flatRate(r float64) ratePolicy {
	return ratePolicy{base: r, low: r, medium: r, high: r}
}

func (p ratePolicy) forTier(t domain.RiskTier) float64 {
	switch t {
	case domain.RiskLow:
		return p.low
	case domain.RiskMedium:
		return p.medium
	case domain.RiskHigh:
		return p.high
	default:
		return p.base
	}
}

// productRule describe un evaluador de producto. multiplier == 0 significa
// monto fijo igual al tope.
type productRule struct {
	id          string
	name        string
	description string
	gate        func(evalContext) bool
	tiers       []tier
	rates       ratePolicy
	multiplier  int64
	cap         int64
	termMonths  int
}

func (r productRule) match(c evalContext) (tier, bool) {
	for _, t := range r.tiers {
		if t.when == nil || t.when(c) {
			return t, true
		}
	}
	return tier{}, false
}

func (r productRule) maxAmount(c evalContext) decimal.Decimal {
	limit := decimal.NewFromInt(r.cap)
	if r.multiplier == 0 {
		return limit
	}
	amount := decimal.NewFromFloat(c.income()).Mul(decimal.NewFromInt(r.multiplier)).Floor()
	return decimal.Min(amount, limit)
}

// evaluate aplica la regla; el segundo valor es false si el producto no aplica.
func (r productRule) evaluate(c evalContext) (domain.ProductCandidate, bool) {
	if !r.gate(c) {
		return domain.ProductCandidate{}, false
	}
	t, ok := r.match(c)
	if !ok {
		return domain.ProductCandidate{}, false
	}

	conditions := make([]string, 0, len(t.conditions)+1)
	conditions = append(conditions, t.conditions...)
	if cond := complianceCondition(c); cond != "" {
		conditions = append(conditions, cond)
	}

	return domain.ProductCandidate{
		ID:           r.id,
		Name:         r.name,
		Description:  r.description,
		MaxAmount:    r.maxAmount(c),
		InterestRate: r.rates.forTier(c.risk),
		TermMonths:   r.termMonths,
		Conditions:   conditions,
		Eligibility:  clampEligibility(t.eligibility),
	}, true
}

func clampEligibility(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// complianceCondition agrega la condición SARLAFT para personas expuestas
// políticamente.
func complianceCondition(c evalContext) string {
	if !c.input.IsPep {
		return ""
	}
	if c.input.PepCommitteeApproval || c.has(domain.FactPepAprobado) {
		return "Cliente PEP aprobado por comité: monitoreo SARLAFT reforzado"
	}
	return "Cliente PEP: requiere aprobación del comité SARLAFT antes del desembolso"
}

func all(preds ...func(evalContext) bool) func(evalContext) bool {
	return func(c evalContext) bool {
		for _, p := range preds {
			if !p(c) {
				return false
			}
		}
		return true
	}
}

func fact(f domain.Fact) func(evalContext) bool {
	return func(c evalContext) bool { return c.has(f) }
}

func anyFact(fs ...domain.Fact) func(evalContext) bool {
	return func(c evalContext) bool { return c.facts.HasAny(fs...) }
}

func lowRisk(c evalContext) bool { return c.lowRisk() }
func mediumRisk(c evalContext) bool { return c.mediumRisk() }
func lowOrMedium(c evalContext) bool { return c.lowRisk() || c.mediumRisk() }
func hasCoBorrower(c evalContext) bool { return c.hasCoBorrower() }

func incomeAtLeast(multiple float64) func(evalContext) bool {
	return func(c evalContext) bool { return c.income() >= multiple*LegalMinimumWage }
}

const (
	condLifeInsurance   = "Seguro de vida obligatorio"
	condCoBorrower      = "Codeudor con ingresos mínimos de 2 SMMLV"
	condCoBorrowerMust  = "Codeudor obligatorio"
	condPaymentStudy    = "Sujeto a estudio de capacidad de pago"
	condCommittee       = "Sujeto a aprobación del comité de crédito"
	condVehicleInsure   = "Seguro todo riesgo del vehículo"
	condVehiclePledge   = "Prenda del vehículo a favor de la entidad"
	condPayrollDiscount = "Descuento directo por nómina"
	condCardAnnualFee   = "Cuota de manejo mensual"
)

// primaryRules son los evaluadores por producto, en el orden en que se
// ejecutan. El orden define el desempate del ordenamiento final.
//
//nolint:gochecknoglobals // catálogo de productos
var primaryRules = []productRule{
	{
		id:          "credito-vivienda",
		name:        "Crédito Hipotecario",
		description: "Financiación para compra de vivienda nueva o usada",
		gate: func(c evalContext) bool {
			return c.has(domain.FactFinalidadVivienda) || c.input.CreditPurpose == domain.PurposeHousing
		},
		tiers: []tier{
			{
				when:        all(lowRisk, fact(domain.FactIngresosMin4SMMLV), fact(domain.FactCuotaMax30Ingresos)),
				eligibility: 95,
				conditions:  []string{"Cuota inicial mínima del 20%", condLifeInsurance},
			},
			{
				when:        all(lowOrMedium, fact(domain.FactIngresosMin3SMMLV), fact(domain.FactCuotaMax30Ingresos)),
				eligibility: 80,
				conditions:  []string{"Cuota inicial mínima del 30%", condLifeInsurance},
			},
			{
				when:        all(fact(domain.FactIngresosMin3SMMLV), hasCoBorrower),
				eligibility: 70,
				conditions:  []string{"Cuota inicial mínima del 30%", condLifeInsurance, condCoBorrower},
			},
			{
				when:        all(fact(domain.FactIngresosMin2SMMLV), hasCoBorrower),
				eligibility: 65,
				conditions:  []string{"Cuota inicial mínima del 40%", condLifeInsurance, condCoBorrower},
			},
			{
				when:        fact(domain.FactIngresosMin2SMMLV),
				eligibility: 50,
				conditions:  []string{"Cuota inicial mínima del 40%", condLifeInsurance, condPaymentStudy},
			},
			{
				eligibility: 35,
				conditions:  []string{"Cuota inicial mínima del 50%", condLifeInsurance, condCoBorrowerMust, condCommittee},
			},
		},
		rates:      ratePolicy{base: 2.0, low: 1.2, medium: 1.5, high: 2.5},
		multiplier: 15,
		cap:        MortgageCap,
		termMonths: 240,
	},
	{
		id:          "credito-vehiculo",
		name:        "Crédito de Vehículo",
		description: "Financiación para compra de vehículo nuevo o usado",
		gate: func(c evalContext) bool {
			return c.has(domain.FactFinalidadVehiculo) || c.input.CreditPurpose == domain.PurposeVehicle
		},
		tiers: []tier{
			{
				when:        all(lowRisk, fact(domain.FactIngresosMin3SMMLV), fact(domain.FactCuotaMax30Ingresos)),
				eligibility: 90,
				conditions:  []string{"Cuota inicial mínima del 10%", condVehicleInsure, condVehiclePledge},
			},
			{
				when:        all(fact(domain.FactIngresosMin3SMMLV), anyFact(domain.FactCuotaMax40Ingresos, domain.FactCuotaMax30Ingresos)),
				eligibility: 75,
				conditions:  []string{"Cuota inicial mínima del 20%", condVehicleInsure, condVehiclePledge},
			},
			{
				when:        all(fact(domain.FactIngresosMin2SMMLV), fact(domain.FactCuotaInicial30)),
				eligibility: 70,
				conditions:  []string{"Cuota inicial del 30% acreditada", condVehicleInsure, condVehiclePledge},
			},
			{
				when:        all(fact(domain.FactIngresosMin2SMMLV), hasCoBorrower),
				eligibility: 65,
				conditions:  []string{"Cuota inicial mínima del 20%", condVehicleInsure, condVehiclePledge, condCoBorrower},
			},
			{
				when:        fact(domain.FactIngresosMin2SMMLV),
				eligibility: 50,
				conditions:  []string{"Cuota inicial mínima del 30%", condVehicleInsure, condVehiclePledge, condPaymentStudy},
			},
			{
				eligibility: 35,
				conditions:  []string{"Cuota inicial mínima del 40%", condVehicleInsure, condVehiclePledge, condCoBorrowerMust},
			},
		},
		rates:      ratePolicy{base: 1.8, low: 1.0, medium: 1.2, high: 2.2},
		multiplier: 10,
		cap:        VehicleCap,
		termMonths: 60,
	},
	{
		id:          "libre-inversion",
		name:        "Crédito de Libre Inversión",
		description: "Crédito de consumo sin destinación específica",
		gate:        all(fact(domain.FactIngresosMin3SMMLV), fact(domain.FactAntiguedad12Meses)),
		tiers: []tier{
			{when: lowRisk, eligibility: 95, conditions: []string{"Desembolso inmediato", "Sin codeudor"}},
			{when: mediumRisk, eligibility: 75, conditions: []string{"Certificado laboral vigente", condPaymentStudy}},
			{eligibility: 60, conditions: []string{"Certificado laboral vigente", condCoBorrowerMust, condPaymentStudy}},
		},
		rates:      ratePolicy{base: 2.8, low: 1.8, medium: 2.2, high: 2.8},
		multiplier: 15,
		cap:        FreeInvestmentCap,
		termMonths: 60,
	},
	{
		id:          "credito-codeudor",
		name:        "Crédito con Codeudor",
		description: "Crédito de consumo respaldado por los ingresos de un codeudor",
		gate:        hasCoBorrower,
		tiers: []tier{
			{eligibility: 80, conditions: []string{condCoBorrower, "Codeudor con historial crediticio positivo"}},
		},
		rates:      flatRate(2.0),
		multiplier: 12,
		cap:        CoSignedCap,
		termMonths: 48,
	},
	{
		id:          "tarjeta-credito",
		name:        "Tarjeta de Crédito",
		description: "Cupo rotativo para compras y avances",
		gate:        fact(domain.FactIngresosMin2SMMLV),
		tiers: []tier{
			{when: lowRisk, eligibility: 92, conditions: []string{condCardAnnualFee}},
			{when: mediumRisk, eligibility: 75, conditions: []string{condCardAnnualFee, "Cupo inicial sujeto a revisión semestral"}},
			{eligibility: 70, conditions: []string{condCardAnnualFee, "Cupo inicial reducido", "Revisión de cupo a los 6 meses"}},
		},
		rates:      flatRate(2.8),
		multiplier: 3,
		cap:        CreditCardCap,
		termMonths: 0,
	},
	{
		id:          "credito-libranza",
		name:        "Crédito de Libranza",
		description: "Crédito con descuento directo de nómina para empleados de empresas con convenio",
		gate: func(c evalContext) bool {
			return c.input.IsConventionEmployee && c.input.PayrollDiscountAuthorized
		},
		tiers: []tier{
			{eligibility: 95, conditions: []string{condPayrollDiscount, "Empresa con convenio vigente"}},
		},
		rates:      flatRate(1.5),
		multiplier: 8,
		cap:        PayrollCap,
		termMonths: 36,
	},
	{
		id:          "microcredito",
		name:        "Microcrédito Empresarial",
		description: "Financiación de capital de trabajo para microempresas",
		gate: func(c evalContext) bool {
			return c.input.IsMicroenterprise
		},
		tiers: []tier{
			{eligibility: 75, conditions: []string{"Registro mercantil vigente", "Visita de verificación del negocio"}},
		},
		rates:      flatRate(2.5),
		cap:        MicroenterpriseAmount,
		termMonths: 36,
	},
}

// fallbackRules solo se evalúan si ningún producto principal aplicó.
//
//nolint:gochecknoglobals // catálogo de productos
var fallbackRules = []productRule{
	{
		id:          "libre-inversion-basico",
		name:        "Crédito de Libre Inversión Básico",
		description: "Crédito de consumo de monto reducido",
		gate: all(incomeAtLeast(2),
			anyFact(domain.FactAntiguedad6Meses, domain.FactAntiguedad12Meses)),
		tiers: []tier{
			{when: lowRisk, eligibility: 85, conditions: []string{"Monto sujeto a verificación de ingresos"}},
			{eligibility: 70, conditions: []string{"Monto sujeto a verificación de ingresos", condPaymentStudy}},
		},
		rates:      ratePolicy{base: 2.5, low: 2.0, medium: 2.3, high: 2.5},
		multiplier: 10,
		cap:        BasicFreeInvestmentCap,
		termMonths: 48,
	},
	{
		id:          "tarjeta-credito-basica",
		name:        "Tarjeta de Crédito Básica",
		description: "Tarjeta de cupo inicial bajo para construir historial",
		gate:        incomeAtLeast(2),
		tiers: []tier{
			{when: lowRisk, eligibility: 90, conditions: []string{condCardAnnualFee}},
			{when: mediumRisk, eligibility: 75, conditions: []string{condCardAnnualFee, "Cupo inicial reducido"}},
			{eligibility: 65, conditions: []string{condCardAnnualFee, "Cupo inicial reducido", "Revisión de cupo a los 6 meses"}},
		},
		rates:      flatRate(2.8),
		multiplier: 2,
		cap:        BasicCreditCardCap,
		termMonths: 0,
	},
}
