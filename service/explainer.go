package service

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"credit-advisor/domain"
)

// Códigos de falla emitidos por el motor de inferencia.
const (
	FailureAgeOutOfRange        = "FALLA_EDAD_FUERA_RANGO"
	FailureInsufficientIncome   = "FALLA_INGRESOS_INSUFICIENTES"
	FailureInsufficientScore    = "FALLA_SCORE_INSUFICIENTE"
	FailureExcessiveDebt        = "FALLA_ENDEUDAMIENTO_EXCESIVO"
	FailureRecentDelinquency    = "FALLA_MORA_RECIENTE"
	FailureHighRiskActivity     = "FALLA_ACTIVIDAD_ALTO_RIESGO"
	FailurePepWithoutApproval   = "FALLA_PEP_SIN_APROBACION"
	FailureMultipleInquiries    = "FALLA_CONSULTAS_MULTIPLES"
	FailureIncompleteDocuments  = "FALLA_DOCUMENTOS_INCOMPLETOS"
	FailureNegativeReferences   = "FALLA_REFERENCIAS_NEGATIVAS"
	FailureInsufficientGuaranty = "FALLA_GARANTIA_INSUFICIENTE"
	FailureNegativeHistory      = "FALLA_HISTORIAL_NEGATIVO"
	FailurePaymentCapacity      = "FALLA_CAPACIDAD_PAGO_INSUFICIENTE"
	FailureEmploymentStability  = "FALLA_ESTABILIDAD_LABORAL"
)

const defaultRemediation = "Consulte con un asesor para revisar su caso y conocer las alternativas disponibles"

//nolint:gochecknoglobals // textos estáticos
var failureMessages = map[string]string{
	FailureAgeOutOfRange:        "La edad del solicitante está fuera del rango permitido (18 a 75 años)",
	FailureInsufficientIncome:   "Los ingresos mensuales no alcanzan el mínimo requerido para el producto",
	FailureInsufficientScore:    "El puntaje crediticio es inferior al mínimo exigido",
	FailureExcessiveDebt:        "El nivel de endeudamiento supera el 50% de los ingresos",
	FailureRecentDelinquency:    "Se registra mora significativa reciente en centrales de riesgo",
	FailureHighRiskActivity:     "La actividad económica declarada está catalogada como de alto riesgo (SARLAFT)",
	FailurePepWithoutApproval:   "El solicitante es una Persona Expuesta Políticamente sin aprobación del comité",
	FailureMultipleInquiries:    "Se detectaron múltiples consultas simultáneas en centrales de riesgo",
	FailureIncompleteDocuments:  "La documentación entregada está incompleta",
	FailureNegativeReferences:   "Las referencias personales o comerciales son negativas",
	FailureInsufficientGuaranty: "La garantía ofrecida no cubre el monto solicitado",
	FailureNegativeHistory:      "El historial crediticio presenta reportes negativos",
	FailurePaymentCapacity:      "La capacidad de pago es insuficiente para la cuota estimada",
	FailureEmploymentStability:  "La antigüedad laboral no cumple el mínimo de estabilidad requerido",
}

//nolint:gochecknoglobals // textos estáticos
var failureRemediations = map[string]string{
	FailureAgeOutOfRange:        "Solo pueden solicitar crédito personas entre 18 y 75 años; considere incluir un codeudor dentro del rango",
	FailureInsufficientIncome:   "Incluya ingresos adicionales demostrables o un codeudor, o solicite un monto menor",
	FailureInsufficientScore:    "Mejore su historial pagando a tiempo sus obligaciones actuales y vuelva a intentarlo en 6 meses",
	FailureExcessiveDebt:        "Reduzca sus deudas actuales o consolide obligaciones antes de solicitar un nuevo crédito",
	FailureRecentDelinquency:    "Póngase al día con las obligaciones en mora y espere la actualización en centrales de riesgo",
	FailureHighRiskActivity:     "Presente soportes adicionales de origen de fondos para revisión del oficial de cumplimiento",
	FailurePepWithoutApproval:   "Solicite la aprobación del comité PEP; el proceso requiere debida diligencia ampliada",
	FailureMultipleInquiries:    "Evite solicitar crédito en varias entidades al mismo tiempo y espere 90 días",
	FailureIncompleteDocuments:  "Complete los documentos faltantes indicados por su asesor",
	FailureNegativeReferences:   "Proporcione referencias alternativas verificables",
	FailureInsufficientGuaranty: "Ofrezca una garantía adicional o aumente la cuota inicial",
	FailureNegativeHistory:      "Normalice los reportes negativos y solicite un paz y salvo a las entidades acreedoras",
	FailurePaymentCapacity:      "Solicite un monto menor o un plazo mayor para reducir la cuota mensual",
	FailureEmploymentStability:  "Espere a completar la antigüedad laboral mínima o presente un codeudor con empleo estable",
}

// Explain traduce un código de falla. Los códigos desconocidos se
// humanizan y reciben una remediación genérica.
func Explain(code string) domain.FailureExplanation {
	message, ok := failureMessages[code]
	if !ok {
		message = humanize(code)
	}
	remediation, ok := failureRemediations[code]
	if !ok {
		remediation = defaultRemediation
	}
	return domain.FailureExplanation{
		Code:        code,
		Message:     message,
		Remediation: remediation,
	}
}

// ExplainAll explica una lista de códigos conservando su orden.
func ExplainAll(codes []string) []domain.FailureExplanation {
	out := make([]domain.FailureExplanation, 0, len(codes))
	for _, code := range codes {
		out = append(out, Explain(code))
	}
	return out
}

// KnownFailureCode indica si el código tiene texto propio.
func KnownFailureCode(code string) bool {
	_, ok := failureMessages[code]
	return ok
}

func humanize(code string) string {
	text := strings.TrimSpace(strings.ReplaceAll(code, "_", " "))
	if text == "" {
		return "Falla no especificada"
	}
	// cases.Caser no es seguro entre goroutines
	return cases.Title(language.Spanish).String(text)
}
