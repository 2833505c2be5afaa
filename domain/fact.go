package domain

import "strings"

// Fact es un token simbólico emitido por el motor de inferencia externo.
// Las constantes cubren el vocabulario conocido; cualquier otro valor se
// conserva tal cual para no perder hechos que el motor agregue después.
type Fact string

const (
	FactFinalidadVivienda  Fact = "FACT_FINALIDAD_VIVIENDA"
	FactFinalidadVehiculo  Fact = "FACT_FINALIDAD_VEHICULO"
	FactFinalidadLibre     Fact = "FACT_FINALIDAD_LIBRE_INVERSION"
	FactIngresosMin2SMMLV  Fact = "FACT_INGRESOS_MIN_2_SMMLV"
	FactIngresosMin3SMMLV  Fact = "FACT_INGRESOS_MIN_3_SMMLV"
	FactIngresosMin4SMMLV  Fact = "FACT_INGRESOS_MIN_4_SMMLV"
	FactCuotaMax30Ingresos Fact = "FACT_CUOTA_MAX_30_INGRESOS"
	FactCuotaMax40Ingresos Fact = "FACT_CUOTA_MAX_40_INGRESOS"
	FactCuotaInicial30     Fact = "FACT_CUOTA_INICIAL_30"
	FactCodeudorIngresos   Fact = "FACT_CODEUDOR_INGRESOS"
	FactCodeudorAprobado   Fact = "FACT_CODEUDOR_APROBADO"
	FactAntiguedad6Meses   Fact = "FACT_ANTIGUEDAD_LABORAL_6_MESES"
	FactAntiguedad12Meses  Fact = "FACT_ANTIGUEDAD_LABORAL_12_MESES"
	FactPerfilRiesgoBajo   Fact = "FACT_PERFIL_RIESGO_BAJO"
	FactPerfilRiesgoMedio  Fact = "FACT_PERFIL_RIESGO_MEDIO"
	FactPerfilRiesgoAlto   Fact = "FACT_PERFIL_RIESGO_ALTO"
	FactPepAprobado        Fact = "FACT_PEP_APROBADO"
	FactSarlaftVerificado  Fact = "FACT_SARLAFT_VERIFICADO"
)

// FactSet es un conjunto de hechos con semántica de pertenencia.
type FactSet map[Fact]struct{}

// NewFactSet construye el conjunto a partir de la lista cruda del motor.
// Los valores vacíos se descartan.
func NewFactSet(facts ...string) FactSet {
	set := make(FactSet, len(facts))
	for _, f := range facts {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		set[Fact(f)] = struct{}{}
	}
	return set
}

// Has indica si el hecho está presente. Un conjunto nil no contiene nada.
func (s FactSet) Has(f Fact) bool {
	_, ok := s[f]
	return ok
}

// HasAny indica si al menos uno de los hechos está presente.
func (s FactSet) HasAny(facts ...Fact) bool {
	for _, f := range facts {
		if s.Has(f) {
			return true
		}
	}
	return false
}

// HasAll indica si todos los hechos están presentes.
func (s FactSet) HasAll(facts ...Fact) bool {
	for _, f := range facts {
		if !s.Has(f) {
			return false
		}
	}
	return true
}
