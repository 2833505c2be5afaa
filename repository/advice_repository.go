package repository

import "credit-advisor/domain"

// AdviceRepository conserva las recomendaciones calculadas por sesión para
// que la interfaz pueda volver a mostrarlas.
type AdviceRepository interface {
	Save(sessionID string, advice domain.Advice) error
	Find(sessionID string) (domain.Advice, bool)
}
