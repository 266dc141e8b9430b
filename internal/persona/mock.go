package persona

import (
	"context"

	"persona-study/internal/domain"
)

// MockScoreClient permite tests sin llamar al servicio GPU real.
type MockScoreClient struct {
	Ratings domain.PersonaRatings
	Err     error
	Calls   int
}

func (m *MockScoreClient) Score(ctx context.Context, systemPrompt string) (domain.PersonaRatings, error) {
	m.Calls++
	return m.Ratings, m.Err
}
