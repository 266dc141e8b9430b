package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"persona-study/internal/domain"
	"persona-study/internal/persona"
	"persona-study/internal/repository"
)

// ScoreService resuelve ratings de persona para un system prompt: primero
// cache, despues el servicio GPU remoto. Tambien puede calcular ratings
// localmente a partir de una activacion cruda usando los vectores
// almacenados.
type ScoreService struct {
	logger  *zap.Logger
	client  persona.ScoreClient
	cache   persona.ScoreCache
	vectors repository.VectorRepository
}

func NewScoreService(
	logger *zap.Logger,
	client persona.ScoreClient,
	cache persona.ScoreCache,
	vectors repository.VectorRepository,
) *ScoreService {
	return &ScoreService{
		logger:  logger,
		client:  client,
		cache:   cache,
		vectors: vectors,
	}
}

// FetchRatings devuelve los ratings para el prompt, de cache si es posible.
func (s *ScoreService) FetchRatings(ctx context.Context, systemPrompt string) (domain.PersonaRatings, error) {
	if s.cache != nil {
		if ratings, ok := s.cache.Get(ctx, systemPrompt); ok {
			return ratings, nil
		}
	}

	ratings, err := s.client.Score(ctx, systemPrompt)
	if err != nil {
		return nil, fmt.Errorf("score prompt: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, systemPrompt, ratings)
	}
	return ratings, nil
}

// RatingsFromActivation proyecta una activacion sobre todos los vectores
// de rasgo almacenados y devuelve el payload jerarquico.
func (s *ScoreService) RatingsFromActivation(ctx context.Context, activation []float32) (domain.PersonaRatings, error) {
	vectors, err := s.vectors.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list persona vectors: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no persona vectors stored")
	}
	ratings, err := persona.RateAll(activation, vectors)
	if err != nil {
		return nil, fmt.Errorf("rate activation: %w", err)
	}
	return ratings, nil
}

// TraitPairs arma la lista de pares declarados a partir de los vectores
// almacenados, para alimentar el layout del sunburst.
func (s *ScoreService) TraitPairs(ctx context.Context) ([]domain.TraitPair, error) {
	vectors, err := s.vectors.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list persona vectors: %w", err)
	}
	pairs := make([]domain.TraitPair, 0, len(vectors))
	for _, v := range vectors {
		pairs = append(pairs, v.Pair())
	}
	return pairs, nil
}
