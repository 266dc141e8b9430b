package persona

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"persona-study/internal/domain"
)

// ScoreCache guarda ratings por prompt. El scoring es una funcion pura del
// system prompt y el servicio GPU es caro, asi que cachear por hash del
// prompt es seguro.
type ScoreCache interface {
	Get(ctx context.Context, systemPrompt string) (domain.PersonaRatings, bool)
	Set(ctx context.Context, systemPrompt string, ratings domain.PersonaRatings)
}

type redisScoreCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisScoreCache construye el cache con TTL configurable.
func NewRedisScoreCache(client *redis.Client, ttl time.Duration) ScoreCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisScoreCache{
		client: client,
		ttl:    ttl,
		prefix: "persona:score:",
	}
}

func (c *redisScoreCache) Get(ctx context.Context, systemPrompt string) (domain.PersonaRatings, bool) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	raw, err := c.client.Get(ctx, c.key(systemPrompt)).Bytes()
	if err != nil {
		return nil, false
	}
	var ratings domain.PersonaRatings
	if err := json.Unmarshal(raw, &ratings); err != nil {
		return nil, false
	}
	return ratings, true
}

func (c *redisScoreCache) Set(ctx context.Context, systemPrompt string, ratings domain.PersonaRatings) {
	raw, err := json.Marshal(ratings)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	_ = c.client.Set(ctx, c.key(systemPrompt), raw, c.ttl).Err()
}

func (c *redisScoreCache) key(systemPrompt string) string {
	sum := sha256.Sum256([]byte(systemPrompt))
	return c.prefix + hex.EncodeToString(sum[:])
}
