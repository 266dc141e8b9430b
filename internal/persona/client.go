package persona

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"persona-study/internal/domain"
)

// ScoreClient define la interfaz hacia el servicio de scoring de persona
// (el backend GPU que proyecta el prompt sobre los vectores de rasgo).
type ScoreClient interface {
	Score(ctx context.Context, systemPrompt string) (domain.PersonaRatings, error)
}

// HTTPScoreClient implementa ScoreClient contra el endpoint remoto.
type HTTPScoreClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPScoreClient construye el cliente. El servicio remoto levanta el
// modelo bajo demanda, asi que el timeout es generoso.
func NewHTTPScoreClient(baseURL, apiKey string) *HTTPScoreClient {
	return &HTTPScoreClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *HTTPScoreClient) Score(ctx context.Context, systemPrompt string) (domain.PersonaRatings, error) {
	reqBody := scoreRequest{System: systemPrompt}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("persona score http error: status=%d", resp.StatusCode)
	}

	var sr scoreResponse
	if err := json.Unmarshal(respBody, &sr); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if sr.Error != nil {
		return nil, fmt.Errorf("persona score api error: %s", sr.Error.Message)
	}
	if len(sr.PersonaVectorRatings) == 0 {
		return nil, fmt.Errorf("persona score empty response")
	}
	return sr.PersonaVectorRatings, nil
}

type scoreRequest struct {
	System string `json:"system"`
}

type scoreResponse struct {
	PersonaVectorRatings domain.PersonaRatings `json:"persona_vector_ratings"`
	Error                *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}
