package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-study/internal/domain"
	"persona-study/internal/service"
	"persona-study/internal/sunburst"
)

// PersonaHandler mantiene dependencias para scoring y render del sunburst.
type PersonaHandler struct {
	logger   *zap.Logger
	scores   *service.ScoreService
	studySvc *service.StudyService
	limiter  service.ScoreRateLimiter
}

func NewPersonaHandler(
	logger *zap.Logger,
	scores *service.ScoreService,
	studySvc *service.StudyService,
	limiter service.ScoreRateLimiter,
) *PersonaHandler {
	return &PersonaHandler{
		logger:   logger,
		scores:   scores,
		studySvc: studySvc,
		limiter:  limiter,
	}
}

// Score maneja POST /persona/score (autenticado, rate-limited por sesion).
func (h *PersonaHandler) Score(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}
	if h.limiter != nil && !h.limiter.Allow(claims.SessionID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "scoring rate limit exceeded"})
		return
	}

	var req struct {
		SystemPrompt string `json:"system_prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ratings, err := h.scores.FetchRatings(c.Request.Context(), req.SystemPrompt)
	if err != nil {
		h.logger.Error("score failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not score prompt"})
		return
	}

	if err := h.studySvc.LogEvent(c.Request.Context(), claims.SessionID, domain.EventKindPersonaSnapshot, ratings); err != nil {
		h.logger.Warn("log snapshot event failed", zap.Error(err), zap.String("session_id", claims.SessionID))
	}

	c.JSON(http.StatusOK, gin.H{"persona_vector_ratings": ratings})
}

// Activation maneja POST /persona/activation (autenticado). Calcula los
// ratings localmente proyectando la activacion sobre los vectores
// almacenados, sin pasar por el servicio GPU.
func (h *PersonaHandler) Activation(c *gin.Context) {
	if _, ok := GetAuthClaims(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req struct {
		Activation []float32 `json:"activation" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ratings, err := h.scores.RatingsFromActivation(c.Request.Context(), req.Activation)
	if err != nil {
		h.logger.Error("activation rating failed", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not rate activation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"persona_vector_ratings": ratings})
}

// SunburstSVG maneja GET /sunburst.svg. Los ratings llegan como JSON en el
// body o se resuelven del query param "prompt"; el resto de los query
// params controlan el layout.
func (h *PersonaHandler) SunburstSVG(c *gin.Context) {
	ratings, ok := h.resolveRatings(c)
	if !ok {
		return
	}

	pairs, err := h.scores.TraitPairs(c.Request.Context())
	if err != nil {
		h.logger.Warn("trait pairs unavailable", zap.Error(err))
	}

	opts := sunburst.Options{
		Width:           queryFloat(c, "width", 0),
		Height:          queryFloat(c, "height", 0),
		CenterLabel:     c.Query("label"),
		CenterSubLabel:  c.Query("sublabel"),
		ShowLabels:      c.Query("labels") == "true",
		ShowPercentages: c.Query("percentages") == "true",
		OppositeLayout:  c.Query("layout") == "opposite",
		Pairs:           pairs,
	}

	chart := sunburst.Build(ratings.Flatten(pairs), opts)
	for _, warning := range chart.Warnings {
		h.logger.Warn("trait pair violation",
			zap.String("dimension", warning.Dimension),
			zap.String("reason", warning.Reason),
		)
	}

	c.Writer.Header().Set("Content-Type", "image/svg+xml")
	c.Status(http.StatusOK)
	if err := chart.WriteSVG(c.Writer); err != nil {
		h.logger.Error("svg write failed", zap.Error(err))
	}
}

func (h *PersonaHandler) resolveRatings(c *gin.Context) (domain.PersonaRatings, bool) {
	if prompt := c.Query("prompt"); prompt != "" {
		ratings, err := h.scores.FetchRatings(c.Request.Context(), prompt)
		if err != nil {
			h.logger.Error("score for render failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not score prompt"})
			return nil, false
		}
		return ratings, true
	}

	var ratings domain.PersonaRatings
	if err := c.ShouldBindJSON(&ratings); err != nil || len(ratings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ratings body or prompt query required"})
		return nil, false
	}
	return ratings, true
}

func queryFloat(c *gin.Context, name string, fallback float64) float64 {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
