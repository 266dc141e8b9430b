package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-study/internal/service"
)

// SessionHandler mantiene dependencias para los endpoints de sesion.
type SessionHandler struct {
	logger   *zap.Logger
	studySvc *service.StudyService
	jwtSvc   *service.JWTService
}

func NewSessionHandler(logger *zap.Logger, studySvc *service.StudyService, jwtSvc *service.JWTService) *SessionHandler {
	return &SessionHandler{
		logger:   logger,
		studySvc: studySvc,
		jwtSvc:   jwtSvc,
	}
}

// StartSession maneja POST /session. El codigo de acceso viene del link de
// invitacion; la condicion experimental tambien.
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req struct {
		AccessCode    string `json:"access_code"`
		ParticipantID string `json:"participant_id"`
		Condition     string `json:"condition"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid start session request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	session, err := h.studySvc.StartSession(c.Request.Context(), req.AccessCode, req.ParticipantID, req.Condition)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAccessCode) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid access code"})
			return
		}
		h.logger.Error("start session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
		return
	}

	pair, err := h.jwtSvc.GeneratePair(session)
	if err != nil {
		h.logger.Error("token pair failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue tokens"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session": session,
		"tokens":  pair,
	})
}

// RefreshSession maneja POST /session/refresh.
func (h *SessionHandler) RefreshSession(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	pair, err := h.jwtSvc.RefreshPair(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": pair})
}

// CompleteSession maneja POST /session/complete (autenticado).
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	if err := h.studySvc.CompleteSession(c.Request.Context(), claims.SessionID); err != nil {
		h.logger.Error("complete session failed", zap.Error(err), zap.String("session_id", claims.SessionID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete session"})
		return
	}

	if err := h.jwtSvc.RevokeRefresh(c.GetHeader("X-Refresh-Token")); err != nil && !errors.Is(err, service.ErrJWTInvalid) {
		h.logger.Warn("revoke refresh on completion failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}
