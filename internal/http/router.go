package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-study/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas del estudio.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	sessionH *SessionHandler,
	chatH *ChatHandler,
	personaH *PersonaHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/session", sessionH.StartSession)
	r.POST("/session/refresh", sessionH.RefreshSession)

	// El render acepta ratings por body o resuelve el prompt del query;
	// no requiere sesion para permitir la generacion de figuras offline.
	r.GET("/sunburst.svg", personaH.SunburstSVG)

	authed := r.Group("", JWTAuthMiddleware(jwtSvc))
	authed.POST("/session/complete", sessionH.CompleteSession)
	authed.POST("/message", chatH.PostMessage)
	authed.POST("/persona/score", personaH.Score)
	authed.POST("/persona/activation", personaH.Activation)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
