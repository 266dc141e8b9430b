package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"persona-study/internal/domain"
	"persona-study/internal/llm"
	"persona-study/internal/repository"
	"persona-study/internal/service"
)

// ChatHandler mantiene dependencias para el proxy de chat del estudio.
type ChatHandler struct {
	logger       *zap.Logger
	chatClient   llm.ChatClient
	messages     repository.MessageRepository
	studySvc     *service.StudyService
	systemPrompt string
	maxTokens    int
}

func NewChatHandler(
	logger *zap.Logger,
	chatClient llm.ChatClient,
	messages repository.MessageRepository,
	studySvc *service.StudyService,
	systemPrompt string,
	maxTokens int,
) *ChatHandler {
	return &ChatHandler{
		logger:       logger,
		chatClient:   chatClient,
		messages:     messages,
		studySvc:     studySvc,
		systemPrompt: systemPrompt,
		maxTokens:    maxTokens,
	}
}

// PostMessage maneja POST /message (autenticado). Persiste el turno del
// participante, pide la respuesta al servicio de chat con el historial
// completo y registra ambos lados como eventos de la sesion.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if _, err := h.studySvc.GetSession(c.Request.Context(), claims.SessionID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session unavailable"})
		return
	}

	userMsg := domain.Message{
		ID:        uuid.NewString(),
		SessionID: claims.SessionID,
		Role:      "user",
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.messages.Create(c.Request.Context(), userMsg); err != nil {
		h.logger.Error("create message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not post message"})
		return
	}

	history, err := h.messages.ListBySession(c.Request.Context(), claims.SessionID)
	if err != nil {
		h.logger.Error("list messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load history"})
		return
	}

	chatHistory := make([]llm.Message, 0, len(history))
	for _, m := range history {
		chatHistory = append(chatHistory, llm.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := h.chatClient.Chat(c.Request.Context(), chatHistory, h.systemPrompt, h.maxTokens)
	if err != nil {
		h.logger.Error("chat response failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":        "could not generate response",
			"user_message": userMsg,
		})
		return
	}

	assistantMsg := domain.Message{
		ID:        uuid.NewString(),
		SessionID: claims.SessionID,
		Role:      "assistant",
		Content:   reply,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.messages.Create(c.Request.Context(), assistantMsg); err != nil {
		h.logger.Error("create assistant message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not persist response"})
		return
	}

	for _, msg := range []domain.Message{userMsg, assistantMsg} {
		if err := h.studySvc.LogEvent(c.Request.Context(), claims.SessionID, domain.EventKindMessage, msg); err != nil {
			h.logger.Warn("log message event failed", zap.Error(err), zap.String("message_id", msg.ID))
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"user_message":      userMsg,
		"assistant_message": assistantMsg,
	})
}
