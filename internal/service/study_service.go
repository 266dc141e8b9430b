package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"persona-study/internal/domain"
	"persona-study/internal/email"
	"persona-study/internal/repository"
)

var (
	// ErrInvalidAccessCode indica que el codigo de acceso del estudio no
	// coincide con el hash configurado.
	ErrInvalidAccessCode = errors.New("invalid access code")
	// ErrSessionExpired indica que la sesion vencio.
	ErrSessionExpired = errors.New("session expired")
)

// StudyService gestiona el ciclo de vida de una sesion del estudio:
// ingreso con codigo de acceso, registro de eventos y cierre con
// notificacion al equipo de investigacion.
type StudyService struct {
	logger         *zap.Logger
	sessions       repository.SessionRepository
	events         repository.EventRepository
	emailSender    email.Sender
	accessCodeHash string
	researcherMail string
	sessionTTL     time.Duration
}

func NewStudyService(
	logger *zap.Logger,
	sessions repository.SessionRepository,
	events repository.EventRepository,
	emailSender email.Sender,
	accessCodeHash string,
	researcherMail string,
	sessionTTL time.Duration,
) *StudyService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &StudyService{
		logger:         logger,
		sessions:       sessions,
		events:         events,
		emailSender:    emailSender,
		accessCodeHash: accessCodeHash,
		researcherMail: researcherMail,
		sessionTTL:     sessionTTL,
	}
}

// StartSession valida el codigo de acceso y crea la sesion. La condicion
// experimental viene del caller (parametro de URL del link de invitacion).
func (s *StudyService) StartSession(ctx context.Context, accessCode, participantID, condition string) (domain.StudySession, error) {
	if s.accessCodeHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.accessCodeHash), []byte(accessCode)); err != nil {
			return domain.StudySession{}, ErrInvalidAccessCode
		}
	}
	if participantID == "" {
		participantID = uuid.NewString()
	}

	now := time.Now().UTC()
	session := domain.StudySession{
		ID:            uuid.NewString(),
		ParticipantID: participantID,
		Condition:     condition,
		CreatedAt:     now,
		ExpiresAt:     now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return domain.StudySession{}, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// GetSession devuelve la sesion si existe y no expiro.
func (s *StudyService) GetSession(ctx context.Context, id string) (domain.StudySession, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return domain.StudySession{}, fmt.Errorf("get session %s: %w", id, err)
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		return domain.StudySession{}, ErrSessionExpired
	}
	return session, nil
}

// LogEvent serializa el payload y lo persiste como evento de la sesion.
func (s *StudyService) LogEvent(ctx context.Context, sessionID, kind string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}
	event := domain.StudyEvent{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Kind:      kind,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.events.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// CompleteSession marca la sesion como terminada, registra el evento de
// cierre y notifica por correo. La falla del correo no invalida el cierre.
func (s *StudyService) CompleteSession(ctx context.Context, sessionID string) error {
	now := time.Now().UTC()
	if err := s.sessions.MarkCompleted(ctx, sessionID, now); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	if err := s.LogEvent(ctx, sessionID, domain.EventKindSessionComplete, map[string]string{
		"completed_at": now.Format(time.RFC3339),
	}); err != nil {
		s.logger.Warn("log completion event failed", zap.Error(err), zap.String("session_id", sessionID))
	}
	if s.researcherMail != "" && s.emailSender != nil {
		if err := s.emailSender.SendSessionComplete(ctx, s.researcherMail, sessionID, now); err != nil {
			s.logger.Warn("completion email failed", zap.Error(err), zap.String("session_id", sessionID))
		}
	}
	return nil
}
