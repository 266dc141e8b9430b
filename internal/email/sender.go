package email

import (
	"context"
	"errors"
	"time"
)

// Sender define la interfaz para notificar al equipo de investigacion.
type Sender interface {
	SendSessionComplete(ctx context.Context, toEmail, sessionID string, completedAt time.Time) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendSessionComplete(_ context.Context, _ string, _ string, _ time.Time) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
