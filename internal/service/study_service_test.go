package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"persona-study/internal/domain"
)

type mockSessionRepo struct {
	sessions  map[string]domain.StudySession
	createErr error
	markErr   error
	completed []string
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]domain.StudySession)}
}

func (m *mockSessionRepo) Create(_ context.Context, session domain.StudySession) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (domain.StudySession, error) {
	session, ok := m.sessions[id]
	if !ok {
		return domain.StudySession{}, errors.New("not found")
	}
	return session, nil
}

func (m *mockSessionRepo) MarkCompleted(_ context.Context, id string, completedAt time.Time) error {
	if m.markErr != nil {
		return m.markErr
	}
	session, ok := m.sessions[id]
	if !ok {
		return errors.New("not found")
	}
	session.CompletedAt = &completedAt
	m.sessions[id] = session
	m.completed = append(m.completed, id)
	return nil
}

type mockEventRepo struct {
	events    []domain.StudyEvent
	createErr error
}

func (m *mockEventRepo) Create(_ context.Context, event domain.StudyEvent) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventRepo) ListBySession(_ context.Context, sessionID string) ([]domain.StudyEvent, error) {
	var out []domain.StudyEvent
	for _, e := range m.events {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

type mockEmailSender struct {
	sent []string
	err  error
}

func (m *mockEmailSender) SendSessionComplete(_ context.Context, toEmail, sessionID string, _ time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, toEmail+"/"+sessionID)
	return nil
}

func newStudyServiceForTest(t *testing.T, accessCode string) (*StudyService, *mockSessionRepo, *mockEventRepo, *mockEmailSender) {
	t.Helper()
	var hash string
	if accessCode != "" {
		raw, err := bcrypt.GenerateFromPassword([]byte(accessCode), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash access code: %v", err)
		}
		hash = string(raw)
	}
	sessions := newMockSessionRepo()
	events := &mockEventRepo{}
	sender := &mockEmailSender{}
	svc := NewStudyService(zap.NewNop(), sessions, events, sender, hash, "team@example.com", time.Hour)
	return svc, sessions, events, sender
}

func TestStudyService_StartSession(t *testing.T) {
	svc, sessions, _, _ := newStudyServiceForTest(t, "letmein")

	session, err := svc.StartSession(context.Background(), "letmein", "", "mirrored")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if session.ID == "" || session.ParticipantID == "" {
		t.Fatalf("expected generated ids, got %+v", session)
	}
	if session.Condition != "mirrored" {
		t.Fatalf("expected condition preserved, got %q", session.Condition)
	}
	if !session.ExpiresAt.After(session.CreatedAt) {
		t.Fatalf("expected expiry after creation")
	}
	if _, ok := sessions.sessions[session.ID]; !ok {
		t.Fatalf("expected session persisted")
	}
}

func TestStudyService_StartSessionRejectsBadCode(t *testing.T) {
	svc, _, _, _ := newStudyServiceForTest(t, "letmein")

	if _, err := svc.StartSession(context.Background(), "wrong", "", "mirrored"); err != ErrInvalidAccessCode {
		t.Fatalf("expected ErrInvalidAccessCode, got %v", err)
	}
}

func TestStudyService_StartSessionNoGateWithoutHash(t *testing.T) {
	svc, _, _, _ := newStudyServiceForTest(t, "")

	if _, err := svc.StartSession(context.Background(), "anything", "p-7", "opposite"); err != nil {
		t.Fatalf("expected open access without configured hash, got %v", err)
	}
}

func TestStudyService_GetSessionExpired(t *testing.T) {
	svc, sessions, _, _ := newStudyServiceForTest(t, "")
	past := time.Now().UTC().Add(-2 * time.Hour)
	sessions.sessions["old"] = domain.StudySession{
		ID:        "old",
		CreatedAt: past,
		ExpiresAt: past.Add(time.Hour),
	}

	if _, err := svc.GetSession(context.Background(), "old"); err != ErrSessionExpired {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestStudyService_LogEvent(t *testing.T) {
	svc, _, events, _ := newStudyServiceForTest(t, "")

	payload := map[string]any{"layout": "opposite"}
	if err := svc.LogEvent(context.Background(), "sess-1", domain.EventKindLayoutToggle, payload); err != nil {
		t.Fatalf("log event: %v", err)
	}
	if len(events.events) != 1 {
		t.Fatalf("expected one event, got %d", len(events.events))
	}
	event := events.events[0]
	if event.Kind != domain.EventKindLayoutToggle || event.SessionID != "sess-1" {
		t.Fatalf("unexpected event: %+v", event)
	}
	var decoded map[string]any
	if err := json.Unmarshal(event.Payload, &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded["layout"] != "opposite" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}

func TestStudyService_CompleteSession(t *testing.T) {
	svc, sessions, events, sender := newStudyServiceForTest(t, "")
	now := time.Now().UTC()
	sessions.sessions["sess-1"] = domain.StudySession{
		ID:        "sess-1",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}

	if err := svc.CompleteSession(context.Background(), "sess-1"); err != nil {
		t.Fatalf("complete session: %v", err)
	}
	if len(sessions.completed) != 1 || sessions.completed[0] != "sess-1" {
		t.Fatalf("expected session marked completed")
	}
	if len(events.events) != 1 || events.events[0].Kind != domain.EventKindSessionComplete {
		t.Fatalf("expected completion event, got %+v", events.events)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "team@example.com/sess-1" {
		t.Fatalf("expected completion email, got %+v", sender.sent)
	}
}

func TestStudyService_CompleteSessionEmailFailureNonFatal(t *testing.T) {
	svc, sessions, _, sender := newStudyServiceForTest(t, "")
	sender.err = errors.New("smtp down")
	now := time.Now().UTC()
	sessions.sessions["sess-1"] = domain.StudySession{
		ID:        "sess-1",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}

	if err := svc.CompleteSession(context.Background(), "sess-1"); err != nil {
		t.Fatalf("expected email failure to be non-fatal, got %v", err)
	}
}
