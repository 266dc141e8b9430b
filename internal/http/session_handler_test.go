package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"persona-study/internal/domain"
	"persona-study/internal/llm"
	"persona-study/internal/persona"
	"persona-study/internal/service"
)

type mockSessionRepo struct {
	sessions map[string]domain.StudySession
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]domain.StudySession)}
}

func (m *mockSessionRepo) Create(_ context.Context, session domain.StudySession) error {
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
	session, ok := m.sessions[id]
	if !ok {
		return errors.New("not found")
	}
	session.CompletedAt = &completedAt
	m.sessions[id] = session
	return nil
}

type mockEventRepo struct {
	events []domain.StudyEvent
}

func (m *mockEventRepo) Create(_ context.Context, event domain.StudyEvent) error {
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

type mockMessageRepo struct {
	messages []domain.Message
	listErr  error
}

func (m *mockMessageRepo) Create(_ context.Context, message domain.Message) error {
	m.messages = append(m.messages, message)
	return nil
}

func (m *mockMessageRepo) ListBySession(_ context.Context, sessionID string) ([]domain.Message, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.Message
	for _, msg := range m.messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	return out, nil
}

type mockVectorRepo struct {
	vectors []domain.PersonaVector
}

func (m *mockVectorRepo) Upsert(_ context.Context, vector domain.PersonaVector) error {
	m.vectors = append(m.vectors, vector)
	return nil
}

func (m *mockVectorRepo) GetByTrait(_ context.Context, trait string) (domain.PersonaVector, error) {
	for _, v := range m.vectors {
		if v.Trait == trait {
			return v, nil
		}
	}
	return domain.PersonaVector{}, errors.New("not found")
}

func (m *mockVectorRepo) ListAll(_ context.Context) ([]domain.PersonaVector, error) {
	return m.vectors, nil
}

type stubLimiter struct {
	allow bool
	keys  []string
}

func (l *stubLimiter) Allow(key string) bool {
	l.keys = append(l.keys, key)
	return l.allow
}

// testEnv arma el router completo con mocks. El codigo de acceso valido
// es "letmein".
type testEnv struct {
	router   *gin.Engine
	jwtSvc   *service.JWTService
	sessions *mockSessionRepo
	events   *mockEventRepo
	messages *mockMessageRepo
	vectors  *mockVectorRepo
	chat     *llm.MockClient
	score    *persona.MockScoreClient
	limiter  *stubLimiter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash access code: %v", err)
	}

	env := &testEnv{
		sessions: newMockSessionRepo(),
		events:   &mockEventRepo{},
		messages: &mockMessageRepo{},
		vectors:  &mockVectorRepo{},
		chat:     &llm.MockClient{Response: "hello there"},
		score:    &persona.MockScoreClient{},
		limiter:  &stubLimiter{allow: true},
	}
	env.jwtSvc = service.NewJWTServiceWithStore("secret", 15*time.Minute, 30*time.Minute, service.NewMemoryRefreshTokenStore())

	studySvc := service.NewStudyService(logger, env.sessions, env.events, nil, string(hash), "", time.Hour)
	scoreSvc := service.NewScoreService(logger, env.score, nil, env.vectors)

	sessionH := NewSessionHandler(logger, studySvc, env.jwtSvc)
	chatH := NewChatHandler(logger, env.chat, env.messages, studySvc, "You are helpful.", 256)
	personaH := NewPersonaHandler(logger, scoreSvc, studySvc, env.limiter)

	env.router = NewRouter(logger, env.jwtSvc, sessionH, chatH, personaH)
	return env
}

func (e *testEnv) startSession(t *testing.T) (domain.StudySession, service.TokenPair) {
	t.Helper()
	body := bytes.NewBufferString(`{"access_code":"letmein","condition":"mirrored"}`)
	req := httptest.NewRequest(http.MethodPost, "/session", body)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start session: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp struct {
		Session domain.StudySession `json:"session"`
		Tokens  service.TokenPair   `json:"tokens"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode start response: %v", err)
	}
	return resp.Session, resp.Tokens
}

func TestStartSession_IssuesTokens(t *testing.T) {
	env := newTestEnv(t)

	session, tokens := env.startSession(t)
	if session.ID == "" || session.Condition != "mirrored" {
		t.Fatalf("unexpected session: %+v", session)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("expected token pair")
	}
	if _, ok := env.sessions.sessions[session.ID]; !ok {
		t.Fatalf("expected session persisted")
	}
}

func TestStartSession_BadAccessCode(t *testing.T) {
	env := newTestEnv(t)

	body := bytes.NewBufferString(`{"access_code":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/session", body)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRefreshSession_Rotates(t *testing.T) {
	env := newTestEnv(t)
	_, tokens := env.startSession(t)

	body, _ := json.Marshal(map[string]string{"refresh_token": tokens.RefreshToken})
	req := httptest.NewRequest(http.MethodPost, "/session/refresh", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	// El refresh viejo queda revocado.
	req = httptest.NewRequest(http.MethodPost, "/session/refresh", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected old refresh rejected, got %d", rec.Code)
	}
}

func TestCompleteSession_MarksAndLogs(t *testing.T) {
	env := newTestEnv(t)
	session, tokens := env.startSession(t)

	req := httptest.NewRequest(http.MethodPost, "/session/complete", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	stored := env.sessions.sessions[session.ID]
	if stored.CompletedAt == nil {
		t.Fatalf("expected completion timestamp")
	}
	if len(env.events.events) != 1 || env.events.events[0].Kind != domain.EventKindSessionComplete {
		t.Fatalf("expected completion event, got %+v", env.events.events)
	}
}

func TestCompleteSession_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/session/complete", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
