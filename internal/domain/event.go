package domain

import (
	"encoding/json"
	"time"
)

// Tipos de eventos registrados durante una sesion.
const (
	EventKindMessage         = "MESSAGE"
	EventKindPersonaSnapshot = "PERSONA_SNAPSHOT"
	EventKindLayoutToggle    = "LAYOUT_TOGGLE"
	EventKindSessionComplete = "SESSION_COMPLETE"
)

// StudyEvent es el registro crudo de lo que paso en una sesion. El payload
// es JSON libre por tipo de evento; el analisis offline lo interpreta.
type StudyEvent struct {
	ID        string          `json:"id"`
	SessionID string          `json:"session_id"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}
