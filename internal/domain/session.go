package domain

import "time"

// StudySession representa la participacion de una persona en el estudio.
// La condicion experimental llega del caller (parametros de URL), no se
// asigna aqui.
type StudySession struct {
	ID            string     `json:"id"`
	ParticipantID string     `json:"participant_id"`
	Condition     string     `json:"condition"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiresAt     time.Time  `json:"expires_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// Message es un turno de chat dentro de una sesion del estudio.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
