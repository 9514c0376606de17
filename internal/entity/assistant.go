package entity

import (
	"time"
)

// ConversationTurn is one processed exchange, persisted best-effort after
// every decision so history survives restarts.
type ConversationTurn struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	UserText       string    `json:"user_text"`
	Response       string    `json:"response"`
	Action         string    `json:"action,omitempty"`
	Confidence     float64   `json:"confidence"`
	CreatedAt      time.Time `json:"created_at"`
}
