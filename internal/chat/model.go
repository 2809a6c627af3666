package chat

import (
	"time"

	"github.com/google/uuid"
)

const (
	MessageTypeUser = "user"
	MessageTypeAI   = "ai"
)

// Confidence annotations for chat replies. Any real model response carries
// 85; the fixed fallback carries 50 so callers can tell failure apart.
const (
	ResponseConfidence = 85
	FallbackConfidence = 50
)

// FallbackText is returned verbatim when the gateway fails. Callers also
// distinguish failure by prefix-matching "I apologize, but I'm unable".
const FallbackText = "I apologize, but I'm unable to process your request at the moment. Please try again or consult with a healthcare provider for immediate concerns."

// Message is one row of the per-user conversation log.
type Message struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Type       string    `json:"type" db:"type"`
	Content    string    `json:"content" db:"content"`
	Confidence *int      `json:"confidence,omitempty" db:"confidence"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Reply is the payload handed back to the client.
type Reply struct {
	Response   string `json:"response"`
	Confidence int    `json:"confidence"`
}
