package domain

import "time"

// Sender identifies who wrote a chat message
type Sender string

const (
	SenderUser   Sender = "user"
	SenderMascot Sender = "mascot"
)

// ChatMessage is one line of the conversation with the mascot
type ChatMessage struct {
	ID     string
	Sender Sender
	Text   string
	SentAt time.Time
}
