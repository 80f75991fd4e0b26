package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatBot is an IRC connection writing logs into the store. The bot process
// itself runs elsewhere; this record only identifies it.
type ChatBot struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Server    string    `json:"server" db:"server"`
	Nick      string    `json:"nick" db:"nick"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func NewChatBot(server, nick string) *ChatBot {
	return &ChatBot{
		ID:        uuid.New(),
		Server:    server,
		Nick:      nick,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
}
