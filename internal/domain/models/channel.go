package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Channel struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	ChatBotID uuid.UUID      `json:"chatbot_id" db:"chatbot_id"`
	Name      string         `json:"name" db:"name"`
	Slug      sql.NullString `json:"slug" db:"slug"`
	IsPublic  bool           `json:"is_public" db:"is_public"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`

	// LastLogAt is filled by listing queries, not stored on the row.
	LastLogAt sql.NullTime `json:"last_log_at" db:"last_log_at"`
}

func NewChannel(chatBotID uuid.UUID, name string, isPublic bool) *Channel {
	return &Channel{
		ID:        uuid.New(),
		ChatBotID: chatBotID,
		Name:      name,
		IsPublic:  isPublic,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// IsActive reports whether the channel has ever received a log line.
func (c *Channel) IsActive() bool {
	return c.LastLogAt.Valid
}
