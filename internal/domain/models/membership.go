package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership grants a user visibility on a channel. Owners and admins
// additionally manage the channel.
type Membership struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ChannelID uuid.UUID `json:"channel_id" db:"channel_id"`
	IsOwner   bool      `json:"is_owner" db:"is_owner"`
	IsAdmin   bool      `json:"is_admin" db:"is_admin"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func NewMembership(userID, channelID uuid.UUID) *Membership {
	return &Membership{
		ID:        uuid.New(),
		UserID:    userID,
		ChannelID: channelID,
		CreatedAt: time.Now(),
	}
}

// CanManage reports whether the membership carries channel admin rights.
func (m *Membership) CanManage() bool {
	return m.IsAdmin || m.IsOwner
}
