package models

import (
	"time"

	"github.com/google/uuid"
)

// Log is a single IRC event (PRIVMSG, JOIN, ...) recorded on a channel.
type Log struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ChannelID uuid.UUID `json:"channel_id" db:"channel_id"`
	Command   string    `json:"command" db:"command"`
	Nick      string    `json:"nick" db:"nick"`
	Text      string    `json:"text" db:"text"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

func NewLog(channelID uuid.UUID, command, nick, text string) *Log {
	return &Log{
		ID:        uuid.New(),
		ChannelID: channelID,
		Command:   command,
		Nick:      nick,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
}
