package runtime

import (
	"time"

	"github.com/google/uuid"
)

// TimezoneKey is the session key holding the visitor's timezone preference.
// The value is kept compatible with session data written by the previous
// deployment of the site.
const TimezoneKey = "django_timezone"

// Session is server-side per-visitor state. Anonymous visitors get one as
// soon as something is written into it; logging in binds it to a user.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Values    map[string]string
	CreatedAt time.Time
}

func NewSession() *Session {
	return &Session{
		ID:        uuid.New(),
		Values:    make(map[string]string),
		CreatedAt: time.Now(),
	}
}

// Authenticated reports whether the session is bound to a user.
func (s *Session) Authenticated() bool {
	return s.UserID != uuid.Nil
}

// Clone copies the session so callers can mutate it without holding the
// store's lock.
func (s *Session) Clone() *Session {
	values := make(map[string]string, len(s.Values))
	for k, v := range s.Values {
		values[k] = v
	}

	return &Session{
		ID:        s.ID,
		UserID:    s.UserID,
		Values:    values,
		CreatedAt: s.CreatedAt,
	}
}
