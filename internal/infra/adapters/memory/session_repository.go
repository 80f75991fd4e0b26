package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/elliottsj/botbot-web/internal/domain/runtime"
)

// SessionRepository holds visitor sessions in memory.
type SessionRepository interface {
	Create() *runtime.Session
	Get(id uuid.UUID) (*runtime.Session, bool)
	Save(s *runtime.Session)
	Delete(id uuid.UUID)
}

type sessionRepository struct {
	sessions map[uuid.UUID]*runtime.Session
	mu       sync.RWMutex
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{
		sessions: make(map[uuid.UUID]*runtime.Session),
	}
}

func (r *sessionRepository) Create() *runtime.Session {
	s := runtime.NewSession()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.ID] = s

	// Callers only see copies; writes reach the store through Save.
	return s.Clone()
}

func (r *sessionRepository) Get(id uuid.UUID) (*runtime.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}

	return s.Clone(), true
}

func (r *sessionRepository) Save(s *runtime.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.ID] = s.Clone()
}

func (r *sessionRepository) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
}
