package memory

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/elliottsj/botbot-web/internal/application/constant"
	"github.com/elliottsj/botbot-web/internal/application/metric"
)

// StreamRepository tracks websocket subscribers per channel for the live
// log stream.
type StreamRepository interface {
	Add(channelID uuid.UUID, conn *websocket.Conn) (subscriberID uuid.UUID)
	Remove(channelID, subscriberID uuid.UUID)

	// Broadcast writes the payload to every subscriber of the channel.
	Broadcast(channelID uuid.UUID, payload any)
}

type safeWS struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

type streamRepository struct {
	// subscribers holds map[channel_id]map[subscriber_id]*ws.conn
	subscribers map[uuid.UUID]map[uuid.UUID]*safeWS

	mu sync.RWMutex
}

func NewStreamRepository() StreamRepository {
	return &streamRepository{
		subscribers: make(map[uuid.UUID]map[uuid.UUID]*safeWS),
	}
}

func (r *streamRepository) Add(channelID uuid.UUID, conn *websocket.Conn) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subscribers[channelID]; !ok {
		r.subscribers[channelID] = make(map[uuid.UUID]*safeWS)
	}

	subscriberID := uuid.New()
	r.subscribers[channelID][subscriberID] = &safeWS{conn: conn}

	metric.IncrementStreamConnections()

	return subscriberID
}

func (r *streamRepository) Remove(channelID, subscriberID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns, ok := r.subscribers[channelID]
	if !ok {
		return
	}

	if _, ok := conns[subscriberID]; ok {
		delete(conns, subscriberID)
		metric.DecrementStreamConnections()
	}

	if len(conns) == 0 {
		delete(r.subscribers, channelID)
	}
}

func (r *streamRepository) Broadcast(channelID uuid.UUID, payload any) {
	for _, ws := range r.channelSubscribers(channelID) {
		ws.mu.Lock()

		if err := ws.conn.WriteJSON(payload); err != nil {
			slog.Error("write to stream subscriber", slog.Any(constant.Error, err))
		}

		ws.mu.Unlock()
	}
}

func (r *streamRepository) channelSubscribers(channelID uuid.UUID) []*safeWS {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]*safeWS, 0, len(r.subscribers[channelID]))
	for _, ws := range r.subscribers[channelID] {
		conns = append(conns, ws)
	}

	return conns
}
