package realtime

import (
	"sync"

	"github.com/segmentio/encoding/json"
	"go.uber.org/zap"
)

// Hub maintains classroom_id -> set of connections and fans events out
// to every connection joined to a room, optionally excluding the sender.
// Delivery is best-effort: a slow client's queue overflows and the
// message is dropped rather than blocking the originating operation.
type Hub struct {
	// classroomID -> map[clientID]*Client
	rooms  map[string]map[string]*Client
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewHub creates a new WebSocket hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[string]*Client),
		logger: logger,
	}
}

// Join adds a client to a classroom room.
func (h *Hub) Join(classroomID string, c *Client) {
	h.mu.Lock()
	if h.rooms[classroomID] == nil {
		h.rooms[classroomID] = make(map[string]*Client)
	}
	h.rooms[classroomID][c.ID] = c
	h.mu.Unlock()
	h.logger.Debug("client joined room",
		zap.String("client_id", c.ID),
		zap.String("classroom_id", classroomID),
	)
}

// Leave removes a client from a classroom room.
func (h *Hub) Leave(classroomID string, c *Client) {
	h.mu.Lock()
	if m, ok := h.rooms[classroomID]; ok {
		delete(m, c.ID)
		if len(m) == 0 {
			delete(h.rooms, classroomID)
		}
	}
	h.mu.Unlock()
	h.logger.Debug("client left room",
		zap.String("client_id", c.ID),
		zap.String("classroom_id", classroomID),
	)
}

// Broadcast sends an event to every client in a classroom.
func (h *Hub) Broadcast(classroomID, event string, payload interface{}) {
	h.broadcast(classroomID, "", event, payload)
}

// BroadcastExcept sends an event to every client in a classroom except
// the one identified by excludeID.
func (h *Hub) BroadcastExcept(classroomID, excludeID, event string, payload interface{}) {
	h.broadcast(classroomID, excludeID, event, payload)
}

// Send delivers an event to a single client.
func (h *Hub) Send(c *Client, event string, payload interface{}) {
	msg, ok := h.encode(event, payload)
	if !ok {
		return
	}
	c.enqueue(msg)
}

// RoomSize returns the number of connections in a classroom room.
func (h *Hub) RoomSize(classroomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[classroomID])
}

func (h *Hub) broadcast(classroomID, excludeID, event string, payload interface{}) {
	msg, ok := h.encode(event, payload)
	if !ok {
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[classroomID]))
	for id, c := range h.rooms[classroomID] {
		if id == excludeID {
			continue
		}
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.enqueue(msg)
	}
}

func (h *Hub) encode(event string, payload interface{}) (WSMessage, bool) {
	msg := WSMessage{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			h.logger.Error("encode event payload",
				zap.String("event", event), zap.Error(err))
			return WSMessage{}, false
		}
		msg.Data = data
	}
	return msg, true
}
