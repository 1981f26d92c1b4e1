package realtime

import (
	stdjson "encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/segmentio/encoding/json"
	"go.uber.org/zap"
)

const (
	// PingInterval and PongWait are used for heartbeat.
	PingInterval = 30
	PongWait     = 60
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // allow all origins in dev; restrict in production
	},
}

// WSMessage is the WebSocket message envelope.
type WSMessage struct {
	Event string             `json:"event"`
	Data  stdjson.RawMessage `json:"data,omitempty"`
}

// Client represents a single WebSocket connection. Its id is the voter
// and session identity for everything the connection does.
type Client struct {
	ID          string
	coordinator *Coordinator
	conn        *websocket.Conn
	send        chan WSMessage
	readLimit   int64
	logger      *zap.Logger
}

// ServeWs handles the WebSocket upgrade and runs the client loop. The
// connection joins a classroom via the join-classroom event, not here.
func ServeWs(coordinator *Coordinator, logger *zap.Logger, readLimit int64, sendBuffer int) gin.HandlerFunc {
	if sendBuffer <= 0 {
		sendBuffer = 256
	}
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := &Client{
			ID:          uuid.New().String(),
			coordinator: coordinator,
			conn:        conn,
			send:        make(chan WSMessage, sendBuffer),
			readLimit:   readLimit,
			logger:      logger,
		}
		logger.Debug("client connected", zap.String("client_id", client.ID))
		go client.writePump()
		client.readPump()
	}
}

// enqueue queues an outbound message, dropping it if the client's
// buffer is full. Used by the hub; must never block.
func (c *Client) enqueue(msg WSMessage) {
	select {
	case c.send <- msg:
	default:
		// buffer full, skip
	}
}

func (c *Client) readPump() {
	defer func() {
		c.coordinator.Disconnect(c)
		_ = c.conn.Close()
		c.logger.Debug("client disconnected", zap.String("client_id", c.ID))
	}()

	if c.readLimit > 0 {
		c.conn.SetReadLimit(c.readLimit)
	}
	_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))
		return nil
	})

	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			break
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))
		c.dispatch(msg)
	}
}

// dispatch routes one inbound event. Malformed payloads and handler
// panics are logged and swallowed; they must never take down the
// connection or the process.
func (c *Client) dispatch(msg WSMessage) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("event handler panic",
				zap.String("event", msg.Event),
				zap.String("client_id", c.ID),
				zap.Any("panic", r),
			)
		}
	}()

	switch msg.Event {
	case EventJoinClassroom:
		var req JoinRequest
		if !c.decode(msg, &req) {
			return
		}
		c.coordinator.Join(c, req)
	case EventStudentReaction:
		var req ReactionRequest
		if !c.decode(msg, &req) {
			return
		}
		c.coordinator.Reaction(c, req)
	case EventResolveReaction:
		var req ResolveRequest
		if !c.decode(msg, &req) {
			return
		}
		c.coordinator.ResolveReaction(c, req)
	case EventClearReactions:
		c.coordinator.ClearReactions(c)
	case EventCreatePoll:
		var req CreatePollRequest
		if !c.decode(msg, &req) {
			return
		}
		c.coordinator.CreatePoll(c, req)
	case EventSubmitVote:
		var req VoteRequest
		if !c.decode(msg, &req) {
			return
		}
		c.coordinator.Vote(c, req)
	case EventEndPoll:
		c.coordinator.EndPoll(c)
	case EventClearPoll:
		c.coordinator.ClearPoll(c)
	default:
		// ignore
	}
}

func (c *Client) decode(msg WSMessage, v interface{}) bool {
	if err := json.Unmarshal(msg.Data, v); err != nil {
		c.logger.Warn("malformed event payload",
			zap.String("event", msg.Event),
			zap.String("client_id", c.ID),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (c *Client) writePump() {
	ticker := time.NewTicker(PingInterval * time.Second)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
