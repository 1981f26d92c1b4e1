package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/encoding/json"
	"go.uber.org/zap"

	"github.com/classpulse/backend/internal/classrooms"
	"github.com/classpulse/backend/internal/models"
)

// newTestCoordinator builds a coordinator with in-memory collaborators
// and no logging output.
func newTestCoordinator(t *testing.T) (*Coordinator, *classrooms.Store) {
	t.Helper()
	store := classrooms.NewStore("Untitled Class")
	co := NewCoordinator(store, NewRegistry(), NewHub(zap.NewNop()), zap.NewNop(), 60)
	return co, store
}

// newTestClient builds a client with a buffered send queue and no
// underlying socket; tests read its queue directly.
func newTestClient(co *Coordinator) *Client {
	return &Client{
		ID:          uuid.New().String(),
		coordinator: co,
		send:        make(chan WSMessage, 64),
		logger:      zap.NewNop(),
	}
}

// join runs a join-classroom for the client and discards the ack.
func join(t *testing.T, co *Coordinator, c *Client, classroomID, role, name string) {
	t.Helper()
	co.Join(c, JoinRequest{ClassroomID: classroomID, UserType: role, UserName: name})
	msg := nextEvent(t, c)
	if msg.Event != EventJoinedClassroom {
		t.Fatalf("expected %s ack, got %s", EventJoinedClassroom, msg.Event)
	}
	var ack JoinedPayload
	decodeEvent(t, msg, &ack)
	if !ack.Success {
		t.Fatalf("join failed: %s", ack.Message)
	}
}

// nextEvent pops the next queued message or fails; coordinator
// operations deliver synchronously.
func nextEvent(t *testing.T, c *Client) WSMessage {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	default:
		t.Fatal("no message queued")
		return WSMessage{}
	}
}

// waitEvent receives the next message within the timeout; used for
// timer-driven broadcasts.
func waitEvent(t *testing.T, c *Client, timeout time.Duration) WSMessage {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	case <-time.After(timeout):
		t.Fatal("timed out waiting for message")
		return WSMessage{}
	}
}

// expectSilence fails if the client has anything queued.
func expectSilence(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.send:
		t.Fatalf("expected no message, got %s", msg.Event)
	default:
	}
}

func decodeEvent(t *testing.T, msg WSMessage, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(msg.Data, v); err != nil {
		t.Fatalf("decode %s payload: %v", msg.Event, err)
	}
}

// drain empties a client's queue.
func drain(c *Client) {
	for {
		select {
		case <-c.send:
		default:
			return
		}
	}
}

// pollView decodes a poll event payload.
func pollView(t *testing.T, msg WSMessage) models.PollView {
	t.Helper()
	var view models.PollView
	decodeEvent(t, msg, &view)
	return view
}
