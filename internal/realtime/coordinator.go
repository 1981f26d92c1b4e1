package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classpulse/backend/internal/classrooms"
	"github.com/classpulse/backend/internal/models"
)

// Coordinator orchestrates every inbound connection event against the
// classroom state it owns. All mutations of one classroom, including
// poll deadline callbacks, run under that classroom's mutex, so each
// operation (check, mutate, broadcast) is a single atomic step per room.
// Different classrooms proceed fully in parallel.
type Coordinator struct {
	store    *classrooms.Store
	registry *Registry
	hub      *Hub
	logger   *zap.Logger

	defaultPollSeconds int

	mu    sync.Mutex
	rooms map[string]*roomState
}

// roomState is the per-classroom serialization point. The timer handle
// lives here so arming and canceling share the room lock with every
// other mutation.
type roomState struct {
	mu    sync.Mutex
	timer *time.Timer
}

// NewCoordinator creates the session coordinator.
func NewCoordinator(store *classrooms.Store, registry *Registry, hub *Hub, logger *zap.Logger, defaultPollSeconds int) *Coordinator {
	if defaultPollSeconds <= 0 {
		defaultPollSeconds = 60
	}
	return &Coordinator{
		store:              store,
		registry:           registry,
		hub:                hub,
		logger:             logger,
		defaultPollSeconds: defaultPollSeconds,
		rooms:              make(map[string]*roomState),
	}
}

// room returns the lock state for a classroom, creating it on first use.
// Room states share the lifetime of their classroom (the process).
func (co *Coordinator) room(classroomID string) *roomState {
	co.mu.Lock()
	defer co.mu.Unlock()
	rs, ok := co.rooms[classroomID]
	if !ok {
		rs = &roomState{}
		co.rooms[classroomID] = rs
	}
	return rs
}

// Snapshot returns a deep copy of a classroom taken under its room
// lock, safe to serialize while the live classroom keeps mutating.
// The HTTP read endpoints go through this instead of the raw store.
func (co *Coordinator) Snapshot(classroomID string) (*models.Classroom, bool) {
	classroom, ok := co.store.Get(classroomID)
	if !ok {
		return nil, false
	}
	rs := co.room(classroomID)
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return classroom.Clone(), true
}

// Join binds a connection to a classroom. A failed lookup is reported
// only to the requester; a student join is announced to everyone else.
func (co *Coordinator) Join(c *Client, req JoinRequest) {
	classroom, ok := co.store.Get(req.ClassroomID)
	if !ok {
		co.hub.Send(c, EventJoinedClassroom, JoinedPayload{
			Success: false,
			Message: "classroom not found",
		})
		return
	}

	// Re-joining overwrites the previous binding, which counts as
	// leaving the old room so student accounting stays exact.
	if prev, bound := co.registry.Get(c.ID); bound {
		co.leave(c, prev)
	}

	role := models.Role(req.UserType)
	rs := co.room(req.ClassroomID)
	rs.mu.Lock()
	defer rs.mu.Unlock()

	co.registry.Bind(&models.Session{
		ConnID:      c.ID,
		ClassroomID: req.ClassroomID,
		Role:        role,
		Name:        req.UserName,
	})
	co.hub.Join(req.ClassroomID, c)

	if role == models.RoleStudent {
		classroom.Students++
		co.hub.BroadcastExcept(req.ClassroomID, c.ID, EventStudentJoined, PresencePayload{
			StudentCount: classroom.Students,
			StudentName:  req.UserName,
		})
	}

	var activePoll *models.PollView
	if classroom.Poll != nil {
		activePoll = classroom.Poll.View(time.Now())
	}
	co.hub.Send(c, EventJoinedClassroom, JoinedPayload{
		Success:      true,
		Classroom:    classroom,
		StudentCount: classroom.Students,
		ActivePoll:   activePoll,
	})

	co.logger.Info("participant joined",
		zap.String("classroom_id", req.ClassroomID),
		zap.String("role", req.UserType),
		zap.String("name", req.UserName),
	)
}

// Disconnect tears down a connection's session and, for students,
// announces the departure to the remaining participants.
func (co *Coordinator) Disconnect(c *Client) {
	sess, ok := co.registry.Remove(c.ID)
	if !ok {
		return
	}
	co.leave(c, sess)
}

// leave removes the connection from its room and adjusts the student
// count. The floor guard keeps a racing double-leave from driving the
// count negative.
func (co *Coordinator) leave(c *Client, sess *models.Session) {
	rs := co.room(sess.ClassroomID)
	rs.mu.Lock()
	defer rs.mu.Unlock()

	co.hub.Leave(sess.ClassroomID, c)

	if sess.Role != models.RoleStudent {
		return
	}
	classroom, ok := co.store.Get(sess.ClassroomID)
	if !ok {
		return
	}
	if classroom.Students > 0 {
		classroom.Students--
	}
	co.hub.BroadcastExcept(sess.ClassroomID, c.ID, EventStudentLeft, PresencePayload{
		StudentCount: classroom.Students,
		StudentName:  sess.Name,
	})
}

// Reaction appends a student's reaction to the classroom log and
// forwards it to everyone else in the room. The submitter gets no echo.
func (co *Coordinator) Reaction(c *Client, req ReactionRequest) {
	sess, classroom, rs := co.participant(c, models.RoleStudent)
	if sess == nil {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()

	reaction := &models.Reaction{
		ID:          uuid.New().String(),
		Type:        req.Type,
		Message:     req.Message,
		StudentName: sess.Name,
		Timestamp:   time.Now(),
	}
	classroom.AddReaction(reaction)
	co.hub.BroadcastExcept(sess.ClassroomID, c.ID, EventNewReaction, reaction)

	co.logger.Debug("reaction submitted",
		zap.String("classroom_id", sess.ClassroomID),
		zap.String("type", req.Type),
		zap.String("student", sess.Name),
	)
}

// ResolveReaction marks a reaction handled and tells the whole room.
// Resolving an already-resolved reaction repeats the broadcast; an
// unknown id is ignored.
func (co *Coordinator) ResolveReaction(c *Client, req ResolveRequest) {
	sess, classroom, rs := co.participant(c, models.RoleTeacher)
	if sess == nil {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()

	reaction := classroom.FindReaction(req.ReactionID)
	if reaction == nil {
		return
	}
	reaction.Resolve(time.Now())
	co.hub.Broadcast(sess.ClassroomID, EventReactionResolved, ReactionResolvedPayload{
		ReactionID: req.ReactionID,
	})
}

// ClearReactions empties the classroom's reaction log.
func (co *Coordinator) ClearReactions(c *Client) {
	sess, classroom, rs := co.participant(c, models.RoleTeacher)
	if sess == nil {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()

	classroom.ClearReactions()
	co.hub.Broadcast(sess.ClassroomID, EventReactionsCleared, nil)
}

// participant looks up the caller's session and classroom, requiring
// the given role. Role mismatches and stale bindings return nils; those
// actions are silently ignored per the protocol.
func (co *Coordinator) participant(c *Client, role models.Role) (*models.Session, *models.Classroom, *roomState) {
	sess, ok := co.registry.Get(c.ID)
	if !ok || sess.Role != role {
		return nil, nil, nil
	}
	classroom, ok := co.store.Get(sess.ClassroomID)
	if !ok {
		return nil, nil, nil
	}
	return sess, classroom, co.room(sess.ClassroomID)
}
