package realtime

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/classpulse/backend/internal/models"
)

// maxPollSeconds caps a poll's duration at one day. Far larger values
// would overflow the time.Duration conversion when arming the timer.
const maxPollSeconds = 24 * 60 * 60

// CreatePoll starts a new poll in the teacher's classroom. A poll that
// is still running is replaced outright: latest poll wins, its timer is
// canceled first. Validation failures go back to the requester only.
func (co *Coordinator) CreatePoll(c *Client, req CreatePollRequest) {
	sess, classroom, rs := co.participant(c, models.RoleTeacher)
	if sess == nil {
		return
	}

	if strings.TrimSpace(req.Question) == "" || len(req.Options) < 2 {
		co.hub.Send(c, EventPollError, ErrorPayload{
			Message: "a poll needs a question and at least two options",
		})
		return
	}
	duration := int(req.DurationSec)
	if duration <= 0 {
		duration = co.defaultPollSeconds
	}
	if duration > maxPollSeconds {
		duration = maxPollSeconds
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	co.stopTimer(rs)
	poll := models.NewPoll(req.Question, req.Options, duration)
	classroom.Poll = poll

	classroomID := sess.ClassroomID
	pollID := poll.ID
	rs.timer = time.AfterFunc(time.Duration(duration)*time.Second, func() {
		co.pollDeadline(classroomID, pollID)
	})

	co.hub.Broadcast(classroomID, EventPollStarted, poll.View(time.Now()))
	co.logger.Info("poll started",
		zap.String("classroom_id", classroomID),
		zap.String("poll_id", pollID),
		zap.Int("duration_sec", duration),
	)
}

// pollDeadline runs when a poll's timer fires. The poll may have been
// ended, cleared, or replaced between arming and firing, so it
// re-validates under the room lock before acting; a stale fire is a
// no-op.
func (co *Coordinator) pollDeadline(classroomID, pollID string) {
	classroom, ok := co.store.Get(classroomID)
	if !ok {
		return
	}
	rs := co.room(classroomID)
	rs.mu.Lock()
	defer rs.mu.Unlock()

	poll := classroom.Poll
	if poll == nil || poll.ID != pollID || poll.Ended {
		return
	}
	now := time.Now()
	poll.End(now)
	rs.timer = nil
	co.hub.Broadcast(classroomID, EventPollEnded, poll.View(now))
	co.logger.Info("poll ended by deadline",
		zap.String("classroom_id", classroomID),
		zap.String("poll_id", pollID),
	)
}

// Vote records a student's choice and broadcasts the updated tally.
// Unknown options, repeat votes, and ended polls are silently ignored;
// a vote cannot be changed once cast.
func (co *Coordinator) Vote(c *Client, req VoteRequest) {
	sess, classroom, rs := co.participant(c, models.RoleStudent)
	if sess == nil {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()

	poll := classroom.Poll
	if poll == nil || !poll.Vote(c.ID, req.OptionID) {
		return
	}
	co.hub.Broadcast(sess.ClassroomID, EventPollUpdated, poll.View(time.Now()))
}

// EndPoll ends the classroom's poll ahead of its deadline. No poll is a
// no-op; an already-ended poll keeps its end time but the broadcast is
// repeated, mirroring reaction-resolve idempotence.
func (co *Coordinator) EndPoll(c *Client) {
	sess, classroom, rs := co.participant(c, models.RoleTeacher)
	if sess == nil {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()

	poll := classroom.Poll
	if poll == nil {
		return
	}
	co.stopTimer(rs)
	now := time.Now()
	poll.End(now)
	co.hub.Broadcast(sess.ClassroomID, EventPollEnded, poll.View(now))
	co.logger.Info("poll ended by teacher",
		zap.String("classroom_id", sess.ClassroomID),
		zap.String("poll_id", poll.ID),
	)
}

// ClearPoll empties the classroom's poll slot, active or ended.
func (co *Coordinator) ClearPoll(c *Client) {
	sess, classroom, rs := co.participant(c, models.RoleTeacher)
	if sess == nil {
		return
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if classroom.Poll == nil {
		return
	}
	co.stopTimer(rs)
	classroom.Poll = nil
	co.hub.Broadcast(sess.ClassroomID, EventPollCleared, nil)
}

// stopTimer cancels a pending deadline timer. Stopping a timer that
// already fired is safe; the deadline callback re-validates against the
// poll state before acting.
func (co *Coordinator) stopTimer(rs *roomState) {
	if rs.timer != nil {
		rs.timer.Stop()
		rs.timer = nil
	}
}
