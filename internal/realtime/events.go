package realtime

import (
	"strconv"

	"github.com/segmentio/encoding/json"

	"github.com/classpulse/backend/internal/models"
)

// Inbound events (client -> server).
const (
	EventJoinClassroom   = "join-classroom"
	EventStudentReaction = "student-reaction"
	EventResolveReaction = "resolve-reaction"
	EventClearReactions  = "clear-reactions"
	EventCreatePoll      = "create-poll"
	EventSubmitVote      = "submit-vote"
	EventEndPoll         = "end-poll"
	EventClearPoll       = "clear-poll"
)

// Outbound events (server -> client).
const (
	EventJoinedClassroom  = "joined-classroom"
	EventStudentJoined    = "student-joined"
	EventStudentLeft      = "student-left"
	EventNewReaction      = "new-reaction"
	EventReactionResolved = "reaction-resolved"
	EventReactionsCleared = "reactions-cleared"
	EventPollStarted      = "poll-started"
	EventPollUpdated      = "poll-updated"
	EventPollEnded        = "poll-ended"
	EventPollCleared      = "poll-cleared"
	EventPollError        = "poll-error"
)

// JoinRequest is the payload of join-classroom.
type JoinRequest struct {
	ClassroomID string `json:"classroomId"`
	UserType    string `json:"userType"`
	UserName    string `json:"userName"`
}

// JoinedPayload acknowledges a join attempt. On success it carries the
// classroom snapshot so a late joiner can resynchronize.
type JoinedPayload struct {
	Success      bool              `json:"success"`
	Message      string            `json:"message,omitempty"`
	Classroom    *models.Classroom `json:"classroom,omitempty"`
	StudentCount int               `json:"studentCount"`
	ActivePoll   *models.PollView  `json:"activePoll,omitempty"`
}

// PresencePayload is broadcast as student-joined and student-left.
type PresencePayload struct {
	StudentCount int    `json:"studentCount"`
	StudentName  string `json:"studentName"`
}

// ReactionRequest is the payload of student-reaction.
type ReactionRequest struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ResolveRequest is the payload of resolve-reaction.
type ResolveRequest struct {
	ReactionID string `json:"reactionId"`
}

// ReactionResolvedPayload is broadcast as reaction-resolved.
type ReactionResolvedPayload struct {
	ReactionID string `json:"reactionId"`
}

// CreatePollRequest is the payload of create-poll.
type CreatePollRequest struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	DurationSec Seconds  `json:"durationSec"`
}

// VoteRequest is the payload of submit-vote.
type VoteRequest struct {
	OptionID int `json:"optionId"`
}

// ErrorPayload is sent to a single requester as poll-error.
type ErrorPayload struct {
	Message string `json:"message"`
}

// Seconds decodes a duration field that clients may send as a number, a
// numeric string, or garbage. Anything unusable decodes to zero so the
// caller can substitute the configured default.
type Seconds int

// UnmarshalJSON implements tolerant decoding for Seconds.
func (s *Seconds) UnmarshalJSON(b []byte) error {
	*s = 0
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*s = Seconds(f)
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err == nil {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			*s = Seconds(f)
		}
	}
	return nil
}
