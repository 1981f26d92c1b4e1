package models

import "time"

// Reaction types students can send.
const (
	ReactionConfused = "confused"
	ReactionQuestion = "question"
	ReactionText     = "text"
)

// Reaction is a lightweight student-submitted signal tracked until a
// teacher resolves it. Immutable apart from the resolved transition.
type Reaction struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Message     string     `json:"message,omitempty"`
	StudentName string     `json:"studentName"`
	Timestamp   time.Time  `json:"timestamp"`
	Resolved    bool       `json:"resolved"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
}

// Resolve marks the reaction handled. Resolving twice keeps the first
// resolution timestamp.
func (r *Reaction) Resolve(now time.Time) {
	if r.Resolved {
		return
	}
	r.Resolved = true
	r.ResolvedAt = &now
}
