package models

import (
	"time"
)

// Classroom is a live session grouping teacher and student connections,
// their reactions, and at most one poll. State is in-memory only and
// does not survive a restart.
type Classroom struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	CreatedAt time.Time   `json:"createdAt"`
	Students  int         `json:"students"`
	Reactions []*Reaction `json:"reactions"`

	// Poll is the single active-or-recently-ended poll slot. It is
	// broadcast only in sanitized form, never as part of the classroom.
	Poll *Poll `json:"-"`
}

// NewClassroom creates an empty classroom with the given id and name.
func NewClassroom(id, name string) *Classroom {
	return &Classroom{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now(),
		Reactions: []*Reaction{},
	}
}

// AddReaction appends a reaction to the classroom's log.
func (c *Classroom) AddReaction(r *Reaction) {
	c.Reactions = append(c.Reactions, r)
}

// FindReaction returns the reaction with the given id, or nil.
func (c *Classroom) FindReaction(id string) *Reaction {
	for _, r := range c.Reactions {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// ClearReactions empties the classroom's reaction log.
func (c *Classroom) ClearReactions() {
	c.Reactions = []*Reaction{}
}

// Clone returns a deep copy of the classroom's serializable state.
// Callers hand clones to readers that outlive the lock the live
// classroom is mutated under.
func (c *Classroom) Clone() *Classroom {
	reactions := make([]*Reaction, len(c.Reactions))
	for i, r := range c.Reactions {
		copied := *r
		reactions[i] = &copied
	}
	return &Classroom{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		Students:  c.Students,
		Reactions: reactions,
	}
}
