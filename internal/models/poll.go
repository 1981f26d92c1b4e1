package models

import (
	"time"

	"github.com/google/uuid"
)

// PollOption is one choice in a poll with its running tally.
type PollOption struct {
	ID    int    `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

// Poll is a teacher-created, time-bounded multiple-choice question.
// The voter map is keyed by connection id and is never serialized;
// clients only ever see a PollView.
type Poll struct {
	ID          string
	Question    string
	Options     []*PollOption
	StartedAt   time.Time
	DurationSec int
	EndsAt      time.Time
	Ended       bool
	EndedAt     *time.Time

	voters map[string]int // connection id -> option id
}

// NewPoll creates an active poll with 1-based option ids and zero counts.
func NewPoll(question string, options []string, durationSec int) *Poll {
	now := time.Now()
	p := &Poll{
		ID:          uuid.New().String(),
		Question:    question,
		Options:     make([]*PollOption, 0, len(options)),
		StartedAt:   now,
		DurationSec: durationSec,
		EndsAt:      now.Add(time.Duration(durationSec) * time.Second),
		voters:      make(map[string]int),
	}
	for i, text := range options {
		p.Options = append(p.Options, &PollOption{ID: i + 1, Text: text})
	}
	return p
}

// Vote records a voter's choice. It returns false without mutating
// anything when the poll has ended, the option is unknown, or this
// connection already voted. Votes are immutable once cast.
func (p *Poll) Vote(connID string, optionID int) bool {
	if p.Ended {
		return false
	}
	if p.HasVoted(connID) {
		return false
	}
	opt := p.option(optionID)
	if opt == nil {
		return false
	}
	p.voters[connID] = optionID
	opt.Votes++
	return true
}

// HasVoted reports whether the connection already has a recorded vote.
func (p *Poll) HasVoted(connID string) bool {
	_, ok := p.voters[connID]
	return ok
}

// TotalVotes is the number of recorded voters.
func (p *Poll) TotalVotes() int {
	return len(p.voters)
}

// End marks the poll ended. Ending twice keeps the first end timestamp.
func (p *Poll) End(now time.Time) {
	if p.Ended {
		return
	}
	p.Ended = true
	p.EndedAt = &now
}

func (p *Poll) option(id int) *PollOption {
	for _, o := range p.Options {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// PollView is the client-safe projection of a poll. ServerTime lets
// clients compute remaining time without trusting their own clocks.
type PollView struct {
	ID          string        `json:"id"`
	Question    string        `json:"question"`
	Options     []*PollOption `json:"options"`
	TotalVotes  int           `json:"totalVotes"`
	StartedAt   time.Time     `json:"startedAt"`
	DurationSec int           `json:"durationSec"`
	EndsAt      time.Time     `json:"endsAt"`
	Ended       bool          `json:"ended"`
	EndedAt     *time.Time    `json:"endedAt,omitempty"`
	ServerTime  time.Time     `json:"serverTime"`
}

// View builds the sanitized projection broadcast to clients. Option
// structs are copied so later tallies do not mutate an emitted view.
func (p *Poll) View(now time.Time) *PollView {
	options := make([]*PollOption, 0, len(p.Options))
	for _, o := range p.Options {
		copied := *o
		options = append(options, &copied)
	}
	return &PollView{
		ID:          p.ID,
		Question:    p.Question,
		Options:     options,
		TotalVotes:  len(p.voters),
		StartedAt:   p.StartedAt,
		DurationSec: p.DurationSec,
		EndsAt:      p.EndsAt,
		Ended:       p.Ended,
		EndedAt:     p.EndedAt,
		ServerTime:  now,
	}
}
