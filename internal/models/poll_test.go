package models

import (
	"testing"
	"time"
)

func TestPollVoteInvariant(t *testing.T) {
	p := NewPoll("Ready?", []string{"Yes", "No"}, 60)

	if !p.Vote("conn-1", 1) {
		t.Fatal("expected first vote to be accepted")
	}
	if p.Vote("conn-1", 2) {
		t.Error("expected repeat voter to be rejected")
	}
	if p.Vote("conn-2", 3) {
		t.Error("expected unknown option to be rejected")
	}
	if !p.Vote("conn-2", 2) {
		t.Fatal("expected second voter to be accepted")
	}

	sum := 0
	for _, o := range p.Options {
		sum += o.Votes
	}
	if sum != p.TotalVotes() {
		t.Errorf("tally sum %d != voter count %d", sum, p.TotalVotes())
	}

	p.End(time.Now())
	if p.Vote("conn-3", 1) {
		t.Error("expected votes after end to be rejected")
	}
	if p.TotalVotes() != 2 {
		t.Errorf("expected tally frozen at 2, got %d", p.TotalVotes())
	}
}

func TestPollEndKeepsFirstTimestamp(t *testing.T) {
	p := NewPoll("Ready?", []string{"Yes", "No"}, 60)
	first := time.Now().Add(-time.Minute)
	p.End(first)
	p.End(time.Now())
	if !p.EndedAt.Equal(first) {
		t.Errorf("expected first end timestamp to stick, got %v", p.EndedAt)
	}
}

func TestPollViewIsDetached(t *testing.T) {
	p := NewPoll("Ready?", []string{"Yes", "No"}, 60)
	p.Vote("conn-1", 1)

	view := p.View(time.Now())
	p.Vote("conn-2", 1)

	if view.Options[0].Votes != 1 {
		t.Errorf("emitted view must not track later votes, got %d", view.Options[0].Votes)
	}
	if view.TotalVotes != 1 {
		t.Errorf("expected snapshot total 1, got %d", view.TotalVotes)
	}
}

func TestReactionResolveKeepsFirstTimestamp(t *testing.T) {
	r := &Reaction{ID: "r1", Type: ReactionQuestion, Timestamp: time.Now()}
	first := time.Now().Add(-time.Minute)
	r.Resolve(first)
	r.Resolve(time.Now())
	if !r.Resolved || !r.ResolvedAt.Equal(first) {
		t.Errorf("expected first resolution to stick: %+v", r)
	}
}
