package classrooms

import (
	"sync"
	"testing"
)

func TestCreateAssignsShortID(t *testing.T) {
	store := NewStore("Untitled Class")

	classroom := store.Create("Algebra")
	if len(classroom.ID) != idLength {
		t.Errorf("expected %d-char id, got %q", idLength, classroom.ID)
	}
	if classroom.Name != "Algebra" {
		t.Errorf("expected name Algebra, got %q", classroom.Name)
	}
	if classroom.Students != 0 {
		t.Errorf("expected zero students, got %d", classroom.Students)
	}
	if len(classroom.Reactions) != 0 {
		t.Errorf("expected empty reaction log, got %d entries", len(classroom.Reactions))
	}
	if classroom.Poll != nil {
		t.Error("expected no active poll on a fresh classroom")
	}
	if classroom.CreatedAt.IsZero() {
		t.Error("expected creation timestamp to be set")
	}
}

func TestCreateDefaultsBlankName(t *testing.T) {
	store := NewStore("Untitled Class")

	for _, name := range []string{"", "   "} {
		classroom := store.Create(name)
		if classroom.Name != "Untitled Class" {
			t.Errorf("name %q: expected default name, got %q", name, classroom.Name)
		}
	}
}

func TestGet(t *testing.T) {
	store := NewStore("Untitled Class")
	created := store.Create("Physics")

	got, ok := store.Get(created.ID)
	if !ok {
		t.Fatalf("expected classroom %s to exist", created.ID)
	}
	if got != created {
		t.Error("expected Get to return the same classroom instance")
	}

	if _, ok := store.Get("missing1"); ok {
		t.Error("expected unknown id to be absent")
	}
}

func TestCreateConcurrentUniqueIDs(t *testing.T) {
	store := NewStore("Untitled Class")

	const n = 200
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- store.Create("Room").ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate classroom id %s", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Errorf("expected %d classrooms, got %d", n, len(seen))
	}
}
