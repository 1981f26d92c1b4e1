package classrooms

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/classpulse/backend/internal/models"
)

// idLength is the number of UUID characters used for the shareable
// classroom code.
const idLength = 8

// Store owns the classroom id -> classroom mapping. Classrooms live for
// the lifetime of the process; there is no delete operation.
type Store struct {
	mu          sync.RWMutex
	classrooms  map[string]*models.Classroom
	defaultName string
}

// NewStore creates an empty classroom store. defaultName is used when a
// classroom is created with a blank name.
func NewStore(defaultName string) *Store {
	return &Store{
		classrooms:  make(map[string]*models.Classroom),
		defaultName: defaultName,
	}
}

// Create registers a new classroom under a fresh short id. Collisions on
// the truncated UUID are vanishingly rare but retried anyway.
func (s *Store) Create(name string) *models.Classroom {
	if strings.TrimSpace(name) == "" {
		name = s.defaultName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := shortID()
	for _, taken := s.classrooms[id]; taken; _, taken = s.classrooms[id] {
		id = shortID()
	}
	classroom := models.NewClassroom(id, name)
	s.classrooms[id] = classroom
	return classroom
}

// Get returns the classroom for id, or false if it does not exist.
func (s *Store) Get(id string) (*models.Classroom, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	classroom, ok := s.classrooms[id]
	return classroom, ok
}

func shortID() string {
	return uuid.New().String()[:idLength]
}
