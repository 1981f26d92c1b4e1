package classrooms

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/classpulse/backend/internal/models"
	"github.com/classpulse/backend/pkg/response"
)

// CreateRequest is the body for POST /api/classroom/create.
type CreateRequest struct {
	Name string `json:"name"`
}

// Snapshotter returns a consistent copy of live classroom state. The
// session coordinator implements it by cloning under the room lock;
// handlers must never marshal the live classroom, which other
// goroutines mutate.
type Snapshotter interface {
	Snapshot(classroomID string) (*models.Classroom, bool)
}

// Handler handles classroom HTTP endpoints.
type Handler struct {
	store  *Store
	live   Snapshotter
	logger *zap.Logger
}

// NewHandler creates a classrooms handler.
func NewHandler(store *Store, live Snapshotter, logger *zap.Logger) *Handler {
	return &Handler{store: store, live: live, logger: logger}
}

// Create handles POST /api/classroom/create.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	// A missing or empty body is fine; the store falls back to the
	// default classroom name.
	_ = c.ShouldBindJSON(&req)

	classroom := h.store.Create(req.Name)
	h.logger.Info("classroom created",
		zap.String("classroom_id", classroom.ID),
		zap.String("name", classroom.Name),
	)

	snapshot, ok := h.live.Snapshot(classroom.ID)
	if !ok {
		response.Internal(c, "classroom vanished after create")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"classroomId": snapshot.ID,
		"classroom":   snapshot,
	})
}

// Get handles GET /api/classroom/:id.
func (h *Handler) Get(c *gin.Context) {
	snapshot, ok := h.live.Snapshot(c.Param("id"))
	if !ok {
		response.NotFound(c, "classroom not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"classroom": snapshot,
	})
}
