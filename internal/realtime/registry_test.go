package realtime

import (
	"testing"

	"github.com/classpulse/backend/internal/models"
)

func TestRegistryBindOverwrites(t *testing.T) {
	reg := NewRegistry()
	reg.Bind(&models.Session{ConnID: "c1", ClassroomID: "room-a", Role: models.RoleStudent, Name: "Ada"})
	reg.Bind(&models.Session{ConnID: "c1", ClassroomID: "room-b", Role: models.RoleStudent, Name: "Ada"})

	sess, ok := reg.Get("c1")
	if !ok {
		t.Fatal("expected session to exist")
	}
	if sess.ClassroomID != "room-b" {
		t.Errorf("expected overwritten binding, got %s", sess.ClassroomID)
	}
}

func TestRegistryRemove(t *testing.T) {
	reg := NewRegistry()
	reg.Bind(&models.Session{ConnID: "c1", ClassroomID: "room-a", Role: models.RoleTeacher, Name: "Ms. Prime"})

	sess, ok := reg.Remove("c1")
	if !ok || sess.Role != models.RoleTeacher {
		t.Fatalf("expected removed teacher session, got %+v", sess)
	}
	if _, ok := reg.Get("c1"); ok {
		t.Error("expected session gone after remove")
	}
	if _, ok := reg.Remove("c1"); ok {
		t.Error("expected second remove to report absence")
	}
}
