package models

// Role of a classroom participant. Names are self-asserted; roles are a
// cooperation contract, not a security boundary.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Session binds a connection to the classroom it joined. Created on
// join-classroom, destroyed on disconnect; re-joining overwrites it.
type Session struct {
	ConnID      string
	ClassroomID string
	Role        Role
	Name        string
}
