// Package comment implements comment authoring and editing: draft validation,
// the composer and inline editor state machines, and the ordered comment list
// they report into.
package comment

import "time"

// Role is the privilege level of an actor.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Actor is the authenticated user performing operations.
type Actor struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
	Role        Role   `json:"role"`
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Comment is a persisted comment on a feedback item. Content holds the raw
// markup source; it is rendered on display and never stored rendered.
type Comment struct {
	ID         string    `json:"id"`
	FeedbackID string    `json:"feedback_id"`
	AuthorID   string    `json:"user_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Edited reports whether the comment changed after it was created.
func (c Comment) Edited() bool {
	return !c.UpdatedAt.Equal(c.CreatedAt)
}

// CanEdit reports whether actor may edit c. Only the author may edit.
func CanEdit(actor Actor, c Comment) bool {
	return actor.ID != "" && actor.ID == c.AuthorID
}

// CanDelete reports whether actor may delete c. The author and admins may
// delete.
func CanDelete(actor Actor, c Comment) bool {
	if actor.ID == "" {
		return false
	}
	return actor.ID == c.AuthorID || actor.IsAdmin()
}
