package identity

import (
	"errors"
	"time"

	"github.com/colonyops/feedboard/internal/core/comment"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email has already been taken")
)

// User is a registered account.
type User struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Name      string       `json:"name"`
	Role      comment.Role `json:"role"`
	CreatedAt time.Time    `json:"created_at"`
}

// Actor converts the user into the actor the comment state machines use.
func (u User) Actor() comment.Actor {
	role := u.Role
	if role == "" {
		role = comment.RoleMember
	}
	return comment.Actor{ID: u.ID, DisplayName: u.Name, Role: role}
}
