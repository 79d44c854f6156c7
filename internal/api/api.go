// Package api defines the JSON bodies exchanged between the development
// server and the HTTP gateway.
package api

import (
	"errors"
	"maps"
	"slices"

	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/feedback"
	"github.com/colonyops/feedboard/internal/core/identity"
	"github.com/hay-kot/criterio"
)

// Author is the embedded author reference of a comment.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Comment is a comment as sent over the wire.
type Comment struct {
	comment.Comment
	User *Author `json:"user,omitempty"`
}

// NewComment attaches the author name from names, when known.
func NewComment(c comment.Comment, names comment.Directory) Comment {
	out := Comment{Comment: c}
	if names == nil {
		return out
	}
	if name, ok := names.DisplayName(c.AuthorID); ok {
		out.User = &Author{ID: c.AuthorID, Name: name}
	}
	return out
}

// Comments converts a slice with NewComment.
func Comments(cs []comment.Comment, names comment.Directory) []Comment {
	out := make([]Comment, 0, len(cs))
	for _, c := range cs {
		out = append(out, NewComment(c, names))
	}
	return out
}

// FeedbackResponse is returned by GET /feedback/{id}.
type FeedbackResponse struct {
	Feedback feedback.Feedback `json:"feedback"`
	Comments []Comment         `json:"comments"`
}

// Names collects author names from the embedded users and the feedback author.
func (r FeedbackResponse) Names() comment.Names {
	names := make(comment.Names, len(r.Comments)+1)
	if r.Feedback.AuthorName != "" {
		names[r.Feedback.AuthorID] = r.Feedback.AuthorName
	}
	for _, c := range r.Comments {
		if c.User != nil && c.User.Name != "" {
			names[c.User.ID] = c.User.Name
		}
	}
	return names
}

// Plain strips the embedded authors.
func (r FeedbackResponse) Plain() []comment.Comment {
	out := make([]comment.Comment, 0, len(r.Comments))
	for _, c := range r.Comments {
		out = append(out, c.Comment)
	}
	return out
}

// FeedbackRequest is the body of POST /feedback.
type FeedbackRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    feedback.Category `json:"category"`
}

// Draft converts the request into a feedback draft.
func (r FeedbackRequest) Draft() feedback.Draft {
	return feedback.Draft{Title: r.Title, Description: r.Description, Category: r.Category}
}

// CreatedFeedbackResponse is returned by POST /feedback.
type CreatedFeedbackResponse struct {
	Feedback feedback.Feedback `json:"feedback"`
}

// CommentRequest is the body of POST /feedback/{id}/comments and
// PUT /comments/{id}.
type CommentRequest struct {
	Content string `json:"content"`
}

// CommentResponse wraps a single comment.
type CommentResponse struct {
	Comment Comment `json:"comment"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by POST /login and POST /register.
type AuthResponse struct {
	Token string        `json:"token"`
	User  identity.User `json:"user"`
}

// Credentials converts the response into session credentials.
func (r AuthResponse) Credentials() identity.Credentials {
	return identity.Credentials{Token: r.Token, User: r.User.Actor()}
}

// UserResponse is returned by GET /user.
type UserResponse struct {
	User identity.User `json:"user"`
}

// MessageResponse carries a plain status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every 4xx and 5xx response. Errors maps a
// field name to its messages for validation failures.
type ErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// First returns the first message of the alphabetically first field, or
// Message when there are none.
func (e ErrorResponse) First() string {
	for _, field := range slices.Sorted(maps.Keys(e.Errors)) {
		if msgs := e.Errors[field]; len(msgs) > 0 {
			return msgs[0]
		}
	}
	return e.Message
}

// FieldErrors converts criterio field errors into the wire map. ok is false
// when err carries no field errors.
func FieldErrors(err error) (fields map[string][]string, ok bool) {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return nil, false
	}

	fields = make(map[string][]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field] = append(fields[fe.Field], fe.Err.Error())
	}
	return fields, true
}
