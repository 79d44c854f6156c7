// Package gateway defines the backend the CLI and TUI talk to. httpgw talks to
// a feedboard server over HTTP; localgw works directly on the local database.
package gateway

import (
	"context"
	"errors"
	"net/http"

	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/feedback"
	"github.com/colonyops/feedboard/internal/core/identity"
)

// Thread is a feedback item loaded together with its comments.
type Thread struct {
	Feedback feedback.Feedback
	Comments []comment.Comment
	Names    comment.Names
}

// Backend extends the comment gateway with the reads and account operations
// the front ends need. Login and Register store the credentials in the
// session; Logout clears it.
type Backend interface {
	comment.Gateway

	Load(ctx context.Context, feedbackID string) (Thread, error)
	ListFeedback(ctx context.Context, f feedback.Filter) (feedback.Page, error)
	CreateFeedback(ctx context.Context, d feedback.Draft) (feedback.Feedback, error)

	CurrentUser(ctx context.Context) (identity.User, error)
	Login(ctx context.Context, email, password string) (identity.Credentials, error)
	Register(ctx context.Context, r identity.Registration) (identity.Credentials, error)
	Logout(ctx context.Context) error
}

// IsUnauthenticated reports whether err is a gateway error caused by a
// missing or rejected token.
func IsUnauthenticated(err error) bool {
	var gerr *comment.GatewayError
	return errors.As(err, &gerr) && gerr.Status == http.StatusUnauthorized
}

// KindForStatus maps an HTTP status to the comment error kind both gateways
// report for it.
func KindForStatus(status int) error {
	switch status {
	case http.StatusNotFound:
		return comment.ErrNotFound
	case http.StatusUnprocessableEntity:
		return comment.ErrValidation
	default:
		return comment.ErrServer
	}
}
