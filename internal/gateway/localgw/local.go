// Package localgw implements gateway.Backend directly on the local database,
// applying the same rules as the server without a network hop.
package localgw

import (
	"context"
	"errors"
	"net/http"

	"github.com/colonyops/feedboard/internal/api"
	"github.com/colonyops/feedboard/internal/board"
	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/feedback"
	"github.com/colonyops/feedboard/internal/core/identity"
	"github.com/colonyops/feedboard/internal/gateway"
)

var _ gateway.Backend = (*Gateway)(nil)

// Gateway resolves the acting user from the session token on every call, so
// a revoked or expired token is rejected just like on the server.
type Gateway struct {
	svc     *board.Service
	session *identity.Session
}

// New creates a local gateway.
func New(svc *board.Service, session *identity.Session) *Gateway {
	if session == nil {
		session = identity.NewSession("")
	}
	return &Gateway{svc: svc, session: session}
}

func (g *Gateway) Create(ctx context.Context, feedbackID, content string) (comment.Comment, error) {
	actor, err := g.actor(ctx, "create comment")
	if err != nil {
		return comment.Comment{}, err
	}
	c, err := g.svc.CreateComment(ctx, actor, feedbackID, content)
	return c, wrap("create comment", err)
}

func (g *Gateway) Update(ctx context.Context, commentID, content string) (comment.Comment, error) {
	actor, err := g.actor(ctx, "update comment")
	if err != nil {
		return comment.Comment{}, err
	}
	c, err := g.svc.UpdateComment(ctx, actor, commentID, content)
	return c, wrap("update comment", err)
}

func (g *Gateway) Delete(ctx context.Context, commentID string) error {
	actor, err := g.actor(ctx, "delete comment")
	if err != nil {
		return err
	}
	return wrap("delete comment", g.svc.DeleteComment(ctx, actor, commentID))
}

func (g *Gateway) Load(ctx context.Context, feedbackID string) (gateway.Thread, error) {
	th, err := g.svc.Thread(ctx, feedbackID)
	if err != nil {
		return gateway.Thread{}, wrap("load feedback", err)
	}
	return gateway.Thread{Feedback: th.Feedback, Comments: th.Comments, Names: th.Names}, nil
}

func (g *Gateway) ListFeedback(ctx context.Context, f feedback.Filter) (feedback.Page, error) {
	page, err := g.svc.ListFeedback(ctx, f)
	return page, wrap("list feedback", err)
}

func (g *Gateway) CreateFeedback(ctx context.Context, d feedback.Draft) (feedback.Feedback, error) {
	actor, err := g.actor(ctx, "create feedback")
	if err != nil {
		return feedback.Feedback{}, err
	}
	f, err := g.svc.CreateFeedback(ctx, actor, d)
	return f, wrap("create feedback", err)
}

func (g *Gateway) CurrentUser(ctx context.Context) (identity.User, error) {
	u, _, err := g.svc.Authenticate(ctx, g.session.Token())
	if err != nil {
		return identity.User{}, wrap("current user", err)
	}
	return u, nil
}

func (g *Gateway) Login(ctx context.Context, email, password string) (identity.Credentials, error) {
	creds, err := g.svc.Login(ctx, email, password)
	if err != nil {
		return identity.Credentials{}, wrap("login", err)
	}
	return creds, g.session.Set(creds)
}

func (g *Gateway) Register(ctx context.Context, r identity.Registration) (identity.Credentials, error) {
	creds, err := g.svc.Register(ctx, r)
	if err != nil {
		return identity.Credentials{}, wrap("register", err)
	}
	return creds, g.session.Set(creds)
}

// Logout revokes the session token, if it is still valid, and clears the
// session.
func (g *Gateway) Logout(ctx context.Context) error {
	if token := g.session.Token(); token != "" {
		_, claims, err := g.svc.Authenticate(ctx, token)
		switch {
		case err == nil:
			if err := g.svc.Logout(ctx, claims); err != nil {
				return wrap("logout", err)
			}
		case !errors.Is(err, board.ErrUnauthenticated):
			return wrap("logout", err)
		}
	}
	return g.session.Clear()
}

func (g *Gateway) actor(ctx context.Context, op string) (comment.Actor, error) {
	u, _, err := g.svc.Authenticate(ctx, g.session.Token())
	if err != nil {
		return comment.Actor{}, wrap(op, err)
	}
	return u.Actor(), nil
}

// wrap converts service errors into gateway errors with the same kinds,
// statuses and messages the HTTP gateway reports. Validation errors pass
// through.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var verr *comment.ValidationError
	if errors.As(err, &verr) {
		return err
	}

	status, resp := api.ErrorFor(err)
	gerr := &comment.GatewayError{Op: op, Status: status, Kind: gateway.KindForStatus(status)}
	if status != http.StatusInternalServerError {
		gerr.Message = resp.First()
	}
	return gerr
}
