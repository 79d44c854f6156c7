// Package board implements the feedback board's server-side rules: accounts,
// feedback items and comment mutations with validation and authorization.
// It is shared by the HTTP server and the local gateway.
package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/colonyops/feedboard/internal/auth"
	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/feedback"
	"github.com/colonyops/feedboard/internal/core/identity"
	"github.com/colonyops/feedboard/internal/core/logging"
	"github.com/colonyops/feedboard/internal/data/db"
	"github.com/colonyops/feedboard/internal/data/stores"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidCredentials is returned by Login for an unknown email or a
	// wrong password.
	ErrInvalidCredentials = errors.New("the provided credentials are incorrect")
	// ErrUnauthenticated is returned when a token is missing, invalid,
	// expired or revoked.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Thread is a feedback item with its comments in display order.
type Thread struct {
	Feedback feedback.Feedback
	Comments []comment.Comment
	Names    comment.Names
}

// Service applies the board rules on top of the stores.
type Service struct {
	users    *stores.UserStore
	feedback *stores.FeedbackStore
	comments *stores.CommentStore
	tokens   *stores.TokenStore
	jwt      *auth.Manager
	limits   comment.Limits
	log      zerolog.Logger
}

// New wires a service over database.
func New(database *db.DB, jwt *auth.Manager, limits comment.Limits) *Service {
	return &Service{
		users:    stores.NewUserStore(database),
		feedback: stores.NewFeedbackStore(database),
		comments: stores.NewCommentStore(database),
		tokens:   stores.NewTokenStore(database),
		jwt:      jwt,
		limits:   limits,
		log:      logging.WithContextFields(logging.Component("board")),
	}
}

// Limits returns the comment length limits enforced by the service.
func (s *Service) Limits() comment.Limits {
	return s.limits
}

// Register creates a member account and signs it in.
func (s *Service) Register(ctx context.Context, r identity.Registration) (identity.Credentials, error) {
	if err := r.Validate(); err != nil {
		return identity.Credentials{}, err
	}

	hash, err := auth.HashPassword(r.Password)
	if err != nil {
		return identity.Credentials{}, err
	}

	u, err := s.users.Create(ctx, stores.NewUser{
		Email:        r.Email,
		Name:         r.Name,
		PasswordHash: hash,
		Role:         comment.RoleMember,
	})
	if err != nil {
		return identity.Credentials{}, err
	}

	s.log.Info().Str("user_id", u.ID).Msg("user registered")
	return s.issue(u)
}

// Login checks a password and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (identity.Credentials, error) {
	u, hash, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, identity.ErrUserNotFound) {
		return identity.Credentials{}, ErrInvalidCredentials
	}
	if err != nil {
		return identity.Credentials{}, err
	}

	if err := auth.CheckPassword(hash, password); err != nil {
		if errors.Is(err, auth.ErrMismatch) {
			return identity.Credentials{}, ErrInvalidCredentials
		}
		return identity.Credentials{}, err
	}

	return s.issue(u)
}

func (s *Service) issue(u identity.User) (identity.Credentials, error) {
	issued, err := s.jwt.Issue(u.ID, string(u.Role))
	if err != nil {
		return identity.Credentials{}, err
	}
	return identity.Credentials{Token: issued.Token, User: u.Actor()}, nil
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (identity.User, *auth.Claims, error) {
	if token == "" {
		return identity.User{}, nil, ErrUnauthenticated
	}

	claims, err := s.jwt.Verify(token)
	if err != nil {
		return identity.User{}, nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return identity.User{}, nil, err
	}
	if revoked {
		return identity.User{}, nil, fmt.Errorf("%w: token revoked", ErrUnauthenticated)
	}

	u, err := s.users.Get(ctx, claims.UserID())
	if errors.Is(err, identity.ErrUserNotFound) {
		return identity.User{}, nil, fmt.Errorf("%w: user no longer exists", ErrUnauthenticated)
	}
	if err != nil {
		return identity.User{}, nil, err
	}

	return u, claims, nil
}

// Logout revokes the token described by claims.
func (s *Service) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.tokens.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// User returns an account by id.
func (s *Service) User(ctx context.Context, id string) (identity.User, error) {
	return s.users.Get(ctx, id)
}

// ListFeedback returns one page of feedback.
func (s *Service) ListFeedback(ctx context.Context, f feedback.Filter) (feedback.Page, error) {
	if f.Category != "" && !f.Category.IsValid() {
		return feedback.Page{}, fmt.Errorf("unknown category %q", f.Category)
	}
	return s.feedback.List(ctx, f)
}

// CreateFeedback stores a new feedback item authored by actor.
func (s *Service) CreateFeedback(ctx context.Context, actor comment.Actor, d feedback.Draft) (feedback.Feedback, error) {
	if actor.ID == "" {
		return feedback.Feedback{}, ErrUnauthenticated
	}
	if err := d.Validate(); err != nil {
		return feedback.Feedback{}, err
	}
	return s.feedback.Create(ctx, actor.ID, d)
}

// Thread loads a feedback item and its comments.
func (s *Service) Thread(ctx context.Context, feedbackID string) (Thread, error) {
	f, err := s.feedback.Get(ctx, feedbackID)
	if err != nil {
		return Thread{}, err
	}

	comments, names, err := s.comments.ListByFeedback(ctx, feedbackID)
	if err != nil {
		return Thread{}, err
	}
	if f.AuthorName != "" {
		names[f.AuthorID] = f.AuthorName
	}

	return Thread{Feedback: f, Comments: comments, Names: names}, nil
}

// CreateComment validates content and appends a comment to a feedback item.
// The stored content is the trimmed draft.
func (s *Service) CreateComment(ctx context.Context, actor comment.Actor, feedbackID, content string) (comment.Comment, error) {
	ctx = logging.WithFeedbackID(logging.WithActorID(ctx, actor.ID), feedbackID)

	if actor.ID == "" {
		return comment.Comment{}, ErrUnauthenticated
	}

	text, err := s.limits.Validate(content)
	if err != nil {
		return comment.Comment{}, err
	}

	c, err := s.comments.Create(ctx, feedbackID, actor.ID, text)
	if err != nil {
		return comment.Comment{}, err
	}

	s.log.Info().Ctx(ctx).Str("comment_id", c.ID).Msg("comment created")
	return c, nil
}

// UpdateComment replaces a comment's content. Only the author may edit.
func (s *Service) UpdateComment(ctx context.Context, actor comment.Actor, id, content string) (comment.Comment, error) {
	ctx = logging.WithCommentID(logging.WithActorID(ctx, actor.ID), id)

	if actor.ID == "" {
		return comment.Comment{}, ErrUnauthenticated
	}

	existing, err := s.comments.Get(ctx, id)
	if err != nil {
		return comment.Comment{}, err
	}
	if !comment.CanEdit(actor, existing) {
		s.log.Warn().Ctx(ctx).Msg("edit rejected")
		return comment.Comment{}, comment.ErrUnauthorized
	}

	text, err := s.limits.Validate(content)
	if err != nil {
		return comment.Comment{}, err
	}
	if text == strings.TrimSpace(existing.Content) {
		return existing, nil
	}

	updated, err := s.comments.Update(ctx, id, text)
	if err != nil {
		return comment.Comment{}, err
	}

	s.log.Info().Ctx(ctx).Msg("comment updated")
	return updated, nil
}

// DeleteComment removes a comment. The author and admins may delete.
func (s *Service) DeleteComment(ctx context.Context, actor comment.Actor, id string) error {
	ctx = logging.WithCommentID(logging.WithActorID(ctx, actor.ID), id)

	if actor.ID == "" {
		return ErrUnauthenticated
	}

	existing, err := s.comments.Get(ctx, id)
	if err != nil {
		return err
	}
	if !comment.CanDelete(actor, existing) {
		s.log.Warn().Ctx(ctx).Msg("delete rejected")
		return comment.ErrUnauthorized
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Ctx(ctx).Msg("comment deleted")
	return nil
}

// SeedUser is an account ensured by EnsureUsers.
type SeedUser struct {
	Email    string
	Name     string
	Password string
	Role     comment.Role
}

// EnsureUsers creates each seed user that does not exist yet.
func (s *Service) EnsureUsers(ctx context.Context, seeds []SeedUser) error {
	for _, seed := range seeds {
		_, _, err := s.users.GetByEmail(ctx, seed.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, identity.ErrUserNotFound) {
			return err
		}

		hash, err := auth.HashPassword(seed.Password)
		if err != nil {
			return err
		}
		if _, err := s.users.Create(ctx, stores.NewUser{
			Email:        seed.Email,
			Name:         seed.Name,
			PasswordHash: hash,
			Role:         seed.Role,
		}); err != nil {
			return fmt.Errorf("seed %s: %w", seed.Email, err)
		}
		s.log.Info().Str("email", seed.Email).Msg("seeded user")
	}
	return nil
}

// PurgeRevokedTokens drops revocations of tokens that have expired.
func (s *Service) PurgeRevokedTokens(ctx context.Context) (int64, error) {
	return s.tokens.Purge(ctx, time.Now())
}
