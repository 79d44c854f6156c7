package stores

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/identity"
	"github.com/colonyops/feedboard/internal/data/db"
	"github.com/google/uuid"
)

// UserStore persists accounts.
type UserStore struct {
	db *db.DB
}

// NewUserStore creates a new SQLite-backed user store.
func NewUserStore(db *db.DB) *UserStore {
	return &UserStore{db: db}
}

// NewUser describes an account to create. PasswordHash must already be hashed.
type NewUser struct {
	Email        string
	Name         string
	PasswordHash string
	Role         comment.Role
}

// Create inserts a user and returns it. Returns identity.ErrEmailTaken when
// the email is already registered.
func (s *UserStore) Create(ctx context.Context, nu NewUser) (identity.User, error) {
	role := nu.Role
	if role == "" {
		role = comment.RoleMember
	}

	u := identity.User{
		ID:        uuid.NewString(),
		Email:     strings.ToLower(strings.TrimSpace(nu.Email)),
		Name:      strings.TrimSpace(nu.Name),
		Role:      role,
		CreatedAt: time.Now(),
	}

	err := s.db.Queries().CreateUser(ctx, db.CreateUserParams{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: nu.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt.UnixNano(),
	})
	if IsUniqueError(err) {
		return identity.User{}, identity.ErrEmailTaken
	}
	if err != nil {
		return identity.User{}, fmt.Errorf("create user: %w", err)
	}

	return u, nil
}

// Get returns a user by ID.
func (s *UserStore) Get(ctx context.Context, id string) (identity.User, error) {
	row, err := s.db.Queries().GetUser(ctx, id)
	if IsNotFoundError(err) {
		return identity.User{}, identity.ErrUserNotFound
	}
	if err != nil {
		return identity.User{}, fmt.Errorf("get user: %w", err)
	}
	return rowToUser(row), nil
}

// GetByEmail returns a user and their password hash.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (identity.User, string, error) {
	row, err := s.db.Queries().GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if IsNotFoundError(err) {
		return identity.User{}, "", identity.ErrUserNotFound
	}
	if err != nil {
		return identity.User{}, "", fmt.Errorf("get user by email: %w", err)
	}
	return rowToUser(row), row.PasswordHash, nil
}

// List returns all users in creation order.
func (s *UserStore) List(ctx context.Context) ([]identity.User, error) {
	rows, err := s.db.Queries().ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]identity.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, rowToUser(row))
	}
	return users, nil
}

func rowToUser(row db.User) identity.User {
	return identity.User{
		ID:        row.ID,
		Email:     row.Email,
		Name:      row.Name,
		Role:      comment.Role(row.Role),
		CreatedAt: time.Unix(0, row.CreatedAt),
	}
}
