package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/feedboard/internal/core/config"
	"github.com/colonyops/feedboard/internal/core/identity"
)

// ConfigCheck validates the loaded configuration.
type ConfigCheck struct {
	Config *config.Config
	Path   string
}

func (c ConfigCheck) Name() string { return "Configuration" }

func (c ConfigCheck) Run(_ context.Context, _ bool) Result {
	r := Result{Name: c.Name()}

	err := c.Config.ValidateDeep(c.Path)
	var fieldErrs criterio.FieldErrors
	switch {
	case err == nil:
		r.Items = append(r.Items, pass("config valid", c.Path))
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			r.Items = append(r.Items, fail(fe.Field, fe.Err.Error()))
		}
	default:
		r.Items = append(r.Items, fail("config", err.Error()))
	}

	for _, w := range c.Config.Warnings() {
		r.Items = append(r.Items, warn(w.Item, w.Message))
	}
	return r
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// StorageCheck verifies the local database answers.
type StorageCheck struct {
	Path     string
	Database Pinger
}

func (c StorageCheck) Name() string { return "Database" }

func (c StorageCheck) Run(ctx context.Context, _ bool) Result {
	r := Result{Name: c.Name()}
	if err := c.Database.Ping(ctx); err != nil {
		r.Items = append(r.Items, fail("sqlite", err.Error()))
		return r
	}
	r.Items = append(r.Items, pass("sqlite", c.Path))
	return r
}

// GatewayCheck verifies the configured backend is reachable.
type GatewayCheck struct {
	Mode    config.GatewayMode
	BaseURL string
	// Server is pinged in http mode.
	Server Pinger
}

func (c GatewayCheck) Name() string { return "Gateway" }

func (c GatewayCheck) Run(ctx context.Context, _ bool) Result {
	r := Result{Name: c.Name()}

	if c.Mode != config.ModeHTTP {
		r.Items = append(r.Items, pass("mode", "local database"))
		return r
	}

	r.Items = append(r.Items, pass("mode", "http"))
	if c.Server == nil {
		r.Items = append(r.Items, fail("server", "no client configured"))
		return r
	}
	if err := c.Server.Ping(ctx); err != nil {
		r.Items = append(r.Items, fail("server", fmt.Sprintf("%s unreachable: %v", c.BaseURL, err)))
		return r
	}
	r.Items = append(r.Items, pass("server", c.BaseURL))
	return r
}

// UserSource resolves the user behind the stored token.
type UserSource interface {
	CurrentUser(ctx context.Context) (identity.User, error)
}

// SessionCheck verifies the stored login is still accepted. A rejected
// token is fixable by clearing the session.
type SessionCheck struct {
	Session *identity.Session
	Users   UserSource
	// Rejected reports whether err means the token is no longer valid.
	Rejected func(err error) bool
}

func (c SessionCheck) Name() string { return "Session" }

func (c SessionCheck) Run(ctx context.Context, fix bool) Result {
	r := Result{Name: c.Name()}

	if c.Session.Token() == "" {
		r.Items = append(r.Items, warn("signed in", "run 'feedboard login' to comment"))
		return r
	}

	user, err := c.Users.CurrentUser(ctx)
	switch {
	case err == nil:
		r.Items = append(r.Items, pass("signed in", fmt.Sprintf("%s <%s>", user.Name, user.Email)))
	case c.Rejected != nil && c.Rejected(err):
		if fix {
			if cerr := c.Session.Clear(); cerr != nil {
				r.Items = append(r.Items, fail("token", "clear session: "+cerr.Error()))
				return r
			}
			r.Items = append(r.Items, warn("signed in", "expired session cleared, run 'feedboard login'"))
			return r
		}
		item := fail("token", "stored token was rejected")
		item.Fixable = true
		r.Items = append(r.Items, item)
	default:
		r.Items = append(r.Items, fail("token", err.Error()))
	}
	return r
}
