package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/feedboard/internal/auth"
	"github.com/colonyops/feedboard/internal/board"
	"github.com/colonyops/feedboard/internal/core/config"
	"github.com/colonyops/feedboard/internal/core/identity"
	"github.com/colonyops/feedboard/internal/core/styles"
	"github.com/colonyops/feedboard/internal/data/db"
	"github.com/colonyops/feedboard/internal/data/stores"
	"github.com/colonyops/feedboard/internal/gateway/httpgw"
	"github.com/colonyops/feedboard/internal/gateway/localgw"
	"github.com/colonyops/feedboard/internal/tui/notify"
)

// Setup loads the configuration and builds the shared dependencies: the
// database, the board service, the login session, the gateway selected by
// gateway.mode and the notification bus.
func (f *Flags) Setup(_ context.Context) error {
	cfg, err := config.Load(f.ConfigPath, f.DataDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	f.Config = cfg

	// Apply configured theme (validation ensures name is valid)
	if palette, ok := styles.GetPalette(cfg.TUI.Theme); ok {
		styles.SetTheme(palette)
	}

	f.DB, err = db.Open(cfg.DataDir, db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	secret := cfg.Server.JWTSecret
	if secret == "" {
		secret, err = auth.LoadOrCreateSecret(cfg.SecretFile())
		if err != nil {
			return err
		}
	}
	tokens, err := auth.NewManager(secret, cfg.Server.TokenTTL)
	if err != nil {
		return fmt.Errorf("token manager: %w", err)
	}
	f.Board = board.New(f.DB, tokens, cfg.CommentLimits())

	f.Session = identity.NewSession(cfg.SessionFile())
	if err := f.Session.Load(); err != nil {
		log.Warn().Err(err).Msg("ignoring unreadable session")
	}

	switch cfg.Gateway.Mode {
	case config.ModeHTTP:
		f.Backend = httpgw.New(cfg.Gateway.BaseURL, cfg.Gateway.Timeout, f.Session)
	default:
		f.Backend = localgw.New(f.Board, f.Session)
	}
	log.Debug().Str("mode", string(cfg.Gateway.Mode)).Msg("gateway selected")

	f.Notify = notify.NewBus(stores.NewNotifyStore(f.DB, 0))
	return nil
}

// Close releases what Setup opened.
func (f *Flags) Close() error {
	if f.DB == nil {
		return nil
	}
	err := f.DB.Close()
	f.DB = nil
	return err
}
