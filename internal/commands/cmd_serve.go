package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/feedboard/internal/board"
	"github.com/colonyops/feedboard/internal/board/sweep"
	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/config"
	"github.com/colonyops/feedboard/internal/printer"
	"github.com/colonyops/feedboard/internal/server"
)

const tokenSweepInterval = time.Hour

type ServeCmd struct {
	flags *Flags

	addr  string
	pprof bool
}

// NewServeCmd creates the serve command.
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application.
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Run the development API server",
		UsageText: "feedboard serve [--addr :5000]",
		Description: `Serves the feedback and comment API over the local database.

Clients in http gateway mode (gateway.mode: http) talk to this server.
Accounts listed under server.seed_users are created on start.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address (defaults to server.addr)",
				Sources:     cli.EnvVars("FEEDBOARD_ADDR"),
				Destination: &cmd.addr,
			},
			&cli.BoolFlag{
				Name:        "pprof",
				Usage:       "serve pprof profiles under /debug/pprof",
				Destination: &cmd.pprof,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ServeCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config
	svc := cmd.flags.Board

	addr := cmd.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	if err := svc.EnsureUsers(ctx, seedUsers(cfg.Server.SeedUsers)); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweep.Start(ctx, svc, tokenSweepInterval)

	srv := server.New(svc, server.Options{
		Addr:           addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Profiling:      cmd.pprof,
	})

	printer.Ctx(ctx).Success("Serving feedboard API", addr)
	return srv.ListenAndServe(ctx)
}

func seedUsers(in []config.SeedUser) []board.SeedUser {
	out := make([]board.SeedUser, 0, len(in))
	for _, s := range in {
		role := comment.Role(s.Role)
		if role == "" {
			role = comment.RoleMember
		}
		out = append(out, board.SeedUser{
			Email:    s.Email,
			Name:     s.Name,
			Password: s.Password,
			Role:     role,
		})
	}
	return out
}
