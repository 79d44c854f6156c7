package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/feedboard/internal/core/eventbus"
	"github.com/colonyops/feedboard/internal/tui"
)

const eventBuffer = 64

type TuiCmd struct {
	flags *Flags

	feedbackID string
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI flags for registration on the root command. Root
// flags are inherited, so the tui subcommand sees them too.
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "feedback",
			Usage:       "id of the feedback item to open",
			Sources:     cli.EnvVars("FEEDBOARD_FEEDBACK"),
			Destination: &cmd.feedbackID,
		},
	}
}

// Register adds the tui command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tui",
		Usage:     "Open the comment section of a feedback item",
		UsageText: "feedboard tui --feedback <id>",
		Description: `Opens an interactive view of one feedback item and its comments.

Write comments in the composer, format them with ctrl+b/ctrl+t/ctrl+e and
post with ctrl+s. Press tab to move to the comment list, where e edits and
d deletes your own comments. Press ? for all shortcuts.`,
		Action: cmd.run,
	})
	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if cmd.feedbackID == "" {
		return errors.New("no feedback selected; pass --feedback <id> (see 'feedboard feedback list')")
	}
	if _, ok := cmd.flags.Session.Actor(); !ok {
		return errNotSignedIn
	}

	cfg := cmd.flags.Config

	bus := eventbus.New(eventBuffer)
	eventbus.NewNotificationRouter(bus).Register()
	eventbus.RegisterDebugLogger(bus, log.With().Str("cmp", "eventbus").Logger())

	busCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go bus.Start(busCtx)

	err := tui.Run(tui.Options{
		FeedbackID:     cmd.feedbackID,
		Backend:        cmd.flags.Backend,
		Actors:         cmd.flags.Session,
		Limits:         cfg.CommentLimits(),
		ConfirmMessage: cfg.Comments.ConfirmDelete,
		Events:         bus,
		Notify:         cmd.flags.Notify,
		PreviewWidth:   cfg.TUI.PreviewWidth,
		ToastDuration:  cfg.TUI.ToastDuration,
	})
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
