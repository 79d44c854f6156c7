package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// NewApp builds the root command with every subcommand registered. The
// caller adds the Before and After hooks that populate flags.
func NewApp(flags *Flags, version string) *cli.Command {
	app := &cli.Command{
		Name:      "feedboard",
		Usage:     "Discuss product feedback from the terminal",
		UsageText: "feedboard [global options] command [command options]",
		Description: `Feedboard lists product feedback and lets you comment on it.

Run 'feedboard --feedback <id>' to open the comment section of a feedback
item. Comments support **bold**, *italic*, ` + "`code`" + ` and @mentions.

By default everything is stored in a local database. Set gateway.mode to
http to work against a server started with 'feedboard serve'.`,
		Version:               version,
		EnableShellCompletion: true,
		Flags:                 GlobalFlags(flags),
	}

	tuiCmd := NewTuiCmd(flags)

	app = tuiCmd.Register(app)
	app = NewFeedbackCmd(flags).Register(app)
	app = NewCommentsCmd(flags).Register(app)
	app = NewRenderCmd(flags).Register(app)
	app = NewAccountCmd(flags).Register(app)
	app = NewNotificationsCmd(flags).Register(app)
	app = NewServeCmd(flags).Register(app)
	app = NewConfigValidateCmd(flags).Register(app)
	app = NewDoctorCmd(flags).Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'feedboard --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	return app
}
