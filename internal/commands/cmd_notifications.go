package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/feedboard/internal/printer"
	"github.com/colonyops/feedboard/pkg/iojson"
)

type NotificationsCmd struct {
	flags *Flags

	jsonOutput bool
}

// NewNotificationsCmd creates the notifications command group.
func NewNotificationsCmd(flags *Flags) *NotificationsCmd {
	return &NotificationsCmd{flags: flags}
}

// Register adds the notifications commands to the application.
func (cmd *NotificationsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "notifications",
		Usage: "Show the toasts raised by recent TUI sessions",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List stored notifications, newest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON lines",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:   "clear",
				Usage:  "Delete all stored notifications",
				Action: cmd.runClear,
			},
		},
	})
	return app
}

func (cmd *NotificationsCmd) runList(ctx context.Context, c *cli.Command) error {
	history, err := cmd.flags.Notify.History(ctx)
	if err != nil {
		return fmt.Errorf("list notifications: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		for _, n := range history {
			if err := iojson.WriteLine(out, n); err != nil {
				return fmt.Errorf("encode notification: %w", err)
			}
		}
		return nil
	}

	if len(history) == 0 {
		printer.Ctx(ctx).Infof("No notifications")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TIME\tLEVEL\tMESSAGE")
	for _, n := range history {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", n.CreatedAt.Local().Format("Jan 2 15:04"), n.Level, n.Message)
	}
	return w.Flush()
}

func (cmd *NotificationsCmd) runClear(ctx context.Context, _ *cli.Command) error {
	if err := cmd.flags.Notify.Clear(ctx); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	printer.Ctx(ctx).Successf("Notifications cleared")
	return nil
}
