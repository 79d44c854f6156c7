package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/feedboard/internal/core/markup"
	"github.com/colonyops/feedboard/internal/core/styles"
	"github.com/colonyops/feedboard/pkg/iojson"
)

type RenderCmd struct {
	flags *Flags

	terminal bool
	preview  bool
	format   string
	start    int
	end      int
}

// NewRenderCmd creates the render command.
func NewRenderCmd(flags *Flags) *RenderCmd {
	return &RenderCmd{flags: flags}
}

// Register adds the render command to the application.
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Render comment markup",
		UsageText: "feedboard render [--terminal] [--preview] [--format bold|italic|code --start N --end N] [text]",
		Description: `Renders comment markup as HTML, or with terminal styling when --terminal is
set. The text is read from the argument or from stdin.

--format applies a toolbar action instead: the selection [start, end) is
wrapped in the format's markers (a placeholder is inserted when the
selection is empty) and the resulting source is printed.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "terminal",
				Usage:       "render with terminal styles instead of HTML",
				Destination: &cmd.terminal,
			},
			&cli.BoolFlag{
				Name:        "preview",
				Usage:       "render as the composer preview does",
				Destination: &cmd.preview,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "apply a formatting action (bold, italic, code)",
				Destination: &cmd.format,
			},
			&cli.IntFlag{
				Name:        "start",
				Usage:       "selection start for --format (code points)",
				Destination: &cmd.start,
			},
			&cli.IntFlag{
				Name:        "end",
				Usage:       "selection end for --format (defaults to --start)",
				Value:       -1,
				Destination: &cmd.end,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *RenderCmd) run(_ context.Context, c *cli.Command) error {
	text, err := readText(c)
	if err != nil {
		return err
	}

	out := c.Root().Writer

	if cmd.format != "" {
		f, err := markup.ParseFormat(cmd.format)
		if err != nil {
			return err
		}
		end := cmd.end
		if end < 0 {
			end = cmd.start
		}
		edit, err := markup.Apply(text, cmd.start, end, f)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, edit.Text)
		return err
	}

	dialect := markup.HTML()
	if cmd.terminal {
		dialect = markup.Terminal(styles.MarkupCodeStyle, styles.MarkupMentionStyle)
	}
	engine := markup.New(dialect)

	rendered := engine.Render(text)
	if cmd.preview {
		rendered = engine.RenderPreview(text)
	}
	_, err = fmt.Fprintln(out, rendered)
	return err
}

// readText returns the joined arguments or, when there are none, stdin.
func readText(c *cli.Command) (string, error) {
	if c.Args().Len() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}
	if iojson.IsTerminal(c.Root().Reader) {
		return "", errors.New("no text provided; pass it as an argument or pipe it on stdin")
	}

	data, err := io.ReadAll(c.Root().Reader)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func terminalEngine() *markup.Engine {
	return markup.New(markup.Terminal(styles.MarkupCodeStyle, styles.MarkupMentionStyle))
}
