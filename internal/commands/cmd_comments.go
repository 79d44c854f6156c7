package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/styles"
	"github.com/colonyops/feedboard/internal/printer"
	"github.com/colonyops/feedboard/pkg/iojson"
)

// timeNow is replaced in tests.
var timeNow = time.Now

// commentOutput is the JSON shape of a comment in CLI output.
type commentOutput struct {
	comment.Comment
	AuthorName string `json:"author_name"`
	Edited     bool   `json:"edited"`
}

func newCommentOutput(names comment.Names, c comment.Comment) commentOutput {
	return commentOutput{Comment: c, AuthorName: comment.AuthorName(names, c), Edited: c.Edited()}
}

type CommentsCmd struct {
	flags *Flags

	content    string
	yes        bool
	jsonOutput bool
}

// NewCommentsCmd creates the comments command group.
func NewCommentsCmd(flags *Flags) *CommentsCmd {
	return &CommentsCmd{flags: flags}
}

// Register adds the comments commands to the application.
func (cmd *CommentsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:    "comments",
		Aliases: []string{"comment"},
		Usage:   "Read and write comments on feedback",
		Description: `Scriptable access to the comment section of a feedback item.

Content uses the comment markup: **bold**, *italic*, ` + "`code`" + ` and @mentions.
The same length rules as the TUI apply.`,
		Commands: []*cli.Command{
			{
				Name:      "list",
				Aliases:   []string{"ls"},
				Usage:     "List the comments of a feedback item",
				UsageText: "feedboard comments list <feedback-id> [--json]",
				ShellComplete: FeedbackIDCompleter(cmd.flags),
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
				Name:      "add",
				Usage:     "Post a comment",
				UsageText: "feedboard comments add <feedback-id> [--content <text>]",
				ShellComplete: FeedbackIDCompleter(cmd.flags),
				Flags:     []cli.Flag{cmd.contentFlag()},
				Action:    cmd.runAdd,
			},
			{
				Name:      "edit",
				Usage:     "Replace the content of one of your comments",
				UsageText: "feedboard comments edit <comment-id> --content <text>",
				Flags:     []cli.Flag{cmd.contentFlag()},
				Action:    cmd.runEdit,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a comment",
				UsageText: "feedboard comments delete <comment-id> [--yes]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip the confirmation prompt",
						Destination: &cmd.yes,
					},
				},
				Action: cmd.runDelete,
			},
		},
	})
	return app
}

func (cmd *CommentsCmd) contentFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "content",
		Aliases:     []string{"m"},
		Usage:       "comment text (prompted for when omitted)",
		Destination: &cmd.content,
	}
}

func (cmd *CommentsCmd) runList(ctx context.Context, c *cli.Command) error {
	id, err := requireArg(c, "feedback id")
	if err != nil {
		return err
	}

	thread, err := cmd.flags.Backend.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("load feedback: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		for _, cm := range thread.Comments {
			if err := iojson.WriteLine(out, newCommentOutput(thread.Names, cm)); err != nil {
				return fmt.Errorf("encode comment: %w", err)
			}
		}
		return nil
	}

	if len(thread.Comments) == 0 {
		printer.Ctx(ctx).Infof("No comments yet")
		return nil
	}

	engine := terminalEngine()
	now := timeNow()
	for _, cm := range thread.Comments {
		header := styles.CommentAuthorStyle.Render(comment.AuthorName(thread.Names, cm)) +
			styles.CommentTimeStyle.Render(" · "+comment.Ago(now, cm.CreatedAt)) +
			styles.HelpStyle.Render("  "+cm.ID)
		_, _ = fmt.Fprintln(out, header)
		_, _ = fmt.Fprintln(out, engine.Render(cm.Content))
		_, _ = fmt.Fprintln(out)
	}
	return nil
}

// readContent returns the --content value or prompts for it.
func (cmd *CommentsCmd) readContent(ctx context.Context, title string) (string, error) {
	limits := cmd.flags.Config.CommentLimits()
	if cmd.content != "" {
		return limits.Validate(cmd.content)
	}

	text, err := promptText(ctx, title, fmt.Sprintf("%d to %d characters", limits.Min, limits.Max), func(s string) error {
		_, err := limits.Validate(s)
		return err
	})
	if err != nil {
		return "", err
	}
	return limits.Validate(text)
}

func (cmd *CommentsCmd) runAdd(ctx context.Context, c *cli.Command) error {
	id, err := requireArg(c, "feedback id")
	if err != nil {
		return err
	}

	content, err := cmd.readContent(ctx, "Add a comment")
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	created, err := cmd.flags.Backend.Create(ctx, id, content)
	if err != nil {
		return commandError(err, "Failed to add comment. Please try again.")
	}

	printer.Ctx(ctx).Success("Comment added successfully!", created.ID)
	return nil
}

func (cmd *CommentsCmd) runEdit(ctx context.Context, c *cli.Command) error {
	id, err := requireArg(c, "comment id")
	if err != nil {
		return err
	}

	content, err := cmd.readContent(ctx, "Edit comment")
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	if _, err := cmd.flags.Backend.Update(ctx, id, content); err != nil {
		return commandError(err, "Failed to update comment. Please try again.")
	}

	printer.Ctx(ctx).Successf("Comment updated successfully!")
	return nil
}

func (cmd *CommentsCmd) runDelete(ctx context.Context, c *cli.Command) error {
	id, err := requireArg(c, "comment id")
	if err != nil {
		return err
	}

	confirmer := promptConfirmer{assumeYes: cmd.yes}
	ok, err := confirmer.Ask(ctx, cmd.flags.Config.Comments.ConfirmDelete)
	if err != nil {
		if errors.Is(err, errNotInteractive) {
			return errors.New("refusing to delete without confirmation; pass --yes")
		}
		return err
	}
	if !ok {
		printer.Ctx(ctx).Infof("Comment kept")
		return nil
	}

	if err := cmd.flags.Backend.Delete(ctx, id); err != nil {
		return commandError(err, "Failed to delete comment. Please try again.")
	}

	printer.Ctx(ctx).Successf("Comment deleted successfully!")
	return nil
}

func requireArg(c *cli.Command, name string) (string, error) {
	v := c.Args().First()
	if v == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return v, nil
}

// userError shows a friendly message while keeping the cause for errors.Is.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

// commandError turns a gateway failure into its user-facing message.
func commandError(err error, fallback string) error {
	return &userError{msg: comment.UserMessage(err, fallback), err: err}
}
