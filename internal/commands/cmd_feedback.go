package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/feedback"
	"github.com/colonyops/feedboard/internal/core/styles"
	"github.com/colonyops/feedboard/internal/gateway"
	"github.com/colonyops/feedboard/internal/printer"
	"github.com/colonyops/feedboard/pkg/iojson"
)

// feedbackInput is the JSON accepted by `feedback new --file`.
type feedbackInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type FeedbackCmd struct {
	flags *Flags

	// list flags
	category   string
	search     string
	page       int
	jsonOutput bool

	// new flags
	title       string
	description string
	input       iojson.FileReader[feedbackInput]
}

// NewFeedbackCmd creates the feedback command group.
func NewFeedbackCmd(flags *Flags) *FeedbackCmd {
	return &FeedbackCmd{flags: flags}
}

// Register adds the feedback commands to the application.
func (cmd *FeedbackCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "feedback",
		Usage: "List, show and submit feedback",
		Commands: []*cli.Command{
			cmd.listCmd(),
			cmd.showCmd(),
			cmd.newCmd(),
		},
	})
	return app
}

func (cmd *FeedbackCmd) listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List feedback items",
		UsageText: "feedboard feedback list [--category <c>] [--search <q>] [--page <n>] [--json]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "category",
				Usage:       "filter by category (" + categoryList() + ")",
				Destination: &cmd.category,
			},
			&cli.StringFlag{
				Name:        "search",
				Aliases:     []string{"s"},
				Usage:       "match title or description",
				Destination: &cmd.search,
			},
			&cli.IntFlag{
				Name:        "page",
				Usage:       "page number",
				Value:       1,
				Destination: &cmd.page,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.runList,
	}
}

func (cmd *FeedbackCmd) runList(ctx context.Context, c *cli.Command) error {
	filter := feedback.Filter{Search: cmd.search, Page: cmd.page}
	if cmd.category != "" {
		cat, err := feedback.ParseCategory(cmd.category)
		if err != nil {
			return err
		}
		filter.Category = cat
	}

	page, err := cmd.flags.Backend.ListFeedback(ctx, filter)
	if err != nil {
		return fmt.Errorf("list feedback: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		for _, fb := range page.Items {
			if err := iojson.WriteLine(out, fb); err != nil {
				return fmt.Errorf("encode feedback: %w", err)
			}
		}
		return nil
	}

	if len(page.Items) == 0 {
		printer.Ctx(ctx).Infof("No feedback found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCATEGORY\tTITLE\tAUTHOR\tCOMMENTS")
	for _, fb := range page.Items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", fb.ID, fb.Category, fb.Title, fb.AuthorName, fb.Comments)
	}
	_ = w.Flush()

	if page.LastPage > 1 {
		_, _ = fmt.Fprintf(out, "\npage %d of %d (%d items)\n", page.CurrentPage, page.LastPage, page.Total)
	}
	return nil
}

func (cmd *FeedbackCmd) showCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a feedback item with its comments",
		UsageText: "feedboard feedback show <id> [--json]",
		ShellComplete: FeedbackIDCompleter(cmd.flags),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.runShow,
	}
}

func (cmd *FeedbackCmd) runShow(ctx context.Context, c *cli.Command) error {
	id := c.Args().First()
	if id == "" {
		return errors.New("feedback id is required")
	}

	thread, err := cmd.flags.Backend.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("load feedback: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, threadJSON(thread))
	}

	_, err = fmt.Fprintln(out, renderThread(thread, cmd.flags.Config.TUI.PreviewWidth))
	return err
}

// threadOutput is the JSON shape of `feedback show --json`.
type threadOutput struct {
	feedback.Feedback
	CommentList []commentOutput `json:"comments"`
}

func threadJSON(t gateway.Thread) threadOutput {
	out := threadOutput{Feedback: t.Feedback, CommentList: make([]commentOutput, 0, len(t.Comments))}
	for _, c := range t.Comments {
		out.CommentList = append(out.CommentList, newCommentOutput(t.Names, c))
	}
	return out
}

func renderThread(t gateway.Thread, width int) string {
	fb := t.Feedback
	now := timeNow()
	engine := terminalEngine()

	var b strings.Builder
	b.WriteString(styles.FeedbackTitleStyle.Render(fb.Title))
	b.WriteString("\n")
	b.WriteString(styles.CategoryBadgeStyle.Render(string(fb.Category)))
	author := fb.AuthorName
	if author == "" {
		author = comment.AuthorName(t.Names, comment.Comment{AuthorID: fb.AuthorID})
	}
	b.WriteString(styles.FeedbackMetaStyle.Render(fmt.Sprintf(" by %s · %s", author, comment.Ago(now, fb.CreatedAt))))
	b.WriteString("\n")
	b.WriteString(renderDescription(fb.Description, width))
	b.WriteString("\n\n")
	b.WriteString(styles.CommandHeaderStyle.Render(fmt.Sprintf("Comments (%d)", len(t.Comments))))
	b.WriteString("\n")

	if len(t.Comments) == 0 {
		b.WriteString(styles.EmptyHintStyle.Render("No comments yet"))
		return b.String()
	}

	for _, c := range t.Comments {
		name := comment.AuthorName(t.Names, c)
		header := styles.CommentAuthorStyle.Render(name) +
			styles.CommentTimeStyle.Render(" · "+comment.Ago(now, c.CreatedAt))
		if c.Edited() {
			header += styles.CommentEditedStyle.Render(" (edited)")
		}
		b.WriteString("\n")
		b.WriteString(styles.CommentCardStyle.Render(header + "\n" + engine.Render(c.Content)))
		b.WriteString("\n")
		b.WriteString(styles.HelpStyle.Render("  id: " + c.ID))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderDescription(text string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

func (cmd *FeedbackCmd) newCmd() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Submit a feedback item",
		UsageText: "feedboard feedback new [--title <t>] [--category <c>] [--description <d>] [-f file.json]",
		Description: `Creates a feedback item as the signed in user.

Without --title the values are asked for interactively. Piped JSON or -f
reads {"title", "description", "category"} instead.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "feedback title",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "category",
				Usage:       "one of " + categoryList(),
				Destination: &cmd.category,
			},
			&cli.StringFlag{
				Name:        "description",
				Aliases:     []string{"d"},
				Usage:       "feedback description",
				Destination: &cmd.description,
			},
			cmd.input.Flag(),
		},
		Action: cmd.runNew,
	}
}

func (cmd *FeedbackCmd) runNew(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	cmd.input.SetStdin(c.Root().Reader)
	draft, err := cmd.draft()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	if err := draft.Validate(); err != nil {
		return err
	}

	fb, err := cmd.flags.Backend.CreateFeedback(ctx, draft)
	if err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}

	p.Success("Feedback submitted", fb.ID)
	p.Printf("Open it with: feedboard tui --feedback %s", fb.ID)
	return nil
}

// draft collects the feedback from flags, JSON input or a form, in that
// order.
func (cmd *FeedbackCmd) draft() (feedback.Draft, error) {
	switch {
	case cmd.title != "":
		return feedback.Draft{
			Title:       cmd.title,
			Description: cmd.description,
			Category:    feedback.Category(cmd.category),
		}, nil

	case cmd.input.Provided():
		in, err := cmd.input.Read()
		if err != nil {
			return feedback.Draft{}, err
		}
		return feedback.Draft{
			Title:       in.Title,
			Description: in.Description,
			Category:    feedback.Category(in.Category),
		}, nil
	}

	return cmd.runForm()
}

func (cmd *FeedbackCmd) runForm() (feedback.Draft, error) {
	if !isInteractive() {
		return feedback.Draft{}, errNotInteractive
	}

	var d feedback.Draft
	category := string(feedback.Categories()[0])

	options := make([]huh.Option[string], 0, len(feedback.Categories()))
	for _, c := range feedback.Categories() {
		options = append(options, huh.NewOption(string(c), string(c)))
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Validate(feedback.ValidateTitle).
				Value(&d.Title),
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&category),
			huh.NewText().
				Title("Description").
				Validate(feedback.ValidateDescription).
				Value(&d.Description),
		),
	).WithTheme(styles.FormTheme()).Run()
	d.Category = feedback.Category(category)
	return d, err
}

func categoryList() string {
	cats := feedback.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
