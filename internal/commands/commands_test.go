package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/doctor"
	"github.com/colonyops/feedboard/internal/core/feedback"
	"github.com/colonyops/feedboard/internal/core/identity"
	"github.com/colonyops/feedboard/internal/printer"
)

type harness struct {
	t     *testing.T
	dir   string
	flags *Flags

	stdin  string
	out    bytes.Buffer
	errOut bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	interactive := isInteractive
	isInteractive = func() bool { return false }
	t.Cleanup(func() { isInteractive = interactive })

	dir := t.TempDir()
	h := &harness{
		t:   t,
		dir: dir,
		flags: &Flags{
			ConfigPath: filepath.Join(dir, "config.yaml"),
			DataDir:    dir,
		},
	}
	require.NoError(t, h.flags.Setup(context.Background()))
	t.Cleanup(func() { _ = h.flags.Close() })
	return h
}

// run executes the CLI with args against the harness dependencies.
func (h *harness) run(args ...string) error {
	h.t.Helper()
	h.out.Reset()
	h.errOut.Reset()

	app := NewApp(h.flags, "test")
	app.Writer = &h.out
	app.ErrWriter = &h.errOut
	app.Reader = strings.NewReader(h.stdin)

	ctx := printer.NewContext(context.Background(), printer.New(&h.errOut))
	argv := append([]string{"feedboard", "--config", h.flags.ConfigPath, "--data-dir", h.dir}, args...)
	return app.Run(ctx, argv)
}

func (h *harness) signUp(name, email string) comment.Actor {
	h.t.Helper()
	creds, err := h.flags.Backend.Register(context.Background(), identity.Registration{
		Name:                 name,
		Email:                email,
		Password:             "password123",
		PasswordConfirmation: "password123",
	})
	require.NoError(h.t, err)
	return creds.User
}

func (h *harness) newFeedback() feedback.Feedback {
	h.t.Helper()
	fb, err := h.flags.Backend.CreateFeedback(context.Background(), feedback.Draft{
		Title:       "Dark mode support",
		Description: "Please add a dark theme to the dashboard.",
		Category:    feedback.CategoryFeature,
	})
	require.NoError(h.t, err)
	return fb
}

func decodeLines[T any](t *testing.T, s string) []T {
	t.Helper()
	var out []T
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if line == "" {
			continue
		}
		var v T
		require.NoError(t, json.Unmarshal([]byte(line), &v))
		out = append(out, v)
	}
	return out
}

func TestFeedback_NewAndList(t *testing.T) {
	h := newHarness(t)
	h.signUp("Ada", "ada@example.com")

	err := h.run("feedback", "new",
		"--title", "Export to CSV",
		"--category", "feature",
		"--description", "Allow exporting the feedback list as CSV.")
	require.NoError(t, err)
	assert.Contains(t, h.errOut.String(), "Feedback submitted")

	require.NoError(t, h.run("feedback", "list", "--json"))
	items := decodeLines[feedback.Feedback](t, h.out.String())
	require.Len(t, items, 1)
	assert.Equal(t, "Export to CSV", items[0].Title)
	assert.Equal(t, feedback.CategoryFeature, items[0].Category)

	require.NoError(t, h.run("feedback", "list"))
	assert.Contains(t, h.out.String(), "TITLE")
	assert.Contains(t, h.out.String(), "Export to CSV")
}

func TestFeedback_NewRejectsInvalidDraft(t *testing.T) {
	h := newHarness(t)
	h.signUp("Ada", "ada@example.com")

	err := h.run("feedback", "new", "--title", "ab", "--category", "feature", "--description", "short")
	require.Error(t, err)
}

func TestFeedback_NewFromJSON(t *testing.T) {
	h := newHarness(t)
	h.signUp("Ada", "ada@example.com")

	h.stdin = `{"title":"Keyboard shortcuts","description":"Add shortcuts for the common actions.","category":"improvement"}`
	require.NoError(t, h.run("feedback", "new"))

	require.NoError(t, h.run("feedback", "list", "--json"))
	items := decodeLines[feedback.Feedback](t, h.out.String())
	require.Len(t, items, 1)
	assert.Equal(t, "Keyboard shortcuts", items[0].Title)
}

func TestFeedback_Show(t *testing.T) {
	h := newHarness(t)
	h.signUp("Ada", "ada@example.com")
	fb := h.newFeedback()

	require.NoError(t, h.run("comments", "add", fb.ID, "--content", "Yes please"))
	require.NoError(t, h.run("feedback", "show", fb.ID))

	out := h.out.String()
	assert.Contains(t, out, "Dark mode support")
	assert.Contains(t, out, "Comments (1)")
	assert.Contains(t, out, "Yes please")
	assert.Contains(t, out, "Ada")
}

func TestComments_Lifecycle(t *testing.T) {
	h := newHarness(t)
	h.signUp("Ada", "ada@example.com")
	fb := h.newFeedback()

	require.NoError(t, h.run("comments", "add", fb.ID, "--content", "  Looks **great**  "))
	assert.Contains(t, h.errOut.String(), "Comment added successfully!")

	require.NoError(t, h.run("comments", "list", fb.ID, "--json"))
	listed := decodeLines[commentOutput](t, h.out.String())
	require.Len(t, listed, 1)
	assert.Equal(t, "Looks **great**", listed[0].Content)
	assert.Equal(t, "Ada", listed[0].AuthorName)
	assert.False(t, listed[0].Edited)

	id := listed[0].ID
	require.NoError(t, h.run("comments", "edit", id, "--content", "Looks *good*"))
	assert.Contains(t, h.errOut.String(), "Comment updated successfully!")

	require.NoError(t, h.run("comments", "list", fb.ID, "--json"))
	listed = decodeLines[commentOutput](t, h.out.String())
	require.Len(t, listed, 1)
	assert.Equal(t, "Looks *good*", listed[0].Content)

	err := h.run("comments", "delete", id)
	require.ErrorContains(t, err, "pass --yes")

	require.NoError(t, h.run("comments", "delete", id, "--yes"))
	assert.Contains(t, h.errOut.String(), "Comment deleted successfully!")

	require.NoError(t, h.run("comments", "list", fb.ID))
	assert.Contains(t, h.errOut.String(), "No comments yet")
}

func TestComments_AddValidates(t *testing.T) {
	h := newHarness(t)
	h.signUp("Ada", "ada@example.com")
	fb := h.newFeedback()

	err := h.run("comments", "add", fb.ID, "--content", "hi")
	require.ErrorIs(t, err, comment.ErrValidation)
	assert.EqualError(t, err, "Comment must be at least 3 characters long")
}

func TestComments_EditForeignComment(t *testing.T) {
	h := newHarness(t)
	h.signUp("Ada", "ada@example.com")
	fb := h.newFeedback()
	require.NoError(t, h.run("comments", "add", fb.ID, "--content", "First!"))
	require.NoError(t, h.run("comments", "list", fb.ID, "--json"))
	id := decodeLines[commentOutput](t, h.out.String())[0].ID

	h.signUp("Grace", "grace@example.com")

	err := h.run("comments", "edit", id, "--content", "Second!")
	var gerr *comment.GatewayError
	require.ErrorAs(t, err, &gerr)
}

func TestComments_RequiresArgument(t *testing.T) {
	h := newHarness(t)
	require.EqualError(t, h.run("comments", "list"), "feedback id is required")
}

func TestRender(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("render", "**hi** <b>"))
	assert.Equal(t, "<strong>hi</strong> &lt;b&gt;\n", h.out.String())

	h.stdin = "see\n"
	require.NoError(t, h.run("render", "--format", "bold", "--start", "4"))
	assert.Equal(t, "see**bold text**\n", h.out.String())

	require.Error(t, h.run("render", "--format", "underline", "x"))
}

func TestAccount_WhoamiAndLogout(t *testing.T) {
	h := newHarness(t)

	require.ErrorIs(t, h.run("whoami"), errNotSignedIn)

	h.signUp("Ada", "ada@example.com")
	require.NoError(t, h.run("whoami", "--json"))
	var user identity.User
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &user))
	assert.Equal(t, "ada@example.com", user.Email)

	require.NoError(t, h.run("logout"))
	assert.Contains(t, h.errOut.String(), "Signed out")
	assert.Empty(t, h.flags.Session.Token())

	require.NoError(t, h.run("login", "--email", "ada@example.com", "--password", "password123"))
	assert.Contains(t, h.errOut.String(), "Signed in")
	assert.NotEmpty(t, h.flags.Session.Token())
}

func TestAccount_LoginWithToken(t *testing.T) {
	h := newHarness(t)
	h.signUp("Ada", "ada@example.com")
	token := h.flags.Session.Token()
	require.NoError(t, h.flags.Session.Clear())

	require.NoError(t, h.run("login", "--token", token))
	actor, ok := h.flags.Session.Actor()
	require.True(t, ok)
	assert.Equal(t, "Ada", actor.DisplayName)

	require.Error(t, h.run("login", "--token", "not-a-token"))
	assert.Empty(t, h.flags.Session.Token())
}

func TestNotifications(t *testing.T) {
	h := newHarness(t)

	h.flags.Notify.Successf("Comment added successfully!")
	require.NoError(t, h.run("notifications", "list", "--json"))
	assert.Contains(t, h.out.String(), `"message":"Comment added successfully!"`)

	require.NoError(t, h.run("notifications", "clear"))
	require.NoError(t, h.run("notifications", "list"))
	assert.Contains(t, h.errOut.String(), "No notifications")
}

func TestConfigValidate_JSON(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("config", "validate", "--format", "json"))

	var report validationReport
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &report))
	assert.True(t, report.Valid)
	require.NotEmpty(t, report.Warnings)
	assert.Equal(t, "jwt_secret", report.Warnings[0].Item)
}

func TestTui_RequiresFeedbackAndLogin(t *testing.T) {
	h := newHarness(t)

	require.ErrorContains(t, h.run("tui"), "no feedback selected")
	require.ErrorIs(t, h.run("tui", "--feedback", "abc"), errNotSignedIn)
}

func TestDoctor_JSON(t *testing.T) {
	h := newHarness(t)
	h.signUp("Ada", "ada@example.com")

	require.NoError(t, h.run("doctor", "--format", "json"))

	var report struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &report))
	assert.True(t, report.Healthy)
	assert.Zero(t, report.Summary.Failed)
	require.Len(t, report.Checks, 4)
	assert.Equal(t, "Session", report.Checks[3].Name)
	assert.Equal(t, doctor.StatusPass, report.Checks[3].Items[0].Status)
}
