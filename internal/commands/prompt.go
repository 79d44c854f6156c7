package commands

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/styles"
)

var errNotInteractive = errors.New("stdin is not a terminal; pass the value as a flag")

// isInteractive reports whether prompts can be shown. huh reads os.Stdin
// directly, so the command's Reader is not consulted.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// promptConfirmer answers delete confirmations with a huh prompt. assumeYes
// skips the prompt.
type promptConfirmer struct {
	assumeYes bool
}

var _ comment.Confirmer = promptConfirmer{}

func (p promptConfirmer) Ask(ctx context.Context, message string) (bool, error) {
	if p.assumeYes {
		return true, nil
	}
	if !isInteractive() {
		return false, errNotInteractive
	}

	var confirmed bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(message).
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		),
	).WithTheme(styles.FormTheme()).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return confirmed, err
}

// promptText asks for multi-line text, validating it with validate.
func promptText(ctx context.Context, title, description string, validate func(string) error) (string, error) {
	if !isInteractive() {
		return "", errNotInteractive
	}

	var value string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Description(description).
				Validate(validate).
				Value(&value),
		),
	).WithTheme(styles.FormTheme()).RunWithContext(ctx)
	return value, err
}
