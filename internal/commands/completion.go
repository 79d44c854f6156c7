package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/feedboard/internal/core/feedback"
)

// completionPageSize bounds how many feedback ids are suggested.
const completionPageSize = 50

// FeedbackIDCompleter returns a ShellCompleteFunc that suggests feedback ids
// as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func FeedbackIDCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if flags.Backend == nil {
			return
		}
		page, err := flags.Backend.ListFeedback(ctx, feedback.Filter{PerPage: completionPageSize})
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, fb := range page.Items {
			_, _ = fmt.Fprintf(w, "%s:%s\n", fb.ID, fb.Title)
		}
	}
}
