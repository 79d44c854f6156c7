package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"
)

type confirmRequest struct {
	message string
	reply   chan bool
}

// channelConfirmer answers comment.Confirmer by handing the question to the
// Update loop, which shows a modal and replies once the user decides. Ask is
// called from command goroutines and blocks until then.
type channelConfirmer struct {
	requests chan confirmRequest
}

func newChannelConfirmer() *channelConfirmer {
	return &channelConfirmer{requests: make(chan confirmRequest)}
}

func (c *channelConfirmer) Ask(ctx context.Context, message string) (bool, error) {
	req := confirmRequest{message: message, reply: make(chan bool, 1)}

	select {
	case c.requests <- req:
	case <-ctx.Done():
		return false, ctx.Err()
	}

	select {
	case ok := <-req.reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// listen waits for the next question. Re-arm it after every answer.
func (c *channelConfirmer) listen(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case req := <-c.requests:
			return confirmRequestMsg{req: req}
		case <-ctx.Done():
			return nil
		}
	}
}
