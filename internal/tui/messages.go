package tui

import (
	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/notify"
	"github.com/colonyops/feedboard/internal/gateway"
)

type threadLoadedMsg struct {
	thread gateway.Thread
	err    error
}

type submitDoneMsg struct {
	comment comment.Comment
	err     error
}

type saveDoneMsg struct {
	id      string
	comment comment.Comment
	err     error
}

type deleteDoneMsg struct {
	id      string
	deleted bool
	err     error
}

type confirmRequestMsg struct {
	req confirmRequest
}

type notificationMsg struct {
	notification notify.Notification
}
