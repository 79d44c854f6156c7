package tui

import (
	"time"

	"github.com/colonyops/feedboard/internal/core/notify"
)

const (
	defaultToastTTL   = 5 * time.Second
	defaultMaxToasts  = 5
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 50
)

type toast struct {
	notification notify.Notification
	remaining    time.Duration
}

// ToastController keeps the stack of visible toasts and counts down their
// lifetime.
type ToastController struct {
	ttl     time.Duration
	toasts  []toast
	ticking bool
}

// NewToastController creates a controller whose toasts live for ttl. A zero
// ttl uses the default of five seconds.
func NewToastController(ttl time.Duration) *ToastController {
	if ttl <= 0 {
		ttl = defaultToastTTL
	}
	return &ToastController{ttl: ttl}
}

// Push adds a toast, evicting the oldest beyond defaultMaxToasts.
func (c *ToastController) Push(n notify.Notification) {
	c.toasts = append(c.toasts, toast{notification: n, remaining: c.ttl})
	if len(c.toasts) > defaultMaxToasts {
		c.toasts = c.toasts[len(c.toasts)-defaultMaxToasts:]
	}
}

// Tick ages every toast by d and drops the expired ones.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

func (c *ToastController) HasToasts() bool   { return len(c.toasts) > 0 }
func (c *ToastController) Toasts() []toast   { return c.toasts }
func (c *ToastController) Ticking() bool     { return c.ticking }
func (c *ToastController) SetTicking(v bool) { c.ticking = v }
