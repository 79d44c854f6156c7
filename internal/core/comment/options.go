package comment

// DeleteConfirmMessage is the default question asked before deleting.
const DeleteConfirmMessage = "Are you sure you want to delete this comment? This action cannot be undone."

type settings struct {
	limits         Limits
	confirmMessage string
}

func newSettings(opts []Option) settings {
	s := settings{
		limits:         DefaultLimits(),
		confirmMessage: DeleteConfirmMessage,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures a Composer, Editor or Section.
type Option func(*settings)

// WithLimits overrides the content length limits. Zero fields keep the
// defaults.
func WithLimits(l Limits) Option {
	return func(s *settings) {
		if l.Min > 0 {
			s.limits.Min = l.Min
		}
		if l.Max > 0 {
			s.limits.Max = l.Max
		}
	}
}

// WithConfirmMessage overrides the question asked before a delete.
func WithConfirmMessage(msg string) Option {
	return func(s *settings) {
		if msg != "" {
			s.confirmMessage = msg
		}
	}
}
