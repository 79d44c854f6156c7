package comment

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultMinLength = 3
	DefaultMaxLength = 500
)

// Limits bounds the trimmed length of comment content in code points.
type Limits struct {
	Min int
	Max int
}

// DefaultLimits returns the standard 3..500 bounds.
func DefaultLimits() Limits {
	return Limits{Min: DefaultMinLength, Max: DefaultMaxLength}
}

// Validate checks text against the limits and returns the trimmed text as the
// canonical value. The first failing rule wins: empty, too short, too long.
func (l Limits) Validate(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	n := utf8.RuneCountInString(trimmed)

	switch {
	case n == 0:
		return "", &ValidationError{Reason: ReasonEmpty, Limits: l}
	case n < l.Min:
		return "", &ValidationError{Reason: ReasonTooShort, Limits: l}
	case n > l.Max:
		return "", &ValidationError{Reason: ReasonTooLong, Limits: l}
	}

	return trimmed, nil
}

// Validate checks text against DefaultLimits.
func Validate(text string) (string, error) {
	return DefaultLimits().Validate(text)
}
