package identity

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/hay-kot/criterio"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// Registration is a sign-up request.
type Registration struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Validate returns criterio field errors keyed by name, email and password.
func (r Registration) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("name", strings.TrimSpace(r.Name), func(s string) error {
			switch {
			case s == "":
				return fmt.Errorf("name is required")
			case utf8.RuneCountInString(s) > 255:
				return fmt.Errorf("name must not exceed 255 characters")
			}
			return nil
		}),
		criterio.Run("email", strings.TrimSpace(r.Email), func(s string) error {
			if s == "" {
				return fmt.Errorf("email is required")
			}
			if _, err := mail.ParseAddress(s); err != nil {
				return fmt.Errorf("email must be a valid email address")
			}
			return nil
		}),
		criterio.Run("password", r.Password, func(s string) error {
			switch {
			case utf8.RuneCountInString(s) < MinPasswordLength:
				return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
			case s != r.PasswordConfirmation:
				return fmt.Errorf("password confirmation does not match")
			}
			return nil
		}),
	)
}
