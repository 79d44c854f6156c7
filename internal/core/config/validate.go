package config

import (
	"fmt"
	"net/mail"
	"net/url"
	"os"

	"github.com/colonyops/feedboard/internal/core/comment"
	"github.com/colonyops/feedboard/internal/core/styles"
	"github.com/hay-kot/criterio"
)

// minSecretLength is the shortest jwt_secret accepted without a warning.
const minSecretLength = 32

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// URLs, theme names, seed users and file accessibility. The configPath argument
// specifies the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateGateway(),
		criterio.Run("tui.theme", c.TUI.Theme, themeExists),
		c.validateSeedUsers(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Server.JWTSecret == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Server",
			Item:     "jwt_secret",
			Message:  "no jwt_secret set, a generated secret is stored in the data directory",
		})
	} else if len(c.Server.JWTSecret) < minSecretLength {
		warnings = append(warnings, ValidationWarning{
			Category: "Server",
			Item:     "jwt_secret",
			Message:  fmt.Sprintf("jwt_secret is shorter than %d bytes", minSecretLength),
		})
	}

	if c.Comments.MaxLength > comment.DefaultMaxLength {
		warnings = append(warnings, ValidationWarning{
			Category: "Comments",
			Item:     "max_length",
			Message:  fmt.Sprintf("max_length %d exceeds the server default of %d", c.Comments.MaxLength, comment.DefaultMaxLength),
		})
	}

	return warnings
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func (c *Config) validateGateway() error {
	if c.Gateway.Mode != ModeHTTP {
		return nil
	}
	return criterio.Run("gateway.base_url", c.Gateway.BaseURL, isHTTPURL)
}

func isHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

func (c *Config) validateSeedUsers() error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool, len(c.Server.SeedUsers))

	for i, u := range c.Server.SeedUsers {
		field := fmt.Sprintf("server.seed_users[%d]", i)

		if _, err := mail.ParseAddress(u.Email); err != nil {
			errs = errs.Append(field+".email", fmt.Errorf("invalid email %q", u.Email))
		} else if seen[u.Email] {
			errs = errs.Append(field+".email", fmt.Errorf("duplicate email %q", u.Email))
		}
		seen[u.Email] = true

		if u.Name == "" {
			errs = errs.Append(field+".name", fmt.Errorf("name is required"))
		}
		if len(u.Password) < 6 {
			errs = errs.Append(field+".password", fmt.Errorf("password must be at least 6 characters"))
		}
		switch comment.Role(u.Role) {
		case "", comment.RoleMember, comment.RoleAdmin:
		default:
			errs = errs.Append(field+".role", fmt.Errorf("role must be %q or %q", comment.RoleMember, comment.RoleAdmin))
		}
	}

	return errs.ToError()
}
