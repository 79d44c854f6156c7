package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadOrCreateSecret returns the signing secret stored at path, generating
// and writing a new one when the file does not exist.
func LoadOrCreateSecret(path string) (string, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if secret := strings.TrimSpace(string(data)); secret != "" {
			return secret, nil
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("read secret: %w", err)
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	secret := hex.EncodeToString(key)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("create secret dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(secret+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write secret: %w", err)
	}
	return secret, nil
}
