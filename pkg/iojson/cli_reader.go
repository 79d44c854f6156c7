package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNoInput is returned by Read when no file was given and stdin is a
// terminal.
var ErrNoInput = errors.New("no input provided (stdin is a terminal); use -f flag or pipe JSON input")

// FileReader decodes a T from the --file flag or from piped stdin.
type FileReader[T any] struct {
	path  string
	stdin io.Reader
}

// Flag returns the --file flag bound to the reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.path,
	}
}

// SetStdin replaces os.Stdin as the fallback input.
func (fr *FileReader[T]) SetStdin(r io.Reader) {
	fr.stdin = r
}

func (fr *FileReader[T]) stdinReader() io.Reader {
	if fr.stdin == nil {
		return os.Stdin
	}
	return fr.stdin
}

// Provided reports whether input is available without prompting: a file
// path was set or stdin is not a terminal.
func (fr *FileReader[T]) Provided() bool {
	return fr.path != "" || !IsTerminal(fr.stdinReader())
}

// Read decodes the input.
func (fr *FileReader[T]) Read() (T, error) {
	var input T

	reader := fr.stdinReader()
	if fr.path != "" {
		f, err := os.Open(fr.path)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else if IsTerminal(reader) {
		return input, ErrNoInput
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}
	return input, nil
}

// IsTerminal reports whether r is a file attached to a terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
