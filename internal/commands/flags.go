package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/feedboard/internal/board"
	"github.com/colonyops/feedboard/internal/core/config"
	"github.com/colonyops/feedboard/internal/core/identity"
	"github.com/colonyops/feedboard/internal/data/db"
	"github.com/colonyops/feedboard/internal/gateway"
	"github.com/colonyops/feedboard/internal/tui/notify"
	"github.com/urfave/cli/v3"
)

// Flags holds the global flag values and the dependencies built from them
// in the root command's Before hook.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	DB      *db.DB
	Board   *board.Service
	Session *identity.Session
	// Backend is the gateway selected by gateway.mode.
	Backend gateway.Backend
	// Notify persists notifications shown by the TUI.
	Notify *notify.Bus
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "feedboard", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "feedboard")
}

// DefaultLogFile returns the default log file path.
// On macOS: ~/Library/Logs/feedboard/feedboard.log
// Elsewhere: $XDG_STATE_HOME/feedboard/feedboard.log
func DefaultLogFile() string {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, "feedboard", "feedboard.log")
	}

	home, _ := os.UserHomeDir()
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "feedboard", "feedboard.log")
	}
	return filepath.Join(home, ".local", "state", "feedboard", "feedboard.log")
}

// GlobalFlags returns the flags shared by every command, bound to f.
func GlobalFlags(f *Flags) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error, fatal, panic)",
			Sources:     cli.EnvVars("FEEDBOARD_LOG_LEVEL"),
			Value:       "info",
			Destination: &f.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "path to log file, '-' logs to stderr (defaults to the state directory)",
			Sources:     cli.EnvVars("FEEDBOARD_LOG_FILE"),
			Destination: &f.LogFile,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to config file",
			Sources:     cli.EnvVars("FEEDBOARD_CONFIG"),
			Value:       DefaultConfigPath(),
			Destination: &f.ConfigPath,
		},
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "path to data directory",
			Sources:     cli.EnvVars("FEEDBOARD_DATA_DIR"),
			Value:       DefaultDataDir(),
			Destination: &f.DataDir,
		},
	}
}
