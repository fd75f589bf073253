// Package paths resolves the directories contestsim reads and writes.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const appName = "contestsim"

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}

// DefaultStateDir returns the directory holding durable contest records.
// CONTESTSIM_STATE_DIR overrides the default.
func DefaultStateDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv("CONTESTSIM_STATE_DIR")); dir != "" {
		return dir, nil
	}
	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".local", "state", appName), nil
}

// DefaultConfigPath returns the global config file path.
func DefaultConfigPath() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultLogPath returns the log file used by interactive commands.
func DefaultLogPath() (string, error) {
	dir, err := DefaultStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "contest.log"), nil
}

// WorkingDir returns the current working directory.
func WorkingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}
