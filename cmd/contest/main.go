// Package main implements the contest CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/amonks/contestsim/internal/config"
	"github.com/amonks/contestsim/internal/logging"
	"github.com/amonks/contestsim/internal/paths"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	closeLogs()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "contest",
	Short: "Timed LeetCode contest simulator",
	Long: `contest runs a timed, four-problem LeetCode contest: one Easy, two Medium
and one Hard problem. Solve them on leetcode.com while the clock runs; the
scoreboard polls your recent submissions every 15 seconds.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// cfg is the loaded configuration, available to every command.
var cfg = config.Default()

var closeLogs = func() {}

// consoleLogCommands log to stderr; every other command logs to a file so
// the terminal UI stays clean.
var consoleLogCommands = map[string]bool{
	"serve": true,
	"board": true,
}

func setup(cmd *cobra.Command, args []string) error {
	if err := loadDotEnv(".env"); err != nil {
		return err
	}

	cwd, err := paths.WorkingDir()
	if err != nil {
		return err
	}
	loaded, err := config.Load(cwd)
	if err != nil {
		return err
	}
	cfg = loaded

	opts := logging.Options{Level: cfg.Log.Level, Console: cmd.ErrOrStderr()}
	if !consoleLogCommands[cmd.Name()] {
		logPath, err := paths.DefaultLogPath()
		if err != nil {
			return err
		}
		opts.File = logPath
	}
	closer, err := logging.Setup(opts)
	if err != nil {
		return err
	}
	closeLogs = func() { _ = closer() }
	return nil
}

// loadDotEnv loads path into the environment when it exists. Variables
// already set win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
