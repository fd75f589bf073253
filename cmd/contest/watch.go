package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/amonks/contestsim/internal/livetui"
	"github.com/amonks/contestsim/internal/ui"
	"github.com/amonks/contestsim/session"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the live scoreboard for the running contest",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, phase, err := resume()
	if err != nil {
		return err
	}
	if phase == session.PhaseFinished {
		return writeResults(cmd.OutOrStdout(), a.controller.View())
	}
	if err := requirePhase(phase, session.PhaseActive); err != nil {
		return err
	}
	return watchContest(cmd, a)
}

// watchContest drives the contest clock while showing the live view, then
// prints the results if the contest finished.
func watchContest(cmd *cobra.Command, a *app) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		runErr <- a.controller.Run(ctx)
	}()

	var viewErr error
	if ui.IsTerminal(os.Stdout) && cmd.OutOrStdout() == os.Stdout {
		viewErr = livetui.Run(ctx, a.controller)
	} else {
		viewErr = livetui.RunPlain(ctx, a.controller, cmd.OutOrStdout())
	}
	cancel()
	err := errors.Join(viewErr, <-runErr)
	a.controller.Wait()
	if err != nil {
		return err
	}

	switch a.controller.Phase() {
	case session.PhaseFinished:
		return writeResults(cmd.OutOrStdout(), a.controller.View())
	case session.PhaseConfiguring:
		fmt.Fprintln(cmd.OutOrStdout(), "The contest was reset.")
	}
	return nil
}
