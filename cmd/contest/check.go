package main

import (
	"fmt"

	"github.com/amonks/contestsim/session"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check recent submissions now",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, phase, err := resume()
	if err != nil {
		return err
	}
	if err := requirePhase(phase, session.PhaseActive); err != nil {
		return err
	}
	added, err := a.controller.CheckNow(cmd.Context())
	if err != nil {
		return err
	}
	view := a.controller.View()
	fmt.Fprintf(cmd.OutOrStdout(), "%d new solved; %s, %d/%d solved, %s remaining\n",
		added, view.ScoreLine(), view.Solved, len(view.Rows), view.Countdown)
	return nil
}
