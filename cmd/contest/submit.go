package main

import (
	"github.com/amonks/contestsim/session"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Finish the running contest and show results",
	Args:  cobra.NoArgs,
	RunE:  runSubmit,
}

var submitNoCheck bool

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().BoolVar(&submitNoCheck, "no-check", false, "Skip the final submission check")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	a, phase, err := resume()
	if err != nil {
		return err
	}
	if err := requirePhase(phase, session.PhaseActive); err != nil {
		return err
	}
	if !submitNoCheck {
		// A failed final check still submits with what is already recorded.
		if _, err := a.controller.CheckNow(cmd.Context()); err != nil {
			cmd.PrintErrf("warning: final check failed: %v\n", err)
		}
	}
	if err := a.controller.Submit(); err != nil {
		return err
	}
	return writeResults(cmd.OutOrStdout(), a.controller.View())
}
