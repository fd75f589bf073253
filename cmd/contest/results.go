package main

import (
	"github.com/amonks/contestsim/session"
	"github.com/spf13/cobra"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the results of the finished contest",
	Args:  cobra.NoArgs,
	RunE:  runResults,
}

var resultsJSON bool

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.Flags().BoolVar(&resultsJSON, "json", false, "Output as JSON")
}

func runResults(cmd *cobra.Command, args []string) error {
	a, phase, err := resume()
	if err != nil {
		return err
	}
	if err := requirePhase(phase, session.PhaseFinished); err != nil {
		return err
	}
	view := a.controller.View()
	if resultsJSON {
		return encodeJSON(cmd.OutOrStdout(), view)
	}
	return writeResults(cmd.OutOrStdout(), view)
}
