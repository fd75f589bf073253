package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/amonks/contestsim/internal/ui"
	"github.com/amonks/contestsim/session"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current contest",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

var statusJSON bool

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, _, err := resume()
	if err != nil {
		return err
	}
	view := a.controller.View()
	if statusJSON {
		return encodeJSON(cmd.OutOrStdout(), view)
	}
	return writeStatus(cmd.OutOrStdout(), view, ui.Styler{Enabled: terminalWidth(cmd.OutOrStdout()) > 0 && ui.ColorEnabled()})
}

func writeStatus(w io.Writer, view session.View, styler ui.Styler) error {
	switch view.Phase {
	case session.PhaseConfiguring:
		_, err := fmt.Fprintln(w, "No contest in progress. Start one with `contest start --user <name>`.")
		return err
	case session.PhaseActive:
		fmt.Fprintf(w, "%s remaining  %s  %d/%d solved\n\n",
			styler.Countdown(view.Countdown, view.Urgent), view.ScoreLine(), view.Solved, len(view.Rows))
	case session.PhaseFinished:
		fmt.Fprintf(w, "%s  %s  effective time %d min  verdict %s\n\n",
			styler.Header("Finished"), view.ScoreLine(), view.EffectiveTime, view.Verdict)
	}

	builder := ui.NewTableBuilder([]string{"#", "PROBLEM", "DIFFICULTY", "POINTS", "STATUS", "TIME", "FAILS", "LINK"}, len(view.Rows))
	for i, row := range view.Rows {
		status := styler.Pending("open")
		link := row.URL
		if row.Solved {
			status = styler.Solved("solved")
			link = ""
		}
		builder.AddRow(
			strconv.Itoa(i+1),
			ui.TruncateTableCell(row.Title),
			styler.Difficulty(string(row.Difficulty)),
			fmt.Sprintf("%d/%d", row.Earned, row.Points),
			status,
			ui.FormatMinutes(row.TimeTaken, row.Solved),
			strconv.Itoa(row.Fails),
			link,
		)
	}
	_, err := io.WriteString(w, builder.String())
	return err
}
