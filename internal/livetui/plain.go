package livetui

import (
	"context"
	"fmt"
	"io"

	"github.com/amonks/contestsim/session"
)

// RunPlain writes one line whenever the summary changes, for output that is
// not a terminal. The countdown is reported in whole minutes. It returns
// when the contest leaves the active phase or ctx is done.
func RunPlain(ctx context.Context, ctrl Controller, w io.Writer) error {
	var last string
	for {
		view := ctrl.View()
		line := PlainLine(view)
		if line != last {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
			last = line
		}
		if view.Phase != session.PhaseActive {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ctrl.Updates():
		}
	}
}

// PlainLine summarizes a view on one line.
func PlainLine(view session.View) string {
	switch view.Phase {
	case session.PhaseActive:
		minutes := (view.RemainingSeconds + 59) / 60
		return fmt.Sprintf("%dm remaining  score %s  solved %d/%d", minutes, view.ScoreLine(), view.Solved, len(view.Rows))
	case session.PhaseFinished:
		return fmt.Sprintf("finished  score %s  effective %d min  verdict %s", view.ScoreLine(), view.EffectiveTime, view.Verdict)
	default:
		return "no contest in progress"
	}
}
