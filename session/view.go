package session

import (
	"time"

	"github.com/amonks/contestsim/internal/ui"
	"github.com/amonks/contestsim/problem"
	"github.com/amonks/contestsim/score"
)

// UrgentThreshold is the remaining time under which the countdown is
// highlighted.
const UrgentThreshold = 10 * time.Minute

// Row is one problem line in any view.
type Row struct {
	Title      string             `json:"title"`
	Slug       string             `json:"slug"`
	Difficulty problem.Difficulty `json:"difficulty"`
	Points     int                `json:"points"`
	Earned     int                `json:"earned"`
	Solved     bool               `json:"solved"`
	TimeTaken  int                `json:"timeTaken"`
	Fails      int                `json:"fails"`
	URL        string             `json:"url"`
}

// View is the presentation model. Exactly one of the three phase views
// applies, selected by Phase.
type View struct {
	ID               string           `json:"id,omitempty"`
	Phase            Phase            `json:"phase"`
	Username         string           `json:"username,omitempty"`
	Mode             problem.PoolMode `json:"mode"`
	Topics           []string         `json:"topics,omitempty"`
	RemainingSeconds int              `json:"remainingSeconds"`
	Countdown        string           `json:"countdown"`
	Urgent           bool             `json:"urgent"`
	Rows             []Row            `json:"rows"`
	Score            int              `json:"score"`
	MaxScore         int              `json:"maxScore"`
	Solved           int              `json:"solved"`
	EffectiveTime    int              `json:"effectiveTime"`
	Verdict          score.Tier       `json:"verdict,omitempty"`
}

// NewView builds the view for st as of now. duration is the countdown shown
// while configuring.
func NewView(st State, now time.Time, duration time.Duration) View {
	var remaining time.Duration
	switch st.Phase {
	case PhaseActive:
		remaining = remainingUntil(st.EndsAt, now)
	case PhaseFinished:
		remaining = 0
	default:
		remaining = duration
	}
	return newView(st, remaining)
}

func newView(st State, remaining time.Duration) View {
	result := score.Summarize(st.Problems, st.Progress)
	rows := make([]Row, 0, len(result.Rows))
	for _, r := range result.Rows {
		rows = append(rows, Row{
			Title:      r.Problem.Title,
			Slug:       r.Problem.TitleSlug,
			Difficulty: r.Problem.Difficulty,
			Points:     r.Problem.Points(),
			Earned:     r.Points,
			Solved:     r.Solved,
			TimeTaken:  r.TimeTaken,
			Fails:      r.Fails,
			URL:        r.Problem.URL(),
		})
	}

	view := View{
		ID:               st.ID,
		Phase:            st.Phase,
		Username:         st.Username,
		Mode:             st.Mode,
		Topics:           append([]string(nil), st.Topics...),
		RemainingSeconds: int(remaining / time.Second),
		Countdown:        ui.FormatCountdown(remaining),
		Urgent:           st.Phase == PhaseActive && remaining < UrgentThreshold,
		Rows:             rows,
		Score:            result.Total,
		MaxScore:         result.Max,
		Solved:           result.Solved,
		EffectiveTime:    result.EffectiveTime,
	}
	if st.Phase == PhaseFinished {
		view.Verdict = result.Verdict
	}
	if view.Mode == "" {
		view.Mode = problem.PoolAll
	}
	return view
}
