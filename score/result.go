package score

import "github.com/amonks/contestsim/problem"

// Row is the per-problem line of a scoreboard.
type Row struct {
	Problem   problem.Problem `json:"problem"`
	Solved    bool            `json:"solved"`
	TimeTaken int             `json:"timeTaken"`
	Fails     int             `json:"fails"`
	Points    int             `json:"points"`
}

// Result summarizes a contest.
type Result struct {
	Rows          []Row `json:"rows"`
	Total         int   `json:"total"`
	Max           int   `json:"max"`
	Solved        int   `json:"solved"`
	EffectiveTime int   `json:"effectiveTime"`
	Verdict       Tier  `json:"verdict"`
}

// Summarize computes the full result for problems and progress.
func Summarize(problems []problem.Problem, progress Progress) Result {
	rows := make([]Row, 0, len(problems))
	for _, p := range problems {
		entry := progress[p.TitleSlug]
		row := Row{Problem: p, Solved: entry.Solved}
		if entry.Solved {
			row.TimeTaken = entry.TimeTaken
			row.Fails = entry.Fails
			row.Points = p.Points()
		}
		rows = append(rows, row)
	}

	total := Total(problems, progress)
	max := Max(problems)
	effective := EffectiveTime(problems, progress)
	return Result{
		Rows:          rows,
		Total:         total,
		Max:           max,
		Solved:        SolvedCount(problems, progress),
		EffectiveTime: effective,
		Verdict:       Verdict(total, max, effective),
	}
}
