// Package score computes contest scores, effective time and verdict tiers.
//
// Everything here is a pure function of the problem list and the progress
// map; no other state affects a result.
package score

import "github.com/amonks/contestsim/problem"

// FailPenaltyMinutes is added to the effective time for every rejected
// submission on a problem that was eventually solved.
const FailPenaltyMinutes = 5

// Entry is the recorded outcome for one problem.
type Entry struct {
	Solved    bool `json:"solved"`
	TimeTaken int  `json:"timeTaken"`
	Fails     int  `json:"fails,omitempty"`
}

// Progress maps problem slugs to their recorded outcome. A slug with no
// entry is unsolved.
type Progress map[string]Entry

// Solved reports whether slug has a solved entry.
func (p Progress) Solved(slug string) bool {
	return p[slug].Solved
}

// Total returns the points earned for solved problems.
func Total(problems []problem.Problem, progress Progress) int {
	total := 0
	for _, p := range problems {
		if progress.Solved(p.TitleSlug) {
			total += p.Points()
		}
	}
	return total
}

// Max returns the points available across all problems.
func Max(problems []problem.Problem) int {
	total := 0
	for _, p := range problems {
		total += p.Points()
	}
	return total
}

// EffectiveTime returns minutes to solve plus the fail penalty, summed over
// solved problems.
func EffectiveTime(problems []problem.Problem, progress Progress) int {
	minutes := 0
	for _, p := range problems {
		entry, ok := progress[p.TitleSlug]
		if !ok || !entry.Solved {
			continue
		}
		minutes += entryMinutes(entry)
	}
	return minutes
}

func entryMinutes(entry Entry) int {
	taken := entry.TimeTaken
	if taken < 0 {
		taken = 0
	}
	fails := entry.Fails
	if fails < 0 {
		fails = 0
	}
	return taken + FailPenaltyMinutes*fails
}

// SolvedCount returns how many of the problems are solved.
func SolvedCount(problems []problem.Problem, progress Progress) int {
	count := 0
	for _, p := range problems {
		if progress.Solved(p.TitleSlug) {
			count++
		}
	}
	return count
}
