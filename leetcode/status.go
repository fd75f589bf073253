package leetcode

import (
	"sort"
	"time"
)

// Solve is a contest problem solved during the contest.
type Solve struct {
	SolvedAt time.Time
	// Fails counts rejected submissions between the contest start and the
	// first accepted one.
	Fails int
}

// CheckSubmissions reports which of slugs were solved after start. The first
// accepted submission strictly after start wins.
func CheckSubmissions(subs []Submission, slugs []string, start time.Time) map[string]Solve {
	wanted := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		wanted[slug] = true
	}

	ordered := make([]Submission, 0, len(subs))
	for _, sub := range subs {
		if wanted[sub.TitleSlug] && sub.Timestamp.After(start) {
			ordered = append(ordered, sub)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	solves := make(map[string]Solve)
	fails := make(map[string]int)
	for _, sub := range ordered {
		if _, done := solves[sub.TitleSlug]; done {
			continue
		}
		if !sub.Accepted() {
			fails[sub.TitleSlug]++
			continue
		}
		solves[sub.TitleSlug] = Solve{SolvedAt: sub.Timestamp, Fails: fails[sub.TitleSlug]}
	}
	return solves
}
