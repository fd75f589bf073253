package leetcode

import (
	"math/rand/v2"

	"github.com/amonks/contestsim/problem"
)

// Filters narrow the problem pool before a contest is drawn.
type Filters struct {
	// Tags are topic slugs; a question qualifies when it has any of them.
	Tags []string
	Mode problem.PoolMode
}

// Generate draws a contest from questions: one Easy, two Mediums and one
// Hard, in that order. A difficulty with too few candidates contributes what
// it has.
func Generate(questions []Question, filters Filters, rng *rand.Rand) []problem.Problem {
	pool := filterPool(questions, filters)

	var easy, medium, hard []Question
	for _, q := range pool {
		switch q.Difficulty {
		case problem.Easy:
			easy = append(easy, q)
		case problem.Medium:
			medium = append(medium, q)
		case problem.Hard:
			hard = append(hard, q)
		}
	}

	contest := make([]problem.Problem, 0, 4)
	contest = append(contest, sample(easy, 1, rng)...)
	contest = append(contest, sample(medium, 2, rng)...)
	contest = append(contest, sample(hard, 1, rng)...)
	return contest
}

func filterPool(questions []Question, filters Filters) []Question {
	tags := make(map[string]bool, len(filters.Tags))
	for _, tag := range problem.NormalizeTopics(filters.Tags) {
		tags[tag] = true
	}

	pool := make([]Question, 0, len(questions))
	for _, q := range questions {
		if q.IsPaidOnly {
			continue
		}
		if len(tags) > 0 && !q.HasTag(tags) {
			continue
		}
		switch filters.Mode {
		case problem.PoolSolved:
			if !q.Solved() {
				continue
			}
		case problem.PoolUnsolved:
			if q.Solved() {
				continue
			}
		}
		pool = append(pool, q)
	}
	return pool
}

// sample picks n distinct questions, or all of them when there are fewer.
func sample(questions []Question, n int, rng *rand.Rand) []problem.Problem {
	if len(questions) <= n {
		picked := make([]problem.Problem, 0, len(questions))
		for _, q := range questions {
			picked = append(picked, q.Problem())
		}
		return picked
	}
	indexes := rng.Perm(len(questions))[:n]
	picked := make([]problem.Problem, 0, n)
	for _, i := range indexes {
		picked = append(picked, questions[i].Problem())
	}
	return picked
}
