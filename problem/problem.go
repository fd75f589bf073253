// Package problem describes the problems a contest is built from.
package problem

import (
	"errors"
	"strings"

	internalstrings "github.com/amonks/contestsim/internal/strings"
	"github.com/amonks/contestsim/internal/validation"
)

// Difficulty is the platform-assigned difficulty of a problem.
type Difficulty string

const (
	// Easy problems are worth 3 points.
	Easy Difficulty = "Easy"
	// Medium problems are worth 5 points.
	Medium Difficulty = "Medium"
	// Hard problems are worth 7 points.
	Hard Difficulty = "Hard"
)

// ValidDifficulties returns all difficulty values in ascending order.
func ValidDifficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// IsValid returns true if the difficulty is a known value.
func (d Difficulty) IsValid() bool {
	for _, valid := range ValidDifficulties() {
		if d == valid {
			return true
		}
	}
	return false
}

var points = map[Difficulty]int{
	Easy:   3,
	Medium: 5,
	Hard:   7,
}

// Points returns the score awarded for solving a problem of the given difficulty.
// Unknown difficulties are worth nothing.
func Points(d Difficulty) int {
	return points[d]
}

// Problem is a single contest problem. Problems are immutable for the
// lifetime of a session.
type Problem struct {
	Title      string     `json:"title"`
	TitleSlug  string     `json:"titleSlug"`
	Difficulty Difficulty `json:"difficulty"`
}

// Points returns the problem's point value.
func (p Problem) Points() int {
	return Points(p.Difficulty)
}

// URL returns the problem's page on the platform.
func (p Problem) URL() string {
	return URL(p.TitleSlug)
}

const problemURLBase = "https://leetcode.com/problems/"

// URL returns the deep link for a problem slug.
func URL(slug string) string {
	return problemURLBase + strings.TrimSpace(slug) + "/"
}

// Slugs returns the slugs of the given problems in order.
func Slugs(problems []Problem) []string {
	slugs := make([]string, 0, len(problems))
	for _, p := range problems {
		slugs = append(slugs, p.TitleSlug)
	}
	return slugs
}

// PoolMode selects which of the platform's problems are eligible for a contest.
type PoolMode string

const (
	// PoolAll draws from every problem.
	PoolAll PoolMode = "all"
	// PoolSolved draws from problems the user has already solved.
	PoolSolved PoolMode = "solved"
	// PoolUnsolved draws from problems the user has not solved.
	PoolUnsolved PoolMode = "unsolved"
)

// ErrInvalidPoolMode is returned when a pool mode is not recognized.
var ErrInvalidPoolMode = errors.New("invalid pool mode")

// ValidPoolModes returns all pool modes.
func ValidPoolModes() []PoolMode {
	return []PoolMode{PoolAll, PoolUnsolved, PoolSolved}
}

// IsValid returns true if the mode is a known value.
func (m PoolMode) IsValid() bool {
	for _, valid := range ValidPoolModes() {
		if m == valid {
			return true
		}
	}
	return false
}

// ParsePoolMode normalizes and validates a pool mode. An empty value means PoolAll.
func ParsePoolMode(value string) (PoolMode, error) {
	mode := PoolMode(internalstrings.NormalizeLowerTrimSpace(value))
	if mode == "" {
		return PoolAll, nil
	}
	if !mode.IsValid() {
		return "", validation.FormatInvalidValueError(ErrInvalidPoolMode, PoolMode(value), ValidPoolModes())
	}
	return mode, nil
}

// String implements fmt.Stringer and pflag.Value.
func (m PoolMode) String() string {
	return string(m)
}

// Set implements pflag.Value.
func (m *PoolMode) Set(value string) error {
	parsed, err := ParsePoolMode(value)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *PoolMode) Type() string {
	return "mode"
}
