package leetcode

import (
	"testing"
	"time"
)

func TestCheckSubmissions(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	at := func(minutes int) time.Time {
		return start.Add(time.Duration(minutes) * time.Minute)
	}
	subs := []Submission{
		{TitleSlug: "two-sum", Timestamp: at(30), Status: SubmissionAccepted},
		{TitleSlug: "two-sum", Timestamp: at(12), Status: SubmissionAccepted},
		{TitleSlug: "two-sum", Timestamp: at(8), Status: "Wrong Answer"},
		{TitleSlug: "two-sum", Timestamp: at(5), Status: "Time Limit Exceeded"},
		{TitleSlug: "two-sum", Timestamp: at(-5), Status: "Wrong Answer"},
		{TitleSlug: "lru-cache", Timestamp: at(20), Status: "Runtime Error"},
		{TitleSlug: "add-two-numbers", Timestamp: at(0), Status: SubmissionAccepted},
		{TitleSlug: "unrelated", Timestamp: at(3), Status: SubmissionAccepted},
	}

	solves := CheckSubmissions(subs, []string{"two-sum", "lru-cache", "add-two-numbers"}, start)

	if len(solves) != 1 {
		t.Fatalf("expected 1 solve, got %+v", solves)
	}
	solve := solves["two-sum"]
	if !solve.SolvedAt.Equal(at(12)) {
		t.Fatalf("expected first accept at 12m, got %s", solve.SolvedAt)
	}
	if solve.Fails != 2 {
		t.Fatalf("expected 2 fails, got %d", solve.Fails)
	}
}

func TestCheckSubmissionsEmpty(t *testing.T) {
	solves := CheckSubmissions(nil, []string{"two-sum"}, time.Now())

	if len(solves) != 0 {
		t.Fatalf("expected no solves, got %+v", solves)
	}
}
