package problem

import (
	"errors"
	"reflect"
	"testing"
)

func TestPoints(t *testing.T) {
	tests := []struct {
		difficulty Difficulty
		want       int
	}{
		{Easy, 3},
		{Medium, 5},
		{Hard, 7},
		{Difficulty("Impossible"), 0},
	}
	for _, tt := range tests {
		if got := Points(tt.difficulty); got != tt.want {
			t.Errorf("Points(%q) = %d, want %d", tt.difficulty, got, tt.want)
		}
	}
}

func TestParsePoolMode(t *testing.T) {
	tests := []struct {
		input   string
		want    PoolMode
		wantErr bool
	}{
		{"", PoolAll, false},
		{"all", PoolAll, false},
		{" Solved ", PoolSolved, false},
		{"UNSOLVED", PoolUnsolved, false},
		{"some", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePoolMode(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidPoolMode) {
				t.Errorf("ParsePoolMode(%q) error = %v, want ErrInvalidPoolMode", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePoolMode(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePoolMode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPoolModeSet(t *testing.T) {
	var mode PoolMode
	if err := mode.Set("unsolved"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if mode != PoolUnsolved {
		t.Fatalf("mode = %q, want unsolved", mode)
	}
	if err := mode.Set("bogus"); err == nil {
		t.Fatal("expected error for bogus mode")
	}
	if mode != PoolUnsolved {
		t.Fatalf("failed Set changed mode to %q", mode)
	}
}

func TestURL(t *testing.T) {
	if got := URL("two-sum"); got != "https://leetcode.com/problems/two-sum/" {
		t.Errorf("URL = %q", got)
	}
}

func TestNormalizeTopics(t *testing.T) {
	got := NormalizeTopics([]string{" Array", "dynamic programming", "array", "", "segment-tree"})
	want := []string{"array", "dynamic-programming", "segment-tree"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeTopics = %v, want %v", got, want)
	}
}

func TestTopicsReturnsCopy(t *testing.T) {
	first := Topics()
	first[0].Slug = "mutated"
	if Topics()[0].Slug != "array" {
		t.Fatal("Topics exposed internal slice")
	}
}
