package ui

import (
	"testing"
	"time"
)

func TestFormatCountdown(t *testing.T) {
	cases := []struct {
		name      string
		remaining time.Duration
		want      string
	}{
		{name: "full contest", remaining: 90 * time.Minute, want: "90:00"},
		{name: "single digit seconds", remaining: 9*time.Minute + 5*time.Second, want: "9:05"},
		{name: "fractional truncates", remaining: 59*time.Second + 900*time.Millisecond, want: "0:59"},
		{name: "zero", remaining: 0, want: "0:00"},
		{name: "negative", remaining: -3 * time.Second, want: "0:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatCountdown(tc.remaining); got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestFormatDurationShort(t *testing.T) {
	cases := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{name: "seconds", duration: 45 * time.Second, want: "45s"},
		{name: "minutes", duration: 2*time.Minute + 10*time.Second, want: "2m"},
		{name: "hours", duration: 3*time.Hour + 5*time.Minute, want: "3h"},
		{name: "days", duration: 48 * time.Hour, want: "2d"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatDurationShort(tc.duration)
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	if got := FormatMinutes(12, true); got != "12m" {
		t.Fatalf("expected 12m, got %s", got)
	}
	if got := FormatMinutes(12, false); got != "--" {
		t.Fatalf("expected --, got %s", got)
	}
}
