package ui

import (
	"strings"
	"testing"
)

func TestTruncateTableCellKeepsShortValues(t *testing.T) {
	value := strings.Repeat("a", tableCellMaxWidth-1) + "é"

	got := TruncateTableCell(value)

	if got != value {
		t.Fatalf("expected value to remain untruncated, got %q", got)
	}
}

func TestTruncateTableCellAddsEllipsis(t *testing.T) {
	value := strings.Repeat("b", tableCellMaxWidth+10)

	got := TruncateTableCell(value)

	if !strings.HasSuffix(got, tableCellEllipsis) {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if len(got) != tableCellMaxWidth {
		t.Fatalf("expected width %d, got %d", tableCellMaxWidth, len(got))
	}
}

func TestTruncateTableCellNormalizesLineBreaks(t *testing.T) {
	got := TruncateTableCell("Two\nSum\r\nII\tInput")

	if got != "Two Sum II Input" {
		t.Fatalf("expected line breaks to normalize, got %q", got)
	}
}

func TestFormatTableAlignsColumns(t *testing.T) {
	builder := NewTableBuilder([]string{"PROBLEM", "PTS"}, 2)
	builder.AddRow("Two Sum", "3")
	builder.AddRow("Median of Two Sorted Arrays", "7")

	got := builder.String()
	want := "PROBLEM                      PTS\n" +
		"Two Sum                      3\n" +
		"Median of Two Sorted Arrays  7\n"
	if got != want {
		t.Fatalf("unexpected table:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatTableIgnoresANSIWidth(t *testing.T) {
	styled := "\x1b[32mEasy\x1b[0m"
	got := FormatTable([]string{"DIFF", "X"}, [][]string{{styled, "1"}})

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[1], "Easy\x1b[0m  1") {
		t.Fatalf("expected two-space gap after styled cell, got %q", lines[1])
	}
}

func TestStylerDisabled(t *testing.T) {
	s := Styler{Enabled: false}
	if got := s.Difficulty("Hard"); got != "Hard" {
		t.Fatalf("expected plain value, got %q", got)
	}
	if got := s.Countdown("5:00", true); got != "5:00" {
		t.Fatalf("expected plain value, got %q", got)
	}
}
