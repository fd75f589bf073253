package main

import (
	"encoding/json"
	"io"

	"github.com/amonks/contestsim/internal/markdown"
	"github.com/amonks/contestsim/internal/ui"
	"github.com/amonks/contestsim/session"
	"golang.org/x/term"
)

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// terminalWidth returns the width of w when it is a terminal, else 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// writeResults prints the results screen. Terminals get rendered markdown;
// pipes get the markdown source.
func writeResults(w io.Writer, view session.View) error {
	doc := view.Markdown()
	if width := terminalWidth(w); width > 0 {
		doc = markdown.Render(markdown.Options{Width: width, Color: ui.ColorEnabled()}, doc) + "\n"
	}
	_, err := io.WriteString(w, doc)
	return err
}
