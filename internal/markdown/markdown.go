// Package markdown renders markdown documents for the terminal.
package markdown

import (
	"fmt"
	"strings"
	"sync"

	internalstrings "github.com/amonks/contestsim/internal/strings"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

type renderer interface {
	Render(string) (string, error)
}

type rendererKey struct {
	width int
	color bool
}

var (
	rendererMu sync.Mutex
	renderers  = map[rendererKey]renderer{}
)

// Options controls terminal rendering.
type Options struct {
	Width int
	// Color selects the dark ANSI theme instead of plain ASCII.
	Color bool
}

// Render formats markdown text for terminal output. Rendering failures fall
// back to the input text.
func Render(opts Options, input string) (out string) {
	value := internalstrings.TrimTrailingNewlines(internalstrings.NormalizeNewlines(input))
	if strings.TrimSpace(value) == "" {
		return ""
	}
	width := opts.Width
	if width < 20 {
		width = 80
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			out = value
		}
	}()

	r, err := termRenderer(rendererKey{width: width, color: opts.Color})
	if err != nil {
		return value
	}
	formatted, err := r.Render(value)
	if err != nil {
		return value
	}
	formatted = internalstrings.TrimTrailingNewlines(formatted)
	if strings.TrimSpace(formatted) == "" {
		return value
	}
	return formatted
}

func termRenderer(key rendererKey) (renderer, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[key]; ok {
		return cached, nil
	}
	var style ansi.StyleConfig
	if key.color {
		style = styles.DarkStyleConfig
	} else {
		style = styles.ASCIIStyleConfig
		style.Item.BlockPrefix = "- "
	}
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(key.width),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	renderers[key] = created
	return created, nil
}
