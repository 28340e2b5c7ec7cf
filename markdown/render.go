// Package markdown converts backend reports to styled terminal output.
// It accepts arbitrary text — empty strings and text with no markdown
// syntax render as-is — and never fails: any renderer problem falls
// back to the raw input.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderWidth renders md word-wrapped to width. The renderer is rebuilt
// when the width changes; reveal updates at a stable width reuse it.
func RenderWidth(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	r := rendererFor(width)
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	// glamour adds trailing newlines; trim for inline display.
	return strings.TrimRight(out, "\n")
}

var (
	cached      *glamour.TermRenderer
	cachedWidth int
)

func rendererFor(width int) *glamour.TermRenderer {
	if cached != nil && cachedWidth == width {
		return cached
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	cached = r
	cachedWidth = width
	return cached
}
