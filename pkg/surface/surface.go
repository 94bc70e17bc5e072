// Package surface defines output rendering for matching results.
// Implementations handle different output targets: terminal, Markdown, JSON.
package surface

import (
	"io"

	"github.com/talentscope/talentscope/pkg/matching"
)

// Renderer produces formatted output from a ResultTable.
type Renderer interface {
	// Render writes the formatted result table to the writer.
	Render(w io.Writer, table *matching.ResultTable) error
}

// DefaultTop is the number of ranked employees shown when Top is unset.
const DefaultTop = 10

// ForFormat returns the renderer for an output format name.
func ForFormat(format string, top int, threshold float64) (Renderer, bool) {
	switch format {
	case "", "text":
		return &TerminalRenderer{Top: top, Threshold: threshold}, true
	case "markdown", "md":
		return &MarkdownRenderer{Top: top, Threshold: threshold}, true
	case "json":
		return &JSONRenderer{}, true
	default:
		return nil, false
	}
}

func limit(top, n int) int {
	if top <= 0 {
		top = DefaultTop
	}
	if n < top {
		return n
	}
	return top
}
