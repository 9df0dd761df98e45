// Package markdown renders report markdown for terminal display, both in
// the reports overlay and in `stint report --markdown`.
package markdown

import (
	"github.com/charmbracelet/glamour"
)

// marginOverride zeroes glamour's document margins so rendered reports
// sit flush inside the viewport instead of floating in padding.
const marginOverride = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer renders markdown at a fixed wrap width and theme. The style
// is resolved by name rather than by auto-detection: glamour's
// WithAutoStyle probes the terminal background with an OSC query, and
// the response races the Bubble Tea input reader and shows up as
// garbage keystrokes, so the theme comes from config instead.
type Renderer struct {
	tr    *glamour.TermRenderer
	width int
}

// New builds a renderer wrapping at width. theme is the configured UI
// theme ("dark" or "light"); anything else falls back to dark.
func New(width int, theme string) (*Renderer, error) {
	if theme != "light" {
		theme = "dark"
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStylePath(theme),
		glamour.WithStylesFromJSONBytes([]byte(marginOverride)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{tr: tr, width: width}, nil
}

// Width returns the wrap width the renderer was built with. The reports
// overlay compares it against the current viewport to decide when the
// renderer must be rebuilt.
func (r *Renderer) Width() int {
	return r.width
}

// Render converts markdown source to styled terminal output.
func (r *Renderer) Render(src string) (string, error) {
	return r.tr.Render(src)
}
