// Package overlay composites a foreground view (modal, picker, toast)
// over a background view without clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the center of the viewport.
	Center Position = iota
	// Top places the overlay at the top center of the viewport.
	Top
	// Bottom places the overlay at the bottom center of the viewport.
	Bottom
)

// Config controls overlay rendering behavior.
type Config struct {
	Width    int      // Total viewport width
	Height   int      // Total viewport height
	Position Position // Where to place the overlay
	PadY     int      // Vertical padding from the edge, for Top/Bottom
}

// Place renders fg on top of bg. All slicing is ANSI-aware so styling
// in both layers survives the splice.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	fgWidth := 0
	for _, line := range fgLines {
		fgWidth = max(fgWidth, ansi.StringWidth(line))
	}
	startX, startY := origin(cfg, fgWidth, len(fgLines))

	for i, fgLine := range fgLines {
		y := startY + i
		if y >= len(bgLines) {
			break
		}
		bgLines[y] = spliceLine(bgLines[y], fgLine, startX)
	}

	return strings.Join(bgLines, "\n")
}

// spliceLine overwrites bgLine with fgLine starting at column x,
// keeping whatever background remains visible on either side.
func spliceLine(bgLine, fgLine string, x int) string {
	left := ansi.Truncate(bgLine, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}

	right := ""
	end := x + ansi.StringWidth(fgLine)
	if end < ansi.StringWidth(bgLine) {
		right = ansi.TruncateLeft(bgLine, end, "")
	}

	return left + fgLine + right
}

// origin computes the top-left coordinate of the overlay.
func origin(cfg Config, fgWidth, fgHeight int) (x, y int) {
	x = (cfg.Width - fgWidth) / 2
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - fgHeight - cfg.PadY
	default:
		y = (cfg.Height - fgHeight) / 2
	}
	return max(x, 0), max(y, 0)
}
