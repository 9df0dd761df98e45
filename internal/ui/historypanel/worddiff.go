package historypanel

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// noteDiffMaxLength skips word-level diffing for notes exceeding this length;
// the whole note is shown as deleted/added instead.
const noteDiffMaxLength = 500

// segmentType indicates whether a segment is unchanged, added, or deleted.
type segmentType int

const (
	segmentUnchanged segmentType = iota
	segmentAdded
	segmentDeleted
)

// segment is a run of text with its diff status.
type segment struct {
	Type segmentType
	Text string
}

// noteDiff holds the word-level diff of a note rewrite.
type noteDiff struct {
	Old []segment // Segments of the previous note
	New []segment // Segments of the new note
}

// tokenize splits a note into tokens (words, whitespace, and punctuation).
// Example: "fix login-page bug" → ["fix", " ", "login", "-", "page", " ", "bug"]
func tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var tokens []string
	var current strings.Builder

	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			tokens = append(tokens, string(r))
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			tokens = append(tokens, string(r))
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// computeNoteDiff computes the word-level diff between two notes. The diff
// runs at token granularity with semantic cleanup, so a rewrite like
// "meeting notes" → "meeting minutes" marks only the changed word.
func computeNoteDiff(oldNote, newNote string) noteDiff {
	if oldNote == "" && newNote == "" {
		return noteDiff{}
	}
	if oldNote == "" {
		return noteDiff{New: []segment{{Type: segmentAdded, Text: newNote}}}
	}
	if newNote == "" {
		return noteDiff{Old: []segment{{Type: segmentDeleted, Text: oldNote}}}
	}

	if len(oldNote) > noteDiffMaxLength || len(newNote) > noteDiffMaxLength {
		return noteDiff{
			Old: []segment{{Type: segmentDeleted, Text: oldNote}},
			New: []segment{{Type: segmentAdded, Text: newNote}},
		}
	}

	// Diff at token level: join tokens with a delimiter that cannot appear
	// in the text so diffmatchpatch never splits inside a word.
	oldText := strings.Join(tokenize(oldNote), "\x00")
	newText := strings.Join(tokenize(newNote), "\x00")

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var oldSegs, newSegs []segment
	for _, d := range diffs {
		text := strings.ReplaceAll(d.Text, "\x00", "")
		if text == "" {
			continue
		}

		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldSegs = append(oldSegs, segment{Type: segmentUnchanged, Text: text})
			newSegs = append(newSegs, segment{Type: segmentUnchanged, Text: text})
		case diffmatchpatch.DiffDelete:
			oldSegs = append(oldSegs, segment{Type: segmentDeleted, Text: text})
		case diffmatchpatch.DiffInsert:
			newSegs = append(newSegs, segment{Type: segmentAdded, Text: text})
		}
	}

	return noteDiff{Old: oldSegs, New: newSegs}
}

// renderSegments renders segments with unchangedStyle for unchanged text and
// changedStyle for added or deleted text.
func renderSegments(segments []segment, unchangedStyle, changedStyle lipgloss.Style) string {
	var result strings.Builder

	for _, seg := range segments {
		switch seg.Type {
		case segmentUnchanged:
			result.WriteString(unchangedStyle.Render(seg.Text))
		case segmentAdded, segmentDeleted:
			result.WriteString(changedStyle.Render(seg.Text))
		}
	}

	return result.String()
}
