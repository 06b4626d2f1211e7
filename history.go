package vtcore

import (
	"regexp"
	"strings"

	"github.com/rivo/uniseg"
)

// LineKind classifies a finalized HistoryLine by the shell-interaction role
// it likely played. This is not part of the escape-sequence/screen model
// proper; it is a supplemental feature a renderer can use to dim output,
// highlight errors, or fold prompt lines - the same classification a shell
// integration layer would otherwise have to redo from scratch.
type LineKind int

const (
	LineKindUnknown LineKind = iota
	LineKindPrompt
	LineKindOutput
	LineKindError
)

// Segment is a run of text sharing one Attributes value.
type Segment struct {
	Content    string
	Attributes Attributes
}

// HistoryLine is one finalized line of pre-alternate-screen output: a
// coalesced segment list (no two adjacent segments share identical
// attributes - runs get merged as they're appended, not just at finalize)
// plus its classification.
type HistoryLine struct {
	Segments []Segment
	Kind     LineKind
}

func (l HistoryLine) plainText() string {
	var b strings.Builder
	for _, seg := range l.Segments {
		b.WriteString(seg.Content)
	}
	return b.String()
}

// History is an append-only scrollback log, independent of the live grid:
// once a line scrolls off the top of the screen its text should still be
// searchable/copyable, which a grid-only model can't offer once the row
// is overwritten. It is fed only while the Screen reports
// RecordsHistory() == true.
type History struct {
	lines  []HistoryLine
	active HistoryLine
}

// NewHistory returns an empty History.
func NewHistory() *History {
	return &History{}
}

// Lines returns the finalized lines, oldest first.
func (h *History) Lines() []HistoryLine {
	return h.lines
}

// ActiveLine returns the in-progress line that hasn't hit a Newline yet.
func (h *History) ActiveLine() HistoryLine {
	return h.active
}

// Len returns the number of finalized lines (the scrollback view clamps
// its offset against this).
func (h *History) Len() int {
	return len(h.lines)
}

// Apply feeds one Action into the history model. Only PrintText, the
// line-ending actions (Newline, NextLine), ClearScreen (which empties the
// whole history) and Backspace have any effect; everything else is
// ignored, since History only cares about text, not cursor movement or
// attributes beyond what PrintText carries.
func (h *History) Apply(a Action) {
	switch a.Kind {
	case ActionPrintText:
		h.printText(a.Text, a.Attrs)
	case ActionNewline, ActionNextLine:
		h.finalizeLine()
	case ActionClearScreen:
		h.lines = nil
		h.active = HistoryLine{}
	case ActionBackspace:
		h.backspace()
	case ActionCarriageReturn:
		// Intentional no-op: a bare CR (without a following LF) is how
		// progress bars and similar in-place updates redraw a line on the
		// live grid; truncating the active history line to column 0 here
		// would throw away that line's content for scrollback instead of
		// just letting the next overwrite happen on screen.
	}
}

func (h *History) printText(text string, attrs Attributes) {
	if text == "" {
		return
	}
	n := len(h.active.Segments)
	if n > 0 && h.active.Segments[n-1].Attributes == attrs {
		h.active.Segments[n-1].Content += text
		return
	}
	h.active.Segments = append(h.active.Segments, Segment{Content: text, Attributes: attrs})
}

func (h *History) finalizeLine() {
	h.active.Kind = classifyLine(h.active.plainText())
	h.lines = append(h.lines, h.active)
	h.active = HistoryLine{}
}

// backspace pops one grapheme cluster from the last segment, using uniseg
// for real cluster boundaries rather than a single rune or byte - popping
// a byte or rune at a time would split a base character from its
// combining marks and leave a mangled partial cluster behind.
func (h *History) backspace() {
	n := len(h.active.Segments)
	if n == 0 {
		return
	}
	last := &h.active.Segments[n-1]
	if last.Content == "" {
		h.active.Segments = h.active.Segments[:n-1]
		h.backspace()
		return
	}
	gr := uniseg.NewGraphemes(last.Content)
	cut := 0
	for gr.Next() {
		start, end := gr.Positions()
		if end == len(last.Content) {
			cut = start
			break
		}
	}
	last.Content = last.Content[:cut]
	if last.Content == "" {
		h.active.Segments = h.active.Segments[:n-1]
	}
}

// promptPatterns recognizes common shell prompt shapes: a bare `$ `/`# `
// or `user@host:path$ ` style prompt. Grounded on the regex heuristics a
// terminal-based IDE would use to fold prompt lines out of scrollback.
var promptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*[$#%>]\s`),
	regexp.MustCompile(`^\S+@\S+:\S*[$#]\s`),
	regexp.MustCompile(`^\(\S+\)\s*\S*[$#]\s`),
}

var errorKeywords = regexp.MustCompile(`(?i)\b(error|fatal|panic|exception|failed|failure|traceback)\b`)

// classifyLine is a best-effort heuristic, not a parser: it never blocks
// rendering and is wrong often enough that a renderer should treat it as a
// hint, not ground truth.
func classifyLine(text string) LineKind {
	trimmed := strings.TrimRight(text, " ")
	if trimmed == "" {
		return LineKindUnknown
	}
	for _, p := range promptPatterns {
		if p.MatchString(text) {
			return LineKindPrompt
		}
	}
	if errorKeywords.MatchString(text) {
		return LineKindError
	}
	return LineKindOutput
}
