package vtcore

import (
	"fmt"
	"io"
)

// ActiveBuffer identifies which ScreenState a renderer should read.
type ActiveBuffer int

const (
	Primary ActiveBuffer = iota
	Alternate
)

// Terminal is the aggregate: it owns the parser, both screens, the
// history, the scrollback offset, and the IME preedit state, and is the
// single entry point a PTY adapter feeds bytes into and a renderer reads
// snapshots from. Feed/apply run to completion synchronously and touch no
// shared state outside the struct, so Terminal itself needs no locking; a
// host driving it from multiple goroutines (PTY reads, input, resize,
// render) is responsible for its own synchronization, as cmd/vtterm does
// with a single mutex guarding every call into Terminal.
type Terminal struct {
	parser     *Parser
	screen     *Screen
	history    *History
	scrollback Scrollback

	writer io.Writer

	preeditText   string
	preeditCursor int
}

// NewTerminal builds a Terminal with both screens sized rows x cols.
// Responses to in-band reports (DSR/CPR) are written to w; pass nil if the
// caller never needs them (tests typically supply a bytes.Buffer).
func NewTerminal(rows, cols int, w io.Writer) *Terminal {
	return &Terminal{
		parser:  NewParser(),
		screen:  NewScreen(rows, cols),
		history: NewHistory(),
		writer:  w,
	}
}

// Feed decodes and applies one chunk of PTY output. It never errors: a
// malformed or truncated escape sequence is absorbed (recovered to ground
// state, substituting U+FFFD where a codepoint could not be decoded)
// rather than surfaced as a decode failure, matching how real terminals
// stay usable in the face of a program that writes garbage or a stream
// truncated mid-sequence.
func (t *Terminal) Feed(data []byte) {
	for _, a := range t.parser.Parse(data) {
		t.apply(a)
	}
}

func (t *Terminal) apply(a Action) {
	switch a.Kind {
	case ActionRestoreCursor:
		t.parser.SetAttributes(t.screen.SavedAttributes())
		t.screen.Apply(a)
	case ActionReportCursorPosition:
		row, col := t.screen.CursorPosition()
		t.writeResponse(fmt.Sprintf("\x1b[%d;%dR", row+1, col+1))
	case ActionReportDeviceStatus:
		t.writeResponse("\x1b[0n")
	default:
		recordsHistory := t.screen.RecordsHistory()
		t.screen.Apply(a)
		if recordsHistory {
			t.history.Apply(a)
		}
		if a.Kind == ActionNewline || a.Kind == ActionNextLine {
			t.scrollback.Reset()
		}
	}
}

func (t *Terminal) writeResponse(s string) {
	if t.writer == nil {
		return
	}
	_, _ = t.writer.Write([]byte(s))
}

// ActiveBuffer reports which screen is live.
func (t *Terminal) ActiveBuffer() ActiveBuffer {
	if t.screen.alternateOn {
		return Alternate
	}
	return Primary
}

// Screen exposes the live grid/cursor/mode state for renderer snapshots.
// The returned pointer is a borrow: callers must not mutate it directly,
// only read it or drive it through Terminal.Feed.
func (t *Terminal) Screen() *Screen {
	return t.screen
}

// History exposes the finalized + active history lines for renderer
// snapshots.
func (t *Terminal) History() *History {
	return t.history
}

// ScrollOffset reports the current scrollback offset.
func (t *Terminal) ScrollOffset() int {
	return t.scrollback.Offset()
}

// ScrollUp/ScrollDown/PageUp/PageDown are the local scrollback operations
// a host binds to Shift+arrow/PageUp/PageDown (see keys.go's
// IsLocalScroll) - they never reach the PTY.
func (t *Terminal) ScrollUp()   { t.scrollback.ScrollUp(t.history.Len()) }
func (t *Terminal) ScrollDown() { t.scrollback.ScrollDown(t.history.Len()) }
func (t *Terminal) PageUp()     { t.scrollback.PageUp(t.screen.Rows(), t.history.Len()) }
func (t *Terminal) PageDown()   { t.scrollback.PageDown(t.screen.Rows(), t.history.Len()) }

// ApplicationCursorKeys reports whether the active screen has DECSET 1
// (application cursor keys) enabled, for a host choosing how to encode
// arrow keys via EncodeKey before writing them to the PTY.
func (t *Terminal) ApplicationCursorKeys() bool {
	return t.screen.ApplicationCursorKeys()
}

// SetPreedit records an in-progress IME composition string and cursor
// offset within it, surfaced to the renderer alongside the grid snapshot.
// Terminal never interprets preedit text itself - it is not written to
// the grid until the IME commits it as ordinary input.
func (t *Terminal) SetPreedit(text string, cursor int) {
	t.preeditText = text
	t.preeditCursor = cursor
}

// ClearPreedit discards any in-progress IME composition.
func (t *Terminal) ClearPreedit() {
	t.preeditText = ""
	t.preeditCursor = 0
}

// Preedit returns the current IME composition string and cursor offset.
func (t *Terminal) Preedit() (text string, cursor int) {
	return t.preeditText, t.preeditCursor
}
