// Package renderer defines a read-only view over a vtcore.Terminal's
// current state. Only the interface lives here - glyph rendering, font
// shaping, and the GPU/window pipeline are a renderer implementation's
// problem, not this package's.
package renderer

import "github.com/nrpeterson/vtcore"

// Snapshot is everything a renderer may observe. It never calls back into
// the Terminal, so a render pass can't accidentally mutate state it's
// only supposed to be reading - a Snapshot is either a borrow valid only
// for the current frame, or a deep copy, at the producer's discretion.
type Snapshot interface {
	// ActiveBuffer reports which screen is live.
	ActiveBuffer() vtcore.ActiveBuffer

	// Grid returns the active screen's rows, oldest-row-first.
	Grid() [][]vtcore.Cell

	// Cursor returns the active screen's cursor position and visibility.
	Cursor() (row, col int, visible bool)

	// History returns the finalized history lines plus the in-progress
	// active line.
	History() (lines []vtcore.HistoryLine, active vtcore.HistoryLine)

	// ScrollOffset returns the current scrollback offset.
	ScrollOffset() int

	// Preedit returns the IME composition string and its cursor offset.
	Preedit() (text string, cursor int)
}

// Source produces Snapshots on demand - the renderer's only dependency on
// the terminal core, so a renderer implementation never imports vtcore's
// mutating API.
type Source interface {
	Snapshot() Snapshot
}
