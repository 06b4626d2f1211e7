package main

import (
	"github.com/nrpeterson/vtcore"
	"github.com/nrpeterson/vtcore/renderer"
)

// termSnapshot adapts a *vtcore.Terminal to renderer.Snapshot. It exists
// in cmd/vtterm rather than in package vtcore so that vtcore and the
// renderer contract package never need to import each other - only the
// reference host depends on both.
type termSnapshot struct {
	t *vtcore.Terminal
}

func (s termSnapshot) ActiveBuffer() vtcore.ActiveBuffer {
	return s.t.ActiveBuffer()
}

func (s termSnapshot) Grid() [][]vtcore.Cell {
	return s.t.Screen().Grid()
}

func (s termSnapshot) Cursor() (row, col int, visible bool) {
	r, c := s.t.Screen().CursorPosition()
	return r, c, s.t.Screen().CursorVisible()
}

func (s termSnapshot) History() (lines []vtcore.HistoryLine, active vtcore.HistoryLine) {
	h := s.t.History()
	return h.Lines(), h.ActiveLine()
}

func (s termSnapshot) ScrollOffset() int {
	return s.t.ScrollOffset()
}

func (s termSnapshot) Preedit() (text string, cursor int) {
	return s.t.Preedit()
}

// snapshotSource is the renderer.Source cmd/vtterm hands to its render
// loop.
type snapshotSource struct {
	t *vtcore.Terminal
}

func (s snapshotSource) Snapshot() renderer.Snapshot {
	return termSnapshot{t: s.t}
}
