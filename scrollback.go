package vtcore

// Scrollback is a view into History: an offset into the finalized line
// list, clamped, plus the page-sized move operations a renderer's
// Shift+PageUp/Down binds to. It holds no text of its own - only where
// the view currently sits relative to the live tail.
type Scrollback struct {
	offset int // 0 = show newest at the bottom
}

// Offset returns the current scroll offset.
func (s *Scrollback) Offset() int {
	return s.offset
}

// ScrollUp moves one line further into history, clamped to histLen.
func (s *Scrollback) ScrollUp(histLen int) {
	s.offset++
	s.clamp(histLen)
}

// ScrollDown moves one line back toward the live tail.
func (s *Scrollback) ScrollDown(histLen int) {
	s.offset--
	s.clamp(histLen)
}

// PageUp/PageDown move by a page (rows lines) at a time - bound to
// Shift+PageUp/PageDown, handled locally rather than forwarded to the PTY.
func (s *Scrollback) PageUp(rows, histLen int) {
	s.offset += rows
	s.clamp(histLen)
}

func (s *Scrollback) PageDown(rows, histLen int) {
	s.offset -= rows
	s.clamp(histLen)
}

// Reset auto-follows the live tail - called on every Newline, so new
// output always scrolls a viewer back down to it rather than leaving them
// stranded mid-scrollback while the screen keeps moving underneath.
func (s *Scrollback) Reset() {
	s.offset = 0
}

func (s *Scrollback) clamp(histLen int) {
	if s.offset < 0 {
		s.offset = 0
	}
	if s.offset > histLen {
		s.offset = histLen
	}
}
