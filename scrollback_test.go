package vtcore

import "testing"

func TestScrollbackClamping(t *testing.T) {
	var s Scrollback
	s.ScrollDown(10) // already at 0, must clamp
	if s.Offset() != 0 {
		t.Fatalf("offset = %d, want 0", s.Offset())
	}

	for i := 0; i < 20; i++ {
		s.ScrollUp(10)
	}
	if s.Offset() != 10 {
		t.Fatalf("offset = %d, want clamped to history length 10", s.Offset())
	}

	s.PageDown(3, 10)
	if s.Offset() != 7 {
		t.Fatalf("offset = %d, want 7", s.Offset())
	}

	s.Reset()
	if s.Offset() != 0 {
		t.Fatalf("Reset should zero the offset, got %d", s.Offset())
	}
}
