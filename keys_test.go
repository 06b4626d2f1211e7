package vtcore

import "testing"

func TestEncodeKey(t *testing.T) {
	cases := []struct {
		key  Key
		want string
	}{
		{KeyEnter, "\r"},
		{KeyBackspace, "\x7f"},
		{KeyUp, "\x1b[A"},
		{KeyHome, "\x1b[H"},
		{KeyEnd, "\x1b[F"},
		{KeyPageUp, "\x1b[5~"},
		{KeyPageDown, "\x1b[6~"},
		{KeyF1, "\x1bOP"},
		{KeyF5, "\x1b[15~"},
		{KeyF12, "\x1b[24~"},
	}
	for _, c := range cases {
		if got := string(EncodeKey(c.key, false)); got != c.want {
			t.Errorf("EncodeKey(%v, false) = %q, want %q", c.key, got, c.want)
		}
	}
}

func TestEncodeKeyApplicationCursorKeys(t *testing.T) {
	if got := string(EncodeKey(KeyUp, true)); got != "\x1bOA" {
		t.Errorf("application-mode Up = %q, want ESC O A", got)
	}
	if got := string(EncodeKey(KeyEnter, true)); got != "\r" {
		t.Errorf("application mode should not affect non-arrow keys, got %q", got)
	}
}

func TestEncodeCtrlLetter(t *testing.T) {
	b, ok := EncodeCtrlLetter('a')
	if !ok || b != 1 {
		t.Errorf("Ctrl+a = %d, want 1", b)
	}
	b, ok = EncodeCtrlLetter('Z')
	if !ok || b != 26 {
		t.Errorf("Ctrl+Z = %d, want 26", b)
	}
	b, ok = EncodeCtrlLetter('[')
	if !ok || b != 0x1b {
		t.Errorf("Ctrl+[ = %#x, want 0x1b", b)
	}
	if _, ok := EncodeCtrlLetter('1'); ok {
		t.Errorf("Ctrl+1 should not be encodable by this table")
	}
}

func TestIsLocalScroll(t *testing.T) {
	if !IsLocalScroll(KeyPageUp, ModShift) {
		t.Errorf("Shift+PageUp should be a local scrollback operation")
	}
	if IsLocalScroll(KeyPageUp, 0) {
		t.Errorf("PageUp without Shift should reach the PTY")
	}
	if IsLocalScroll(KeyEnter, ModShift) {
		t.Errorf("Shift+Enter is not a scrollback key")
	}
}
