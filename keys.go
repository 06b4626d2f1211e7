package vtcore

// Key names the non-printable keys a host must translate into PTY bytes.
// Printable codepoints bypass this entirely: the host UTF-8 encodes them
// and writes them to the PTY directly.
type Key int

const (
	KeyEnter Key = iota
	KeyBackspace
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Modifiers are the bits a host reports alongside a Key.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
)

// keySequences maps each Key to the byte sequence xterm sends in the
// default (non-application-cursor-keys) mode.
var keySequences = map[Key]string{
	KeyEnter:     "\r",
	KeyBackspace: "\x7f",
	KeyTab:       "\t",
	KeyEscape:    "\x1b",
	KeyUp:        "\x1b[A",
	KeyDown:      "\x1b[B",
	KeyRight:     "\x1b[C",
	KeyLeft:      "\x1b[D",
	KeyHome:      "\x1b[H",
	KeyEnd:       "\x1b[F",
	KeyPageUp:    "\x1b[5~",
	KeyPageDown:  "\x1b[6~",
	KeyInsert:    "\x1b[2~",
	KeyDelete:    "\x1b[3~",
	KeyF1:        "\x1bOP",
	KeyF2:        "\x1bOQ",
	KeyF3:        "\x1bOR",
	KeyF4:        "\x1bOS",
	KeyF5:        "\x1b[15~",
	KeyF6:        "\x1b[17~",
	KeyF7:        "\x1b[18~",
	KeyF8:        "\x1b[19~",
	KeyF9:        "\x1b[20~",
	KeyF10:       "\x1b[21~",
	KeyF11:       "\x1b[23~",
	KeyF12:       "\x1b[24~",
}

// localScrollKeys are the Shift-modified keys that drive Terminal's
// scrollback directly instead of reaching the PTY.
var localScrollKeys = map[Key]bool{
	KeyUp:       true,
	KeyDown:     true,
	KeyPageUp:   true,
	KeyPageDown: true,
	KeyHome:     true,
	KeyEnd:      true,
}

// IsLocalScroll reports whether this Key+Shift combination should be
// handled as a scrollback operation rather than sent to the PTY.
func IsLocalScroll(k Key, mods Modifiers) bool {
	return mods&ModShift != 0 && localScrollKeys[k]
}

// EncodeKey returns the bytes a named key produces. application reflects
// ScreenState.application_cursor_keys: in that mode the arrow keys use the
// SS3 (ESC O) form instead of CSI.
func EncodeKey(k Key, application bool) []byte {
	if application {
		switch k {
		case KeyUp:
			return []byte("\x1bOA")
		case KeyDown:
			return []byte("\x1bOB")
		case KeyRight:
			return []byte("\x1bOC")
		case KeyLeft:
			return []byte("\x1bOD")
		}
	}
	if seq, ok := keySequences[k]; ok {
		return []byte(seq)
	}
	return nil
}

// EncodeCtrlLetter encodes Ctrl+A..Z (bytes 1..26) and Ctrl+[ (ESC).
// Letters are case-insensitive; any other rune returns false.
func EncodeCtrlLetter(r rune) (byte, bool) {
	switch {
	case r == '[':
		return 0x1b, true
	case r >= 'a' && r <= 'z':
		return byte(r-'a') + 1, true
	case r >= 'A' && r <= 'Z':
		return byte(r-'A') + 1, true
	default:
		return 0, false
	}
}
