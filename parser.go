package vtcore

import "strings"

// parserState is the escape-sequence state machine's current mode.
type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateCsi
	stateString // covers OSC/DCS/APC/PM/SOS - collected and discarded
	stateAltCharset
)

// Parser turns a raw PTY byte stream into an ordered []Action sequence.
// It owns the incremental UTF-8 decoder and the "current graphic
// attributes" that every PrintText action is stamped with. All state here
// survives across Parse calls, so a CSI/OSC/UTF-8 sequence split across
// two reads from the PTY parses exactly as if it had arrived whole.
type Parser struct {
	state parserState
	utf8  utf8Decoder
	attrs Attributes

	textBuf strings.Builder

	csiParams    []int
	csiCur       int
	csiCurDigits bool
	csiPrivate   bool

	stringSawEsc bool
}

// NewParser returns a Parser with Default attributes, ready to consume
// bytes from Ground state.
func NewParser() *Parser {
	return &Parser{attrs: DefaultAttributes}
}

// CurrentAttributes returns the attributes that the next PrintText action
// will carry - SGR mutates this in place.
func (p *Parser) CurrentAttributes() Attributes {
	return p.attrs
}

// SetAttributes overwrites the current attributes, used by RestoreCursor
// to put the attributes captured at the matching SaveCursor back into
// effect for subsequent writes (see DESIGN.md for the save/restore scope
// this implies).
func (p *Parser) SetAttributes(a Attributes) {
	p.attrs = a
}

// Parse consumes a chunk of bytes and returns the Actions it produced.
// An escape sequence that never reaches a valid final byte, or that's
// interrupted by a control character it doesn't expect, aborts back to
// Ground and emits nothing for the bytes consumed so far - the same
// recovery terminals have always needed against truncated output or a
// program that's simply wrong; Parse never errors.
func (p *Parser) Parse(data []byte) []Action {
	var actions []Action
	for _, b := range data {
		p.step(b, &actions)
	}
	p.flushText(&actions)
	return actions
}

func (p *Parser) step(b byte, actions *[]Action) {
	switch p.state {
	case stateGround:
		p.stepGround(b, actions)
	case stateEscape:
		p.stepEscape(b, actions)
	case stateCsi:
		p.stepCsi(b, actions)
	case stateString:
		p.stepString(b)
	case stateAltCharset:
		p.state = stateGround // single designator byte consumed, no action
	}
}

func (p *Parser) flushText(actions *[]Action) {
	if p.textBuf.Len() == 0 {
		return
	}
	*actions = append(*actions, Action{Kind: ActionPrintText, Text: p.textBuf.String(), Attrs: p.attrs})
	p.textBuf.Reset()
}

func (p *Parser) stepGround(b byte, actions *[]Action) {
	if p.utf8.need > 0 {
		r, ok, retry := p.utf8.feed(b)
		if ok {
			p.textBuf.WriteRune(r)
		}
		if !retry {
			return
		}
		// b was a missing continuation byte: the truncated sequence above
		// already yielded U+FFFD, and b itself still needs processing.
	}

	switch {
	case b == 0x1B:
		p.flushText(actions)
		p.state = stateEscape
	case b == '\n':
		p.flushText(actions)
		*actions = append(*actions, Action{Kind: ActionNewline})
	case b == '\r':
		p.flushText(actions)
		*actions = append(*actions, Action{Kind: ActionCarriageReturn})
	case b == '\b':
		p.flushText(actions)
		*actions = append(*actions, Action{Kind: ActionBackspace})
	case b == '\t':
		p.flushText(actions)
		*actions = append(*actions, Action{Kind: ActionTab})
	case b < 0x20:
		// other C0 controls (BEL, VT, FF, ...) have no grid effect here; drop.
	default:
		r, ok, _ := p.utf8.feed(b)
		if ok {
			p.textBuf.WriteRune(r)
		}
	}
}

func (p *Parser) stepEscape(b byte, actions *[]Action) {
	switch b {
	case '[':
		p.csiParams = p.csiParams[:0]
		p.csiCur = 0
		p.csiCurDigits = false
		p.csiPrivate = false
		p.state = stateCsi
	case ']', 'P', '_', '^', 'X':
		p.stringSawEsc = false
		p.state = stateString
	case '(', ')':
		p.state = stateAltCharset
	case 'M':
		*actions = append(*actions, Action{Kind: ActionReverseIndex})
		p.state = stateGround
	case 'E':
		*actions = append(*actions, Action{Kind: ActionNextLine})
		p.state = stateGround
	case 'D':
		*actions = append(*actions, Action{Kind: ActionIndex})
		p.state = stateGround
	case '7':
		*actions = append(*actions, Action{Kind: ActionSaveCursor, Attrs: p.attrs})
		p.state = stateGround
	case '8':
		*actions = append(*actions, Action{Kind: ActionRestoreCursor})
		p.state = stateGround
	default:
		p.state = stateGround
	}
}

func isCsiFinal(b byte) bool {
	return b >= 0x40 && b <= 0x7E
}

func (p *Parser) stepCsi(b byte, actions *[]Action) {
	switch {
	case b == '?':
		p.csiPrivate = true
	case b >= '0' && b <= '9':
		p.csiCur = p.csiCur*10 + int(b-'0')
		p.csiCurDigits = true
	case b == ';':
		p.pushCsiParam()
	case isCsiFinal(b):
		p.pushCsiParam()
		p.dispatchCSI(b, actions)
		p.state = stateGround
	case b < 0x20:
		p.state = stateGround // embedded control: malformed, abandon silently
	default:
		// CSI intermediate bytes (0x20-0x2F): this table uses none, ignore.
	}
}

func (p *Parser) pushCsiParam() {
	if p.csiCurDigits {
		p.csiParams = append(p.csiParams, p.csiCur)
	} else {
		p.csiParams = append(p.csiParams, -1)
	}
	p.csiCur = 0
	p.csiCurDigits = false
}

func (p *Parser) stepString(b byte) {
	if p.stringSawEsc {
		p.stringSawEsc = false
		if b == '\\' {
			p.state = stateGround
		}
		return
	}
	switch b {
	case 0x07:
		p.state = stateGround
	case 0x1B:
		p.stringSawEsc = true
	default:
		// OSC/DCS/APC/PM/SOS body: collected only to find the terminator
		// (BEL or ST); the content itself - window titles, palette changes,
		// custom app-specific payloads - has no grid effect here.
	}
}

// getParam returns params[idx], or def if idx is out of range or that
// parameter was omitted. A parameter of 0 is returned literally, never
// substituted - ECMA-48 distinguishes an explicit 0 from an omitted
// parameter, and the count-taking finals here treat them differently
// (CUU/CUD/CUF/CUB, IL/DL, ICH/DCH/ECH, SU/SD: an explicit 0 is a count of
// zero, an omitted count is 1).
func getParam(params []int, idx, def int) int {
	if idx < 0 || idx >= len(params) || params[idx] == -1 {
		return def
	}
	return params[idx]
}

func (p *Parser) dispatchCSI(final byte, actions *[]Action) {
	params := p.csiParams
	switch final {
	case 'm':
		p.executeSGR(params, actions)
	case 'J':
		*actions = append(*actions, Action{Kind: ActionClearScreen, Mode: getParam(params, 0, 0), Attrs: p.attrs})
	case 'K':
		*actions = append(*actions, Action{Kind: ActionClearLine, Mode: getParam(params, 0, 0), Attrs: p.attrs})
	case 'A':
		*actions = append(*actions, Action{Kind: ActionMoveCursor, MoveKind: CursorMoveUp, N: getParam(params, 0, 1)})
	case 'B':
		*actions = append(*actions, Action{Kind: ActionMoveCursor, MoveKind: CursorMoveDown, N: getParam(params, 0, 1)})
	case 'C':
		*actions = append(*actions, Action{Kind: ActionMoveCursor, MoveKind: CursorMoveForward, N: getParam(params, 0, 1)})
	case 'D':
		*actions = append(*actions, Action{Kind: ActionMoveCursor, MoveKind: CursorMoveBackward, N: getParam(params, 0, 1)})
	case 'H', 'f':
		row := getParam(params, 0, 1) - 1
		col := getParam(params, 1, 1) - 1
		*actions = append(*actions, Action{Kind: ActionMoveCursor, MoveKind: CursorMoveAbsolute, Row: row, Col: col})
	case 'R':
		// Cursor Position Report (CPR): not a command a program issues, but
		// the reply a DSR 6 request produces. Parsing it the same as CUP
		// lets the terminal's own CPR output be re-fed and round-trip to
		// the position that generated it.
		row := getParam(params, 0, 1) - 1
		col := getParam(params, 1, 1) - 1
		*actions = append(*actions, Action{Kind: ActionMoveCursor, MoveKind: CursorMoveAbsolute, Row: row, Col: col})
	case 'L':
		*actions = append(*actions, Action{Kind: ActionInsertLines, N: getParam(params, 0, 1)})
	case 'M':
		*actions = append(*actions, Action{Kind: ActionDeleteLines, N: getParam(params, 0, 1)})
	case '@':
		*actions = append(*actions, Action{Kind: ActionInsertChars, N: getParam(params, 0, 1), Attrs: p.attrs})
	case 'P':
		*actions = append(*actions, Action{Kind: ActionDeleteChars, N: getParam(params, 0, 1), Attrs: p.attrs})
	case 'X':
		*actions = append(*actions, Action{Kind: ActionEraseChars, N: getParam(params, 0, 1), Attrs: p.attrs})
	case 'S':
		*actions = append(*actions, Action{Kind: ActionScrollTextUp, N: getParam(params, 0, 1)})
	case 'T':
		*actions = append(*actions, Action{Kind: ActionScrollTextDown, N: getParam(params, 0, 1)})
	case 'r':
		top := getParam(params, 0, 1) - 1
		// bottom's default is "rows" (the screen height), which the parser
		// doesn't know; -1 is the sentinel the screen model resolves to
		// rows-1 (see screen.go).
		bottom := getParam(params, 1, -1)
		if bottom != -1 {
			bottom--
		}
		*actions = append(*actions, Action{Kind: ActionSetScrollRegion, Top: top, Bottom: bottom})
		*actions = append(*actions, Action{Kind: ActionMoveCursor, MoveKind: CursorMoveAbsolute, Row: 0, Col: 0})
	case 'n':
		switch getParam(params, 0, 0) {
		case 5:
			*actions = append(*actions, Action{Kind: ActionReportDeviceStatus})
		case 6:
			*actions = append(*actions, Action{Kind: ActionReportCursorPosition})
		}
	case 'h', 'l':
		on := final == 'h'
		for i := range params {
			mode := getParam(params, i, 0)
			p.dispatchMode(mode, on, actions)
		}
		if len(params) == 0 {
			p.dispatchMode(0, on, actions)
		}
	case 's':
		*actions = append(*actions, Action{Kind: ActionSaveCursor, Attrs: p.attrs})
	case 'u':
		*actions = append(*actions, Action{Kind: ActionRestoreCursor})
	default:
		// unrecognized final byte: no-op, consistent with the failure model.
	}
}

func (p *Parser) dispatchMode(mode int, on bool, actions *[]Action) {
	if p.csiPrivate {
		switch mode {
		case 1049:
			*actions = append(*actions, Action{Kind: ActionSetAlternateBuffer, On: on})
		case 25:
			*actions = append(*actions, Action{Kind: ActionSetCursorVisible, On: on})
		case 7:
			*actions = append(*actions, Action{Kind: ActionSetAutoWrap, On: on})
		case 1:
			*actions = append(*actions, Action{Kind: ActionSetAppCursorKeys, On: on})
		}
		return
	}
	if mode == 4 {
		*actions = append(*actions, Action{Kind: ActionSetInsertMode, On: on})
	}
}

// executeSGR scans CSI `m` parameters left to right, mutating p.attrs, and
// emits one SetAttributes action carrying the resulting Attributes. An
// empty parameter list means `ESC[m`, equivalent to `ESC[0m`.
func (p *Parser) executeSGR(params []int, actions *[]Action) {
	if len(params) == 0 {
		params = []int{0}
	}
	for i := 0; i < len(params); i++ {
		code := params[i]
		if code == -1 {
			code = 0
		}
		switch {
		case code == 0:
			p.attrs = DefaultAttributes
		case code == 1:
			p.attrs.Bold = true
		case code == 3:
			p.attrs.Italic = true
		case code == 4:
			p.attrs.Underline = true
		case code == 5:
			p.attrs.Blink = true
		case code == 7:
			p.attrs.Reverse = true
		case code == 9:
			p.attrs.Strikethrough = true
		case code >= 30 && code <= 37:
			p.attrs.Foreground = AnsiColor(code - 30)
		case code >= 90 && code <= 97:
			p.attrs.Foreground = AnsiColor(code - 90 + 8)
		case code >= 40 && code <= 47:
			p.attrs.Background = AnsiColor(code - 40)
		case code >= 100 && code <= 107:
			p.attrs.Background = AnsiColor(code - 100 + 8)
		case code == 39:
			p.attrs.Foreground = DefaultColor
		case code == 49:
			p.attrs.Background = DefaultColor
		case code == 38 || code == 48:
			i = p.executeExtendedColor(params, i, code == 48)
		default:
			// unknown SGR code: ignored.
		}
	}
	*actions = append(*actions, Action{Kind: ActionSetAttributes, NewAttrs: p.attrs})
}

// executeExtendedColor handles the 38/48 (set fg/bg) extended forms and
// returns the index of the last parameter it consumed, so the caller's
// loop can resume after it.
func (p *Parser) executeExtendedColor(params []int, i int, background bool) int {
	if i+1 >= len(params) {
		return i
	}
	subtype := params[i+1]
	switch subtype {
	case 5:
		if i+2 >= len(params) {
			return i + 1
		}
		c := IndexedColor(getParam(params, i+2, 0))
		if background {
			p.attrs.Background = c
		} else {
			p.attrs.Foreground = c
		}
		return i + 2
	case 2:
		if i+4 >= len(params) {
			return i + 1
		}
		r := uint8(getParam(params, i+2, 0))
		g := uint8(getParam(params, i+3, 0))
		b := uint8(getParam(params, i+4, 0))
		c := RGBColor(r, g, b)
		if background {
			p.attrs.Background = c
		} else {
			p.attrs.Foreground = c
		}
		return i + 4
	default:
		return i + 1
	}
}
