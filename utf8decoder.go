package vtcore

// utf8Decoder incrementally turns a byte stream into codepoints, carrying
// a partial multi-byte sequence across calls. PTY output arrives in
// arbitrary-sized reads that can split a multi-byte UTF-8 sequence at any
// byte boundary, so the lead byte and any continuation bytes seen so far
// have to survive between feed calls rather than living as locals in a
// single decode pass.
type utf8Decoder struct {
	pending []byte
	need    int // additional continuation bytes still required
}

// feed pushes one byte into the decoder.
//
// Returns (r, true, false) when b completed a codepoint - valid, or a
// substituted U+FFFD for an invalid lead byte.
// Returns (0, false, false) when b extended an in-progress sequence that
// isn't complete yet.
// Returns (0xFFFD, true, true) when b was expected to be a continuation
// byte but wasn't: the in-progress sequence is truncated and yields
// U+FFFD, and retry=true tells the caller to feed b again, since it was
// never consumed by the failed sequence and may itself start a new one.
func (d *utf8Decoder) feed(b byte) (r rune, ok bool, retry bool) {
	if d.need > 0 {
		if b&0xC0 == 0x80 {
			d.pending = append(d.pending, b)
			d.need--
			if d.need == 0 {
				r := decodeUTF8Seq(d.pending)
				d.pending = d.pending[:0]
				return r, true, false
			}
			return 0, false, false
		}
		d.pending = d.pending[:0]
		d.need = 0
		return 0xFFFD, true, true
	}

	switch {
	case b < 0x80:
		return rune(b), true, false
	case b&0xE0 == 0xC0:
		d.pending = append(d.pending[:0], b)
		d.need = 1
		return 0, false, false
	case b&0xF0 == 0xE0:
		d.pending = append(d.pending[:0], b)
		d.need = 2
		return 0, false, false
	case b&0xF8 == 0xF0:
		d.pending = append(d.pending[:0], b)
		d.need = 3
		return 0, false, false
	default:
		return 0xFFFD, true, false
	}
}

// decodeUTF8Seq decodes a complete, already-length-validated multi-byte
// sequence (continuation bytes were checked as they arrived).
func decodeUTF8Seq(buf []byte) rune {
	switch len(buf) {
	case 2:
		return rune(buf[0]&0x1F)<<6 | rune(buf[1]&0x3F)
	case 3:
		return rune(buf[0]&0x0F)<<12 | rune(buf[1]&0x3F)<<6 | rune(buf[2]&0x3F)
	case 4:
		return rune(buf[0]&0x07)<<18 | rune(buf[1]&0x3F)<<12 | rune(buf[2]&0x3F)<<6 | rune(buf[3]&0x3F)
	default:
		return 0xFFFD
	}
}

// pendingLen reports how many carry-over bytes are currently buffered -
// used by tests asserting incremental, byte-at-a-time decode behavior.
func (d *utf8Decoder) pendingLen() int {
	return len(d.pending)
}
