package vtcore

import "testing"

// TestParserIdempotentReset checks that SGR 0 is idempotent: applying it
// twice lands on the same attributes as applying it once.
func TestParserIdempotentReset(t *testing.T) {
	p1 := NewParser()
	p1.Parse([]byte("\x1b[1;31m"))
	p1.Parse([]byte("\x1b[0m"))

	p2 := NewParser()
	p2.Parse([]byte("\x1b[1;31m\x1b[0m\x1b[0m"))

	if p1.CurrentAttributes() != DefaultAttributes {
		t.Fatalf("p1 attrs = %+v, want Default", p1.CurrentAttributes())
	}
	if p1.CurrentAttributes() != p2.CurrentAttributes() {
		t.Fatalf("ESC[0m ESC[0m should match a single ESC[0m: %+v vs %+v", p1.CurrentAttributes(), p2.CurrentAttributes())
	}
}

// TestParserSGRSegmentation checks that each SGR change starts a new
// PrintText run, so attribute boundaries never get merged across a
// color change.
func TestParserSGRSegmentation(t *testing.T) {
	p := NewParser()
	actions := p.Parse([]byte("\x1b[31ma\x1b[32mb\x1b[0mc"))

	var prints []Action
	for _, a := range actions {
		if a.Kind == ActionPrintText {
			prints = append(prints, a)
		}
	}
	if len(prints) != 3 {
		t.Fatalf("got %d PrintText actions, want 3: %+v", len(prints), prints)
	}
	want := []struct {
		text string
		fg   Color
	}{
		{"a", AnsiColor(1)},
		{"b", AnsiColor(2)},
		{"c", DefaultColor},
	}
	for i, w := range want {
		if prints[i].Text != w.text {
			t.Errorf("prints[%d].Text = %q, want %q", i, prints[i].Text, w.text)
		}
		if prints[i].Attrs.Foreground != w.fg {
			t.Errorf("prints[%d].Attrs.Foreground = %+v, want %+v", i, prints[i].Attrs.Foreground, w.fg)
		}
	}
}

// TestParserUTF8StreamingEquivalence checks that feeding a byte stream
// one byte at a time is observationally equivalent to feeding it in one
// chunk: a codepoint split across Parse calls decodes to the same text
// and is never dropped or corrupted, regardless of where the chunk
// boundaries fall. Parse flushes whatever text it has accumulated at the
// end of every call, so a completed multi-byte codepoint is never left
// stranded; that means non-text actions (SGR, Newline, ...) and the
// reassembled text are what must match byte-for-byte and
// chunk-for-chunk - not the exact PrintText run boundaries, which
// legitimately depend on chunking.
func TestParserUTF8StreamingEquivalence(t *testing.T) {
	input := []byte("hi\x1b[31mwor\xe0\xa4\xb9ld\n")

	collapse := func(actions []Action) []Action {
		var out []Action
		for _, a := range actions {
			if a.Kind == ActionPrintText && len(out) > 0 && out[len(out)-1].Kind == ActionPrintText && out[len(out)-1].Attrs == a.Attrs {
				out[len(out)-1].Text += a.Text
				continue
			}
			out = append(out, a)
		}
		return out
	}

	whole := collapse(NewParser().Parse(input))

	byteAtATime := NewParser()
	var piecemeal []Action
	for _, b := range input {
		piecemeal = append(piecemeal, byteAtATime.Parse([]byte{b})...)
	}
	piecemeal = collapse(piecemeal)

	if len(whole) != len(piecemeal) {
		t.Fatalf("got %d actions whole vs %d piecemeal:\nwhole=%+v\npiecemeal=%+v", len(whole), len(piecemeal), whole, piecemeal)
	}
	for i := range whole {
		if whole[i] != piecemeal[i] {
			t.Errorf("action %d differs: whole=%+v piecemeal=%+v", i, whole[i], piecemeal[i])
		}
	}
}

func TestParserCSIDispatch(t *testing.T) {
	t.Run("DECSTBM", func(t *testing.T) {
		p := NewParser()
		actions := p.Parse([]byte("\x1b[2;10r"))
		if len(actions) != 2 || actions[0].Kind != ActionSetScrollRegion {
			t.Fatalf("got %+v", actions)
		}
		if actions[0].Top != 1 || actions[0].Bottom != 9 {
			t.Fatalf("region = %d,%d want 1,9", actions[0].Top, actions[0].Bottom)
		}
		if actions[1].Kind != ActionMoveCursor || actions[1].Row != 0 || actions[1].Col != 0 {
			t.Fatalf("DECSTBM must also home the cursor, got %+v", actions[1])
		}
	})

	t.Run("DECSTBM default bottom", func(t *testing.T) {
		p := NewParser()
		actions := p.Parse([]byte("\x1b[r"))
		if actions[0].Bottom != -1 {
			t.Fatalf("omitted bottom should carry the -1 sentinel, got %d", actions[0].Bottom)
		}
	})

	t.Run("alternate buffer mode 1049", func(t *testing.T) {
		p := NewParser()
		actions := p.Parse([]byte("\x1b[?1049h"))
		if len(actions) != 1 || actions[0].Kind != ActionSetAlternateBuffer || !actions[0].On {
			t.Fatalf("got %+v", actions)
		}
		actions = p.Parse([]byte("\x1b[?1049l"))
		if len(actions) != 1 || actions[0].On {
			t.Fatalf("got %+v", actions)
		}
	})

	t.Run("DSR", func(t *testing.T) {
		p := NewParser()
		actions := p.Parse([]byte("\x1b[6n"))
		if len(actions) != 1 || actions[0].Kind != ActionReportCursorPosition {
			t.Fatalf("got %+v", actions)
		}
	})

	t.Run("malformed sequence degrades silently", func(t *testing.T) {
		p := NewParser()
		actions := p.Parse([]byte("\x1b[1;q"))
		if len(actions) != 0 {
			t.Fatalf("malformed CSI should emit nothing, got %+v", actions)
		}
		// parser must still be usable afterward
		actions = p.Parse([]byte("ok"))
		if len(actions) != 1 || actions[0].Text != "ok" {
			t.Fatalf("parser did not recover: %+v", actions)
		}
	})
}

func TestParserExtendedSGRColors(t *testing.T) {
	t.Run("indexed", func(t *testing.T) {
		p := NewParser()
		p.Parse([]byte("\x1b[38;5;196m"))
		if p.CurrentAttributes().Foreground != IndexedColor(196) {
			t.Fatalf("got %+v", p.CurrentAttributes().Foreground)
		}
	})
	t.Run("rgb", func(t *testing.T) {
		p := NewParser()
		p.Parse([]byte("\x1b[48;2;10;20;30m"))
		if p.CurrentAttributes().Background != RGBColor(10, 20, 30) {
			t.Fatalf("got %+v", p.CurrentAttributes().Background)
		}
	})
}
