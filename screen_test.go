package vtcore

import "testing"

func rowText(row []Cell) string {
	s := ""
	for _, c := range row {
		if c.Content == "" {
			s += " "
		} else {
			s += c.Content
		}
	}
	return s
}

func feedAll(s *Screen, actions []Action) {
	for _, a := range actions {
		s.Apply(a)
	}
}

// TestScreenBasicTextNewline checks that plain text lands left-to-right
// on the cursor row and a newline advances to the next row at column 0.
func TestScreenBasicTextNewline(t *testing.T) {
	s := NewScreen(5, 10)
	p := NewParser()
	feedAll(s, p.Parse([]byte("hi\nworld")))

	if got, want := rowText(s.Row(0)), "hi        "; got != want {
		t.Errorf("row 0 = %q, want %q", got, want)
	}
	if got, want := rowText(s.Row(1)), "world     "; got != want {
		t.Errorf("row 1 = %q, want %q", got, want)
	}
	row, col := s.CursorPosition()
	if row != 1 || col != 5 {
		t.Errorf("cursor = (%d,%d), want (1,5)", row, col)
	}
	if s.Active().wrapNext {
		t.Errorf("wrap_next should be false")
	}
}

// TestScreenDelayedWrap checks that filling the last column sets
// wrap_next instead of eagerly scrolling, and that the wrap only takes
// effect once a further non-combining codepoint actually arrives.
func TestScreenDelayedWrap(t *testing.T) {
	s := NewScreen(5, 10)
	p := NewParser()
	feedAll(s, p.Parse([]byte("0123456789")))

	row, col := s.CursorPosition()
	if row != 0 || col != 9 {
		t.Fatalf("after '9': cursor = (%d,%d), want (0,9)", row, col)
	}
	if !s.Active().wrapNext {
		t.Fatalf("after '9': wrap_next should be true")
	}
	if s.Row(0)[9].Content != "9" {
		t.Fatalf("cell (0,9) = %q, want \"9\"", s.Row(0)[9].Content)
	}

	feedAll(s, p.Parse([]byte("X")))
	row, col = s.CursorPosition()
	if row != 1 || col != 1 {
		t.Fatalf("after 'X': cursor = (%d,%d), want (1,1)", row, col)
	}
	if s.Active().wrapNext {
		t.Fatalf("after 'X': wrap_next should be false")
	}
	if s.Row(1)[0].Content != "X" {
		t.Fatalf("cell (1,0) = %q, want \"X\"", s.Row(1)[0].Content)
	}
}

// TestScreenAlternateRoundTrip checks that entering the alternate screen
// (DECSET 1049) clears it and that leaving restores the primary screen's
// contents untouched.
func TestScreenAlternateRoundTrip(t *testing.T) {
	s := NewScreen(5, 10)
	p := NewParser()
	feedAll(s, p.Parse([]byte("abc\x1b[?1049h\x1b[2Jvim")))

	if !s.alternateOn {
		t.Fatalf("alternate should be active")
	}
	if got := rowText(s.Row(0))[:3]; got != "vim" {
		t.Fatalf("alternate row 0 = %q, want vim prefix", got)
	}

	feedAll(s, p.Parse([]byte("\x1b[?1049l")))
	if s.alternateOn {
		t.Fatalf("primary should be active after 1049l")
	}
	if got := rowText(s.Row(0))[:3]; got != "abc" {
		t.Fatalf("primary row 0 = %q, want abc prefix (preserved)", got)
	}
}

// TestScreenGridInvariants checks that both buffers' grids always stay
// exactly rows x cols and the cursor never drifts outside that range,
// even after a flood of out-of-range relative moves.
func TestScreenGridInvariants(t *testing.T) {
	s := NewScreen(5, 10)
	p := NewParser()
	feedAll(s, p.Parse([]byte("hello\nworld\x1b[2;3H\x1b[999B\x1b[999C")))

	for _, active := range []*ScreenState{s.primary, s.alternate} {
		if len(active.grid) != active.rows {
			t.Errorf("grid has %d rows, want %d", len(active.grid), active.rows)
		}
		for i, row := range active.grid {
			if len(row) != active.cols {
				t.Errorf("row %d has %d cells, want %d", i, len(row), active.cols)
			}
		}
		if active.cursorRow < 0 || active.cursorRow >= active.rows {
			t.Errorf("cursorRow %d out of range", active.cursorRow)
		}
		if active.cursorCol < 0 || active.cursorCol >= active.cols {
			t.Errorf("cursorCol %d out of range", active.cursorCol)
		}
	}
}

// TestScreenScrollRegionNoOpOutside checks that IL/DL have no effect when
// the cursor sits outside the active scroll region.
func TestScreenScrollRegionNoOpOutside(t *testing.T) {
	s := NewScreen(5, 10)
	p := NewParser()
	feedAll(s, p.Parse([]byte("\x1b[2;4r"))) // region rows 1..3 (0-based)
	feedAll(s, p.Parse([]byte("AAAAAAAAAA\nBBBBBBBBBB\nCCCCCCCCCC\nDDDDDDDDDD\nEEEEEEEEEE")))

	s.Active().cursorRow = 4 // outside [1,3]
	before := snapshotGrid(s.Active())
	feedAll(s, p.Parse([]byte("\x1b[2L"))) // InsertLines(2)
	after := snapshotGrid(s.Active())

	for r := range before {
		for c := range before[r] {
			if before[r][c] != after[r][c] {
				t.Fatalf("grid changed at (%d,%d) despite cursor outside scroll region", r, c)
			}
		}
	}
}

func snapshotGrid(s *ScreenState) [][]Cell {
	out := make([][]Cell, len(s.grid))
	for i, row := range s.grid {
		out[i] = append([]Cell(nil), row...)
	}
	return out
}

// TestScreenEmptyVsSpaceWrite checks that an empty PrintText is a true
// no-op while a literal space overwrites the cell visibly.
func TestScreenEmptyVsSpaceWrite(t *testing.T) {
	s := NewScreen(2, 2)
	s.Active().grid[0][0] = Cell{Content: "x", Attributes: DefaultAttributes}

	s.Apply(Action{Kind: ActionPrintText, Text: "", Attrs: DefaultAttributes})
	if s.Row(0)[0].Content != "x" {
		t.Fatalf("writing empty content must not modify the cell")
	}

	s.Active().cursorRow, s.Active().cursorCol = 0, 0
	s.Apply(Action{Kind: ActionPrintText, Text: " ", Attrs: DefaultAttributes})
	if s.Row(0)[0].Content != " " {
		t.Fatalf("writing \" \" must overwrite with a visible blank, got %q", s.Row(0)[0].Content)
	}
}

func TestScreenEraseCharsUsesCurrentAttributes(t *testing.T) {
	s := NewScreen(2, 10)
	p := NewParser()
	feedAll(s, p.Parse([]byte("\x1b[31m\x1b[5X")))

	for c := 0; c < 5; c++ {
		cell := s.Row(0)[c]
		if cell.Content != " " {
			t.Fatalf("cell %d content = %q, want a blank", c, cell.Content)
		}
		if cell.Attributes.Foreground != AnsiColor(1) {
			t.Fatalf("cell %d foreground = %+v, want the active red", c, cell.Attributes.Foreground)
		}
	}
}

func TestScreenInsertAndDeleteCharsUseCurrentAttributes(t *testing.T) {
	s := NewScreen(2, 10)
	p := NewParser()
	feedAll(s, p.Parse([]byte("abcde")))
	s.Active().cursorRow, s.Active().cursorCol = 0, 1

	feedAll(s, p.Parse([]byte("\x1b[32m\x1b[2@")))
	if s.Row(0)[1].Attributes.Foreground != AnsiColor(2) {
		t.Fatalf("ICH-inserted cell foreground = %+v, want active green", s.Row(0)[1].Attributes.Foreground)
	}

	feedAll(s, p.Parse([]byte("\x1b[34m\x1b[3P")))
	// DCH shifts from the right; the cells uncovered at the row's tail
	// must carry the attributes active at the time of the delete.
	if s.Row(0)[len(s.Row(0))-1].Attributes.Foreground != AnsiColor(4) {
		t.Fatalf("DCH-uncovered tail cell foreground = %+v, want active blue", s.Row(0)[len(s.Row(0))-1].Attributes.Foreground)
	}
}

func TestScreenCombiningMarkAnchoring(t *testing.T) {
	s := NewScreen(2, 10)
	p := NewParser()
	// "e" + combining acute accent U+0301
	feedAll(s, p.Parse([]byte("é")))
	if s.Row(0)[0].Content != "é" {
		t.Fatalf("got %q, want combining mark anchored to base cell", s.Row(0)[0].Content)
	}
	_, col := s.CursorPosition()
	if col != 1 {
		t.Fatalf("cursor should not advance for a combining mark, col=%d", col)
	}
}
