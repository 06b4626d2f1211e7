package vtcore

// ScreenState is one grid and the cursor/mode state that goes with it - one
// instance for the primary buffer, one for the alternate buffer. Both are
// owned by Terminal for its whole lifetime; switching between them is a
// bool flag, never pointer swapping, so the primary buffer's contents
// survive toggling DECSET 1049 back and forth. The alternate buffer is
// cleared on every entry.
type ScreenState struct {
	rows, cols int
	grid       [][]Cell

	cursorRow, cursorCol int
	savedRow, savedCol   int
	savedAttrs           Attributes

	wrapNext    bool
	autoWrap    bool
	insertMode  bool
	regionTop   int
	regionBot   int // inclusive; rows-1 when unset
	cursorVis   bool
	appCursor   bool
}

func newScreenState(rows, cols int) *ScreenState {
	s := &ScreenState{
		rows: rows, cols: cols,
		autoWrap:  true,
		cursorVis: true,
		regionTop: 0,
		regionBot: rows - 1,
	}
	s.grid = make([][]Cell, rows)
	for r := range s.grid {
		s.grid[r] = newBlankRow(cols)
	}
	return s
}

func newBlankRow(cols int) []Cell {
	row := make([]Cell, cols)
	for c := range row {
		row[c] = EmptyCell()
	}
	return row
}

func (s *ScreenState) clear() {
	for r := range s.grid {
		s.grid[r] = newBlankRow(s.cols)
	}
	s.cursorRow, s.cursorCol = 0, 0
	s.wrapNext = false
	s.regionTop, s.regionBot = 0, s.rows-1
}

func (s *ScreenState) clampCursor() {
	if s.cursorRow < 0 {
		s.cursorRow = 0
	}
	if s.cursorRow >= s.rows {
		s.cursorRow = s.rows - 1
	}
	if s.cursorCol < 0 {
		s.cursorCol = 0
	}
	if s.cursorCol >= s.cols {
		s.cursorCol = s.cols - 1
	}
}

// Screen owns both ScreenStates and decides, per action, which one is
// live. It never allocates unbounded memory from a single action:
// InsertLines/InsertChars with a huge n clip to the region/grid size
// rather than growing it.
type Screen struct {
	primary     *ScreenState
	alternate   *ScreenState
	alternateOn bool
	// everAlternate latches true the first time the alternate screen is
	// entered; it gates History recording for the rest of the Terminal's
	// lifetime, since full-screen applications that use the alternate
	// buffer (editors, pagers) produce output that isn't meaningful
	// scrollback once they exit.
	everAlternate bool
}

// NewScreen builds a Screen with both buffers at the given size.
func NewScreen(rows, cols int) *Screen {
	return &Screen{
		primary:   newScreenState(rows, cols),
		alternate: newScreenState(rows, cols),
	}
}

// Active returns the ScreenState the next action should apply to.
func (s *Screen) Active() *ScreenState {
	if s.alternateOn {
		return s.alternate
	}
	return s.primary
}

// RecordsHistory reports whether PrintText/Newline/etc. should also feed
// the History model: primary is active and alternate has never been
// entered.
func (s *Screen) RecordsHistory() bool {
	return !s.alternateOn && !s.everAlternate
}

func (s *Screen) Rows() int { return s.Active().rows }
func (s *Screen) Cols() int { return s.Active().cols }

// CursorPosition returns the active screen's cursor, 0-based.
func (s *Screen) CursorPosition() (row, col int) {
	a := s.Active()
	return a.cursorRow, a.cursorCol
}

// CursorVisible reports the active screen's cursor visibility.
func (s *Screen) CursorVisible() bool {
	return s.Active().cursorVis
}

// ApplicationCursorKeys reports whether DECSET 1 (application cursor keys
// mode) is active on the active screen - the flag a host needs to pick
// the right encoding in EncodeKey for the arrow keys.
func (s *Screen) ApplicationCursorKeys() bool {
	return s.Active().appCursor
}

// Row returns a read-only view of one row of the active grid.
func (s *Screen) Row(r int) []Cell {
	return s.Active().grid[r]
}

// Grid returns a read-only view of the active screen's full grid,
// oldest-row-first - the borrow a renderer snapshot hands out. Callers
// must not mutate it; it aliases live screen state.
func (s *Screen) Grid() [][]Cell {
	return s.Active().grid
}

// setAlternateBuffer implements ActionSetAlternateBuffer: entry clears the
// alternate grid and homes its cursor, matching xterm's DECSET 1049 entry
// behavior; exit leaves the primary grid untouched, so returning from a
// full-screen program restores exactly what was on screen before it ran.
func (s *Screen) setAlternateBuffer(on bool) {
	if on == s.alternateOn {
		return
	}
	if on {
		s.alternate.clear()
		s.everAlternate = true
	}
	s.alternateOn = on
}

// Apply mutates the active ScreenState (or switches buffers) for one
// Action. text-bearing actions that also need History get routed there by
// Terminal, not here - Screen only knows about the grid.
func (s *Screen) Apply(a Action) {
	switch a.Kind {
	case ActionSetAlternateBuffer:
		s.setAlternateBuffer(a.On)
	case ActionPrintText:
		for _, r := range a.Text {
			s.writeCodepoint(r, a.Attrs)
		}
	case ActionNewline:
		s.newline()
	case ActionCarriageReturn:
		s.Active().cursorCol = 0
	case ActionNextLine:
		s.Active().cursorCol = 0
		s.newline()
	case ActionIndex:
		s.index()
	case ActionReverseIndex:
		s.reverseIndex()
	case ActionTab:
		active := s.Active()
		next := (active.cursorCol/8 + 1) * 8
		if next > active.cols-1 {
			next = active.cols - 1
		}
		active.cursorCol = next
	case ActionClearScreen:
		s.clearScreen(a.Mode, a.Attrs)
	case ActionClearLine:
		s.clearLine(a.Mode, a.Attrs)
	case ActionMoveCursor:
		s.moveCursor(a)
	case ActionInsertLines:
		s.insertLines(a.N)
	case ActionDeleteLines:
		s.deleteLines(a.N)
	case ActionInsertChars:
		s.insertChars(a.N, a.Attrs)
	case ActionDeleteChars:
		s.deleteChars(a.N, a.Attrs)
	case ActionEraseChars:
		s.eraseChars(a.N, a.Attrs)
	case ActionScrollTextUp:
		for i := 0; i < a.N; i++ {
			s.scrollUp()
		}
	case ActionScrollTextDown:
		for i := 0; i < a.N; i++ {
			s.scrollDown()
		}
	case ActionSetScrollRegion:
		s.setScrollRegion(a.Top, a.Bottom)
	case ActionSetCursorVisible:
		s.Active().cursorVis = a.On
	case ActionSetAutoWrap:
		s.Active().autoWrap = a.On
	case ActionSetAppCursorKeys:
		s.Active().appCursor = a.On
	case ActionSetInsertMode:
		s.Active().insertMode = a.On
	case ActionSaveCursor:
		s.saveCursor(a.Attrs)
	case ActionRestoreCursor:
		s.restoreCursor()
	case ActionBackspace:
		active := s.Active()
		if active.cursorCol > 0 {
			active.cursorCol--
		}
	}
}

// writeCodepoint resolves a pending delayed wrap, anchors combining marks
// onto the previous cell instead of advancing the cursor, and otherwise
// writes the codepoint at the cursor (shifting the row right first under
// insert mode), deferring the actual wrap to the next non-combining write
// so a line that exactly fills the last column doesn't eagerly scroll.
func (s *Screen) writeCodepoint(cp rune, attrs Attributes) {
	active := s.Active()
	combining := isCombining(cp)

	if active.autoWrap && active.wrapNext && !combining {
		active.wrapNext = false
		active.cursorCol = 0
		if active.cursorRow == active.regionBot {
			s.scrollUp()
		} else {
			active.cursorRow++
		}
	}

	if combining {
		var row, col int
		if active.cursorCol > 0 {
			row, col = active.cursorRow, active.cursorCol-1
		} else if active.wrapNext {
			row, col = active.cursorRow, active.cursorCol
		} else {
			return // no anchor cell at row start
		}
		active.grid[row][col].Content += string(cp)
		return
	}

	col := active.cursorCol
	if col >= active.cols {
		col = active.cols - 1
	}
	row := active.cursorRow
	cell := Cell{Content: string(cp), Attributes: attrs}
	if active.insertMode {
		line := active.grid[row]
		copy(line[col+1:], line[col:len(line)-1])
		line[col] = cell
	} else {
		active.grid[row][col] = cell
	}

	if col+1 >= active.cols {
		if active.autoWrap {
			active.wrapNext = true
		}
	} else {
		active.cursorCol = col + 1
		active.wrapNext = false
	}
}

// blankCellAt builds a blank cell carrying attrs, used by erase/clear
// operations below, which always write literal spaces (never empty
// content, which would be a no-op write rather than a visible erase).
func blankCellAt(attrs Attributes) Cell {
	return BlankCell(attrs)
}

func (s *Screen) newline() {
	active := s.Active()
	if active.cursorRow == active.regionBot {
		s.scrollUp()
	} else {
		active.cursorRow++
	}
}

func (s *Screen) index() {
	s.newline()
}

func (s *Screen) reverseIndex() {
	active := s.Active()
	if active.cursorRow == active.regionTop {
		s.scrollDown()
	} else {
		active.cursorRow--
	}
}

func (s *Screen) scrollUp() {
	active := s.Active()
	top, bot := active.regionTop, active.regionBot
	if top < 0 || bot >= active.rows || top > bot {
		return
	}
	copy(active.grid[top:bot], active.grid[top+1:bot+1])
	active.grid[bot] = newBlankRow(active.cols)
}

func (s *Screen) scrollDown() {
	active := s.Active()
	top, bot := active.regionTop, active.regionBot
	if top < 0 || bot >= active.rows || top > bot {
		return
	}
	copy(active.grid[top+1:bot+1], active.grid[top:bot])
	active.grid[top] = newBlankRow(active.cols)
}

func (s *Screen) clearScreen(mode int, attrs Attributes) {
	active := s.Active()
	row, col := active.cursorRow, active.cursorCol
	switch mode {
	case 0:
		eraseRowFrom(active.grid[row], col, active.cols, attrs)
		for r := row + 1; r < active.rows; r++ {
			eraseRowFrom(active.grid[r], 0, active.cols, attrs)
		}
	case 1:
		eraseRowTo(active.grid[row], col, attrs)
		for r := 0; r < row; r++ {
			eraseRowFrom(active.grid[r], 0, active.cols, attrs)
		}
	default:
		for r := 0; r < active.rows; r++ {
			eraseRowFrom(active.grid[r], 0, active.cols, attrs)
		}
	}
}

func (s *Screen) clearLine(mode int, attrs Attributes) {
	active := s.Active()
	row, col := active.cursorRow, active.cursorCol
	line := active.grid[row]
	switch mode {
	case 0:
		eraseRowFrom(line, col, active.cols, attrs)
	case 1:
		eraseRowTo(line, col, attrs)
	default:
		eraseRowFrom(line, 0, active.cols, attrs)
	}
}

func eraseRowFrom(line []Cell, from, cols int, attrs Attributes) {
	for c := from; c < cols; c++ {
		line[c] = blankCellAt(attrs)
	}
}

func eraseRowTo(line []Cell, to int, attrs Attributes) {
	for c := 0; c <= to && c < len(line); c++ {
		line[c] = blankCellAt(attrs)
	}
}

func (s *Screen) moveCursor(a Action) {
	active := s.Active()
	switch a.MoveKind {
	case CursorMoveUp:
		active.cursorRow -= a.N
	case CursorMoveDown:
		active.cursorRow += a.N
	case CursorMoveForward:
		active.cursorCol += a.N
	case CursorMoveBackward:
		active.cursorCol -= a.N
	case CursorMoveAbsolute:
		active.cursorRow = a.Row
		active.cursorCol = a.Col
	}
	active.clampCursor()
	active.wrapNext = false
}

// insertLines/deleteLines only act when the cursor is within the scroll
// region - ECMA-48's IL/DL are defined relative to the scrolling margins,
// not the whole screen, so a cursor parked outside the region is a no-op.
func (s *Screen) insertLines(n int) {
	active := s.Active()
	top, bot := active.regionTop, active.regionBot
	row := active.cursorRow
	if row < top || row > bot {
		return
	}
	if n > bot-row+1 {
		n = bot - row + 1
	}
	for i := 0; i < n; i++ {
		copy(active.grid[row+1:bot+1], active.grid[row:bot])
		active.grid[row] = newBlankRow(active.cols)
	}
}

func (s *Screen) deleteLines(n int) {
	active := s.Active()
	top, bot := active.regionTop, active.regionBot
	row := active.cursorRow
	if row < top || row > bot {
		return
	}
	if n > bot-row+1 {
		n = bot - row + 1
	}
	for i := 0; i < n; i++ {
		copy(active.grid[row:bot], active.grid[row+1:bot+1])
		active.grid[bot] = newBlankRow(active.cols)
	}
}

func (s *Screen) insertChars(n int, attrs Attributes) {
	active := s.Active()
	line := active.grid[active.cursorRow]
	col := active.cursorCol
	if n > len(line)-col {
		n = len(line) - col
	}
	if n <= 0 {
		return
	}
	copy(line[col+n:], line[col:len(line)-n])
	for c := col; c < col+n; c++ {
		line[c] = blankCellAt(attrs)
	}
}

func (s *Screen) deleteChars(n int, attrs Attributes) {
	active := s.Active()
	line := active.grid[active.cursorRow]
	col := active.cursorCol
	if n > len(line)-col {
		n = len(line) - col
	}
	if n <= 0 {
		return
	}
	copy(line[col:len(line)-n], line[col+n:])
	for c := len(line) - n; c < len(line); c++ {
		line[c] = blankCellAt(attrs)
	}
}

func (s *Screen) eraseChars(n int, attrs Attributes) {
	active := s.Active()
	line := active.grid[active.cursorRow]
	col := active.cursorCol
	end := col + n
	if end > len(line) {
		end = len(line)
	}
	for c := col; c < end; c++ {
		line[c] = blankCellAt(attrs)
	}
}

func (s *Screen) setScrollRegion(top, bottom int) {
	active := s.Active()
	if bottom == -1 {
		bottom = active.rows - 1
	}
	if top < 0 {
		top = 0
	}
	if bottom >= active.rows {
		bottom = active.rows - 1
	}
	if top > bottom {
		return
	}
	active.regionTop = top
	active.regionBot = bottom
}

func (s *Screen) saveCursor(attrs Attributes) {
	active := s.Active()
	active.savedRow = active.cursorRow
	active.savedCol = active.cursorCol
	active.savedAttrs = attrs
}

// restoreCursor applies the saved row/col and clears wrap_next. wrap_next
// is treated as transient render state rather than part of the saved
// cursor, so a restore never replays a pending wrap from a different
// point in the output stream (see DESIGN.md for the tradeoff against
// xterm, which does restore it).
func (s *Screen) restoreCursor() {
	active := s.Active()
	active.cursorRow = active.savedRow
	active.cursorCol = active.savedCol
	active.wrapNext = false
	active.clampCursor()
}

// SavedAttributes returns the attributes captured by the most recent
// SaveCursor on the active screen, so Terminal can restore them into the
// parser alongside RestoreCursor.
func (s *Screen) SavedAttributes() Attributes {
	return s.Active().savedAttrs
}
