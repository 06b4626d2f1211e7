package vtcore

// ActionKind tags the variant of an Action. Go has no native sum type, so
// Action is a struct with a Kind enum and only the fields relevant to
// that Kind populated, rather than one struct type per action.
type ActionKind int

const (
	ActionPrintText ActionKind = iota
	ActionNewline
	ActionCarriageReturn
	ActionBackspace
	ActionTab
	ActionNextLine
	ActionIndex
	ActionReverseIndex
	ActionSetAttributes
	ActionClearScreen
	ActionClearLine
	ActionMoveCursor
	ActionInsertLines
	ActionDeleteLines
	ActionInsertChars
	ActionDeleteChars
	ActionEraseChars
	ActionScrollTextUp
	ActionScrollTextDown
	ActionSetScrollRegion
	ActionReportDeviceStatus
	ActionReportCursorPosition
	ActionSetAlternateBuffer
	ActionSetCursorVisible
	ActionSetAutoWrap
	ActionSetAppCursorKeys
	ActionSetInsertMode
	ActionSaveCursor
	ActionRestoreCursor
)

// CursorMoveKind distinguishes relative cursor deltas from absolute CUP/HVP
// positioning within a MoveCursor action.
type CursorMoveKind int

const (
	CursorMoveUp CursorMoveKind = iota
	CursorMoveDown
	CursorMoveForward
	CursorMoveBackward
	CursorMoveAbsolute
)

// Action is one decoded terminal operation, in the order the parser
// emitted it. The Screen and History models consume Actions strictly in
// order and never reorder them - terminal output is inherently a stream
// of incremental edits, and replaying it out of order would desync the
// grid from what the program actually sent.
type Action struct {
	Kind ActionKind

	// ActionPrintText (write attrs), ActionClearScreen/ActionClearLine/
	// ActionInsertChars/ActionDeleteChars/ActionEraseChars (blank-fill
	// attrs), ActionSaveCursor (attrs at the time of the save - see
	// DESIGN.md's SaveCursor convention)
	Text  string
	Attrs Attributes

	// ActionSetAttributes
	NewAttrs Attributes

	// ActionClearScreen, ActionClearLine
	Mode int

	// ActionMoveCursor
	MoveKind CursorMoveKind
	Row, Col int // absolute target for CursorMoveAbsolute
	// N is also the relative delta for CursorMoveUp/Down/Forward/Backward.

	// ActionInsertLines, ActionDeleteLines, ActionInsertChars,
	// ActionDeleteChars, ActionEraseChars, ActionScrollTextUp/Down
	N int

	// ActionSetScrollRegion. Bottom == -1 is the sentinel for "unset,
	// resolve to rows-1" - the parser doesn't know the screen height.
	Top, Bottom int

	// ActionSetAlternateBuffer, ActionSetCursorVisible, ActionSetAutoWrap,
	// ActionSetAppCursorKeys, ActionSetInsertMode
	On bool
}
