package vtcore

// Cell is a single grid position: a grapheme cluster (one base codepoint
// plus any zero-width combining marks that followed it) plus the graphic
// rendition active when it was written.
//
// An empty Content means "unwritten" - the renderer treats it as blank. A
// single space is a visible blank cell written by a program. This
// distinction matters: a PrintText action carrying an empty string is a
// no-op, while a program that actually writes a space overwrites the
// cell, clearing whatever attributes or content were there before.
type Cell struct {
	Content    string
	Attributes Attributes
}

// EmptyCell is the zero-value "unwritten" cell: no content, default
// attributes. It renders as a blank but differs from a cell that was
// explicitly written with a space - see Cell's doc comment.
func EmptyCell() Cell {
	return Cell{Attributes: DefaultAttributes}
}

// BlankCell is a cell that was explicitly overwritten with a visible space
// under the given attributes (used by erase operations).
func BlankCell(attrs Attributes) Cell {
	return Cell{Content: " ", Attributes: attrs}
}

// isCombining classifies a codepoint as a combining mark: it attaches to
// the previous base character instead of occupying its own cell. The
// ranges are deliberately narrow (not the full Unicode Mn/Mc/Me
// categories) - covering every combining category would also have to
// resolve how multi-codepoint Devanagari/Korean clusters affect cursor
// advance, which is left as an open design point (see DESIGN.md).
func isCombining(r rune) bool {
	switch {
	case r >= 0x0300 && r <= 0x036F: // combining diacritical marks
		return true
	case r == 0x200C || r == 0x200D: // ZWNJ, ZWJ
		return true
	case r >= 0x0900 && r <= 0x0903: // Devanagari signs
		return true
	case r >= 0x093A && r <= 0x094F:
		return true
	case r >= 0x0951 && r <= 0x0957:
		return true
	case r >= 0x0962 && r <= 0x0963:
		return true
	default:
		return false
	}
}
