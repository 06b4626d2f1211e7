package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/nrpeterson/vtcore"
	"github.com/nrpeterson/vtcore/renderer"
)

// render is the reference renderer: not part of vtcore itself, just a
// minimal terminal-in-a-terminal renderer good enough to drive vtterm
// interactively. It repaints only rows that changed since the last
// frame rather than redrawing the whole screen every tick, and uses
// go-runewidth to decide how many host columns a cell's content
// occupies - the core itself assumes one column per base character, but
// a real terminal screen is not obligated to agree.
type render struct {
	out      io.Writer
	last     [][]vtcore.Cell
	lastAttr vtcore.Attributes
	attrSet  bool
}

func newRender(out io.Writer) *render {
	return &render{out: out}
}

func (r *render) Frame(src renderer.Source) {
	snap := src.Snapshot()
	grid := snap.Grid()

	var b strings.Builder
	b.WriteString("\x1b[H")

	changed := r.last == nil || len(r.last) != len(grid)
	if !changed {
		for i := range grid {
			if len(r.last[i]) != len(grid[i]) {
				changed = true
				break
			}
		}
	}

	for rowIdx, row := range grid {
		if !changed && rowEqual(r.last[rowIdx], row) {
			continue
		}
		b.WriteString(fmt.Sprintf("\x1b[%d;1H\x1b[K", rowIdx+1))
		r.writeRow(&b, row)
	}

	cursorRow, cursorCol, visible := snap.Cursor()
	b.WriteString(fmt.Sprintf("\x1b[%d;%dH", cursorRow+1, cursorCol+1))
	if visible {
		b.WriteString("\x1b[?25h")
	} else {
		b.WriteString("\x1b[?25l")
	}

	r.last = cloneGrid(grid)
	io.WriteString(r.out, b.String())
}

func (r *render) writeRow(b *strings.Builder, row []vtcore.Cell) {
	r.attrSet = false
	col := 0
	for _, cell := range row {
		content := cell.Content
		if content == "" {
			content = " "
		}
		if !r.attrSet || cell.Attributes != r.lastAttr {
			b.WriteString(sgrFor(cell.Attributes))
			r.lastAttr = cell.Attributes
			r.attrSet = true
		}
		b.WriteString(content)
		col += runewidth.StringWidth(content)
	}
}

func rowEqual(a, b []vtcore.Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneGrid(grid [][]vtcore.Cell) [][]vtcore.Cell {
	out := make([][]vtcore.Cell, len(grid))
	for i, row := range grid {
		out[i] = append([]vtcore.Cell(nil), row...)
	}
	return out
}

func sgrFor(a vtcore.Attributes) string {
	var codes []string
	codes = append(codes, "0")
	if a.Bold {
		codes = append(codes, "1")
	}
	if a.Italic {
		codes = append(codes, "3")
	}
	if a.Underline {
		codes = append(codes, "4")
	}
	if a.Blink {
		codes = append(codes, "5")
	}
	if a.Reverse {
		codes = append(codes, "7")
	}
	if a.Strikethrough {
		codes = append(codes, "9")
	}
	codes = append(codes, colorSGR(a.Foreground, false), colorSGR(a.Background, true))
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func colorSGR(c vtcore.Color, background bool) string {
	base := 30
	if background {
		base = 40
	}
	switch c.Type {
	case vtcore.ColorTypeDefault:
		if background {
			return "49"
		}
		return "39"
	case vtcore.ColorTypeAnsi:
		idx := int(c.Index)
		if idx < 8 {
			return fmt.Sprintf("%d", base+idx)
		}
		if background {
			return fmt.Sprintf("%d", 100+idx-8)
		}
		return fmt.Sprintf("%d", 90+idx-8)
	case vtcore.ColorTypeIndexed:
		return fmt.Sprintf("%d;5;%d", base+8, c.Index)
	case vtcore.ColorTypeRGB:
		return fmt.Sprintf("%d;2;%d;%d;%d", base+8, c.R, c.G, c.B)
	default:
		if background {
			return "49"
		}
		return "39"
	}
}
