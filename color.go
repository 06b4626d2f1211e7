// Package vtcore is the byte-stream-to-screen-state core of a graphical
// terminal emulator: an ECMA-48/xterm escape-sequence decoder (C1/C2) and
// the screen/history/scrollback model it drives (C3/C4/C5).
//
// Everything outside that pipeline - pty lifecycle, glyph rendering, window
// integration - is specified only as a contract the subpackages ptyadapter
// and renderer implement or expose.
package vtcore

// ColorType indicates how a color was specified.
type ColorType uint8

const (
	ColorTypeDefault ColorType = iota // terminal default fg/bg (SGR 39/49)
	ColorTypeAnsi                     // standard 16 ANSI colors (0-15)
	ColorTypeIndexed                  // 256-color palette (0-255)
	ColorTypeRGB                      // 24-bit truecolor
)

// Color is a tagged union over the four ways ECMA-48/xterm let a program
// specify a color. Equality is structural (plain ==).
type Color struct {
	Type    ColorType
	Index   uint8 // for Ansi (0-15) or Indexed (0-255)
	R, G, B uint8 // for RGB; also the resolved value for Ansi/Indexed
}

// DefaultColor is the "use terminal default" color (SGR 39/49).
var DefaultColor = Color{Type: ColorTypeDefault}

// AnsiColor builds a standard 16-color ANSI color (0-15).
func AnsiColor(index int) Color {
	if index < 0 || index > 15 {
		index = 7
	}
	rgb := ansi16RGB[index]
	return Color{Type: ColorTypeAnsi, Index: uint8(index), R: rgb.r, G: rgb.g, B: rgb.b}
}

// IndexedColor builds a 256-color xterm palette color (0-255).
func IndexedColor(index int) Color {
	if index < 0 || index > 255 {
		index = 7
	}
	rgb := indexed256RGB(index)
	return Color{Type: ColorTypeIndexed, Index: uint8(index), R: rgb.r, G: rgb.g, B: rgb.b}
}

// RGBColor builds a 24-bit truecolor.
func RGBColor(r, g, b uint8) Color {
	return Color{Type: ColorTypeRGB, R: r, G: g, B: b}
}

// IsDefault reports whether c is the "use terminal default" color.
func (c Color) IsDefault() bool {
	return c.Type == ColorTypeDefault
}

type rgb struct{ r, g, b uint8 }

// ansi16RGB is the standard ANSI 16-color palette, in ANSI order.
var ansi16RGB = [16]rgb{
	{0, 0, 0}, {170, 0, 0}, {0, 170, 0}, {170, 85, 0},
	{0, 0, 170}, {170, 0, 170}, {0, 170, 170}, {170, 170, 170},
	{85, 85, 85}, {255, 85, 85}, {85, 255, 85}, {255, 255, 85},
	{85, 85, 255}, {255, 85, 255}, {85, 255, 255}, {255, 255, 255},
}

// indexed256RGB resolves a 256-color xterm palette index to RGB: 0-15 are
// the ANSI colors, 16-231 are a 6x6x6 color cube, 232-255 are a grayscale
// ramp. Matches xterm's standard palette layout.
func indexed256RGB(idx int) rgb {
	switch {
	case idx < 0:
		return ansi16RGB[0]
	case idx < 16:
		return ansi16RGB[idx]
	case idx < 232:
		idx -= 16
		b := idx % 6
		g := (idx / 6) % 6
		r := idx / 36
		return rgb{uint8(r * 51), uint8(g * 51), uint8(b * 51)}
	default:
		gray := uint8((idx-232)*10 + 8)
		return rgb{gray, gray, gray}
	}
}

// AttrFlags are the boolean SGR attributes.
type AttrFlags struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Blink         bool
	Reverse       bool
	Strikethrough bool
}

// Attributes is the full graphic-rendition state: colors plus flags. It is
// copied by value into every Cell and every PrintText action.
type Attributes struct {
	Foreground Color
	Background Color
	AttrFlags
}

// DefaultAttributes is the Attributes value after SGR 0 / terminal reset.
var DefaultAttributes = Attributes{Foreground: DefaultColor, Background: DefaultColor}
