// Package konsole is a console widget toolkit: text blocks, borders, stack
// panels, data grids, menus, spinners, progress bars and prompts, all sharing
// one two-pass layout model and rendering line by line to any io.Writer.
package konsole

import (
	"fmt"
	"strconv"
	"strings"
)

// Attribute is a set of text attributes.
type Attribute uint8

const (
	AttrNone  Attribute = 0
	AttrBold  Attribute = 1 << (iota - 1)
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrInverse
	AttrStrikethrough
)

// Has reports whether every attribute in attr is set.
func (a Attribute) Has(attr Attribute) bool {
	return attr != 0 && a&attr == attr
}

// With adds attr to the set.
func (a Attribute) With(attr Attribute) Attribute { return a | attr }

// ColorMode says how a Color is interpreted.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota // whatever the terminal uses
	Color16                       // Index 0-15
	Color256                      // Index 0-255
	ColorRGB                      // R, G, B
)

// Color is a terminal color. The zero value is the terminal default.
type Color struct {
	Mode    ColorMode
	Index   uint8
	R, G, B uint8
}

func DefaultColor() Color            { return Color{} }
func BasicColor(index uint8) Color   { return Color{Mode: Color16, Index: index & 0x0f} }
func PaletteColor(index uint8) Color { return Color{Mode: Color256, Index: index} }
func RGB(r, g, b uint8) Color        { return Color{Mode: ColorRGB, R: r, G: g, B: b} }

// Hex builds a true color from 0xRRGGBB.
func Hex(v uint32) Color {
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v))
}

var (
	Black   = BasicColor(0)
	Red     = BasicColor(1)
	Green   = BasicColor(2)
	Yellow  = BasicColor(3)
	Blue    = BasicColor(4)
	Magenta = BasicColor(5)
	Cyan    = BasicColor(6)
	White   = BasicColor(7)

	BrightBlack   = BasicColor(8)
	BrightRed     = BasicColor(9)
	BrightGreen   = BasicColor(10)
	BrightYellow  = BasicColor(11)
	BrightBlue    = BasicColor(12)
	BrightMagenta = BasicColor(13)
	BrightCyan    = BasicColor(14)
	BrightWhite   = BasicColor(15)
)

// basicNames indexes the eight base colors; "bright-" adds 8.
var basicNames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// ParseColor resolves a color written in a config file: a name such as
// "red" or "bright-blue", "gray", "default", a palette index such as "208",
// or "#rrggbb".
func ParseColor(name string) (Color, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "", "default":
		return Color{}, nil
	case "gray", "grey":
		return BrightBlack, nil
	}
	if hex, ok := strings.CutPrefix(n, "#"); ok {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || len(hex) != 6 {
			return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
		}
		return Hex(uint32(v)), nil
	}
	if idx, err := strconv.Atoi(n); err == nil {
		if idx < 0 || idx > 255 {
			return Color{}, fmt.Errorf("%w: palette index %d out of range", ErrUnknownColor, idx)
		}
		return PaletteColor(uint8(idx)), nil
	}
	base, bright := strings.CutPrefix(n, "bright-")
	for i, bn := range basicNames {
		if bn != base {
			continue
		}
		if bright {
			i += 8
		}
		return BasicColor(uint8(i)), nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
}

// Style is a foreground, a background and attributes. The zero value
// leaves the terminal's defaults alone.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute
}

// DefaultStyle is the zero Style.
func DefaultStyle() Style { return Style{} }

// IsDefault reports whether s changes nothing.
func (s Style) IsDefault() bool { return s == Style{} }

func (s Style) Foreground(c Color) Style { s.FG = c; return s }
func (s Style) Background(c Color) Style { s.BG = c; return s }
func (s Style) Bold() Style              { s.Attr |= AttrBold; return s }
func (s Style) Dim() Style               { s.Attr |= AttrDim; return s }
func (s Style) Italic() Style            { s.Attr |= AttrItalic; return s }
func (s Style) Underline() Style         { s.Attr |= AttrUnderline; return s }
func (s Style) Inverse() Style           { s.Attr |= AttrInverse; return s }

// Over layers s on top of base: colors set in s win, attributes combine.
func (s Style) Over(base Style) Style {
	if s.FG.Mode != ColorDefault {
		base.FG = s.FG
	}
	if s.BG.Mode != ColorDefault {
		base.BG = s.BG
	}
	base.Attr |= s.Attr
	return base
}
