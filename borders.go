package konsole

import (
	"fmt"
	"sort"
	"strings"
)

// Box drawing characters for borders.
const (
	BoxHorizontal         = '─'
	BoxVertical           = '│'
	BoxTopLeft            = '┌'
	BoxTopRight           = '┐'
	BoxBottomLeft         = '└'
	BoxBottomRight        = '┘'
	BoxRoundedTopLeft     = '╭'
	BoxRoundedTopRight    = '╮'
	BoxRoundedBottomLeft  = '╰'
	BoxRoundedBottomRight = '╯'
)

// Box junction characters for merged borders
const (
	BoxTeeDown  = '┬' // ─ meets │ from below
	BoxTeeUp    = '┴' // ─ meets │ from above
	BoxTeeRight = '├' // │ meets ─ from right
	BoxTeeLeft  = '┤' // │ meets ─ from left
	BoxCross    = '┼' // all four directions
)

// borderEdges maps border runes to which edges they connect (top, right, bottom, left)
// Using bits: 1=top, 2=right, 4=bottom, 8=left
var borderEdges = map[rune]uint8{
	BoxHorizontal:  0b1010,
	BoxVertical:    0b0101,
	BoxTopLeft:     0b0110,
	BoxTopRight:    0b1100,
	BoxBottomLeft:  0b0011,
	BoxBottomRight: 0b1001,
	BoxTeeDown:     0b1110,
	BoxTeeUp:       0b1011,
	BoxTeeRight:    0b0111,
	BoxTeeLeft:     0b1101,
	BoxCross:       0b1111,
	// Rounded corners - same edges as regular
	BoxRoundedTopLeft:     0b0110,
	BoxRoundedTopRight:    0b1100,
	BoxRoundedBottomLeft:  0b0011,
	BoxRoundedBottomRight: 0b1001,
}

// edgesToBorder maps edge combinations back to border runes
var edgesToBorder = map[uint8]rune{
	0b1010: BoxHorizontal,
	0b0101: BoxVertical,
	0b0110: BoxTopLeft,
	0b1100: BoxTopRight,
	0b0011: BoxBottomLeft,
	0b1001: BoxBottomRight,
	0b1110: BoxTeeDown,
	0b1011: BoxTeeUp,
	0b0111: BoxTeeRight,
	0b1101: BoxTeeLeft,
	0b1111: BoxCross,
}

// mergeBorders combines two border characters into one.
// Returns the merged rune and true if both were border chars, otherwise false.
func mergeBorders(existing, new rune) (rune, bool) {
	existingEdges, ok1 := borderEdges[existing]
	newEdges, ok2 := borderEdges[new]
	if !ok1 || !ok2 {
		return new, false
	}

	merged := existingEdges | newEdges
	if result, ok := edgesToBorder[merged]; ok {
		return result, true
	}
	return new, false
}

// BorderStyle is a border template: the runes used to draw frames and grids.
type BorderStyle struct {
	Horizontal  rune
	Vertical    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune

	TeeDown  rune // top edge meeting a column separator
	TeeUp    rune // bottom edge meeting a column separator
	TeeRight rune // left edge meeting a row separator
	TeeLeft  rune // right edge meeting a row separator
	Cross    rune
}

// IsZero reports whether no runes are set.
func (b BorderStyle) IsZero() bool {
	return b == BorderStyle{}
}

// junction picks the rune for a separator crossing given which sides connect.
func (b BorderStyle) junction(up, down bool) rune {
	switch {
	case up && down:
		return b.Cross
	case up:
		return b.TeeUp
	case down:
		return b.TeeDown
	}
	return b.Horizontal
}

// Standard border templates.
var (
	BorderSingle = BorderStyle{
		Horizontal: BoxHorizontal, Vertical: BoxVertical,
		TopLeft: BoxTopLeft, TopRight: BoxTopRight,
		BottomLeft: BoxBottomLeft, BottomRight: BoxBottomRight,
		TeeDown: BoxTeeDown, TeeUp: BoxTeeUp,
		TeeRight: BoxTeeRight, TeeLeft: BoxTeeLeft, Cross: BoxCross,
	}
	BorderRounded = BorderStyle{
		Horizontal: BoxHorizontal, Vertical: BoxVertical,
		TopLeft: BoxRoundedTopLeft, TopRight: BoxRoundedTopRight,
		BottomLeft: BoxRoundedBottomLeft, BottomRight: BoxRoundedBottomRight,
		TeeDown: BoxTeeDown, TeeUp: BoxTeeUp,
		TeeRight: BoxTeeRight, TeeLeft: BoxTeeLeft, Cross: BoxCross,
	}
	BorderDouble = BorderStyle{
		Horizontal: '═', Vertical: '║',
		TopLeft: '╔', TopRight: '╗',
		BottomLeft: '╚', BottomRight: '╝',
		TeeDown: '╦', TeeUp: '╩',
		TeeRight: '╠', TeeLeft: '╣', Cross: '╬',
	}
	BorderHeavy = BorderStyle{
		Horizontal: '━', Vertical: '┃',
		TopLeft: '┏', TopRight: '┓',
		BottomLeft: '┗', BottomRight: '┛',
		TeeDown: '┳', TeeUp: '┻',
		TeeRight: '┣', TeeLeft: '┫', Cross: '╋',
	}
	BorderASCII = BorderStyle{
		Horizontal: '-', Vertical: '|',
		TopLeft: '+', TopRight: '+',
		BottomLeft: '+', BottomRight: '+',
		TeeDown: '+', TeeUp: '+',
		TeeRight: '+', TeeLeft: '+', Cross: '+',
	}
)

var borderTemplates = map[string]BorderStyle{
	"single":  BorderSingle,
	"rounded": BorderRounded,
	"double":  BorderDouble,
	"heavy":   BorderHeavy,
	"ascii":   BorderASCII,
}

// BorderByName resolves a border template by name (case-insensitive).
func BorderByName(name string) (BorderStyle, error) {
	if b, ok := borderTemplates[strings.ToLower(strings.TrimSpace(name))]; ok {
		return b, nil
	}
	return BorderStyle{}, fmt.Errorf("%w: %q (have %s)", ErrUnknownBorder, name, strings.Join(BorderNames(), ", "))
}

// BorderNames lists the registered template names in sorted order.
func BorderNames() []string {
	names := make([]string, 0, len(borderTemplates))
	for n := range borderTemplates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
