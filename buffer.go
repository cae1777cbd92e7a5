package konsole

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wideTail marks the second column covered by a double-width rune.
const wideTail rune = -1

// Char is one terminal column: a rune and its style.
type Char struct {
	Rune  rune
	Style Style
}

func blank() Char { return Char{Rune: ' '} }

// NewChar pairs a rune with a style.
func NewChar(r rune, st Style) Char { return Char{Rune: r, Style: st} }

// Buffer is the drawing surface components render into before the console
// turns it into lines. Coordinates outside the buffer are ignored.
type Buffer struct {
	cells         []Char
	width, height int
}

// NewBuffer creates a blank buffer. Negative sizes count as zero.
func NewBuffer(width, height int) *Buffer {
	width, height = max(width, 0), max(height, 0)
	b := &Buffer{cells: make([]Char, width*height), width: width, height: height}
	for i := range b.cells {
		b.cells[i] = blank()
	}
	return b
}

func (b *Buffer) Width() int                 { return b.width }
func (b *Buffer) Height() int                { return b.height }
func (b *Buffer) Size() (width, height int) { return b.width, b.height }

// InBounds reports whether (x, y) is inside the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y), or a blank one outside the buffer.
func (b *Buffer) Get(x, y int) Char {
	if !b.InBounds(x, y) {
		return blank()
	}
	return b.cells[y*b.width+x]
}

// Set stores c at (x, y). Line-drawing runes meeting existing ones are
// merged into the matching junction.
func (b *Buffer) Set(x, y int, c Char) {
	if !b.InBounds(x, y) {
		return
	}
	at := &b.cells[y*b.width+x]
	if merged, ok := mergeBorders(at.Rune, c.Rune); ok {
		c.Rune = merged
	}
	*at = c
}

// FillRect sets every cell of the rectangle to c.
func (b *Buffer) FillRect(x, y, width, height int, c Char) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			b.Set(col, row, c)
		}
	}
}

// WriteString writes s from (x, y) to the right edge and returns the
// columns used.
func (b *Buffer) WriteString(x, y int, s string, style Style) int {
	return b.WriteStringClipped(x, y, s, style, b.width-x)
}

// WriteStringClipped writes at most maxWidth columns of s. A double-width
// rune that would straddle the limit is replaced by a space. Zero-width
// runes are skipped. It returns the columns used.
func (b *Buffer) WriteStringClipped(x, y int, s string, style Style, maxWidth int) int {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		switch {
		case w == 0:
			continue
		case used+w > maxWidth:
			if used < maxWidth {
				b.Set(x+used, y, NewChar(' ', style))
				used++
			}
			return used
		}
		b.Set(x+used, y, NewChar(r, style))
		if w == 2 {
			b.Set(x+used+1, y, NewChar(wideTail, style))
		}
		used += w
	}
	return used
}

// HLine draws n copies of r rightwards from (x, y).
func (b *Buffer) HLine(x, y, n int, r rune, style Style) {
	for i := range max(n, 0) {
		b.Set(x+i, y, NewChar(r, style))
	}
}

// VLine draws n copies of r downwards from (x, y).
func (b *Buffer) VLine(x, y, n int, r rune, style Style) {
	for i := range max(n, 0) {
		b.Set(x, y+i, NewChar(r, style))
	}
}

// DrawBorder frames the rectangle with t. Rectangles smaller than 2x2 are
// left alone.
func (b *Buffer) DrawBorder(x, y, width, height int, t BorderStyle, style Style) {
	if width < 2 || height < 2 {
		return
	}
	right, bottom := x+width-1, y+height-1
	b.HLine(x+1, y, width-2, t.Horizontal, style)
	b.HLine(x+1, bottom, width-2, t.Horizontal, style)
	b.VLine(x, y+1, height-2, t.Vertical, style)
	b.VLine(right, y+1, height-2, t.Vertical, style)
	b.Set(x, y, NewChar(t.TopLeft, style))
	b.Set(right, y, NewChar(t.TopRight, style))
	b.Set(x, bottom, NewChar(t.BottomLeft, style))
	b.Set(right, bottom, NewChar(t.BottomRight, style))
}

// lineRunes returns row y without the continuation cells of wide runes.
func (b *Buffer) lineRunes(y int) []Char {
	row := make([]Char, 0, b.width)
	for _, c := range b.cells[y*b.width : (y+1)*b.width] {
		switch c.Rune {
		case wideTail:
			continue
		case 0:
			c.Rune = ' '
		}
		row = append(row, c)
	}
	return row
}

func (b *Buffer) rowText(y int) string {
	var sb strings.Builder
	for _, c := range b.lineRunes(y) {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// GetLine returns row y with trailing spaces trimmed.
func (b *Buffer) GetLine(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	return strings.TrimRight(b.rowText(y), " ")
}

// Lines returns every row, trailing spaces trimmed.
func (b *Buffer) Lines() []string {
	lines := make([]string, b.height)
	for y := range lines {
		lines[y] = b.GetLine(y)
	}
	return lines
}

// String returns all rows joined by newlines, trailing spaces kept.
func (b *Buffer) String() string {
	rows := make([]string, b.height)
	for y := range rows {
		rows[y] = b.rowText(y)
	}
	return strings.Join(rows, "\n")
}

// StringTrimmed is Lines joined by newlines, without trailing empty rows.
func (b *Buffer) StringTrimmed() string {
	lines := b.Lines()
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
