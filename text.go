package konsole

import (
	"fmt"
)

// TextBlock displays multi-line text, wrapped to its content width.
type TextBlock struct {
	Base
	text      string
	source    []string
	lines     []string
	textAlign Align
	wrap      WrapMode
	overflow  Overflow
	keepEmpty bool
}

// Text creates a new text block with the given string.
func Text(s string) *TextBlock {
	t := &TextBlock{}
	t.body = t
	t.style = DefaultStyle()
	t.SetText(s)
	return t
}

// Textf creates a new text block with printf-style formatting.
func Textf(format string, args ...any) *TextBlock {
	return Text(fmt.Sprintf(format, args...))
}

// SetText updates the text content.
func (t *TextBlock) SetText(text string) *TextBlock {
	t.text = text
	t.source = SplitLines(text)
	return t
}

// GetText returns the text content.
func (t *TextBlock) GetText() string {
	return t.text
}

// Lines returns the lines produced by the last layout.
func (t *TextBlock) Lines() []string {
	return t.lines
}

func (t *TextBlock) naturalWidth() int {
	return MaxLineWidth(t.source)
}

func (t *TextBlock) arrange(width int) int {
	if t.text == "" && !t.keepEmpty {
		t.lines = nil
		return 0
	}
	t.lines = WrapLines(t.source, width, t.wrap)
	return len(t.lines)
}

func (t *TextBlock) draw(buf *Buffer, x, y, width, height int) {
	for i := 0; i < height && i < len(t.lines); i++ {
		line := t.lines[i]
		if t.overflow == OverflowEllipsis && DisplayWidth(line) > width {
			line = Truncate(line, width)
		}
		off := t.textAlign.offset(DisplayWidth(line), width)
		buf.WriteStringClipped(x+off, y+i, line, t.style, width-off)
	}
}

// --- Fluent API ---

// TextAlign aligns lines inside the content box.
func (t *TextBlock) TextAlign(a Align) *TextBlock {
	t.textAlign = a
	return t
}

// Wrap sets the wrapping mode (WrapWord by default).
func (t *TextBlock) Wrap(m WrapMode) *TextBlock {
	t.wrap = m
	return t
}

// Ellipsis truncates overflowing lines with "…" instead of clipping them.
// Only has an effect with WrapNone.
func (t *TextBlock) Ellipsis() *TextBlock {
	t.overflow = OverflowEllipsis
	return t
}

// KeepEmpty makes empty text occupy one line.
func (t *TextBlock) KeepEmpty() *TextBlock {
	t.keepEmpty = true
	return t
}

// Bold makes the text bold.
func (t *TextBlock) Bold() *TextBlock {
	t.style.Attr = t.style.Attr.With(AttrBold)
	return t
}

// Dim makes the text dim.
func (t *TextBlock) Dim() *TextBlock {
	t.style.Attr = t.style.Attr.With(AttrDim)
	return t
}

// Italic makes the text italic.
func (t *TextBlock) Italic() *TextBlock {
	t.style.Attr = t.style.Attr.With(AttrItalic)
	return t
}

// Underline makes the text underlined.
func (t *TextBlock) Underline() *TextBlock {
	t.style.Attr = t.style.Attr.With(AttrUnderline)
	return t
}

// FG sets the foreground color.
func (t *TextBlock) FG(c Color) *TextBlock {
	t.style.FG = c
	return t
}

// BG sets the background color. The whole padding box is filled.
func (t *TextBlock) BG(c Color) *TextBlock {
	t.style.BG = c
	return t
}

// Style sets the complete style.
func (t *TextBlock) Style(s Style) *TextBlock {
	t.style = s
	return t
}

func (t *TextBlock) Margin(m Thickness) *TextBlock  { t.props.Margin = m.normalized(); return t }
func (t *TextBlock) Padding(p Thickness) *TextBlock { t.props.Padding = p.normalized(); return t }
func (t *TextBlock) Width(w int) *TextBlock         { t.props.Width = max(w, 0); return t }
func (t *TextBlock) MinWidth(w int) *TextBlock      { t.props.MinWidth = max(w, 0); return t }
func (t *TextBlock) MaxWidth(w int) *TextBlock      { t.props.MaxWidth = max(w, 0); return t }
func (t *TextBlock) Align(a Align) *TextBlock       { t.props.Align = a; return t }

// Grow sets the flex grow factor.
func (t *TextBlock) Grow(factor float64) *TextBlock {
	t.flexGrow = factor
	return t
}

// Ref stores a reference to this component in the provided pointer.
func (t *TextBlock) Ref(ref **TextBlock) *TextBlock {
	*ref = t
	return t
}
