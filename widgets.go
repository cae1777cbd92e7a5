package konsole

import (
	"fmt"
	"strings"
	"sync"
)

// ProgressBar displays "label [████░░░░]  42%". It is safe to update from one
// goroutine while a LiveDisplay renders it from another.
type ProgressBar struct {
	Base
	mu        sync.Mutex
	min, max  int
	value     int
	label     string
	barWidth  int
	filled    rune
	empty     rune
	showValue bool
	format    func(value, min, max int) string

	bar int // resolved bar width
}

// Progress creates a progress bar over [0, total].
func Progress(current, total int) *ProgressBar {
	p := &ProgressBar{
		max:       max(total, 0),
		barWidth:  20,
		filled:    '█',
		empty:     '░',
		showValue: true,
		format:    percentText,
	}
	p.body = p
	p.style = DefaultStyle()
	p.SetValue(current)
	return p
}

// NewProgressBar creates a progress bar over [min, max].
func NewProgressBar(min, max int) (*ProgressBar, error) {
	p := Progress(0, 0)
	if err := p.SetRange(min, max); err != nil {
		return nil, err
	}
	return p, nil
}

func percentText(value, min, max int) string {
	return fmt.Sprintf("%3d%%", scaled(value, min, max, 100))
}

// CountText formats the value as "value/max".
func CountText(value, min, max int) string {
	return fmt.Sprintf("%d/%d", value, max)
}

// scaled maps value in [min, max] onto [0, n], rounding down.
func scaled(value, min, max, n int) int {
	if max <= min {
		return n
	}
	return (value - min) * n / (max - min)
}

func fraction(value, min, max int) float64 {
	if max <= min {
		return 1
	}
	return float64(value-min) / float64(max-min)
}

// SetRange changes the range, clamping the current value into it.
func (p *ProgressBar) SetRange(min, max int) error {
	if min > max {
		return fmt.Errorf("%w: min %d > max %d", ErrInvalidRange, min, max)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.min, p.max = min, max
	p.value = clampInt(p.value, min, max)
	return nil
}

// SetValue sets the current value, clamped into the range.
func (p *ProgressBar) SetValue(v int) *ProgressBar {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.value = clampInt(v, p.min, p.max)
	return p
}

// Add moves the value by delta.
func (p *ProgressBar) Add(delta int) *ProgressBar {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.value = clampInt(p.value+delta, p.min, p.max)
	return p
}

// Value returns the current value.
func (p *ProgressBar) Value() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Fraction returns progress as 0..1.
func (p *ProgressBar) Fraction() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fraction(p.value, p.min, p.max)
}

// Complete reports whether the value has reached the maximum.
func (p *ProgressBar) Complete() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value >= p.max
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// Label sets the text before the bar.
func (p *ProgressBar) Label(s string) *ProgressBar {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.label = s
	return p
}

// BarWidth sets the natural bar width in characters, brackets excluded.
func (p *ProgressBar) BarWidth(w int) *ProgressBar {
	p.barWidth = max(w, 0)
	return p
}

// Chars sets the filled and empty characters.
func (p *ProgressBar) Chars(filled, empty rune) *ProgressBar {
	p.filled = filled
	p.empty = empty
	return p
}

// HideValue drops the value text after the bar.
func (p *ProgressBar) HideValue() *ProgressBar {
	p.showValue = false
	return p
}

// ValueFormat sets how the value text is produced.
func (p *ProgressBar) ValueFormat(fn func(value, min, max int) string) *ProgressBar {
	if fn != nil {
		p.format = fn
	}
	return p
}

// FG sets the bar color.
func (p *ProgressBar) FG(c Color) *ProgressBar {
	p.style.FG = c
	return p
}

func (p *ProgressBar) Margin(m Thickness) *ProgressBar { p.props.Margin = m.normalized(); return p }
func (p *ProgressBar) Width(w int) *ProgressBar        { p.props.Width = max(w, 0); return p }
func (p *ProgressBar) Align(a Align) *ProgressBar      { p.props.Align = a; return p }

// Grow sets the flex grow factor.
func (p *ProgressBar) Grow(f float64) *ProgressBar {
	p.flexGrow = f
	return p
}

// valueWidth is the widest value text over the range, so the bar does not
// jitter as the number grows.
func (p *ProgressBar) valueWidth() int {
	if !p.showValue {
		return 0
	}
	return max(DisplayWidth(p.format(p.value, p.min, p.max)),
		DisplayWidth(p.format(p.max, p.min, p.max)),
		DisplayWidth(p.format(p.min, p.min, p.max)))
}

// chrome is everything except the bar's fill cells.
func (p *ProgressBar) chrome() int {
	w := 2
	if p.label != "" {
		w += DisplayWidth(p.label) + 1
	}
	if vw := p.valueWidth(); vw > 0 {
		w += vw + 1
	}
	return w
}

func (p *ProgressBar) naturalWidth() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chrome() + p.barWidth
}

func (p *ProgressBar) arrange(width int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bar = max(width-p.chrome(), 0)
	return 1
}

func (p *ProgressBar) draw(buf *Buffer, x, y, width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var sb strings.Builder
	if p.label != "" {
		sb.WriteString(p.label)
		sb.WriteByte(' ')
	}
	fill := clampInt(scaled(p.value, p.min, p.max, p.bar), 0, p.bar)
	sb.WriteByte('[')
	sb.WriteString(strings.Repeat(string(p.filled), fill))
	sb.WriteString(strings.Repeat(string(p.empty), p.bar-fill))
	sb.WriteByte(']')
	if p.showValue {
		text := p.format(p.value, p.min, p.max)
		sb.WriteByte(' ')
		sb.WriteString(strings.Repeat(" ", max(p.valueWidth()-DisplayWidth(text), 0)))
		sb.WriteString(text)
	}
	buf.WriteStringClipped(x, y, sb.String(), p.style, width)
}

// Title creates a title bar: bold text with optional right-side content
// pushed to the far edge.
func Title(title string, right ...Component) *StackPanel {
	children := []ChildItem{Text(title).Bold(), Spacer()}
	for _, r := range right {
		children = append(children, r)
	}
	return HStack(children...).Align(AlignStretch)
}
