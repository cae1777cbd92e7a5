package konsole

// SpacerComponent is empty space. In a horizontal stack it is columns wide,
// anywhere else it is rows tall.
type SpacerComponent struct {
	Base
	size int
}

// Spacer creates a new spacer that expands to fill available space.
func Spacer() *SpacerComponent {
	s := &SpacerComponent{}
	s.body = s
	s.flexGrow = 1 // Spacers grow by default
	return s
}

// FixedSpacer creates a spacer with a fixed size.
func FixedSpacer(size int) *SpacerComponent {
	s := &SpacerComponent{size: max(size, 0)}
	s.body = s
	return s
}

func (s *SpacerComponent) horizontal() bool {
	st, ok := s.Parent().(*StackPanel)
	return ok && st.direction == Horizontal
}

func (s *SpacerComponent) naturalWidth() int {
	if s.horizontal() {
		return s.size
	}
	return 0
}

func (s *SpacerComponent) arrange(width int) int {
	if s.horizontal() {
		return 0
	}
	return s.size
}

// Spacers are invisible - nothing to draw.
func (s *SpacerComponent) draw(buf *Buffer, x, y, width, height int) {}

// Grow sets the flex grow factor.
func (s *SpacerComponent) Grow(factor float64) *SpacerComponent {
	s.flexGrow = factor
	return s
}

// RuleComponent draws a horizontal line across its content width.
type RuleComponent struct {
	Base
	char rune
}

// Rule creates a horizontal rule that stretches to the available width.
func Rule() *RuleComponent {
	r := &RuleComponent{char: BoxHorizontal}
	r.body = r
	r.props.Align = AlignStretch
	return r
}

func (r *RuleComponent) naturalWidth() int { return 1 }

func (r *RuleComponent) arrange(width int) int { return 1 }

func (r *RuleComponent) draw(buf *Buffer, x, y, width, height int) {
	buf.HLine(x, y, width, r.char, r.style)
}

// Char sets the rune the rule is drawn with.
func (r *RuleComponent) Char(c rune) *RuleComponent {
	r.char = c
	return r
}

// FG colors the rule.
func (r *RuleComponent) FG(c Color) *RuleComponent {
	r.style.FG = c
	return r
}

// Margin sets the space around the rule.
func (r *RuleComponent) Margin(m Thickness) *RuleComponent {
	r.props.Margin = m.normalized()
	return r
}

// Width fixes the rule's length.
func (r *RuleComponent) Width(w int) *RuleComponent {
	r.props.Width = max(w, 0)
	return r
}
