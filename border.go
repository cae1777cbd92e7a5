package konsole

// BorderBox frames a single child with a border template and optional title.
// Padding sits between the frame and the child.
type BorderBox struct {
	Base
	child Component
}

// Boxed wraps child in a single-line border.
func Boxed(child Component) *BorderBox {
	b := &BorderBox{child: child}
	b.body = b
	b.style = DefaultStyle()
	b.SetBorder(BorderSingle, DefaultStyle())
	if child != nil {
		child.SetParent(b)
	}
	return b
}

// Children implements Container.
func (b *BorderBox) Children() []Component {
	if b.child == nil {
		return nil
	}
	return []Component{b.child}
}

// Child returns the framed component.
func (b *BorderBox) Child() Component {
	return b.child
}

func (b *BorderBox) naturalWidth() int {
	if b.child == nil {
		return 0
	}
	w, _ := b.child.MinSize()
	return w
}

func (b *BorderBox) arrange(width int) int {
	if b.child == nil {
		return 0
	}
	if width <= 0 {
		// zero columns left inside the frame: nothing fits
		return 0
	}
	b.child.SetConstraints(width, 0)
	_, h := b.child.Size()
	return h
}

func (b *BorderBox) draw(buf *Buffer, x, y, width, height int) {
	if b.child != nil && width > 0 {
		b.child.Render(buf, x, y)
	}
}

// --- Fluent API ---

// Border sets the border template.
func (b *BorderBox) Border(t BorderStyle) *BorderBox {
	b.SetBorder(t, b.borderStyle)
	return b
}

// BorderFG colors the frame.
func (b *BorderBox) BorderFG(c Color) *BorderBox {
	b.borderStyle.FG = c
	return b
}

// FrameStyle sets the style used for the frame and title.
func (b *BorderBox) FrameStyle(s Style) *BorderBox {
	b.borderStyle = s
	return b
}

// Title draws a title into the top edge.
func (b *BorderBox) Title(title string) *BorderBox {
	b.SetTitle(title, b.titleAlign)
	return b
}

// TitleAlign positions the title (left by default).
func (b *BorderBox) TitleAlign(a Align) *BorderBox {
	b.titleAlign = a
	return b
}

// Theme applies the theme's border style.
func (b *BorderBox) Theme(t Theme) *BorderBox {
	b.borderStyle = t.Border
	return b
}

// BG fills the framed area.
func (b *BorderBox) BG(c Color) *BorderBox {
	b.style.BG = c
	return b
}

func (b *BorderBox) Margin(m Thickness) *BorderBox  { b.props.Margin = m.normalized(); return b }
func (b *BorderBox) Padding(p Thickness) *BorderBox { b.props.Padding = p.normalized(); return b }
func (b *BorderBox) Width(w int) *BorderBox         { b.props.Width = max(w, 0); return b }
func (b *BorderBox) MinWidth(w int) *BorderBox      { b.props.MinWidth = max(w, 0); return b }
func (b *BorderBox) MaxWidth(w int) *BorderBox      { b.props.MaxWidth = max(w, 0); return b }
func (b *BorderBox) Align(a Align) *BorderBox       { b.props.Align = a; return b }

// Grow sets the flex grow factor.
func (b *BorderBox) Grow(factor float64) *BorderBox {
	b.flexGrow = factor
	return b
}
