package konsole

// Component is the interface all widgets implement.
//
// Layout runs in two passes. MinSize reports the natural size, the size the
// component takes when nothing constrains it. SetConstraints then offers an
// available width (0 = unbounded) and the component resolves margin, padding,
// width limits and alignment against it; Size reports the result.
type Component interface {
	// Layout
	SetConstraints(width, height int) // Parent tells us available space
	MinSize() (width, height int)     // Natural size
	Size() (width, height int)        // Our actual size after layout

	// Hierarchy
	Parent() Component
	SetParent(Component)

	// Rendering
	Render(buf *Buffer, x, y int)

	// Styling
	GetStyle() Style
	SetStyle(Style)
}

// Container is a component that holds children.
type Container interface {
	Component
	Children() []Component
}

// body is the widget-specific part of a component. Base owns the box model
// around it and calls back into the body for content.
type body interface {
	// naturalWidth is the content width needed to render without wrapping.
	naturalWidth() int
	// arrange lays out the content at the given width and returns its height.
	arrange(width int) int
	// draw paints the content into the given rectangle.
	draw(buf *Buffer, x, y, width, height int)
}

// Base provides the shared box model for every widget.
// Embed this in your component structs and point body at the widget.
type Base struct {
	parent Component
	style  Style
	props  LayoutProps
	layout Layout

	body body

	width, height int // Actual outer size
	constraintW   int // Available width from parent
	constraintH   int // Available height from parent

	// border drawn around the padding box
	border      *BorderStyle
	borderStyle Style
	title       string
	titleAlign  Align

	flexGrow float64 // How much to grow (0 = don't grow)
}

// Parent returns the parent component.
func (b *Base) Parent() Component {
	return b.parent
}

// SetParent sets the parent component.
func (b *Base) SetParent(p Component) {
	b.parent = p
}

// GetStyle returns the component's style.
func (b *Base) GetStyle() Style {
	return b.style
}

// SetStyle sets the component's style.
func (b *Base) SetStyle(s Style) {
	b.style = s
}

// Props returns the layout properties.
func (b *Base) Props() LayoutProps {
	return b.props
}

// SetProps replaces the layout properties.
func (b *Base) SetProps(p LayoutProps) {
	b.props = p.normalized()
}

// Layout returns the layout resolved by the last SetConstraints call.
func (b *Base) Layout() Layout {
	return b.layout
}

// Constraints returns the current constraints.
func (b *Base) Constraints() (width, height int) {
	return b.constraintW, b.constraintH
}

// FlexGrow returns the flex grow factor.
func (b *Base) FlexGrow() float64 {
	return b.flexGrow
}

// SetFlexGrow sets the flex grow factor.
func (b *Base) SetFlexGrow(f float64) {
	b.flexGrow = f
}

// SetBorder frames the padding box with the given template.
func (b *Base) SetBorder(border BorderStyle, style Style) {
	b.border = &border
	b.borderStyle = style
	b.props.Border = true
}

// SetTitle sets the title drawn into the top border.
func (b *Base) SetTitle(title string, align Align) {
	b.title = title
	b.titleAlign = align
}

// natural returns the body's natural content width, widened to fit a title.
func (b *Base) natural() int {
	if b.body == nil {
		return 0
	}
	w := b.body.naturalWidth()
	if b.border != nil && b.title != "" {
		need := DisplayWidth(b.title) + 4 - b.props.Padding.Left - b.props.Padding.Right
		w = max(w, need)
	}
	return w
}

// MinSize implements Component.
func (b *Base) MinSize() (int, int) {
	l := ResolveLayout(b.props, b.natural(), 0)
	if b.body != nil {
		l.ContentHeight = b.body.arrange(l.ContentWidth)
	}
	return l.OuterWidth(), l.OuterHeight()
}

// Size returns the actual size.
func (b *Base) Size() (int, int) {
	return b.width, b.height
}

// SetConstraints implements Component.
func (b *Base) SetConstraints(width, height int) {
	b.constraintW = width
	b.constraintH = height
	b.layout = ResolveLayout(b.props, b.natural(), width)
	if b.body != nil {
		b.layout.ContentHeight = b.body.arrange(b.layout.ContentWidth)
	}
	b.width = b.layout.OuterWidth()
	b.height = b.layout.OuterHeight()
}

// Render implements Component.
func (b *Base) Render(buf *Buffer, x, y int) {
	l := b.layout
	bx, by := x+l.Margin.Left+l.AlignLeft, y+l.Margin.Top
	bw, bh := l.BoxWidth(), l.BoxHeight()

	if b.style.BG.Mode != ColorDefault {
		buf.FillRect(bx, by, bw, bh, NewChar(' ', b.style))
	}
	if b.border != nil && l.Border > 0 {
		buf.DrawBorder(bx, by, bw, bh, *b.border, b.borderStyle)
		b.renderTitle(buf, bx, by, bw)
	}
	if b.body != nil && l.ContentHeight > 0 {
		b.body.draw(buf, x+l.ContentX(), y+l.ContentY(), l.ContentWidth, l.ContentHeight)
	}
}

// renderTitle writes "─ Title ─" into the top edge of the frame.
func (b *Base) renderTitle(buf *Buffer, bx, by, bw int) {
	if b.title == "" {
		return
	}
	room := bw - 6
	if room < 1 {
		return
	}
	text := Truncate(b.title, room)
	tw := DisplayWidth(text)
	var off int
	switch b.titleAlign {
	case AlignCenter:
		off = 1 + (bw-2-tw-2)/2
	case AlignRight:
		off = bw - tw - 4
	default:
		off = 2
	}
	buf.WriteStringClipped(bx+off, by, " "+text+" ", b.borderStyle, tw+2)
}

// --- Layout model ---

// Thickness is a set of four edge sizes used for margin and padding.
type Thickness struct {
	Top, Right, Bottom, Left int
}

// Uniform returns the same thickness on all four sides.
func Uniform(all int) Thickness {
	return Thickness{all, all, all, all}
}

// VH returns a thickness with vertical and horizontal values.
func VH(v, h int) Thickness {
	return Thickness{v, h, v, h}
}

// TRBL returns a thickness from individual top, right, bottom, left values.
func TRBL(t, r, b, l int) Thickness {
	return Thickness{t, r, b, l}
}

// Horizontal returns left + right.
func (t Thickness) Horizontal() int { return t.Left + t.Right }

// Vertical returns top + bottom.
func (t Thickness) Vertical() int { return t.Top + t.Bottom }

func (t Thickness) normalized() Thickness {
	return Thickness{max(t.Top, 0), max(t.Right, 0), max(t.Bottom, 0), max(t.Left, 0)}
}

// Align is a horizontal alignment, used for controls inside their available
// width and for text inside a content box or cell.
type Align uint8

const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignStretch
)

// String returns the alignment name.
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignStretch:
		return "stretch"
	}
	return "default"
}

// ParseAlign resolves an alignment name; unknown names map to AlignDefault.
func ParseAlign(s string) Align {
	switch s {
	case "left":
		return AlignLeft
	case "center", "centre":
		return AlignCenter
	case "right":
		return AlignRight
	case "stretch":
		return AlignStretch
	}
	return AlignDefault
}

// offset returns the leading space needed to align a span of width w in room.
func (a Align) offset(w, room int) int {
	if w >= room {
		return 0
	}
	switch a {
	case AlignCenter:
		return (room - w) / 2
	case AlignRight:
		return room - w
	}
	return 0
}

// VAlign is a vertical alignment inside a grid row.
type VAlign uint8

const (
	VAlignTop VAlign = iota
	VAlignMiddle
	VAlignBottom
)

func (a VAlign) offset(h, room int) int {
	if h >= room {
		return 0
	}
	switch a {
	case VAlignMiddle:
		return (room - h) / 2
	case VAlignBottom:
		return room - h
	}
	return 0
}

// LayoutProps are the box-model settings a control carries.
// Width, MinWidth and MaxWidth measure the padding box (border included),
// margin excluded; 0 means unset.
type LayoutProps struct {
	Margin   Thickness
	Padding  Thickness
	Width    int
	MinWidth int
	MaxWidth int
	Align    Align
	Border   bool
}

func (p LayoutProps) normalized() LayoutProps {
	p.Margin = p.Margin.normalized()
	p.Padding = p.Padding.normalized()
	p.Width = max(p.Width, 0)
	p.MinWidth = max(p.MinWidth, 0)
	p.MaxWidth = max(p.MaxWidth, 0)
	return p
}

// Layout is a resolved control layout: how a control's natural content width
// was negotiated against the width its parent offered.
type Layout struct {
	Available     int // width offered by the parent, 0 = unbounded
	Margin        Thickness
	Padding       Thickness
	Border        int // frame thickness on each side (0 or 1)
	AlignLeft     int // empty columns left of the box from alignment
	AlignRight    int // empty columns right of the box from alignment
	ContentWidth  int
	ContentHeight int
}

// BoxWidth is the width of border + padding + content.
func (l Layout) BoxWidth() int {
	return 2*l.Border + l.Padding.Horizontal() + l.ContentWidth
}

// BoxHeight is the height of border + padding + content.
func (l Layout) BoxHeight() int {
	return 2*l.Border + l.Padding.Vertical() + l.ContentHeight
}

// OuterWidth is the full width including margins and alignment space.
func (l Layout) OuterWidth() int {
	return l.Margin.Left + l.AlignLeft + l.BoxWidth() + l.AlignRight + l.Margin.Right
}

// OuterHeight is the full height including margins.
func (l Layout) OuterHeight() int {
	return l.Margin.Top + l.BoxHeight() + l.Margin.Bottom
}

// ContentX is the content column relative to the control's origin.
func (l Layout) ContentX() int {
	return l.Margin.Left + l.AlignLeft + l.Border + l.Padding.Left
}

// ContentY is the content row relative to the control's origin.
func (l Layout) ContentY() int {
	return l.Margin.Top + l.Border + l.Padding.Top
}

// ResolveLayout negotiates a control's natural content width against the
// available width. An available width of 0 means unbounded.
func ResolveLayout(p LayoutProps, natural, available int) Layout {
	p = p.normalized()
	l := Layout{
		Available: available,
		Margin:    p.Margin,
		Padding:   p.Padding,
	}
	if p.Border {
		l.Border = 1
	}
	chrome := 2*l.Border + p.Padding.Horizontal()

	room := -1
	if available > 0 {
		room = max(available-p.Margin.Horizontal(), 0)
	}

	var box int
	switch {
	case p.Width > 0:
		box = p.Width
	case p.Align == AlignStretch && room >= 0:
		box = room
	default:
		box = max(natural, 0) + chrome
	}
	if p.MinWidth > 0 && box < p.MinWidth {
		box = p.MinWidth
	}
	if p.MaxWidth > 0 && box > p.MaxWidth {
		box = p.MaxWidth
	}
	if room >= 0 && box > room {
		box = room
	}

	// not enough room for the chrome: give up padding first, then the frame
	if box < chrome {
		short := chrome - box
		cut := min(short, l.Padding.Right)
		l.Padding.Right -= cut
		short -= cut
		cut = min(short, l.Padding.Left)
		l.Padding.Left -= cut
		short -= cut
		if short > 0 {
			l.Border = 0
		}
		chrome = 2*l.Border + l.Padding.Horizontal()
		box = max(box, chrome)
	}
	l.ContentWidth = box - chrome

	if room > box {
		free := room - box
		switch p.Align {
		case AlignRight:
			l.AlignLeft = free
		case AlignCenter:
			l.AlignLeft = free / 2
			l.AlignRight = free - free/2
		default:
			l.AlignRight = free
		}
	}
	return l
}
