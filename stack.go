package konsole

import (
	"iter"
)

// Direction specifies the layout direction.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

// StackPanel arranges children in a line (vertical or horizontal).
type StackPanel struct {
	Base
	children  []Component
	direction Direction
	gap       int

	// horizontal layout state: assigned column width per child
	slots []int
}

// ChildItem is something that can be added to a stack.
// Can be a Component or an iterator of Components.
type ChildItem interface{}

// VStack creates a vertical stack from children.
// Children can be Components or iter.Seq[Component] for dynamic lists.
func VStack(items ...ChildItem) *StackPanel {
	return newStack(Vertical, items)
}

// HStack creates a horizontal stack from children.
// Children can be Components or iter.Seq[Component] for dynamic lists.
func HStack(items ...ChildItem) *StackPanel {
	return newStack(Horizontal, items)
}

func newStack(dir Direction, items []ChildItem) *StackPanel {
	s := &StackPanel{direction: dir}
	s.body = s
	s.style = DefaultStyle()
	s.children = make([]Component, 0, len(items))
	s.addItems(items)
	return s
}

// addItems processes a mix of Components and iterators.
func (s *StackPanel) addItems(items []ChildItem) {
	for _, item := range items {
		switch v := item.(type) {
		case Component:
			s.Add(v)
		case iter.Seq[Component]:
			for child := range v {
				s.Add(child)
			}
		case func(yield func(Component) bool):
			for child := range v {
				s.Add(child)
			}
		}
	}
}

// Add appends children to the stack.
func (s *StackPanel) Add(children ...Component) *StackPanel {
	for _, child := range children {
		if child == nil {
			continue
		}
		child.SetParent(s)
		s.children = append(s.children, child)
	}
	return s
}

// Remove removes a child from the stack.
func (s *StackPanel) Remove(child Component) {
	for i, ch := range s.children {
		if ch == child {
			child.SetParent(nil)
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

// Clear removes all children.
func (s *StackPanel) Clear() {
	for _, child := range s.children {
		child.SetParent(nil)
	}
	s.children = s.children[:0]
}

// Children implements Container.
func (s *StackPanel) Children() []Component {
	return s.children
}

// Direction returns the layout direction.
func (s *StackPanel) Direction() Direction {
	return s.direction
}

func (s *StackPanel) gaps() int {
	if len(s.children) > 1 {
		return s.gap * (len(s.children) - 1)
	}
	return 0
}

func (s *StackPanel) naturalWidth() int {
	total := 0
	for _, child := range s.children {
		w, _ := child.MinSize()
		if s.direction == Vertical {
			total = max(total, w)
		} else {
			total += w
		}
	}
	if s.direction == Horizontal {
		total += s.gaps()
	}
	return total
}

func (s *StackPanel) arrange(width int) int {
	if s.direction == Vertical {
		height := 0
		for _, child := range s.children {
			child.SetConstraints(width, 0)
			_, h := child.Size()
			height += h
		}
		return height + s.gaps()
	}
	return s.arrangeRow(width)
}

// arrangeRow hands each child its natural width, gives spare columns to
// growing children by factor and takes overflow back from the right.
func (s *StackPanel) arrangeRow(width int) int {
	s.slots = make([]int, len(s.children))
	total := s.gaps()
	totalFlex := 0.0
	lastGrower := -1
	for i, child := range s.children {
		w, _ := child.MinSize()
		s.slots[i] = w
		total += w
		if g, ok := child.(interface{ FlexGrow() float64 }); ok && g.FlexGrow() > 0 {
			totalFlex += g.FlexGrow()
			lastGrower = i
		}
	}

	if width > 0 && total < width && totalFlex > 0 {
		remaining := width - total
		given := 0
		for i, child := range s.children {
			g, ok := child.(interface{ FlexGrow() float64 })
			if !ok || g.FlexGrow() <= 0 {
				continue
			}
			extra := int(float64(remaining) * (g.FlexGrow() / totalFlex))
			if i == lastGrower {
				extra = remaining - given
			}
			s.slots[i] += extra
			given += extra
		}
	}

	if width > 0 && total > width {
		over := total - width
		for i := len(s.slots) - 1; i >= 0 && over > 0; i-- {
			cut := min(over, s.slots[i])
			s.slots[i] -= cut
			over -= cut
		}
	}

	height := 0
	for i, child := range s.children {
		if s.slots[i] == 0 {
			continue
		}
		child.SetConstraints(s.slots[i], 0)
		_, h := child.Size()
		height = max(height, h)
	}
	return height
}

func (s *StackPanel) draw(buf *Buffer, x, y, width, height int) {
	pos := 0
	for i, child := range s.children {
		_, childH := child.Size()
		if s.direction == Vertical {
			child.Render(buf, x, y+pos)
			pos += childH + s.gap
			continue
		}
		if s.slots[i] > 0 {
			child.Render(buf, x+pos, y)
		}
		pos += s.slots[i] + s.gap
	}
}

// --- Fluent API ---

// Gap sets the gap between children.
func (s *StackPanel) Gap(g int) *StackPanel {
	s.gap = max(g, 0)
	return s
}

// Border adds a border around the stack.
func (s *StackPanel) Border(b BorderStyle) *StackPanel {
	s.SetBorder(b, s.borderStyle)
	return s
}

// Title draws a title into the border's top edge.
func (s *StackPanel) Title(title string) *StackPanel {
	s.SetTitle(title, AlignLeft)
	return s
}

// BG sets the background color.
func (s *StackPanel) BG(c Color) *StackPanel {
	s.style.BG = c
	return s
}

// BorderFG sets the border color.
func (s *StackPanel) BorderFG(c Color) *StackPanel {
	s.borderStyle.FG = c
	return s
}

func (s *StackPanel) Margin(m Thickness) *StackPanel  { s.props.Margin = m.normalized(); return s }
func (s *StackPanel) Padding(p Thickness) *StackPanel { s.props.Padding = p.normalized(); return s }
func (s *StackPanel) Width(w int) *StackPanel         { s.props.Width = max(w, 0); return s }
func (s *StackPanel) MinWidth(w int) *StackPanel      { s.props.MinWidth = max(w, 0); return s }
func (s *StackPanel) MaxWidth(w int) *StackPanel      { s.props.MaxWidth = max(w, 0); return s }
func (s *StackPanel) Align(a Align) *StackPanel       { s.props.Align = a; return s }

// Grow sets the flex grow factor.
func (s *StackPanel) Grow(factor float64) *StackPanel {
	s.flexGrow = factor
	return s
}

// Ref stores a reference to this component.
func (s *StackPanel) Ref(ref **StackPanel) *StackPanel {
	*ref = s
	return s
}

// --- Iterator helpers ---

// Map transforms a slice into a component iterator.
func Map[T any](items []T, fn func(T) Component) iter.Seq[Component] {
	return func(yield func(Component) bool) {
		for _, item := range items {
			if !yield(fn(item)) {
				return
			}
		}
	}
}

// MapIndex transforms a slice into a component iterator with index.
func MapIndex[T any](items []T, fn func(int, T) Component) iter.Seq[Component] {
	return func(yield func(Component) bool) {
		for i, item := range items {
			if !yield(fn(i, item)) {
				return
			}
		}
	}
}
