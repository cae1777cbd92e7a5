package konsole

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// MenuItem is one entry of a menu.
type MenuItem struct {
	ID       string
	Text     string
	Disabled bool // shown dimmed, cannot be chosen
	Hidden   bool // not shown, cannot be chosen
	Action   func(ctx context.Context) error
}

// TextMenu lists items as "ID - Text" lines and reads the chosen ID.
type TextMenu struct {
	Base
	items     []*MenuItem
	title     string
	template  string
	prompt    string
	titleSt   Style
	disabled  Style
	errorSt   Style
	lines     []string
	lineStyle []Style
}

// Menu creates a text menu.
func Menu(title string, items ...MenuItem) *TextMenu {
	m := &TextMenu{
		title:    title,
		template: "%s - %s",
		prompt:   "> ",
		titleSt:  Style{Attr: AttrBold},
		disabled: Style{Attr: AttrDim},
		errorSt:  Style{FG: Red},
	}
	m.body = m
	m.style = DefaultStyle()
	for _, it := range items {
		m.Add(it)
	}
	return m
}

// Add appends an item.
func (m *TextMenu) Add(it MenuItem) *TextMenu {
	m.items = append(m.items, &it)
	return m
}

// Items returns the items for in-place changes.
func (m *TextMenu) Items() []*MenuItem {
	return m.items
}

// Template sets the line format; it receives the ID and the text.
func (m *TextMenu) Template(t string) *TextMenu {
	m.template = t
	return m
}

// Prompt sets the text written before reading a choice.
func (m *TextMenu) Prompt(p string) *TextMenu {
	m.prompt = p
	return m
}

// Theme applies a theme's header, muted and error styles.
func (m *TextMenu) Theme(t Theme) *TextMenu {
	m.titleSt, m.disabled, m.errorSt, m.style = t.Header, t.Muted, t.Error, t.Base
	return m
}

func (m *TextMenu) Margin(mg Thickness) *TextMenu  { m.props.Margin = mg.normalized(); return m }
func (m *TextMenu) Padding(p Thickness) *TextMenu  { m.props.Padding = p.normalized(); return m }
func (m *TextMenu) Border(b BorderStyle) *TextMenu { m.SetBorder(b, m.borderStyle); return m }

// Find returns the visible item whose ID matches id, ignoring case.
func (m *TextMenu) Find(id string) *MenuItem {
	id = strings.TrimSpace(id)
	for _, it := range m.items {
		if !it.Hidden && strings.EqualFold(it.ID, id) {
			return it
		}
	}
	return nil
}

func (m *TextMenu) build() {
	m.lines, m.lineStyle = m.lines[:0], m.lineStyle[:0]
	if m.title != "" {
		m.lines = append(m.lines, m.title)
		m.lineStyle = append(m.lineStyle, m.titleSt.Over(m.style))
	}
	for _, it := range m.items {
		if it.Hidden {
			continue
		}
		st := m.style
		if it.Disabled {
			st = m.disabled.Over(m.style)
		}
		m.lines = append(m.lines, fmt.Sprintf(m.template, it.ID, it.Text))
		m.lineStyle = append(m.lineStyle, st)
	}
}

func (m *TextMenu) naturalWidth() int {
	m.build()
	return MaxLineWidth(m.lines)
}

func (m *TextMenu) arrange(width int) int {
	m.build()
	return len(m.lines)
}

func (m *TextMenu) draw(buf *Buffer, x, y, width, height int) {
	for i, line := range m.lines {
		if i >= height {
			return
		}
		if DisplayWidth(line) > width {
			line = Truncate(line, width)
		}
		buf.WriteStringClipped(x, y+i, line, m.lineStyle[i], width)
	}
}

// Show displays the menu, reads IDs until one names an enabled item, runs
// its action and returns it. End of input is ErrCanceled.
func (m *TextMenu) Show(ctx context.Context, c *Console, in io.Reader) (*MenuItem, error) {
	r := LineReader(in)
	if err := c.Display(m); err != nil {
		return nil, err
	}
	for {
		if err := c.Printf("%s", m.prompt); err != nil {
			return nil, err
		}
		choice, err := readLine(ctx, r)
		if err != nil {
			return nil, err
		}
		it := m.Find(choice)
		switch {
		case strings.TrimSpace(choice) == "":
			continue
		case it == nil:
			c.WriteLine(c.Styled(fmt.Sprintf("unknown option %q", strings.TrimSpace(choice)), m.errorSt))
			continue
		case it.Disabled:
			c.WriteLine(c.Styled(fmt.Sprintf("option %q is not available", it.ID), m.errorSt))
			continue
		}
		Logger().Debug("menu choice", zap.String("id", it.ID))
		if it.Action != nil {
			return it, it.Action(ctx)
		}
		return it, nil
	}
}
