package konsole

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"
)

// scrollKeys holds the ScrollMenu key bindings.
type scrollKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
	Erase  key.Binding
}

func defaultScrollKeys() scrollKeys {
	return scrollKeys{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n", "tab"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
		Erase: key.NewBinding(
			key.WithKeys("backspace"),
		),
	}
}

// ScrollMenu is an interactive menu: arrow keys move a highlight over the
// enabled items, typing filters them by fuzzy match, enter selects.
type ScrollMenu struct {
	Base
	items    []*MenuItem
	title    string
	filter   string
	matches  []int // indices into items, in display order
	cursor   int   // index into matches
	pointer  string
	selected Style
	disabled Style
	titleSt  Style
	keys     scrollKeys

	lines     []string
	lineStyle []Style
}

// NewScrollMenu creates a scroll menu over the visible items.
func NewScrollMenu(title string, items ...MenuItem) *ScrollMenu {
	m := &ScrollMenu{
		title:    title,
		pointer:  "> ",
		selected: Style{FG: Cyan, Attr: AttrBold},
		disabled: Style{Attr: AttrDim},
		titleSt:  Style{Attr: AttrBold},
		keys:     defaultScrollKeys(),
	}
	m.body = m
	m.style = DefaultStyle()
	for _, it := range items {
		if it.Hidden {
			continue
		}
		m.items = append(m.items, &it)
	}
	m.refilter()
	return m
}

// Theme applies a theme's accent, muted and header styles.
func (m *ScrollMenu) Theme(t Theme) *ScrollMenu {
	m.selected, m.disabled, m.titleSt, m.style = t.Accent.Bold(), t.Muted, t.Header, t.Base
	return m
}

// Filter returns the current filter text.
func (m *ScrollMenu) Filter() string {
	return m.filter
}

// SetFilter narrows the items to fuzzy matches of f.
func (m *ScrollMenu) SetFilter(f string) *ScrollMenu {
	m.filter = f
	m.refilter()
	return m
}

// Current returns the highlighted item, or nil when nothing matches.
func (m *ScrollMenu) Current() *MenuItem {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return nil
	}
	return m.items[m.matches[m.cursor]]
}

// Move shifts the highlight by delta enabled items, wrapping at the ends.
func (m *ScrollMenu) Move(delta int) {
	n := len(m.matches)
	if n == 0 || delta == 0 {
		return
	}
	step := 1
	if delta < 0 {
		step, delta = -1, -delta
	}
	for ; delta > 0; delta-- {
		for range n {
			m.cursor = (m.cursor + step + n) % n
			if !m.items[m.matches[m.cursor]].Disabled {
				break
			}
		}
	}
}

type itemSource []*MenuItem

func (s itemSource) String(i int) string { return s[i].Text }
func (s itemSource) Len() int            { return len(s) }

func (m *ScrollMenu) refilter() {
	m.matches = m.matches[:0]
	if m.filter == "" {
		for i := range m.items {
			m.matches = append(m.matches, i)
		}
	} else {
		for _, match := range fuzzy.FindFrom(m.filter, itemSource(m.items)) {
			m.matches = append(m.matches, match.Index)
		}
	}
	m.cursor = 0
	if len(m.matches) > 0 && m.items[m.matches[0]].Disabled {
		m.Move(1)
	}
}

func (m *ScrollMenu) build() {
	m.lines, m.lineStyle = m.lines[:0], m.lineStyle[:0]
	if m.title != "" {
		title := m.title
		if m.filter != "" {
			title += " (" + m.filter + ")"
		}
		m.lines = append(m.lines, title)
		m.lineStyle = append(m.lineStyle, m.titleSt.Over(m.style))
	}
	blank := strings.Repeat(" ", DisplayWidth(m.pointer))
	for i, idx := range m.matches {
		it := m.items[idx]
		prefix, st := blank, m.style
		switch {
		case it.Disabled:
			st = m.disabled.Over(m.style)
		case i == m.cursor:
			prefix, st = m.pointer, m.selected.Over(m.style)
		}
		m.lines = append(m.lines, prefix+it.Text)
		m.lineStyle = append(m.lineStyle, st)
	}
	if len(m.matches) == 0 {
		m.lines = append(m.lines, blank+"no matches")
		m.lineStyle = append(m.lineStyle, m.disabled.Over(m.style))
	}
}

func (m *ScrollMenu) naturalWidth() int {
	m.build()
	return MaxLineWidth(m.lines)
}

func (m *ScrollMenu) arrange(width int) int {
	m.build()
	return len(m.lines)
}

func (m *ScrollMenu) draw(buf *Buffer, x, y, width, height int) {
	for i := 0; i < height && i < len(m.lines); i++ {
		line := m.lines[i]
		if DisplayWidth(line) > width {
			line = Truncate(line, width)
		}
		buf.WriteStringClipped(x, y+i, line, m.lineStyle[i], width)
	}
}

// scrollModel drives a ScrollMenu as a bubbletea program.
type scrollModel struct {
	menu     *ScrollMenu
	console  *Console
	chosen   *MenuItem
	canceled bool
}

func (s *scrollModel) Init() tea.Cmd { return nil }

func (s *scrollModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	m := s.menu
	switch {
	case key.Matches(k, m.keys.Cancel):
		s.canceled = true
		return s, tea.Quit
	case key.Matches(k, m.keys.Select):
		if it := m.Current(); it != nil && !it.Disabled {
			s.chosen = it
			return s, tea.Quit
		}
	case key.Matches(k, m.keys.Up):
		m.Move(-1)
	case key.Matches(k, m.keys.Down):
		m.Move(1)
	case key.Matches(k, m.keys.Erase):
		if r := []rune(m.filter); len(r) > 0 {
			m.SetFilter(string(r[:len(r)-1]))
		}
	case k.Type == tea.KeyRunes || k.Type == tea.KeySpace:
		m.SetFilter(m.filter + string(k.Runes))
	}
	return s, nil
}

func (s *scrollModel) View() string {
	if s.chosen != nil || s.canceled {
		return ""
	}
	return strings.Join(s.console.Render(s.menu), "\n")
}

// Run shows the menu until the user selects an item or cancels. Cancelling
// returns ErrCanceled; the chosen item's action runs before Run returns.
func (m *ScrollMenu) Run(ctx context.Context, c *Console, in io.Reader) (*MenuItem, error) {
	model := &scrollModel{menu: m, console: c}
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(c.Writer()),
	)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil, ErrCanceled
		}
		return nil, err
	}
	if model.canceled || model.chosen == nil {
		return nil, ErrCanceled
	}
	Logger().Debug("scroll menu choice", zap.String("id", model.chosen.ID))
	if model.chosen.Action != nil {
		return model.chosen, model.chosen.Action(ctx)
	}
	return model.chosen, nil
}
