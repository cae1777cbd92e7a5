package konsole

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// DefaultWidth is used when the output width cannot be detected.
const DefaultWidth = 80

// ColorPolicy decides whether a console emits styling escapes.
type ColorPolicy uint8

const (
	ColorAuto   ColorPolicy = iota // color when writing to a terminal and NO_COLOR is unset
	ColorAlways                    // always color
	ColorNever                     // plain text
)

// String returns the policy name.
func (p ColorPolicy) String() string {
	switch p {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	}
	return "auto"
}

// ParseColorPolicy resolves "auto", "always" or "never".
func ParseColorPolicy(s string) (ColorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always", "on", "true":
		return ColorAlways, nil
	case "never", "off", "false":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("unknown color policy %q (want auto, always or never)", s)
}

// Console writes rendered components to an output stream.
type Console struct {
	out    io.Writer
	width  int
	policy ColorPolicy

	mu       sync.Mutex
	terminal *bool
	colored  bool
	renderer *lipgloss.Renderer
	styles   map[Style]lipgloss.Style
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithWidth fixes the output width. 0 detects it from the terminal.
func WithWidth(w int) ConsoleOption {
	return func(c *Console) { c.width = max(w, 0) }
}

// WithColor sets the color policy.
func WithColor(p ColorPolicy) ConsoleOption {
	return func(c *Console) { c.policy = p }
}

// WithTerminal overrides terminal detection. Live redraws and raw-mode
// input are only used on terminals.
func WithTerminal(on bool) ConsoleOption {
	return func(c *Console) { c.terminal = &on }
}

// NewConsole creates a console writing to w. Pass nil to use os.Stdout.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	if w == nil {
		w = os.Stdout
	}
	c := &Console{out: w, styles: make(map[Style]lipgloss.Style)}
	for _, o := range opts {
		o(c)
	}

	if c.terminal == nil {
		on := isTerminal(w)
		c.terminal = &on
	}
	c.renderer = lipgloss.NewRenderer(w)
	c.colored = c.detectColor()
	switch {
	case !c.colored:
		c.renderer.SetColorProfile(termenv.Ascii)
	case c.policy == ColorAlways:
		c.renderer.SetColorProfile(termenv.TrueColor)
	}
	return c
}

func (c *Console) detectColor() bool {
	switch c.policy {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return *c.terminal
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Writer returns the output stream.
func (c *Console) Writer() io.Writer {
	return c.out
}

// Terminal reports whether the output is a terminal.
func (c *Console) Terminal() bool {
	return *c.terminal
}

// Colored reports whether styling escapes are written.
func (c *Console) Colored() bool {
	return c.colored
}

// Width returns the fixed width, or the detected terminal width.
func (c *Console) Width() int {
	if c.width > 0 {
		return c.width
	}
	return TerminalWidth(c.out)
}

// TerminalWidth reports the width of the terminal behind w. When w is not a
// terminal it tries the controlling terminal, then $COLUMNS, then DefaultWidth.
func TerminalWidth(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if width, _, err := term.GetSize(fd); err == nil && width > 0 {
				return width
			}
		}
	}
	if width := controllingTerminalWidth(); width > 0 {
		return width
	}
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return DefaultWidth
}

// RenderBuffer lays out comp against width (0 = natural size) and draws it
// into a buffer of exactly its size.
func RenderBuffer(comp Component, width int) *Buffer {
	comp.MinSize()
	comp.SetConstraints(width, 0)
	w, h := comp.Size()
	buf := NewBuffer(w, h)
	comp.Render(buf, 0, 0)
	return buf
}

// RenderLines lays out and draws comp, returning plain lines with trailing
// spaces trimmed.
func RenderLines(comp Component, width int) []string {
	return RenderBuffer(comp, width).Lines()
}

// Render lays out comp against the console width and returns its lines,
// styled when the console is colored.
func (c *Console) Render(comp Component) []string {
	buf := RenderBuffer(comp, c.Width())
	if !c.colored {
		return buf.Lines()
	}
	lines := make([]string, buf.Height())
	for y := range lines {
		lines[y] = c.styledLine(buf, y)
	}
	return lines
}

// Display renders comp and writes it, one line per row.
func (c *Console) Display(comp Component) error {
	lines := c.Render(comp)
	Logger().Debug("display", zap.Int("width", c.Width()), zap.Int("lines", len(lines)))
	return c.writeLines(lines)
}

// WriteLine writes s followed by a newline.
func (c *Console) WriteLine(s string) error {
	return c.writeLines([]string{s})
}

// Printf writes formatted text without a trailing newline.
func (c *Console) Printf(format string, args ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.out, format, args...)
	return err
}

// Styled renders s with st when the console is colored.
func (c *Console) Styled(s string, st Style) string {
	if !c.colored || st.IsDefault() {
		return s
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lipglossStyle(st).Render(s)
}

func (c *Console) writeLines(lines []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(c.out, sb.String())
	return err
}

// styledLine renders row y as runs of equally styled cells. Trailing blank
// cells without a background are dropped.
func (c *Console) styledLine(buf *Buffer, y int) string {
	cells := buf.lineRunes(y)
	end := len(cells)
	for end > 0 && cells[end-1].Rune == ' ' && cells[end-1].Style.BG.Mode == ColorDefault {
		end--
	}
	cells = cells[:end]

	c.mu.Lock()
	defer c.mu.Unlock()
	var sb, run strings.Builder
	flush := func(st Style) {
		if run.Len() == 0 {
			return
		}
		if st.IsDefault() {
			sb.WriteString(run.String())
		} else {
			sb.WriteString(c.lipglossStyle(st).Render(run.String()))
		}
		run.Reset()
	}
	var cur Style
	for i, cell := range cells {
		if i > 0 && cell.Style != cur {
			flush(cur)
		}
		cur = cell.Style
		run.WriteRune(cell.Rune)
	}
	flush(cur)
	return sb.String()
}

// lipglossStyle converts a style, caching the result. Callers hold c.mu.
func (c *Console) lipglossStyle(st Style) lipgloss.Style {
	if ls, ok := c.styles[st]; ok {
		return ls
	}
	ls := c.renderer.NewStyle().
		Foreground(lipglossColor(st.FG)).
		Background(lipglossColor(st.BG)).
		Bold(st.Attr.Has(AttrBold)).
		Faint(st.Attr.Has(AttrDim)).
		Italic(st.Attr.Has(AttrItalic)).
		Underline(st.Attr.Has(AttrUnderline)).
		Blink(st.Attr.Has(AttrBlink)).
		Reverse(st.Attr.Has(AttrInverse)).
		Strikethrough(st.Attr.Has(AttrStrikethrough))
	c.styles[st] = ls
	return ls
}

func lipglossColor(col Color) lipgloss.TerminalColor {
	switch col.Mode {
	case Color16, Color256:
		return lipgloss.ANSIColor(col.Index)
	case ColorRGB:
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B))
	}
	return lipgloss.NoColor{}
}
