package konsole

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConsolePlain(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, WithWidth(40), WithColor(ColorNever))

	if c.Colored() || c.Terminal() {
		t.Fatalf("colored=%v terminal=%v, want plain non-terminal", c.Colored(), c.Terminal())
	}
	if c.Width() != 40 {
		t.Errorf("Width = %d, want 40", c.Width())
	}
	if err := c.Display(Text("hi").Bold()); err != nil {
		t.Fatal(err)
	}
	if err := c.WriteLine("next"); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "hi\nnext\n" {
		t.Errorf("output = %q", got)
	}
	if got := c.Styled("x", Style{FG: Red}); got != "x" {
		t.Errorf("Styled on plain console = %q", got)
	}
}

func TestConsoleColored(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, WithWidth(20), WithColor(ColorAlways))

	if !c.Colored() {
		t.Fatal("ColorAlways should color")
	}
	s := c.Styled("x", Style{FG: Red, Attr: AttrBold})
	if !strings.Contains(s, "\x1b[") || !strings.Contains(s, "x") {
		t.Errorf("Styled = %q, want escape sequences around x", s)
	}
	if got := c.Styled("x", DefaultStyle()); got != "x" {
		t.Errorf("default style should not be wrapped, got %q", got)
	}

	lines := c.Render(HStack(Text("a"), Text("b").FG(Green)))
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	if !strings.HasPrefix(lines[0], "a") || !strings.Contains(lines[0], "\x1b[") {
		t.Errorf("line = %q, want plain a then a styled b", lines[0])
	}
	if strings.HasSuffix(lines[0], " ") {
		t.Errorf("trailing blanks should be dropped: %q", lines[0])
	}
}

func TestConsoleAutoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	if c := NewConsole(&bytes.Buffer{}); c.Colored() {
		t.Error("a buffer is not a terminal, auto should not color")
	}
	if c := NewConsole(&bytes.Buffer{}, WithTerminal(true)); !c.Colored() {
		t.Error("auto should color a terminal")
	}

	t.Setenv("NO_COLOR", "1")
	if c := NewConsole(&bytes.Buffer{}, WithTerminal(true)); c.Colored() {
		t.Error("NO_COLOR should disable auto color")
	}
	if c := NewConsole(&bytes.Buffer{}, WithColor(ColorAlways)); !c.Colored() {
		t.Error("ColorAlways should ignore NO_COLOR")
	}
}

func TestParseColorPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorPolicy
		wantErr bool
	}{
		{"", ColorAuto, false},
		{"AUTO", ColorAuto, false},
		{"always", ColorAlways, false},
		{"off", ColorNever, false},
		{"sometimes", ColorAuto, true},
	}
	for _, tt := range tests {
		got, err := ParseColorPolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseColorPolicy(%q) = %v, %v", tt.in, got, err)
		}
		if err == nil && got.String() == "" {
			t.Errorf("empty name for %v", got)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"red", Red},
		{" Bright-Blue ", BrightBlue},
		{"grey", BrightBlack},
		{"default", DefaultColor()},
		{"208", PaletteColor(208)},
		{"#ff8800", RGB(0xff, 0x88, 0x00)},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"chartreuse", "300", "#zzzzzz"} {
		if _, err := ParseColor(bad); !errors.Is(err, ErrUnknownColor) {
			t.Errorf("ParseColor(%q) err = %v, want ErrUnknownColor", bad, err)
		}
	}
}

func TestTerminalWidthFallback(t *testing.T) {
	if controllingTerminalWidth() > 0 {
		t.Skip("running under a terminal")
	}
	t.Setenv("COLUMNS", "123")
	if got := TerminalWidth(&bytes.Buffer{}); got != 123 {
		t.Errorf("TerminalWidth = %d, want 123 from $COLUMNS", got)
	}
	t.Setenv("COLUMNS", "")
	if got := TerminalWidth(&bytes.Buffer{}); got != DefaultWidth {
		t.Errorf("TerminalWidth = %d, want %d", got, DefaultWidth)
	}
}

func TestRenderAgainstConsoleWidth(t *testing.T) {
	c := NewConsole(&bytes.Buffer{}, WithWidth(12), WithColor(ColorNever))
	got := c.Render(Title("Report", Text("v1")))
	if diff := cmp.Diff([]string{"Report    v1"}, got); diff != "" {
		t.Errorf("render (-want +got):\n%s", diff)
	}
}

func TestThemeByName(t *testing.T) {
	th, err := ThemeByName(" Dark ")
	if err != nil || th != ThemeDark {
		t.Errorf("ThemeByName(dark) = %+v, %v", th, err)
	}
	if _, err := ThemeByName("neon"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("err = %v, want ErrUnknownTheme", err)
	}
}
