package konsole

import (
	"fmt"
	"sort"
	"strings"
)

// Theme provides a set of styles for consistent output.
type Theme struct {
	Base   Style // default text
	Muted  Style // de-emphasized text, disabled menu items
	Accent Style // highlights, the selected menu item, spinner frames
	Error  Style // validation and error messages
	Border Style // frames and grid lines
	Header Style // grid header rows and titles
}

// ThemeDark is light text for dark terminals.
var ThemeDark = Theme{
	Base:   Style{FG: White},
	Muted:  Style{FG: BrightBlack},
	Accent: Style{FG: BrightCyan},
	Error:  Style{FG: BrightRed},
	Border: Style{FG: BrightBlack},
	Header: Style{FG: BrightWhite, Attr: AttrBold},
}

// ThemeLight is dark text for light terminals.
var ThemeLight = Theme{
	Base:   Style{FG: Black},
	Muted:  Style{FG: BrightBlack},
	Accent: Style{FG: Blue},
	Error:  Style{FG: Red},
	Border: Style{FG: BrightBlack},
	Header: Style{FG: Black, Attr: AttrBold},
}

// ThemeMonochrome uses attributes only.
var ThemeMonochrome = Theme{
	Muted:  Style{Attr: AttrDim},
	Accent: Style{Attr: AttrBold},
	Error:  Style{Attr: AttrBold | AttrUnderline},
	Border: Style{Attr: AttrDim},
	Header: Style{Attr: AttrBold},
}

var themes = map[string]Theme{
	"dark":       ThemeDark,
	"light":      ThemeLight,
	"monochrome": ThemeMonochrome,
}

// ThemeByName resolves "dark", "light" or "monochrome".
func ThemeByName(name string) (Theme, error) {
	if t, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t, nil
	}
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return Theme{}, fmt.Errorf("%w: %q (have %s)", ErrUnknownTheme, name, strings.Join(names, ", "))
}
