package konsole

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		val      any
		decimals int
		want     string
	}{
		{1234.5, 2, "1,234.50"},
		{1234, 0, "1,234"},
		{0.5, 1, "0.5"},
		{-9876.543, 2, "-9,876.54"},
		{int64(1000000), 0, "1,000,000"},
		{"1999.996", 2, "2,000.00"},
	}

	for _, tt := range tests {
		cfg := &ColumnConfig{}
		Number(tt.decimals)(cfg)
		got := cfg.format(tt.val)
		if got != tt.want {
			t.Errorf("Number(%d)(%v) = %q, want %q", tt.decimals, tt.val, got, tt.want)
		}
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		symbol   string
		decimals int
		val      any
		want     string
	}{
		{"$", 2, 1234.5, "$1,234.50"},
		{"€", 2, 99.9, "€99.90"},
		{"£", 0, 1000, "£1,000"},
	}

	for _, tt := range tests {
		cfg := &ColumnConfig{}
		Currency(tt.symbol, tt.decimals)(cfg)
		got := cfg.format(tt.val)
		if got != tt.want {
			t.Errorf("Currency(%q, %d)(%v) = %q, want %q", tt.symbol, tt.decimals, tt.val, got, tt.want)
		}
		if cfg.align != AlignRight {
			t.Error("Currency should set AlignRight")
		}
	}
}

func TestPercent(t *testing.T) {
	cfg := &ColumnConfig{}
	Percent(1)(cfg)

	got := cfg.format(12.34)
	if got != "12.3%" {
		t.Errorf("Percent(1)(12.34) = %q, want %q", got, "12.3%")
	}
}

func TestPercentChange(t *testing.T) {
	cfg := &ColumnConfig{}
	PercentChange(1)(cfg)

	pos := cfg.format(5.67)
	if pos != "+5.7%" {
		t.Errorf("PercentChange positive = %q, want %q", pos, "+5.7%")
	}

	neg := cfg.format(-3.21)
	if neg != "-3.2%" {
		t.Errorf("PercentChange negative = %q, want %q", neg, "-3.2%")
	}

	// style should return green for positive
	posStyle := cfg.style(5.67)
	if posStyle.FG != Green {
		t.Error("PercentChange positive should be Green")
	}

	negStyle := cfg.style(-3.21)
	if negStyle.FG != Red {
		t.Error("PercentChange negative should be Red")
	}
}

func TestBytes(t *testing.T) {
	tests := []struct {
		val  any
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{20480, "20 KiB"},
		{1048576, "1.0 MiB"},
		{1073741824, "1.0 GiB"},
		{-2048, "-2.0 KiB"},
		{"4096", "4.0 KiB"},
	}

	cfg := &ColumnConfig{}
	Bytes()(cfg)

	for _, tt := range tests {
		got := cfg.format(tt.val)
		if got != tt.want {
			t.Errorf("Bytes()(%v) = %q, want %q", tt.val, got, tt.want)
		}
	}
}

func TestBool(t *testing.T) {
	cfg := &ColumnConfig{}
	Bool("✓", "✗")(cfg)

	if cfg.format(true) != "✓" {
		t.Errorf("Bool true = %q, want ✓", cfg.format(true))
	}
	if cfg.format(false) != "✗" {
		t.Errorf("Bool false = %q, want ✗", cfg.format(false))
	}
	if cfg.align != AlignCenter {
		t.Error("Bool should set AlignCenter")
	}
}

func TestStyleSign(t *testing.T) {
	posStyle := Style{FG: Green}
	negStyle := Style{FG: Red}

	cfg := &ColumnConfig{}
	StyleSign(posStyle, negStyle)(cfg)

	if cfg.style(5.0) != posStyle {
		t.Error("StyleSign(5.0) should return positive style")
	}
	if cfg.style(-3.0) != negStyle {
		t.Error("StyleSign(-3.0) should return negative style")
	}
	if cfg.style(0.0) != posStyle {
		t.Error("StyleSign(0.0) should return positive style")
	}
}

func TestStyleBool(t *testing.T) {
	trueStyle := Style{FG: Green}
	falseStyle := Style{FG: Red}

	cfg := &ColumnConfig{}
	StyleBool(trueStyle, falseStyle)(cfg)

	if cfg.style(true) != trueStyle {
		t.Error("StyleBool(true) should return true style")
	}
	if cfg.style(false) != falseStyle {
		t.Error("StyleBool(false) should return false style")
	}
}

func TestStyleThreshold(t *testing.T) {
	low := Style{FG: Red}
	mid := Style{FG: Yellow}
	high := Style{FG: Green}

	cfg := &ColumnConfig{}
	StyleThreshold(25, 75, low, mid, high)(cfg)

	if cfg.style(10.0) != low {
		t.Error("StyleThreshold(10) should return low style")
	}
	if cfg.style(50.0) != mid {
		t.Error("StyleThreshold(50) should return mid style")
	}
	if cfg.style(90.0) != high {
		t.Error("StyleThreshold(90) should return high style")
	}
	// boundary values
	if cfg.style(25.0) != mid {
		t.Error("StyleThreshold(25) should return mid style (inclusive)")
	}
	if cfg.style(75.0) != mid {
		t.Error("StyleThreshold(75) should return mid style (inclusive)")
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		val  any
		want float64
	}{
		{int(42), 42},
		{int8(8), 8},
		{int16(16), 16},
		{int32(32), 32},
		{int64(64), 64},
		{uint(42), 42},
		{uint8(8), 8},
		{uint16(16), 16},
		{uint32(32), 32},
		{uint64(64), 64},
		{float32(3.14), 3.140000104904175}, // float32 precision
		{float64(3.14), 3.14},
		{" 2.5 ", 2.5},
		{"not a number", 0},
	}

	for _, tt := range tests {
		got := toFloat64(tt.val)
		if got != tt.want {
			t.Errorf("toFloat64(%v) = %v, want %v", tt.val, got, tt.want)
		}
	}
}

type server struct {
	Name   string
	Load   float64
	Up     bool   `konsole:"Online"`
	secret string
	Notes  string `konsole:"-"`
}

func TestGridOfBuildsColumnsFromFields(t *testing.T) {
	data := []server{{Name: "web", Load: 12.5, Up: true}, {Name: "db", Load: 3}}

	g, err := GridOf(data).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var headers []string
	for _, c := range g.Columns() {
		headers = append(headers, c.Header)
	}
	if diff := cmp.Diff([]string{"Name", "Load", "Online"}, headers); diff != "" {
		t.Errorf("headers (-want +got):\n%s", diff)
	}
	if g.Column(1).Align != AlignRight {
		t.Errorf("numeric column align = %v, want right", g.Column(1).Align)
	}
	if len(g.Rows()) != 2 {
		t.Fatalf("rows = %d, want 2", len(g.Rows()))
	}
	if got := g.Rows()[0].Cells[2].Text(); got != "true" {
		t.Errorf("bool cell = %q, want %q", got, "true")
	}
}

func TestGridOfRenders(t *testing.T) {
	data := []*server{{Name: "web", Load: 12.5}, {Name: "db", Load: 3}}

	g, err := GridOf(&data).
		Columns("Name", "Load").
		Column("Load", Number(1)).
		Sort("Load", true).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []string{
		"┌──────┬──────┐",
		"│ Name │ Load │",
		"├──────┼──────┤",
		"│ db   │  3.0 │",
		"│ web  │ 12.5 │",
		"└──────┴──────┘",
	}
	if diff := cmp.Diff(want, RenderLines(g, 0)); diff != "" {
		t.Errorf("render (-want +got):\n%s", diff)
	}
	if data[0].Name != "web" {
		t.Error("Sort modified the source slice")
	}
}

func TestGridOfHeadersAndDescendingSort(t *testing.T) {
	data := []server{{Name: "a", Load: 1}, {Name: "b", Load: 2}, {Name: "c", Load: 3}}

	g, err := GridOf(data).Columns("Name").Headers("Host").Sort("Load", false).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.Column(0).Header != "Host" {
		t.Errorf("header = %q, want Host", g.Column(0).Header)
	}
	var names []string
	for _, r := range g.Rows() {
		names = append(names, r.Cells[0].Text())
	}
	if diff := cmp.Diff([]string{"c", "b", "a"}, names); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestGridOfErrors(t *testing.T) {
	if _, err := GridOf(42).Build(); !errors.Is(err, ErrNotStructSlice) {
		t.Errorf("non-slice: err = %v, want ErrNotStructSlice", err)
	}
	if _, err := GridOf([]int{1, 2}).Build(); !errors.Is(err, ErrNotStructSlice) {
		t.Errorf("slice of ints: err = %v, want ErrNotStructSlice", err)
	}
	if _, err := GridOf([]server{}).Columns("Missing").Build(); !errors.Is(err, ErrUnknownField) {
		t.Errorf("unknown column: err = %v, want ErrUnknownField", err)
	}
	if _, err := GridOf([]server{}).Columns("secret").Build(); !errors.Is(err, ErrUnknownField) {
		t.Errorf("unexported column: err = %v, want ErrUnknownField", err)
	}
	if _, err := GridOf([]server{}).Sort("Nope", true).Build(); !errors.Is(err, ErrUnknownField) {
		t.Errorf("unknown sort field: err = %v, want ErrUnknownField", err)
	}
}

func TestGridOfNilElements(t *testing.T) {
	data := []*server{{Name: "x", Load: 1}, nil}

	g, err := GridOf(data).Columns("Name").Sort("Name", true).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := g.Rows()[0].Cells[0].Text(); got != "" {
		t.Errorf("nil row sorted first should be blank, got %q", got)
	}
}

func TestCombine(t *testing.T) {
	cfg := &ColumnConfig{}
	Combine(Percent(0), StyleSign(Style{FG: Green}, Style{FG: Red}), func(c *ColumnConfig) { c.Weight(2) })(cfg)

	if got := cfg.format(50.0); got != "50%" {
		t.Errorf("format = %q, want 50%%", got)
	}
	if cfg.style(-1.0).FG != Red {
		t.Error("style from second option not applied")
	}
	if cfg.column.Weight != 2 {
		t.Errorf("weight = %v, want 2", cfg.column.Weight)
	}
}
