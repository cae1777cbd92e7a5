package konsole

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"
)

func TestDataGridRender(t *testing.T) {
	tests := []struct {
		name string
		grid func() *DataGrid
		want []string
	}{
		{
			name: "basic",
			grid: func() *DataGrid {
				return Table("Name", "Qty").Row("apple", 3).Row("kiwi", 12)
			},
			want: []string{
				"┌───────┬─────┐",
				"│ Name  │ Qty │",
				"├───────┼─────┤",
				"│ apple │ 3   │",
				"│ kiwi  │ 12  │",
				"└───────┴─────┘",
			},
		},
		{
			name: "title span and footer",
			grid: func() *DataGrid {
				return Table("A", "B").
					Title("Report").
					Row(Cell("wide cell").Span(2)).
					Footer("end")
			},
			want: []string{
				"┌───────────┐",
				"│  Report   │",
				"├──────┬────┤",
				"│ A    │ B  │",
				"├──────┴────┤",
				"│ wide cell │",
				"├───────────┤",
				"│ end       │",
				"└───────────┘",
			},
		},
		{
			name: "row lines",
			grid: func() *DataGrid {
				return Table("n").Borders(BordersAll).Row("a").Row("b")
			},
			want: []string{
				"┌───┐",
				"│ n │",
				"├───┤",
				"│ a │",
				"├───┤",
				"│ b │",
				"└───┘",
			},
		},
		{
			name: "no borders",
			grid: func() *DataGrid {
				return Table("x", "y").Borders(BordersNone).Row("1", "2")
			},
			want: []string{
				" x  y",
				" 1  2",
			},
		},
		{
			name: "inner borders only",
			grid: func() *DataGrid {
				return Table("x", "y").Borders(BordersInner).CellPadding(0, 0).Row("1", "2")
			},
			want: []string{
				"x│y",
				"─┼─",
				"1│2",
			},
		},
		{
			name: "hidden column",
			grid: func() *DataGrid {
				g := Table("A", "B", "C").Row("1", "2", "3")
				g.Column(1).Hidden = true
				return g
			},
			want: []string{
				"┌───┬───┐",
				"│ A │ C │",
				"├───┼───┤",
				"│ 1 │ 3 │",
				"└───┴───┘",
			},
		},
		{
			name: "vertical alignment and right aligned column",
			grid: func() *DataGrid {
				return Table().
					AddColumn(Column{Header: "a"}).
					AddColumn(Column{Header: "n", Align: AlignRight}).
					Row(Cell("x").VAlign(VAlignBottom), "1\n22\n333")
			},
			want: []string{
				"┌───┬─────┐",
				"│ a │   n │",
				"├───┼─────┤",
				"│   │   1 │",
				"│   │  22 │",
				"│ x │ 333 │",
				"└───┴─────┘",
			},
		},
		{
			name: "ascii template",
			grid: func() *DataGrid {
				return Table("k", "v").Border(BorderASCII).Row("a", "b")
			},
			want: []string{
				"+---+---+",
				"| k | v |",
				"+---+---+",
				"| a | b |",
				"+---+---+",
			},
		},
		{
			name: "header hidden and missing cells padded",
			grid: func() *DataGrid {
				return Table("a", "b").HideHeader().Row("1").Row("2", "3")
			},
			want: []string{
				"┌───┬───┐",
				"│ 1 │   │",
				"│ 2 │ 3 │",
				"└───┴───┘",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderLines(tt.grid(), 0)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("render (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDataGridShrinkWraps(t *testing.T) {
	g := Table("name", "desc").Row("x", "a long description")

	want := []string{
		"┌──────┬───────────┐",
		"│ name │ desc      │",
		"├──────┼───────────┤",
		"│ x    │ a long    │",
		"│      │ descripti │",
		"│      │ on        │",
		"└──────┴───────────┘",
	}
	if diff := cmp.Diff(want, RenderLines(g, 20)); diff != "" {
		t.Errorf("render (-want +got):\n%s", diff)
	}
}

func TestDataGridShrinkFloor(t *testing.T) {
	g := Table().
		AddColumn(Column{Header: "id", Width: 4}).
		AddColumn(Column{Header: "value", MinWidth: 3}).
		Row("1", "abcdefgh")

	g.SetConstraints(5, 0)
	if diff := cmp.Diff([]int{4, 3}, g.widths); diff != "" {
		t.Errorf("widths (-want +got):\n%s", diff)
	}
}

func TestDataGridExpand(t *testing.T) {
	tests := []struct {
		name    string
		align   Align
		weights []float64
		want    []int
	}{
		{"evenly when stretched", AlignStretch, []float64{0, 0}, []int{7, 6}},
		{"natural without stretch or weights", AlignDefault, []float64{0, 0}, []int{1, 1}},
		{"single weight", AlignDefault, []float64{0, 1}, []int{1, 12}},
		{"by weight", AlignDefault, []float64{1, 2}, []int{5, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Table("a", "b").Width(20).Align(tt.align)
			for i, w := range tt.weights {
				g.Column(i).Weight = w
			}
			g.Row("1", "2")
			g.SetConstraints(0, 0)
			if diff := cmp.Diff(tt.want, g.widths); diff != "" {
				t.Errorf("widths (-want +got):\n%s", diff)
			}
			if w, _ := g.Size(); w != 20 {
				t.Errorf("width = %d, want 20", w)
			}
		})
	}
}

func TestDataGridDropsColumnsThatCannotFit(t *testing.T) {
	g := Table("Header one", "Header two").Row("lorem", "sit")
	lines := RenderLines(g, 8)
	if len(lines) == 0 {
		t.Fatal("no output")
	}
	if lines[0] != "┌──────┐" {
		t.Errorf("top border = %q, want a single closed column", lines[0])
	}
	for _, l := range lines {
		if w := DisplayWidth(l); w > 8 {
			t.Errorf("line %q is %d wide, want at most 8", l, w)
		}
		if strings.Contains(l, "sit") {
			t.Errorf("dropped column still drawn: %q", l)
		}
	}
	if got := len(g.widths); got != 1 {
		t.Errorf("visible columns = %d, want 1", got)
	}

	// the same grid keeps both columns once they fit
	if got := RenderLines(g, 0)[0]; got != "┌────────────┬────────────┐" {
		t.Errorf("unconstrained top border = %q", got)
	}
}

func TestDataGridMaxWidthStopsGrowth(t *testing.T) {
	g := Table().
		AddColumn(Column{Header: "a", MaxWidth: 3, Weight: 1}).
		AddColumn(Column{Header: "b"}).
		Width(20)
	g.SetConstraints(0, 0)
	if got := g.widths[0]; got != 3 {
		t.Errorf("capped column width = %d, want 3", got)
	}
}

func TestDataGridStyles(t *testing.T) {
	g := Table("h").AltRowStyle(Style{BG: Blue}).Row("a").Row("b")
	buf := RenderBuffer(g, 0)

	if !buf.Get(2, 1).Style.Attr.Has(AttrBold) {
		t.Error("header should be bold")
	}
	if buf.Get(1, 3).Style.BG == Blue {
		t.Error("first data row should not take the alternate style")
	}
	if buf.Get(1, 4).Style.BG != Blue {
		t.Error("second data row should take the alternate style")
	}
}

func TestDataGridClearRows(t *testing.T) {
	g := Table("a").Row("1").Row("2")
	g.ClearRows()
	if len(g.Rows()) != 0 {
		t.Fatalf("rows = %d, want 0", len(g.Rows()))
	}
	if _, h := g.MinSize(); h != 3 {
		t.Errorf("header-only height = %d, want 3", h)
	}
}

func TestDataGridEmpty(t *testing.T) {
	w, h := Table().MinSize()
	if w != 0 || h != 0 {
		t.Errorf("empty grid = %dx%d, want 0x0", w, h)
	}
}

func TestDataGridValidate(t *testing.T) {
	if err := Table("a").Row("1").Validate(); err != nil {
		t.Fatalf("valid grid: %v", err)
	}

	if err := Table().Validate(); !errors.Is(err, ErrNoColumns) {
		t.Errorf("no columns: got %v", err)
	}

	g := Table("a").
		AddColumn(Column{Header: "b", MinWidth: 5, MaxWidth: 2}).
		Row(Cell(1).Span(0), Cell(2).Span(3))
	err := g.Validate()
	if n := len(multierr.Errors(err)); n != 3 {
		t.Errorf("got %d errors, want 3: %v", n, err)
	}
	if !errors.Is(err, ErrInvalidWidth) || !errors.Is(err, ErrInvalidSpan) {
		t.Errorf("missing sentinel in %v", err)
	}
}

func TestGridCellContent(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"a\nb", "a\nb"},
		{[]string{"x", "y"}, "x\ny"},
		{42, "42"},
		{AlignCenter, "center"},
	}
	for _, tt := range tests {
		if got := Cell(tt.in).Text(); got != tt.want {
			t.Errorf("Cell(%v).Text() = %q, want %q", tt.in, got, tt.want)
		}
	}
}
