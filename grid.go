package konsole

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Column describes one grid column.
//
// Width fixes the content width. Otherwise the column takes the width of its
// widest cell, clamped to MinWidth/MaxWidth. Weight marks the column as a
// receiver of spare room when the grid is wider than its content.
type Column struct {
	Header      string
	Width       int
	MinWidth    int
	MaxWidth    int
	Weight      float64
	Align       Align // default alignment for data cells
	HeaderAlign Align // header alignment, falls back to Align
	Hidden      bool
}

func (c *Column) fixed() bool { return c.Width > 0 }

// floor is the narrowest the column may shrink to.
func (c *Column) floor() int { return max(c.MinWidth, 1) }

// GridCell is one cell of a grid: multi-line content plus alignment, span and style.
type GridCell struct {
	content any
	lines   []string
	align   Align
	valign  VAlign
	span    int
	style   *Style
}

// Cell creates a grid cell. Strings are split on newlines; other values are
// formatted with %v.
func Cell(content any) *GridCell {
	c := &GridCell{span: 1}
	c.SetContent(content)
	return c
}

// SetContent replaces the cell content.
func (c *GridCell) SetContent(content any) {
	c.content = content
	c.lines = cellLines(content)
}

// Text returns the cell content as a single string.
func (c *GridCell) Text() string {
	return strings.Join(c.lines, "\n")
}

// Span makes the cell cover n columns.
func (c *GridCell) Span(n int) *GridCell {
	c.span = n
	return c
}

// Align sets the horizontal alignment, overriding the column's.
func (c *GridCell) Align(a Align) *GridCell {
	c.align = a
	return c
}

// VAlign sets the vertical alignment inside a taller row.
func (c *GridCell) VAlign(a VAlign) *GridCell {
	c.valign = a
	return c
}

// Style sets the cell style, layered over the row style.
func (c *GridCell) Style(s Style) *GridCell {
	c.style = &s
	return c
}

func cellLines(v any) []string {
	switch x := v.(type) {
	case nil:
		return []string{""}
	case string:
		return SplitLines(x)
	case []string:
		return SplitLines(strings.Join(x, "\n"))
	case fmt.Stringer:
		return SplitLines(x.String())
	}
	return SplitLines(fmt.Sprint(v))
}

// GridRow is a data row.
type GridRow struct {
	Cells []*GridCell
	style *Style
}

// Style sets the row style.
func (r *GridRow) Style(s Style) *GridRow {
	r.style = &s
	return r
}

// BorderVisibility selects which grid lines are drawn.
type BorderVisibility struct {
	Left, Right, Top, Bottom bool
	Columns                  bool // vertical lines between columns
	Sections                 bool // lines under the title and header, above the footer
	Rows                     bool // lines between data rows
}

var (
	BordersDefault = BorderVisibility{Left: true, Right: true, Top: true, Bottom: true, Columns: true, Sections: true}
	BordersAll     = BorderVisibility{Left: true, Right: true, Top: true, Bottom: true, Columns: true, Sections: true, Rows: true}
	BordersInner   = BorderVisibility{Columns: true, Sections: true}
	BordersNone    = BorderVisibility{}
)

type rowKind uint8

const (
	rowTitle rowKind = iota
	rowHeader
	rowData
	rowFooter
)

// placed is a cell positioned on visible columns for one layout pass.
type placed struct {
	first, span int
	source      []string
	lines       []string
	align       Align
	valign      VAlign
	style       Style
}

type planRow struct {
	kind   rowKind
	cells  []placed
	height int
}

// starts reports the visible column indices (> 0) where a cell begins.
func (r *planRow) starts() map[int]bool {
	s := make(map[int]bool, len(r.cells))
	for _, p := range r.cells {
		if p.first > 0 {
			s[p.first] = true
		}
	}
	return s
}

// DataGrid renders a table: optional title, header, data rows and footer,
// framed and separated by a border template.
type DataGrid struct {
	Base
	columns    []*Column
	rows       []*GridRow
	title      *GridCell
	footer     *GridCell
	showHeader bool
	template   BorderStyle
	borders    BorderVisibility
	padLeft    int
	padRight   int
	header     Style
	altRow     *Style
	wrap       WrapMode

	// layout state
	vis    []int // column index of each visible column
	widths []int // content width of each visible column
	plan   []planRow
}

// Table creates a grid with one column per header.
func Table(headers ...string) *DataGrid {
	g := &DataGrid{
		showHeader: true,
		template:   BorderSingle,
		borders:    BordersDefault,
		padLeft:    1,
		padRight:   1,
		header:     Style{Attr: AttrBold},
	}
	g.body = g
	g.style = DefaultStyle()
	for _, h := range headers {
		g.AddColumn(Column{Header: h})
	}
	return g
}

// AddColumn appends a column.
func (g *DataGrid) AddColumn(c Column) *DataGrid {
	g.columns = append(g.columns, &c)
	return g
}

// Columns returns the grid's columns for in-place changes.
func (g *DataGrid) Columns() []*Column {
	return g.columns
}

// Column returns column i, or nil when out of range.
func (g *DataGrid) Column(i int) *Column {
	if i < 0 || i >= len(g.columns) {
		return nil
	}
	return g.columns[i]
}

// Row appends a data row. Values may be *GridCell for spans and per-cell
// settings; anything else becomes a plain cell.
func (g *DataGrid) Row(values ...any) *DataGrid {
	g.AddRow(values...)
	return g
}

// AddRow appends a data row and returns it.
func (g *DataGrid) AddRow(values ...any) *GridRow {
	r := &GridRow{Cells: make([]*GridCell, 0, len(values))}
	for _, v := range values {
		if c, ok := v.(*GridCell); ok {
			r.Cells = append(r.Cells, c)
			continue
		}
		r.Cells = append(r.Cells, Cell(v))
	}
	g.rows = append(g.rows, r)
	return r
}

// Rows returns the data rows.
func (g *DataGrid) Rows() []*GridRow {
	return g.rows
}

// ClearRows removes every data row.
func (g *DataGrid) ClearRows() *DataGrid {
	g.rows = g.rows[:0]
	return g
}

// Title sets a title row spanning every column, centered by default.
func (g *DataGrid) Title(v any) *DataGrid {
	if c, ok := v.(*GridCell); ok {
		g.title = c
	} else {
		g.title = Cell(v).Align(AlignCenter)
	}
	return g
}

// Footer sets a footer row spanning every column.
func (g *DataGrid) Footer(v any) *DataGrid {
	if c, ok := v.(*GridCell); ok {
		g.footer = c
	} else {
		g.footer = Cell(v)
	}
	return g
}

// HideHeader omits the header row.
func (g *DataGrid) HideHeader() *DataGrid {
	g.showHeader = false
	return g
}

// Border sets the border template.
func (g *DataGrid) Border(b BorderStyle) *DataGrid {
	g.template = b
	return g
}

// Borders selects which grid lines are drawn.
func (g *DataGrid) Borders(v BorderVisibility) *DataGrid {
	g.borders = v
	return g
}

// BorderFG colors the grid lines.
func (g *DataGrid) BorderFG(c Color) *DataGrid {
	g.borderStyle.FG = c
	return g
}

// CellPadding sets the blank columns on each side of every cell.
func (g *DataGrid) CellPadding(left, right int) *DataGrid {
	g.padLeft, g.padRight = max(left, 0), max(right, 0)
	return g
}

// HeaderStyle sets the header row style.
func (g *DataGrid) HeaderStyle(s Style) *DataGrid {
	g.header = s
	return g
}

// AltRowStyle styles every second data row.
func (g *DataGrid) AltRowStyle(s Style) *DataGrid {
	g.altRow = &s
	return g
}

// WrapCells sets how cell text wraps when a column is narrower than its content.
func (g *DataGrid) WrapCells(m WrapMode) *DataGrid {
	g.wrap = m
	return g
}

// Theme applies a theme's base, header and border styles.
func (g *DataGrid) Theme(t Theme) *DataGrid {
	g.style = t.Base
	g.header = t.Header
	g.borderStyle = t.Border
	return g
}

func (g *DataGrid) Margin(m Thickness) *DataGrid { g.props.Margin = m.normalized(); return g }
func (g *DataGrid) Width(w int) *DataGrid        { g.props.Width = max(w, 0); return g }
func (g *DataGrid) MinWidth(w int) *DataGrid     { g.props.MinWidth = max(w, 0); return g }
func (g *DataGrid) MaxWidth(w int) *DataGrid     { g.props.MaxWidth = max(w, 0); return g }
func (g *DataGrid) Align(a Align) *DataGrid      { g.props.Align = a; return g }

// Validate reports every structural problem in the grid.
func (g *DataGrid) Validate() error {
	var err error
	if len(g.columns) == 0 {
		err = multierr.Append(err, ErrNoColumns)
	}
	for i, c := range g.columns {
		if c.MinWidth > 0 && c.MaxWidth > 0 && c.MinWidth > c.MaxWidth {
			err = multierr.Append(err, fmt.Errorf("column %d (%q): min width %d > max width %d: %w",
				i, c.Header, c.MinWidth, c.MaxWidth, ErrInvalidWidth))
		}
	}
	for r, row := range g.rows {
		used := 0
		for c, cell := range row.Cells {
			if cell.span < 1 {
				err = multierr.Append(err, fmt.Errorf("row %d cell %d: span %d: %w", r, c, cell.span, ErrInvalidSpan))
			}
			used += max(cell.span, 1)
		}
		if len(g.columns) > 0 && used > len(g.columns) {
			err = multierr.Append(err, fmt.Errorf("row %d covers %d columns, grid has %d: %w",
				r, used, len(g.columns), ErrInvalidSpan))
		}
	}
	return err
}

// --- Layout ---

func (g *DataGrid) sepWidth() int {
	if g.borders.Columns {
		return 1
	}
	return 0
}

func (g *DataGrid) edges() (left, right int) {
	if g.borders.Left {
		left = 1
	}
	if g.borders.Right {
		right = 1
	}
	return left, right
}

// prepare rebuilds the visible columns and the row plan from the model.
// A positive limit keeps only the first limit visible columns.
func (g *DataGrid) prepare(limit int) {
	g.vis = g.vis[:0]
	visIndex := make([]int, len(g.columns))
	for i, c := range g.columns {
		visIndex[i] = -1
		if !c.Hidden && (limit <= 0 || len(g.vis) < limit) {
			visIndex[i] = len(g.vis)
			g.vis = append(g.vis, i)
		}
	}
	g.plan = g.plan[:0]
	n := len(g.vis)
	if n == 0 {
		return
	}

	whole := func(kind rowKind, c *GridCell, def Align) {
		p := placed{first: 0, span: n, source: c.lines, align: c.align, valign: c.valign, style: g.style}
		if p.align == AlignDefault {
			p.align = def
		}
		if c.style != nil {
			p.style = c.style.Over(p.style)
		}
		g.plan = append(g.plan, planRow{kind: kind, cells: []placed{p}})
	}

	if g.title != nil {
		whole(rowTitle, g.title, AlignCenter)
	}

	if g.showHeader {
		row := planRow{kind: rowHeader}
		for vi, ci := range g.vis {
			col := g.columns[ci]
			align := col.HeaderAlign
			if align == AlignDefault {
				align = col.Align
			}
			row.cells = append(row.cells, placed{
				first: vi, span: 1, source: SplitLines(col.Header), align: align, style: g.header.Over(g.style),
			})
		}
		g.plan = append(g.plan, row)
	}

	for ri, r := range g.rows {
		rowStyle := g.style
		if g.altRow != nil && ri%2 == 1 {
			rowStyle = g.altRow.Over(rowStyle)
		}
		if r.style != nil {
			rowStyle = r.style.Over(rowStyle)
		}
		g.plan = append(g.plan, planRow{kind: rowData, cells: g.place(r.Cells, visIndex, rowStyle)})
	}

	if g.footer != nil {
		whole(rowFooter, g.footer, AlignLeft)
	}
}

// place maps a row's cells onto visible columns. Cells in hidden columns are
// dropped, spans shrink to the visible columns they cover, and missing
// trailing cells are filled with blanks.
func (g *DataGrid) place(cells []*GridCell, visIndex []int, rowStyle Style) []placed {
	var out []placed
	col := 0
	for _, c := range cells {
		if col >= len(g.columns) {
			break
		}
		end := min(col+max(c.span, 1), len(g.columns))
		first, n := -1, 0
		for k := col; k < end; k++ {
			if vi := visIndex[k]; vi >= 0 {
				if first < 0 {
					first = vi
				}
				n++
			}
		}
		if n > 0 {
			p := placed{first: first, span: n, source: c.lines, align: c.align, valign: c.valign, style: rowStyle}
			if p.align == AlignDefault {
				p.align = g.columns[g.vis[first]].Align
			}
			if c.style != nil {
				p.style = c.style.Over(rowStyle)
			}
			out = append(out, p)
		}
		col = end
	}
	for k := col; k < len(g.columns); k++ {
		if vi := visIndex[k]; vi >= 0 {
			out = append(out, placed{first: vi, span: 1, source: []string{""}, align: g.columns[k].Align, style: rowStyle})
		}
	}
	return out
}

// spanWidth is the content width available to a cell covering span columns.
func (g *DataGrid) spanWidth(first, span int) int {
	w := 0
	for i := first; i < first+span && i < len(g.widths); i++ {
		w += g.widths[i]
	}
	if span > 1 {
		w += (span - 1) * (g.padLeft + g.padRight + g.sepWidth())
	}
	return w
}

// tableWidth is the full rendered width for the current column widths.
func (g *DataGrid) tableWidth() int {
	n := len(g.widths)
	if n == 0 {
		return 0
	}
	left, right := g.edges()
	return left + right + g.spanWidth(0, n) + g.padLeft + g.padRight
}

// measure computes natural column widths.
func (g *DataGrid) measure() {
	g.widths = make([]int, len(g.vis))
	for vi, ci := range g.vis {
		if c := g.columns[ci]; c.fixed() {
			g.widths[vi] = c.Width
		}
	}
	for _, row := range g.plan {
		if row.kind == rowTitle || row.kind == rowFooter {
			continue
		}
		for _, p := range row.cells {
			if p.span == 1 && !g.columns[g.vis[p.first]].fixed() {
				g.widths[p.first] = max(g.widths[p.first], MaxLineWidth(p.source))
			}
		}
	}
	for vi, ci := range g.vis {
		c := g.columns[ci]
		if c.fixed() {
			continue
		}
		w := max(g.widths[vi], 1)
		if c.MinWidth > 0 && w < c.MinWidth {
			w = c.MinWidth
		}
		if c.MaxWidth > 0 && w > c.MaxWidth {
			w = c.MaxWidth
		}
		g.widths[vi] = w
	}
	// spanning cells, title and footer widen the columns beneath them
	for _, row := range g.plan {
		for _, p := range row.cells {
			if need, have := MaxLineWidth(p.source), g.spanWidth(p.first, p.span); need > have {
				g.grow(p.first, p.span, need-have)
			}
		}
	}
}

// grow hands out extra columns one at a time, left to right, to the
// resizable columns in [first, first+span).
func (g *DataGrid) grow(first, span, extra int) int {
	for extra > 0 {
		progressed := false
		for vi := first; vi < first+span && extra > 0; vi++ {
			c := g.columns[g.vis[vi]]
			if c.fixed() || (c.MaxWidth > 0 && g.widths[vi] >= c.MaxWidth) {
				continue
			}
			g.widths[vi]++
			extra--
			progressed = true
		}
		if !progressed {
			break
		}
	}
	return extra
}

// fit resolves the natural widths against the available content width.
func (g *DataGrid) fit(available int) {
	total := g.tableWidth()
	switch {
	case available > total && (g.props.Align == AlignStretch || g.weighted()):
		g.expand(available - total)
	case available > 0 && total > available:
		g.shrink(total - available)
	}
}

func (g *DataGrid) weighted() bool {
	for _, ci := range g.vis {
		if c := g.columns[ci]; c.Weight > 0 && !c.fixed() {
			return true
		}
	}
	return false
}

// expand distributes spare room to weighted columns by weight, or evenly to
// every resizable column when none is weighted.
func (g *DataGrid) expand(spare int) {
	var weighted []int
	sum := 0.0
	for vi, ci := range g.vis {
		if c := g.columns[ci]; c.Weight > 0 && !c.fixed() {
			weighted = append(weighted, vi)
			sum += c.Weight
		}
	}
	if len(weighted) == 0 {
		g.grow(0, len(g.vis), spare)
		return
	}
	given := 0
	for _, vi := range weighted {
		c := g.columns[g.vis[vi]]
		share := int(float64(spare) * c.Weight / sum)
		if c.MaxWidth > 0 {
			share = min(share, max(c.MaxWidth-g.widths[vi], 0))
		}
		g.widths[vi] += share
		given += share
	}
	left := spare - given
	for left > 0 {
		progressed := false
		for _, vi := range weighted {
			if left == 0 {
				break
			}
			c := g.columns[g.vis[vi]]
			if c.MaxWidth > 0 && g.widths[vi] >= c.MaxWidth {
				continue
			}
			g.widths[vi]++
			left--
			progressed = true
		}
		if !progressed {
			break
		}
	}
}

// shrink narrows resizable columns, widest first, one column at a time.
func (g *DataGrid) shrink(excess int) {
	for excess > 0 {
		widest := -1
		for vi, ci := range g.vis {
			c := g.columns[ci]
			if c.fixed() || g.widths[vi] <= c.floor() {
				continue
			}
			if widest < 0 || g.widths[vi] > g.widths[widest] {
				widest = vi
			}
		}
		if widest < 0 {
			return
		}
		g.widths[widest]--
		excess--
	}
}

// separatorAfter reports whether a line is drawn between plan rows i and i+1.
func (g *DataGrid) separatorAfter(i int) bool {
	a, b := g.plan[i].kind, g.plan[i+1].kind
	if a == rowData && b == rowData {
		return g.borders.Rows
	}
	return g.borders.Sections
}

func (g *DataGrid) naturalWidth() int {
	g.prepare(0)
	g.measure()
	return g.tableWidth()
}

func (g *DataGrid) arrange(width int) int {
	g.prepare(0)
	g.measure()
	g.fit(width)
	// columns that cannot fit at their floor widths are dropped from the right
	for width > 0 && len(g.vis) > 1 && g.tableWidth() > width {
		dropped := len(g.vis) - 1
		g.prepare(dropped)
		g.measure()
		g.fit(width)
		Logger().Debug("grid column dropped", zap.Int("available", width), zap.Int("columns", dropped))
	}

	Logger().Debug("grid layout",
		zap.Int("available", width),
		zap.Ints("widths", g.widths),
		zap.Int("rows", len(g.rows)))

	if len(g.plan) == 0 {
		return 0
	}
	height := 0
	if g.borders.Top {
		height++
	}
	if g.borders.Bottom {
		height++
	}
	for i := range g.plan {
		row := &g.plan[i]
		row.height = 1
		for j := range row.cells {
			p := &row.cells[j]
			p.lines = WrapLines(p.source, g.spanWidth(p.first, p.span), g.wrap)
			row.height = max(row.height, len(p.lines))
		}
		height += row.height
		if i < len(g.plan)-1 && g.separatorAfter(i) {
			height++
		}
	}
	return height
}

// --- Rendering ---

// columnX returns the x offset of each visible column's cell area.
func (g *DataGrid) columnX(x int) []int {
	left, _ := g.edges()
	xs := make([]int, len(g.widths))
	pos := x + left
	for i, w := range g.widths {
		xs[i] = pos
		pos += g.padLeft + w + g.padRight + g.sepWidth()
	}
	return xs
}

func (g *DataGrid) draw(buf *Buffer, x, y, width, height int) {
	if len(g.plan) == 0 {
		return
	}
	xs := g.columnX(x)
	tw := g.tableWidth()

	if g.borders.Top {
		g.drawRule(buf, x, y, tw, xs, nil, g.plan[0].starts(), g.template.TopLeft, g.template.TopRight)
		y++
	}
	for i := range g.plan {
		row := &g.plan[i]
		g.drawRow(buf, x, y, tw, xs, row)
		y += row.height
		if i < len(g.plan)-1 && g.separatorAfter(i) {
			g.drawRule(buf, x, y, tw, xs, row.starts(), g.plan[i+1].starts(), g.template.TeeRight, g.template.TeeLeft)
			y++
		}
	}
	if g.borders.Bottom {
		g.drawRule(buf, x, y, tw, xs, g.plan[len(g.plan)-1].starts(), nil, g.template.BottomLeft, g.template.BottomRight)
	}
}

// drawRule draws a horizontal grid line; junctions follow the cell
// boundaries of the rows above and below.
func (g *DataGrid) drawRule(buf *Buffer, x, y, tw int, xs []int, above, below map[int]bool, leftEdge, rightEdge rune) {
	left, right := g.edges()
	st := g.borderStyle
	buf.HLine(x+left, y, tw-left-right, g.template.Horizontal, st)
	if left > 0 {
		buf.Set(x, y, NewChar(leftEdge, st))
	}
	if right > 0 {
		buf.Set(x+tw-1, y, NewChar(rightEdge, st))
	}
	if g.sepWidth() == 0 {
		return
	}
	for vi := 1; vi < len(xs); vi++ {
		if r := g.template.junction(above[vi], below[vi]); r != g.template.Horizontal {
			buf.Set(xs[vi]-1, y, NewChar(r, st))
		}
	}
}

func (g *DataGrid) drawRow(buf *Buffer, x, y, tw int, xs []int, row *planRow) {
	left, right := g.edges()
	st := g.borderStyle
	for dy := 0; dy < row.height; dy++ {
		if left > 0 {
			buf.Set(x, y+dy, NewChar(g.template.Vertical, st))
		}
		if right > 0 {
			buf.Set(x+tw-1, y+dy, NewChar(g.template.Vertical, st))
		}
		if g.sepWidth() > 0 {
			for _, p := range row.cells {
				if p.first > 0 {
					buf.Set(xs[p.first]-1, y+dy, NewChar(g.template.Vertical, st))
				}
			}
		}
	}

	for _, p := range row.cells {
		cx := xs[p.first]
		sw := g.spanWidth(p.first, p.span)
		if p.style.BG.Mode != ColorDefault {
			buf.FillRect(cx, y, g.padLeft+sw+g.padRight, row.height, NewChar(' ', p.style))
		}
		top := p.valign.offset(len(p.lines), row.height)
		for j, line := range p.lines {
			off := p.align.offset(DisplayWidth(line), sw)
			buf.WriteStringClipped(cx+g.padLeft+off, y+top+j, line, p.style, sw-off)
		}
	}
}
