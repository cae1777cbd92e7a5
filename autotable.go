package konsole

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cast"
)

// ColumnOption configures a single AutoGrid column.
type ColumnOption func(*ColumnConfig)

// ColumnConfig holds rendering configuration for one column.
type ColumnConfig struct {
	align    Align
	hasAlign bool // set explicitly, not derived from the field type
	format   func(any) string
	style    func(any) Style
	column   Column
}

// Align sets the column alignment.
func (c *ColumnConfig) Align(a Align) { c.align = a; c.hasAlign = true }

// Format sets a function that converts the field value to display text.
func (c *ColumnConfig) Format(fn func(any) string) { c.format = fn }

// Style sets a function that returns a per-cell style based on the field value.
func (c *ColumnConfig) Style(fn func(any) Style) { c.style = fn }

// Width fixes the column content width.
func (c *ColumnConfig) Width(w int) { c.column.Width = w }

// Limits clamps the column content width.
func (c *ColumnConfig) Limits(minWidth, maxWidth int) {
	c.column.MinWidth, c.column.MaxWidth = minWidth, maxWidth
}

// Weight makes the column take a share of spare room.
func (c *ColumnConfig) Weight(w float64) { c.column.Weight = w }

// ----------------------------------------------------------------------------
// format presets
// ----------------------------------------------------------------------------

// Number right-aligns numbers and groups thousands with commas, rounding
// to decimals places (at most 9).
func Number(decimals int) ColumnOption {
	return func(c *ColumnConfig) {
		c.Align(AlignRight)
		c.Format(func(v any) string { return formatNumber(v, decimals) })
	}
}

// Currency is Number with a symbol prefix.
func Currency(symbol string, decimals int) ColumnOption {
	return func(c *ColumnConfig) {
		c.Align(AlignRight)
		c.Format(func(v any) string { return symbol + formatNumber(v, decimals) })
	}
}

// Percent appends a percent sign to the value.
func Percent(decimals int) ColumnOption {
	return func(c *ColumnConfig) {
		c.Align(AlignRight)
		c.Format(func(v any) string {
			return strconv.FormatFloat(toFloat64(v), 'f', decimals, 64) + "%"
		})
	}
}

// PercentChange shows a signed percentage, green when the value is not
// negative and red when it is.
func PercentChange(decimals int) ColumnOption {
	return Combine(
		func(c *ColumnConfig) {
			c.Align(AlignRight)
			c.Format(func(v any) string {
				s := strconv.FormatFloat(toFloat64(v), 'f', decimals, 64) + "%"
				if !strings.HasPrefix(s, "-") {
					s = "+" + s
				}
				return s
			})
		},
		StyleSign(Style{FG: Green}, Style{FG: Red}),
	)
}

// Bytes shows a byte count in binary units: "512 B", "1.5 KiB".
func Bytes() ColumnOption {
	return func(c *ColumnConfig) {
		c.Align(AlignRight)
		c.Format(func(v any) string {
			f := toFloat64(v)
			if f < 0 {
				return "-" + humanize.IBytes(uint64(-f))
			}
			return humanize.IBytes(uint64(f))
		})
	}
}

// Bool formats boolean values with custom labels.
func Bool(yes, no string) ColumnOption {
	return func(c *ColumnConfig) {
		c.Align(AlignCenter)
		c.Format(func(v any) string {
			if b, ok := v.(bool); ok && b {
				return yes
			}
			return no
		})
	}
}

// ----------------------------------------------------------------------------
// style presets
// ----------------------------------------------------------------------------

// StyleSign colors cells based on the numeric sign of the value.
func StyleSign(positive, negative Style) ColumnOption {
	return func(c *ColumnConfig) {
		c.Style(func(v any) Style {
			if toFloat64(v) >= 0 {
				return positive
			}
			return negative
		})
	}
}

// StyleBool colors cells based on a boolean value.
func StyleBool(trueStyle, falseStyle Style) ColumnOption {
	return func(c *ColumnConfig) {
		c.Style(func(v any) Style {
			if b, ok := v.(bool); ok && b {
				return trueStyle
			}
			return falseStyle
		})
	}
}

// StyleThreshold colors cells based on numeric value thresholds.
// Values < low get belowStyle, low..high get betweenStyle, > high get aboveStyle.
func StyleThreshold(low, high float64, belowStyle, betweenStyle, aboveStyle Style) ColumnOption {
	return func(c *ColumnConfig) {
		c.Style(func(v any) Style {
			f := toFloat64(v)
			if f < low {
				return belowStyle
			}
			if f > high {
				return aboveStyle
			}
			return betweenStyle
		})
	}
}

// Combine applies several options to one column in order.
func Combine(opts ...ColumnOption) ColumnOption {
	return func(c *ColumnConfig) {
		for _, o := range opts {
			o(c)
		}
	}
}

// ----------------------------------------------------------------------------
// value helpers
// ----------------------------------------------------------------------------

// toFloat64 reads any numeric value, or a numeric string, as a float64.
// Anything else is 0.
func toFloat64(v any) float64 {
	if str, ok := v.(string); ok {
		v = strings.TrimSpace(str)
	}
	return cast.ToFloat64(v)
}

func formatNumber(v any, decimals int) string {
	return humanize.FormatFloat("#,###."+strings.Repeat("#", min(max(decimals, 0), 9)), toFloat64(v))
}

// compareValues orders two reflected values: numbers numerically, strings
// lexically, anything else by its %v form.
func compareValues(a, b reflect.Value) int {
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmpOrdered(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return cmpOrdered(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmpOrdered(a.Float(), b.Float())
	case reflect.String:
		return strings.Compare(a.String(), b.String())
	case reflect.Bool:
		return cmpOrdered(boolRank(a.Bool()), boolRank(b.Bool()))
	}
	return strings.Compare(fmt.Sprintf("%v", a.Interface()), fmt.Sprintf("%v", b.Interface()))
}

func cmpOrdered[T int64 | uint64 | float64 | int](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func numericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// ============================================================================
// AutoGrid builder
// ============================================================================

// AutoGrid builds a DataGrid from a slice of structs. Exported fields become
// columns, headed by the field name or its `konsole:"Header"` tag; a tag of
// "-" hides the field.
type AutoGrid struct {
	data        any
	columns     []string
	headers     []string
	configs     map[string]ColumnOption
	sortField   string
	sortAsc     bool
	headerStyle *Style
	altRowStyle *Style
	border      *BorderStyle
}

// GridOf starts an AutoGrid. Pass a slice like []MyStruct or []*MyStruct, or
// a pointer to one.
func GridOf(data any) *AutoGrid {
	return &AutoGrid{data: data}
}

// Columns selects which struct fields to display and in what order.
// Field names are case-sensitive and must match exported struct fields.
func (a *AutoGrid) Columns(names ...string) *AutoGrid {
	a.columns = names
	return a
}

// Headers sets custom header labels, parallel to the selected columns.
func (a *AutoGrid) Headers(names ...string) *AutoGrid {
	a.headers = names
	return a
}

// Column configures rendering for a struct field. The option can be a
// preset or a custom function:
//
//	GridOf(servers).
//	    Column("Memory", Bytes()).
//	    Column("Load", Combine(Percent(1), StyleThreshold(50, 90, ok, warn, bad))).
//	    Column("Name", func(c *ColumnConfig) { c.Weight(1) })
func (a *AutoGrid) Column(name string, opt ColumnOption) *AutoGrid {
	if a.configs == nil {
		a.configs = make(map[string]ColumnOption)
	}
	a.configs[name] = opt
	return a
}

// Sort orders rows by a field before building. The source slice is not modified.
func (a *AutoGrid) Sort(field string, asc bool) *AutoGrid {
	a.sortField, a.sortAsc = field, asc
	return a
}

// HeaderStyle sets the header row style.
func (a *AutoGrid) HeaderStyle(s Style) *AutoGrid {
	a.headerStyle = &s
	return a
}

// AltRowStyle styles every second row.
func (a *AutoGrid) AltRowStyle(s Style) *AutoGrid {
	a.altRowStyle = &s
	return a
}

// Border sets the border template.
func (a *AutoGrid) Border(b BorderStyle) *AutoGrid {
	a.border = &b
	return a
}

type autoField struct {
	name   string
	header string
	index  []int
	kind   reflect.Kind
	cfg    ColumnConfig
}

// Build reflects over the data and returns the grid.
func (a *AutoGrid) Build() (*DataGrid, error) {
	rv := reflect.ValueOf(a.data)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: got %T", ErrNotStructSlice, a.data)
	}
	elem := rv.Type().Elem()
	if elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: element type %s", ErrNotStructSlice, elem)
	}

	fields, err := a.fields(elem)
	if err != nil {
		return nil, err
	}

	rows := make([]reflect.Value, rv.Len())
	for i := range rows {
		rows[i] = derefValue(rv.Index(i))
	}
	if a.sortField != "" {
		sf, ok := elem.FieldByName(a.sortField)
		if !ok || !sf.IsExported() {
			return nil, fmt.Errorf("sort by %q: %w", a.sortField, ErrUnknownField)
		}
		slices.SortStableFunc(rows, func(x, y reflect.Value) int {
			if !x.IsValid() || !y.IsValid() {
				return cmpOrdered(boolRank(x.IsValid()), boolRank(y.IsValid()))
			}
			c := compareValues(x.FieldByIndex(sf.Index), y.FieldByIndex(sf.Index))
			if !a.sortAsc {
				c = -c
			}
			return c
		})
	}

	g := Table()
	for _, f := range fields {
		col := f.cfg.column
		col.Header = f.header
		switch {
		case f.cfg.hasAlign:
			col.Align = f.cfg.align
		case numericKind(f.kind):
			col.Align = AlignRight
		}
		g.AddColumn(col)
	}
	for _, row := range rows {
		cells := make([]any, len(fields))
		for i, f := range fields {
			cells[i] = a.cell(row, f)
		}
		g.Row(cells...)
	}
	if a.headerStyle != nil {
		g.HeaderStyle(*a.headerStyle)
	}
	if a.altRowStyle != nil {
		g.AltRowStyle(*a.altRowStyle)
	}
	if a.border != nil {
		g.Border(*a.border)
	}
	return g, nil
}

func (a *AutoGrid) fields(elem reflect.Type) ([]autoField, error) {
	var out []autoField
	add := func(sf reflect.StructField) {
		header := sf.Name
		if tag := sf.Tag.Get("konsole"); tag != "" {
			header = tag
		}
		f := autoField{name: sf.Name, header: header, index: sf.Index, kind: sf.Type.Kind()}
		if opt, ok := a.configs[sf.Name]; ok {
			opt(&f.cfg)
		}
		out = append(out, f)
	}

	if len(a.columns) > 0 {
		for _, name := range a.columns {
			sf, ok := elem.FieldByName(name)
			if !ok || !sf.IsExported() {
				return nil, fmt.Errorf("column %q: %w", name, ErrUnknownField)
			}
			add(sf)
		}
	} else {
		for i := 0; i < elem.NumField(); i++ {
			sf := elem.Field(i)
			if !sf.IsExported() || sf.Anonymous || sf.Tag.Get("konsole") == "-" {
				continue
			}
			add(sf)
		}
	}
	for i := range out {
		if i < len(a.headers) && a.headers[i] != "" {
			out[i].header = a.headers[i]
		}
	}
	return out, nil
}

func (a *AutoGrid) cell(row reflect.Value, f autoField) *GridCell {
	if !row.IsValid() {
		return Cell("")
	}
	v := row.FieldByIndex(f.index).Interface()
	var c *GridCell
	if f.cfg.format != nil {
		c = Cell(f.cfg.format(v))
	} else {
		c = Cell(v)
	}
	if f.cfg.style != nil {
		c.Style(f.cfg.style(v))
	}
	return c
}

func derefValue(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
