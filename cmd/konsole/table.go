package main

import (
	"bufio"
	"cmp"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/kungfusheep/konsole"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var errEmptyInput = errors.New("no table data")

type tableOptions struct {
	format   string
	title    string
	footer   string
	stretch  bool
	rowLines bool
	noHeader bool
	watch    bool
}

func newTableCmd(a *app) *cobra.Command {
	var o tableOptions
	cmd := &cobra.Command{
		Use:   "table [FILE]",
		Short: "Render CSV, JSON or YAML data as a table",
		Long: `Render tabular data read from FILE, or stdin when FILE is omitted or "-".

CSV input uses the first record as the header. JSON and YAML input is
either a list of records, whose keys become columns in first-seen order,
or a mapping with "columns" and "rows" entries. Cells given as mappings
accept "text", "span" and "align".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			c := a.console(cmd.OutOrStdout(), s)
			if o.watch {
				if path == "-" {
					return errors.New("--watch needs a file")
				}
				return a.watchTable(cmd.Context(), c, path, s, o)
			}

			var g *konsole.DataGrid
			if path == "-" {
				g, err = loadGrid(cmd.InOrStdin(), path, s, o)
			} else {
				g, err = loadFile(path, s, o)
			}
			if err != nil {
				return err
			}
			return c.Display(g)
		},
	}
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "input format: csv, json or yaml (default from the file extension)")
	cmd.Flags().StringVarP(&o.title, "title", "t", "", "title row spanning the table")
	cmd.Flags().StringVar(&o.footer, "footer", "", "footer row spanning the table")
	cmd.Flags().BoolVarP(&o.stretch, "stretch", "s", false, "fill the output width")
	cmd.Flags().BoolVar(&o.rowLines, "row-lines", false, "draw lines between data rows")
	cmd.Flags().BoolVar(&o.noHeader, "no-header", false, "hide the header row")
	cmd.Flags().BoolVarP(&o.watch, "watch", "w", false, "redraw whenever FILE changes")
	return cmd
}

// tableData is the parsed form of any input format.
type tableData struct {
	columns []konsole.Column
	rows    [][]*konsole.GridCell
	title   string
	footer  string
}

func loadGrid(in io.Reader, path string, s settings, o tableOptions) (*konsole.DataGrid, error) {
	br := bufio.NewReader(in)
	var (
		d   *tableData
		err error
	)
	switch format := detectFormat(o.format, path, br); format {
	case "csv":
		d, err = loadCSV(br)
	case "json", "yaml", "yml":
		d, err = loadYAML(br)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return buildGrid(d, s, o)
}

// detectFormat picks the format from the flag, the file extension, or the
// first byte of the input: JSON and YAML lists or objects go to the YAML
// decoder, anything else is read as CSV.
func detectFormat(flag, path string, br *bufio.Reader) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."); ext != "" && path != "-" {
		return ext
	}
	for {
		b, err := br.Peek(1)
		if err != nil {
			return "csv"
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			_, _ = br.ReadByte()
			continue
		case '[', '{', '-':
			return "yaml"
		}
		return "csv"
	}
}

func loadCSV(r io.Reader) (*tableData, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errEmptyInput
	}
	d := &tableData{}
	for _, h := range records[0] {
		d.columns = append(d.columns, konsole.Column{Header: h})
	}
	for _, rec := range records[1:] {
		row := make([]*konsole.GridCell, len(rec))
		for i, v := range rec {
			row[i] = konsole.Cell(v)
		}
		d.rows = append(d.rows, row)
	}
	return d, nil
}

type columnSpec struct {
	Header   string  `yaml:"header"`
	Align    string  `yaml:"align"`
	Width    int     `yaml:"width"`
	MinWidth int     `yaml:"min_width"`
	MaxWidth int     `yaml:"max_width"`
	Weight   float64 `yaml:"weight"`
	Hidden   bool    `yaml:"hidden"`
}

type cellSpec struct {
	Text  string `yaml:"text"`
	Span  int    `yaml:"span"`
	Align string `yaml:"align"`
}

func loadYAML(r io.Reader) (*tableData, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyInput
		}
		return nil, fmt.Errorf("parse: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	switch root.Kind {
	case yaml.SequenceNode:
		d := &tableData{}
		return d, d.addRecords(root.Content)
	case yaml.MappingNode:
		return fromLayout(root)
	}
	return nil, fmt.Errorf("line %d: want a list of records or a mapping with columns and rows", root.Line)
}

// fromLayout reads the explicit form: columns, rows, title and footer.
func fromLayout(m *yaml.Node) (*tableData, error) {
	d := &tableData{}
	var rows *yaml.Node
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i].Value, m.Content[i+1]
		switch key {
		case "columns":
			if val.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("line %d: columns must be a list", val.Line)
			}
			for _, n := range val.Content {
				col, err := columnOf(n)
				if err != nil {
					return nil, err
				}
				d.columns = append(d.columns, col)
			}
		case "rows":
			rows = val
		case "title":
			d.title = val.Value
		case "footer":
			d.footer = val.Value
		default:
			return nil, fmt.Errorf("line %d: unknown key %q", m.Content[i].Line, key)
		}
	}
	if rows == nil {
		return d, nil
	}
	if rows.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: rows must be a list", rows.Line)
	}
	for _, n := range rows.Content {
		if n.Kind == yaml.MappingNode {
			if err := d.addRecords([]*yaml.Node{n}); err != nil {
				return nil, err
			}
			continue
		}
		if n.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("line %d: a row must be a list of cells or a record", n.Line)
		}
		row := make([]*konsole.GridCell, 0, len(n.Content))
		for _, c := range n.Content {
			cell, err := cellOf(c)
			if err != nil {
				return nil, err
			}
			row = append(row, cell)
		}
		d.rows = append(d.rows, row)
	}
	return d, nil
}

func columnOf(n *yaml.Node) (konsole.Column, error) {
	if n.Kind == yaml.ScalarNode {
		return konsole.Column{Header: n.Value}, nil
	}
	var spec columnSpec
	if err := n.Decode(&spec); err != nil {
		return konsole.Column{}, fmt.Errorf("line %d: column: %w", n.Line, err)
	}
	align, err := parseAlign(spec.Align)
	if err != nil {
		return konsole.Column{}, fmt.Errorf("line %d: %w", n.Line, err)
	}
	return konsole.Column{
		Header:   spec.Header,
		Width:    spec.Width,
		MinWidth: spec.MinWidth,
		MaxWidth: spec.MaxWidth,
		Weight:   spec.Weight,
		Align:    align,
		Hidden:   spec.Hidden,
	}, nil
}

func cellOf(n *yaml.Node) (*konsole.GridCell, error) {
	if n.Kind != yaml.MappingNode {
		return konsole.Cell(nodeText(n)), nil
	}
	var spec cellSpec
	if err := n.Decode(&spec); err != nil {
		return nil, fmt.Errorf("line %d: cell: %w", n.Line, err)
	}
	align, err := parseAlign(spec.Align)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}
	return konsole.Cell(spec.Text).Span(max(spec.Span, 1)).Align(align), nil
}

// addRecords appends mapping rows, adding a column for each new key.
func (d *tableData) addRecords(records []*yaml.Node) error {
	index := make(map[string]int, len(d.columns))
	for i, c := range d.columns {
		index[c.Header] = i
	}
	for _, rec := range records {
		if rec.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: record is not a mapping", rec.Line)
		}
		values := make(map[int]string, len(rec.Content)/2)
		for i := 0; i+1 < len(rec.Content); i += 2 {
			key := rec.Content[i].Value
			col, ok := index[key]
			if !ok {
				col = len(d.columns)
				index[key] = col
				d.columns = append(d.columns, konsole.Column{Header: key})
			}
			values[col] = nodeText(rec.Content[i+1])
		}
		row := make([]*konsole.GridCell, len(d.columns))
		for i := range row {
			row[i] = konsole.Cell(values[i])
		}
		d.rows = append(d.rows, row)
	}
	return nil
}

// nodeText flattens a value into cell text. Lists become one line per item.
func nodeText(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return ""
		}
		return n.Value
	case yaml.SequenceNode:
		parts := make([]string, len(n.Content))
		for i, c := range n.Content {
			parts[i] = nodeText(c)
		}
		return strings.Join(parts, "\n")
	case yaml.AliasNode:
		if n.Alias != nil {
			return nodeText(n.Alias)
		}
	}
	out, err := yaml.Marshal(n)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func parseAlign(s string) (konsole.Align, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	a := konsole.ParseAlign(s)
	if a == konsole.AlignDefault && s != "" && s != "default" {
		return a, fmt.Errorf("unknown alignment %q", s)
	}
	return a, nil
}

func buildGrid(d *tableData, s settings, o tableOptions) (*konsole.DataGrid, error) {
	g := konsole.Table().Border(s.border)
	for _, c := range d.columns {
		g.AddColumn(c)
	}
	for _, r := range d.rows {
		cells := make([]any, len(r))
		for i, c := range r {
			cells[i] = c
		}
		g.Row(cells...)
	}
	if title := cmp.Or(o.title, d.title); title != "" {
		g.Title(title)
	}
	if footer := cmp.Or(o.footer, d.footer); footer != "" {
		g.Footer(footer)
	}
	if o.rowLines {
		g.Borders(konsole.BordersAll)
	}
	if o.noHeader {
		g.HideHeader()
	}
	if o.stretch {
		g.Align(konsole.AlignStretch)
	}
	if s.theme != nil {
		g.Theme(*s.theme)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// watchTable redraws the table every time the file is written. Load errors
// are shown in place of the table so an editor save mid-change does not end
// the session.
func (a *app) watchTable(ctx context.Context, c *konsole.Console, path string, s settings, o tableOptions) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	// Editors often replace the file, so watch its directory.
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	view := konsole.VStack()
	live := konsole.Live(c, view)
	show := func() error {
		view.Clear()
		g, err := loadFile(path, s, o)
		if err != nil {
			view.Add(konsole.Text(err.Error()).FG(konsole.Red))
		} else {
			view.Add(g)
		}
		if !c.Terminal() {
			return c.Display(view)
		}
		return live.Refresh()
	}
	if err := show(); err != nil {
		return err
	}

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			a.log.Debug("table file changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if err := show(); err != nil {
				return err
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watcher error", zap.Error(err))
		}
	}
}

func loadFile(path string, s settings, o tableOptions) (*konsole.DataGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return loadGrid(f, path, s, o)
}
