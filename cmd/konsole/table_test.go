package main

import (
	"bufio"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kungfusheep/konsole"
)

func texts(d *tableData) (headers []string, rows [][]string) {
	for _, c := range d.columns {
		headers = append(headers, c.Header)
	}
	for _, r := range d.rows {
		var row []string
		for _, c := range r {
			row = append(row, c.Text())
		}
		rows = append(rows, row)
	}
	return headers, rows
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		flag, path, input string
		want              string
	}{
		{"JSON", "-", "a,b", "json"},
		{"", "data.csv", "[1]", "csv"},
		{"", "data.yml", "", "yml"},
		{"", "-", "  \n[{\"a\": 1}]", "yaml"},
		{"", "-", "- a: 1", "yaml"},
		{"", "-", "a,b\n1,2", "csv"},
		{"", "-", "", "csv"},
	}
	for _, tt := range tests {
		br := bufio.NewReader(strings.NewReader(tt.input))
		if got := detectFormat(tt.flag, tt.path, br); got != tt.want {
			t.Errorf("detectFormat(%q, %q, %q) = %q, want %q", tt.flag, tt.path, tt.input, got, tt.want)
		}
	}
}

func TestLoadCSV(t *testing.T) {
	d, err := loadCSV(strings.NewReader("name, qty\napple,3\nkiwi\n"))
	if err != nil {
		t.Fatal(err)
	}
	headers, rows := texts(d)
	if diff := cmp.Diff([]string{"name", "qty"}, headers); diff != "" {
		t.Errorf("headers (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"apple", "3"}, {"kiwi"}}, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}

	if _, err := loadCSV(strings.NewReader("")); !errors.Is(err, errEmptyInput) {
		t.Errorf("empty input err = %v", err)
	}
	if _, err := loadCSV(strings.NewReader("a,\"b\n")); err == nil {
		t.Error("unterminated quote should fail")
	}
}

func TestLoadYAMLRecords(t *testing.T) {
	in := `
- {b: 1, a: x}
- {a: y, c: [p, q], d: null}
`
	d, err := loadYAML(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	headers, rows := texts(d)
	if diff := cmp.Diff([]string{"b", "a", "c", "d"}, headers); diff != "" {
		t.Errorf("headers keep first-seen order (-want +got):\n%s", diff)
	}
	want := [][]string{
		{"1", "x"},
		{"", "y", "p\nq", ""},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}

func TestLoadYAMLJSON(t *testing.T) {
	d, err := loadYAML(strings.NewReader(`[{"host": "db", "up": true}]`))
	if err != nil {
		t.Fatal(err)
	}
	headers, rows := texts(d)
	if diff := cmp.Diff([]string{"host", "up"}, headers); diff != "" {
		t.Errorf("headers (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"db", "true"}}, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}

func TestLoadYAMLLayout(t *testing.T) {
	in := `
title: Disks
footer: checked
columns:
  - Mount
  - {header: Used, align: right, weight: 2}
rows:
  - [/, 40%]
  - [{text: total 1 disk, span: 2}]
  - {Mount: /home, Used: 7%}
`
	d, err := loadYAML(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if d.title != "Disks" || d.footer != "checked" {
		t.Errorf("title, footer = %q, %q", d.title, d.footer)
	}
	wantCols := []konsole.Column{
		{Header: "Mount"},
		{Header: "Used", Align: konsole.AlignRight, Weight: 2},
	}
	if diff := cmp.Diff(wantCols, d.columns); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
	_, rows := texts(d)
	want := [][]string{{"/", "40%"}, {"total 1 disk"}, {"/home", "7%"}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}

func TestLoadYAMLErrors(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"scalar", "hello", "want a list of records"},
		{"unknown key", "colums: [a]", `unknown key "colums"`},
		{"columns not list", "columns: a", "columns must be a list"},
		{"bad row", "rows: [a]", "a row must be a list"},
		{"bad record", "[1, 2]", "record is not a mapping"},
		{"bad align", "columns: [{header: a, align: up}]", `unknown alignment "up"`},
		{"syntax", "[a", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadYAML(strings.NewReader(tt.in))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}

	if _, err := loadYAML(strings.NewReader("")); !errors.Is(err, errEmptyInput) {
		t.Errorf("empty input err = %v", err)
	}
}

func TestBuildGrid(t *testing.T) {
	d := &tableData{
		columns: []konsole.Column{{Header: "k"}, {Header: "v"}},
		rows: [][]*konsole.GridCell{
			{konsole.Cell("a"), konsole.Cell("1")},
			{konsole.Cell("b"), konsole.Cell("2")},
		},
		title: "from data",
	}
	s := settings{border: konsole.BorderASCII}
	g, err := buildGrid(d, s, tableOptions{title: "T", rowLines: true, noHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"+-------+",
		"|   T   |",
		"+---+---+",
		"| a | 1 |",
		"+---+---+",
		"| b | 2 |",
		"+---+---+",
	}
	if diff := cmp.Diff(want, konsole.RenderLines(g, 0)); diff != "" {
		t.Errorf("render (-want +got):\n%s", diff)
	}

	bad := &tableData{columns: []konsole.Column{{Header: "x", MinWidth: 5, MaxWidth: 2}}}
	if _, err := buildGrid(bad, s, tableOptions{}); err == nil {
		t.Error("invalid column should fail validation")
	}
}
