package konsole_test

import (
	"context"
	"fmt"
	"os"
	"strings"

	. "github.com/kungfusheep/konsole"
)

func printLines(lines []string) {
	for _, l := range lines {
		fmt.Println(l)
	}
}

// Basic table.
// Columns size to their widest cell; numbers are just values.
func ExampleTable() {
	g := Table("Name", "Qty").
		Row("apple", 3).
		Row("kiwi", 12)

	printLines(RenderLines(g, 0))
	// Output:
	// ┌───────┬─────┐
	// │ Name  │ Qty │
	// ├───────┼─────┤
	// │ apple │ 3   │
	// │ kiwi  │ 12  │
	// └───────┴─────┘
}

// Spanning cells.
// A title spans the whole grid, Span joins columns, junctions follow the cells.
func ExampleCell_span() {
	g := Table("A", "B").
		Title("Report").
		Row(Cell("wide cell").Span(2)).
		Footer("end")

	printLines(RenderLines(g, 0))
	// Output:
	// ┌───────────┐
	// │  Report   │
	// ├──────┬────┤
	// │ A    │ B  │
	// ├──────┴────┤
	// │ wide cell │
	// ├───────────┤
	// │ end       │
	// └───────────┘
}

// Tables from structs.
// Exported fields become columns. Numeric columns align right.
func ExampleGridOf() {
	type Service struct {
		Name string
		Load float64
	}
	rows := []Service{{"api", 42.5}, {"db", 7.5}}

	g, err := GridOf(rows).Column("Load", Number(1)).Build()
	if err != nil {
		fmt.Println(err)
		return
	}
	printLines(RenderLines(g, 0))
	// Output:
	// ┌──────┬──────┐
	// │ Name │ Load │
	// ├──────┼──────┤
	// │ api  │ 42.5 │
	// │ db   │  7.5 │
	// └──────┴──────┘
}

// Bordered box.
// The title is drawn into the top edge.
func ExampleBoxed() {
	printLines(RenderLines(Boxed(Text("content")).Title("T"), 0))
	// Output:
	// ┌─ T ───┐
	// │content│
	// └───────┘
}

// Progress bar.
// The value text is padded so the bar does not move as it grows.
func ExampleProgress() {
	printLines(RenderLines(Progress(5, 10).BarWidth(10), 0))
	// Output:
	// [█████░░░░░]  50%
}

// Console output.
// A fixed width console without color, as used when piping.
func ExampleConsole_Display() {
	c := NewConsole(os.Stdout, WithWidth(20), WithColor(ColorNever))
	c.Display(Title("Report", Text("v1")))
	// Output:
	// Report            v1
}

// Prompts.
// Input is read line by line; a shared reader keeps buffered input.
func ExampleStringPrompt() {
	c := NewConsole(os.Stdout, WithColor(ColorNever))
	name, _ := StringPrompt("Name", VRequired).Ask(context.Background(), c, strings.NewReader("bob\n"))
	fmt.Println("hello,", name)
	// Output:
	// Name: hello, bob
}

// Text menu.
// The chosen item's action runs before Show returns.
func ExampleTextMenu_Show() {
	c := NewConsole(os.Stdout, WithWidth(30), WithColor(ColorNever))
	m := Menu("Main",
		MenuItem{ID: "1", Text: "Open"},
		MenuItem{ID: "q", Text: "Quit", Action: func(context.Context) error {
			fmt.Println("bye")
			return nil
		}},
	)
	m.Show(context.Background(), c, strings.NewReader("q\n"))
	// Output:
	// Main
	// 1 - Open
	// q - Quit
	// > bye
}
