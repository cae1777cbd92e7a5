package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kungfusheep/konsole"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newChooseCmd(a *app) *cobra.Command {
	var (
		title string
		plain bool
	)
	cmd := &cobra.Command{
		Use:   "choose ITEM...",
		Short: "Pick one item from a menu and print it",
		Long: `Show ITEMs as a menu on stderr and print the chosen one on stdout.

On a terminal the menu scrolls and filters as you type. Otherwise, or with
--plain, items are numbered and the choice is read as a line from stdin.
Cancelling exits with status 1.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}
			items := make([]konsole.MenuItem, len(args))
			for i, text := range args {
				items[i] = konsole.MenuItem{ID: strconv.Itoa(i + 1), Text: text}
			}

			ui := a.console(cmd.ErrOrStderr(), s)
			in := cmd.InOrStdin()
			var chosen *konsole.MenuItem
			if plain || !interactive(in) {
				m := konsole.Menu(title, items...)
				if s.theme != nil {
					m.Theme(*s.theme)
				}
				chosen, err = m.Show(cmd.Context(), ui, in)
			} else {
				m := konsole.NewScrollMenu(title, items...)
				if s.theme != nil {
					m.Theme(*s.theme)
				}
				chosen, err = m.Run(cmd.Context(), ui, in)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), chosen.Text)
			return err
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "menu title")
	cmd.Flags().BoolVar(&plain, "plain", false, "numbered menu read line by line")
	return cmd
}

func interactive(in any) bool {
	f, ok := in.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
