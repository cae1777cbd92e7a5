package main

import (
	"io"
	"strings"

	"github.com/kungfusheep/konsole"
	"github.com/spf13/cobra"
)

func newBoxCmd(a *app) *cobra.Command {
	var (
		title     string
		titleSide string
		align     string
		textAlign string
		padding   int
	)
	cmd := &cobra.Command{
		Use:   "box [TEXT...]",
		Short: "Frame text in a border",
		Long:  "Frame the arguments, or stdin when there are none, in a border.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}
			boxAlign, err := parseAlign(align)
			if err != nil {
				return err
			}
			inner, err := parseAlign(textAlign)
			if err != nil {
				return err
			}
			side, err := parseAlign(titleSide)
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			if len(args) == 0 {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = strings.TrimRight(string(b), "\n")
			}

			box := konsole.Boxed(konsole.Text(text).TextAlign(inner).Align(konsole.AlignStretch)).
				Border(s.border).
				Title(title).
				TitleAlign(side).
				Padding(konsole.VH(0, padding)).
				Align(boxAlign)
			if s.theme != nil {
				box.Theme(*s.theme)
			}
			return a.console(cmd.OutOrStdout(), s).Display(box)
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "title drawn into the top edge")
	cmd.Flags().StringVar(&titleSide, "title-align", "left", "title position: left, center or right")
	cmd.Flags().StringVarP(&align, "align", "a", "left", "box placement: left, center, right or stretch")
	cmd.Flags().StringVar(&textAlign, "text-align", "left", "text alignment inside the box")
	cmd.Flags().IntVarP(&padding, "padding", "p", 1, "columns of space either side of the text")
	return cmd
}
