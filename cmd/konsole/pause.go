package main

import (
	"strings"

	"github.com/kungfusheep/konsole"
	"github.com/spf13/cobra"
)

func newPauseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pause [TEXT...]",
		Short: "Wait for a key press",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}
			p := konsole.Pause()
			if len(args) > 0 {
				p.Text = strings.Join(args, " ")
			}
			return p.Wait(cmd.Context(), a.console(cmd.ErrOrStderr(), s), cmd.InOrStdin())
		},
	}
}
