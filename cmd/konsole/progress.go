package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kungfusheep/konsole"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type progressOptions struct {
	total   int
	label   string
	spinner string
	tee     bool
}

func newProgressCmd(a *app) *cobra.Command {
	var o progressOptions
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show progress while reading lines from stdin",
		Long: `Count lines read from stdin as steps of work and draw a progress bar on
stderr. With --total 0 a spinner and the running count are shown instead.
--tee copies the input to stdout so progress can sit inside a pipeline.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.settings()
			if err != nil {
				return err
			}
			frames, err := konsole.SpinnerByName(o.spinner)
			if err != nil {
				return err
			}
			var out io.Writer
			if o.tee {
				out = cmd.OutOrStdout()
			}
			return a.runProgress(cmd.Context(), a.console(cmd.ErrOrStderr(), s), cmd.InOrStdin(), out, frames, o)
		},
	}
	cmd.Flags().IntVarP(&o.total, "total", "n", 0, "number of lines expected, 0 when unknown")
	cmd.Flags().StringVarP(&o.label, "label", "l", "", "text shown beside the bar")
	cmd.Flags().StringVar(&o.spinner, "spinner", "line", "spinner frames")
	cmd.Flags().BoolVar(&o.tee, "tee", false, "copy stdin to stdout")
	return cmd
}

func (a *app) runProgress(ctx context.Context, c *konsole.Console, in io.Reader, tee io.Writer, frames konsole.SpinnerFrames, o progressOptions) error {
	var count atomic.Int64

	spin := konsole.Spin(o.label).Frames(frames)
	view := func(n int) konsole.Component {
		if o.total <= 0 {
			return spin.SetText(fmt.Sprintf("%s %d", o.label, n))
		}
		bar := konsole.Progress(n, o.total).Align(konsole.AlignStretch).Grow(1)
		return konsole.HStack(spin, konsole.FixedSpacer(1), bar).Align(konsole.AlignStretch)
	}

	// The tick loop owns the drawn tree. It is rebuilt from the counter so
	// the reader goroutine never touches components being drawn.
	holder := konsole.VStack(view(0))
	live := konsole.Live(c, holder).Interval(80 * time.Millisecond)
	live.OnTick(func() {
		holder.Clear()
		holder.Add(view(int(count.Load())))
	})
	if err := live.Start(ctx); err != nil {
		return err
	}

	lines := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			if tee != nil {
				if _, err := fmt.Fprintln(tee, sc.Text()); err != nil {
					lines <- err
					return
				}
			}
			count.Add(1)
		}
		lines <- sc.Err()
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-lines:
	}
	n := int(count.Load())
	a.log.Debug("progress finished", zap.Int("lines", n), zap.Error(err))
	if derr := live.Done(finalView(n, o)); err == nil {
		err = derr
	}
	return err
}

// finalView is the last frame, built fresh so it shares nothing with the
// tree the tick loop may still be drawing.
func finalView(n int, o progressOptions) konsole.Component {
	if o.total <= 0 {
		return konsole.Text(strings.TrimSpace(fmt.Sprintf("%s %d", o.label, n)))
	}
	return konsole.Progress(n, o.total).Label(o.label).Align(konsole.AlignStretch)
}
