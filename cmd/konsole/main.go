// Command konsole renders tables, boxes, menus and progress bars from the
// shell, driving the konsole widget library.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/kungfusheep/konsole"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, konsole.ErrCanceled) && !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "konsole:", err)
		}
		stop()
		os.Exit(1)
	}
}
