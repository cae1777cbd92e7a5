package konsole

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// animator is a component that changes on every LiveDisplay tick.
type animator interface {
	tick()
}

// LiveDisplay redraws a component in place on a ticker, for spinners and
// progress bars. On a terminal each frame overwrites the previous one; on
// anything else only the final frame is written.
type LiveDisplay struct {
	console  *Console
	comp     Component
	interval time.Duration
	onTick   func()

	mu      sync.Mutex
	lines   int // rows written by the last frame
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// Live creates a live display for comp. The default interval is 100ms.
func Live(c *Console, comp Component) *LiveDisplay {
	return &LiveDisplay{console: c, comp: comp, interval: 100 * time.Millisecond}
}

// Interval sets the redraw interval.
func (l *LiveDisplay) Interval(d time.Duration) *LiveDisplay {
	if d > 0 {
		l.interval = d
	}
	return l
}

// OnTick registers a function called before each redraw.
func (l *LiveDisplay) OnTick(fn func()) *LiveDisplay {
	l.onTick = fn
	return l
}

// Running reports whether the tick loop is active.
func (l *LiveDisplay) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Start draws the first frame and starts the tick loop. It is a no-op on a
// running display. The loop ends when ctx is done or Stop is called.
func (l *LiveDisplay) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return nil
	}
	if l.console.Terminal() {
		if err := l.console.Printf("%s", hideCursor); err != nil {
			return err
		}
	}
	if err := l.redrawLocked(); err != nil {
		return err
	}
	ctx, l.cancel = context.WithCancel(ctx)
	l.done = make(chan struct{})
	l.running = true
	go l.loop(ctx, l.done)
	return nil
}

func (l *LiveDisplay) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(l.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if l.onTick != nil {
				l.onTick()
			}
			l.mu.Lock()
			advance(l.comp)
			err := l.redrawLocked()
			l.mu.Unlock()
			if err != nil {
				Logger().Warn("live redraw failed", zap.Error(err))
				return
			}
		}
	}
}

// advance ticks every animator in the component tree.
func advance(c Component) {
	if a, ok := c.(animator); ok {
		a.tick()
	}
	if ct, ok := c.(Container); ok {
		for _, child := range ct.Children() {
			advance(child)
		}
	}
}

// Refresh redraws the component now.
func (l *LiveDisplay) Refresh() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.redrawLocked()
}

func (l *LiveDisplay) redrawLocked() error {
	if !l.console.Terminal() {
		return nil
	}
	lines := l.console.Render(l.comp)
	out := frame(lines, l.lines)
	l.lines = len(lines)
	return l.console.Printf("%s", out)
}

// Stop ends the tick loop, waits for it to exit and draws the final frame.
func (l *LiveDisplay) Stop() error {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return nil
	}
	cancel, done := l.cancel, l.done
	l.running = false
	l.mu.Unlock()

	cancel()
	<-done

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.console.Terminal() {
		return l.console.writeLines(l.console.Render(l.comp))
	}
	err := l.redrawLocked()
	if perr := l.console.Printf("%s", showCursor); err == nil {
		err = perr
	}
	return err
}

// Done stops the display and replaces its last frame with final. On a
// display that is not running, final is simply written.
func (l *LiveDisplay) Done(final Component) error {
	l.mu.Lock()
	running := l.running
	if final != nil {
		l.comp = final
	}
	l.mu.Unlock()
	if !running {
		if final == nil {
			return nil
		}
		return l.console.Display(final)
	}
	return l.Stop()
}
