package konsole

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// LineReader returns a buffered reader over in, reusing in when it already
// is one. Share the result between prompts so buffered input is not lost.
func LineReader(in io.Reader) *bufio.Reader {
	if br, ok := in.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(in)
}

type lineResult struct {
	line string
	err  error
}

// lineFeed owns the reads of one bufio.Reader. At most one read is in flight;
// a read abandoned by a canceled caller is handed to the next caller.
type lineFeed struct {
	r        *bufio.Reader
	res      chan lineResult
	inflight bool
}

var (
	feedsMu sync.Mutex
	feeds   = map[*bufio.Reader]*lineFeed{}
)

// next returns the channel the next line arrives on, starting a read unless
// one is already pending.
func (f *lineFeed) next() <-chan lineResult {
	if !f.inflight {
		f.inflight = true
		go func() {
			s, err := f.r.ReadString('\n')
			f.res <- lineResult{s, err}
		}()
	}
	return f.res
}

// readLine reads one line, honouring ctx. End of input with nothing read is
// ErrCanceled. A line that arrives after ctx ends goes to the next readLine
// on the same reader.
func readLine(ctx context.Context, r *bufio.Reader) (string, error) {
	feedsMu.Lock()
	f, ok := feeds[r]
	if !ok {
		f = &lineFeed{r: r, res: make(chan lineResult, 1)}
		feeds[r] = f
	}
	ch := f.next()
	feedsMu.Unlock()

	var res lineResult
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res = <-ch:
	}
	feedsMu.Lock()
	f.inflight = false
	if res.err != nil {
		delete(feeds, r)
	}
	feedsMu.Unlock()

	line := strings.TrimRight(res.line, "\r\n")
	switch {
	case res.err == nil:
		return line, nil
	case errors.Is(res.err, io.EOF) && res.line != "":
		return line, nil
	case errors.Is(res.err, io.EOF):
		return "", ErrCanceled
	}
	return "", res.err
}

// terminalFd returns the descriptor of in when it is a terminal.
func terminalFd(in io.Reader) (int, bool) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	return int(f.Fd()), true
}

// PauseControl waits for the user before continuing.
type PauseControl struct {
	Text string
}

// Pause creates a pause control with the default text.
func Pause() *PauseControl {
	return &PauseControl{Text: "Press any key to continue..."}
}

// Wait writes the text and blocks for one key on a terminal, or one line
// otherwise.
func (p *PauseControl) Wait(ctx context.Context, c *Console, in io.Reader) error {
	if err := c.Printf("%s", p.Text); err != nil {
		return err
	}
	defer c.WriteLine("")

	fd, ok := terminalFd(in)
	if !ok {
		_, err := readLine(ctx, LineReader(in))
		return err
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(fd, state)

	ch := make(chan error, 1)
	go func() {
		var b [1]byte
		_, err := in.Read(b[:])
		ch <- err
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-ch:
		if errors.Is(err, io.EOF) {
			return ErrCanceled
		}
		return err
	}
}

// Prompt asks for a value until one parses and validates.
type Prompt[T any] struct {
	Label      string
	Default    string // used for empty input, shown in brackets
	Parse      func(string) (T, error)
	Validate   []func(T) error
	AllowEmpty bool // accept empty input as the zero value
	Masked     bool // do not echo input on terminals
	ErrorStyle Style

	hint string // shown in brackets instead of Default
}

// Ask prompts on c and reads from in. End of input is ErrCanceled.
func (p *Prompt[T]) Ask(ctx context.Context, c *Console, in io.Reader) (T, error) {
	var zero T
	var r *bufio.Reader
	for {
		label := p.Label
		switch {
		case p.hint != "":
			label += " [" + p.hint + "]"
		case p.Default != "" && !p.Masked:
			label += " [" + p.Default + "]"
		}
		if err := c.Printf("%s: ", label); err != nil {
			return zero, err
		}

		var text string
		var err error
		if fd, ok := terminalFd(in); ok && p.Masked {
			var b []byte
			b, err = term.ReadPassword(fd)
			c.WriteLine("")
			text = string(b)
		} else {
			if r == nil {
				r = LineReader(in)
			}
			text, err = readLine(ctx, r)
		}
		if err != nil {
			return zero, err
		}

		text = strings.TrimSpace(text)
		if text == "" {
			text = p.Default
		}
		if text == "" && !p.AllowEmpty {
			p.complain(c, errors.New("a value is required"))
			continue
		}
		if text == "" {
			return zero, nil
		}

		v, err := p.Parse(text)
		if err != nil {
			p.complain(c, err)
			continue
		}
		if err := p.check(v); err != nil {
			p.complain(c, err)
			continue
		}
		return v, nil
	}
}

func (p *Prompt[T]) check(v T) error {
	for _, fn := range p.Validate {
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}

func (p *Prompt[T]) complain(c *Console, err error) {
	Logger().Debug("prompt rejected input", zap.String("label", p.Label), zap.Error(err))
	st := p.ErrorStyle
	if st.IsDefault() {
		st = Style{FG: Red}
	}
	c.WriteLine(c.Styled("  "+err.Error(), st))
}

// StringPrompt asks for text.
func StringPrompt(label string, validators ...StringValidator) *Prompt[string] {
	p := &Prompt[string]{
		Label: label,
		Parse: func(s string) (string, error) { return s, nil },
	}
	for _, v := range validators {
		p.Validate = append(p.Validate, v)
	}
	return p
}

// IntPrompt asks for a whole number.
func IntPrompt(label string, validators ...IntValidator) *Prompt[int] {
	p := &Prompt[int]{
		Label: label,
		Parse: func(s string) (int, error) {
			n, err := strconv.Atoi(s)
			if err != nil {
				return 0, fmt.Errorf("%q is not a number", s)
			}
			return n, nil
		},
	}
	for _, v := range validators {
		p.Validate = append(p.Validate, v)
	}
	return p
}

// YesNoPrompt asks a yes/no question with a default answer.
func YesNoPrompt(label string, def bool) *Prompt[bool] {
	p := &Prompt[bool]{Label: label, Default: "no", Parse: parseYesNo, hint: "y/N"}
	if def {
		p.Default, p.hint = "yes", "Y/n"
	}
	return p
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes", "true", "1":
		return true, nil
	case "n", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("answer yes or no")
}
