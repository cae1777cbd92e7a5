package konsole

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// SpinnerFrames is an animation: the frames and how long each is shown.
type SpinnerFrames struct {
	Frames   []string
	Interval time.Duration
}

func framesOf(s spinner.Spinner) SpinnerFrames {
	return SpinnerFrames{Frames: s.Frames, Interval: s.FPS}
}

// Built-in frame sets.
var (
	SpinLine    = framesOf(spinner.Line)
	SpinDot     = framesOf(spinner.Dot)
	SpinMiniDot = framesOf(spinner.MiniDot)
	SpinPoints  = framesOf(spinner.Points)
	SpinPulse   = framesOf(spinner.Pulse)
	SpinGlobe   = framesOf(spinner.Globe)
	SpinMoon    = framesOf(spinner.Moon)
	SpinMeter   = framesOf(spinner.Meter)
	SpinASCII   = SpinnerFrames{Frames: []string{"|", "/", "-", "\\"}, Interval: 100 * time.Millisecond}
)

var spinnerSets = map[string]SpinnerFrames{
	"line":    SpinLine,
	"dot":     SpinDot,
	"minidot": SpinMiniDot,
	"points":  SpinPoints,
	"pulse":   SpinPulse,
	"globe":   SpinGlobe,
	"moon":    SpinMoon,
	"meter":   SpinMeter,
	"ascii":   SpinASCII,
}

// SpinnerByName resolves a frame set by name.
func SpinnerByName(name string) (SpinnerFrames, error) {
	if f, ok := spinnerSets[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}
	names := make([]string, 0, len(spinnerSets))
	for n := range spinnerSets {
		names = append(names, n)
	}
	sort.Strings(names)
	return SpinnerFrames{}, fmt.Errorf("%w: %q (have %s)", ErrUnknownSpinner, name, strings.Join(names, ", "))
}

// Spinner renders the current frame followed by a message. A LiveDisplay
// advances it on every tick.
type Spinner struct {
	Base
	mu         sync.Mutex
	frames     SpinnerFrames
	frame      int
	text       string
	frameStyle Style
}

// Spin creates a spinner with the line frame set.
func Spin(text string) *Spinner {
	s := &Spinner{frames: SpinLine, text: text}
	s.body = s
	s.style = DefaultStyle()
	s.frameStyle = DefaultStyle()
	return s
}

// Frames changes the frame set.
func (s *Spinner) Frames(f SpinnerFrames) *Spinner {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(f.Frames) > 0 {
		s.frames = f
		s.frame = 0
	}
	return s
}

// FrameFG colors the spinner frame.
func (s *Spinner) FrameFG(c Color) *Spinner {
	s.frameStyle.FG = c
	return s
}

// SetText replaces the message.
func (s *Spinner) SetText(text string) *Spinner {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	return s
}

// Next advances to the following frame.
func (s *Spinner) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = (s.frame + 1) % len(s.frames.Frames)
}

// Frame returns the current frame.
func (s *Spinner) Frame() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames.Frames[s.frame]
}

// Interval returns how long each frame should be shown.
func (s *Spinner) Interval() time.Duration {
	return s.frames.Interval
}

func (s *Spinner) tick() { s.Next() }

func (s *Spinner) frameWidth() int {
	w := 0
	for _, f := range s.frames.Frames {
		w = max(w, DisplayWidth(f))
	}
	return w
}

func (s *Spinner) naturalWidth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.frameWidth()
	if s.text != "" {
		w += 1 + DisplayWidth(s.text)
	}
	return w
}

func (s *Spinner) arrange(width int) int { return 1 }

func (s *Spinner) draw(buf *Buffer, x, y, width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fw := s.frameWidth()
	buf.WriteStringClipped(x, y, s.frames.Frames[s.frame], s.frameStyle, min(fw, width))
	if s.text == "" || fw+1 >= width {
		return
	}
	buf.WriteStringClipped(x+fw+1, y, s.text, s.style, width-fw-1)
}

func (s *Spinner) Margin(m Thickness) *Spinner { s.props.Margin = m.normalized(); return s }
