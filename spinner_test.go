package konsole

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSpinner(t *testing.T) {
	s := Spin("loading").Frames(SpinASCII)

	if diff := cmp.Diff([]string{"| loading"}, RenderLines(s, 0)); diff != "" {
		t.Errorf("render (-want +got):\n%s", diff)
	}
	s.Next()
	s.SetText("almost")
	if diff := cmp.Diff([]string{"/ almost"}, RenderLines(s, 0)); diff != "" {
		t.Errorf("render (-want +got):\n%s", diff)
	}
	for range 3 {
		s.tick()
	}
	if s.Frame() != "|" {
		t.Errorf("frame = %q, want to wrap back to |", s.Frame())
	}
}

func TestSpinnerNarrow(t *testing.T) {
	got := RenderLines(Spin("loading").Frames(SpinASCII), 5)
	if diff := cmp.Diff([]string{"| loa"}, got); diff != "" {
		t.Errorf("render (-want +got):\n%s", diff)
	}
}

func TestSpinnerFramesKeepWidth(t *testing.T) {
	s := Spin("x").Frames(SpinnerFrames{Frames: []string{".", "..", "..."}})
	w, _ := s.MinSize()
	if w != 5 {
		t.Errorf("width = %d, want the widest frame plus text (5)", w)
	}
	if diff := cmp.Diff([]string{".   x"}, RenderLines(s, 0)); diff != "" {
		t.Errorf("render (-want +got):\n%s", diff)
	}
}

func TestSpinnerByName(t *testing.T) {
	f, err := SpinnerByName("Dot")
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Frames) == 0 || f.Interval <= 0 {
		t.Errorf("dot frames = %+v", f)
	}
	if _, err := SpinnerByName("wobble"); !errors.Is(err, ErrUnknownSpinner) {
		t.Errorf("err = %v, want ErrUnknownSpinner", err)
	}
	// an empty frame set leaves the spinner unchanged
	s := Spin("").Frames(SpinnerFrames{})
	if s.Frame() != SpinLine.Frames[0] {
		t.Errorf("frame = %q", s.Frame())
	}
}
