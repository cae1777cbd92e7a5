package konsole

import "testing"

func TestAttributeHas(t *testing.T) {
	a := AttrBold.With(AttrUnderline)
	if !a.Has(AttrBold) || !a.Has(AttrBold|AttrUnderline) {
		t.Errorf("%08b should have bold and underline", a)
	}
	if a.Has(AttrItalic) || a.Has(AttrBold|AttrItalic) {
		t.Errorf("%08b should not have italic", a)
	}
	if a.Has(AttrNone) {
		t.Error("Has(AttrNone) = true")
	}
}

func TestStyleOver(t *testing.T) {
	base := DefaultStyle().Foreground(White).Background(Blue).Bold()
	got := DefaultStyle().Foreground(Red).Italic().Over(base)
	want := Style{FG: Red, BG: Blue, Attr: AttrBold | AttrItalic}
	if got != want {
		t.Errorf("Over = %+v, want %+v", got, want)
	}
	if got := DefaultStyle().Over(base); got != base {
		t.Errorf("zero style over base = %+v, want %+v", got, base)
	}
}

func TestMergeBorders(t *testing.T) {
	tests := []struct {
		existing, new rune
		want          rune
		merged        bool
	}{
		{'─', '│', '┼', true},
		{'┌', '┐', '┬', true},
		{'│', '─', '┼', true},
		{'└', '┌', '├', true},
		{'╭', '─', '┬', true},
		{'─', '─', '─', true},
		{'x', '│', '│', false},
		{'─', 'x', 'x', false},
	}
	for _, tt := range tests {
		got, ok := mergeBorders(tt.existing, tt.new)
		if got != tt.want || ok != tt.merged {
			t.Errorf("mergeBorders(%q, %q) = %q, %v; want %q, %v", tt.existing, tt.new, got, ok, tt.want, tt.merged)
		}
	}
}

func TestStyleIsDefault(t *testing.T) {
	if !DefaultStyle().IsDefault() {
		t.Error("DefaultStyle().IsDefault() = false")
	}
	for _, st := range []Style{{FG: Red}, {BG: Blue}, DefaultStyle().Dim()} {
		if st.IsDefault() {
			t.Errorf("%+v reported as default", st)
		}
	}
}
