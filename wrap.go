package konsole

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// WrapMode controls how text is broken to fit a width.
type WrapMode uint8

const (
	WrapWord WrapMode = iota // break at spaces, hard-break words longer than the width
	WrapChar                 // break at exactly the width
	WrapNone                 // keep lines whole
)

// Overflow controls what happens to unwrapped text wider than its box.
type Overflow uint8

const (
	OverflowClip     Overflow = iota
	OverflowEllipsis          // cut with "…"
)

const tabWidth = 4

// DisplayWidth returns the number of terminal columns s occupies.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate cuts s to at most width columns, ending in "…" when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// SplitLines splits text into lines, normalising \r\n and expanding tabs.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if strings.IndexByte(l, '\t') >= 0 {
			lines[i] = expandTabs(l)
		}
	}
	return lines
}

func expandTabs(line string) string {
	var sb strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}

// MaxLineWidth returns the widest line's display width.
func MaxLineWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, DisplayWidth(l))
	}
	return w
}

// Wrap breaks text into display lines no wider than width.
// A width of 0 or less disables wrapping.
func Wrap(text string, width int, mode WrapMode) []string {
	return WrapLines(SplitLines(text), width, mode)
}

// WrapLines wraps lines that have already been split.
func WrapLines(lines []string, width int, mode WrapMode) []string {
	if width <= 0 || mode == WrapNone {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if DisplayWidth(l) <= width {
			out = append(out, l)
			continue
		}
		if mode == WrapChar {
			out = append(out, wrapChars(l, width)...)
		} else {
			out = append(out, wrapWords(l, width)...)
		}
	}
	return out
}

// cutWidth splits s after at most width columns, always taking at least one rune.
func cutWidth(s string, width int) (head, rest string) {
	col := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if col+rw > width && i > 0 {
			return s[:i], s[i:]
		}
		col += rw
	}
	return s, ""
}

func wrapChars(line string, width int) []string {
	var out []string
	for DisplayWidth(line) > width {
		head, rest := cutWidth(line, width)
		out = append(out, head)
		line = rest
	}
	return append(out, line)
}

// tokens splits a line into alternating runs of spaces and non-spaces.
func tokens(line string) []string {
	var toks []string
	start := 0
	inSpace := false
	for i, r := range line {
		sp := unicode.IsSpace(r)
		if i > start && sp != inSpace {
			toks = append(toks, line[start:i])
			start = i
		}
		inSpace = sp
	}
	if start < len(line) {
		toks = append(toks, line[start:])
	}
	return toks
}

func wrapWords(line string, width int) []string {
	var out []string
	var cur strings.Builder
	curW := 0
	pending := ""

	flush := func() {
		out = append(out, cur.String())
		cur.Reset()
		curW = 0
	}

	for _, tok := range tokens(line) {
		if r := []rune(tok); unicode.IsSpace(r[0]) {
			// spaces at a break point are dropped
			if curW == 0 && len(out) > 0 {
				continue
			}
			pending += tok
			continue
		}
		wordW := DisplayWidth(tok)
		spW := DisplayWidth(pending)
		if curW+spW+wordW <= width {
			cur.WriteString(pending)
			cur.WriteString(tok)
			curW += spW + wordW
			pending = ""
			continue
		}
		if curW > 0 {
			flush()
		}
		pending = ""
		for DisplayWidth(tok) > width {
			head, rest := cutWidth(tok, width)
			out = append(out, head)
			tok = rest
		}
		cur.WriteString(tok)
		curW = DisplayWidth(tok)
	}
	if curW > 0 || len(out) == 0 {
		flush()
	}
	return out
}
