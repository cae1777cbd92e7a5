package konsole

import (
	"fmt"
	"strings"
)

// Cursor control for frames redrawn in place.
const (
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
	clearLine  = "\r\x1b[2K" // start of line, clear entire line
)

// cursorUp moves the cursor n rows up. Nothing is written for n <= 0.
func cursorUp(sb *strings.Builder, n int) {
	if n > 0 {
		fmt.Fprintf(sb, "\x1b[%dA", n)
	}
}

// frame builds the bytes that replace a prev-line frame with lines, leaving
// the cursor on the row after the new frame.
func frame(lines []string, prev int) string {
	var sb strings.Builder
	cursorUp(&sb, prev)
	for _, line := range lines {
		sb.WriteString(clearLine)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	// rows left over from a taller previous frame
	if extra := prev - len(lines); extra > 0 {
		for range extra {
			sb.WriteString(clearLine)
			sb.WriteByte('\n')
		}
		cursorUp(&sb, extra)
	}
	return sb.String()
}
