//go:build !unix

package konsole

func controllingTerminalWidth() int { return 0 }
