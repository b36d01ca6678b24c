package ui

import (
	"os"

	"golang.org/x/term"
)

const (
	ansiBold   = "\x1b[1m"
	ansiDim    = "\x1b[2m"
	ansiStrike = "\x1b[9m"
	ansiReset  = "\x1b[0m"
)

// Bold emphasizes text when stdout is a color terminal.
func Bold(text string) string {
	return wrap(ansiBold, text)
}

// Dim fades text when stdout is a color terminal.
func Dim(text string) string {
	return wrap(ansiDim, text)
}

// Strike crosses out text when stdout is a color terminal.
func Strike(text string) string {
	return wrap(ansiStrike, text)
}

func wrap(code, text string) string {
	if text == "" || !ansiEnabled() {
		return text
	}
	return code + text + ansiReset
}

// ansiEnabled is a variable so tests can force styling on.
var ansiEnabled = func() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
