package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsTerminal reports whether standard output is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// FitMap shrinks a map size so it fits the terminal with reserveRows lines
// left for text around it. Neither side goes below least.
func FitMap(width, height, reserveRows, least int) (int, int) {
	termWidth, termHeight := GetSize()
	return clamp(width, termWidth, least), clamp(height, termHeight-reserveRows, least)
}

func clamp(v, limit, least int) int {
	if v > limit {
		v = limit
	}
	if v < least {
		v = least
	}
	return v
}
