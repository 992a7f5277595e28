package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoTerminal is returned when the interactive session is started
	// without a terminal attached to stdin.
	ErrNoTerminal = errors.New("tui: stdin is not a terminal")
)
