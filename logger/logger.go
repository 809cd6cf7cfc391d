// SPDX-License-Identifier: GPL-3.0-or-later

// Package logger builds the slog loggers the grid components log
// through: a colored terminal handler when stderr is a tty, a plain
// text handler otherwise, both gated by the shared Level.
package logger

import "log/slog"

// New returns a logger with the component attribute set.
func New(component string) *slog.Logger {
	return slog.New(newHandler()).With("component", component)
}

func newHandler() slog.Handler {
	if isTerminal() {
		return newTerminalHandler()
	}
	return newTextHandler()
}
