// This file is part of zxcopro.
//
// zxcopro is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// zxcopro is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with zxcopro.  If not, see <https://www.gnu.org/licenses/>.

// Package terminal defines the operations required by the monitor for input
// and output. Implementations are in the plainterm and colorterm packages.
package terminal

import "time"

// Style is used to identify the category of text being sent to the
// Terminal.TermPrintLine() function. A terminal implementation can choose to
// present the text differently, or not at all.
type Style int

// List of valid Style values.
const (
	StyleNormal Style = iota

	// the user's own input, echoed back
	StyleEcho

	// information returned by a command
	StyleFeedback

	// help text
	StyleHelp

	// the result of a successful operation on the target
	StyleSuccess

	// an error or failure status
	StyleError
)

// Input defines the operations required by an interface that allows input.
type Input interface {
	// TermRead returns the next line of input without the line ending. Returns
	// io.EOF when input has been exhausted.
	TermRead(prompt string) (string, error)

	// TermKeyPressed waits up to the timeout for a single key to be pressed.
	// Terminals that can't detect single key presses return false after the
	// timeout.
	TermKeyPressed(timeout time.Duration) bool

	// IsRealTerminal returns true if the terminal is connected to a real
	// terminal device.
	IsRealTerminal() bool
}

// Output defines the operations required by an interface that allows output.
type Output interface {
	TermPrintLine(style Style, s string)
}

// Terminal defines the operations required by the monitor's command line
// interface.
type Terminal interface {
	Initialise() error
	CleanUp()

	Input
	Output
}
