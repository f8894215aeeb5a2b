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

// Package colorterm implements the Terminal interface for the monitor. It
// styles output according to the terminal.Style of each line and supports
// single key presses with the help of the easyterm package.
package colorterm

import (
	"bufio"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/zxcopro/zxcopro/monitor/easyterm"
	"github.com/zxcopro/zxcopro/monitor/terminal"
)

var (
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3))
	echoStyle     = lipgloss.NewStyle().Faint(true)
	feedbackStyle = lipgloss.NewStyle()
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(6))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(2))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(1))
)

// ColorTerminal implements the terminal.Terminal interface for real terminal
// devices.
type ColorTerminal struct {
	easyterm.Terminal

	reader *bufio.Reader
	output io.Writer
}

// Initialise perfoms any setting up required for the terminal.
func (ct *ColorTerminal) Initialise() error {
	if err := ct.Terminal.Initialise(os.Stdin, os.Stdout); err != nil {
		return err
	}
	ct.reader = bufio.NewReader(os.Stdin)
	ct.output = os.Stdout
	return nil
}

// CleanUp perfoms any cleaning up required for the terminal.
func (ct *ColorTerminal) CleanUp() {
	ct.Terminal.CleanUp()
}

func style(s terminal.Style) lipgloss.Style {
	switch s {
	case terminal.StyleEcho:
		return echoStyle
	case terminal.StyleHelp:
		return helpStyle
	case terminal.StyleSuccess:
		return successStyle
	case terminal.StyleError:
		return errorStyle
	}
	return feedbackStyle
}

// TermPrintLine implements the terminal.Output interface.
func (ct *ColorTerminal) TermPrintLine(s terminal.Style, line string) {
	st := style(s)

	// help text is wrapped to the width of the terminal
	if s == terminal.StyleHelp {
		if cols := ct.Geometry().Cols; cols > 0 {
			st = st.Width(cols)
		}
	}

	_, _ = io.WriteString(ct.output, st.Render(line))
	_, _ = io.WriteString(ct.output, "\n")
}

// TermRead implements the terminal.Input interface.
func (ct *ColorTerminal) TermRead(prompt string) (string, error) {
	_, _ = io.WriteString(ct.output, promptStyle.Render(prompt))

	s, err := ct.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && s != "" {
			return strings.TrimRight(s, "\r\n"), nil
		}
		return "", err
	}

	return strings.TrimRight(s, "\r\n"), nil
}

// TermKeyPressed implements the terminal.Input interface. The key is consumed.
func (ct *ColorTerminal) TermKeyPressed(timeout time.Duration) bool {
	ct.CBreakMode()
	defer ct.CanonicalMode()

	ready, err := ct.InputReady(int(timeout.Milliseconds()))
	if err != nil || !ready {
		return false
	}

	// bytes buffered by the line reader are not visible to InputReady() so
	// the key is read through the same reader
	_, _ = ct.reader.ReadByte()

	return true
}

// IsRealTerminal implements the terminal.Input interface.
func (ct *ColorTerminal) IsRealTerminal() bool {
	return true
}
