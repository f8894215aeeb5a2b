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

package monitor

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/zxcopro/zxcopro/curated"
	"github.com/zxcopro/zxcopro/hardware"
	"github.com/zxcopro/zxcopro/hardware/govern"
	"github.com/zxcopro/zxcopro/logger"
	"github.com/zxcopro/zxcopro/monitor/terminal"
)

// Prompt shown when waiting for a command.
const Prompt = "zxcopro> "

// WatchInterval is the time between updates of the WATCH command.
const WatchInterval = 250 * time.Millisecond

// Sentinel error patterns.
const (
	UnknownCommand = "monitor: unknown command (%s)"
	BadArguments   = "monitor: %s: %v"
	CoproEnded     = "monitor: coprocessor has ended"
)

// Monitor is the operator console.
type Monitor struct {
	copro *hardware.Coprocessor
	term  terminal.Terminal

	// set by the QUIT command
	quit bool
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(copro *hardware.Coprocessor, term terminal.Terminal) *Monitor {
	return &Monitor{
		copro: copro,
		term:  term,
	}
}

// Run reads and executes commands until the QUIT command, the end of input,
// or the end of the coprocessor. Errors from individual commands are printed
// and do not end the loop.
func (m *Monitor) Run() error {
	if err := m.term.Initialise(); err != nil {
		return fmt.Errorf("monitor: %w", err)
	}
	defer m.term.CleanUp()

	for !m.quit {
		if m.copro.Governor.State() == govern.Ending {
			return nil
		}

		line, err := m.term.TermRead(Prompt)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("monitor: %w", err)
		}

		m.term.TermPrintLine(terminal.StyleEcho, line)

		if err := m.Execute(line); err != nil {
			m.term.TermPrintLine(terminal.StyleError, err.Error())
			if curated.Is(err, CoproEnded) {
				return nil
			}
		}
	}

	return nil
}

// Execute a single command line. Empty lines and lines starting with # are
// ignored.
func (m *Monitor) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	cmd, ok := lookup(fields[0])
	if !ok {
		return curated.Errorf(UnknownCommand, fields[0])
	}

	args := fields[1:]
	if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
		return curated.Errorf(BadArguments, cmd.name, fmt.Sprintf("usage: %s %s", cmd.name, cmd.usage))
	}

	logger.Logf(logger.Allow, "monitor", "%s", strings.Join(fields, " "))

	return cmd.fn(m, args)
}

// do runs fn in the coprocessor's main context.
func (m *Monitor) do(fn func()) error {
	if !m.copro.Do(fn) {
		return curated.Errorf(CoproEnded)
	}
	return nil
}

// print each line of the string with the same style.
func (m *Monitor) print(style terminal.Style, s string) {
	for _, l := range strings.Split(strings.TrimSuffix(s, "\n"), "\n") {
		m.term.TermPrintLine(style, l)
	}
}
