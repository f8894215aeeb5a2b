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
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/zxcopro/zxcopro/command"
	"github.com/zxcopro/zxcopro/curated"
	"github.com/zxcopro/zxcopro/hardware/dma"
	"github.com/zxcopro/zxcopro/hardware/govern"
	"github.com/zxcopro/zxcopro/hardware/mirror"
	"github.com/zxcopro/zxcopro/logger"
	"github.com/zxcopro/zxcopro/monitor/terminal"
)

type commandFn func(m *Monitor, args []string) error

type cmd struct {
	name    string
	usage   string
	help    string
	minArgs int
	maxArgs int
	fn      commandFn
}

// initialised in init() because the HELP command refers to the list
var commands map[string]cmd

func init() {
	commands = make(map[string]cmd)
	for _, c := range []cmd{
		{"STATUS", "", "show the state of the coprocessor", 0, 0, status},
		{"WATCH", "[count]", "show STATUS repeatedly until a key is pressed", 0, 1, watch},
		{"PEEK", "addr [n]", "hex dump n bytes of the mirror", 1, 2, peek},
		{"TRACE", "[n]", "show the most recent n entries of the trace table", 0, 1, showTrace},
		{"LOG", "[n]", "show the most recent n log entries", 0, 1, showLog},
		{"PAUSE", "", "stop servicing commands from the target", 0, 0, pause},
		{"RUN", "", "resume servicing commands from the target", 0, 0, run},
		{"JUMP", "addr", "inject a jump to addr at the ROM reset vector", 1, 1, jump},
		{"NOJUMP", "", "remove the jump injection", 0, 0, noJump},
		{"MEMSET", "addr len value [TOPBORDER]", "fill target memory with a DMA transfer", 3, 4, memset},
		{"PREFS", "[key value]", "show preferences or change a preference", 0, 2, preferences},
		{"SAVE", "", "save preferences to disk", 0, 0, save},
		{"DUMP", "file", "write a graphviz description of the trace table", 1, 1, dump},
		{"HELP", "[command]", "list commands or show help for a command", 0, 1, help},
		{"QUIT", "", "leave the monitor", 0, 0, quit},
	} {
		commands[c.name] = c
	}
}

func lookup(name string) (cmd, bool) {
	c, ok := commands[strings.ToUpper(name)]
	return c, ok
}

// parse a number with an optional hexadecimal prefix
func parseNumber(s string, bits int) (uint64, error) {
	base := 10
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s = s[2:]
		base = 16
	case strings.HasPrefix(s, "$"):
		s = s[1:]
		base = 16
	}
	return strconv.ParseUint(s, base, bits)
}

func parseAddress(name string, s string) (uint16, error) {
	n, err := parseNumber(s, 16)
	if err != nil {
		return 0, curated.Errorf(BadArguments, name, fmt.Sprintf("bad address (%s)", s))
	}
	return uint16(n), nil
}

func parseCount(name string, args []string, idx int, def int, limit int) (int, error) {
	if len(args) <= idx {
		return def, nil
	}
	n, err := parseNumber(args[idx], 32)
	if err != nil || n == 0 || n > uint64(limit) {
		return 0, curated.Errorf(BadArguments, name, fmt.Sprintf("bad count (%s)", args[idx]))
	}
	return int(n), nil
}

func (m *Monitor) status() (string, error) {
	s := strings.Builder{}

	err := m.do(func() {
		c := m.copro
		fmt.Fprintf(&s, "state: %s\n", c.Governor.State())
		fmt.Fprintf(&s, "server: %s\n", c.Server)
		fmt.Fprintf(&s, "interrupt: %s\n", c.Interrupt)
		fmt.Fprintf(&s, "injection: %s\n", c.Jump)
		fmt.Fprintf(&s, "slot: full=%v\n", c.Slot.Full())
		if c.Loader != nil {
			fmt.Fprintf(&s, "test image: %s\n", c.Loader)
		}

		for st := dma.OK; st < dma.StatusLast; st++ {
			if n := c.Engine.Count(st); n > 0 {
				fmt.Fprintf(&s, "dma %s: %d\n", st, n)
			}
		}

		for t := command.MemsetSmall; t <= command.Memcpy; t++ {
			if n := c.Dispatcher.Count(t); n > 0 {
				fmt.Fprintf(&s, "command %s: %d\n", t, n)
			}
		}
	})

	return s.String(), err
}

func status(m *Monitor, _ []string) error {
	s, err := m.status()
	if err != nil {
		return err
	}
	m.print(terminal.StyleFeedback, s)
	return nil
}

func watch(m *Monitor, args []string) error {
	limit, err := parseCount("WATCH", args, 0, 0, 1000000)
	if err != nil {
		return err
	}

	// without a real terminal there is no way of stopping the watch
	if limit == 0 && !m.term.IsRealTerminal() {
		limit = 1
	}

	for i := 0; limit == 0 || i < limit; i++ {
		s, err := m.status()
		if err != nil {
			return err
		}
		m.print(terminal.StyleFeedback, s)

		if limit > 0 && i == limit-1 {
			break
		}
		if m.term.TermKeyPressed(WatchInterval) {
			break
		}
	}

	return nil
}

func peek(m *Monitor, args []string) error {
	addr, err := parseAddress("PEEK", args[0])
	if err != nil {
		return err
	}
	n, err := parseCount("PEEK", args, 1, 16, mirror.Size)
	if err != nil {
		return err
	}

	s := strings.Builder{}
	err = m.do(func() {
		_ = m.copro.Mirror.Dump(&s, addr, n)
	})
	if err != nil {
		return err
	}

	m.print(terminal.StyleFeedback, s.String())
	return nil
}

func showTrace(m *Monitor, args []string) error {
	n, err := parseCount("TRACE", args, 0, 10, 1<<20)
	if err != nil {
		return err
	}

	s := strings.Builder{}
	m.copro.Trace.Write(&s, n)
	if s.Len() == 0 {
		m.term.TermPrintLine(terminal.StyleFeedback, "trace table is empty")
		return nil
	}

	m.print(terminal.StyleFeedback, s.String())
	return nil
}

func showLog(m *Monitor, args []string) error {
	n, err := parseCount("LOG", args, 0, 10, 1<<20)
	if err != nil {
		return err
	}

	s := strings.Builder{}
	logger.Tail(&s, n)
	if s.Len() > 0 {
		m.print(terminal.StyleFeedback, s.String())
	}
	return nil
}

func pause(m *Monitor, _ []string) error {
	if m.copro.Governor.State() != govern.Running {
		return curated.Errorf(BadArguments, "PAUSE", fmt.Sprintf("coprocessor is %s", m.copro.Governor.State()))
	}
	m.copro.Governor.SetState(govern.Paused)
	m.term.TermPrintLine(terminal.StyleSuccess, "paused")
	return nil
}

func run(m *Monitor, _ []string) error {
	if m.copro.Governor.State() != govern.Paused {
		return curated.Errorf(BadArguments, "RUN", fmt.Sprintf("coprocessor is %s", m.copro.Governor.State()))
	}
	m.copro.Governor.SetState(govern.Running)
	m.term.TermPrintLine(terminal.StyleSuccess, "running")
	return nil
}

func jump(m *Monitor, args []string) error {
	addr, err := parseAddress("JUMP", args[0])
	if err != nil {
		return err
	}
	m.copro.Jump.Set(addr)
	m.term.TermPrintLine(terminal.StyleSuccess, m.copro.Jump.String())
	return nil
}

func noJump(m *Monitor, _ []string) error {
	m.copro.Jump.Clear()
	m.term.TermPrintLine(terminal.StyleSuccess, m.copro.Jump.String())
	return nil
}

func memset(m *Monitor, args []string) error {
	addr, err := parseAddress("MEMSET", args[0])
	if err != nil {
		return err
	}
	length, err := parseNumber(args[1], 16)
	if err != nil {
		return curated.Errorf(BadArguments, "MEMSET", fmt.Sprintf("bad length (%s)", args[1]))
	}
	value, err := parseNumber(args[2], 8)
	if err != nil {
		return curated.Errorf(BadArguments, "MEMSET", fmt.Sprintf("bad value (%s)", args[2]))
	}

	d := &dma.Descriptor{
		Source: []uint8{uint8(value)},
		Target: addr,
		Length: uint16(length),
	}

	if len(args) == 4 {
		if !strings.EqualFold(args[3], "TOPBORDER") {
			return curated.Errorf(BadArguments, "MEMSET", fmt.Sprintf("unknown option (%s)", args[3]))
		}
		d.TopBorder = true
	}

	var st dma.Status
	err = m.do(func() {
		m.copro.Trace.NewEntry()
		st = m.copro.Engine.Submit(d, true)
	})
	if err != nil {
		return err
	}

	if st != dma.OK {
		return st.Err()
	}
	m.term.TermPrintLine(terminal.StyleSuccess, st.String())
	return nil
}

func preferences(m *Monitor, args []string) error {
	switch len(args) {
	case 0:
		lines := strings.Split(strings.TrimSpace(m.copro.Prefs.String()), "\n")
		sort.Strings(lines)
		for _, l := range lines {
			m.term.TermPrintLine(terminal.StyleFeedback, l)
		}
		return nil
	case 2:
		if err := m.copro.Prefs.Set(args[0], args[1]); err != nil {
			return err
		}
		m.term.TermPrintLine(terminal.StyleSuccess, fmt.Sprintf("%s set to %s", args[0], args[1]))
		return nil
	}
	return curated.Errorf(BadArguments, "PREFS", "usage: PREFS [key value]")
}

func save(m *Monitor, _ []string) error {
	if err := m.copro.Prefs.Save(); err != nil {
		return err
	}
	m.term.TermPrintLine(terminal.StyleSuccess, "preferences saved")
	return nil
}

func dump(m *Monitor, args []string) error {
	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("monitor: %w", err)
	}

	entries := m.copro.Trace.Entries()
	memviz.Map(f, &entries)

	if err := f.Close(); err != nil {
		return fmt.Errorf("monitor: %w", err)
	}

	m.term.TermPrintLine(terminal.StyleSuccess, fmt.Sprintf("%d trace entries written to %s", len(entries), args[0]))
	return nil
}

func help(m *Monitor, args []string) error {
	if len(args) == 1 {
		c, ok := lookup(args[0])
		if !ok {
			return curated.Errorf(UnknownCommand, args[0])
		}
		m.term.TermPrintLine(terminal.StyleHelp, strings.TrimSpace(fmt.Sprintf("%s %s", c.name, c.usage)))
		m.term.TermPrintLine(terminal.StyleHelp, "  "+c.help)
		return nil
	}

	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)

	m.term.TermPrintLine(terminal.StyleHelp, strings.Join(names, " "))
	return nil
}

func quit(m *Monitor, _ []string) error {
	m.quit = true
	return nil
}
