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

package intsafety_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/zxcopro/zxcopro/hardware/intsafety"
	"github.com/zxcopro/zxcopro/hardware/pins"
	"github.com/zxcopro/zxcopro/hardware/preferences"
	"github.com/zxcopro/zxcopro/test"
)

type intLine struct {
	lines pins.Lines
}

func (l *intLine) Sample() pins.Lines {
	return l.lines
}

func (l *intLine) Drive(mask pins.Lines, value pins.Lines) {
	l.lines = (l.lines &^ mask) | (value & mask)
}

func (l *intLine) Direction(mask pins.Lines, output bool) {}

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newMonitor(t *testing.T) (*intsafety.Monitor, *intLine, *clock) {
	t.Helper()

	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.Interrupt.Interval.Set(20000))
	test.DemandSuccess(t, p.Interrupt.Window.Set(30))

	line := &intLine{}
	clk := &clock{t: time.Unix(0, 0)}
	m := intsafety.NewMonitor(line, p.Interrupt)
	m.SetClock(clk.now)

	return m, line, clk
}

func pulse(m *intsafety.Monitor, line *intLine) {
	pins.Assert(line, pins.INT)
	m.Sample()
	pins.Release(line, pins.INT)
	m.Sample()
}

func TestSafeBeforeFirstPulse(t *testing.T) {
	m, _, clk := newMonitor(t)
	for i := 0; i < 10; i++ {
		clk.advance(10 * time.Millisecond)
		m.Sample()
		test.ExpectFailure(t, m.Unsafe())
	}
	test.ExpectEquality(t, m.Pulses(), int64(0))
}

func TestWindow(t *testing.T) {
	m, line, clk := newMonitor(t)

	pulse(m, line)
	test.ExpectFailure(t, m.Unsafe())
	test.ExpectEquality(t, m.Pulses(), int64(1))

	// just before the window
	clk.advance(19969 * time.Microsecond)
	m.Sample()
	test.ExpectFailure(t, m.Unsafe())

	// inside the window
	clk.advance(1 * time.Microsecond)
	m.Sample()
	test.ExpectSuccess(t, m.Unsafe())

	// still unsafe if the INT is late
	clk.advance(time.Millisecond)
	m.Sample()
	test.ExpectSuccess(t, m.Unsafe())

	// the next pulse clears the flag
	pulse(m, line)
	test.ExpectFailure(t, m.Unsafe())
	test.ExpectEquality(t, m.Pulses(), int64(2))
}

func TestHeldLineIsOnePulse(t *testing.T) {
	m, line, clk := newMonitor(t)

	pins.Assert(line, pins.INT)
	for i := 0; i < 5; i++ {
		m.Sample()
		clk.advance(time.Microsecond)
	}
	test.ExpectEquality(t, m.Pulses(), int64(1))
}

func TestRunStops(t *testing.T) {
	m, _, _ := newMonitor(t)

	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		m.Run(quit)
		close(done)
	}()

	close(quit)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("monitor did not stop")
	}
}
