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

package intsafety

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/zxcopro/zxcopro/hardware/pins"
	"github.com/zxcopro/zxcopro/hardware/preferences"
)

// Monitor watches the INT line. Only the Unsafe() and Pulses() functions
// are safe to call from another goroutine.
type Monitor struct {
	pins  pins.Pins
	prefs *preferences.InterruptPreferences
	now   func() time.Time

	unsafe atomic.Bool
	pulses atomic.Int64

	// at least one INT pulse has been seen
	seen bool

	// the INT line was asserted on the previous sample
	asserted bool

	// time of the most recent INT pulse
	last time.Time
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(p pins.Pins, prefs *preferences.InterruptPreferences) *Monitor {
	return &Monitor{
		pins:  p,
		prefs: prefs,
		now:   time.Now,
	}
}

// SetClock replaces the clock used by the monitor. Must not be called while
// the monitor is running.
func (m *Monitor) SetClock(now func() time.Time) {
	m.now = now
}

func (m *Monitor) String() string {
	if m.Unsafe() {
		return fmt.Sprintf("INT unsafe (%d pulses)", m.Pulses())
	}
	return fmt.Sprintf("INT safe (%d pulses)", m.Pulses())
}

// Unsafe returns true if a transfer should not be started.
func (m *Monitor) Unsafe() bool {
	return m.unsafe.Load()
}

// Pulses returns the number of INT pulses seen.
func (m *Monitor) Pulses() int64 {
	return m.pulses.Load()
}

// Sample the INT line once and update the unsafe flag.
func (m *Monitor) Sample() {
	asserted := m.pins.Sample().Asserted(pins.INT)
	now := m.now()

	if asserted && !m.asserted {
		m.seen = true
		m.last = now
		m.unsafe.Store(false)
		m.pulses.Add(1)
	}
	m.asserted = asserted

	if m.seen && !m.unsafe.Load() && now.Sub(m.last) >= m.prefs.SafePeriod() {
		m.unsafe.Store(true)
	}
}

// Run samples the INT line until the quit channel is closed. A nil quit
// channel means that the monitor runs forever.
func (m *Monitor) Run(quit <-chan struct{}) {
	for {
		select {
		case <-quit:
			return
		default:
		}
		m.Sample()
	}
}
