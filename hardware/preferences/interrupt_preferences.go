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

package preferences

import (
	"time"

	"github.com/zxcopro/zxcopro/prefs"
)

// Default values for the interrupt-safety preferences. The interval is the
// measured frame time of a 48K machine. The window is the measured time
// needed to be sure a transfer has finished before the next INT.
const (
	DefaultInterval = 19970
	DefaultWindow   = 30
)

// InterruptPreferences are the timings used by the interrupt-safety monitor.
type InterruptPreferences struct {
	dsk *prefs.Disk

	// time between INT pulses in microseconds
	Interval prefs.Int

	// length of the unsafe period before the next INT in microseconds
	Window prefs.Int
}

func (p *InterruptPreferences) String() string {
	return p.dsk.String()
}

func newInterruptPreferences(pth string) (*InterruptPreferences, error) {
	p := &InterruptPreferences{}

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	if err := addInt(p.dsk, "hardware.intsafety.interval", &p.Interval, 1, 1000000); err != nil {
		return nil, err
	}
	if err := addInt(p.dsk, "hardware.intsafety.window", &p.Window, 0, 1000000); err != nil {
		return nil, err
	}

	p.SetDefaults()

	if err := p.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all interrupt preferences to the default values.
func (p *InterruptPreferences) SetDefaults() {
	_ = p.Interval.Set(DefaultInterval)
	_ = p.Window.Set(DefaultWindow)
}

// Load interrupt preferences from disk.
func (p *InterruptPreferences) Load() error {
	return load(p.dsk)
}

// Save interrupt preferences to disk.
func (p *InterruptPreferences) Save() error {
	return p.dsk.Save()
}

// SafePeriod returns the time after an INT pulse during which transfers are
// allowed to start. If the window is larger than the interval then the safe
// period is zero.
func (p *InterruptPreferences) SafePeriod() time.Duration {
	interval := p.Interval.Get().(int)
	window := p.Window.Get().(int)
	return time.Duration(max(0, interval-window)) * time.Microsecond
}
