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

// Default values for the DMA preferences. The settle times are measured
// values: the 4116 DRAM in a 48K machine needs 37 cycles of a 200MHz clock
// and the static RAM replacement modules need a little more than 29.
const (
	DefaultContendedLow       = 0x4000
	DefaultContendedHigh      = 0x7fff
	DefaultMaxLength          = 1024
	DefaultMaxIncrement       = 8
	DefaultTopBorderMaxLength = 256
	DefaultTopBorderSettle    = 190
	DefaultUncontendedSettle  = 185
)

// DMAPreferences are the limits and timings of the DMA engine.
type DMAPreferences struct {
	dsk *prefs.Disk

	// the range of memory that is contended by the ULA. both bounds are
	// inclusive
	ContendedLow  prefs.Int
	ContendedHigh prefs.Int

	// maximum length of a transfer
	MaxLength prefs.Int

	// maximum source stride
	MaxIncrement prefs.Int

	// maximum length of a transfer into contended memory during the top border
	TopBorderMaxLength prefs.Int

	// settle times in nanoseconds
	TopBorderSettle   prefs.Int
	UncontendedSettle prefs.Int
}

func (p *DMAPreferences) String() string {
	return p.dsk.String()
}

func newDMAPreferences(pth string) (*DMAPreferences, error) {
	p := &DMAPreferences{}

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	for _, a := range []struct {
		key    string
		p      *prefs.Int
		lo, hi int
	}{
		{"hardware.dma.contendedLow", &p.ContendedLow, 0, 0xffff},
		{"hardware.dma.contendedHigh", &p.ContendedHigh, 0, 0xffff},
		{"hardware.dma.maxLength", &p.MaxLength, 1, 0xffff},
		{"hardware.dma.maxIncrement", &p.MaxIncrement, 0, 0xffff},
		{"hardware.dma.topBorderMaxLength", &p.TopBorderMaxLength, 1, 0xffff},
		{"hardware.dma.topBorderSettle", &p.TopBorderSettle, 0, 100000},
		{"hardware.dma.uncontendedSettle", &p.UncontendedSettle, 0, 100000},
	} {
		if err := addInt(p.dsk, a.key, a.p, a.lo, a.hi); err != nil {
			return nil, err
		}
	}

	p.SetDefaults()

	if err := p.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all DMA preferences to the default values.
func (p *DMAPreferences) SetDefaults() {
	_ = p.ContendedLow.Set(DefaultContendedLow)
	_ = p.ContendedHigh.Set(DefaultContendedHigh)
	_ = p.MaxLength.Set(DefaultMaxLength)
	_ = p.MaxIncrement.Set(DefaultMaxIncrement)
	_ = p.TopBorderMaxLength.Set(DefaultTopBorderMaxLength)
	_ = p.TopBorderSettle.Set(DefaultTopBorderSettle)
	_ = p.UncontendedSettle.Set(DefaultUncontendedSettle)
}

// Load DMA preferences from disk.
func (p *DMAPreferences) Load() error {
	return load(p.dsk)
}

// Save DMA preferences to disk.
func (p *DMAPreferences) Save() error {
	return p.dsk.Save()
}

// Settle returns the settle time for the top-border and uncontended modes.
func (p *DMAPreferences) Settle() (topBorder time.Duration, uncontended time.Duration) {
	topBorder = time.Duration(p.TopBorderSettle.Get().(int)) * time.Nanosecond
	uncontended = time.Duration(p.UncontendedSettle.Get().(int)) * time.Nanosecond
	return topBorder, uncontended
}
