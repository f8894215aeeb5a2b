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

package preferences_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/zxcopro/zxcopro/curated"
	"github.com/zxcopro/zxcopro/hardware/preferences"
	"github.com/zxcopro/zxcopro/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.DMA.ContendedLow.Get().(int), 0x4000)
	test.ExpectEquality(t, p.DMA.ContendedHigh.Get().(int), 0x7fff)
	test.ExpectEquality(t, p.Server.ROMTop.Get().(int), 0x3fff)

	tb, un := p.DMA.Settle()
	test.ExpectEquality(t, tb, 190*time.Nanosecond)
	test.ExpectEquality(t, un, 185*time.Nanosecond)

	test.ExpectEquality(t, p.Interrupt.SafePeriod(), 19940*time.Microsecond)
}

func TestSaveAndLoad(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "prefs")

	p, err := preferences.NewPreferencesFromFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, p.Set("hardware.dma.maxLength", "2048"))
	test.ExpectSuccess(t, p.Set("hardware.intsafety.window", "40"))
	test.DemandSuccess(t, p.Save())

	q, err := preferences.NewPreferencesFromFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.DMA.MaxLength.Get().(int), 2048)
	test.ExpectEquality(t, q.Interrupt.Window.Get().(int), 40)

	q.SetDefaults()
	test.ExpectEquality(t, q.DMA.MaxLength.Get().(int), preferences.DefaultMaxLength)
}

func TestRangeChecks(t *testing.T) {
	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, p.Set("hardware.dma.contendedHigh", "0x10000"))
	test.ExpectEquality(t, p.DMA.ContendedHigh.Get().(int), 0x7fff)

	test.ExpectFailure(t, p.Set("hardware.dma.maxLength", "0"))
	test.ExpectEquality(t, p.DMA.MaxLength.Get().(int), preferences.DefaultMaxLength)

	err = p.Set("hardware.dma.nosuchthing", "1")
	test.ExpectSuccess(t, curated.Is(err, preferences.UnknownPreference))
}

func TestWindowLargerThanInterval(t *testing.T) {
	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, p.Interrupt.Window.Set(30000))
	test.ExpectEquality(t, p.Interrupt.SafePeriod(), time.Duration(0))
}
