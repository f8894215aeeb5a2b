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

package gpiochip

import (
	"testing"

	"github.com/zxcopro/zxcopro/curated"
	"github.com/zxcopro/zxcopro/hardware/pins"
	"github.com/zxcopro/zxcopro/test"
)

func TestLayout(t *testing.T) {
	l := DefaultLayout()
	test.ExpectSuccess(t, l.Validate())

	delete(l, pins.BUSACK)
	test.ExpectSuccess(t, curated.Is(l.Validate(), UnmappedLine))

	l = DefaultLayout()
	l[pins.BUSACK] = l[pins.BUSREQ]
	test.ExpectSuccess(t, curated.Is(l.Validate(), DuplicateLine))

	l = DefaultLayout()
	l[pins.MREQ|pins.RD] = 60
	test.ExpectSuccess(t, curated.Is(l.Validate(), BadLine))
}

func TestMapping(t *testing.T) {
	// a layout where the data bus comes first on the chip
	l := DefaultLayout()
	for i := 0; i < 8; i++ {
		l[pins.Data(1<<i)] = i
	}
	for i := 0; i < 16; i++ {
		l[pins.Address(1<<i)] = 8 + i
	}
	test.DemandSuccess(t, l.Validate())

	m, err := newMapping(l)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.offsets[0], 0)
	test.ExpectEquality(t, m.lines[0], pins.Data(0x01))

	v := pins.Address(0x386e) | pins.Data(0x80) | pins.MREQ | pins.WR
	values := m.values(pins.AllLines, v)
	test.DemandEquality(t, len(values), len(m.offsets))
	test.ExpectEquality(t, values[7], 1)
	test.ExpectEquality(t, values[6], 0)
	test.ExpectEquality(t, m.bus(values), v)
}

func TestSubset(t *testing.T) {
	m, err := newMapping(DefaultLayout())
	test.DemandSuccess(t, err)

	offsets := m.subset(pins.Data(0x03))
	test.DemandEquality(t, len(offsets), 2)
	test.ExpectEquality(t, offsets[0], DefaultLayout()[pins.Data(0x01)])
	test.ExpectEquality(t, offsets[1], DefaultLayout()[pins.Data(0x02)])

	values := m.values(pins.Data(0x03), pins.Data(0x02))
	test.DemandEquality(t, len(values), 2)
	test.ExpectEquality(t, values[0], 0)
	test.ExpectEquality(t, values[1], 1)

	test.ExpectEquality(t, len(m.subset(pins.ControlLines)), len(m.values(pins.ControlLines, 0)))
	test.ExpectEquality(t, len(m.subset(0)), 0)

	// a short list of values leaves the remaining lines released
	test.ExpectEquality(t, m.bus([]int{1}), m.lines[0])
}
