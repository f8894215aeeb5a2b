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
	"fmt"
	"math/bits"
	"sort"

	"github.com/zxcopro/zxcopro/curated"
	"github.com/zxcopro/zxcopro/hardware/pins"
)

// Sentinel error patterns for Layout validation.
const (
	UnmappedLine  = "gpiochip: line not mapped (%v)"
	DuplicateLine = "gpiochip: offset %d used more than once"
	BadLine       = "gpiochip: mapping must be for a single line (%v)"
)

// the maximum number of lines in a single line request
const maxLines = 64

// Layout maps each line of the bus to an offset on the GPIO chip.
type Layout map[pins.Lines]int

// DefaultLayout maps every line to the chip offset equal to the bit position
// of the line in the pins.Lines type.
func DefaultLayout() Layout {
	l := make(Layout)
	for i := 0; i < 64; i++ {
		b := pins.Lines(1) << i
		if b&pins.AllLines == b {
			l[b] = i
		}
	}
	return l
}

// Validate checks that every line is mapped exactly once.
func (l Layout) Validate() error {
	used := make(map[int]bool)
	var mapped pins.Lines
	for b, o := range l {
		if bits.OnesCount64(uint64(b)) != 1 || b&pins.AllLines != b {
			return curated.Errorf(BadLine, b)
		}
		if used[o] {
			return curated.Errorf(DuplicateLine, o)
		}
		used[o] = true
		mapped |= b
	}
	if mapped != pins.AllLines {
		return curated.Errorf(UnmappedLine, pins.AllLines&^mapped)
	}
	return nil
}

// order returns the lines in the order they are placed in the line request,
// sorted by offset.
func (l Layout) order() []pins.Lines {
	order := make([]pins.Lines, 0, len(l))
	for b := range l {
		order = append(order, b)
	}
	sort.Slice(order, func(i, j int) bool {
		return l[order[i]] < l[order[j]]
	})
	return order
}

// mapping between pins.Lines and the position of each line in the line
// request
type mapping struct {
	lines   []pins.Lines
	offsets []int
}

func newMapping(l Layout) (mapping, error) {
	if err := l.Validate(); err != nil {
		return mapping{}, err
	}
	m := mapping{lines: l.order()}
	if len(m.lines) > maxLines {
		return mapping{}, fmt.Errorf("gpiochip: too many lines (%d)", len(m.lines))
	}
	for _, b := range m.lines {
		m.offsets = append(m.offsets, l[b])
	}
	return m, nil
}

// subset returns the offsets of the lines in the mask, in request order.
func (m mapping) subset(mask pins.Lines) []int {
	var offsets []int
	for i, b := range m.lines {
		if mask&b == b {
			offsets = append(offsets, m.offsets[i])
		}
	}
	return offsets
}

// values returns the value of each line in the mask, in the same order as
// subset().
func (m mapping) values(mask pins.Lines, lines pins.Lines) []int {
	var values []int
	for _, b := range m.lines {
		if mask&b != b {
			continue
		}
		if lines&b == b {
			values = append(values, 1)
		} else {
			values = append(values, 0)
		}
	}
	return values
}

// bus converts the values of every line in the request to lines.
func (m mapping) bus(values []int) pins.Lines {
	var l pins.Lines
	for i, b := range m.lines {
		if i < len(values) && values[i] != 0 {
			l |= b
		}
	}
	return l
}
