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

package mirror

import (
	"encoding/hex"
	"fmt"
	"io"
)

// Size of the mirror. One entry for every Z80 address.
const Size = 0x10000

// Mirror is the shadow copy of the Z80 address space. It should be shared by
// reference.
type Mirror struct {
	data [Size]uint8
}

// NewMirror is the preferred method of initialisation for the Mirror type.
// The contents are zeroed.
func NewMirror() *Mirror {
	return &Mirror{}
}

// Get the byte at the address.
func (m *Mirror) Get(address uint16) uint8 {
	return m.data[address]
}

// Put the byte at the address.
func (m *Mirror) Put(address uint16, data uint8) {
	m.data[address] = data
}

// Seed copies data into the mirror starting at the origin address. Data that
// extends beyond the top of the address space wraps to address zero.
func (m *Mirror) Seed(origin uint16, data []uint8) {
	for i, d := range data {
		m.data[origin+uint16(i)] = d
	}
}

// Reset zeroes the mirror.
func (m *Mirror) Reset() {
	clear(m.data[:])
}

// Read copies n bytes starting at the address. Reads beyond the top of the
// address space wrap to address zero.
func (m *Mirror) Read(address uint16, n int) []uint8 {
	r := make([]uint8, n)
	for i := range r {
		r[i] = m.data[address+uint16(i)]
	}
	return r
}

// Snapshot creates a copy of the mirror in its current state.
func (m *Mirror) Snapshot() *Mirror {
	n := *m
	return &n
}

// Dump writes a hex dump of n bytes starting at the address. Offsets in the
// dump are Z80 addresses.
func (m *Mirror) Dump(w io.Writer, address uint16, n int) error {
	data := m.Read(address, n)
	for i := 0; i < len(data); i += 16 {
		e := min(i+16, len(data))
		if _, err := fmt.Fprintf(w, "%04x  % x\n", address+uint16(i), data[i:e]); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mirror) String() string {
	return hex.Dump(m.data[:])
}
