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

package rom

import (
	"fmt"
	"sync/atomic"
)

// the Z80 opcode for an absolute jump
const opcodeJP = 0xc3

// Injection replaces the first three bytes of the ROM with a JP instruction.
// The zero value is an inactive injection.
type Injection struct {
	// bit 16 indicates that the injection is active. the lower 16 bits are
	// the destination
	state atomic.Uint32
}

const injectionActive = 0x10000

// Set the destination of the jump and activate the injection.
func (inj *Injection) Set(destination uint16) {
	inj.state.Store(injectionActive | uint32(destination))
}

// Clear the injection.
func (inj *Injection) Clear() {
	inj.state.Store(0)
}

// Destination returns the destination of the jump and whether the injection
// is active.
func (inj *Injection) Destination() (uint16, bool) {
	s := inj.state.Load()
	return uint16(s), s&injectionActive == injectionActive
}

func (inj *Injection) String() string {
	if d, ok := inj.Destination(); ok {
		return fmt.Sprintf("JP %04x", d)
	}
	return "no injection"
}

// Patch returns the byte that should be answered for a ROM read at the
// address, given the unpatched byte.
func (inj *Injection) Patch(address uint16, data uint8) uint8 {
	if address > 2 {
		return data
	}

	d, ok := inj.Destination()
	if !ok {
		return data
	}

	switch address {
	case 0:
		return opcodeJP
	case 1:
		return uint8(d)
	}
	return uint8(d >> 8)
}
