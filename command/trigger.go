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

package command

import (
	"github.com/zxcopro/zxcopro/hardware/pins"
)

// Addresses of the trigger register.
const (
	TriggerLo = 0x386e
	TriggerHi = 0x386f
)

// the lines that identify a write to the trigger register
const triggerMask = pins.AddressBus | pins.MREQ | pins.WR | pins.BUSACK

var (
	triggerLo = pins.Address(TriggerLo) | pins.MREQ | pins.WR
	triggerHi = pins.Address(TriggerHi) | pins.MREQ | pins.WR
)

// Trigger captures writes to the trigger register. A write is seen by
// several consecutive samples of the bus, so a write is only acted upon if
// the previous sample was not the same write.
type Trigger struct {
	lo uint8
	hi uint8

	pending bool

	// the trigger pattern seen by the previous call to Observe(). zero if
	// the previous sample was not a trigger write
	prev pins.Lines
}

// Observe a sample of the bus. Returns true if a command has become pending
// as a result of the sample.
func (t *Trigger) Observe(l pins.Lines) bool {
	match := l & triggerMask
	if match != triggerLo && match != triggerHi {
		t.prev = 0
		return false
	}

	if match == t.prev {
		return false
	}
	t.prev = match

	if match == triggerLo {
		// assume the first half of a 16 bit write
		t.lo = l.Data()
		t.pending = false
		return false
	}

	t.hi = l.Data()
	t.pending = true
	return true
}

// Pending returns true if a command is waiting to be serviced.
func (t *Trigger) Pending() bool {
	return t.pending
}

// Address of the most recent command structure.
func (t *Trigger) Address() uint16 {
	return uint16(t.hi)<<8 | uint16(t.lo)
}

// Clear the pending flag.
func (t *Trigger) Clear() {
	t.pending = false
}
