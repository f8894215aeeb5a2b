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

package dma

import "github.com/zxcopro/zxcopro/assert"

// Slot holds at most one transfer waiting to be activated. Adding a transfer
// to a full slot replaces the pending transfer. The slot is not safe for use
// from more than one goroutine and panics if it is.
type Slot struct {
	engine  *Engine
	pending *Descriptor
	done    func(Status)

	owner assert.Owner
}

// NewSlot is the preferred method of initialisation for the Slot type.
func NewSlot(engine *Engine) *Slot {
	return &Slot{engine: engine}
}

// Add a transfer to the slot. The done function is called with the outcome
// of the transfer when it is activated and can be nil. A pending transfer is
// replaced without being activated and its done function is not called.
func (s *Slot) Add(d *Descriptor, done func(Status)) {
	s.owner.Check("dma.Slot")
	s.pending = d
	s.done = done
}

// Full returns true if a transfer is waiting to be activated.
func (s *Slot) Full() bool {
	return s.pending != nil
}

// Activate submits the pending transfer with the interrupt-safety monitor
// honoured. The slot is empty afterwards. The second return value is false if
// there was no transfer to activate.
func (s *Slot) Activate() (Status, bool) {
	s.owner.Check("dma.Slot")
	if s.pending == nil {
		return OK, false
	}

	d := s.pending
	done := s.done
	s.pending = nil
	s.done = nil

	status := s.engine.Submit(d, true)
	if done != nil {
		done(status)
	}

	return status, true
}
