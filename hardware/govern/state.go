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

package govern

import "sync/atomic"

// State indicates the condition of the main loop.
type State int

// List of possible states.
//
// Booting is the default state and is left once the execution contexts have
// been started and the target released from reset.
//
// When Paused, commands from the target are captured but not serviced and
// the pending transfer slot is not activated. The memory server and the
// interrupt monitor continue to run.
const (
	Booting State = iota
	Running
	Paused
	Ending
)

func (s State) String() string {
	switch s {
	case Booting:
		return "Booting"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Ending:
		return "Ending"
	}
	return ""
}

// Governor holds a State that can be read and changed from any goroutine.
type Governor struct {
	state atomic.Int32
}

// State returns the current state.
func (g *Governor) State() State {
	return State(g.state.Load())
}

// SetState changes the state. Ending is final and cannot be changed.
func (g *Governor) SetState(s State) {
	for {
		old := g.state.Load()
		if State(old) == Ending {
			return
		}
		if g.state.CompareAndSwap(old, int32(s)) {
			return
		}
	}
}
