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

package pins

// Pins is the interface to the hardware lines. It is modelled on the GPIO
// block of a microcontroller: all lines are read at once and can be written
// at once with a mask.
type Pins interface {
	// Sample returns the current state of every line.
	Sample() Lines

	// Drive sets the lines in mask to the corresponding state in value.
	// Only lines that are configured as outputs are affected on the bus but
	// the value is remembered for when the line becomes an output.
	Drive(mask Lines, value Lines)

	// Direction configures the lines in mask as outputs or inputs. A line
	// configured as an input is released (high impedance) and does not
	// influence the bus.
	Direction(mask Lines, output bool)
}

// Assert drives the lines in mask to the asserted state.
func Assert(p Pins, mask Lines) {
	p.Drive(mask, mask)
}

// Release drives the lines in mask to the deasserted state.
func Release(p Pins, mask Lines) {
	p.Drive(mask, 0)
}

// WaitFor busy-waits until the condition is true for a sample of the lines.
// The satisfying sample is returned.
func WaitFor(p Pins, cond func(Lines) bool) Lines {
	for {
		l := p.Sample()
		if cond(l) {
			return l
		}
	}
}

// WaitAsserted busy-waits until every line in the mask is asserted.
func WaitAsserted(p Pins, mask Lines) Lines {
	return WaitFor(p, func(l Lines) bool {
		return l.Asserted(mask)
	})
}

// WaitReleased busy-waits until no line in the mask is asserted.
func WaitReleased(p Pins, mask Lines) Lines {
	return WaitFor(p, func(l Lines) bool {
		return l.Released(mask)
	})
}
