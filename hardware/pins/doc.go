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

// Package pins is the polled hardware-line interface between the coprocessor
// and the Z80 bus. Every signal on the bus is one bit of the Lines type and
// the Pins interface samples and drives those bits.
//
// A set bit in Lines means that the signal is asserted. The Z80 control lines
// are active-low so for those lines a set bit is the electrically low state.
// Implementations of Pins are responsible for the translation.
//
// Waiting on the bus is done by busy-polling. There are no timeouts and no
// yielding: the hardware is expected to respond within nanoseconds and a
// wait that never ends indicates a hardware fault that no software recovery
// can deal with.
package pins
