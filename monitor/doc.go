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

// Package monitor implements the interactive operator console. Commands are
// read from a terminal.Terminal one line at a time and act on a running
// hardware.Coprocessor.
//
// Anything that touches the DMA engine, the pending transfer slot or the
// mirror is run in the coprocessor's main context with Coprocessor.Do().
// Counters and the trace table are safe to read from the monitor's own
// goroutine.
//
// Numeric arguments are decimal unless prefixed with 0x or $ for hexadecimal.
package monitor
