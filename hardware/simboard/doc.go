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

// Package simboard is a model of a ZX Spectrum board as seen from the
// expansion edge connector. It is used in place of real hardware by tests and
// by the RUN and SCRIPT modes when no GPIO chip is specified.
//
// The board has a single block of coprocessor lines, shared by every Handle.
// A Handle implements the pins.Pins interface and is used by one execution
// context of the coprocessor.
//
// CPU activity is generated by calling CPUWrite(), CPURead() and
// CPURefresh(). Each of these functions performs one complete memory cycle
// and blocks until the cycle has finished. A cycle cannot start while the
// coprocessor is requesting the bus or holding the CPU in reset.
//
// Real memory cycles are timed by the CPU clock. The model instead finishes a
// cycle only when every observer Handle has sampled the cycle at least twice,
// so that a polling context never misses a CPU access however the goroutines
// are scheduled. Between cycles the bus is idle until every observer has
// sampled it, so an observer waiting for the end of one cycle never mistakes
// the next cycle for it. A Handle that is not an observer has no influence
// over the length of a cycle. An observer that stops sampling stalls the CPU.
//
// The CPU functions can be called from more than one goroutine. Cycles never
// overlap: a call waits for the cycle in progress to finish before starting
// its own.
//
// The coprocessor is granted the bus (BUSACK) when it asserts BUSREQ and no
// CPU cycle is in progress. While it holds the bus, a rising edge of WR with
// MREQ asserted commits the data bus to RAM.
package simboard
