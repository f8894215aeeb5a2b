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

// Package memserver watches the memory requests of the target CPU. Every
// byte written by the CPU is copied into the mirror so that the mirror always
// reflects the contents of the target memory. Optionally, the server also
// answers reads from the ROM range, standing in for the ROM chip.
//
// The server runs in its own execution context, started with Run(). The
// Step() function performs a single decision and is useful for testing.
//
// Cycles that happen while the coprocessor has been granted the bus (BUSACK
// asserted) are ignored. Those cycles are generated by the DMA engine, which
// updates the mirror itself.
//
// When answering ROM reads the server serves the initial jump injection if
// one is set. The target CPU resets several times when the RESET line is
// released, so it is not possible to know when the injected jump can be safely
// removed. The injection stays in place until it is cleared explicitly.
package memserver
