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

// Package intsafety watches the Z80's INT line and decides whether it is safe
// to start a DMA transfer.
//
// The ULA raises INT once per frame. A transfer holds the bus and if it is
// still holding the bus when INT arrives the Z80 will miss the interrupt.
// The monitor marks the short period before the next expected INT as unsafe.
//
//	INT                                         INT
//	 |<------------- safe ------------->|unsafe|
//	 |<------------ interval -------------------->|
//
// Every INT pulse clears the unsafe flag and restarts the timing. Before the
// first pulse has been seen the flag is clear.
//
// The monitor runs in its own execution context. The unsafe flag is read by
// the DMA engine from the main context.
package intsafety
