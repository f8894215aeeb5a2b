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

// Package dma is the bus-DMA engine. It takes the Z80 bus with the
// BUSREQ/BUSACK handshake and writes a block of bytes into the target's
// memory, keeping the shadow mirror up to date as it goes.
//
// A transfer is described by a Descriptor and submitted with
// Engine.Submit(). The outcome is a Status value; transfers are never
// retried. Before any bus activity the target range is classified by
// Classify():
//
//	Uncontended  the range does not touch contended memory. Bytes are
//	             written with the uncontended settle time
//
//	TopBorder    the range touches contended memory but the caller has
//	             promised that the ULA is drawing the top border. The length
//	             is limited and bytes are written with the top-border
//	             settle time
//
//	Contended    the range touches contended memory at an unknown time. The
//	             transfer fails with ContentionFail. Writing to contended
//	             memory would need the ULA's timing to be tracked cycle by
//	             cycle
//
// Transfers are also gated by the interrupt-safety monitor. A transfer is
// not started in the short period before the next INT so that the Z80 never
// misses an interrupt because the bus is held.
//
// The Slot type holds at most one transfer that has been prepared by one
// part of the main context for activation by another part, later.
package dma
