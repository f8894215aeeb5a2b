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

// Package mirror is the shadow copy of the Z80 address space. It is kept up to
// date by the memory server, which copies every write cycle it sees on the
// bus, and by the DMA engine, which updates it for every byte it writes.
//
// There is exactly one byte of storage for every one of the 65536 addresses.
// Access is lock-free. The memory server and the engine write the mirror
// from different execution contexts but never during the same bus cycle
// because the bus arbitration handshake makes them take turns. Every mutation
// is a single byte store so a reader sees either the old or the new value,
// never a mix.
//
// Because of this the mirror is not safe in the sense that the Go race
// detector understands. Adding a lock would put the cost of the lock into the
// memory server's bus loop, which must complete inside a single bus cycle.
package mirror
