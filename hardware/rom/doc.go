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

// Package rom holds the ROM image answered by the memory server and the
// initial-jump injection used to start code after a reset.
//
// The image is immutable once created. Images are loaded from disk with
// Load(), which requires the file to be exactly 16K. Blank() creates an image
// of an unprogrammed EPROM, useful when the coprocessor only mirrors memory.
//
// The Injection type replaces the first three bytes of the ROM with a JP
// instruction. After a reset the Z80 starts executing at address zero and so
// jumps directly to the destination. The injection is set and cleared by the
// main context and read by the memory server.
//
// An injection that is left in place after the jump has been taken causes
// the next reset to take the same jump. There is also no guarantee that the
// Z80 reads address zero after a reset pulse without some noise on the
// bus beforehand, so the injection is not a reliable way of starting code.
package rom
