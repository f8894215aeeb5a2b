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

// Package trace records the progress of each command in a fixed size table.
// The table is a diagnostic aid and can be examined from the monitor while the
// coprocessor is running.
//
// Each entry records the command, the arguments of the DMA transfer it
// resulted in, the transfer mode, the transfer outcome and the response
// returned to the target. Fields are filled in as the command progresses and
// the entry's Set mask records which fields are valid.
//
// The table implements the dma.Tracer interface. Transfers that are not
// part of a command, such as the loading of a test image, get an entry of
// their own.
package trace
