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

// Package command implements the interface between a program running on the
// target and the coprocessor.
//
// The target program builds a command structure in its own memory and then
// writes the address of the structure to the trigger register, low byte
// first. The write of the high byte marks the command as pending. The
// coprocessor reads the structure from the mirror, performs the command and
// writes a response back into the structure with a DMA transfer.
//
// The command structure is:
//
//	offset  size
//	0       1     command type
//	1       1     flags (bit 0 top border, bit 1 ignore interrupt safety)
//	2       1     status, set by the coprocessor
//	3       1     error, set by the coprocessor
//	4       -     command arguments
//
// The target program clears the status byte before triggering the command
// and then waits for it to become non-zero.
//
// Responses are written in two tiers. A failed command has its error byte
// written first and then the status byte is set to StatusError. A successful
// command has only its status byte written. If the status byte cannot be
// written then StatusUnableToRespond is written to the error byte. If that
// fails too, nothing more is done. There are no retries.
package command
