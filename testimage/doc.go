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

// Package testimage loads a Z80 program into the target's memory shortly
// after the coprocessor has booted and then starts it by resetting the target
// with the initial jump injection set.
//
// The program is copied through the pending transfer slot, in chunks no
// larger than the maximum transfer length. The loader must be serviced from
// the main loop, which is also the context that activates the slot.
//
// The initial jump is only served when the memory server is emulating the
// ROM. The injection is never cleared by the loader because the target resets
// several times in quick succession and there is no way of knowing when the
// final reset has happened.
package testimage
