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

// Package script runs Lua programs that play the part of the Z80 on a
// simulated board. A script writes command structures into target memory,
// triggers them and checks the results, exactly as a program running on the
// Spectrum would.
//
// The functions available to the script are:
//
//	cpu_write(addr, value)      write a byte with a CPU cycle
//	cpu_read(addr)              read a byte with a CPU cycle
//	poke_struct(addr, {bytes})  write each byte of the table from addr
//	trigger(addr)               write addr to the trigger pair, low byte first
//	wait_status(addr [, ms])    read the status byte of the command structure
//	                            at addr until it is not NONE. returns the
//	                            status and error bytes
//	mirror(addr)                the mirror's copy of the byte at addr
//	ram(addr)                   the byte at addr, without a CPU cycle
//	interrupt(period, width)    start the INT generator. microseconds
//	resets()                    number of times the target has been reset
//	sleep(ms)
//	log(msg)
//
// The status values are available as the globals STATUS_NONE, STATUS_OK,
// STATUS_ERROR and STATUS_UNABLE_TO_RESPOND. Command types are available as
// MEMSET_SMALL, PXY2SADDR, MEMSET_LARGE and MEMCPY.
package script
