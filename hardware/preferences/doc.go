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

// Package preferences holds the deployment tunables of the coprocessor
// hardware. Values are persisted to the preferences file with the prefs
// package and can be changed while the coprocessor is running. Components
// read the values they need at the point of use.
//
// Keys in the preferences file are prefixed with "hardware.":
//
//	hardware.dma.contendedLow        first address of contended memory
//	hardware.dma.contendedHigh       last address of contended memory
//	hardware.dma.maxLength           maximum length of a transfer
//	hardware.dma.maxIncrement        maximum source stride of a transfer
//	hardware.dma.topBorderMaxLength  maximum length of a top-border transfer
//	hardware.dma.topBorderSettle     write settle time in top-border mode (ns)
//	hardware.dma.uncontendedSettle   write settle time in uncontended mode (ns)
//	hardware.intsafety.interval      time between INT pulses (us)
//	hardware.intsafety.window        unsafe period before the next INT (us)
//	hardware.server.romTop           last address answered from the ROM image
//	hardware.server.cpu              CPU affinity of the memory server
//	hardware.server.monitorCPU       CPU affinity of the interrupt monitor
package preferences
