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

package dma

import (
	"encoding/binary"
)

// Flag bits of a descriptor.
const (
	FlagTopBorder       uint8 = 0x01
	FlagIgnoreInterrupt uint8 = 0x02
)

// Descriptor describes a single transfer.
type Descriptor struct {
	// the bytes to be written. with an increment of zero the first byte is
	// written Length times
	Source []uint8

	// the first address in the target's memory
	Target uint16

	// number of bytes to write
	Length uint16

	// the source stride
	Increment uint16

	// the transfer starts even if the interrupt-safety monitor says that
	// it's unsafe to do so
	IgnoreInterrupt bool

	// the caller promises that the ULA is drawing the top border so that
	// contended memory can be written
	TopBorder bool
}

// Flags returns the flags of the descriptor as a byte.
func (d *Descriptor) Flags() uint8 {
	var f uint8
	if d.TopBorder {
		f |= FlagTopBorder
	}
	if d.IgnoreInterrupt {
		f |= FlagIgnoreInterrupt
	}
	return f
}

// SetFlags sets the boolean fields of the descriptor from a flags byte.
func (d *Descriptor) SetFlags(f uint8) {
	d.TopBorder = f&FlagTopBorder == FlagTopBorder
	d.IgnoreInterrupt = f&FlagIgnoreInterrupt == FlagIgnoreInterrupt
}

// sourceSpan is the number of source bytes needed by the transfer
func (d *Descriptor) sourceSpan() int {
	if d.Length == 0 {
		return 0
	}
	return (int(d.Length)-1)*int(d.Increment) + 1
}

// DescriptorSize is the size of a marshalled descriptor in the Z80's memory.
//
//	offset  size
//	0       2     source address (little-endian)
//	2       2     target address
//	4       2     length
//	6       2     increment
//	8       1     flags
const DescriptorSize = 9

// Memory is the interface to memory that a marshalled descriptor refers to.
type Memory interface {
	Read(address uint16, n int) []uint8
}

// the largest source that will be copied by Unmarshal()
const maxSourceSpan = 0x10000

// Unmarshal a descriptor from the Z80's memory layout. The source bytes are
// copied from mem. BadStruct is returned if data is shorter than
// DescriptorSize.
//
// No more than 64K of source is copied. A descriptor that needs more than
// that will fail with BadStruct when it is submitted, assuming that it passes
// the length and increment checks.
func Unmarshal(data []uint8, mem Memory) (*Descriptor, Status) {
	if len(data) < DescriptorSize || mem == nil {
		return nil, BadStruct
	}

	d := &Descriptor{
		Target:    binary.LittleEndian.Uint16(data[2:]),
		Length:    binary.LittleEndian.Uint16(data[4:]),
		Increment: binary.LittleEndian.Uint16(data[6:]),
	}
	d.SetFlags(data[8])
	d.Source = mem.Read(binary.LittleEndian.Uint16(data[0:]), min(d.sourceSpan(), maxSourceSpan))

	return d, OK
}

// Marshal the descriptor into the Z80's memory layout. The source slice is
// not part of the layout and is replaced by the source address.
func (d *Descriptor) Marshal(source uint16) []uint8 {
	b := make([]uint8, DescriptorSize)
	binary.LittleEndian.PutUint16(b[0:], source)
	binary.LittleEndian.PutUint16(b[2:], d.Target)
	binary.LittleEndian.PutUint16(b[4:], d.Length)
	binary.LittleEndian.PutUint16(b[6:], d.Increment)
	b[8] = d.Flags()
	return b
}
