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

package command

import (
	"fmt"

	"github.com/zxcopro/zxcopro/hardware/dma"
)

// Type of command.
type Type uint8

// List of valid Type values.
const (
	// fill memory with a single value. arguments:
	//
	//	[address lo, address hi, value, count lo, count hi]
	MemsetSmall Type = 128 + iota

	// convert a pixel coordinate to a screen address. arguments:
	//
	//	[x, y, answer lo, answer hi]
	PixelAddress

	// as MemsetSmall but the fill is started by the main loop at the next
	// opportunity, through the pending transfer slot
	MemsetLarge

	// copy memory. arguments are a marshalled dma.Descriptor
	Memcpy
)

func (t Type) String() string {
	switch t {
	case MemsetSmall:
		return "MEMSET_SMALL"
	case PixelAddress:
		return "PXY2SADDR"
	case MemsetLarge:
		return "MEMSET_LARGE"
	case Memcpy:
		return "MEMCPY"
	}
	return fmt.Sprintf("unknown command (%d)", uint8(t))
}

// Status written to the status byte of the command structure.
type Status uint8

// List of valid Status values.
const (
	StatusNone Status = iota
	StatusOK
	StatusError
	StatusUnableToRespond
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	case StatusUnableToRespond:
		return "unable to return response"
	case StatusUnknown:
		return "unknown"
	}
	return fmt.Sprintf("unknown status (%d)", uint8(s))
}

// Error written to the error byte of the command structure. Values less than
// ErrBadStruct are dma.Status values.
type Error uint8

// List of command errors. The numbering continues from the dma.Status
// values.
const (
	ErrBadStruct Error = Error(dma.StatusLast) + iota
	ErrUnknownCommand
	ErrBadArg
	ErrTooBig
	ErrBadIncr
)

func (e Error) String() string {
	switch e {
	case ErrBadStruct:
		return "bad command structure"
	case ErrUnknownCommand:
		return "unknown command"
	case ErrBadArg:
		return "bad argument"
	case ErrTooBig:
		return "too big"
	case ErrBadIncr:
		return "bad increment"
	}
	if e < Error(dma.StatusLast) {
		return dma.Status(e).String()
	}
	return fmt.Sprintf("unknown error (%d)", uint8(e))
}

// offsets into the command structure
const (
	offsetType   = 0
	offsetFlags  = 1
	offsetStatus = 2
	offsetError  = 3
	offsetArgs   = 4
)

// argument sizes of each command type
var argSize = map[Type]int{
	MemsetSmall:  5,
	PixelAddress: 4,
	MemsetLarge:  5,
	Memcpy:       dma.DescriptorSize,
}

// flags that are valid in the flags byte of a command
const validFlags = dma.FlagTopBorder | dma.FlagIgnoreInterrupt
