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

package pins

import (
	"fmt"
	"strings"
)

// Lines is a snapshot of every line on the bus.
type Lines uint64

// Bit positions of the address and data bus.
const (
	AddressShift = 0
	DataShift    = 16
)

// Address and data bus masks.
const (
	AddressBus Lines = 0xffff << AddressShift
	DataBus    Lines = 0xff << DataShift
)

// Control lines. The names are the Z80 names without the active-low bar.
const (
	MREQ Lines = 1 << (24 + iota)
	RD
	WR
	IORQ
	BUSREQ
	BUSACK
	INT
	RESET
	ROMCS
)

// ControlLines is the mask of all control lines.
const ControlLines = MREQ | RD | WR | IORQ | BUSREQ | BUSACK | INT | RESET | ROMCS

// AllLines is the mask of every line that has a meaning.
const AllLines = AddressBus | DataBus | ControlLines

var controlNames = []struct {
	line Lines
	name string
}{
	{MREQ, "MREQ"},
	{RD, "RD"},
	{WR, "WR"},
	{IORQ, "IORQ"},
	{BUSREQ, "BUSREQ"},
	{BUSACK, "BUSACK"},
	{INT, "INT"},
	{RESET, "RESET"},
	{ROMCS, "ROMCS"},
}

// Address returns the lines with the address bus set to the value.
func Address(addr uint16) Lines {
	return Lines(addr) << AddressShift
}

// Data returns the lines with the data bus set to the value.
func Data(data uint8) Lines {
	return Lines(data) << DataShift
}

// Address returns the value of the address bus.
func (l Lines) Address() uint16 {
	return uint16((l & AddressBus) >> AddressShift)
}

// Data returns the value of the data bus.
func (l Lines) Data() uint8 {
	return uint8((l & DataBus) >> DataShift)
}

// Asserted returns true if every line in the mask is asserted.
func (l Lines) Asserted(mask Lines) bool {
	return l&mask == mask
}

// Released returns true if no line in the mask is asserted.
func (l Lines) Released(mask Lines) bool {
	return l&mask == 0
}

func (l Lines) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("A=%04x D=%02x", l.Address(), l.Data()))
	for _, c := range controlNames {
		if l.Asserted(c.line) {
			s.WriteString(" ")
			s.WriteString(c.name)
		}
	}
	return s.String()
}
