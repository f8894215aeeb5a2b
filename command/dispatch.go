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
	"sync/atomic"

	"github.com/zxcopro/zxcopro/hardware/dma"
	"github.com/zxcopro/zxcopro/hardware/mirror"
	"github.com/zxcopro/zxcopro/logger"
	"github.com/zxcopro/zxcopro/trace"
)

// Dispatcher performs commands found in the mirror. All functions other than
// Count() must be called from the main context.
type Dispatcher struct {
	mem    *mirror.Mirror
	engine *dma.Engine
	slot   *dma.Slot
	trace  *trace.Table

	// number of commands by type
	count map[Type]*atomic.Int64
}

// NewDispatcher is the preferred method of initialisation for the Dispatcher
// type. The trace table can be nil.
func NewDispatcher(mem *mirror.Mirror, engine *dma.Engine, slot *dma.Slot, tbl *trace.Table) *Dispatcher {
	d := &Dispatcher{
		mem:    mem,
		engine: engine,
		slot:   slot,
		trace:  tbl,
		count:  make(map[Type]*atomic.Int64),
	}
	for t := range argSize {
		d.count[t] = &atomic.Int64{}
	}
	return d
}

// Count returns the number of commands of the type that have been seen.
func (d *Dispatcher) Count(t Type) int64 {
	if c, ok := d.count[t]; ok {
		return c.Load()
	}
	return 0
}

// command is a decoded command structure
type command struct {
	address uint16
	typ     Type
	flags   uint8
	args    []uint8
}

// the address of the byte at the offset in the command structure
func (c command) at(offset int) uint16 {
	return c.address + uint16(offset)
}

func (c command) topBorder() bool {
	return c.flags&dma.FlagTopBorder == dma.FlagTopBorder
}

func (c command) ignoreInterrupt() bool {
	return c.flags&dma.FlagIgnoreInterrupt == dma.FlagIgnoreInterrupt
}

func (c command) String() string {
	return fmt.Sprintf("%s @ %04x", c.typ, c.address)
}

// Dispatch the command whose structure is at the address.
func (d *Dispatcher) Dispatch(address uint16) {
	c := command{
		address: address,
		typ:     Type(d.mem.Get(address + offsetType)),
		flags:   d.mem.Get(address + offsetFlags),
	}

	if d.trace != nil {
		d.trace.NewEntry()
		d.trace.SetCommand(uint8(c.typ), c.flags)
	}

	n, ok := argSize[c.typ]
	if !ok {
		logger.Logf(logger.Allow, "command", "%s", c)
		d.fail(c, ErrUnknownCommand)
		return
	}
	d.count[c.typ].Add(1)

	// the structure must not run past the end of memory
	if int(address)+offsetArgs+n > mirror.Size {
		d.fail(c, ErrBadStruct)
		return
	}

	if c.flags&^validFlags != 0 {
		d.fail(c, ErrBadArg)
		return
	}

	c.args = d.mem.Read(c.at(offsetArgs), n)

	switch c.typ {
	case MemsetSmall:
		d.respond(c, d.engine.Submit(memset(c), true))

	case MemsetLarge:
		d.slot.Add(memset(c), func(s dma.Status) {
			if d.trace != nil {
				d.trace.NewEntry()
				d.trace.SetCommand(uint8(c.typ), c.flags)
			}
			d.respond(c, s)
		})

	case PixelAddress:
		d.pixelAddress(c)

	case Memcpy:
		d.memcpy(c)
	}
}

// memset creates the descriptor for a MemsetSmall or MemsetLarge command.
func memset(c command) *dma.Descriptor {
	return &dma.Descriptor{
		Source:          []uint8{c.args[2]},
		Target:          uint16(c.args[0]) | uint16(c.args[1])<<8,
		Length:          uint16(c.args[3]) | uint16(c.args[4])<<8,
		Increment:       0,
		TopBorder:       c.topBorder(),
		IgnoreInterrupt: c.ignoreInterrupt(),
	}
}

func (d *Dispatcher) pixelAddress(c command) {
	x := c.args[0]
	y := c.args[1]
	if y >= ScreenHeight {
		d.fail(c, ErrBadArg)
		return
	}

	a := ScreenAddress(x, y)
	s := d.write(c, c.at(offsetArgs+2), uint8(a), uint8(a>>8))
	d.respond(c, s)
}

func (d *Dispatcher) memcpy(c command) {
	desc, s := dma.Unmarshal(c.args, d.mem)
	if s != dma.OK {
		d.fail(c, Error(s))
		return
	}

	// the source must not run past the end of memory
	src := int(c.args[0]) | int(c.args[1])<<8
	if src+len(desc.Source) > mirror.Size {
		d.fail(c, ErrTooBig)
		return
	}

	// the flags of the command apply to the copy as well as the flags of
	// the descriptor
	desc.TopBorder = desc.TopBorder || c.topBorder()
	desc.IgnoreInterrupt = desc.IgnoreInterrupt || c.ignoreInterrupt()

	d.respond(c, d.engine.Submit(desc, true))
}

// write bytes into the target's memory with a DMA transfer. the transfer
// inherits the flags of the command.
func (d *Dispatcher) write(c command, address uint16, data ...uint8) dma.Status {
	return d.engine.Submit(&dma.Descriptor{
		Source:          data,
		Target:          address,
		Length:          uint16(len(data)),
		Increment:       1,
		TopBorder:       c.topBorder(),
		IgnoreInterrupt: c.ignoreInterrupt(),
	}, true)
}

// respond to a command according to the outcome of the command's transfer.
func (d *Dispatcher) respond(c command, s dma.Status) {
	if s != dma.OK {
		d.fail(c, Error(s))
		return
	}
	d.status(c, StatusOK)
}

// fail writes the error code and then the error status.
func (d *Dispatcher) fail(c command, e Error) {
	logger.Logf(logger.Allow, "command", "%s: %s", c, e)
	if d.trace != nil {
		d.trace.SetError(uint8(e))
	}

	// the status write is attempted even if the error write fails
	_ = d.write(c, c.at(offsetError), uint8(e))

	d.status(c, StatusError)
}

// status writes the status byte. if that fails then an attempt is made to
// write StatusUnableToRespond to the error byte.
func (d *Dispatcher) status(c command, s Status) {
	if d.trace != nil {
		d.trace.SetStatus(uint8(s))
	}

	if d.write(c, c.at(offsetStatus), uint8(s)) == dma.OK {
		return
	}

	logger.Logf(logger.Allow, "command", "%s: %s", c, StatusUnableToRespond)
	_ = d.write(c, c.at(offsetError), uint8(StatusUnableToRespond))
}
