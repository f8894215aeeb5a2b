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
	"sync/atomic"
	"time"

	"github.com/zxcopro/zxcopro/hardware/mirror"
	"github.com/zxcopro/zxcopro/hardware/pins"
	"github.com/zxcopro/zxcopro/hardware/preferences"
	"github.com/zxcopro/zxcopro/logger"
)

// Gate is the interface to the interrupt-safety monitor.
type Gate interface {
	Unsafe() bool
}

// Tracer is notified of the outcome of every submitted transfer.
type Tracer interface {
	TraceDMA(d *Descriptor, m Mode, s Status)
}

// the lines driven by the engine while it holds the bus
const busLines = pins.AddressBus | pins.DataBus | pins.MREQ | pins.RD | pins.WR | pins.IORQ

// Engine is the bus-DMA engine. It should only be used from the main
// execution context.
type Engine struct {
	pins  pins.Pins
	mem   *mirror.Mirror
	gate  Gate
	prefs *preferences.DMAPreferences

	// if the memory server is answering ROM reads then a transfer must not
	// start while a read is in progress
	romEmulation bool

	tracer Tracer

	// number of transfers by outcome
	counts [StatusLast]atomic.Int64
}

// NewEngine is the preferred method of initialisation for the Engine type.
// The gate can be nil in which case every transfer is allowed to start
// immediately.
func NewEngine(p pins.Pins, mem *mirror.Mirror, gate Gate, prefs *preferences.DMAPreferences) *Engine {
	return &Engine{
		pins:  p,
		mem:   mem,
		gate:  gate,
		prefs: prefs,
	}
}

// SetROMEmulation should be set to true if the memory server is emulating
// the ROM.
func (e *Engine) SetROMEmulation(emulating bool) {
	e.romEmulation = emulating
}

// AttachTracer adds a tracer to the engine. A nil tracer removes a
// previously attached tracer.
func (e *Engine) AttachTracer(t Tracer) {
	e.tracer = t
}

// Count returns the number of transfers that have finished with the status.
func (e *Engine) Count(s Status) int64 {
	if s < 0 || s >= StatusLast {
		return 0
	}
	return e.counts[s].Load()
}

// Regions returns the current memory regions as set by the preferences.
func (e *Engine) Regions() Regions {
	return Regions{
		ContendedLow:  uint16(e.prefs.ContendedLow.Get().(int)),
		ContendedHigh: uint16(e.prefs.ContendedHigh.Get().(int)),
		TopBorderMax:  e.prefs.TopBorderMaxLength.Get().(int),
	}
}

// validate the descriptor against the current limits
func (e *Engine) validate(d *Descriptor) Status {
	if d == nil || d.Source == nil {
		return BadStruct
	}
	if d.Length == 0 {
		return TooSmall
	}
	if int(d.Length) > e.prefs.MaxLength.Get().(int) {
		return TooBig
	}
	if int(d.Increment) > e.prefs.MaxIncrement.Get().(int) {
		return BadIncrement
	}
	if len(d.Source) < d.sourceSpan() {
		return BadStruct
	}
	return OK
}

// Submit a transfer. The function blocks until the transfer is complete or
// has been rejected. Nothing is written to the bus or the mirror unless the
// returned status is OK.
//
// If honorInterrupt is false then the interrupt-safety monitor is ignored, as
// it is if the descriptor's IgnoreInterrupt field is true.
func (e *Engine) Submit(d *Descriptor, honorInterrupt bool) Status {
	mode, status := e.submit(d, honorInterrupt)

	e.counts[status].Add(1)
	if e.tracer != nil {
		e.tracer.TraceDMA(d, mode, status)
	}
	if status != OK {
		if d != nil {
			logger.Logf(logger.Allow, "dma", "%v: %04x (%d bytes, %v)", status, d.Target, d.Length, mode)
		} else {
			logger.Logf(logger.Allow, "dma", "%v: no descriptor", status)
		}
	}

	return status
}

func (e *Engine) submit(d *Descriptor, honorInterrupt bool) (Mode, Status) {
	if status := e.validate(d); status != OK {
		return Unclassified, status
	}

	mode, status := Classify(d.Target, int(d.Length), d.TopBorder, e.Regions())
	if status != OK {
		return mode, status
	}

	topBorderSettle, uncontendedSettle := e.prefs.Settle()
	settle := uncontendedSettle
	if mode == TopBorder {
		settle = topBorderSettle
	}

	if e.romEmulation {
		pins.WaitFor(e.pins, func(l pins.Lines) bool {
			return !l.Asserted(pins.RD | pins.MREQ)
		})
	}

	if honorInterrupt && !d.IgnoreInterrupt && e.gate != nil {
		for e.gate.Unsafe() {
		}
	}

	e.acquire()
	e.write(d, settle)
	e.release()

	return mode, OK
}

// acquire the bus from the Z80
func (e *Engine) acquire() {
	pins.Assert(e.pins, pins.BUSREQ)
	pins.WaitAsserted(e.pins, pins.BUSACK)

	// lines are deasserted before they become outputs so that the bus is
	// never driven to an active state by accident
	pins.Release(e.pins, busLines)
	e.pins.Direction(busLines, true)
}

// release the bus back to the Z80
func (e *Engine) release() {
	e.pins.Direction(busLines, false)
	pins.Release(e.pins, pins.BUSREQ)
	pins.WaitReleased(e.pins, pins.BUSACK)
}

// write the bytes of the transfer. the bus must have been acquired
func (e *Engine) write(d *Descriptor, settle time.Duration) {
	incr := int(d.Increment)
	for i := 0; i < int(d.Length); i++ {
		addr := d.Target + uint16(i)
		v := d.Source[i*incr]

		e.pins.Drive(pins.AddressBus, pins.Address(addr))
		pins.Assert(e.pins, pins.MREQ)
		e.pins.Drive(pins.DataBus, pins.Data(v))
		pins.Assert(e.pins, pins.WR)

		spin(settle)
		e.mem.Put(addr, v)

		pins.Release(e.pins, pins.WR|pins.MREQ)
	}
}

// spin busy-waits for the duration. a sleep would be far too coarse
func spin(d time.Duration) {
	if d <= 0 {
		return
	}
	start := time.Now()
	for time.Since(start) < d {
	}
}
