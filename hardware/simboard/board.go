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

package simboard

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/zxcopro/zxcopro/hardware/pins"
	"github.com/zxcopro/zxcopro/hardware/rom"
)

// the last address of the ROM chip. there is no RAM below this address
const romTop = 0x3fff

// Board is a simulated target board.
type Board struct {
	crit sync.Mutex
	cond *sync.Cond

	// the coprocessor's line block
	out pins.Lines
	dir pins.Lines

	// lines driven by the CPU for the cycle in progress
	cycle  pins.Lines
	active bool

	busack bool

	// state of the lines driven by the coprocessor on the previous update.
	// used for edge detection
	prevDriven pins.Lines

	observers []*Handle

	chip *rom.Image
	ram  [0x10000]uint8

	// the INT line is asserted for intWidth at the start of every intPeriod
	epoch     time.Time
	intPeriod time.Duration
	intWidth  time.Duration

	resets int
	cycles int
}

// NewBoard is the preferred method of initialisation for the Board type. The
// chip argument is the image in the board's ROM chip and can be nil, in which
// case the ROM chip answers 0xff for every address.
func NewBoard(chip *rom.Image) *Board {
	if chip == nil {
		chip = rom.Blank()
	}
	b := &Board{
		chip:  chip,
		epoch: time.Now(),
	}
	b.cond = sync.NewCond(&b.crit)
	return b
}

func (b *Board) String() string {
	b.crit.Lock()
	defer b.crit.Unlock()
	return fmt.Sprintf("%s [%d cycles, %d resets]", b.lines(), b.cycles, b.resets)
}

// Handle returns a new Handle for a context that does not observe CPU
// cycles.
func (b *Board) Handle() *Handle {
	return &Handle{board: b}
}

// Observer returns a new Handle for a context that must see every CPU
// cycle.
func (b *Board) Observer() *Handle {
	h := &Handle{board: b, observer: true, idle: true}
	b.crit.Lock()
	defer b.crit.Unlock()
	b.observers = append(b.observers, h)
	return h
}

// Detach removes the Handle from the list of observers. It should be called
// when the context using the Handle is stopped.
func (b *Board) Detach(h *Handle) {
	b.crit.Lock()
	defer b.crit.Unlock()
	for i, o := range b.observers {
		if o == h {
			b.observers = append(b.observers[:i], b.observers[i+1:]...)
			break
		}
	}
	h.observer = false
	b.cond.Broadcast()
}

// SetInterrupt sets the period and width of the INT pulse. A period of zero
// stops the interrupt.
func (b *Board) SetInterrupt(period time.Duration, width time.Duration) {
	b.crit.Lock()
	defer b.crit.Unlock()
	b.epoch = time.Now()
	b.intPeriod = period
	b.intWidth = width
}

// Resets returns the number of times the coprocessor has released the RESET
// line.
func (b *Board) Resets() int {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.resets
}

// Cycles returns the number of completed CPU cycles.
func (b *Board) Cycles() int {
	b.crit.Lock()
	defer b.crit.Unlock()
	return b.cycles
}

// RAM returns the byte in RAM at the address. Addresses in the ROM range
// return the byte in the ROM chip.
func (b *Board) RAM(address uint16) uint8 {
	b.crit.Lock()
	defer b.crit.Unlock()
	if address <= romTop {
		return b.chip.Read(address)
	}
	return b.ram[address]
}

// LoadRAM copies data into RAM starting at the origin address, without the
// involvement of the CPU or the coprocessor. Bytes that would land in the ROM
// range are discarded.
func (b *Board) LoadRAM(origin uint16, data []uint8) {
	b.crit.Lock()
	defer b.crit.Unlock()
	for i, v := range data {
		a := origin + uint16(i)
		if a > romTop {
			b.ram[a] = v
		}
	}
}

// interrupting returns true if the INT line is asserted. must be called with
// the critical section locked
func (b *Board) interrupting() bool {
	if b.intPeriod <= 0 {
		return false
	}
	return time.Since(b.epoch)%b.intPeriod < b.intWidth
}

// memory returns the value answered by the board for a read of the address,
// not including anything driven by the coprocessor. must be called with the
// critical section locked
func (b *Board) memory(address uint16) uint8 {
	if address <= romTop {
		// the ROM chip is disabled by the coprocessor and nothing else
		// answers. the data bus floats high
		if b.out&b.dir&pins.ROMCS == pins.ROMCS {
			return 0xff
		}
		return b.chip.Read(address)
	}
	return b.ram[address]
}

// lines returns the state of every line on the edge connector. must be
// called with the critical section locked
func (b *Board) lines() pins.Lines {
	var l pins.Lines

	if b.active {
		l = b.cycle
		if l.Asserted(pins.RD) {
			l = (l &^ pins.DataBus) | pins.Data(b.memory(l.Address()))
		}
	}

	driven := b.out & b.dir

	// the coprocessor's value wins for any part of the address or data bus
	// it is driving
	buses := b.dir & (pins.AddressBus | pins.DataBus)
	l = (l &^ buses) | (driven & buses)

	// control lines are wired-or
	l |= driven & pins.ControlLines &^ pins.BUSACK &^ pins.INT

	if b.busack {
		l |= pins.BUSACK
	}
	if b.interrupting() {
		l |= pins.INT
	}

	return l
}

// observed returns true if the current cycle has been seen by every
// observer. must be called with the critical section locked
func (b *Board) observed() bool {
	for _, o := range b.observers {
		if o.samples < 2 {
			return false
		}
	}
	return true
}

// settled returns true if every observer has sampled the idle bus since the
// end of the previous cycle. must be called with the critical section locked
func (b *Board) settled() bool {
	for _, o := range b.observers {
		if !o.idle {
			return false
		}
	}
	return true
}

// update reacts to a change in the coprocessor lines. must be called with the
// critical section locked
func (b *Board) update() {
	driven := b.out & b.dir

	if driven.Asserted(pins.BUSREQ) {
		if !b.active {
			b.busack = true
		}
	} else {
		b.busack = false
	}

	if b.prevDriven.Asserted(pins.RESET) && !driven.Asserted(pins.RESET) {
		b.resets++
	}

	// the coprocessor writes to RAM only when it is the bus master. the write
	// happens on the edge of WR
	if b.busack && driven.Asserted(pins.MREQ|pins.WR) && !b.prevDriven.Asserted(pins.MREQ|pins.WR) {
		address := driven.Address()
		if address > romTop {
			b.ram[address] = driven.Data()
		}
	}

	b.prevDriven = driven
	b.cond.Broadcast()
}

// ready returns true if a new CPU cycle can start. must be called with the
// critical section locked
func (b *Board) ready() bool {
	if b.active || b.busack || !b.settled() {
		return false
	}
	driven := b.out & b.dir
	return !driven.Asserted(pins.BUSREQ) && !driven.Asserted(pins.RESET)
}

// cpu performs one memory cycle and returns the state of the lines at the end
// of the cycle. Calls from more than one goroutine are serialised.
func (b *Board) cpu(cycle pins.Lines) pins.Lines {
	b.crit.Lock()
	defer b.crit.Unlock()

	for !b.ready() {
		b.cond.Wait()
	}

	b.cycle = cycle
	b.active = true
	for _, o := range b.observers {
		o.samples = 0
	}

	for !b.observed() {
		b.cond.Wait()
	}

	l := b.lines()

	if cycle.Asserted(pins.WR) && cycle.Address() > romTop {
		b.ram[cycle.Address()] = cycle.Data()
	}

	b.cycle = 0
	b.active = false
	b.cycles++

	// the next cycle can't start until every observer has seen the bus go
	// idle. an observer still waiting for the end of this cycle would
	// otherwise count samples of the next one as its own
	for _, o := range b.observers {
		o.idle = false
	}

	// a bus request made during the cycle is granted at the end of it
	if (b.out & b.dir).Asserted(pins.BUSREQ) {
		b.busack = true
	}
	b.cond.Broadcast()

	return l
}

// CPUWrite performs a CPU write of data to the address.
func (b *Board) CPUWrite(address uint16, data uint8) {
	b.cpu(pins.MREQ | pins.WR | pins.Address(address) | pins.Data(data))
}

// CPURead performs a CPU read of the address and returns the value on the
// data bus at the end of the cycle.
func (b *Board) CPURead(address uint16) uint8 {
	return b.cpu(pins.MREQ | pins.RD | pins.Address(address)).Data()
}

// CPURefresh performs a memory refresh cycle. The address is the refresh
// address placed on the bus by the CPU.
func (b *Board) CPURefresh(address uint16) {
	b.cpu(pins.MREQ | pins.Address(address))
}

// Handle is one context's view of the board. Handle implements the pins.Pins
// interface.
type Handle struct {
	board    *Board
	observer bool

	// number of samples of the current CPU cycle
	samples int

	// the idle bus has been sampled since the end of the last cycle
	idle bool
}

// Sample implements the pins.Pins interface.
func (h *Handle) Sample() pins.Lines {
	b := h.board
	b.crit.Lock()

	l := b.lines()

	// an observer spinning on an idle bus gives way to the CPU
	yield := h.observer && !b.active
	if yield && !h.idle {
		h.idle = true
		b.cond.Broadcast()
	}
	if h.observer && b.active {
		h.samples++
		if h.samples == 2 {
			b.cond.Broadcast()
		}
	}

	b.crit.Unlock()

	if yield {
		runtime.Gosched()
	}

	return l
}

// Drive implements the pins.Pins interface.
func (h *Handle) Drive(mask pins.Lines, value pins.Lines) {
	b := h.board
	b.crit.Lock()
	defer b.crit.Unlock()
	b.out = (b.out &^ mask) | (value & mask)
	b.update()
}

// Direction implements the pins.Pins interface.
func (h *Handle) Direction(mask pins.Lines, output bool) {
	b := h.board
	b.crit.Lock()
	defer b.crit.Unlock()
	if output {
		b.dir |= mask
	} else {
		b.dir &^= mask
	}
	b.update()
}
