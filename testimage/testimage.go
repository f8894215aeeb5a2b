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

package testimage

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/zxcopro/zxcopro/hardware/dma"
	"github.com/zxcopro/zxcopro/hardware/pins"
	"github.com/zxcopro/zxcopro/hardware/rom"
	"github.com/zxcopro/zxcopro/logger"
)

// Default values for the loader.
const (
	DefaultOrigin = 0x8000
	DefaultDelay  = 3 * time.Second
	ResetPulse    = 100 * time.Microsecond
)

// Load a Z80 program from a file. The program must fit between the origin
// address and the end of memory.
func Load(path string, origin uint16) ([]uint8, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "testimage")
	}
	if len(data) == 0 {
		return nil, errors.Errorf("testimage: %s: empty file", path)
	}
	if int(origin)+len(data) > 0x10000 {
		return nil, errors.Errorf("testimage: %s: %d bytes do not fit at %04x", path, len(data), origin)
	}
	return data, nil
}

// state of the Loader
type state int

const (
	waiting state = iota
	loading
	started
	failed
)

// Loader copies a program into the target's memory and starts it.
type Loader struct {
	code   []uint8
	origin uint16
	delay  time.Duration
	chunk  int

	slot *dma.Slot
	jump *rom.Injection
	pins pins.Pins

	now   func() time.Time
	start time.Time

	state state

	// offset into code of the next chunk to queue
	next int
}

// NewLoader is the preferred method of initialisation for the Loader type.
// The delay is measured from the creation of the loader. Chunk is the
// largest number of bytes copied by a single transfer.
func NewLoader(code []uint8, origin uint16, delay time.Duration, chunk int,
	slot *dma.Slot, jump *rom.Injection, p pins.Pins) (*Loader, error) {

	if len(code) == 0 {
		return nil, fmt.Errorf("testimage: no code")
	}
	if chunk <= 0 {
		return nil, fmt.Errorf("testimage: chunk size must be positive")
	}
	if int(origin)+len(code) > 0x10000 {
		return nil, fmt.Errorf("testimage: code does not fit at %04x", origin)
	}

	return &Loader{
		code:   code,
		origin: origin,
		delay:  delay,
		chunk:  chunk,
		slot:   slot,
		jump:   jump,
		pins:   p,
		now:    time.Now,
		start:  time.Now(),
	}, nil
}

// SetClock replaces the clock used by the loader and restarts the delay.
func (l *Loader) SetClock(now func() time.Time) {
	l.now = now
	l.start = now()
}

func (l *Loader) String() string {
	switch l.state {
	case waiting:
		return fmt.Sprintf("test image: %d bytes waiting", len(l.code))
	case loading:
		return fmt.Sprintf("test image: %d of %d bytes loaded", l.next, len(l.code))
	case started:
		return fmt.Sprintf("test image: started at %04x", l.origin)
	}
	return "test image: failed"
}

// Started returns true once the program has been loaded and the target reset.
func (l *Loader) Started() bool {
	return l.state == started
}

// Failed returns true if the program could not be loaded.
func (l *Loader) Failed() bool {
	return l.state == failed
}

// Service the loader. Must be called from the main loop.
func (l *Loader) Service() {
	if l.state != waiting {
		return
	}
	if l.now().Sub(l.start) < l.delay {
		return
	}
	l.state = loading
	logger.Logf(logger.Allow, "testimage", "loading %d bytes at %04x", len(l.code), l.origin)
	l.queue()
}

// queue the next chunk of the program.
func (l *Loader) queue() {
	n := min(l.chunk, len(l.code)-l.next)
	d := &dma.Descriptor{
		Source:    l.code[l.next : l.next+n],
		Target:    l.origin + uint16(l.next),
		Length:    uint16(n),
		Increment: 1,
	}
	l.next += n
	l.slot.Add(d, l.loaded)
}

// loaded is called when a chunk has been transferred.
func (l *Loader) loaded(s dma.Status) {
	if s != dma.OK {
		logger.Logf(logger.Allow, "testimage", "load failed: %v", s)
		l.state = failed
		return
	}

	if l.next < len(l.code) {
		l.queue()
		return
	}

	l.jump.Set(l.origin)

	pins.Assert(l.pins, pins.RESET)
	time.Sleep(ResetPulse)
	pins.Release(l.pins, pins.RESET)

	l.state = started
	logger.Logf(logger.Allow, "testimage", "started (%s)", l.jump)
}
