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

//go:build linux

package gpiochip

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"github.com/zxcopro/zxcopro/hardware/pins"
	"github.com/zxcopro/zxcopro/logger"
)

// Chip is a line request on a GPIO character device. Chip implements the
// pins.Pins interface and can be shared by several contexts.
type Chip struct {
	path  string
	lines *gpiocdev.Lines
	m     mapping

	// guards out and dir
	crit sync.Mutex
	out  pins.Lines
	dir  pins.Lines
}

// Open requests every line in the layout from the GPIO chip at the path.
// Every line starts as an input. The path can also be the name of the chip,
// eg. gpiochip0.
func Open(path string, layout Layout, consumer string) (*Chip, error) {
	m, err := newMapping(layout)
	if err != nil {
		return nil, err
	}

	lines, err := gpiocdev.RequestLines(path, m.offsets,
		gpiocdev.WithConsumer(consumer),
		gpiocdev.AsInput,
		gpiocdev.WithLines(m.subset(pins.ControlLines), gpiocdev.AsActiveLow),
	)
	if err != nil {
		return nil, fmt.Errorf("gpiochip: %s: line request: %w", path, err)
	}

	logger.Logf(logger.Allow, "gpiochip", "%s: %d lines requested", path, len(m.offsets))

	return &Chip{
		path:  path,
		lines: lines,
		m:     m,
	}, nil
}

func (c *Chip) String() string {
	return c.path
}

// Close releases the lines.
func (c *Chip) Close() error {
	return c.lines.Close()
}

// Sample implements the pins.Pins interface.
func (c *Chip) Sample() pins.Lines {
	values := make([]int, len(c.m.offsets))
	if err := c.lines.Values(values); err != nil {
		logger.Logf(logger.Allow, "gpiochip", "%s: get values: %v", c.path, err)
		return 0
	}
	return c.m.bus(values)
}

// Drive implements the pins.Pins interface.
func (c *Chip) Drive(mask pins.Lines, value pins.Lines) {
	c.crit.Lock()
	defer c.crit.Unlock()

	c.out = (c.out &^ mask) | (value & mask)

	// SetValues() covers every line in the request, including the inputs,
	// so the driven lines are set through their output configuration
	mask &= c.dir
	if mask == 0 {
		return
	}
	c.output(mask)
}

// Direction implements the pins.Pins interface.
func (c *Chip) Direction(mask pins.Lines, output bool) {
	c.crit.Lock()
	defer c.crit.Unlock()

	if output {
		c.dir |= mask
		c.output(mask)
		return
	}

	c.dir &^= mask
	offsets := c.m.subset(mask)
	if len(offsets) == 0 {
		return
	}
	if err := c.lines.Reconfigure(gpiocdev.WithLines(offsets, gpiocdev.AsInput)); err != nil {
		logger.Logf(logger.Allow, "gpiochip", "%s: set config: %v", c.path, err)
	}
}

// output configures the lines in the mask as outputs with the current output
// values. must be called with the critical section locked
func (c *Chip) output(mask pins.Lines) {
	offsets := c.m.subset(mask)
	if len(offsets) == 0 {
		return
	}
	values := c.m.values(mask, c.out)
	if err := c.lines.Reconfigure(gpiocdev.WithLines(offsets, gpiocdev.AsOutput(values...))); err != nil {
		logger.Logf(logger.Allow, "gpiochip", "%s: set values: %v", c.path, err)
	}
}
