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

//go:build !linux

package gpiochip

import (
	"github.com/zxcopro/zxcopro/curated"
	"github.com/zxcopro/zxcopro/hardware/pins"
)

// Unsupported is returned by Open() on platforms without the GPIO character
// device.
const Unsupported = "gpiochip: not supported on this platform"

// Chip is not available on this platform.
type Chip struct{}

// Open always fails on this platform.
func Open(_ string, _ Layout, _ string) (*Chip, error) {
	return nil, curated.Errorf(Unsupported)
}

// Close implements the io.Closer interface.
func (c *Chip) Close() error { return nil }

// Sample implements the pins.Pins interface.
func (c *Chip) Sample() pins.Lines { return 0 }

// Drive implements the pins.Pins interface.
func (c *Chip) Drive(_ pins.Lines, _ pins.Lines) {}

// Direction implements the pins.Pins interface.
func (c *Chip) Direction(_ pins.Lines, _ bool) {}
