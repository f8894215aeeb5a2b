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

// Package gpiochip implements the pins.Pins interface over a Linux GPIO
// character device (/dev/gpiochipN). The line request is made and managed
// with the go-gpiocdev package.
//
// Every line is requested in a single line request. Driven lines are set by
// reconfiguring them as outputs with new values, because a plain set of the
// request's values would include lines that are inputs. The Layout type maps each
// line of the bus to an offset on the chip. Control lines are requested
// active-low so that an asserted line reads as one, matching the convention of
// the pins package.
//
// Only Linux is supported. On other platforms Open() returns an error.
package gpiochip
