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

// Package hardware is the base package for the coprocessor. It and its
// sub-packages contain everything required to run the coprocessor against
// either a simulated board or real hardware.
//
// The Coprocessor type is the root of the firmware and contains references to
// all of the sub-systems. It is created with NewCoprocessor() and started
// with Boot(). After booting the main loop is run with Run() or can be
// serviced one pass at a time with Service().
//
// Three execution contexts are used. The main context runs the main loop,
// captures commands from the target and performs DMA transfers. The memory
// server and the interrupt monitor each run in a context of their own. Each
// context reaches the hardware lines through its own pins.Pins, supplied by a
// Connection.
//
// Other goroutines, such as the monitor, use Do() to run a function in the
// main context between passes of the main loop.
package hardware
