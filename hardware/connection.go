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

package hardware

import (
	"github.com/zxcopro/zxcopro/hardware/pins"
	"github.com/zxcopro/zxcopro/hardware/simboard"
)

// Connection supplies the lines for each execution context.
type Connection struct {
	Main    pins.Pins
	Server  pins.Pins
	Monitor pins.Pins

	// called when the coprocessor is shut down. can be nil
	Release func()
}

// SharedConnection uses the same lines for every execution context. Suitable
// for real hardware where every context reads the same GPIO block.
func SharedConnection(p pins.Pins) Connection {
	return Connection{
		Main:    p,
		Server:  p,
		Monitor: p,
	}
}

// SimulatedConnection connects to a simulated board. The main and server
// contexts observe every CPU cycle. The observers are detached when the
// coprocessor is shut down.
func SimulatedConnection(b *simboard.Board) Connection {
	main := b.Observer()
	server := b.Observer()
	return Connection{
		Main:    main,
		Server:  server,
		Monitor: b.Handle(),
		Release: func() {
			b.Detach(main)
			b.Detach(server)
		},
	}
}
