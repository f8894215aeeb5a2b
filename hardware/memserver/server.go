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

package memserver

import (
	"fmt"
	"sync/atomic"

	"github.com/zxcopro/zxcopro/curated"
	"github.com/zxcopro/zxcopro/hardware/mirror"
	"github.com/zxcopro/zxcopro/hardware/pins"
	"github.com/zxcopro/zxcopro/hardware/preferences"
	"github.com/zxcopro/zxcopro/hardware/rom"
	"github.com/zxcopro/zxcopro/logger"
)

// Mode of the memory server. The mode is fixed when the server is created.
type Mode int

// List of valid Mode values.
const (
	// the server answers reads in the ROM range and mirrors every write
	FullEmulation Mode = iota

	// the ROM chip of the target answers reads. the server only mirrors
	// writes
	MirrorOnly
)

func (m Mode) String() string {
	switch m {
	case FullEmulation:
		return "full emulation"
	case MirrorOnly:
		return "mirror only"
	}
	return "unknown mode"
}

// NoImage is returned by NewServer() if the server is asked to emulate the
// ROM without an image.
const NoImage = "memserver: full emulation requires a ROM image"

// Server mirrors target memory writes and optionally emulates the ROM.
type Server struct {
	pins  pins.Pins
	mem   *mirror.Mirror
	image *rom.Image
	jump  *rom.Injection
	mode  Mode
	prefs *preferences.ServerPreferences

	// counts of each decision made. read from other contexts
	writes   atomic.Int64
	romReads atomic.Int64
	ramReads atomic.Int64
	ignored  atomic.Int64
}

// NewServer is the preferred method of initialisation for the Server type. The
// image and injection are only used in FullEmulation mode and may be nil
// otherwise.
func NewServer(p pins.Pins, mem *mirror.Mirror, image *rom.Image, jump *rom.Injection,
	mode Mode, prefs *preferences.ServerPreferences) (*Server, error) {

	if mode == FullEmulation && image == nil {
		return nil, curated.Errorf(NoImage)
	}
	if jump == nil {
		jump = &rom.Injection{}
	}

	return &Server{
		pins:  p,
		mem:   mem,
		image: image,
		jump:  jump,
		mode:  mode,
		prefs: prefs,
	}, nil
}

func (s *Server) String() string {
	return fmt.Sprintf("%s: %d writes, %d ROM reads, %d RAM reads, %d ignored",
		s.mode, s.writes.Load(), s.romReads.Load(), s.ramReads.Load(), s.ignored.Load())
}

// Mode returns the mode of the server.
func (s *Server) Mode() Mode {
	return s.mode
}

// Writes returns the number of CPU writes mirrored.
func (s *Server) Writes() int64 {
	return s.writes.Load()
}

// ROMReads returns the number of ROM reads answered.
func (s *Server) ROMReads() int64 {
	return s.romReads.Load()
}

// Run the server until the quit channel is closed. A nil channel means that
// the server runs until the program ends.
func (s *Server) Run(quit <-chan struct{}) {
	logger.Logf(logger.Allow, "memserver", "running (%s)", s.mode)
	for {
		select {
		case <-quit:
			logger.Log(logger.Allow, "memserver", "stopped")
			return
		default:
		}
		s.Step()
	}
}

// Step samples the bus once and acts on the memory request, if there is one.
// Returns true if a memory request was seen.
func (s *Server) Step() bool {
	l := s.pins.Sample()
	if !l.Asserted(pins.MREQ) {
		return false
	}

	// the coprocessor is the bus master
	if l.Asserted(pins.BUSACK) {
		s.ignored.Add(1)
		return true
	}

	if l.Asserted(pins.RD) {
		if s.mode != FullEmulation {
			return true
		}

		address := l.Address()
		if int(address) <= s.prefs.ROMTop.Get().(int) {
			s.answer(address)
			return true
		}

		// the RAM chips of the target answer the read. the server waits for
		// the end of the cycle so that the same read isn't seen twice
		s.ramReads.Add(1)
		pins.WaitReleased(s.pins, pins.MREQ)
		return true
	}

	// a write cycle can be seen several times. the value written is the same
	// each time so no harm is done
	if l.Asserted(pins.WR) {
		s.mem.Put(l.Address(), l.Data())
		s.writes.Add(1)
		return true
	}

	// refresh cycle
	return true
}

// answer a ROM read by placing the ROM byte on the data bus until the end of
// the cycle.
func (s *Server) answer(address uint16) {
	v := s.jump.Patch(address, s.image.Read(address))

	s.pins.Drive(pins.DataBus, pins.Data(v))
	s.pins.Direction(pins.DataBus, true)

	pins.WaitReleased(s.pins, pins.MREQ)

	s.pins.Direction(pins.DataBus, false)
	s.romReads.Add(1)
}
