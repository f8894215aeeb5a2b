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

package hardware_test

import (
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/zxcopro/zxcopro/command"
	"github.com/zxcopro/zxcopro/hardware"
	"github.com/zxcopro/zxcopro/hardware/dma"
	"github.com/zxcopro/zxcopro/hardware/govern"
	"github.com/zxcopro/zxcopro/hardware/memserver"
	"github.com/zxcopro/zxcopro/hardware/preferences"
	"github.com/zxcopro/zxcopro/hardware/rom"
	"github.com/zxcopro/zxcopro/hardware/simboard"
	"github.com/zxcopro/zxcopro/test"
)

type harness struct {
	t     *testing.T
	board *simboard.Board
	copro *hardware.Coprocessor
	stop  chan struct{}
	done  chan error
}

// the ROM image answered by the memory server. every byte is the low byte of
// its address
func countingROM(t *testing.T) *rom.Image {
	t.Helper()
	data := make([]uint8, rom.Size)
	for i := range data {
		data[i] = uint8(i)
	}
	img, err := rom.FromBytes("counting", data)
	test.DemandSuccess(t, err)
	return img
}

func newHarness(t *testing.T, opts hardware.Options) *harness {
	t.Helper()

	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)

	h := &harness{
		t:     t,
		board: simboard.NewBoard(nil),
		stop:  make(chan struct{}),
		done:  make(chan error),
	}

	h.copro, err = hardware.NewCoprocessor(hardware.SimulatedConnection(h.board), p, opts)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, h.copro.Boot())

	go func() {
		h.done <- h.copro.Run(func() (govern.State, error) {
			select {
			case <-h.stop:
				return govern.Ending, nil
			default:
			}
			return govern.Running, nil
		})
	}()

	t.Cleanup(h.shutdown)

	return h
}

func (h *harness) shutdown() {
	select {
	case <-h.stop:
		return
	default:
	}
	close(h.stop)
	test.ExpectSuccess(h.t, <-h.done)
}

// write bytes into memory with the CPU
func (h *harness) write(address uint16, data ...uint8) {
	for i, v := range data {
		h.board.CPUWrite(address+uint16(i), v)
	}
}

// trigger the command at the address and wait for the status byte to become
// non-zero. the status is returned
func (h *harness) command(address uint16) command.Status {
	h.t.Helper()

	h.board.CPUWrite(command.TriggerLo, uint8(address))
	h.board.CPUWrite(command.TriggerHi, uint8(address>>8))

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if s := h.board.CPURead(address + 2); s != 0 {
			return command.Status(s)
		}
	}
	h.t.Fatalf("no response to command at %04x", address)
	return command.StatusNone
}

func memset(flags uint8, target uint16, c uint8, n uint16) []uint8 {
	return []uint8{uint8(command.MemsetSmall), flags, 0, 0, uint8(target), uint8(target >> 8), c, uint8(n), uint8(n >> 8)}
}

func TestROMEmulation(t *testing.T) {
	h := newHarness(t, hardware.Options{
		Mode: memserver.FullEmulation,
		ROM:  countingROM(t),
	})

	// the board's own ROM chip is blank. the values can only have come from
	// the coprocessor
	test.ExpectEquality(t, h.board.CPURead(0x0010), 0x10)
	test.ExpectEquality(t, h.board.CPURead(0x3fff), 0xff)
	test.ExpectEquality(t, h.board.CPURead(0x1234), 0x34)

	// RAM reads are answered by the board
	h.write(0x9000, 0xab)
	test.ExpectEquality(t, h.board.CPURead(0x9000), 0xab)

	// the mirror is seeded with the ROM image
	test.ExpectEquality(t, h.copro.Mirror.Get(0x1234), 0x34)
}

func TestMirrorOnly(t *testing.T) {
	h := newHarness(t, hardware.Options{
		Mode: memserver.MirrorOnly,
	})

	// the board's ROM chip answers
	test.ExpectEquality(t, h.board.CPURead(0x0010), 0xff)

	h.write(0xc000, 1, 2, 3)
	h.shutdown()

	test.ExpectEquality(t, h.copro.Mirror.Get(0xc000), 0x01)
	test.ExpectEquality(t, h.copro.Mirror.Get(0xc002), 0x03)
}

func TestMemset(t *testing.T) {
	h := newHarness(t, hardware.Options{
		Mode: memserver.FullEmulation,
		ROM:  countingROM(t),
	})

	h.write(0x8000, memset(0, 0xc000, 0x55, 256)...)
	test.ExpectEquality(t, h.command(0x8000), command.StatusOK)

	h.shutdown()

	for a := 0xc000; a < 0xc100; a++ {
		test.ExpectEquality(t, h.board.RAM(uint16(a)), 0x55, a)
		test.ExpectEquality(t, h.copro.Mirror.Get(uint16(a)), 0x55, a)
	}
	test.ExpectEquality(t, h.board.RAM(0xc100), 0x00)
	test.ExpectEquality(t, h.copro.Engine.Count(dma.OK), 2)
	test.ExpectEquality(t, h.copro.Dispatcher.Count(command.MemsetSmall), 1)
}

func TestContendedFill(t *testing.T) {
	h := newHarness(t, hardware.Options{
		Mode: memserver.FullEmulation,
		ROM:  countingROM(t),
	})

	h.write(0x8000, memset(0, 0x4000, 0xff, 32)...)
	test.ExpectEquality(t, h.command(0x8000), command.StatusError)
	test.ExpectEquality(t, command.Error(h.board.CPURead(0x8003)), command.Error(dma.ContentionFail))

	h.shutdown()

	for a := 0x4000; a < 0x4020; a++ {
		test.ExpectEquality(t, h.board.RAM(uint16(a)), 0x00, a)
		test.ExpectEquality(t, h.copro.Mirror.Get(uint16(a)), 0x00, a)
	}
}

func TestPaused(t *testing.T) {
	h := newHarness(t, hardware.Options{
		Mode: memserver.FullEmulation,
		ROM:  countingROM(t),
	})

	h.copro.Governor.SetState(govern.Paused)

	h.write(0x8000, memset(0, 0xc000, 0x55, 1)...)
	h.board.CPUWrite(command.TriggerLo, 0x00)
	h.board.CPUWrite(command.TriggerHi, 0x80)

	// the command is captured but not serviced
	for i := 0; i < 100; i++ {
		test.DemandEquality(t, h.board.CPURead(0x8002), 0x00)
	}

	h.copro.Governor.SetState(govern.Running)

	deadline := time.Now().Add(5 * time.Second)
	for h.board.CPURead(0x8002) == 0 && time.Now().Before(deadline) {
	}
	test.ExpectEquality(t, command.Status(h.board.CPURead(0x8002)), command.StatusOK)
	test.ExpectEquality(t, h.board.CPURead(0xc000), 0x55)
}

func TestTestImage(t *testing.T) {
	h := newHarness(t, hardware.Options{
		Mode:      memserver.FullEmulation,
		ROM:       countingROM(t),
		TestImage: []uint8{0xf3, 0x76},
	})

	// one reset when booting and one to start the test image
	deadline := time.Now().Add(5 * time.Second)
	for h.board.Resets() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	test.DemandEquality(t, h.board.Resets(), 2)

	test.ExpectEquality(t, h.board.RAM(0x8000), 0xf3)
	test.ExpectEquality(t, h.board.RAM(0x8001), 0x76)

	// the CPU starts at address zero and finds a jump to the test image
	test.ExpectEquality(t, h.board.CPURead(0x0000), 0xc3)
	test.ExpectEquality(t, h.board.CPURead(0x0001), 0x00)
	test.ExpectEquality(t, h.board.CPURead(0x0002), 0x80)
	test.ExpectEquality(t, h.board.CPURead(0x0003), 0x03)
}

func TestTestImageRequiresEmulation(t *testing.T) {
	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)

	board := simboard.NewBoard(nil)
	_, err = hardware.NewCoprocessor(hardware.SimulatedConnection(board), p, hardware.Options{
		Mode:      memserver.MirrorOnly,
		TestImage: []uint8{0x00},
	})
	test.ExpectFailure(t, err)
}

// the CPU writes to memory while the coprocessor fills memory elsewhere. when
// everything has stopped the mirror must match the board's RAM
func TestNoTornWrites(t *testing.T) {
	if raceEnabled {
		t.Skip("the mirror is deliberately unsynchronised")
	}

	h := newHarness(t, hardware.Options{
		Mode: memserver.FullEmulation,
		ROM:  countingROM(t),
	})

	rnd := rand.New(rand.NewSource(1000))

	for i := 0; i < 32; i++ {
		// scribble on a region of memory not touched by the fill
		for j := 0; j < 64; j++ {
			h.board.CPUWrite(0x9000+uint16(rnd.Intn(0x100)), uint8(rnd.Intn(0x100)))
		}

		c := uint8(rnd.Intn(0x100))
		n := uint16(rnd.Intn(0x20) + 1)
		h.write(0x8000, memset(0, 0xc000, c, n)...)
		test.DemandEquality(t, h.command(0x8000), command.StatusOK, i)
	}

	h.shutdown()

	for a := 0x8000; a < 0x10000; a++ {
		test.ExpectEquality(t, h.copro.Mirror.Get(uint16(a)), h.board.RAM(uint16(a)), a)
	}
}

// a RAM read is answered by the board and the memory server waits for the
// end of it. the write that follows must still reach the mirror
func TestReadThenWrite(t *testing.T) {
	h := newHarness(t, hardware.Options{
		Mode: memserver.FullEmulation,
		ROM:  countingROM(t),
	})

	for i := 0; i < 200; i++ {
		h.board.CPURead(0x9000)
		h.board.CPUWrite(0xa000+uint16(i), 0x5a)
	}

	h.shutdown()

	for i := 0; i < 200; i++ {
		test.ExpectEquality(t, h.copro.Mirror.Get(0xa000+uint16(i)), 0x5a, i)
	}
}

// the CPU keeps writing to memory while the coprocessor is filling memory
// elsewhere. when everything has stopped the mirror must match the board's RAM
func TestWritesDuringTransfer(t *testing.T) {
	if raceEnabled {
		t.Skip("the mirror is deliberately unsynchronised")
	}

	h := newHarness(t, hardware.Options{
		Mode: memserver.FullEmulation,
		ROM:  countingROM(t),
	})

	rnd := rand.New(rand.NewSource(2000))

	for i := 0; i < 16; i++ {
		c := uint8(rnd.Intn(0x100))
		n := uint16(rnd.Intn(0x800) + 0x100)
		cmd := memset(0, 0xc000, c, n)
		if i%2 == 1 {
			cmd[0] = uint8(command.MemsetLarge)
		}
		h.write(0x8000, cmd...)
		h.board.CPUWrite(command.TriggerLo, 0x00)
		h.board.CPUWrite(command.TriggerHi, 0x80)

		var st uint8
		deadline := time.Now().Add(5 * time.Second)
		for st == 0 && time.Now().Before(deadline) {
			// mix of reads and writes, in a region not touched by the fill
			switch rnd.Intn(3) {
			case 0:
				h.board.CPURead(0x9000 + uint16(rnd.Intn(0x1000)))
			default:
				h.board.CPUWrite(0x9000+uint16(rnd.Intn(0x1000)), uint8(rnd.Intn(0x100)))
			}
			st = h.board.CPURead(0x8002)
		}
		test.DemandEquality(t, command.Status(st), command.StatusOK, i)
	}

	h.shutdown()

	for a := 0x8000; a < 0x10000; a++ {
		test.ExpectEquality(t, h.copro.Mirror.Get(uint16(a)), h.board.RAM(uint16(a)), a)
	}
}

func TestDo(t *testing.T) {
	h := newHarness(t, hardware.Options{
		Mode: memserver.FullEmulation,
		ROM:  countingROM(t),
	})

	var full bool
	test.ExpectSuccess(t, h.copro.Do(func() {
		h.copro.Slot.Add(&dma.Descriptor{Source: []uint8{0x99}, Target: 0x9000, Length: 1}, nil)
		full = h.copro.Slot.Full()
	}))
	test.ExpectSuccess(t, full)

	// the slot is activated by the main loop
	deadline := time.Now().Add(5 * time.Second)
	for h.board.RAM(0x9000) != 0x99 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	test.ExpectEquality(t, h.board.RAM(0x9000), 0x99)

	// functions are still run when paused
	h.copro.Governor.SetState(govern.Paused)
	test.ExpectSuccess(t, h.copro.Do(func() {}))

	h.shutdown()
	test.ExpectFailure(t, h.copro.Do(func() {}))
}
