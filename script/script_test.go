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

package script_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zxcopro/zxcopro/curated"
	"github.com/zxcopro/zxcopro/hardware"
	"github.com/zxcopro/zxcopro/hardware/govern"
	"github.com/zxcopro/zxcopro/hardware/memserver"
	"github.com/zxcopro/zxcopro/hardware/preferences"
	"github.com/zxcopro/zxcopro/hardware/rom"
	"github.com/zxcopro/zxcopro/hardware/simboard"
	"github.com/zxcopro/zxcopro/script"
	"github.com/zxcopro/zxcopro/test"
)

func newScript(t *testing.T) (*script.Script, *simboard.Board) {
	t.Helper()

	p, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "prefs"))
	test.DemandSuccess(t, err)

	board := simboard.NewBoard(nil)

	copro, err := hardware.NewCoprocessor(hardware.SimulatedConnection(board), p, hardware.Options{
		Mode: memserver.FullEmulation,
		ROM:  rom.Blank(),
	})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, copro.Boot())

	done := make(chan error)
	go func() {
		done <- copro.Run(nil)
	}()

	t.Cleanup(func() {
		copro.Governor.SetState(govern.Ending)
		test.ExpectSuccess(t, <-done)
	})

	return script.NewScript(board, copro), board
}

func TestMemsetSmall(t *testing.T) {
	s, board := newScript(t)

	err := s.RunString(context.Background(), "memset", `
		poke_struct(0x8000, {MEMSET_SMALL, 0, 0, 0, 0x00, 0xc0, 0x55, 0x00, 0x01})
		trigger(0x8000)
		local status, err = wait_status(0x8000)
		assert(status == STATUS_OK, "status " .. status)
		assert(err == 0)
		assert(ram(0xc000) == 0x55)
		assert(ram(0xc0ff) == 0x55)
		assert(ram(0xc100) == 0x00)
		assert(mirror(0xc0ff) == 0x55)
		log("memset complete")
	`)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, board.RAM(0xc080), 0x55)
}

func TestCommandError(t *testing.T) {
	s, _ := newScript(t)

	err := s.RunString(context.Background(), "unknown", `
		poke_struct(0x9000, {0x99, 0, 0, 0})
		trigger(0x9000)
		local status, err = wait_status(0x9000)
		assert(status == STATUS_ERROR)
		assert(err == 8)
	`)
	test.ExpectSuccess(t, err)
}

func TestPixelAddress(t *testing.T) {
	s, _ := newScript(t)

	err := s.RunString(context.Background(), "pxy2saddr", `
		poke_struct(0x9000, {PXY2SADDR, 0, 0, 0, 8, 1, 0, 0})
		trigger(0x9000)
		assert(wait_status(0x9000) == STATUS_OK)
		assert(cpu_read(0x9006) == 0x01)
		assert(cpu_read(0x9007) == 0x41)
	`)
	test.ExpectSuccess(t, err)
}

func TestCPU(t *testing.T) {
	s, board := newScript(t)

	err := s.RunString(context.Background(), "cpu", `
		cpu_write(0xa000, 42)
		assert(cpu_read(0xa000) == 42)
		assert(mirror(0xa000) == 42)

		-- writes to the ROM are not committed
		cpu_write(0x0010, 1)
		assert(cpu_read(0x0010) == 0xff)
	`)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, board.RAM(0xa000), 42)
}

func TestScriptFailure(t *testing.T) {
	s, _ := newScript(t)

	err := s.RunString(context.Background(), "fail", `error("boom")`)
	test.ExpectSuccess(t, curated.Is(err, script.Failed))

	err = s.RunString(context.Background(), "range", `cpu_write(0x10000, 1)`)
	test.ExpectSuccess(t, curated.Is(err, script.Failed))

	err = s.RunString(context.Background(), "poke", `poke_struct(0x8000, {1, "two"})`)
	test.ExpectSuccess(t, curated.Is(err, script.Failed))
}

func TestNoResponse(t *testing.T) {
	s, _ := newScript(t)

	err := s.RunString(context.Background(), "wait", `wait_status(0x9000, 10)`)
	test.ExpectSuccess(t, curated.Is(err, script.Failed))
	test.ExpectSuccess(t, curated.Has(err, script.NoResponse))
}

func TestCancel(t *testing.T) {
	s, _ := newScript(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := s.RunString(ctx, "sleep", `sleep(10000)`)
	test.ExpectSuccess(t, curated.Is(err, script.Failed))
}

func TestRunFile(t *testing.T) {
	s, board := newScript(t)

	pth := filepath.Join(t.TempDir(), "test.lua")
	test.DemandSuccess(t, os.WriteFile(pth, []byte("cpu_write(0xb000, 7)\n"), 0o644))

	test.ExpectSuccess(t, s.RunFile(context.Background(), pth))
	test.ExpectEquality(t, board.RAM(0xb000), 7)

	err := s.RunFile(context.Background(), filepath.Join(t.TempDir(), "missing.lua"))
	test.ExpectSuccess(t, curated.Is(err, script.Failed))
}
