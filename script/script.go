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

package script

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"
	"github.com/zxcopro/zxcopro/command"
	"github.com/zxcopro/zxcopro/curated"
	"github.com/zxcopro/zxcopro/hardware"
	"github.com/zxcopro/zxcopro/hardware/simboard"
	"github.com/zxcopro/zxcopro/logger"
)

// DefaultWait is the time wait_status() waits for a response if the script
// doesn't specify a time.
const DefaultWait = 5 * time.Second

// Sentinel error patterns.
const (
	NoResponse = "script: no response to command at %04x"
	Failed     = "script: %s: %v"
)

// Script is a Lua environment connected to a simulated board and the
// coprocessor attached to it.
type Script struct {
	board *simboard.Board
	copro *hardware.Coprocessor

	// context of the current run. used by long running functions
	ctx context.Context
}

// NewScript is the preferred method of initialisation for the Script type.
func NewScript(board *simboard.Board, copro *hardware.Coprocessor) *Script {
	return &Script{
		board: board,
		copro: copro,
	}
}

// RunFile runs the Lua program in the file.
func (s *Script) RunFile(ctx context.Context, path string) error {
	return s.run(ctx, path, func(L *lua.LState) error {
		return L.DoFile(path)
	})
}

// RunString runs the Lua program in the string. The name is used in error
// messages.
func (s *Script) RunString(ctx context.Context, name string, program string) error {
	return s.run(ctx, name, func(L *lua.LState) error {
		return L.DoString(program)
	})
}

func (s *Script) run(ctx context.Context, name string, do func(L *lua.LState) error) error {
	L := lua.NewState()
	defer L.Close()

	L.SetContext(ctx)
	s.ctx = ctx

	s.register(L)

	logger.Logf(logger.Allow, "script", "running %s", name)

	if err := do(L); err != nil {
		// errors raised by Go functions are recovered unchanged
		var apiErr *lua.ApiError
		if errors.As(err, &apiErr) {
			if e, ok := apiErr.Object.(*lua.LUserData); ok {
				if goErr, ok := e.Value.(error); ok {
					return curated.Errorf(Failed, name, goErr)
				}
			}
		}
		return curated.Errorf(Failed, name, err)
	}

	logger.Logf(logger.Allow, "script", "%s finished", name)

	return nil
}

func (s *Script) register(L *lua.LState) {
	for name, v := range map[string]int{
		"STATUS_NONE":              int(command.StatusNone),
		"STATUS_OK":                int(command.StatusOK),
		"STATUS_ERROR":             int(command.StatusError),
		"STATUS_UNABLE_TO_RESPOND": int(command.StatusUnableToRespond),
		"MEMSET_SMALL":             int(command.MemsetSmall),
		"PXY2SADDR":                int(command.PixelAddress),
		"MEMSET_LARGE":             int(command.MemsetLarge),
		"MEMCPY":                   int(command.Memcpy),
	} {
		L.SetGlobal(name, lua.LNumber(v))
	}

	for name, fn := range map[string]lua.LGFunction{
		"cpu_write":   s.cpuWrite,
		"cpu_read":    s.cpuRead,
		"poke_struct": s.pokeStruct,
		"trigger":     s.trigger,
		"wait_status": s.waitStatus,
		"mirror":      s.mirror,
		"ram":         s.ram,
		"interrupt":   s.interrupt,
		"resets":      s.resets,
		"sleep":       s.sleep,
		"log":         s.log,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}
}

// checkAddress returns argument n as a 16 bit address
func checkAddress(L *lua.LState, n int) uint16 {
	v := L.CheckInt(n)
	if v < 0 || v > 0xffff {
		L.ArgError(n, fmt.Sprintf("address out of range (%d)", v))
	}
	return uint16(v)
}

// checkByte returns argument n as an 8 bit value
func checkByte(L *lua.LState, n int) uint8 {
	v := L.CheckInt(n)
	if v < 0 || v > 0xff {
		L.ArgError(n, fmt.Sprintf("value out of range (%d)", v))
	}
	return uint8(v)
}

func (s *Script) cpuWrite(L *lua.LState) int {
	s.board.CPUWrite(checkAddress(L, 1), checkByte(L, 2))
	return 0
}

func (s *Script) cpuRead(L *lua.LState) int {
	L.Push(lua.LNumber(s.board.CPURead(checkAddress(L, 1))))
	return 1
}

func (s *Script) pokeStruct(L *lua.LState) int {
	addr := checkAddress(L, 1)
	tbl := L.CheckTable(2)

	for i := 1; i <= tbl.Len(); i++ {
		n, ok := tbl.RawGetInt(i).(lua.LNumber)
		if !ok || n < 0 || n > 0xff {
			L.ArgError(2, fmt.Sprintf("element %d is not a byte", i))
		}
		s.board.CPUWrite(addr+uint16(i-1), uint8(n))
	}

	return 0
}

func (s *Script) trigger(L *lua.LState) int {
	addr := checkAddress(L, 1)
	s.board.CPUWrite(command.TriggerLo, uint8(addr))
	s.board.CPUWrite(command.TriggerHi, uint8(addr>>8))
	return 0
}

func (s *Script) waitStatus(L *lua.LState) int {
	addr := checkAddress(L, 1)
	wait := time.Duration(L.OptInt(2, int(DefaultWait.Milliseconds()))) * time.Millisecond

	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		if err := s.ctx.Err(); err != nil {
			L.RaiseError("%v", err)
		}

		// the coprocessor writes the error byte before the status byte
		if st := s.board.CPURead(addr + 2); st != uint8(command.StatusNone) {
			L.Push(lua.LNumber(st))
			L.Push(lua.LNumber(s.board.CPURead(addr + 3)))
			return 2
		}
	}

	ud := L.NewUserData()
	ud.Value = curated.Errorf(NoResponse, addr)
	L.Error(ud, 0)

	return 0
}

func (s *Script) mirror(L *lua.LState) int {
	addr := checkAddress(L, 1)

	var v uint8
	if !s.copro.Do(func() {
		v = s.copro.Mirror.Get(addr)
	}) {
		L.RaiseError("coprocessor has ended")
	}

	L.Push(lua.LNumber(v))
	return 1
}

func (s *Script) ram(L *lua.LState) int {
	L.Push(lua.LNumber(s.board.RAM(checkAddress(L, 1))))
	return 1
}

func (s *Script) interrupt(L *lua.LState) int {
	period := time.Duration(L.CheckInt(1)) * time.Microsecond
	width := time.Duration(L.CheckInt(2)) * time.Microsecond
	s.board.SetInterrupt(period, width)
	return 0
}

func (s *Script) resets(L *lua.LState) int {
	L.Push(lua.LNumber(s.board.Resets()))
	return 1
}

func (s *Script) sleep(L *lua.LState) int {
	d := time.Duration(L.CheckInt(1)) * time.Millisecond

	select {
	case <-time.After(d):
	case <-s.ctx.Done():
		L.RaiseError("%v", s.ctx.Err())
	}

	return 0
}

func (s *Script) log(L *lua.LState) int {
	logger.Log(logger.Allow, "script", L.CheckString(1))
	return 0
}
