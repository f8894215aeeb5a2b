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

package rom_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/zxcopro/zxcopro/hardware/rom"
	"github.com/zxcopro/zxcopro/test"
)

func TestBlank(t *testing.T) {
	img := rom.Blank()
	test.ExpectEquality(t, img.Read(0x0000), 0xff)
	test.ExpectEquality(t, img.Read(0x3fff), 0xff)
	test.ExpectEquality(t, img.Name(), "blank")
}

func TestLoad(t *testing.T) {
	data := make([]uint8, rom.Size)
	data[0] = 0xf3
	data[0x3fff] = 0x3c

	pth := filepath.Join(t.TempDir(), "48.rom")
	test.DemandSuccess(t, os.WriteFile(pth, data, 0o600))

	img, err := rom.Load(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Read(0x0000), 0xf3)
	test.ExpectEquality(t, img.Read(0x3fff), 0x3c)

	// addresses are masked
	test.ExpectEquality(t, img.Read(0x4000), 0xf3)

	// the image is a copy
	data[0] = 0x00
	test.ExpectEquality(t, img.Read(0x0000), 0xf3)
	b := img.Bytes()
	b[0] = 0x00
	test.ExpectEquality(t, img.Read(0x0000), 0xf3)
}

func TestLoadErrors(t *testing.T) {
	_, err := rom.Load(filepath.Join(t.TempDir(), "missing.rom"))
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, os.IsNotExist(errors.Cause(err)))

	_, err = rom.FromBytes("short", make([]uint8, 100))
	test.ExpectFailure(t, err)
}

func TestInjection(t *testing.T) {
	var inj rom.Injection

	_, ok := inj.Destination()
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, inj.Patch(0, 0xf3), 0xf3)

	inj.Set(0x8000)
	test.ExpectEquality(t, inj.Patch(0, 0xf3), 0xc3)
	test.ExpectEquality(t, inj.Patch(1, 0xaf), 0x00)
	test.ExpectEquality(t, inj.Patch(2, 0x11), 0x80)
	test.ExpectEquality(t, inj.Patch(3, 0xff), 0xff)
	test.ExpectEquality(t, inj.String(), "JP 8000")

	// destination zero is a valid destination
	inj.Set(0x0000)
	d, ok := inj.Destination()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, d, uint16(0))

	inj.Clear()
	test.ExpectEquality(t, inj.Patch(0, 0xf3), 0xf3)
}
