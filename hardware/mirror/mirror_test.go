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

package mirror_test

import (
	"strings"
	"testing"

	"github.com/zxcopro/zxcopro/hardware/mirror"
	"github.com/zxcopro/zxcopro/test"
)

func TestGetPut(t *testing.T) {
	m := mirror.NewMirror()
	test.ExpectEquality(t, m.Get(0xc000), 0)

	m.Put(0xc000, 0x55)
	m.Put(0xffff, 0xaa)
	test.ExpectEquality(t, m.Get(0xc000), 0x55)
	test.ExpectEquality(t, m.Get(0xffff), 0xaa)
	test.ExpectEquality(t, m.Get(0x0000), 0)

	m.Reset()
	test.ExpectEquality(t, m.Get(0xc000), 0)
}

func TestSeedWraps(t *testing.T) {
	m := mirror.NewMirror()
	m.Seed(0xfffe, []uint8{1, 2, 3, 4})
	test.ExpectEquality(t, m.Get(0xfffe), 1)
	test.ExpectEquality(t, m.Get(0xffff), 2)
	test.ExpectEquality(t, m.Get(0x0000), 3)
	test.ExpectEquality(t, m.Get(0x0001), 4)

	r := m.Read(0xffff, 3)
	test.DemandEquality(t, len(r), 3)
	test.ExpectEquality(t, r[0], 2)
	test.ExpectEquality(t, r[2], 4)
}

func TestSnapshotIsIndependent(t *testing.T) {
	m := mirror.NewMirror()
	m.Put(0x8000, 1)
	s := m.Snapshot()
	m.Put(0x8000, 2)
	test.ExpectEquality(t, s.Get(0x8000), 1)
	test.ExpectEquality(t, m.Get(0x8000), 2)
}

func TestDump(t *testing.T) {
	m := mirror.NewMirror()
	m.Seed(0x8000, []uint8{0xc3, 0x00, 0x80})
	w := &strings.Builder{}
	test.ExpectSuccess(t, m.Dump(w, 0x8000, 3))
	test.ExpectEquality(t, w.String(), "8000  c3 00 80\n")
}
