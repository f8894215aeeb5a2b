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

package resources_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zxcopro/zxcopro/resources"
	"github.com/zxcopro/zxcopro/test"
)

func TestJoinPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ZXCOPRO_HOME", home)

	p, err := resources.JoinPath("roms", "48.rom")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, filepath.Join(home, "roms", "48.rom"))

	// the directory has been created but not the file
	_, err = os.Stat(filepath.Join(home, "roms"))
	test.ExpectSuccess(t, err)
	_, err = os.Stat(p)
	test.ExpectFailure(t, err)

	// joining a path that already has the base is not changed
	q, err := resources.JoinPath(p)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q, p)
}
