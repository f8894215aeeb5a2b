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

//go:build linux

package core_test

import (
	"fmt"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/zxcopro/zxcopro/hardware/core"
	"github.com/zxcopro/zxcopro/test"
)

func TestAffinity(t *testing.T) {
	var allowed unix.CPUSet
	test.DemandSuccess(t, unix.SchedGetaffinity(0, &allowed))

	cpu := -1
	for i := 0; i < 1024; i++ {
		if allowed.IsSet(i) {
			cpu = i
			break
		}
	}
	if cpu == -1 {
		t.Skip("no cpu available")
	}

	var pinned unix.CPUSet
	c := core.Launch("pinned", cpu, func() {
		_ = unix.SchedGetaffinity(0, &pinned)
	})
	<-c.Done()
	test.ExpectSuccess(t, c.Err())
	test.ExpectEquality(t, pinned.Count(), 1)
	test.ExpectSuccess(t, pinned.IsSet(cpu))
	test.ExpectEquality(t, c.String(), fmt.Sprintf("pinned (cpu %d)", cpu))
}
