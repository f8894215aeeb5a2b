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

package trace_test

import (
	"testing"

	"github.com/zxcopro/zxcopro/hardware/dma"
	"github.com/zxcopro/zxcopro/test"
	"github.com/zxcopro/zxcopro/trace"
)

func TestEmpty(t *testing.T) {
	tbl := trace.NewTable()
	test.ExpectEquality(t, len(tbl.Entries()), 0)
	_, ok := tbl.Last()
	test.ExpectFailure(t, ok)
}

func TestEntry(t *testing.T) {
	tbl := trace.NewTable()

	tbl.NewEntry()
	tbl.SetCommand(128, 0x01)
	tbl.TraceDMA(&dma.Descriptor{Target: 0x4000, Length: 10, Increment: 0}, dma.TopBorder, dma.OK)

	// the response write does not overwrite the transfer details
	tbl.TraceDMA(&dma.Descriptor{Target: 0x8002, Length: 1}, dma.Uncontended, dma.OK)
	tbl.SetStatus(1)

	e, ok := tbl.Last()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, e.Seq, 1)
	test.ExpectEquality(t, e.Set, trace.SetCommand|trace.SetDMA|trace.SetMode|trace.SetDMAStatus|trace.SetStatus)
	test.ExpectEquality(t, e.Target, 0x4000)
	test.ExpectEquality(t, e.Mode, dma.TopBorder)
	test.ExpectEquality(t, e.Status, 1)

	w := &test.CompareWriter{}
	tbl.Write(w, 0)
	test.ExpectSuccess(t, w.Compare("0001 cmd=128 flags=01 dma=4000/10/0 mode=top border dma_status=ok status=1\n"))
}

func TestFailedResponse(t *testing.T) {
	tbl := trace.NewTable()
	tbl.NewEntry()
	tbl.TraceDMA(&dma.Descriptor{Target: 0xc000, Length: 1}, dma.Uncontended, dma.OK)
	tbl.TraceDMA(&dma.Descriptor{Target: 0x4000, Length: 1}, dma.Contended, dma.ContentionFail)

	e, _ := tbl.Last()
	test.ExpectEquality(t, e.Target, 0xc000)
	test.ExpectEquality(t, e.DMAStatus, dma.ContentionFail)
}

func TestImplicitEntry(t *testing.T) {
	tbl := trace.NewTable()
	tbl.TraceDMA(nil, dma.Unclassified, dma.BadStruct)

	e, ok := tbl.Last()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, e.Set, trace.SetDMAStatus)
	test.ExpectEquality(t, e.DMAStatus, dma.BadStruct)
}

func TestWrapAround(t *testing.T) {
	tbl := trace.NewTable()
	for i := 0; i < trace.Length+10; i++ {
		tbl.NewEntry()
		tbl.SetError(uint8(i))
	}

	l := tbl.Entries()
	test.DemandEquality(t, len(l), trace.Length)
	test.ExpectEquality(t, l[0].Seq, 11)
	test.ExpectEquality(t, l[len(l)-1].Seq, trace.Length+10)
	test.ExpectEquality(t, l[0].Error, uint8(10))

	w := &test.CompareWriter{}
	tbl.Write(w, 1)
	test.ExpectSuccess(t, w.Compare("1034 error=9\n"))

	tbl.Clear()
	test.ExpectEquality(t, len(tbl.Entries()), 0)
}
