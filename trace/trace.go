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

package trace

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/zxcopro/zxcopro/hardware/dma"
)

// Length of the trace table.
const Length = 1024

// Field flags for the Set mask of an Entry.
const (
	SetCommand = 1 << iota
	SetDMA
	SetMode
	SetDMAStatus
	SetStatus
	SetError
)

// Entry in the trace table.
type Entry struct {
	// Set indicates which fields are valid
	Set int

	// sequence number of the entry. the first entry is number one
	Seq int

	Command uint8
	Flags   uint8

	Target    uint16
	Length    uint16
	Increment uint16

	Mode      dma.Mode
	DMAStatus dma.Status

	// the status and error codes returned to the target
	Status uint8
	Error  uint8
}

func (e Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%04d", e.Seq))
	if e.Set&SetCommand == SetCommand {
		s.WriteString(fmt.Sprintf(" cmd=%d flags=%02x", e.Command, e.Flags))
	}
	if e.Set&SetDMA == SetDMA {
		s.WriteString(fmt.Sprintf(" dma=%04x/%d/%d", e.Target, e.Length, e.Increment))
	}
	if e.Set&SetMode == SetMode {
		s.WriteString(fmt.Sprintf(" mode=%s", e.Mode))
	}
	if e.Set&SetDMAStatus == SetDMAStatus {
		s.WriteString(fmt.Sprintf(" dma_status=%s", e.DMAStatus))
	}
	if e.Set&SetStatus == SetStatus {
		s.WriteString(fmt.Sprintf(" status=%d", e.Status))
	}
	if e.Set&SetError == SetError {
		s.WriteString(fmt.Sprintf(" error=%d", e.Error))
	}
	return s.String()
}

// Table is the trace table. The most recent entry is the current entry and
// is the one updated by the Set*() functions.
type Table struct {
	crit    sync.Mutex
	entries [Length]Entry

	// index of the current entry. -1 if there are no entries
	current int

	// total number of entries ever created
	seq int

	// a DMA transfer has been traced for the current entry
	traced bool
}

// NewTable is the preferred method of initialisation for the Table type.
func NewTable() *Table {
	return &Table{current: -1}
}

// NewEntry starts a new entry, replacing the oldest entry if the table is
// full.
func (t *Table) NewEntry() {
	t.crit.Lock()
	defer t.crit.Unlock()
	t.newEntry()
}

func (t *Table) newEntry() {
	t.current = (t.current + 1) % Length
	t.seq++
	t.entries[t.current] = Entry{Seq: t.seq}
	t.traced = false
}

// update calls fn with the current entry, creating an entry if necessary.
func (t *Table) update(fn func(e *Entry)) {
	t.crit.Lock()
	defer t.crit.Unlock()
	if t.current == -1 {
		t.newEntry()
	}
	fn(&t.entries[t.current])
}

// SetCommand records the command type and flags.
func (t *Table) SetCommand(cmd uint8, flags uint8) {
	t.update(func(e *Entry) {
		e.Command = cmd
		e.Flags = flags
		e.Set |= SetCommand
	})
}

// SetStatus records the status returned to the target.
func (t *Table) SetStatus(status uint8) {
	t.update(func(e *Entry) {
		e.Status = status
		e.Set |= SetStatus
	})
}

// SetError records the error returned to the target.
func (t *Table) SetError(err uint8) {
	t.update(func(e *Entry) {
		e.Error = err
		e.Set |= SetError
	})
}

// TraceDMA implements the dma.Tracer interface. Only the first transfer of
// an entry is recorded in full. The outcome of later transfers, which write
// the response, is recorded only if the transfer failed.
func (t *Table) TraceDMA(d *dma.Descriptor, m dma.Mode, s dma.Status) {
	t.crit.Lock()
	defer t.crit.Unlock()

	if t.current == -1 {
		t.newEntry()
	}
	e := &t.entries[t.current]

	if t.traced {
		if s != dma.OK {
			e.DMAStatus = s
			e.Set |= SetDMAStatus
		}
		return
	}
	t.traced = true

	if d != nil {
		e.Target = d.Target
		e.Length = d.Length
		e.Increment = d.Increment
		e.Set |= SetDMA
	}
	if m != dma.Unclassified {
		e.Mode = m
		e.Set |= SetMode
	}
	e.DMAStatus = s
	e.Set |= SetDMAStatus
}

// Entries returns a copy of the valid entries, oldest first.
func (t *Table) Entries() []Entry {
	t.crit.Lock()
	defer t.crit.Unlock()

	if t.current == -1 {
		return nil
	}

	n := min(t.seq, Length)
	l := make([]Entry, 0, n)
	start := (t.current + 1 + Length - n) % Length
	for i := 0; i < n; i++ {
		l = append(l, t.entries[(start+i)%Length])
	}
	return l
}

// Last returns the most recent entry. Returns false if there are no entries.
func (t *Table) Last() (Entry, bool) {
	t.crit.Lock()
	defer t.crit.Unlock()
	if t.current == -1 {
		return Entry{}, false
	}
	return t.entries[t.current], true
}

// Clear the table.
func (t *Table) Clear() {
	t.crit.Lock()
	defer t.crit.Unlock()
	t.current = -1
	t.seq = 0
	t.traced = false
}

// Write the most recent n entries to w. All entries are written if n is less
// than or equal to zero.
func (t *Table) Write(w io.Writer, n int) {
	l := t.Entries()
	if n > 0 && n < len(l) {
		l = l[len(l)-n:]
	}
	for _, e := range l {
		io.WriteString(w, e.String())
		io.WriteString(w, "\n")
	}
}
