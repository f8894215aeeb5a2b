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

package dma

// Mode is the timing mode chosen for a transfer.
type Mode int

// List of valid Mode values.
const (
	// the transfer was rejected before classification
	Unclassified Mode = iota

	Contended
	TopBorder
	Uncontended
)

func (m Mode) String() string {
	switch m {
	case Contended:
		return "contended"
	case TopBorder:
		return "top border"
	case Uncontended:
		return "uncontended"
	}
	return "unclassified"
}

// Regions describes the memory map for the purposes of classification.
type Regions struct {
	// inclusive bounds of contended memory
	ContendedLow  uint16
	ContendedHigh uint16

	// the maximum length of a transfer in TopBorder mode
	TopBorderMax int
}

// Classify decides the timing mode of a transfer to base of length bytes.
//
// The range tested is base to base+length inclusive, which is one byte more
// than is written. A range that goes past the top of the address space wraps
// to address zero and the wrapped part is tested too. Any overlap with
// contended memory is enough for the range to be contended.
func Classify(base uint16, length int, topBorder bool, r Regions) (Mode, Status) {
	if !touchesContended(base, length, r) {
		return Uncontended, OK
	}

	if !topBorder {
		return Contended, ContentionFail
	}

	if length > r.TopBorderMax {
		return TopBorder, TopBorderTooBig
	}

	return TopBorder, OK
}

func touchesContended(base uint16, length int, r Regions) bool {
	lo := int(r.ContendedLow)
	hi := int(r.ContendedHigh)
	if lo > hi {
		return false
	}

	start := int(base)
	end := start + length

	overlaps := func(a, b int) bool {
		return a <= hi && lo <= b
	}

	if end <= 0xffff {
		return overlaps(start, end)
	}

	// the range wraps. the wrapped part can cover the entire address space
	// if length is large enough
	if overlaps(start, 0xffff) {
		return true
	}
	return overlaps(0, min(end-0x10000, 0xffff))
}
