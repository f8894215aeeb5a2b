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

import (
	"github.com/zxcopro/zxcopro/curated"
)

// Status is the outcome of a transfer. The values are part of the interface
// with the Z80 program and must not be reordered.
type Status int

// List of valid Status values.
const (
	OK Status = iota
	BadStruct
	TooBig
	TooSmall
	TopBorderTooBig
	BadIncrement
	ContentionFail

	// StatusLast is not a status. It is the first value available for other
	// error codes that share a numbering scheme with Status
	StatusLast
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case BadStruct:
		return "bad structure"
	case TooBig:
		return "too big"
	case TooSmall:
		return "too small"
	case TopBorderTooBig:
		return "too big for top border"
	case BadIncrement:
		return "bad increment"
	case ContentionFail:
		return "contention fail"
	}
	return "unknown status"
}

// TransferFailed is the pattern of the error returned by Status.Err().
const TransferFailed = "dma: transfer failed: %v"

// Err returns nil if the status is OK. Otherwise a curated error is returned.
func (s Status) Err() error {
	if s == OK {
		return nil
	}
	return curated.Errorf(TransferFailed, s)
}
