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

//go:build !linux

package core

import "github.com/zxcopro/zxcopro/curated"

// UnsupportedAffinity is returned by Context.Err() on platforms where a
// context cannot be pinned to a CPU.
const UnsupportedAffinity = "core: cpu affinity not supported on this platform"

func setAffinity(_ int) error {
	return curated.Errorf(UnsupportedAffinity)
}
