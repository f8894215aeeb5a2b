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

package command

// ScreenHeight is the number of pixel rows on the screen.
const ScreenHeight = 192

// ScreenAddress returns the address of the screen byte that contains the
// pixel at x, y. The y coordinate must be less than ScreenHeight.
func ScreenAddress(x uint8, y uint8) uint16 {
	yy := uint16(y)
	return 0x4000 | (yy&0xc0)<<5 | (yy&0x07)<<8 | (yy&0x38)<<2 | uint16(x>>3)
}
