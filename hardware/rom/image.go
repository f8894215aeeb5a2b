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

package rom

import (
	"crypto/sha1"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// Size of a ROM image.
const Size = 0x4000

// Image is an immutable ROM image.
type Image struct {
	data [Size]uint8
	name string
}

// Blank returns an image of an unprogrammed EPROM. Every byte is 0xff.
func Blank() *Image {
	img := &Image{name: "blank"}
	for i := range img.data {
		img.data[i] = 0xff
	}
	return img
}

// FromBytes creates an image from data. The data must be exactly 16K.
func FromBytes(name string, data []uint8) (*Image, error) {
	if len(data) != Size {
		return nil, errors.Errorf("rom: %s: image must be %d bytes (is %d bytes)", name, Size, len(data))
	}
	img := &Image{name: name}
	copy(img.data[:], data)
	return img, nil
}

// Load an image from a file.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "rom")
	}
	return FromBytes(path, data)
}

func (img *Image) String() string {
	return fmt.Sprintf("%s (%x)", img.name, sha1.Sum(img.data[:]))
}

// Name of the image.
func (img *Image) Name() string {
	return img.name
}

// Read the byte at the address. Addresses beyond the end of the image are
// masked.
func (img *Image) Read(address uint16) uint8 {
	return img.data[address&(Size-1)]
}

// Bytes returns a copy of the image data.
func (img *Image) Bytes() []uint8 {
	b := make([]uint8, Size)
	copy(b, img.data[:])
	return b
}
