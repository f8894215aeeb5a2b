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

package preferences

import (
	"github.com/zxcopro/zxcopro/prefs"
)

// Default values for the memory server preferences.
const (
	DefaultROMTop = 0x3fff
	NoAffinity    = -1
)

// ServerPreferences are the settings of the memory server and the interrupt
// monitor execution contexts.
type ServerPreferences struct {
	dsk *prefs.Disk

	// the last address of the ROM. reads at or below this address are
	// answered from the ROM image when the server is emulating the ROM
	ROMTop prefs.Int

	// the CPU to pin the execution contexts to. NoAffinity leaves the
	// decision to the operating system
	ServerCPU  prefs.Int
	MonitorCPU prefs.Int
}

func (p *ServerPreferences) String() string {
	return p.dsk.String()
}

func newServerPreferences(pth string) (*ServerPreferences, error) {
	p := &ServerPreferences{}

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	if err := addInt(p.dsk, "hardware.server.romTop", &p.ROMTop, 0, 0xffff); err != nil {
		return nil, err
	}
	if err := addInt(p.dsk, "hardware.server.cpu", &p.ServerCPU, NoAffinity, 1023); err != nil {
		return nil, err
	}
	if err := addInt(p.dsk, "hardware.server.monitorCPU", &p.MonitorCPU, NoAffinity, 1023); err != nil {
		return nil, err
	}

	p.SetDefaults()

	if err := p.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all server preferences to the default values.
func (p *ServerPreferences) SetDefaults() {
	_ = p.ROMTop.Set(DefaultROMTop)
	_ = p.ServerCPU.Set(NoAffinity)
	_ = p.MonitorCPU.Set(NoAffinity)
}

// Load server preferences from disk.
func (p *ServerPreferences) Load() error {
	return load(p.dsk)
}

// Save server preferences to disk.
func (p *ServerPreferences) Save() error {
	return p.dsk.Save()
}
