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
	"fmt"

	"github.com/zxcopro/zxcopro/curated"
	"github.com/zxcopro/zxcopro/prefs"
	"github.com/zxcopro/zxcopro/resources"
)

// Preferences defines and collates all the preference values used by the
// coprocessor hardware.
type Preferences struct {
	DMA       *DMAPreferences
	Interrupt *InterruptPreferences
	Server    *ServerPreferences
}

func (p *Preferences) String() string {
	return p.DMA.String() + p.Interrupt.String() + p.Server.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the default preferences file.
func NewPreferences() (*Preferences, error) {
	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	return NewPreferencesFromFile(pth)
}

// NewPreferencesFromFile is like NewPreferences() but with a specific
// preferences file.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	p := &Preferences{}

	var err error

	p.DMA, err = newDMAPreferences(pth)
	if err != nil {
		return nil, err
	}
	p.Interrupt, err = newInterruptPreferences(pth)
	if err != nil {
		return nil, err
	}
	p.Server, err = newServerPreferences(pth)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all hardware preferences to the default values.
func (p *Preferences) SetDefaults() {
	p.DMA.SetDefaults()
	p.Interrupt.SetDefaults()
	p.Server.SetDefaults()
}

// Load current hardware preferences from disk.
func (p *Preferences) Load() error {
	for _, l := range []func() error{p.DMA.Load, p.Interrupt.Load, p.Server.Load} {
		if err := l(); err != nil {
			return err
		}
	}
	return nil
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	for _, s := range []func() error{p.DMA.Save, p.Interrupt.Save, p.Server.Save} {
		if err := s(); err != nil {
			return err
		}
	}
	return nil
}

// Set the named preference from a string. Used by front ends that let the
// user change values by name.
func (p *Preferences) Set(key string, value string) error {
	for _, dsk := range []*prefs.Disk{p.DMA.dsk, p.Interrupt.dsk, p.Server.dsk} {
		if v, ok := dsk.Get(key); ok {
			return v.Set(value)
		}
	}
	return curated.Errorf(UnknownPreference, key)
}

// UnknownPreference is returned by Set() when the key is not recognised.
const UnknownPreference = "preferences: unknown preference (%s)"

// load is the common load procedure for all preference groups. a missing
// preferences file is not an error
func load(dsk *prefs.Disk) error {
	if err := dsk.Load(); err != nil {
		if !curated.Is(err, prefs.NoPrefsFile) {
			return fmt.Errorf("preferences: %w", err)
		}
	}
	return nil
}

// rangeCheck returns a hook function that rejects values outside the range
func rangeCheck(key string, lo int, hi int) func(prefs.Value) error {
	return func(v prefs.Value) error {
		n := v.(int)
		if n < lo || n > hi {
			return fmt.Errorf("preferences: %s must be in the range %d to %d", key, lo, hi)
		}
		return nil
	}
}

// addInt adds an integer preference with range checking to the disk
func addInt(dsk *prefs.Disk, key string, p *prefs.Int, lo int, hi int) error {
	p.SetHookPre(rangeCheck(key, lo, hi))
	if err := dsk.Add(key, p); err != nil {
		return fmt.Errorf("preferences: %w", err)
	}
	return nil
}
