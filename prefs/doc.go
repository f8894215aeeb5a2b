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

// Package prefs holds typed preference values that can be persisted to disk
// and overridden from the command line.
//
// The Bool, Int, Float and String types are safe to read from any goroutine.
// Values are read with Get() and written with Set(). A hook function can be
// registered to run before a new value is stored; if the hook returns an
// error the value is not changed. This is how range validation is done.
//
// A Disk instance associates keys with preference values:
//
//	var settle prefs.Int
//	dsk, _ := prefs.NewDisk(pth)
//	dsk.Add("dma.settle.uncontended", &settle)
//	dsk.Load()
//
// The file format is one "key :: value" entry per line, following a warning
// line. Entries in the file that have not been added to the Disk instance are
// preserved when the file is saved, so more than one Disk instance can share
// the same file.
//
// The command line stack allows a group of "key::value" pairs to override the
// values loaded from disk. See PushCommandLineStack().
package prefs
