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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes and sub-modes and allows different flags
// for each mode.
//
// Arguments are set with NewArgs() and parsed with Parse(), which takes no
// arguments. Before each call to Parse() the flags and sub-modes for that
// level are added:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "SCRIPT", "MONITOR")
//
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		statsview := md.AddBool("statsview", false, "run stats server")
//		...
//	}
//
// The first sub-mode is the default and is chosen if the next argument does
// not name a sub-mode. Sub-mode names are case insensitive. The modes found
// so far are available with Path(), separated by a forward slash.
package modalflag
