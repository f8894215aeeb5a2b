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

// Package logger is the central log for zxcopro. Entries are kept in a
// fixed size ring and can be written to an io.Writer on request or echoed as
// they are added.
//
// Logging requests take a Permission argument. The Allow value should be used
// when the entry should always be made. Other implementations of Permission
// can be used to suppress logging from contexts that should be quiet, for
// example the simulated board during a script run.
//
// Repeated entries with the same tag and detail are collapsed into a single
// entry with a repeat count.
//
// Logging should never be used inside the per-byte loop of a transfer or the
// memory server's bus loop. Log at the point an outcome is known.
package logger
