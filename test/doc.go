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

// Package test bundles helper functions for use with the standard go test
// harness.
//
// The Expect* functions report a test error and allow the test to continue.
// The Demand* functions are fatal and should be used when the value being
// tested is needed by the rest of the test, for example, the length of a
// slice that is about to be iterated over.
//
// Success and failure depend on the type of the value being tested:
//
//	bool  -> true is success
//	error -> nil is success
//	nil   -> success
//
// The nil case is not obvious but follows from how errors work in Go.
//
// The optional tags arguments are printed at the beginning of a failure
// message. They are useful for identifying which iteration of a loop failed.
//
// CompareWriter implements io.Writer and is used to capture output for
// comparison.
package test
