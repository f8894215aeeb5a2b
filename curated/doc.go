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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with Errorf() and are differentiated by the
// pattern string used to create them, rather than by a sentinel value.
//
//	e := curated.Errorf("gpiochip: line %d not mapped", 4)
//
//	if curated.Is(e, "gpiochip: line %d not mapped") {
//		...
//	}
//
// Has() checks whether a pattern occurs anywhere in the error chain. Chains
// are formed by passing a curated error as one of the values to Errorf(), or
// with the %w verb.
//
// The Error() implementation normalises the message by removing duplicate
// adjacent parts. A message of "rom: rom: file too short" is printed as "rom:
// file too short". This means that packages can prefix errors with their own
// name without worrying about whether the caller does the same.
//
// Curated errors work with the errors.Is() and errors.As() functions of the
// standard library because every curated error can be unwrapped to the
// wrapped values that are themselves errors.
package curated
