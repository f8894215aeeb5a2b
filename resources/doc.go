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

// Package resources resolves the location of files used by zxcopro, such as
// the preferences file and ROM images.
//
// Resources are kept in the .zxcopro directory in the current working
// directory if it exists. Otherwise the zxcopro directory in the user's
// configuration directory is used. The ZXCOPRO_HOME environment variable
// overrides both.
package resources
