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

// Package statsview serves live charts of the zxcopro process while it runs:
// goroutine count, heap size and GC pauses. The execution contexts of the
// coprocessor poll the bus without sleeping and the charts show what that
// costs the host. The charts come from "github.com/go-echarts/statsview".
//
// The charts page is at localhost:12680/debug/statsview and the pprof
// endpoints at localhost:12680/debug/pprof/. The server is started by the
// -statsview flag of the RUN, SCRIPT and MONITOR modes and stops with the
// session.
package statsview
