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

package core

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/zxcopro/zxcopro/logger"
)

// NoAffinity indicates that the context can run on any CPU.
const NoAffinity = -1

// Context is a running execution context.
type Context struct {
	name string
	cpu  int
	done chan struct{}

	crit sync.Mutex
	err  error
}

func (c *Context) String() string {
	if c.cpu == NoAffinity {
		return c.name
	}
	return fmt.Sprintf("%s (cpu %d)", c.name, c.cpu)
}

// Done returns a channel that is closed when the context function returns.
func (c *Context) Done() <-chan struct{} {
	return c.done
}

// Err returns the error from setting the CPU affinity, if any. The context
// still runs if the affinity could not be set.
func (c *Context) Err() error {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.err
}

// Launch runs fn in a new execution context. The cpu argument is the CPU to
// pin the context to, or NoAffinity.
func Launch(name string, cpu int, fn func()) *Context {
	c := &Context{
		name: name,
		cpu:  cpu,
		done: make(chan struct{}),
	}

	// the affinity error is reported before Launch() returns
	ready := make(chan struct{})

	go func() {
		defer close(c.done)

		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		if cpu != NoAffinity {
			if err := setAffinity(cpu); err != nil {
				c.crit.Lock()
				c.err = err
				c.crit.Unlock()
				logger.Logf(logger.Allow, "core", "%s: %v", name, err)
			}
		}

		close(ready)
		logger.Logf(logger.Allow, "core", "%s: started", c)
		fn()
	}()

	<-ready
	return c
}
