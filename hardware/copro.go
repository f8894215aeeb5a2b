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

package hardware

import (
	"fmt"
	"sync"
	"time"

	"github.com/zxcopro/zxcopro/command"
	"github.com/zxcopro/zxcopro/curated"
	"github.com/zxcopro/zxcopro/hardware/core"
	"github.com/zxcopro/zxcopro/hardware/dma"
	"github.com/zxcopro/zxcopro/hardware/govern"
	"github.com/zxcopro/zxcopro/hardware/intsafety"
	"github.com/zxcopro/zxcopro/hardware/memserver"
	"github.com/zxcopro/zxcopro/hardware/mirror"
	"github.com/zxcopro/zxcopro/hardware/pins"
	"github.com/zxcopro/zxcopro/hardware/preferences"
	"github.com/zxcopro/zxcopro/hardware/rom"
	"github.com/zxcopro/zxcopro/logger"
	"github.com/zxcopro/zxcopro/testimage"
	"github.com/zxcopro/zxcopro/trace"
)

// Options for the creation of a Coprocessor.
type Options struct {
	// FullEmulation or MirrorOnly
	Mode memserver.Mode

	// the ROM image. required for FullEmulation. if present in MirrorOnly
	// mode the image is used to seed the mirror
	ROM *rom.Image

	// optional program to load into the target after booting
	TestImage      []uint8
	TestImageDelay time.Duration
}

// Coprocessor is the root of the firmware.
type Coprocessor struct {
	Prefs *preferences.Preferences

	Mirror     *mirror.Mirror
	Interrupt  *intsafety.Monitor
	Engine     *dma.Engine
	Slot       *dma.Slot
	Server     *memserver.Server
	Dispatcher *command.Dispatcher
	Trace      *trace.Table
	Jump       *rom.Injection

	// nil if there is no test image
	Loader *testimage.Loader

	Governor govern.Governor

	conn    Connection
	opts    Options
	trigger command.Trigger

	// functions to be run in the main context
	requests chan func()

	quit     chan struct{}
	shutdown sync.Once
	contexts []*core.Context
}

// NewCoprocessor creates a new Coprocessor and everything associated with
// it. Nothing happens on the lines until Boot() is called.
func NewCoprocessor(conn Connection, prefs *preferences.Preferences, opts Options) (*Coprocessor, error) {
	var err error

	c := &Coprocessor{
		Prefs:  prefs,
		Mirror: mirror.NewMirror(),
		Trace:  trace.NewTable(),
		Jump:   &rom.Injection{},
		conn:   conn,
		opts:   opts,
		quit:   make(chan struct{}),

		requests: make(chan func(), 16),
	}

	c.Interrupt = intsafety.NewMonitor(conn.Monitor, prefs.Interrupt)

	c.Engine = dma.NewEngine(conn.Main, c.Mirror, c.Interrupt, prefs.DMA)
	c.Engine.SetROMEmulation(opts.Mode == memserver.FullEmulation)
	c.Engine.AttachTracer(c.Trace)

	c.Slot = dma.NewSlot(c.Engine)

	c.Server, err = memserver.NewServer(conn.Server, c.Mirror, opts.ROM, c.Jump, opts.Mode, prefs.Server)
	if err != nil {
		return nil, fmt.Errorf("hardware: %w", err)
	}

	c.Dispatcher = command.NewDispatcher(c.Mirror, c.Engine, c.Slot, c.Trace)

	if len(opts.TestImage) > 0 {
		if opts.Mode != memserver.FullEmulation {
			return nil, curated.Errorf("hardware: test image requires full ROM emulation")
		}
		c.Loader, err = testimage.NewLoader(opts.TestImage, testimage.DefaultOrigin, opts.TestImageDelay,
			prefs.DMA.MaxLength.Get().(int), c.Slot, c.Jump, conn.Main)
		if err != nil {
			return nil, fmt.Errorf("hardware: %w", err)
		}
	}

	return c, nil
}

func (c *Coprocessor) String() string {
	return fmt.Sprintf("%s: %s", c.Governor.State(), c.Server)
}

// Boot the coprocessor. The target is held in reset while the lines are
// configured and the execution contexts are started.
func (c *Coprocessor) Boot() error {
	if c.Governor.State() != govern.Booting {
		return curated.Errorf("hardware: already booted")
	}

	p := c.conn.Main

	pins.Assert(p, pins.RESET)
	p.Direction(pins.RESET, true)

	pins.Release(p, pins.BUSREQ)
	p.Direction(pins.BUSREQ, true)

	if c.opts.Mode == memserver.FullEmulation {
		// the ROM chip is disabled for as long as the coprocessor runs
		pins.Assert(p, pins.ROMCS)
		p.Direction(pins.ROMCS, true)
	}

	c.Mirror.Reset()
	if c.opts.ROM != nil {
		c.Mirror.Seed(0x0000, c.opts.ROM.Bytes())
	}

	c.contexts = append(c.contexts,
		core.Launch("intsafety", c.Prefs.Server.MonitorCPU.Get().(int), func() {
			c.Interrupt.Run(c.quit)
		}),
		core.Launch("memserver", c.Prefs.Server.ServerCPU.Get().(int), func() {
			c.Server.Run(c.quit)
		}),
	)

	pins.Release(p, pins.RESET)

	c.Governor.SetState(govern.Running)
	logger.Logf(logger.Allow, "hardware", "booted (%s)", c.opts.Mode)

	return nil
}

// Service performs one pass of the main loop.
func (c *Coprocessor) Service() {
	c.trigger.Observe(c.conn.Main.Sample())

	select {
	case fn := <-c.requests:
		fn()
	default:
	}

	if c.Governor.State() != govern.Running {
		return
	}

	if c.trigger.Pending() {
		c.trigger.Clear()
		c.Dispatcher.Dispatch(c.trigger.Address())
	}

	if c.Loader != nil {
		c.Loader.Service()
	}

	if c.Slot.Full() {
		c.Slot.Activate()
	}
}

// Do runs fn in the main context and waits for it to complete. Functions
// are run even when the main loop is paused. Returns false if the
// coprocessor was shut down before fn completed.
func (c *Coprocessor) Do(fn func()) bool {
	done := make(chan struct{})

	select {
	case c.requests <- func() {
		fn()
		close(done)
	}:
	case <-c.quit:
		return false
	}

	select {
	case <-done:
		return true
	case <-c.quit:
		return false
	}
}

// PerformanceBrake is the number of main loop passes between calls to the
// continueCheck function of Run().
const PerformanceBrake = 100

// Run the main loop until the continueCheck function returns Ending or an
// error. A nil continueCheck runs the loop forever. The coprocessor is shut
// down when Run() returns.
func (c *Coprocessor) Run(continueCheck func() (govern.State, error)) error {
	defer c.Shutdown()

	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	var brake int

	for c.Governor.State() != govern.Ending {
		c.Service()

		brake++
		if brake < PerformanceBrake {
			continue
		}
		brake = 0

		state, err := continueCheck()
		if err != nil {
			return err
		}
		if state == govern.Ending {
			return nil
		}
	}

	return nil
}

// Shutdown stops the execution contexts and waits for them to finish.
// Subsequent calls do nothing.
func (c *Coprocessor) Shutdown() {
	c.shutdown.Do(func() {
		c.Governor.SetState(govern.Ending)

		close(c.quit)
		for _, ctx := range c.contexts {
			<-ctx.Done()
		}

		if c.conn.Release != nil {
			c.conn.Release()
		}

		logger.Log(logger.Allow, "hardware", "shutdown")
	})
}
