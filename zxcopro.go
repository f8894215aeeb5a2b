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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/zxcopro/zxcopro/hardware"
	"github.com/zxcopro/zxcopro/hardware/govern"
	"github.com/zxcopro/zxcopro/hardware/gpiochip"
	"github.com/zxcopro/zxcopro/hardware/memserver"
	"github.com/zxcopro/zxcopro/hardware/preferences"
	"github.com/zxcopro/zxcopro/hardware/rom"
	"github.com/zxcopro/zxcopro/hardware/simboard"
	"github.com/zxcopro/zxcopro/logger"
	"github.com/zxcopro/zxcopro/modalflag"
	"github.com/zxcopro/zxcopro/monitor"
	"github.com/zxcopro/zxcopro/monitor/colorterm"
	"github.com/zxcopro/zxcopro/monitor/plainterm"
	"github.com/zxcopro/zxcopro/monitor/terminal"
	"github.com/zxcopro/zxcopro/prefs"
	"github.com/zxcopro/zxcopro/script"
	"github.com/zxcopro/zxcopro/statsview"
	"github.com/zxcopro/zxcopro/testimage"
	"github.com/zxcopro/zxcopro/version"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "SCRIPT", "MONITOR", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "SCRIPT":
		err = runScript(md)

	case "MONITOR":
		err = runMonitor(md)

	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		os.Exit(20)
	}
}

// flags common to every mode that creates a coprocessor
type coproFlags struct {
	rom        *string
	mirrorOnly *bool
	testImage  *string
	delay      *int
	gpiochip   *string
	prefs      *string
	stats      *bool
	echo       *bool
}

func addCoproFlags(md *modalflag.Modes, simulatedOnly bool) coproFlags {
	f := coproFlags{
		rom:        md.AddString("rom", "", "ROM image to serve to the target. a blank ROM is used if not specified"),
		mirrorOnly: md.AddBool("mirroronly", false, "track writes only. the target's own ROM answers reads"),
		testImage:  md.AddString("testimage", "", "Z80 program loaded at 0x8000 and run after booting"),
		delay:      md.AddInt("delay", int(testimage.DefaultDelay.Milliseconds()), "milliseconds before the test image is loaded"),
		prefs:      md.AddString("prefs", "", "preferences for this session. key::value pairs separated by semicolons"),
		stats:      md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address)),
		echo:       md.AddBool("echo", false, "echo log to stdout"),
	}

	if !simulatedOnly {
		f.gpiochip = md.AddString("gpiochip", "", "GPIO character device. the simulated board is used if not specified")
	}

	return f
}

// the coprocessor and what it's connected to
type session struct {
	copro *hardware.Coprocessor

	// nil if the coprocessor is connected to a GPIO chip
	board *simboard.Board

	// nil if the coprocessor is connected to the simulated board
	chip *gpiochip.Chip

	// stops the statistics server. nil if there is no server
	stats func()
}

func (s *session) close() {
	if s.chip != nil {
		_ = s.chip.Close()
	}
	if s.stats != nil {
		s.stats()
	}
}

func newSession(f coproFlags) (*session, error) {
	if *f.echo {
		var out io.Writer = os.Stdout
		if term.IsTerminal(int(os.Stdout.Fd())) {
			out = logger.NewColorizer(os.Stdout)
		}
		logger.SetEcho(out, true)
	}

	if *f.prefs != "" {
		prefs.PushCommandLineStack(*f.prefs)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				logger.Logf(logger.Allow, "zxcopro", "unused preferences: %s", unused)
			}
		}()
	}

	p, err := preferences.NewPreferences()
	if err != nil {
		return nil, err
	}

	opts := hardware.Options{
		Mode: memserver.FullEmulation,
	}
	if *f.mirrorOnly {
		opts.Mode = memserver.MirrorOnly
	}

	if *f.rom != "" {
		opts.ROM, err = rom.Load(*f.rom)
		if err != nil {
			return nil, err
		}
	} else {
		opts.ROM = rom.Blank()
	}

	if *f.testImage != "" {
		opts.TestImage, err = testimage.Load(*f.testImage, testimage.DefaultOrigin)
		if err != nil {
			return nil, err
		}
		opts.TestImageDelay = time.Duration(*f.delay) * time.Millisecond
	}

	s := &session{}

	if *f.stats {
		s.stats = statsview.Launch(os.Stdout)
	}

	var conn hardware.Connection
	if f.gpiochip != nil && *f.gpiochip != "" {
		s.chip, err = gpiochip.Open(*f.gpiochip, gpiochip.DefaultLayout(), version.ApplicationName)
		if err != nil {
			s.close()
			return nil, err
		}
		conn = hardware.SharedConnection(s.chip)
	} else {
		s.board = simboard.NewBoard(opts.ROM)
		conn = hardware.SimulatedConnection(s.board)
	}

	s.copro, err = hardware.NewCoprocessor(conn, p, opts)
	if err != nil {
		s.close()
		return nil, err
	}

	logger.Logf(logger.Allow, "zxcopro", "%s: ROM %s", opts.Mode, opts.ROM.Name())

	return s, nil
}

// returns a continueCheck function for Coprocessor.Run() that ends the
// coprocessor when the context is done
func continueCheck(ctx context.Context) func() (govern.State, error) {
	return func() (govern.State, error) {
		select {
		case <-ctx.Done():
			return govern.Ending, nil
		default:
		}
		return govern.Running, nil
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()
	f := addCoproFlags(md, false)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	s, err := newSession(f)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.copro.Boot(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.copro.Run(continueCheck(ctx))
	})

	return g.Wait()
}

func runScript(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("the script is a Lua program that plays the part of the Z80 on the simulated board")
	f := addCoproFlags(md, true)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("script required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	s, err := newSession(f)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.copro.Boot(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.copro.Run(continueCheck(ctx))
	})
	g.Go(func() error {
		defer cancel()
		return script.NewScript(s.board, s.copro).RunFile(ctx, md.GetArg(0))
	})

	return g.Wait()
}

func runMonitor(md *modalflag.Modes) error {
	md.NewMode()
	f := addCoproFlags(md, false)
	termType := md.AddString("term", "AUTO", "terminal type to use: AUTO, COLOR, PLAIN")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	var trm terminal.Terminal

	switch strings.ToUpper(*termType) {
	default:
		fmt.Printf("! unknown terminal type (%s) defaulting to AUTO\n", *termType)
		fallthrough
	case "AUTO":
		if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
			trm = &colorterm.ColorTerminal{}
		} else {
			trm = plainterm.NewPlainTerminal(os.Stdin, os.Stdout)
		}
	case "COLOR":
		trm = &colorterm.ColorTerminal{}
	case "PLAIN":
		trm = plainterm.NewPlainTerminal(os.Stdin, os.Stdout)
	}

	s, err := newSession(f)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.copro.Boot(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the monitor is not run in the errgroup because it can't be interrupted
	// while waiting for input
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.copro.Run(continueCheck(ctx))
	})

	err = monitor.NewMonitor(s.copro, trm).Run()
	cancel()

	if werr := g.Wait(); werr != nil {
		return werr
	}

	return err
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()
	revision := md.AddBool("revision", false, "display revision information from version control")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	fmt.Printf("%s %s\n", version.ApplicationName, v)
	if *revision {
		fmt.Println(r)
	}

	return nil
}
