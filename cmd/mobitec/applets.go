// go-mobitec
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-mobitec.
//
// go-mobitec is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-mobitec is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-mobitec; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	mobitec "github.com/ZaparooProject/go-mobitec"
	"github.com/ZaparooProject/go-mobitec/internal/frame"
	"github.com/ZaparooProject/go-mobitec/internal/retry"
)

const (
	frameInterval = 1500 * time.Millisecond
	helloText     = "   hello world   "
	counterLimit  = 1000
)

var errUsage = errors.New("usage")

type appletFunc func(ctx context.Context, env *appletEnv, args []string) error

type applet struct {
	run   appletFunc
	usage string
}

// appletEnv is what an applet gets to work with
type appletEnv struct {
	display *mobitec.Display
	reader  io.Reader
	out     io.Writer
	pause   func(ctx context.Context, d time.Duration) error
	retry   retry.Config
	addr    byte
}

func newApplets() map[string]applet {
	return map[string]applet{
		"hello":     {run: runHello, usage: "scroll \"hello world\" across the display"},
		"cycle_agd": {run: runCycleAGD, usage: "rotate the top, middle and bottom segments"},
		"counter":   {run: runCounter, usage: fmt.Sprintf("count from 0 to %d", counterLimit-1)},
		"text":      {run: runText, usage: "text <s>: show up to three characters"},
		"digits":    {run: runDigits, usage: "digits <l> <m> <r>: show three digits 0-14"},
		"segments":  {run: runSegments, usage: "segments <l> <m> <r>: light raw segment masks 0-0x7f"},
		"sniff":     {run: runSniff, usage: "print frames seen on the bus until interrupted"},
	}
}

func pause(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// write runs one display write under the retry policy
func (e *appletEnv) write(ctx context.Context, desc string, fn func(ctx context.Context) error) error {
	cfg := e.retry
	cfg.Description = desc
	return retry.Do(ctx, cfg, func() error {
		return fn(ctx)
	})
}

func (e *appletEnv) writeString(ctx context.Context, s string) error {
	return e.write(ctx, "write string", func(ctx context.Context) error {
		return e.display.WriteStringContext(ctx, e.addr, s)
	})
}

func runHello(ctx context.Context, env *appletEnv, _ []string) error {
	for i := 0; i+mobitec.Cells <= len(helloText); i++ {
		if err := env.writeString(ctx, helloText[i:i+mobitec.Cells]); err != nil {
			return err
		}
		if err := env.pause(ctx, frameInterval); err != nil {
			return err
		}
	}
	return nil
}

func runCycleAGD(ctx context.Context, env *appletEnv, _ []string) error {
	l, m, r := mobitec.SegA, mobitec.SegG, mobitec.SegD
	for {
		err := env.write(ctx, "write segments", func(ctx context.Context) error {
			return env.display.WriteSegmentsContext(ctx, env.addr, l, m, r)
		})
		if err != nil {
			return err
		}
		if err := env.pause(ctx, frameInterval); err != nil {
			return err
		}
		l, m, r = m, r, l
	}
}

func runCounter(ctx context.Context, env *appletEnv, _ []string) error {
	for i := 0; i < counterLimit; i++ {
		if err := env.writeString(ctx, strconv.Itoa(i)); err != nil {
			return err
		}
		if err := env.pause(ctx, frameInterval); err != nil {
			return err
		}
	}
	return nil
}

func runText(ctx context.Context, env *appletEnv, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: text takes one argument", errUsage)
	}
	return env.writeString(ctx, args[0])
}

func runDigits(ctx context.Context, env *appletEnv, args []string) error {
	if len(args) != mobitec.Cells {
		return fmt.Errorf("%w: digits takes %d arguments", errUsage, mobitec.Cells)
	}
	var d [mobitec.Cells]int
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%w: digit %q: %w", errUsage, arg, err)
		}
		d[i] = v
	}
	return env.write(ctx, "write digits", func(ctx context.Context) error {
		return env.display.WriteDigitsContext(ctx, env.addr, d[0], d[1], d[2])
	})
}

func runSegments(ctx context.Context, env *appletEnv, args []string) error {
	if len(args) != mobitec.Cells {
		return fmt.Errorf("%w: segments takes %d arguments", errUsage, mobitec.Cells)
	}
	var masks [mobitec.Cells]mobitec.SegmentMask
	for i, arg := range args {
		v, err := strconv.ParseUint(arg, 0, 8)
		if err != nil {
			return fmt.Errorf("%w: segment mask %q: %w", errUsage, arg, err)
		}
		masks[i] = mobitec.SegmentMask(v)
	}
	return env.write(ctx, "write segments", func(ctx context.Context) error {
		return env.display.WriteSegmentsContext(ctx, env.addr, masks[0], masks[1], masks[2])
	})
}

// runSniff prints every frame on the bus. It only listens; nothing is sent.
func runSniff(ctx context.Context, env *appletEnv, _ []string) error {
	if env.reader == nil {
		return errors.New("sniff needs a readable port")
	}

	dec := frame.NewDecoder()
	buf := make([]byte, 256)
	start := time.Now()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := env.reader.Read(buf)
		if n > 0 {
			_, _ = fmt.Fprintf(env.out, "@%.3f rx %s\n", time.Since(start).Seconds(), frame.Hex(buf[:n]))
			for _, f := range dec.Feed(buf[:n]) {
				_, _ = fmt.Fprintf(env.out, "  %s\n", f)
			}
		}
		if errors.Is(err, io.EOF) {
			for _, f := range dec.Flush() {
				_, _ = fmt.Fprintf(env.out, "  %s\n", f)
			}
			return nil
		}
		if err != nil {
			return err
		}
	}
}
