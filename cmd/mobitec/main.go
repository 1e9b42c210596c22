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
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	mobitec "github.com/ZaparooProject/go-mobitec"
	"github.com/ZaparooProject/go-mobitec/config"
	"github.com/ZaparooProject/go-mobitec/detection"
	"github.com/ZaparooProject/go-mobitec/internal/frame"
	"github.com/ZaparooProject/go-mobitec/internal/retry"
	"github.com/ZaparooProject/go-mobitec/transport/rs485"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// Special port arguments
const (
	portAuto   = "auto" // first detected RS485 adapter
	portConfig = "-"    // port from the config file
)

type cliFlags struct {
	configPath *string
	gpioPin    *string
	retries    *int
	retryDelay *time.Duration
	debug      *bool
	listPorts  *bool
}

func parseFlags(applets map[string]applet) *cliFlags {
	f := &cliFlags{
		configPath: flag.String("config", "", "YAML file with port, timing and display names"),
		gpioPin:    flag.String("gpio", "", "Drive DE/RE from this GPIO pin instead of RTS (e.g. GPIO17)"),
		retries:    flag.Int("retries", 0, "Times to repeat a display write that failed with an I/O error"),
		retryDelay: flag.Duration("retry-delay", 500*time.Millisecond, "Delay between repeated writes"),
		debug:      flag.Bool("debug", false, "Enable debug output"),
		listPorts:  flag.Bool("list-ports", false, "List serial adapters and exit"),
	}
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		_, _ = fmt.Fprintf(out, "usage: %s [flags] <port|auto|-> <addr|name> <applet> [args...]\n\n", os.Args[0])
		_, _ = fmt.Fprintln(out, "flags:")
		flag.PrintDefaults()
		_, _ = fmt.Fprintln(out)
		printApplets(out, applets)
	}
	flag.Parse()
	return f
}

func setupLogging(debug bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05.000",
	}).With().Timestamp().Logger()
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return &config.Config{}, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func listAdapters() error {
	adapters, err := detection.ListAdapters(detection.Options{})
	if err != nil {
		return err
	}
	if len(adapters) == 0 {
		_, _ = fmt.Println("No serial adapters found")
		return nil
	}
	for _, a := range adapters {
		_, _ = fmt.Println(a.String())
	}
	return nil
}

// resolvePort turns the port argument into a device path
func resolvePort(arg string, cfg *config.Config) (string, error) {
	switch arg {
	case portConfig:
		if cfg.Port == "" {
			return "", errors.New("no port set in config")
		}
		return cfg.Port, nil
	case portAuto:
		adapters, err := detection.ListAdapters(detection.Options{})
		if err != nil {
			return "", err
		}
		for _, a := range adapters {
			if a.Known() {
				log.Info().Str("adapter", a.String()).Msg("using detected adapter")
				return a.Path, nil
			}
		}
		return "", errors.New("no RS485 adapter detected")
	default:
		return arg, nil
	}
}

func openDisplay(portName string, cfg *config.Config, gpioPin string) (*mobitec.Display, *rs485.Port, error) {
	opts := cfg.PortOptions()
	if gpioPin != "" {
		opts = append(opts, rs485.WithGPIODirection(gpioPin))
	}

	settings := cfg.Settings()
	port, err := rs485.Open(portName, settings, opts...)
	if err != nil {
		return nil, nil, err
	}

	// Rough cost of one display write: both turnarounds plus the packet.
	packetLen := len(frame.Encode(0, []byte{frame.CmdSegments, 0, 0, 0, 0}))
	log.Debug().
		Int("baud", settings.BaudRate).
		Dur("write_time", settings.DelayBeforeTx+settings.DelayBeforeRx+settings.TransmitTime(packetLen)).
		Msg("port open")

	bus := mobitec.NewBus(port, mobitec.WithPortName(portName))
	return mobitec.NewDisplay(bus), port, nil
}

func printApplets(out io.Writer, applets map[string]applet) {
	names := make([]string, 0, len(applets))
	for name := range applets {
		names = append(names, name)
	}
	sort.Strings(names)

	_, _ = fmt.Fprintln(out, "available applets:")
	for _, name := range names {
		_, _ = fmt.Fprintf(out, "  %-10s %s\n", name, applets[name].usage)
	}
}

func run() int {
	applets := newApplets()
	f := parseFlags(applets)
	setupLogging(*f.debug)

	if *f.listPorts {
		if err := listAdapters(); err != nil {
			log.Error().Err(err).Msg("failed to list adapters")
			return exitError
		}
		return exitOK
	}

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		return exitUsage
	}

	cfg, err := loadConfig(*f.configPath)
	if err != nil {
		log.Error().Err(err).Send()
		return exitError
	}

	addr, err := cfg.Address(args[1])
	if err != nil {
		log.Error().Err(err).Msg("invalid display address")
		return exitUsage
	}

	var name string
	if len(args) > 2 {
		name = args[2]
	}
	app, ok := applets[name]
	if !ok {
		printApplets(os.Stderr, applets)
		return exitError
	}

	portName, err := resolvePort(args[0], cfg)
	if err != nil {
		log.Error().Err(err).Msg("no port")
		return exitError
	}

	display, port, err := openDisplay(portName, cfg, *f.gpioPin)
	if err != nil {
		log.Error().Err(err).Msg("failed to open display bus")
		return exitError
	}
	defer func() {
		if err := display.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close display bus")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := &appletEnv{
		display: display,
		reader:  port,
		out:     os.Stdout,
		addr:    addr,
		pause:   pause,
		retry: retry.Config{
			MaxRetries: *f.retries,
			RetryDelay: *f.retryDelay,
			OnRetry: func(attempt int, err error) {
				log.Warn().Err(err).Int("attempt", attempt).Msg("retrying display write")
			},
		},
	}

	log.Info().
		Str("applet", name).
		Str("addr", fmt.Sprintf("%02x", addr)).
		Str("names", strings.Join(cfg.Names(addr), ",")).
		Msg("starting")

	if err := app.run(ctx, env, args[3:]); err != nil {
		if errors.Is(err, errUsage) {
			log.Error().Err(err).Msg(app.usage)
			return exitUsage
		}
		if errors.Is(err, context.Canceled) {
			return exitOK
		}
		log.Error().Err(err).Msg("applet failed")
		return exitError
	}
	return exitOK
}

func main() {
	os.Exit(run())
}
