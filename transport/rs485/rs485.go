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

// Package rs485 provides a half-duplex RS485 channel over a USB serial
// adapter, with direction control and turnaround delays around each write.
package rs485

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.bug.st/serial"

	mobitec "github.com/ZaparooProject/go-mobitec"
)

// serialPort is the subset of serial.Port used by Port
type serialPort interface {
	io.ReadWriteCloser
	Drain() error
	SetRTS(rts bool) error
	SetReadTimeout(t time.Duration) error
}

type openFunc func(name string, mode *serial.Mode) (serialPort, error)

func openSerial(name string, mode *serial.Mode) (serialPort, error) {
	return serial.Open(name, mode)
}

type options struct {
	driver  LineDriver
	open    openFunc
	sleep   func(time.Duration)
	log     zerolog.Logger
	gpioPin string
}

// Option configures a Port at Open
type Option func(*options)

// WithLineDriver uses driver for direction control instead of RTS
func WithLineDriver(driver LineDriver) Option {
	return func(o *options) {
		o.driver = driver
	}
}

// WithGPIODirection drives DE/RE from the named host GPIO pin instead of RTS
func WithGPIODirection(pinName string) Option {
	return func(o *options) {
		o.gpioPin = pinName
	}
}

// WithLogger sets the logger used for direction-control debug output
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.log = logger
	}
}

// Port is an open RS485 channel. It implements mobitec.Channel.
//
// Thread Safety: Port is NOT thread-safe. A Write holds the line in
// transmit for its whole duration and must not overlap another Write.
type Port struct {
	port     serialPort
	driver   LineDriver
	sleep    func(time.Duration)
	log      zerolog.Logger
	name     string
	settings Settings
	closed   bool
}

// Open opens the named serial port with settings and puts the line driver in
// receive.
func Open(name string, settings Settings, opts ...Option) (*Port, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	o := &options{
		open:  openSerial,
		sleep: time.Sleep,
		log:   log.Logger,
	}
	for _, opt := range opts {
		opt(o)
	}

	mode := &serial.Mode{
		BaudRate: settings.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	sp, err := o.open(name, mode)
	if err != nil {
		return nil, mobitec.NewTransportError("open", name,
			fmt.Errorf("%w: %w", mobitec.ErrTransportOpen, err), openErrorType(err))
	}

	p, err := newPort(sp, name, settings, o)
	if err != nil {
		_ = sp.Close()
		return nil, mobitec.NewTransportError("open", name,
			fmt.Errorf("%w: %w", mobitec.ErrTransportOpen, err), mobitec.ErrorTypePermanent)
	}
	return p, nil
}

func newPort(sp serialPort, name string, settings Settings, o *options) (*Port, error) {
	if err := sp.SetReadTimeout(settings.ReadTimeout); err != nil {
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}

	driver := o.driver
	if driver == nil && o.gpioPin != "" {
		var err error
		driver, err = GPIODriver(o.gpioPin)
		if err != nil {
			return nil, err
		}
	}
	if driver == nil {
		driver = &rtsDriver{port: sp}
	}

	p := &Port{
		port:     sp,
		driver:   driver,
		sleep:    o.sleep,
		log:      o.log.With().Str("port", name).Logger(),
		name:     name,
		settings: settings,
	}
	if err := p.driver.SetLevel(settings.LevelForRx); err != nil {
		return nil, fmt.Errorf("failed to enter receive: %w", err)
	}
	return p, nil
}

// openErrorType treats a busy port as transient and everything else, such
// as a missing device or bad permissions, as permanent.
func openErrorType(err error) mobitec.ErrorType {
	var portErr *serial.PortError
	if errors.As(err, &portErr) && portErr.Code() == serial.PortBusy {
		return mobitec.ErrorTypeTransient
	}
	return mobitec.ErrorTypePermanent
}

// Name returns the port name
func (p *Port) Name() string {
	return p.name
}

// Settings returns the settings the port was opened with
func (p *Port) Settings() Settings {
	return p.settings
}

// Write switches the line to transmit, waits DelayBeforeTx, writes b and
// waits for it to leave the UART, then waits DelayBeforeRx and switches the
// line back to receive. The line is returned to receive even when the write
// fails.
func (p *Port) Write(b []byte) (n int, err error) {
	if p.closed {
		return 0, mobitec.NewClosedError("write", p.name)
	}

	if err := p.driver.SetLevel(p.settings.LevelForTx); err != nil {
		return 0, fmt.Errorf("failed to enter transmit: %w", err)
	}
	p.log.Debug().Bool("level", p.settings.LevelForTx).Msg("line in transmit")

	defer func() {
		p.sleep(p.settings.DelayBeforeRx)
		if rxErr := p.driver.SetLevel(p.settings.LevelForRx); rxErr != nil && err == nil {
			err = fmt.Errorf("failed to enter receive: %w", rxErr)
		}
		p.log.Debug().Bool("level", p.settings.LevelForRx).Msg("line in receive")
	}()

	p.sleep(p.settings.DelayBeforeTx)

	n, err = p.port.Write(b)
	if err != nil {
		return n, err
	}
	if err := p.port.Drain(); err != nil {
		return n, fmt.Errorf("failed to drain output: %w", err)
	}
	return n, nil
}

// Read reads whatever arrives within the read timeout. It returns 0 and a
// nil error when nothing arrived.
func (p *Port) Read(b []byte) (int, error) {
	if p.closed {
		return 0, mobitec.NewClosedError("read", p.name)
	}
	n, err := p.port.Read(b)
	if err != nil {
		return n, mobitec.NewTransportError("read", p.name, err, mobitec.ErrorTypeTransient)
	}
	return n, nil
}

// Close closes the serial port. Calling Close more than once is safe.
func (p *Port) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if err := p.port.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", p.name, err)
	}
	return nil
}
