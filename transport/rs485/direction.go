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

package rs485

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// ErrPinNotFound is returned when a GPIO pin name is not registered
var ErrPinNotFound = errors.New("gpio pin not found")

// LineDriver sets the level of the line wired to the transceiver's
// driver-enable and receiver-enable inputs.
type LineDriver interface {
	SetLevel(high bool) error
}

type rtsSetter interface {
	SetRTS(rts bool) error
}

// rtsDriver drives DE/RE from the serial adapter's RTS output
type rtsDriver struct {
	port rtsSetter
}

func (d *rtsDriver) SetLevel(high bool) error {
	if err := d.port.SetRTS(high); err != nil {
		return fmt.Errorf("failed to set RTS: %w", err)
	}
	return nil
}

// gpioDriver drives DE/RE from a host GPIO pin
type gpioDriver struct {
	pin gpio.PinOut
}

func (d *gpioDriver) SetLevel(high bool) error {
	if err := d.pin.Out(gpio.Level(high)); err != nil {
		return fmt.Errorf("failed to set %s: %w", d.pin, err)
	}
	return nil
}

// GPIODriver returns a LineDriver for the named host GPIO pin, for boards
// where DE/RE is wired to a header pin rather than the adapter's RTS.
func GPIODriver(pinName string) (LineDriver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("%w: %s", ErrPinNotFound, pinName)
	}
	return &gpioDriver{pin: pin}, nil
}
