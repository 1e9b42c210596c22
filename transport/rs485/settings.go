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
	"time"
)

// ErrInvalidSettings is returned by Settings.Validate
var ErrInvalidSettings = errors.New("invalid rs485 settings")

// Settings holds the serial line parameters and direction-control timing.
// They are fixed once the port is open.
type Settings struct {
	// BaudRate is the serial line speed
	BaudRate int

	// ReadTimeout bounds each Read. Writes never wait on it.
	ReadTimeout time.Duration

	// DelayBeforeTx is the settle time after switching the driver to
	// transmit and before the first byte goes out
	DelayBeforeTx time.Duration

	// DelayBeforeRx is the settle time after the last byte has left the
	// UART and before switching the driver back to receive
	DelayBeforeRx time.Duration

	// LevelForRx is the line level driven while receiving
	LevelForRx bool

	// LevelForTx is the line level driven while transmitting
	LevelForTx bool
}

// DefaultSettings returns settings for a MAX485 transceiver behind a CH340
// USB adapter.
//
// The MAX485 wants RE and DE low to receive and high to transmit. The CH340
// inverts RTS, so the levels here are pre-inverted: high for receive, low
// for transmit.
func DefaultSettings() Settings {
	return Settings{
		BaudRate:      4800,
		ReadTimeout:   100 * time.Millisecond,
		LevelForRx:    true,
		LevelForTx:    false,
		DelayBeforeTx: 250 * time.Millisecond,
		DelayBeforeRx: 250 * time.Millisecond,
	}
}

// Validate checks that the settings can be applied to a port
func (s Settings) Validate() error {
	if s.BaudRate <= 0 {
		return fmt.Errorf("%w: baud rate %d", ErrInvalidSettings, s.BaudRate)
	}
	// A zero timeout makes reads non-blocking.
	if s.ReadTimeout <= 0 {
		return fmt.Errorf("%w: read timeout %v", ErrInvalidSettings, s.ReadTimeout)
	}
	if s.DelayBeforeTx < 0 || s.DelayBeforeRx < 0 {
		return fmt.Errorf("%w: negative turnaround delay", ErrInvalidSettings)
	}
	return nil
}

// TransmitTime estimates how long n bytes take on the wire at the configured
// baud rate, 10 bits per byte for 8N1 framing.
func (s Settings) TransmitTime(n int) time.Duration {
	if s.BaudRate <= 0 {
		return 0
	}
	return time.Duration(n) * 10 * time.Second / time.Duration(s.BaudRate)
}
