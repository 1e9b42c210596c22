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

/*
Package mobitec drives Mobitec seven-segment bus displays over an RS485
half-duplex serial link.

Each display write is framed the way the display firmware expects. The
payload is prefixed with the display's bus address. It is followed by an
8-bit sum, byte-stuffed so that 0xFF only ever appears as a delimiter, and
bracketed by empty messages for the same address. The whole sequence is sent
twice.

Basic Usage:

	import (
	    "github.com/ZaparooProject/go-mobitec"
	    "github.com/ZaparooProject/go-mobitec/transport/rs485"
	)

	// Open the serial adapter with the default CH340 + MAX485 timing
	port, err := rs485.Open("/dev/ttyUSB0", rs485.DefaultSettings())
	if err != nil {
	    log.Fatal(err)
	}

	display := mobitec.NewDisplay(mobitec.NewBus(port, mobitec.WithPortName("/dev/ttyUSB0")))
	defer display.Close()

	if err := display.WriteString(0x01, "Hi"); err != nil {
	    log.Fatal(err)
	}

Display Operations:

  - WriteString: up to three characters from space, 0-9 and A-Z (either case)
  - WriteDigits: three hexadecimal digits in the range 0 to 0xE
  - WriteSegments: three raw seven-segment masks, bit 0 is segment A

Error Handling:

Input is validated before anything is sent, so a rejected call leaves the
bus untouched:

	if errors.Is(err, mobitec.ErrOutOfRange) {
	    // Fix the input
	}

Channel failures are returned as *TransportError. The library never retries
a write. A half-duplex bus cannot tell a lost frame from one that arrived
unacknowledged, so retrying is left to the caller (see IsRetryable).

Thread Safety:

Bus and Display are not thread-safe. Only one write may be in flight on a
physical bus at a time. If you need concurrent access, implement appropriate
synchronization in your application.
*/
package mobitec
