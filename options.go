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

package mobitec

import (
	"time"

	"github.com/rs/zerolog"
)

// BusOption is a functional option for configuring a Bus
type BusOption func(*Bus)

// WithLogger sets the logger packet traces are written to. The default is
// the global zerolog logger.
func WithLogger(logger zerolog.Logger) BusOption {
	return func(b *Bus) {
		b.log = logger
	}
}

// WithPortName records the port name for error messages and traces
func WithPortName(name string) BusOption {
	return func(b *Bus) {
		b.port = name
	}
}

// WithClock replaces the clock used for elapsed time measurement
func WithClock(now func() time.Time) BusOption {
	return func(b *Bus) {
		b.now = now
	}
}
