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
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ZaparooProject/go-mobitec/internal/frame"
)

// Cells is the number of character cells on the display
const Cells = 3

// MaxDigit is the exclusive upper bound for values passed to WriteDigits
const MaxDigit = 0xF

// Display writes to three-cell seven-segment signs on a Bus.
//
// Thread Safety: Display is NOT thread-safe, for the same reasons as Bus.
type Display struct {
	bus *Bus
}

// NewDisplay creates a Display that sends through bus. The Display takes
// ownership of bus and closes it on Close.
func NewDisplay(bus *Bus) *Display {
	return &Display{bus: bus}
}

// Bus returns the underlying bus
func (d *Display) Bus() *Bus {
	return d.bus
}

// WriteSegments lights the given segments on the display at addr.
func (d *Display) WriteSegments(addr byte, left, middle, right SegmentMask) error {
	return d.WriteSegmentsContext(context.Background(), addr, left, middle, right)
}

// WriteSegmentsContext is WriteSegments with a context
func (d *Display) WriteSegmentsContext(ctx context.Context, addr byte, left, middle, right SegmentMask) error {
	for _, m := range [...]SegmentMask{left, middle, right} {
		if !m.Valid() {
			return fmt.Errorf("%w: segment mask %#04x", ErrOutOfRange, uint8(m))
		}
	}

	// Cells go on the wire right to left.
	payload := []byte{frame.CmdSegments, byte(right), byte(middle), byte(left), 0x00}
	return d.bus.SendContext(ctx, addr, payload)
}

// WriteDigits shows three hexadecimal digits, each in the range 0 to 0xE.
func (d *Display) WriteDigits(addr byte, left, middle, right int) error {
	return d.WriteDigitsContext(context.Background(), addr, left, middle, right)
}

// WriteDigitsContext is WriteDigits with a context
func (d *Display) WriteDigitsContext(ctx context.Context, addr byte, left, middle, right int) error {
	var masks [Cells]SegmentMask
	for i, v := range [...]int{left, middle, right} {
		if v < 0 || v >= MaxDigit {
			return fmt.Errorf("%w: digit %#04x", ErrOutOfRange, v)
		}
		mask, err := LookupString(strconv.FormatInt(int64(v), 16))
		if err != nil {
			return err
		}
		masks[i] = mask
	}
	return d.WriteSegmentsContext(ctx, addr, masks[0], masks[1], masks[2])
}

// WriteString shows up to three characters, left aligned. Supported
// characters are space, digits and letters of either case.
func (d *Display) WriteString(addr byte, s string) error {
	return d.WriteStringContext(context.Background(), addr, s)
}

// WriteStringContext is WriteString with a context
func (d *Display) WriteStringContext(ctx context.Context, addr byte, s string) error {
	d.bus.log.Debug().Str("text", s).Str("addr", hexByte(addr)).Msg("write string")

	n := utf8.RuneCountInString(s)
	if n > Cells {
		return fmt.Errorf("%w: string %q must have length %d or less", ErrInvalidInput, s, Cells)
	}
	s += strings.Repeat(" ", Cells-n)

	var masks [Cells]SegmentMask
	i := 0
	for _, r := range s {
		mask, err := Lookup(r)
		if err != nil {
			return err
		}
		masks[i] = mask
		i++
	}
	return d.WriteSegmentsContext(ctx, addr, masks[0], masks[1], masks[2])
}

// Close closes the bus and the channel beneath it
func (d *Display) Close() error {
	return d.bus.Close()
}
