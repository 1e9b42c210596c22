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

package frame

import (
	"errors"
	"strings"
)

// ErrInvalidEscape is returned when an escape marker is followed by anything
// other than EscapedEscape or EscapedDelimiter.
var ErrInvalidEscape = errors.New("invalid escape sequence")

const hexDigits = "0123456789abcdef"

// Checksum returns the 8-bit wraparound sum of data.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// Escape byte-stuffs b so that no Delimiter byte remains in the output.
func Escape(b []byte) []byte {
	out := make([]byte, 0, len(b)+4)
	for _, c := range b {
		switch c {
		case EscapeByte:
			out = append(out, EscapeByte, EscapedEscape)
		case Delimiter:
			out = append(out, EscapeByte, EscapedDelimiter)
		default:
			out = append(out, c)
		}
	}
	return out
}

// Unescape reverses Escape.
func Unescape(b []byte) ([]byte, error) {
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != EscapeByte {
			out = append(out, b[i])
			continue
		}
		if i+1 >= len(b) {
			return nil, ErrInvalidEscape
		}
		i++
		switch b[i] {
		case EscapedEscape:
			out = append(out, EscapeByte)
		case EscapedDelimiter:
			out = append(out, Delimiter)
		default:
			return nil, ErrInvalidEscape
		}
	}
	return out, nil
}

// Body returns the unescaped message for one display write: the address,
// the payload and the checksum over both.
func Body(addr byte, payload []byte) []byte {
	body := make([]byte, 0, len(payload)+2)
	body = append(body, addr)
	body = append(body, payload...)
	return append(body, Checksum(body))
}

// Wrap brackets an escaped body with the empty messages for addr.
// The address bytes in the wrapper are not escaped.
func Wrap(addr byte, escaped []byte) []byte {
	out := make([]byte, 0, len(escaped)+WrapperLength)
	out = append(out, Delimiter, addr, addr, Delimiter, Delimiter)
	out = append(out, escaped...)
	return append(out, Delimiter, Delimiter, addr, addr, Delimiter)
}

// Encode builds the complete packet for writing payload to the display at
// addr. The wrapped sequence is sent Copies times back to back, which the
// displays pick up much more reliably than a single copy.
//
// Encode is deterministic and has no side effects.
func Encode(addr byte, payload []byte) []byte {
	// NOTE: checksum is computed before escaping. Unverified against
	// hardware that carries 0xFE/0xFF in the payload.
	wrapped := Wrap(addr, Escape(Body(addr, payload)))

	packet := make([]byte, 0, len(wrapped)*Copies)
	for i := 0; i < Copies; i++ {
		packet = append(packet, wrapped...)
	}
	return packet
}

// Hex formats b as lower-case, space separated byte pairs.
func Hex(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(b)*3 - 1)
	for i, c := range b {
		if i > 0 {
			_ = sb.WriteByte(' ')
		}
		_ = sb.WriteByte(hexDigits[c>>4])
		_ = sb.WriteByte(hexDigits[c&0x0F])
	}
	return sb.String()
}
