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
	"fmt"
)

// Decoder errors
var (
	ErrShortFrame       = errors.New("frame too short")
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrFrameTooLong     = errors.New("frame exceeds maximum length")
)

// maxRunLength is the longest escaped run the decoder buffers: address,
// payload and checksum, each byte possibly escaped.
const maxRunLength = 2 * (MaxPayloadLength + 2)

// Frame is one message recovered from the wire.
type Frame struct {
	Err      error
	Payload  []byte
	Raw      []byte
	Address  byte
	Checksum byte
}

// Valid reports whether the frame unescaped cleanly and its checksum matched.
func (f Frame) Valid() bool {
	return f.Err == nil
}

// Empty reports whether the frame carries no payload. The sentinel messages
// around every packet decode as empty frames.
func (f Frame) Empty() bool {
	return len(f.Payload) == 0
}

func (f Frame) String() string {
	if f.Err != nil {
		return fmt.Sprintf("invalid frame [%s]: %v", Hex(f.Raw), f.Err)
	}
	return fmt.Sprintf("addr=%02x payload=[%s] sum=%02x", f.Address, Hex(f.Payload), f.Checksum)
}

// Decoder splits a byte stream into frames on Delimiter bytes. It holds
// state between calls to Feed so a frame may span several reads.
//
// Decoder is not safe for concurrent use.
type Decoder struct {
	run      []byte
	overflow bool
}

// NewDecoder creates a new stream decoder
func NewDecoder() *Decoder {
	return &Decoder{run: make([]byte, 0, 64)}
}

// Feed consumes b and returns every frame completed by it.
func (d *Decoder) Feed(b []byte) []Frame {
	var frames []Frame
	for _, c := range b {
		if c != Delimiter {
			if len(d.run) >= maxRunLength {
				d.overflow = true
				continue
			}
			d.run = append(d.run, c)
			continue
		}
		if f, ok := d.take(); ok {
			frames = append(frames, f)
		}
	}
	return frames
}

// Flush returns the pending run as a frame, if any, and resets the decoder.
func (d *Decoder) Flush() []Frame {
	if f, ok := d.take(); ok {
		return []Frame{f}
	}
	return nil
}

func (d *Decoder) take() (Frame, bool) {
	if len(d.run) == 0 && !d.overflow {
		return Frame{}, false
	}
	raw := append([]byte(nil), d.run...)
	overflow := d.overflow
	d.run = d.run[:0]
	d.overflow = false

	if overflow {
		return Frame{Raw: raw, Err: ErrFrameTooLong}, true
	}
	return DecodeBody(raw), true
}

// DecodeBody unescapes a single run of bytes found between delimiters and
// checks its checksum.
func DecodeBody(raw []byte) Frame {
	f := Frame{Raw: raw}

	body, err := Unescape(raw)
	if err != nil {
		f.Err = err
		return f
	}
	if len(body) < 2 {
		f.Err = ErrShortFrame
		return f
	}

	f.Address = body[0]
	f.Payload = body[1 : len(body)-1]
	f.Checksum = body[len(body)-1]
	if want := Checksum(body[:len(body)-1]); want != f.Checksum {
		f.Err = fmt.Errorf("%w: got %02x, want %02x", ErrChecksumMismatch, f.Checksum, want)
	}
	return f
}
