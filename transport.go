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
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ZaparooProject/go-mobitec/internal/frame"
)

// Channel is the half-duplex byte channel a Bus writes packets to. The
// channel is responsible for switching the line driver between transmit and
// receive around each Write; the Bus never issues direction changes itself.
//
// transport/rs485.Port is the implementation used with real hardware.
type Channel interface {
	// Write transmits b in full or returns an error
	Write(b []byte) (int, error)

	// Close releases the channel
	Close() error
}

// Bus owns a Channel and sends framed packets over it.
//
// Thread Safety: Bus is NOT thread-safe. The half-duplex direction toggle
// inside the channel and the elapsed time trace assume at most one Send in
// flight per physical bus. Callers sharing a Bus across goroutines must
// serialize access themselves.
type Bus struct {
	ch     Channel
	now    func() time.Time
	start  time.Time
	log    zerolog.Logger
	port   string
	closed bool
}

// NewBus creates a Bus writing to ch. The elapsed time reported in traces is
// measured from this call.
func NewBus(ch Channel, opts ...BusOption) *Bus {
	b := &Bus{
		ch:  ch,
		now: time.Now,
		log: log.Logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.port != "" {
		b.log = b.log.With().Str("port", b.port).Logger()
	}
	b.start = b.now()
	return b
}

// Elapsed returns the time since the Bus was created
func (b *Bus) Elapsed() time.Duration {
	return b.now().Sub(b.start)
}

// Port returns the port name the Bus was configured with, if any
func (b *Bus) Port() string {
	return b.port
}

// Send encodes payload for the display at addr and writes the packet to the
// channel. It blocks for as long as the channel takes to turn the line
// around and transmit. Nothing is read back and nothing is retried.
func (b *Bus) Send(addr byte, payload []byte) error {
	return b.SendContext(context.Background(), addr, payload)
}

// SendContext is Send with a context. The context is only checked before the
// write starts; a write in progress always runs to completion so that no
// truncated frame is left on the bus.
func (b *Bus) SendContext(ctx context.Context, addr byte, payload []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if b.closed {
		return NewClosedError("write", b.port)
	}

	packet := frame.Encode(addr, payload)

	b.log.Info().
		Dur("elapsed", b.Elapsed()).
		Str("addr", hexByte(addr)).
		Str("payload", frame.Hex(payload)).
		Str("packet", frame.Hex(packet)).
		Msg("write packet")

	n, err := b.ch.Write(packet)
	if err != nil {
		return NewWriteError(b.port, err)
	}
	if n != len(packet) {
		return NewWriteError(b.port, io.ErrShortWrite)
	}
	return nil
}

// Close closes the underlying channel. Calling Close more than once is safe.
func (b *Bus) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	if err := b.ch.Close(); err != nil {
		return NewTransportError("close", b.port, err, ErrorTypePermanent)
	}
	return nil
}

func hexByte(v byte) string {
	return frame.Hex([]byte{v})
}
