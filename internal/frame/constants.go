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

// Package frame provides packet framing and protocol constants for Mobitec
// RS485 communication
package frame

// Framing bytes
const (
	Delimiter  = 0xFF // Frame delimiter, never appears unescaped inside a body
	EscapeByte = 0xFE // Escape marker
)

// Escape sequence suffixes. A literal 0xFE is sent as EscapeByte, EscapedEscape
// and a literal 0xFF as EscapeByte, EscapedDelimiter.
const (
	EscapedEscape    = 0x00
	EscapedDelimiter = 0x01
)

// Command bytes
const (
	CmdSegments = 0xAE // Raw 7-segment write to three cells
)

// Packet layout
const (
	// Copies is the number of times the wrapped sequence is repeated on the wire.
	Copies = 2
	// WrapperLength is the number of sentinel bytes around an escaped body
	// (FF a a FF FF before it, FF FF a a FF after it).
	WrapperLength = 10
	// MaxPayloadLength bounds payloads accepted by the decoder.
	MaxPayloadLength = 255
)
