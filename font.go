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
	"fmt"
	"unicode/utf8"
)

// SegmentMask is a 7-bit set of lit segments for one display cell.
type SegmentMask uint8

// Segment bits, A at the top running clockwise to F, with G in the middle.
const (
	SegA SegmentMask = 1 << iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG
)

// MaxSegmentMask is the largest valid mask, all seven segments lit.
const MaxSegmentMask SegmentMask = 0x7F

// Valid reports whether m fits in seven bits.
func (m SegmentMask) Valid() bool {
	return m <= MaxSegmentMask
}

var digitGlyphs = [10]SegmentMask{
	SegA | SegB | SegC | SegD | SegE | SegF,        // 0
	SegB | SegC,                                    // 1
	SegA | SegB | SegD | SegE | SegG,               // 2
	SegA | SegB | SegC | SegD | SegG,               // 3
	SegB | SegC | SegF | SegG,                      // 4
	SegA | SegC | SegD | SegF | SegG,               // 5
	SegA | SegC | SegD | SegE | SegF | SegG,        // 6
	SegA | SegB | SegC,                             // 7
	SegA | SegB | SegC | SegD | SegE | SegF | SegG, // 8
	SegA | SegB | SegC | SegF | SegG,               // 9
}

var letterGlyphs = [26]SegmentMask{
	SegA | SegB | SegC | SegE | SegF | SegG, // A
	SegC | SegD | SegE | SegF | SegG,        // B
	SegA | SegD | SegE | SegF,               // C
	SegB | SegC | SegD | SegE | SegG,        // D
	SegA | SegD | SegE | SegF | SegG,        // E
	SegA | SegE | SegF | SegG,               // F
	SegA | SegC | SegD | SegE | SegF,        // G
	SegB | SegC | SegE | SegF | SegG,        // H
	SegC,                                    // I
	SegB | SegC | SegD | SegE,               // J
	SegA | SegC | SegE | SegF | SegG,        // K
	SegD | SegE | SegF,                      // L
	SegA | SegC | SegE | SegG,               // M
	SegC | SegE | SegG,                      // N
	SegC | SegD | SegE | SegG,               // O
	SegA | SegB | SegE | SegF | SegG,        // P
	SegA | SegB | SegC | SegF | SegG,        // Q
	SegE | SegG,                             // R
	SegA | SegC | SegD | SegF | SegG,        // S
	SegD | SegE | SegF | SegG,               // T
	SegB | SegC | SegD | SegE | SegF,        // U
	SegC | SegD | SegE,                      // V
	SegB | SegD | SegF | SegG,               // W
	SegB | SegC | SegE | SegF | SegG,        // X
	SegB | SegC | SegD | SegF | SegG,        // Y
	SegA | SegB | SegD | SegE | SegG,        // Z
}

// Glyph returns the segment mask for r. Lower-case letters render as their
// upper-case form. ok is false when r has no glyph.
func Glyph(r rune) (mask SegmentMask, ok bool) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	switch {
	case r == ' ':
		return 0, true
	case r >= '0' && r <= '9':
		return digitGlyphs[r-'0'], true
	case r >= 'A' && r <= 'Z':
		return letterGlyphs[r-'A'], true
	default:
		return 0, false
	}
}

// Lookup returns the segment mask for r or ErrUnsupportedCharacter.
func Lookup(r rune) (SegmentMask, error) {
	mask, ok := Glyph(r)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedCharacter, r)
	}
	return mask, nil
}

// LookupString looks up a string holding exactly one character.
func LookupString(s string) (SegmentMask, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: expected a single character, got %q", ErrInvalidInput, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return Lookup(r)
}
