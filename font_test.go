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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fontCharset = " 0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func TestGlyphCompleteness(t *testing.T) {
	t.Parallel()

	for _, r := range fontCharset + strings.ToLower(fontCharset) {
		mask, err := Lookup(r)
		require.NoError(t, err, "character %q", r)
		assert.True(t, mask.Valid(), "character %q mask %#x", r, mask)
	}
}

func TestGlyphCaseFolding(t *testing.T) {
	t.Parallel()

	for r := 'a'; r <= 'z'; r++ {
		lower, ok := Glyph(r)
		require.True(t, ok)
		upper, ok := Glyph(r - 'a' + 'A')
		require.True(t, ok)
		assert.Equal(t, upper, lower, "glyph for %q", r)
	}
}

func TestGlyphShapes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		r    rune
		want SegmentMask
	}{
		{r: ' ', want: 0x00},
		{r: '0', want: 0x3F},
		{r: '1', want: 0x06},
		{r: '2', want: 0x5B},
		{r: '7', want: 0x07},
		{r: '8', want: 0x7F},
		{r: 'A', want: 0x77},
		{r: 'H', want: 0x76},
		{r: 'I', want: 0x04},
		{r: 'R', want: 0x50},
		{r: 'Z', want: 0x5B},
	}

	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			t.Parallel()
			got, ok := Glyph(tt.r)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupUnsupported(t *testing.T) {
	t.Parallel()

	for _, r := range []rune{'!', '=', '.', '-', '_', '@', '[', '`', '{', 'é', '\n', 0} {
		_, ok := Glyph(r)
		assert.False(t, ok, "character %q", r)

		_, err := Lookup(r)
		assert.ErrorIs(t, err, ErrUnsupportedCharacter, "character %q", r)
	}
}

func TestLookupString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		want error
		name string
		in   string
		mask SegmentMask
	}{
		{name: "single digit", in: "3", mask: 0x4F},
		{name: "lower-case hex", in: "e", mask: 0x79},
		{name: "empty", in: "", want: ErrInvalidInput},
		{name: "two characters", in: "ab", want: ErrInvalidInput},
		{name: "unsupported", in: "?", want: ErrUnsupportedCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := LookupString(tt.in)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.mask, got)
		})
	}
}

func TestSegmentMaskValid(t *testing.T) {
	t.Parallel()

	assert.True(t, SegmentMask(0).Valid())
	assert.True(t, MaxSegmentMask.Valid())
	assert.True(t, (SegA | SegB | SegC | SegD | SegE | SegF | SegG).Valid())
	assert.False(t, SegmentMask(0x80).Valid())
	assert.False(t, SegmentMask(0xFF).Valid())
}
