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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettingsValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		modify  func(*Settings)
		name    string
		wantErr bool
	}{
		{name: "defaults", modify: func(*Settings) {}},
		{name: "zero delays", modify: func(s *Settings) { s.DelayBeforeTx, s.DelayBeforeRx = 0, 0 }},
		{name: "zero baud", modify: func(s *Settings) { s.BaudRate = 0 }, wantErr: true},
		{name: "negative timeout", modify: func(s *Settings) { s.ReadTimeout = -time.Second }, wantErr: true},
		{name: "zero timeout", modify: func(s *Settings) { s.ReadTimeout = 0 }, wantErr: true},
		{name: "negative delay", modify: func(s *Settings) { s.DelayBeforeRx = -time.Millisecond }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := DefaultSettings()
			tt.modify(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSettings)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransmitTime(t *testing.T) {
	t.Parallel()
	s := DefaultSettings()

	// 48 bytes at 4800 baud, 10 bits each
	assert.Equal(t, 100*time.Millisecond, s.TransmitTime(48))
	assert.Equal(t, time.Duration(0), Settings{}.TransmitTime(10))
}
