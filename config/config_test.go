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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaparooProject/go-mobitec/transport/rs485"
)

const sampleConfig = `
port: /dev/ttyUSB0
baud: 9600
read_timeout: 50ms
direction:
  driver: gpio
  pin: GPIO17
  level_for_rx: false
  level_for_tx: true
  delay_before_tx: 10ms
  delay_before_rx: 20ms
displays:
  front: 0x01
  side: 2
  rear: 0x01
`

func TestParse(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB0", cfg.Port)
	assert.Equal(t, rs485.Settings{
		BaudRate:      9600,
		ReadTimeout:   50 * time.Millisecond,
		LevelForRx:    false,
		LevelForTx:    true,
		DelayBeforeTx: 10 * time.Millisecond,
		DelayBeforeRx: 20 * time.Millisecond,
	}, cfg.Settings())
	assert.Len(t, cfg.PortOptions(), 1)
	assert.Equal(t, []string{"front", "rear"}, cfg.Names(0x01))
}

func TestParseEmptyUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, rs485.DefaultSettings(), cfg.Settings())
	assert.Empty(t, cfg.PortOptions())
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		want error
		name string
		yaml string
	}{
		{name: "unknown key", yaml: "prot: /dev/ttyUSB0\n", want: ErrInvalidConfig},
		{name: "address too large", yaml: "displays:\n  front: 256\n", want: ErrAddressRange},
		{name: "negative address", yaml: "displays:\n  front: -1\n", want: ErrAddressRange},
		{name: "gpio without pin", yaml: "direction:\n  driver: gpio\n", want: ErrInvalidConfig},
		{name: "unknown driver", yaml: "direction:\n  driver: dtr\n", want: ErrInvalidConfig},
		{name: "negative delay", yaml: "direction:\n  delay_before_tx: -1s\n", want: rs485.ErrInvalidSettings},
		{name: "bad duration", yaml: "read_timeout: soon\n", want: ErrInvalidConfig},
		{name: "zero read timeout", yaml: "read_timeout: 0s\n", want: rs485.ErrInvalidSettings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAddress(t *testing.T) {
	t.Parallel()
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	tests := []struct {
		want error
		in   string
		addr byte
	}{
		{in: "front", addr: 0x01},
		{in: "side", addr: 0x02},
		{in: "0x2A", addr: 0x2A},
		{in: "17", addr: 17},
		{in: "0o17", addr: 0o17},
		{in: "255", addr: 0xFF},
		{in: "256", want: ErrAddressRange},
		{in: "garage", want: ErrUnknownDisplay},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := cfg.Address(tt.in)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.addr, got)
		})
	}
}

func TestAddressWithoutConfig(t *testing.T) {
	t.Parallel()
	var cfg *Config

	addr, err := cfg.Address("0x10")
	require.NoError(t, err)
	assert.Equal(t, byte(0x10), addr)
}

func TestLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "mobitec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Port)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
