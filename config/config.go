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

// Package config loads the YAML file describing a display bus: the serial
// port, its direction-control timing and the displays on it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ZaparooProject/go-mobitec/transport/rs485"
)

// Direction drivers
const (
	DriverRTS  = "rts"
	DriverGPIO = "gpio"
)

// Config errors
var (
	ErrInvalidConfig  = errors.New("invalid config")
	ErrUnknownDisplay = errors.New("unknown display")
	ErrAddressRange   = errors.New("address out of range")
)

// Direction overrides the direction-control part of rs485.Settings. Nil
// fields keep their defaults.
type Direction struct {
	LevelForRx    *bool          `yaml:"level_for_rx"`
	LevelForTx    *bool          `yaml:"level_for_tx"`
	DelayBeforeTx *time.Duration `yaml:"delay_before_tx"`
	DelayBeforeRx *time.Duration `yaml:"delay_before_rx"`
	Driver        string         `yaml:"driver"`
	Pin           string         `yaml:"pin"`
}

// Config is the parsed config file
type Config struct {
	Displays    map[string]int `yaml:"displays"`
	ReadTimeout *time.Duration `yaml:"read_timeout"`
	Port        string         `yaml:"port"`
	Direction   Direction      `yaml:"direction"`
	Baud        int            `yaml:"baud"`
}

// Load reads and parses the config file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML config. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges. Several display names may share one address;
// every display listening on it updates together.
func (c *Config) Validate() error {
	for name, addr := range c.Displays {
		if addr < 0 || addr > 0xFF {
			return fmt.Errorf("%w: display %q address %d", ErrAddressRange, name, addr)
		}
	}
	switch c.Direction.Driver {
	case "", DriverRTS:
	case DriverGPIO:
		if c.Direction.Pin == "" {
			return fmt.Errorf("%w: gpio direction driver needs a pin", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown direction driver %q", ErrInvalidConfig, c.Direction.Driver)
	}
	if c.Baud < 0 {
		return fmt.Errorf("%w: baud %d", ErrInvalidConfig, c.Baud)
	}
	return c.Settings().Validate()
}

// Settings overlays the config on rs485.DefaultSettings
func (c *Config) Settings() rs485.Settings {
	s := rs485.DefaultSettings()
	if c.Baud != 0 {
		s.BaudRate = c.Baud
	}
	if c.ReadTimeout != nil {
		s.ReadTimeout = *c.ReadTimeout
	}
	d := c.Direction
	if d.LevelForRx != nil {
		s.LevelForRx = *d.LevelForRx
	}
	if d.LevelForTx != nil {
		s.LevelForTx = *d.LevelForTx
	}
	if d.DelayBeforeTx != nil {
		s.DelayBeforeTx = *d.DelayBeforeTx
	}
	if d.DelayBeforeRx != nil {
		s.DelayBeforeRx = *d.DelayBeforeRx
	}
	return s
}

// PortOptions returns the rs485 options implied by the config
func (c *Config) PortOptions() []rs485.Option {
	if c.Direction.Driver == DriverGPIO {
		return []rs485.Option{rs485.WithGPIODirection(c.Direction.Pin)}
	}
	return nil
}

// Address resolves a display name from the config, or parses a numeric
// address in any Go integer syntax (1, 0x01, 0o1, 0b1).
func (c *Config) Address(nameOrNumber string) (byte, error) {
	key := strings.TrimSpace(nameOrNumber)
	if c != nil {
		if addr, ok := c.Displays[key]; ok {
			return byte(addr), nil
		}
	}
	return ParseAddress(key)
}

// ParseAddress parses a numeric bus address
func ParseAddress(s string) (byte, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 8)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %s", ErrAddressRange, s)
		}
		return 0, fmt.Errorf("%w: %q", ErrUnknownDisplay, s)
	}
	return byte(v), nil
}

// Names returns the display names configured for addr
func (c *Config) Names(addr byte) []string {
	var names []string
	for name, a := range c.Displays {
		if a == int(addr) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
