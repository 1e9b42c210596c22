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

package detection

import (
	"fmt"
	"sort"

	"go.bug.st/serial/enumerator"
)

// knownBridges maps VID:PID to the USB-UART chips commonly found on USB to
// RS485 dongles.
var knownBridges = map[string]string{
	"1A86:7523": "CH340",
	"1A86:5523": "CH341",
	"1A86:55D4": "CH9102",
	"0403:6001": "FT232R",
	"0403:6015": "FT231X",
	"10C4:EA60": "CP210x",
}

// Adapter is a serial port that may carry an RS485 bus
type Adapter struct {
	Path         string
	VIDPID       string
	Product      string
	SerialNumber string
	// Chip names the bridge chip when the VID:PID is a known RS485 dongle
	Chip string
}

// Known reports whether the adapter uses a recognised bridge chip
func (a Adapter) Known() bool {
	return a.Chip != ""
}

func (a Adapter) String() string {
	desc := a.Path
	if a.VIDPID != "" {
		desc += " [" + a.VIDPID + "]"
	}
	if a.Chip != "" {
		desc += " " + a.Chip
	}
	if a.Product != "" {
		desc += " (" + a.Product + ")"
	}
	return desc
}

// Options controls adapter filtering
type Options struct {
	// Blocklist holds VID:PID pairs to skip. DefaultBlocklist is used when nil.
	Blocklist []string
	// IgnorePaths holds device paths to skip
	IgnorePaths []string
	// IncludeNonUSB also lists built-in UARTs, which have no VID:PID
	IncludeNonUSB bool
}

// IsKnownBridge reports whether vidpid is a known RS485 dongle bridge chip
// and returns its name.
func IsKnownBridge(vidpid string) (string, bool) {
	chip, ok := knownBridges[normalizeVIDPID(vidpid)]
	return chip, ok
}

// ListAdapters enumerates serial ports and returns the candidates for an
// RS485 bus, known bridge chips first.
func ListAdapters(opts Options) ([]Adapter, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}
	return filterAdapters(ports, opts), nil
}

func filterAdapters(ports []*enumerator.PortDetails, opts Options) []Adapter {
	blocklist := opts.Blocklist
	if blocklist == nil {
		blocklist = DefaultBlocklist()
	}

	adapters := make([]Adapter, 0, len(ports))
	for _, port := range ports {
		if port == nil || IsPathIgnored(port.Name, opts.IgnorePaths) {
			continue
		}
		if !port.IsUSB && !opts.IncludeNonUSB {
			continue
		}

		vidpid := VIDPID(port.VID, port.PID)
		if IsBlocked(vidpid, blocklist) {
			continue
		}

		chip, _ := IsKnownBridge(vidpid)
		adapters = append(adapters, Adapter{
			Path:         port.Name,
			VIDPID:       vidpid,
			Product:      port.Product,
			SerialNumber: port.SerialNumber,
			Chip:         chip,
		})
	}

	sort.SliceStable(adapters, func(i, j int) bool {
		if adapters[i].Known() != adapters[j].Known() {
			return adapters[i].Known()
		}
		return adapters[i].Path < adapters[j].Path
	})
	return adapters
}
