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
	"sync"
)

// MockChannel is a Channel that records every write. It is used by tests in
// this module and by callers testing code built on Display.
type MockChannel struct {
	// WriteFunc, if set, decides the result of each Write after it is recorded
	WriteFunc func(b []byte) (int, error)
	writes    [][]byte
	mu        sync.Mutex
	closed    bool
	closes    int
}

// NewMockChannel creates a new mock channel
func NewMockChannel() *MockChannel {
	return &MockChannel{}
}

// NewMockChannelWithError creates a mock channel whose writes all fail with err
func NewMockChannelWithError(err error) *MockChannel {
	return &MockChannel{
		WriteFunc: func([]byte) (int, error) {
			return 0, err
		},
	}
}

// Write records a copy of b
func (m *MockChannel) Write(b []byte) (int, error) {
	m.mu.Lock()
	m.writes = append(m.writes, append([]byte(nil), b...))
	fn := m.WriteFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(b)
	}
	return len(b), nil
}

// Close marks the channel closed
func (m *MockChannel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.closes++
	return nil
}

// Writes returns every buffer written so far
func (m *MockChannel) Writes() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.writes))
	copy(out, m.writes)
	return out
}

// LastWrite returns the most recent buffer written, or nil
func (m *MockChannel) LastWrite() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writes) == 0 {
		return nil
	}
	return m.writes[len(m.writes)-1]
}

// IsClosed reports whether Close has been called
func (m *MockChannel) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// CloseCount returns how many times Close reached the channel
func (m *MockChannel) CloseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}
