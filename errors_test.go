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
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "write error",
			err:  NewWriteError("/dev/ttyUSB0", errors.New("i/o error")),
			want: true,
		},
		{
			name: "wrapped write error",
			err:  fmt.Errorf("send: %w", NewWriteError("/dev/ttyUSB0", errors.New("i/o error"))),
			want: true,
		},
		{
			name: "closed transport",
			err:  NewClosedError("write", "/dev/ttyUSB0"),
			want: false,
		},
		{
			name: "validation error",
			err:  fmt.Errorf("%w: digit 0x0f", ErrOutOfRange),
			want: false,
		},
		{
			name: "bare sentinel",
			err:  ErrTransportWrite,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := IsRetryable(tt.err)
			if got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetErrorType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		name string
		want ErrorType
	}{
		{
			name: "nil error",
			err:  nil,
			want: ErrorTypePermanent,
		},
		{
			name: "unknown error",
			err:  errors.New("unknown error"),
			want: ErrorTypePermanent,
		},
		{
			name: "transport error timeout",
			err:  NewTransportError("write", "/dev/ttyUSB0", errors.New("deadline"), ErrorTypeTimeout),
			want: ErrorTypeTimeout,
		},
		{
			name: "write error",
			err:  NewWriteError("", errors.New("broken pipe")),
			want: ErrorTypeTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := GetErrorType(tt.err)
			if got != tt.want {
				t.Errorf("GetErrorType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewTransportError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err       error
		name      string
		op        string
		port      string
		errType   ErrorType
		retryable bool
	}{
		{
			name:    "permanent open error",
			op:      "open",
			port:    "/dev/ttyUSB0",
			err:     errors.New("permission denied"),
			errType: ErrorTypePermanent,
		},
		{
			name:      "empty port",
			op:        "write",
			port:      "",
			err:       errors.New("connection lost"),
			errType:   ErrorTypeTransient,
			retryable: true,
		},
		{
			name:      "timeout error",
			op:        "write",
			port:      "COM3",
			err:       errors.New("timed out"),
			errType:   ErrorTypeTimeout,
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			te := NewTransportError(tt.op, tt.port, tt.err, tt.errType)

			if te.Op != tt.op {
				t.Errorf("Op = %q, want %q", te.Op, tt.op)
			}
			if te.Port != tt.port {
				t.Errorf("Port = %q, want %q", te.Port, tt.port)
			}
			if !errors.Is(te.Err, tt.err) {
				t.Errorf("Err = %v, want %v", te.Err, tt.err)
			}
			if te.Type != tt.errType {
				t.Errorf("Type = %v, want %v", te.Type, tt.errType)
			}
			if te.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", te.Retryable, tt.retryable)
			}
		})
	}
}

func TestTransportError_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		te   *TransportError
		want []string // Substrings that should be present
	}{
		{
			name: "with port",
			te: &TransportError{
				Err:  errors.New("connection failed"),
				Op:   "write",
				Port: "/dev/ttyUSB0",
			},
			want: []string{"write", "/dev/ttyUSB0", "connection failed"},
		},
		{
			name: "without port",
			te: &TransportError{
				Err: errors.New("device busy"),
				Op:  "open",
			},
			want: []string{"open", "device busy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.te.Error()
			for _, substr := range tt.want {
				if !strings.Contains(got, substr) {
					t.Errorf("Error() = %q, should contain %q", got, substr)
				}
			}
		})
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	t.Parallel()
	originalErr := errors.New("original error")
	te := NewWriteError("/dev/test", originalErr)

	if !errors.Is(te, originalErr) {
		t.Errorf("errors.Is(%v, %v) = false", te, originalErr)
	}
	if !errors.Is(te, ErrTransportWrite) {
		t.Errorf("errors.Is(%v, ErrTransportWrite) = false", te)
	}
}

func TestErrorTypeString(t *testing.T) {
	t.Parallel()
	if ErrorTypeTransient.String() != "transient" {
		t.Errorf("unexpected string %q", ErrorTypeTransient.String())
	}
	if ErrorTypeTimeout.String() != "timeout" {
		t.Errorf("unexpected string %q", ErrorTypeTimeout.String())
	}
	if ErrorTypePermanent.String() != "permanent" {
		t.Errorf("unexpected string %q", ErrorTypePermanent.String())
	}
}
