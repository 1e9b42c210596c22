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
)

// Validation errors. These are returned before any bus access.
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrOutOfRange           = errors.New("value out of range")
	ErrUnsupportedCharacter = errors.New("character not in font")
)

// Transport errors
var (
	ErrTransportOpen   = errors.New("failed to open transport")
	ErrTransportWrite  = errors.New("transport write failed")
	ErrTransportClosed = errors.New("transport closed")
)

// ErrorType classifies transport failures
type ErrorType int

const (
	// ErrorTypePermanent errors will not succeed on a second attempt
	ErrorTypePermanent ErrorType = iota
	// ErrorTypeTransient errors may succeed if the caller tries again
	ErrorTypeTransient
	// ErrorTypeTimeout errors are transient errors caused by a deadline
	ErrorTypeTimeout
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeTransient:
		return "transient"
	case ErrorTypeTimeout:
		return "timeout"
	default:
		return "permanent"
	}
}

// TransportError wraps an error from the underlying channel with the
// operation and port it happened on.
type TransportError struct {
	Err       error
	Op        string
	Port      string
	Type      ErrorType
	Retryable bool
}

func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new TransportError. Transient and timeout
// errors are marked retryable.
func NewTransportError(op, port string, err error, errType ErrorType) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       err,
		Type:      errType,
		Retryable: errType != ErrorTypePermanent,
	}
}

// NewWriteError creates an error for a failed channel write. It is transient
// unless err already carries a TransportError, whose type is kept.
func NewWriteError(port string, err error) *TransportError {
	errType := ErrorTypeTransient
	var te *TransportError
	if errors.As(err, &te) {
		errType = te.Type
	}
	return NewTransportError("write", port, fmt.Errorf("%w: %w", ErrTransportWrite, err), errType)
}

// NewClosedError creates a permanent error for use of a closed transport
func NewClosedError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrTransportClosed, ErrorTypePermanent)
}

// IsRetryable reports whether a caller may reasonably repeat the operation
// that returned err. The core never retries on its own.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable
	}
	return false
}

// GetErrorType returns the classification of err. Errors that are not
// transport errors are permanent.
func GetErrorType(err error) ErrorType {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Type
	}
	return ErrorTypePermanent
}
