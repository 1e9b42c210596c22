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

// Package retry provides caller-side retry for display writes. The library
// itself never retries: a half-duplex bus cannot tell a lost frame from one
// that arrived unacknowledged, so repeating a write is the caller's choice.
package retry

import (
	"context"
	"fmt"
	"time"

	mobitec "github.com/ZaparooProject/go-mobitec"
)

// Config configures retry behavior
type Config struct {
	// OnRetry, if set, is called before each repeated attempt
	OnRetry     func(attempt int, err error)
	Description string
	MaxRetries  int
	RetryDelay  time.Duration
}

// WithRetry runs operation, repeating it up to MaxRetries times while it
// fails with an error mobitec.IsRetryable accepts.
func WithRetry[T any](ctx context.Context, config Config, operation func() (T, error)) (T, error) {
	var zero T

	for attempt := 0; ; attempt++ {
		result, err := operation()
		if err == nil {
			return result, nil
		}
		if !mobitec.IsRetryable(err) {
			return zero, err
		}
		if attempt >= config.MaxRetries {
			return zero, exhausted(config, attempt+1, err)
		}

		if config.OnRetry != nil {
			config.OnRetry(attempt+1, err)
		}
		if err := sleep(ctx, config.RetryDelay); err != nil {
			return zero, err
		}
	}
}

// Do is WithRetry for operations without a result
func Do(ctx context.Context, config Config, operation func() error) error {
	_, err := WithRetry(ctx, config, func() (struct{}, error) {
		return struct{}{}, operation()
	})
	return err
}

func exhausted(config Config, attempts int, err error) error {
	if config.Description == "" {
		return fmt.Errorf("giving up after %d attempts: %w", attempts, err)
	}
	return fmt.Errorf("%s: giving up after %d attempts: %w", config.Description, attempts, err)
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
