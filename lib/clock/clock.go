// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source so components that
// stamp or schedule anything (optimistic update timestamps, poll
// intervals, debounce delays) can be tested deterministically.
//
// Production code accepts a Clock and is wired with Real(); tests use
// Fake(initial), which stands still until Advance is called.
package clock

import "time"

// Clock abstracts the time operations the console uses. Production
// functions take a Clock parameter (or live on a struct with a Clock
// field) instead of calling the time package directly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time once d
	// has elapsed. Equivalent to time.After.
	After(d time.Duration) <-chan time.Time

	// NewTicker returns a Ticker delivering ticks every d. Panics if
	// d <= 0, matching time.NewTicker.
	NewTicker(d time.Duration) *Ticker
}

// Ticker wraps a periodic timer. Read ticks from C; call Stop to
// release it. C has capacity 1 — slow consumers drop ticks rather
// than queue them, matching time.Ticker.
type Ticker struct {
	C <-chan time.Time

	stopFunc func()
}

// Stop turns off the ticker. No more ticks arrive on C after Stop
// returns. Stop does not close C.
func (ticker *Ticker) Stop() { ticker.stopFunc() }
