// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake returns a FakeClock initialized to the given time. Time stands
// still until Advance is called; pending waiters (After channels,
// tickers) fire when the clock moves past their deadline.
//
// FakeClock is safe for concurrent use.
func Fake(initial time.Time) *FakeClock {
	fake := &FakeClock{current: initial}
	fake.waitersChanged = sync.NewCond(&fake.mu)
	return fake
}

// FakeClock is a deterministic Clock for tests. Advance moves time
// forward and fires every waiter whose deadline has passed, in
// deadline order.
type FakeClock struct {
	mu             sync.Mutex
	current        time.Time
	waiters        []*fakeWaiter
	waitersChanged *sync.Cond
}

// fakeWaiter is one pending After channel or ticker subscription.
type fakeWaiter struct {
	deadline time.Time
	period   time.Duration // zero for one-shot waiters
	channel  chan time.Time
	stopped  bool
}

// Now returns the fake's current time.
func (fake *FakeClock) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.current
}

// After returns a channel that fires when the clock advances past the
// deadline. A non-positive duration fires on the next Advance call of
// any size (including zero).
func (fake *FakeClock) After(d time.Duration) <-chan time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	waiter := &fakeWaiter{
		deadline: fake.current.Add(d),
		channel:  make(chan time.Time, 1),
	}
	fake.waiters = append(fake.waiters, waiter)
	fake.waitersChanged.Broadcast()
	return waiter.channel
}

// NewTicker returns a ticker that fires each time the clock advances
// past the next multiple of d. Panics if d <= 0.
func (fake *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("non-positive interval for NewTicker")
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	waiter := &fakeWaiter{
		deadline: fake.current.Add(d),
		period:   d,
		channel:  make(chan time.Time, 1),
	}
	fake.waiters = append(fake.waiters, waiter)
	fake.waitersChanged.Broadcast()
	return &Ticker{
		C: waiter.channel,
		stopFunc: func() {
			fake.mu.Lock()
			defer fake.mu.Unlock()
			waiter.stopped = true
		},
	}
}

// Advance moves the clock forward by d and fires, in deadline order,
// every waiter whose deadline is now due. Ticker waiters reschedule
// themselves; one-shot waiters are removed.
func (fake *FakeClock) Advance(d time.Duration) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.current = fake.current.Add(d)

	for {
		due := fake.dueWaitersLocked()
		if len(due) == 0 {
			return
		}
		for _, waiter := range due {
			// Capacity-1 channel: drop the tick if the consumer has
			// not drained the previous one, matching time.Ticker.
			select {
			case waiter.channel <- fake.current:
			default:
			}
			if waiter.period > 0 {
				waiter.deadline = waiter.deadline.Add(waiter.period)
			} else {
				waiter.stopped = true
			}
		}
		fake.removeStoppedLocked()
	}
}

// WaitForTimers blocks until at least count waiters are registered.
// Use this to synchronize with a goroutine that registers its timer
// after being started, before calling Advance.
func (fake *FakeClock) WaitForTimers(count int) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	for fake.activeWaitersLocked() < count {
		fake.waitersChanged.Wait()
	}
}

func (fake *FakeClock) activeWaitersLocked() int {
	active := 0
	for _, waiter := range fake.waiters {
		if !waiter.stopped {
			active++
		}
	}
	return active
}

// dueWaitersLocked returns the waiters whose deadline has passed,
// sorted by deadline, or nil when none are due.
func (fake *FakeClock) dueWaitersLocked() []*fakeWaiter {
	var due []*fakeWaiter
	for _, waiter := range fake.waiters {
		if !waiter.stopped && !waiter.deadline.After(fake.current) {
			due = append(due, waiter)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].deadline.Before(due[j].deadline)
	})
	return due
}

func (fake *FakeClock) removeStoppedLocked() {
	kept := fake.waiters[:0]
	for _, waiter := range fake.waiters {
		if !waiter.stopped {
			kept = append(kept, waiter)
		}
	}
	fake.waiters = kept
}
