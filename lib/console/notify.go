// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package console

// Tracker detects newly arrived tickets across list refreshes by
// diffing successive id-set snapshots.
//
// The first observation primes the snapshot without firing, so the
// initial backlog never alerts. Every later observation fires at most
// once no matter how many tickets arrived together, and the snapshot
// always advances afterward, so a ticket alerts exactly once and a
// ticket that leaves and returns alerts again.
type Tracker struct {
	known  map[int64]struct{}
	primed bool
}

// NewTracker returns an unprimed tracker.
func NewTracker() *Tracker {
	return &Tracker{known: make(map[int64]struct{})}
}

// Observe records the current id set and reports whether an alert
// should fire: true only when the tracker was already primed and at
// least one id is new.
func (tracker *Tracker) Observe(ids []int64) bool {
	fire := false
	if tracker.primed {
		for _, id := range ids {
			if _, seen := tracker.known[id]; !seen {
				fire = true
				break
			}
		}
	}

	tracker.known = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		tracker.known[id] = struct{}{}
	}
	tracker.primed = true
	return fire
}
