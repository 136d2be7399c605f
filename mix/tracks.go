// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Tracks is an ordered track collection shared with the audio callback.
//
// Writers copy the current slice, change the copy and publish it with a
// single atomic store. Readers only ever see a complete slice and must treat
// it as read only. Writers are serialized among themselves; readers never
// wait.
type Tracks struct {
	mu   sync.Mutex
	list atomic.Pointer[[]*Track]
}

func NewTracks() *Tracks {
	ts := &Tracks{}
	empty := []*Track{}
	ts.list.Store(&empty)
	return ts
}

// Snapshot returns the current tracks in insertion order. The returned slice
// is never modified afterwards.
func (ts *Tracks) Snapshot() []*Track {
	p := ts.list.Load()
	if p == nil {
		return nil
	}
	return *p
}

func (ts *Tracks) Len() int {
	return len(ts.Snapshot())
}

// Add appends t. Adding a nil track is a no-op.
func (ts *Tracks) Add(t *Track) {
	if t == nil {
		return
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()

	cur := ts.Snapshot()
	next := make([]*Track, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, t)
	ts.list.Store(&next)
}

// Remove drops the track with the given id and returns it, or nil when no
// such track exists.
func (ts *Tracks) Remove(id int) *Track {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	cur := ts.Snapshot()
	idx := slices.IndexFunc(cur, func(t *Track) bool { return t.id == id })
	if idx < 0 {
		return nil
	}
	removed := cur[idx]

	next := make([]*Track, 0, len(cur)-1)
	next = append(next, cur[:idx]...)
	next = append(next, cur[idx+1:]...)
	ts.list.Store(&next)
	return removed
}

// Get returns the track with the given id.
func (ts *Tracks) Get(id int) (*Track, bool) {
	for _, t := range ts.Snapshot() {
		if t.id == id {
			return t, true
		}
	}
	return nil, false
}

// Clear removes every track.
func (ts *Tracks) Clear() {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	empty := []*Track{}
	ts.list.Store(&empty)
}
