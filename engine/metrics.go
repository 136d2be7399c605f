// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"sync/atomic"
	"time"

	"github.com/ik5/audmix/mix"
)

// Metrics is a point in time view of the engine's callback health.
type Metrics struct {
	// Callbacks is the number of output periods rendered.
	Callbacks uint64
	// Overruns counts periods that took longer to render than they last.
	Overruns uint64
	// Load is the last period's render time as a fraction of its duration.
	Load float64
	// TrackFaults counts track contributions skipped for lack of material.
	TrackFaults uint64
	// DroppedInput counts captured samples that did not fit the take.
	DroppedInput uint64
	// ActiveTracks is the current number of tracks.
	ActiveTracks int
	// Position is the transport position in frames.
	Position int64
}

type callbackStats struct {
	callbacks atomic.Uint64
	overruns  atomic.Uint64
	load      mix.AtomicFloat32
}

func (s *callbackStats) observe(elapsed, period time.Duration) {
	s.callbacks.Add(1)
	if period <= 0 {
		return
	}
	if elapsed > period {
		s.overruns.Add(1)
	}
	s.load.Store(float32(elapsed) / float32(period))
}
