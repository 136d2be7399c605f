// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"math"
	"sync/atomic"
)

// AtomicFloat32 is a float32 that can be shared between the control and the
// audio goroutines. The zero value holds 0.
type AtomicFloat32 struct {
	bits atomic.Uint32
}

// NewAtomicFloat32 returns an AtomicFloat32 holding val.
func NewAtomicFloat32(val float32) *AtomicFloat32 {
	af := &AtomicFloat32{}
	af.Store(val)
	return af
}

func (af *AtomicFloat32) Load() float32 {
	return math.Float32frombits(af.bits.Load())
}

func (af *AtomicFloat32) Store(val float32) {
	af.bits.Store(math.Float32bits(val))
}
