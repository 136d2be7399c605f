// SPDX-License-Identifier: EPL-2.0

package mix

import "sync/atomic"

const (
	DefaultVolume float32 = 1.0
	DefaultPan    float32 = 0.0
)

// Track is one mono lane of the mix. Its parameters may be written from any
// goroutine while a callback reads them; each field is read independently,
// so a callback can observe a mix of old and new values during an update but
// never a broken track.
type Track struct {
	id   int
	name string

	buf    atomic.Pointer[[]float32]
	volume AtomicFloat32
	pan    AtomicFloat32
	muted  atomic.Bool
	solo   atomic.Bool
}

// NewTrack creates an unmuted, centered track at unity gain. buffer may be
// nil; the mixer skips tracks without material.
func NewTrack(id int, name string, buffer []float32) *Track {
	t := &Track{
		id:   id,
		name: name,
	}
	t.volume.Store(DefaultVolume)
	t.pan.Store(DefaultPan)
	t.SetBuffer(buffer)
	return t
}

func (t *Track) ID() int         { return t.id }
func (t *Track) Name() string    { return t.name }
func (t *Track) Muted() bool     { return t.muted.Load() }
func (t *Track) Solo() bool      { return t.solo.Load() }
func (t *Track) Volume() float32 { return t.volume.Load() }
func (t *Track) Pan() float32    { return t.pan.Load() }

// Buffer returns the track material, or nil when none is attached.
func (t *Track) Buffer() []float32 {
	p := t.buf.Load()
	if p == nil {
		return nil
	}
	return *p
}

// SetBuffer replaces the track material. The previous slice stays valid for
// any callback still reading it.
func (t *Track) SetBuffer(buffer []float32) {
	if buffer == nil {
		t.buf.Store(nil)
		return
	}
	t.buf.Store(&buffer)
}

// SetVolume sets the linear gain. Negative values are stored as 0.
func (t *Track) SetVolume(volume float32) {
	if volume < 0 || volume != volume {
		volume = 0
	}
	t.volume.Store(volume)
}

// SetPan sets the stereo position, clamped to [-1, 1].
func (t *Track) SetPan(pan float32) {
	switch {
	case pan != pan:
		pan = 0
	case pan < -1:
		pan = -1
	case pan > 1:
		pan = 1
	}
	t.pan.Store(pan)
}

func (t *Track) SetMuted(muted bool) { t.muted.Store(muted) }
func (t *Track) SetSolo(solo bool)   { t.solo.Store(solo) }
