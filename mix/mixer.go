// SPDX-License-Identifier: EPL-2.0

package mix

import "sync/atomic"

// Result tells the device whether it should keep delivering periods.
type Result int

const (
	// Continue asks for the next period.
	Continue Result = iota
	// Stop asks the device to stop calling back.
	Stop
)

func (r Result) String() string {
	switch r {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	}
	return "unknown"
}

// Mixer renders one callback period of a track collection into an
// interleaved stereo buffer.
//
// It is safe to call the setters from any goroutine while Process runs on
// the audio goroutine. Process itself must not be called concurrently with
// another Process on the same Mixer.
type Mixer struct {
	tracks *Tracks

	master   AtomicFloat32
	position atomic.Int64
	faults   atomic.Uint64
}

// NewMixer returns a Mixer over tracks with unity master gain. A nil tracks
// gets an empty collection.
func NewMixer(tracks *Tracks) *Mixer {
	if tracks == nil {
		tracks = NewTracks()
	}
	m := &Mixer{tracks: tracks}
	m.master.Store(1)
	return m
}

func (m *Mixer) Tracks() *Tracks { return m.tracks }

func (m *Mixer) MasterVolume() float32 { return m.master.Load() }

// SetMasterVolume sets the master gain applied ahead of the limiter.
// Negative values are stored as 0.
func (m *Mixer) SetMasterVolume(volume float32) {
	if volume < 0 || volume != volume {
		volume = 0
	}
	m.master.Store(volume)
}

// Position returns the transport position in frames.
func (m *Mixer) Position() int64 { return m.position.Load() }

// Seek moves the transport to frame. Negative frames are stored as 0.
func (m *Mixer) Seek(frame int64) {
	m.position.Store(max(frame, 0))
}

// Faults returns how many track contributions were skipped because the
// track had no material.
func (m *Mixer) Faults() uint64 { return m.faults.Load() }

// Process renders frames frames into out and advances the transport. out
// holds interleaved stereo samples; if it is shorter than 2*frames only the
// frames that fit are rendered.
func (m *Mixer) Process(out []float32, frames int) Result {
	frames = max(min(frames, len(out)/2), 0)
	buf := out[:2*frames]
	clear(buf)

	tracks := m.tracks.Snapshot()
	solo := ResolveSolo(tracks)
	offset := m.position.Load()

	for _, t := range tracks {
		if !Audible(t, solo) {
			continue
		}
		if !MixTrack(t, buf, frames, offset) {
			m.faults.Add(1)
		}
	}

	ApplyMaster(buf, m.master.Load())
	m.position.Add(int64(frames))
	return Continue
}
