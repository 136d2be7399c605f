// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"

	"github.com/ik5/audmix/mix"
)

// AddTrack appends a track holding buffer (mono, at the engine sample rate)
// and returns its id. The track is audible from the next period on.
func (e *Engine) AddTrack(name string, buffer []float32) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.State() == Closed {
		return 0, ErrClosed
	}

	e.nextID++
	id := e.nextID
	e.tracks.Add(mix.NewTrack(id, name, buffer))

	e.log.Debug().Int("track", id).Str("name", name).Int("frames", len(buffer)).Msg("track added")
	return id, nil
}

// RemoveTrack drops a track. A callback already running may still mix it
// once.
func (e *Engine) RemoveTrack(id int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tracks.Remove(id) == nil {
		return fmt.Errorf("%w: %d", ErrUnknownTrack, id)
	}
	e.log.Debug().Int("track", id).Msg("track removed")
	return nil
}

// ClearTracks removes every track.
func (e *Engine) ClearTracks() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tracks.Clear()
	e.log.Debug().Msg("tracks cleared")
}

// Track returns the handle of a track for direct parameter access.
func (e *Engine) Track(id int) (*mix.Track, bool) {
	return e.tracks.Get(id)
}

// Tracks returns the current tracks in mixing order.
func (e *Engine) Tracks() []*mix.Track {
	return e.tracks.Snapshot()
}

func (e *Engine) track(id int) (*mix.Track, error) {
	t, ok := e.tracks.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTrack, id)
	}
	return t, nil
}

func (e *Engine) SetTrackBuffer(id int, buffer []float32) error {
	t, err := e.track(id)
	if err != nil {
		return err
	}
	t.SetBuffer(buffer)
	return nil
}

func (e *Engine) SetTrackVolume(id int, volume float32) error {
	t, err := e.track(id)
	if err != nil {
		return err
	}
	t.SetVolume(volume)
	return nil
}

func (e *Engine) SetTrackPan(id int, pan float32) error {
	t, err := e.track(id)
	if err != nil {
		return err
	}
	t.SetPan(pan)
	return nil
}

func (e *Engine) SetTrackMute(id int, muted bool) error {
	t, err := e.track(id)
	if err != nil {
		return err
	}
	t.SetMuted(muted)
	return nil
}

func (e *Engine) SetTrackSolo(id int, solo bool) error {
	t, err := e.track(id)
	if err != nil {
		return err
	}
	t.SetSolo(solo)
	return nil
}

func (e *Engine) MasterVolume() float32 { return e.mixer.MasterVolume() }

func (e *Engine) SetMasterVolume(volume float32) { e.mixer.SetMasterVolume(volume) }

// Position returns the transport position in frames.
func (e *Engine) Position() int64 { return e.mixer.Position() }

// Seek moves the transport to frame.
func (e *Engine) Seek(frame int64) { e.mixer.Seek(frame) }
