// SPDX-License-Identifier: EPL-2.0

// Package engine owns the stream lifecycle around the realtime mixer.
//
// An Engine is an explicit handle: the caller creates it with a Backend,
// initializes it, starts and stops playback, and closes it. There is no
// package level state.
//
//	eng := engine.New(portaudio.Backend{}, engine.WithLogger(log))
//	if err := eng.Initialize(); err != nil {
//	    return err
//	}
//	defer eng.Close()
//
//	id, _ := eng.AddTrack("vox", material)
//	eng.SetTrackPan(id, -0.3)
//	eng.StartPlayback()
//
// # States
//
//	Uninitialized -> Initialized -> Playing <-> Stopped -> Closed
//
// Initialize is a no-op once the output stream is open and fails with
// ErrAlreadyRunning while playing. Start and stop on an engine whose stream
// never opened return ErrInvalidState and leave IsPlaying false.
//
// # Backends
//
// A Backend opens streams and calls the Engine back once per period through
// the Renderer contract. Backends that can capture also implement
// InputBackend. See the backend/ packages for the offline, PortAudio and oto
// implementations.
//
// # Threads
//
// Control methods may be called from any goroutine. They serialize among
// themselves on a mutex that the audio callback never touches. The callback
// reads track parameters through atomics and the track list through a
// copy-on-write snapshot.
package engine
