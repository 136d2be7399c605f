// SPDX-License-Identifier: EPL-2.0

// Package mix contains the realtime half of the mixing engine.
//
// Everything in this package is meant to be called from an audio callback:
// no function allocates, blocks or takes a lock that a control goroutine can
// hold. Control goroutines mutate tracks through atomics and publish
// structural changes to the track collection by swapping an immutable
// snapshot.
//
// # Signal Path
//
// One callback period runs through four steps:
//
//	clear   -> zero the interleaved stereo output buffer
//	resolve -> count soloed tracks (ResolveSolo)
//	mix     -> accumulate every audible track (MixTrack)
//	master  -> tanh(x * master) over the whole buffer (ApplyMaster)
//
// Mixer.Process runs the full path:
//
//	tracks := mix.NewTracks()
//	tracks.Add(mix.NewTrack(1, "drums", drums))
//	mixer := mix.NewMixer(tracks)
//
//	out := make([]float32, 256*2)
//	mixer.Process(out, 256)
//
// # Pan Law
//
// Panning uses a constant pair approximation rather than a sine law:
//
//	left  = (1 - max(0, pan)) * 0.707
//	right = (1 + min(0, pan)) * 0.707
//
// A centered track sits about 3dB down on both sides; a hard panned track
// keeps 0.707 on one side and nothing on the other.
//
// # Sample Format
//
// Track material is mono float32 at the engine rate. Output is interleaved
// stereo float32 (left, right, left, right, ...) strictly inside (-1, 1).
package mix
