// SPDX-License-Identifier: EPL-2.0

// Package audmix ties the realtime mixing engine to files.
//
// The engine package mixes mono float32 buffers into a stereo stream and
// knows nothing about files. This package supplies the file side:
//
//   - Session is a YAML description of an engine configuration, a master
//     volume and a list of tracks with their mix settings.
//   - Session.Apply decodes every track file and adds it to an engine.
//   - Bounce renders a session through the offline backend into a WAV file,
//     faster than real time.
//   - NewRegistry returns a decoder registry with every supported format.
//
// # Session Files
//
//	engine:
//	  sample_rate: 48000
//	  frames_per_callback: 256
//	master_volume: 0.8
//	tracks:
//	  - name: drums
//	    path: stems/drums.wav
//	    pan: -0.2
//	  - name: bass
//	    path: stems/bass.aiff
//	    volume: 0.9
//	  - name: vox
//	    path: stems/vox.mp3
//	    solo: true
//
// Relative track paths resolve against the directory of the session file.
// Omitted engine fields take the engine defaults; an omitted volume is 1.
// Streams run in low latency mode unless the engine sets high_latency.
//
// # Supported Formats
//
//   - WAV (integer PCM 16/24/32 bit) via formats/wav
//   - AIFF (integer PCM 8/16/24/32 bit) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// Track files must already run at the session sample rate; there is no
// sample-rate conversion.
package audmix
