// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes integer PCM WAV files through go-audio.
//
// Decoder returns a source.Source with samples normalized to [-1, 1].
// 16, 24 and 32 bit PCM are accepted; float and compressed formats are
// rejected with ErrOnlyPCMSupported.
//
// Encoder is the other direction. It takes interleaved float32 frames, the
// same layout the engine renders and records, and writes them as integer PCM:
//
//	f, _ := os.Create("bounce.wav")
//	enc, err := wav.NewEncoder(f, 44100, 2, 16)
//	if err != nil {
//	    return err
//	}
//	for each period {
//	    enc.Write(period)
//	}
//	enc.Close()
//
// WriteFile does the same for a buffer already in memory.
package wav
