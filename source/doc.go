// SPDX-License-Identifier: EPL-2.0

// Package source turns encoded audio into track material for the mixer.
//
// Track material is a mono []float32 buffer at the engine's sample rate.
// The mixer never decodes or resamples, so all of that happens here, on the
// control side, before a buffer is handed to the engine:
//
//	reg := source.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//
//	src, err := reg.Open("drums.wav")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	buf, err := source.ReadAll(src, cfg.SampleRate)
//	if err != nil {
//	    return err
//	}
//	id, err := eng.AddTrack("drums", buf)
//
// # Source Interface
//
// Source is the streaming interface every decoder returns:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples fills dst with interleaved float32 samples in [-1, 1] and
// returns io.EOF once the stream is finished.
//
// # Channel Mixing
//
// MonoMixer averages every frame of a multi-channel source into one sample.
// ReadAll applies it, so stereo files become mono tracks that the engine
// places in the stereo field with the track pan.
//
// # Sample Rates
//
// There is no sample-rate conversion. ReadAll fails with
// ErrSampleRateMismatch when the source rate differs from the engine rate.
package source
