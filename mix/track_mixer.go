// SPDX-License-Identifier: EPL-2.0

package mix

// centerGain is the per-channel gain of a centered track (about -3dB).
const centerGain float32 = 0.707

// PanGains returns the left and right channel gains for pan in [-1, 1].
func PanGains(pan float32) (left, right float32) {
	left = (1 - max(0, pan)) * centerGain
	right = (1 + min(0, pan)) * centerGain
	return left, right
}

// MixTrack accumulates frames frames of t into the interleaved stereo buffer
// out, reading the track material from frame offset on. Material that ends
// before offset+frames leaves the rest of the period silent for this track.
//
// It returns false when the track has no material at all; nothing is mixed
// in that case.
func MixTrack(t *Track, out []float32, frames int, offset int64) bool {
	if t == nil {
		return false
	}
	buf := t.Buffer()
	if buf == nil {
		return false
	}

	frames = min(frames, len(out)/2)
	if offset < 0 || offset >= int64(len(buf)) || frames <= 0 {
		return true
	}
	src := buf[offset:]
	n := min(frames, len(src))

	volume := t.volume.Load()
	left, right := PanGains(t.pan.Load())

	out = out[:2*n]
	for i := range n {
		s := src[i] * volume
		out[2*i] += s * left
		out[2*i+1] += s * right
	}
	return true
}
