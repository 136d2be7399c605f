// SPDX-License-Identifier: EPL-2.0

package mix

import "math"

// ceiling is the largest float32 below 1.
var ceiling = math.Nextafter32(1, 0)

// SoftClip returns tanh(x * gain), kept strictly inside (-1, 1).
func SoftClip(x, gain float32) float32 {
	y := float32(math.Tanh(float64(x * gain)))
	switch {
	case y >= 1:
		return ceiling
	case y <= -1:
		return -ceiling
	}
	return y
}

// ApplyMaster applies the master gain and the tanh limiter to every sample of
// buf in place.
func ApplyMaster(buf []float32, gain float32) {
	for i, x := range buf {
		buf[i] = SoftClip(x, gain)
	}
}
