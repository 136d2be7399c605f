// SPDX-License-Identifier: EPL-2.0

// Package utils converts between float32 samples and integer PCM.
package utils

// FullScale is the divisor that maps a signed integer sample of bitDepth
// bits into [-1, 1). Unknown depths fall back to 16 bit.
func FullScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

// IntToFloat32 normalizes a signed integer sample of bitDepth bits.
func IntToFloat32(v int, bitDepth int) float32 {
	return float32(v) / FullScale(bitDepth)
}

func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Float32ToInt clamps x to [-1, 1] and scales it to a signed integer
// sample of bitDepth bits. The positive peak is one step below full scale.
func Float32ToInt(x float32, bitDepth int) int {
	switch {
	case x != x:
		return 0
	case x > 1:
		x = 1
	case x < -1:
		x = -1
	}

	peak := float64(FullScale(bitDepth)) - 1
	return int(float64(x) * peak)
}
