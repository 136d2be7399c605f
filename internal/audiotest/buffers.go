// SPDX-License-Identifier: EPL-2.0

package audiotest

// Constant returns a mono buffer of n copies of value.
func Constant(n int, value float32) []float32 {
	buf := make([]float32, n)
	for i := range buf {
		buf[i] = value
	}
	return buf
}

// Ramp returns a mono buffer where sample i is i*step.
func Ramp(n int, step float32) []float32 {
	buf := make([]float32, n)
	for i := range buf {
		buf[i] = float32(i) * step
	}
	return buf
}

// Sine returns n samples of a sine at frequency Hz and the given amplitude.
func Sine(sampleRate, n int, frequency float64, amplitude float32) []float32 {
	buf := make([]float32, n)
	for i := range buf {
		buf[i] = sine(i, sampleRate, frequency) * amplitude
	}
	return buf
}
