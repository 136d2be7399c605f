// SPDX-License-Identifier: EPL-2.0

package source

import (
	"errors"
	"fmt"
	"io"
)

const defaultChunk = 4096

// ReadAll drains src into one mono buffer ready to become track material.
// Multi-channel sources are averaged down to mono. The source must already
// run at sampleRate. ReadAll does not close src.
func ReadAll(src Source, sampleRate int) ([]float32, error) {
	if src.SampleRate() != sampleRate {
		return nil, fmt.Errorf("%w: source %d Hz, engine %d Hz",
			ErrSampleRateMismatch, src.SampleRate(), sampleRate)
	}
	if src.Channels() <= 0 {
		return nil, ErrNoChannels
	}

	mono := Source(src)
	if src.Channels() > 1 {
		mono = NewMonoMixer(src)
	}

	chunk := src.BufSize()
	if chunk <= 0 {
		chunk = defaultChunk
	}

	out := make([]float32, 0, chunk)
	buf := make([]float32, chunk)
	for {
		n, err := mono.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read samples: %w", err)
		}
		if n == 0 {
			// A source that makes no progress without EOF is treated as done.
			return out, nil
		}
	}
}
