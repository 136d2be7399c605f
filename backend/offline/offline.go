// SPDX-License-Identifier: EPL-2.0

// Package offline is an engine backend with no device behind it. Periods are
// rendered when the caller pulls them, which makes it the backend for tests
// and for bouncing a mix to a file faster than real time.
//
//	b := &offline.Backend{}
//	eng := engine.New(b)
//	eng.Initialize()
//	eng.StartPlayback()
//
//	period, ok := b.Output().Pull()
package offline

import (
	"errors"
	"sync"

	"github.com/ik5/audmix/engine"
)

var (
	ErrClosed     = errors.New("offline: stream closed")
	ErrNotStarted = errors.New("offline: stream not started")
)

// Backend opens offline streams. The zero value is ready to use.
type Backend struct {
	// OpenErr, when set, makes every open fail with it.
	OpenErr error

	mu  sync.Mutex
	out *Stream
	in  *Stream
}

func (b *Backend) OpenOutput(cfg engine.StreamConfig, r engine.Renderer) (engine.Stream, error) {
	if b.OpenErr != nil {
		return nil, b.OpenErr
	}
	s := &Stream{cfg: cfg, render: r, buf: make([]float32, cfg.Samples())}

	b.mu.Lock()
	b.out = s
	b.mu.Unlock()
	return s, nil
}

func (b *Backend) OpenInput(cfg engine.StreamConfig, c engine.Capturer) (engine.Stream, error) {
	if b.OpenErr != nil {
		return nil, b.OpenErr
	}
	s := &Stream{cfg: cfg, capture: c, buf: make([]float32, cfg.Samples())}

	b.mu.Lock()
	b.in = s
	b.mu.Unlock()
	return s, nil
}

// Output returns the last output stream opened, or nil.
func (b *Backend) Output() *Stream {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out
}

// Input returns the last input stream opened, or nil.
func (b *Backend) Input() *Stream {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.in
}

// Stream is one offline stream. A period runs while holding the stream lock,
// so Stop and Close wait for the period in flight.
type Stream struct {
	cfg     engine.StreamConfig
	render  engine.Renderer
	capture engine.Capturer

	mu      sync.Mutex
	buf     []float32
	started bool
	closed  bool
	periods int
	stopErr error
}

func (s *Stream) Config() engine.StreamConfig { return s.cfg }

func (s *Stream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.started = true
	return nil
}

// Stop ends delivery. While a stop error is set it fails with it and the
// stream keeps running.
func (s *Stream) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopErr != nil {
		return s.stopErr
	}
	s.started = false
	return nil
}

// SetStopErr makes Stop fail with err until it is set back to nil.
func (s *Stream) SetStopErr(err error) {
	s.mu.Lock()
	s.stopErr = err
	s.mu.Unlock()
}

func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	s.closed = true
	return nil
}

func (s *Stream) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Periods returns how many periods the stream delivered.
func (s *Stream) Periods() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.periods
}

// Pull runs one output period and returns the rendered interleaved samples.
// The slice is reused by the next Pull. ok is false when the stream is not
// started; a Stop result from the renderer stops the stream after the period.
func (s *Stream) Pull() (period []float32, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.render == nil {
		return nil, false
	}
	if s.render.OnAudioReady(s, s.buf, s.cfg.FramesPerCallback) != engine.Continue {
		s.started = false
	}
	s.periods++
	return s.buf, true
}

// Push delivers one input period to the capturer. in is truncated or zero
// padded to one period. It returns false when the stream is not started.
func (s *Stream) Push(in []float32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.capture == nil {
		return false
	}
	n := copy(s.buf, in)
	clear(s.buf[n:])
	if s.capture.OnAudioCaptured(s, s.buf, s.cfg.FramesPerCallback) != engine.Continue {
		s.started = false
	}
	s.periods++
	return true
}

// Render pulls enough periods to cover frames frames and passes each one to
// fn, trimmed on the last period. It stops at the first error from fn.
func (s *Stream) Render(frames int, fn func(period []float32) error) error {
	for frames > 0 {
		period, ok := s.Pull()
		if !ok {
			return ErrNotStarted
		}
		n := min(frames, s.cfg.FramesPerCallback)
		if err := fn(period[:n*s.cfg.Channels]); err != nil {
			return err
		}
		frames -= n
	}
	return nil
}
