// SPDX-License-Identifier: EPL-2.0

// Package oto is an output-only engine backend on ebitengine/oto.
//
// oto pulls bytes from an io.Reader on its own goroutine. The stream adapts
// that pull model to the engine's period callback: every time the reader
// runs dry it asks the renderer for exactly one period of interleaved
// float32 samples and hands them to oto as little-endian bytes.
//
// oto allows a single context per process, so the context is created on the
// first OpenOutput and every later stream must use the same sample rate and
// channel count.
package oto

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/audmix/engine"
)

var (
	ErrContextMismatch = errors.New("oto: context already opened with a different format")
	ErrClosed          = errors.New("oto: stream closed")
)

var (
	ctxMu       sync.Mutex
	ctx         *oto.Context
	ctxRate     int
	ctxChannels int
)

func sharedContext(cfg engine.StreamConfig) (*oto.Context, error) {
	ctxMu.Lock()
	defer ctxMu.Unlock()

	if ctx != nil {
		if ctxRate != cfg.SampleRate || ctxChannels != cfg.Channels {
			return nil, fmt.Errorf("%w: have %d Hz x%d, want %d Hz x%d",
				ErrContextMismatch, ctxRate, ctxChannels, cfg.SampleRate, cfg.Channels)
		}
		return ctx, nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       oto.FormatFloat32LE,
	}
	if cfg.LowLatency {
		op.BufferSize = periodDuration(cfg)
	}

	c, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("oto: new context: %w", err)
	}
	<-ready

	ctx, ctxRate, ctxChannels = c, cfg.SampleRate, cfg.Channels
	return ctx, nil
}

func periodDuration(cfg engine.StreamConfig) time.Duration {
	return time.Duration(cfg.FramesPerCallback) * time.Second / time.Duration(cfg.SampleRate)
}

// Backend opens oto players. It has no input side.
type Backend struct{}

func (Backend) OpenOutput(cfg engine.StreamConfig, r engine.Renderer) (engine.Stream, error) {
	c, err := sharedContext(cfg)
	if err != nil {
		return nil, err
	}

	s := &stream{
		render:   r,
		channels: cfg.Channels,
		period:   make([]float32, cfg.Samples()),
	}
	s.pos = len(s.period)
	s.player = c.NewPlayer(s)
	if cfg.LowLatency {
		s.player.SetBufferSize(2 * len(s.period) * 4)
	}
	return s, nil
}

type stream struct {
	render   engine.Renderer
	channels int
	player   *oto.Player

	// mu is held while oto is inside Read, so Stop can wait it out.
	mu     sync.Mutex
	period []float32
	pos    int

	halted atomic.Bool
	closed atomic.Bool
}

// Read serves oto from the current period and renders the next one when
// the current one is used up. It always fills whole samples.
func (s *stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for len(p)-n >= 4 {
		if s.pos == len(s.period) {
			s.next()
		}
		avail := (len(s.period) - s.pos) * 4
		c := copy(p[n:], unsafe.Slice((*byte)(unsafe.Pointer(&s.period[s.pos])), avail))
		c -= c % 4
		n += c
		s.pos += c / 4
	}
	return n, nil
}

func (s *stream) next() {
	s.pos = 0
	if s.halted.Load() {
		clear(s.period)
		return
	}
	if s.render.OnAudioReady(s, s.period, len(s.period)/s.channels) != engine.Continue {
		s.halted.Store(true)
	}
}

func (s *stream) Start() error {
	if s.closed.Load() {
		return ErrClosed
	}
	s.halted.Store(false)
	s.player.Play()
	return nil
}

// Stop pauses the player and returns once no Read is in progress.
func (s *stream) Stop() error {
	if s.closed.Load() {
		return nil
	}
	s.player.Pause()
	s.mu.Lock()
	s.halted.Store(true)
	s.mu.Unlock()
	return nil
}

func (s *stream) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.player.Pause()
	s.mu.Lock()
	s.halted.Store(true)
	s.mu.Unlock()
	if err := s.player.Close(); err != nil {
		return fmt.Errorf("oto: close: %w", err)
	}
	return nil
}
