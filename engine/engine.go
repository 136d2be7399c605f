// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/ik5/audmix/mix"
)

// State is the lifecycle state of an Engine.
type State int32

const (
	Uninitialized State = iota
	Initialized
	Playing
	Stopped
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Playing:
		return "playing"
	case Stopped:
		return "stopped"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Engine mixes its tracks into the output stream opened by its Backend.
//
// It is safe to call methods on Engine from multiple goroutines.
type Engine struct {
	backend Backend
	cfg     Config
	log     zerolog.Logger

	tracks *mix.Tracks
	mixer  *mix.Mixer
	stats  callbackStats

	take      take
	playing   atomic.Bool
	recording atomic.Bool
	state     atomic.Int32

	// mu serializes control calls. The audio callbacks never take it.
	mu     sync.Mutex
	output Stream
	input  Stream
	nextID int
}

// New creates an uninitialized Engine on backend.
func New(backend Backend, opts ...Option) *Engine {
	tracks := mix.NewTracks()
	e := &Engine{
		backend: backend,
		cfg:     DefaultConfig(),
		log:     zerolog.Nop(),
		tracks:  tracks,
		mixer:   mix.NewMixer(tracks),
	}
	for _, opt := range opts {
		opt.apply(e)
	}
	return e
}

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) State() State { return State(e.state.Load()) }

func (e *Engine) IsPlaying() bool { return e.playing.Load() }

func (e *Engine) IsRecording() bool { return e.recording.Load() }

func (e *Engine) setState(s State) {
	e.state.Store(int32(s))
}

// Initialize opens the output stream, and the input stream when the config
// asks for input and the backend can capture. Calling it again once the
// streams are open does nothing. It fails with ErrAlreadyRunning while
// playing and with an error wrapping ErrStreamOpen when the backend cannot
// open the stream; the engine then stays uninitialized.
func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.State() {
	case Closed:
		return ErrClosed
	case Playing:
		return ErrAlreadyRunning
	case Initialized, Stopped:
		return nil
	}

	if err := e.cfg.Validate(); err != nil {
		return err
	}
	if e.backend == nil {
		return fmt.Errorf("%w: no backend", ErrStreamOpen)
	}

	out, err := e.backend.OpenOutput(e.cfg.outputStream(), e)
	if err != nil {
		e.log.Error().Err(err).Msg("open output stream")
		return fmt.Errorf("%w: output: %w", ErrStreamOpen, err)
	}

	var in Stream
	if e.cfg.InputChannels > 0 {
		ib, ok := e.backend.(InputBackend)
		if ok {
			in, err = ib.OpenInput(e.cfg.inputStream(), e)
			if err != nil {
				e.log.Error().Err(err).Msg("open input stream")
				if cerr := out.Close(); cerr != nil {
					e.log.Warn().Err(cerr).Msg("close output stream")
				}
				return fmt.Errorf("%w: input: %w", ErrStreamOpen, err)
			}
		} else {
			e.log.Warn().Msg("backend cannot capture, recording disabled")
		}
	}

	if in != nil {
		e.take.allocate(e.cfg.recordCapacity())
	}
	e.output = out
	e.input = in
	e.setState(Initialized)

	e.log.Info().
		Int("sample_rate", e.cfg.SampleRate).
		Int("frames_per_callback", e.cfg.FramesPerCallback).
		Bool("low_latency", !e.cfg.HighLatency).
		Bool("input", in != nil).
		Msg("engine initialized")
	return nil
}

// StartPlayback starts the output stream. It does nothing while playing.
func (e *Engine) StartPlayback() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.State() {
	case Closed:
		return ErrClosed
	case Uninitialized:
		return fmt.Errorf("%w: start before initialize", ErrInvalidState)
	case Playing:
		return nil
	}

	e.playing.Store(true)
	if err := e.output.Start(); err != nil {
		e.playing.Store(false)
		e.log.Error().Err(err).Msg("start output stream")
		return fmt.Errorf("engine: start output: %w", err)
	}
	e.setState(Playing)
	e.log.Info().Int64("position", e.mixer.Position()).Msg("playback started")
	return nil
}

// StopPlayback stops the output stream. Once it returns no output callback
// is running. It does nothing when not playing.
func (e *Engine) StopPlayback() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.State() {
	case Closed:
		return ErrClosed
	case Uninitialized:
		return fmt.Errorf("%w: stop before initialize", ErrInvalidState)
	case Initialized, Stopped:
		return nil
	}

	e.playing.Store(false)
	if err := e.output.Stop(); err != nil {
		e.playing.Store(true)
		e.log.Error().Err(err).Msg("stop output stream")
		return fmt.Errorf("engine: stop output: %w", err)
	}
	e.setState(Stopped)
	e.log.Info().Int64("position", e.mixer.Position()).Msg("playback stopped")
	return nil
}

// StartRecording clears the take and starts capturing input. It fails with
// ErrNoInput when no input stream is open.
func (e *Engine) StartRecording() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.State() {
	case Closed:
		return ErrClosed
	case Uninitialized:
		return fmt.Errorf("%w: record before initialize", ErrInvalidState)
	}
	if e.input == nil {
		return ErrNoInput
	}
	if e.recording.Load() {
		return nil
	}

	e.take.reset()
	e.recording.Store(true)
	if err := e.input.Start(); err != nil {
		e.recording.Store(false)
		e.log.Error().Err(err).Msg("start input stream")
		return fmt.Errorf("engine: start input: %w", err)
	}
	e.log.Info().Msg("recording started")
	return nil
}

// StopRecording stops capturing and returns the interleaved samples of the
// take. When the input stream fails to stop the engine keeps recording and
// StopRecording can be called again.
func (e *Engine) StopRecording() ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.State() == Closed {
		return nil, ErrClosed
	}
	if !e.recording.Load() {
		return nil, fmt.Errorf("%w: not recording", ErrInvalidState)
	}

	if err := e.input.Stop(); err != nil {
		e.log.Error().Err(err).Msg("stop input stream")
		return nil, fmt.Errorf("engine: stop input: %w", err)
	}
	e.recording.Store(false)

	samples := e.take.samples()
	e.log.Info().
		Int("samples", len(samples)).
		Uint64("dropped", e.take.dropped.Load()).
		Msg("recording stopped")
	return samples, nil
}

// Close stops and releases the streams. Close on a closed engine does
// nothing.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.State() == Closed {
		return nil
	}

	e.playing.Store(false)
	e.recording.Store(false)

	var errs []error
	for _, s := range []Stream{e.output, e.input} {
		if s == nil {
			continue
		}
		// Stop first so the backend drains the in-flight callback.
		if err := s.Stop(); err != nil {
			errs = append(errs, err)
		}
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.output = nil
	e.input = nil
	e.setState(Closed)

	err := errors.Join(errs...)
	if err != nil {
		e.log.Warn().Err(err).Msg("engine closed with errors")
		return fmt.Errorf("engine: close: %w", err)
	}
	e.log.Info().Msg("engine closed")
	return nil
}

// OnAudioReady renders one output period. It is called by the backend on
// its audio goroutine.
func (e *Engine) OnAudioReady(_ Stream, out []float32, frames int) Result {
	start := time.Now()
	e.mixer.Process(out, frames)
	period := time.Duration(frames) * time.Second / time.Duration(e.cfg.SampleRate)
	e.stats.observe(time.Since(start), period)
	return Continue
}

// OnAudioCaptured appends one input period to the take while recording.
func (e *Engine) OnAudioCaptured(_ Stream, in []float32, frames int) Result {
	if !e.recording.Load() {
		return Continue
	}
	n := min(len(in), frames*e.cfg.InputChannels)
	e.take.write(in[:max(n, 0)])
	return Continue
}

// Metrics returns the current callback counters.
func (e *Engine) Metrics() Metrics {
	return Metrics{
		Callbacks:    e.stats.callbacks.Load(),
		Overruns:     e.stats.overruns.Load(),
		Load:         float64(e.stats.load.Load()),
		TrackFaults:  e.mixer.Faults(),
		DroppedInput: e.take.dropped.Load(),
		ActiveTracks: e.tracks.Len(),
		Position:     e.mixer.Position(),
	}
}
