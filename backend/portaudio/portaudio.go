// SPDX-License-Identifier: EPL-2.0

// Package portaudio is an engine backend on the default PortAudio devices.
//
// PortAudio calls the engine from its own realtime thread with an
// interleaved float32 buffer of exactly one period. Stop returns only after
// that thread left the callback, which is what the engine relies on before
// closing a stream.
//
// Building this package needs the PortAudio headers and library
// (portaudio-2.0 through pkg-config).
package portaudio

import (
	"errors"
	"fmt"
	"sync/atomic"

	pa "github.com/gordonklaus/portaudio"

	"github.com/ik5/audmix/engine"
)

var ErrNoDevice = errors.New("portaudio: no default device")

// Backend opens streams on the default input and output devices.
type Backend struct{}

// Device describes one PortAudio device.
type Device struct {
	Name              string
	HostAPI           string
	MaxInputChannels  int
	MaxOutputChannels int
	DefaultSampleRate float64
	LowOutputLatency  float64
}

// Devices lists the devices PortAudio can see.
func Devices() ([]Device, error) {
	if err := pa.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio: initialize: %w", err)
	}
	defer pa.Terminate()

	infos, err := pa.Devices()
	if err != nil {
		return nil, fmt.Errorf("portaudio: devices: %w", err)
	}

	devices := make([]Device, 0, len(infos))
	for _, info := range infos {
		d := Device{
			Name:              info.Name,
			MaxInputChannels:  info.MaxInputChannels,
			MaxOutputChannels: info.MaxOutputChannels,
			DefaultSampleRate: info.DefaultSampleRate,
			LowOutputLatency:  info.DefaultLowOutputLatency.Seconds(),
		}
		if info.HostApi != nil {
			d.HostAPI = info.HostApi.Name
		}
		devices = append(devices, d)
	}
	return devices, nil
}

func parameters(cfg engine.StreamConfig, in, out *pa.DeviceInfo) pa.StreamParameters {
	var p pa.StreamParameters
	if cfg.LowLatency {
		p = pa.LowLatencyParameters(in, out)
	} else {
		p = pa.HighLatencyParameters(in, out)
	}
	if in != nil {
		p.Input.Channels = cfg.Channels
	}
	if out != nil {
		p.Output.Channels = cfg.Channels
	}
	p.SampleRate = float64(cfg.SampleRate)
	p.FramesPerBuffer = cfg.FramesPerCallback
	return p
}

func (Backend) OpenOutput(cfg engine.StreamConfig, r engine.Renderer) (engine.Stream, error) {
	if err := pa.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio: initialize: %w", err)
	}
	dev, err := pa.DefaultOutputDevice()
	if err != nil || dev == nil {
		pa.Terminate()
		return nil, fmt.Errorf("%w: output: %w", ErrNoDevice, err)
	}

	s := &stream{channels: cfg.Channels, terminate: pa.Terminate}
	ps, err := pa.OpenStream(parameters(cfg, nil, dev), func(out []float32) {
		if s.halted.Load() {
			clear(out)
			return
		}
		if r.OnAudioReady(s, out, len(out)/s.channels) != engine.Continue {
			s.halted.Store(true)
		}
	})
	if err != nil {
		pa.Terminate()
		return nil, fmt.Errorf("portaudio: open output: %w", err)
	}
	s.ps = ps
	return s, nil
}

func (Backend) OpenInput(cfg engine.StreamConfig, c engine.Capturer) (engine.Stream, error) {
	if err := pa.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio: initialize: %w", err)
	}
	dev, err := pa.DefaultInputDevice()
	if err != nil || dev == nil {
		pa.Terminate()
		return nil, fmt.Errorf("%w: input: %w", ErrNoDevice, err)
	}

	s := &stream{channels: cfg.Channels, terminate: pa.Terminate}
	ps, err := pa.OpenStream(parameters(cfg, dev, nil), func(in []float32) {
		if s.halted.Load() {
			return
		}
		if c.OnAudioCaptured(s, in, len(in)/s.channels) != engine.Continue {
			s.halted.Store(true)
		}
	})
	if err != nil {
		pa.Terminate()
		return nil, fmt.Errorf("portaudio: open input: %w", err)
	}
	s.ps = ps
	return s, nil
}

// stream wraps one PortAudio stream. PortAudio has no way to end a stream
// from inside its callback, so a Stop result halts delivery to the engine
// and plays silence until the engine stops the stream.
type stream struct {
	ps        handle
	terminate func() error
	channels  int
	halted    atomic.Bool
	started   atomic.Bool
	closed    atomic.Bool
}

// handle is the part of *pa.Stream a stream drives.
type handle interface {
	Start() error
	Stop() error
	Close() error
}

func (s *stream) Start() error {
	if s.started.Swap(true) {
		return nil
	}
	s.halted.Store(false)
	if err := s.ps.Start(); err != nil {
		s.started.Store(false)
		return fmt.Errorf("portaudio: start: %w", err)
	}
	return nil
}

// Stop stays retryable: a failed stop leaves the stream marked started.
func (s *stream) Stop() error {
	if !s.started.Load() {
		return nil
	}
	if err := s.ps.Stop(); err != nil {
		return fmt.Errorf("portaudio: stop: %w", err)
	}
	s.started.Store(false)
	return nil
}

func (s *stream) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	// The stream and the init reference are released even when Stop fails.
	var errs []error
	if err := s.Stop(); err != nil {
		errs = append(errs, err)
	}
	if err := s.ps.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.terminate(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("portaudio: close: %w", err)
	}
	return nil
}
