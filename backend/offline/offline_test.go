// SPDX-License-Identifier: EPL-2.0

package offline

import (
	"errors"
	"sync"
	"testing"

	"github.com/ik5/audmix/engine"
)

type ramp struct {
	mu     sync.Mutex
	calls  int
	stopAt int
}

func (r *ramp) OnAudioReady(_ engine.Stream, out []float32, frames int) engine.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	for i := range 2 * frames {
		out[i] = float32(r.calls)
	}
	if r.stopAt > 0 && r.calls == r.stopAt {
		return engine.Stop
	}
	return engine.Continue
}

type sink struct {
	got [][]float32
}

func (s *sink) OnAudioCaptured(_ engine.Stream, in []float32, _ int) engine.Result {
	s.got = append(s.got, append([]float32(nil), in...))
	return engine.Continue
}

var cfg = engine.StreamConfig{SampleRate: 8000, Channels: 2, FramesPerCallback: 4}

func TestStream_PullRequiresStart(t *testing.T) {
	t.Parallel()

	b := &Backend{}
	s, err := b.OpenOutput(cfg, &ramp{})
	if err != nil {
		t.Fatalf("OpenOutput() error = %v", err)
	}
	out := b.Output()
	if out != s {
		t.Fatal("Output() did not return the opened stream")
	}

	if _, ok := out.Pull(); ok {
		t.Error("Pull() before Start ok = true, want false")
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	period, ok := out.Pull()
	if !ok || len(period) != 8 || period[0] != 1 {
		t.Errorf("Pull() = %v, %v, want 8 samples of 1", period, ok)
	}

	s.Stop()
	if _, ok := out.Pull(); ok {
		t.Error("Pull() after Stop ok = true, want false")
	}
	if out.Periods() != 1 {
		t.Errorf("Periods() = %d, want 1", out.Periods())
	}
}

func TestStream_StopResult(t *testing.T) {
	t.Parallel()

	b := &Backend{}
	s, _ := b.OpenOutput(cfg, &ramp{stopAt: 2})
	s.Start()

	out := b.Output()
	for i := range 2 {
		if _, ok := out.Pull(); !ok {
			t.Fatalf("Pull() %d ok = false", i)
		}
	}
	if out.Started() {
		t.Error("Started() = true after a Stop result")
	}
	if _, ok := out.Pull(); ok {
		t.Error("Pull() after a Stop result ok = true")
	}
}

func TestStream_Render(t *testing.T) {
	t.Parallel()

	b := &Backend{}
	s, _ := b.OpenOutput(cfg, &ramp{})

	if err := b.Output().Render(4, func([]float32) error { return nil }); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Render() before Start error = %v, want %v", err, ErrNotStarted)
	}

	s.Start()
	var sizes []int
	err := b.Output().Render(10, func(p []float32) error {
		sizes = append(sizes, len(p))
		return nil
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := []int{8, 8, 4}
	if len(sizes) != len(want) {
		t.Fatalf("Render() periods = %v, want %v", sizes, want)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("period %d = %d samples, want %d", i, sizes[i], want[i])
		}
	}

	boom := errors.New("boom")
	if err := b.Output().Render(10, func([]float32) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("Render() error = %v, want %v", err, boom)
	}
}

func TestStream_Push(t *testing.T) {
	t.Parallel()

	b := &Backend{}
	c := &sink{}
	s, err := b.OpenInput(engine.StreamConfig{SampleRate: 8000, Channels: 1, FramesPerCallback: 4}, c)
	if err != nil {
		t.Fatalf("OpenInput() error = %v", err)
	}
	in := b.Input()

	if in.Push([]float32{1}) {
		t.Error("Push() before Start = true, want false")
	}

	s.Start()
	if !in.Push([]float32{1, 2}) {
		t.Fatal("Push() = false, want true")
	}
	if !in.Push([]float32{1, 2, 3, 4, 5, 6}) {
		t.Fatal("Push() = false, want true")
	}

	if len(c.got) != 2 {
		t.Fatalf("captured %d periods, want 2", len(c.got))
	}
	if got := c.got[0]; len(got) != 4 || got[1] != 2 || got[2] != 0 {
		t.Errorf("short period = %v, want [1 2 0 0]", got)
	}
	if got := c.got[1]; len(got) != 4 || got[3] != 4 {
		t.Errorf("long period = %v, want [1 2 3 4]", got)
	}
}

func TestStream_CloseIsTerminal(t *testing.T) {
	t.Parallel()

	b := &Backend{}
	s, _ := b.OpenOutput(cfg, &ramp{})
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Start(); !errors.Is(err, ErrClosed) {
		t.Errorf("Start() after Close error = %v, want %v", err, ErrClosed)
	}
}

func TestBackend_OpenErr(t *testing.T) {
	t.Parallel()

	boom := errors.New("no device")
	b := &Backend{OpenErr: boom}
	if _, err := b.OpenOutput(cfg, &ramp{}); !errors.Is(err, boom) {
		t.Errorf("OpenOutput() error = %v, want %v", err, boom)
	}
	if _, err := b.OpenInput(cfg, &sink{}); !errors.Is(err, boom) {
		t.Errorf("OpenInput() error = %v, want %v", err, boom)
	}
}

func TestStream_StopWaitsForPeriod(t *testing.T) {
	t.Parallel()

	b := &Backend{}
	s, _ := b.OpenOutput(cfg, &ramp{})
	s.Start()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			if _, ok := b.Output().Pull(); !ok {
				return
			}
		}
	}()

	s.Stop()
	n := b.Output().Periods()
	wg.Wait()
	if got := b.Output().Periods(); got != n {
		t.Errorf("Periods() after Stop = %d, then %d; a period ran after Stop returned", n, got)
	}
}

func TestStream_SetStopErr(t *testing.T) {
	t.Parallel()

	errStop := errors.New("stop failed")
	b := &Backend{}
	s, _ := b.OpenOutput(cfg, &ramp{})
	s.Start()

	b.Output().SetStopErr(errStop)
	if err := s.Stop(); !errors.Is(err, errStop) {
		t.Fatalf("Stop() error = %v, want %v", err, errStop)
	}
	if !b.Output().Started() {
		t.Error("Started() = false after a failed Stop()")
	}
	if _, ok := b.Output().Pull(); !ok {
		t.Error("Pull() ok = false after a failed Stop()")
	}

	b.Output().SetStopErr(nil)
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if b.Output().Started() {
		t.Error("Started() = true after Stop()")
	}
}
