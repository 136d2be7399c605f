// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ik5/audmix/engine"
	"github.com/ik5/audmix/source"
)

// Session describes a mix: how to run the engine and which tracks to load.
type Session struct {
	Engine       engine.Config `yaml:"engine"`
	MasterVolume *float32      `yaml:"master_volume,omitempty"`
	Tracks       []TrackSpec   `yaml:"tracks"`

	// Dir resolves relative track paths. LoadSession sets it to the
	// directory of the session file.
	Dir string `yaml:"-"`
}

// TrackSpec is one track entry of a session.
type TrackSpec struct {
	Name   string   `yaml:"name,omitempty"`
	Path   string   `yaml:"path"`
	Volume *float32 `yaml:"volume,omitempty"`
	Pan    float32  `yaml:"pan,omitempty"`
	Mute   bool     `yaml:"mute,omitempty"`
	Solo   bool     `yaml:"solo,omitempty"`
}

// Label is the track name, or the file name without extension.
func (t TrackSpec) Label() string {
	if t.Name != "" {
		return t.Name
	}
	base := filepath.Base(t.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Gain is the track volume, 1 when unset.
func (t TrackSpec) Gain() float32 {
	if t.Volume == nil {
		return 1
	}
	return *t.Volume
}

// Master is the master volume, 1 when unset.
func (s *Session) Master() float32 {
	if s.MasterVolume == nil {
		return 1
	}
	return *s.MasterVolume
}

// ParseSession decodes a YAML session. Unknown keys are rejected. Engine
// defaults are filled in and the result is validated.
func ParseSession(data []byte) (*Session, error) {
	var s Session
	if err := yaml.UnmarshalWithOptions(data, &s, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	s.Engine = s.Engine.WithDefaults()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSession reads and parses the session file at path.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	s, err := ParseSession(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Dir = filepath.Dir(path)
	return s, nil
}

// Marshal encodes the session back to YAML.
func (s *Session) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

func (s *Session) Validate() error {
	if err := s.Engine.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if m := s.Master(); !(m >= 0) || math.IsInf(float64(m), 0) {
		return fmt.Errorf("%w: master volume %v", ErrInvalidSession, m)
	}

	for i, t := range s.Tracks {
		if t.Path == "" {
			return fmt.Errorf("%w: track %d has no path", ErrInvalidSession, i)
		}
		if v := t.Gain(); !(v >= 0) || math.IsInf(float64(v), 0) {
			return fmt.Errorf("%w: track %q volume %v", ErrInvalidSession, t.Label(), v)
		}
		if t.Pan < -1 || t.Pan > 1 || t.Pan != t.Pan {
			return fmt.Errorf("%w: track %q pan %v outside [-1, 1]", ErrInvalidSession, t.Label(), t.Pan)
		}
	}
	return nil
}

// path resolves a track path against the session directory.
func (s *Session) path(p string) string {
	if filepath.IsAbs(p) || s.Dir == "" {
		return p
	}
	return filepath.Join(s.Dir, p)
}

// Apply decodes every track and adds it to eng with its mix settings, then
// sets the master volume. It returns the engine ids in session order. On
// error, tracks added so far stay on the engine.
func (s *Session) Apply(eng *engine.Engine, reg *source.Registry) ([]int, error) {
	rate := eng.Config().SampleRate
	ids := make([]int, 0, len(s.Tracks))

	for _, t := range s.Tracks {
		buf, err := LoadTrack(reg, s.path(t.Path), rate)
		if err != nil {
			return ids, fmt.Errorf("track %q: %w", t.Label(), err)
		}

		id, err := eng.AddTrack(t.Label(), buf)
		if err != nil {
			return ids, fmt.Errorf("track %q: %w", t.Label(), err)
		}
		ids = append(ids, id)

		tr, ok := eng.Track(id)
		if !ok {
			return ids, fmt.Errorf("track %q: %w", t.Label(), engine.ErrUnknownTrack)
		}
		tr.SetVolume(t.Gain())
		tr.SetPan(t.Pan)
		tr.SetMuted(t.Mute)
		tr.SetSolo(t.Solo)
	}

	eng.SetMasterVolume(s.Master())
	return ids, nil
}
