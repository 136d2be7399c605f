// SPDX-License-Identifier: EPL-2.0

package engine

import "github.com/rs/zerolog"

// Option configures an Engine.
type Option interface {
	apply(*Engine)
}

type configOption struct {
	cfg Config
}

func (o configOption) apply(e *Engine) {
	e.cfg = o.cfg.WithDefaults()
}

// WithConfig sets the stream configuration. Zero fields take their
// defaults. Defaults to DefaultConfig().
func WithConfig(cfg Config) Option {
	return configOption{cfg: cfg}
}

type loggerOption struct {
	log zerolog.Logger
}

func (o loggerOption) apply(e *Engine) {
	e.log = o.log
}

// WithLogger sets the logger for control path events. The audio callback
// never logs. Defaults to a disabled logger.
func WithLogger(log zerolog.Logger) Option {
	return loggerOption{log: log}
}
