// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	ErrStreamOpen     = errors.New("engine: could not open stream")
	ErrInvalidState   = errors.New("engine: invalid state")
	ErrAlreadyRunning = errors.New("engine: already running")
	ErrClosed         = errors.New("engine: closed")
	ErrInvalidConfig  = errors.New("engine: invalid config")
	ErrUnknownTrack   = errors.New("engine: unknown track")
	ErrNoInput        = errors.New("engine: no input stream")
)
