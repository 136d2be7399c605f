// SPDX-License-Identifier: EPL-2.0

package source

import "errors"

var (
	ErrInvalidDstSize     = errors.New("dst size must be multiple of channels")
	ErrSampleRateMismatch = errors.New("source sample rate does not match engine sample rate")
	ErrUnknownFormat      = errors.New("no decoder registered for format")
	ErrNoChannels         = errors.New("source reports no channels")
)
