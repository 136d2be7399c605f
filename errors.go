// SPDX-License-Identifier: EPL-2.0

package audmix

import "errors"

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrEmptyBounce    = errors.New("nothing to bounce")
)
