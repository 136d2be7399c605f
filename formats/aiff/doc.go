// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into source.Source through go-audio/aiff.
//
// Integer PCM of 8, 16, 24 or 32 bits is accepted and normalized to
// [-1, 1]. go-audio needs to seek, so a reader that cannot seek is read
// into memory first.
package aiff
