// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files into source.Source through
// jfreymuth/oggvorbis. The decoder already produces float32, so samples are
// passed through without conversion.
package vorbis
