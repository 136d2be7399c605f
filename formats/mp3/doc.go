// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III files into source.Source through
// hajimehoshi/go-mp3. Output is always stereo at the file's sample rate.
package mp3
