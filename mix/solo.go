// SPDX-License-Identifier: EPL-2.0

package mix

// ResolveSolo counts the soloed tracks in tracks.
func ResolveSolo(tracks []*Track) int {
	count := 0
	for _, t := range tracks {
		if t != nil && t.solo.Load() {
			count++
		}
	}
	return count
}

// Audible reports whether t contributes to the mix given the solo count
// returned by ResolveSolo. While any track is soloed only soloed tracks are
// heard; a muted track is never heard.
func Audible(t *Track, soloCount int) bool {
	if t == nil || t.muted.Load() {
		return false
	}
	return soloCount == 0 || t.solo.Load()
}
