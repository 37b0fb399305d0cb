// Package art turns ASCII-art text into the binary target grid the layout
// engine renders against.
//
// An art file is read as UTF-8 lines. Each cell resolves through a
// [DensityMap] to a foreground/background bit: foreground cells want a
// visible character there, background cells want a space. The resulting
// [Grid] is immutable once built.
package art

// foregroundThreshold is the density at or above which a code point is
// classified as foreground.
const foregroundThreshold = 0.5

// DensityMap assigns each of the 128 ASCII code points an intensity in
// [0, 1]. A code point is foreground iff its density is at least 0.5.
// Code points outside the ASCII range are always foreground.
type DensityMap [128]float64

// DefaultDensity returns the standard binary map: space is background,
// every other code point is foreground.
func DefaultDensity() DensityMap {
	var m DensityMap
	for i := range m {
		m[i] = 1.0
	}
	m[' '] = 0.0
	return m
}

// Foreground reports whether the code point r is classified as
// foreground under this map.
func (m *DensityMap) Foreground(r rune) bool {
	if r < 0 || r >= 128 {
		return true
	}
	return m[r] >= foregroundThreshold
}

// ForegroundByte reports whether the byte c is classified as foreground.
func (m *DensityMap) ForegroundByte(c byte) bool {
	return m.Foreground(rune(c))
}

// Set overrides the density of code point r, clamping v to [0, 1].
// Out-of-range code points are ignored.
func (m *DensityMap) Set(r rune, v float64) {
	if r < 0 || r >= 128 {
		return
	}
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	m[r] = v
}
