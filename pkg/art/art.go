package art

import (
	"strings"
	"unicode/utf8"
)

// Grid is the binary render target derived from an art image.
// Want[r][c] is true where the art has a foreground pixel.
type Grid struct {
	W    int
	H    int
	Want [][]bool
}

// Options controls how an art image is decoded.
type Options struct {
	// Width overrides the inferred grid width when > 0. Columns beyond
	// the art are background; longer art rows are truncated.
	Width int

	// Height overrides the inferred grid height when set. Rows beyond
	// the art are background; extra art rows are dropped.
	Height int

	// HasHeight distinguishes an explicit Height of 0 from "not set".
	HasHeight bool

	// Density resolves cells to foreground/background. Nil selects
	// DefaultDensity.
	Density *DensityMap
}

// Parse decodes art text into a binary target grid.
//
// The text is split on '\n'. When it ends with a newline and no
// dimensional override is given, the resulting trailing empty row is
// dropped. Each line is decoded as UTF-8; malformed bytes are skipped.
// Height defaults to the number of lines and width to the longest line
// in code points. Cells outside the art are background; non-ASCII code
// points are foreground.
func Parse(text string, opts Options) Grid {
	m := opts.Density
	if m == nil {
		def := DefaultDensity()
		m = &def
	}

	lines := strings.Split(text, "\n")
	noOverride := opts.Width <= 0 && !opts.HasHeight
	if noOverride && len(text) > 0 && text[len(text)-1] == '\n' {
		lines = lines[:len(lines)-1]
	}

	rows := make([][]rune, len(lines))
	for i, s := range lines {
		rows[i] = decodeLine(s)
	}

	h := len(rows)
	if opts.HasHeight {
		h = opts.Height
	}
	if h < 0 {
		h = 0
	}

	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	if opts.Width > 0 {
		w = opts.Width
	}

	want := make([][]bool, h)
	for r := 0; r < h; r++ {
		want[r] = make([]bool, w)
		if r >= len(rows) {
			continue
		}
		line := rows[r]
		for c := 0; c < w && c < len(line); c++ {
			want[r][c] = m.Foreground(line[c])
		}
	}
	return Grid{W: w, H: h, Want: want}
}

// At reports the target bit at (row, col). Cells outside the grid are
// background, matching how the layout engine treats overshoot columns.
func (g *Grid) At(row, col int) bool {
	if row < 0 || row >= g.H || col < 0 || col >= g.W {
		return false
	}
	return g.Want[row][col]
}

// Ones returns the number of foreground cells in the grid.
func (g *Grid) Ones() int {
	n := 0
	for _, row := range g.Want {
		for _, b := range row {
			if b {
				n++
			}
		}
	}
	return n
}

// decodeLine decodes a line as UTF-8 code points, skipping malformed
// bytes rather than substituting replacement runes.
func decodeLine(s string) []rune {
	out := make([]rune, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		out = append(out, r)
		i += size
	}
	return out
}
