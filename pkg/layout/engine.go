package layout

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/matzehuels/silhouette/pkg/art"
	"github.com/matzehuels/silhouette/pkg/lex"
)

// Engine constants. Shoot and MinWidth are part of the output contract:
// every emitted line is strictly shorter than W+Shoot bytes, and the
// engine refuses grids narrower than MinWidth.
const (
	// Shoot is the horizontal overflow tolerance beyond the grid width
	// allowed per emitted row.
	Shoot = 10

	// MinWidth is the narrowest grid the engine accepts.
	MinWidth = 80

	// MaxCommentLen caps synthesized /* ... */ comments, delimiters
	// included.
	MaxCommentLen = 20

	// minRowTokens is the soft minimum of tokens consumed per row. It is
	// relaxed progressively when a row cannot satisfy it.
	minRowTokens = 4
)

// DefaultSeed makes output reproducible across runs. Callers wanting
// aesthetic variety pass a time-derived seed instead.
const DefaultSeed = 42

// Segment kinds tracked in the DP's last dimension. Token placements are
// split by whether anything dense may follow directly: a token whose
// juxtaposition with the next token would merge them, or one ending in
// '/' (which would turn a following comment opener into //), must be
// followed by a space.
const (
	kindSpace = iota
	kindComment
	kindTokenSep  // token; only a space may follow
	kindTokenFree // token; the next segment may be adjacent
	kindCount
)

// Options configures a render.
type Options struct {
	// Seed seeds the PRNG used for DP tie-breaking, comment interiors,
	// and overflow-row width jitter.
	Seed int64

	// Density classifies characters as foreground or background when
	// scoring. Nil selects art.DefaultDensity.
	Density *art.DensityMap
}

// Render lays the token stream out against the target grid and returns
// the full output text, newline-terminated per row.
//
// Render panics when the grid is narrower than MinWidth or when a token
// cannot fit on a line even with overshoot; both are contract violations
// of the caller. The one exception is the fully empty job (no tokens and
// a zero-height grid), which renders as the empty string.
func Render(tokens []string, grid art.Grid, opts Options) string {
	if len(tokens) == 0 && grid.H == 0 {
		return ""
	}

	dm := opts.Density
	if dm == nil {
		def := art.DefaultDensity()
		dm = &def
	}

	e := newEngine(tokens, grid, dm, rand.New(rand.NewSource(opts.Seed)))
	return e.run()
}

// engine holds the per-run state: the token stream with precomputed
// separator bits, the target grid, and the DP buffers reused across rows.
type engine struct {
	tokens []string
	sep    []bool // sep[i]: tokens[i] and tokens[i+1] must not touch
	grid   art.Grid
	dm     *art.DensityMap
	rng    *rand.Rand

	wb    int // grid.W + Shoot, exclusive row length bound
	relax int // score relaxation window, grid.W / 10

	// Foreground class of the fixed characters the engine emits itself.
	spaceFg bool
	slashFg bool
	starFg  bool

	// Flat DP tables indexed by (i*wb + j)*kindCount + k. negScore marks
	// unreachable states; back holds the predecessor's state index.
	score   []int32
	back    []int32
	cleared []int32 // template for resetting score between rows

	taken int
	row   int
	out   strings.Builder
}

// negScore marks unreachable DP states. Kept well away from the int32
// minimum so transition arithmetic cannot wrap.
const negScore = -(1 << 29)

func newEngine(tokens []string, grid art.Grid, dm *art.DensityMap, rng *rand.Rand) *engine {
	if grid.W < MinWidth {
		panic(fmt.Sprintf("layout: grid width %d below minimum %d", grid.W, MinWidth))
	}
	wb := grid.W + Shoot
	for _, t := range tokens {
		if len(t) >= wb {
			panic(fmt.Sprintf("layout: token of length %d cannot fit within width bound %d", len(t), wb))
		}
	}

	sep := make([]bool, 0, len(tokens))
	for i := 0; i+1 < len(tokens); i++ {
		sep = append(sep, lex.NeedsSeparator(tokens[i], tokens[i+1]))
	}

	n := wb * wb * kindCount
	e := &engine{
		tokens:  tokens,
		sep:     sep,
		grid:    grid,
		dm:      dm,
		rng:     rng,
		wb:      wb,
		relax:   grid.W / 10,
		spaceFg: dm.ForegroundByte(' '),
		slashFg: dm.ForegroundByte('/'),
		starFg:  dm.ForegroundByte('*'),
		score:   make([]int32, n),
		back:    make([]int32, n),
		cleared: make([]int32, n),
	}
	for i := range e.cleared {
		e.cleared[i] = negScore
	}
	return e
}

// run emits rows until the token stream is exhausted and the grid height
// is reached. Rows beyond the grid use the greedy overflow packing.
func (e *engine) run() string {
	for e.taken < len(e.tokens) || e.row < e.grid.H {
		if e.row >= e.grid.H {
			e.overflowRow()
		} else {
			e.imageRow()
		}
	}
	return e.out.String()
}

// stateIndex flattens (column, tokens consumed, kind) into the DP buffer.
func (e *engine) stateIndex(i, j, k int) int {
	return (i*e.wb+j)*kindCount + k
}

// decode is the inverse of stateIndex.
func (e *engine) decode(idx int) (i, j, k int) {
	k = idx % kindCount
	idx /= kindCount
	return idx / e.wb, idx % e.wb, k
}

// match scores one placed character: a point when its foreground class
// equals the target cell's bit. Columns past the grid width are
// background.
func (e *engine) match(fg bool, col int) int32 {
	if fg == e.grid.At(e.row, col) {
		return 1
	}
	return 0
}

// relaxTo offers a transition into state (i, j, k). Strictly better
// scores always win; exact ties are broken by a fair coin so equal
// layouts vary between seeds.
func (e *engine) relaxTo(i, j, k int, sc int32, from int) {
	idx := e.stateIndex(i, j, k)
	cur := e.score[idx]
	if sc > cur || (sc == cur && cur > negScore && e.rng.Intn(2) == 0) {
		e.score[idx] = sc
		e.back[idx] = int32(from)
	}
}

// imageRow solves the per-row DP, selects a terminal state, and emits
// the reconstructed row.
func (e *engine) imageRow() {
	copy(e.score, e.cleared)
	start := e.stateIndex(0, 0, kindSpace)
	e.score[start] = 0
	e.back[start] = -1

	rem := len(e.tokens) - e.taken
	jMax := rem
	if jMax > e.wb-1 {
		jMax = e.wb - 1
	}

	for i := 0; i < e.wb; i++ {
		for j := 0; j <= jMax; j++ {
			for k := 0; k < kindCount; k++ {
				idx := e.stateIndex(i, j, k)
				s := e.score[idx]
				if s == negScore {
					continue
				}

				// Single space.
				if i+1 < e.wb {
					e.relaxTo(i+1, j, kindSpace, s+e.match(e.spaceFg, i), idx)
				}

				// Synthesized comment. The interior is chosen cell by
				// cell at reconstruction, so it always scores L-4; only
				// the four delimiter characters can miss. Comments strip
				// to nothing, so they may not stand in for a required
				// separator.
				if k == kindTokenSep {
					continue
				}
				for l := 4; l <= MaxCommentLen && i+l < e.wb; l++ {
					sc := s + int32(l-4) +
						e.match(e.slashFg, i) + e.match(e.starFg, i+1) +
						e.match(e.starFg, i+l-2) + e.match(e.slashFg, i+l-1)
					e.relaxTo(i+l, j, kindComment, sc, idx)
				}

				// Next token, unless the previous segment was a token
				// that demands a separator first.
				if j < jMax && k != kindTokenSep {
					tok := e.tokens[e.taken+j]
					if i+len(tok) < e.wb {
						sc := s
						for x := 0; x < len(tok); x++ {
							sc += e.match(e.dm.ForegroundByte(tok[x]), i+x)
						}
						nk := kindTokenFree
						gi := e.taken + j
						if (gi+1 < len(e.tokens) && e.sep[gi]) || tok[len(tok)-1] == '/' {
							nk = kindTokenSep
						}
						e.relaxTo(i+len(tok), j+1, nk, sc, idx)
					}
				}
			}
		}
	}

	chosen := e.selectTerminal(jMax)
	e.emitRow(chosen)
}

// selectTerminal picks the row's final DP state. It prefers rows that
// consume more tokens, accepting any state within the relaxation window
// of the best score in the eligible region, and progressively lowers the
// soft token minimum when the region is empty.
func (e *engine) selectTerminal(jMax int) int {
	iStart := e.grid.W - Shoot
	if iStart < 0 {
		iStart = 0
	}
	minTok := minRowTokens
	if jMax < minTok {
		minTok = jMax
	}

	for mt := minTok; mt >= 0; mt-- {
		best := int32(negScore)
		for i := iStart; i < e.wb; i++ {
			for j := mt; j <= jMax; j++ {
				for k := 0; k < kindCount; k++ {
					if s := e.score[e.stateIndex(i, j, k)]; s > best {
						best = s
					}
				}
			}
		}
		if best == negScore {
			continue
		}
		threshold := best - int32(e.relax)

		for j := jMax; j >= mt; j-- {
			cand, cv := -1, int32(negScore)
			for i := iStart; i < e.wb; i++ {
				for k := 0; k < kindCount; k++ {
					idx := e.stateIndex(i, j, k)
					if s := e.score[idx]; s >= threshold && s > cv {
						cv, cand = s, idx
					}
				}
			}
			if cand >= 0 {
				return cand
			}
		}
	}

	// Unreachable: the all-space prefix reaches every column, so the
	// mt=0 pass always finds a state.
	panic("layout: row DP selected no terminal state")
}

// emitRow reconstructs the segment chain ending at the terminal state,
// writes the row, and advances the cursors.
func (e *engine) emitRow(terminal int) {
	type seg struct {
		kind   int
		from   int // first column of the segment
		to     int // one past the last column
		jStart int // tokens consumed before the segment
	}

	var segs []seg
	for idx := terminal; ; {
		prev := e.back[idx]
		if prev < 0 {
			break
		}
		i, _, k := e.decode(idx)
		pi, pj, _ := e.decode(int(prev))
		segs = append(segs, seg{kind: k, from: pi, to: i, jStart: pj})
		idx = int(prev)
	}

	var line []byte
	for x := len(segs) - 1; x >= 0; x-- {
		sg := segs[x]
		switch sg.kind {
		case kindSpace:
			line = append(line, ' ')
		case kindComment:
			line = append(line, '/', '*')
			for c := sg.from + 2; c < sg.to-2; c++ {
				if e.grid.At(e.row, c) {
					line = append(line, byte('a'+e.rng.Intn(26)))
				} else {
					line = append(line, ' ')
				}
			}
			line = append(line, '*', '/')
		default:
			line = append(line, e.tokens[e.taken+sg.jStart]...)
		}
	}

	e.out.Write(line)
	e.out.WriteByte('\n')

	_, consumed, _ := e.decode(terminal)
	e.taken += consumed
	e.row++
}

// overflowRow packs tokens greedily onto one row below the image. The
// effective width jitters within the overshoot band; an empty row always
// accepts at least one token.
func (e *engine) overflowRow() {
	wEff := e.grid.W + e.rng.Intn(Shoot)

	var line []byte
	col := 0
	for e.taken < len(e.tokens) {
		tok := e.tokens[e.taken]
		sep := 0
		if col > 0 && e.sep[e.taken-1] {
			sep = 1
		}
		if col > 0 && col+sep+len(tok) > wEff {
			break
		}
		if sep == 1 {
			line = append(line, ' ')
		}
		line = append(line, tok...)
		col += sep + len(tok)
		e.taken++
	}

	e.out.Write(line)
	e.out.WriteByte('\n')
	e.row++
}
