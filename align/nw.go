// Package align implements the affine-gap Needleman-Wunsch dynamic
// programming kernel with free end-gaps, the substitution matrices it
// is parameterized by, and the codon-aware aligner built on top of it.
package align

import (
	"math"

	"github.com/rega-cev/virulign/seq"
)

// Scorer is satisfied by any alphabet the DP kernel can align: its
// symbols must be representable as small non-negative integers
// indexing a Matrix.
type Scorer interface {
	Len() int
	Index(i int) int // matrix row/column for the symbol at position i
}

// Params holds the two affine-gap penalties. Both are negative costs
// that the kernel adds to the score as-is, without negating them; the
// caller negates the user's positive penalties (cmd/align.go builds
// align.Scoring from -gapOpenPenalty, -gapExtensionPenalty).
type Params struct {
	GapOpen      float64 // negative
	GapExtension float64 // negative
	Matrix       Matrix
}

// ntScorer adapts an NTSequence to Scorer.
type ntScorer struct{ s *seq.NTSequence }

func (n ntScorer) Len() int      { return n.s.Len() }
func (n ntScorer) Index(i int) int { return int(n.s.At(i)) }

// aaScorer adapts an AASequence to Scorer.
type aaScorer struct{ s *seq.AASequence }

func (a aaScorer) Len() int      { return a.s.Len() }
func (a aaScorer) Index(i int) int { return int(a.s.At(i)) }

// dpResult holds the filled score table and the direction/length
// table produced by fill(), consumed by traceback.
type dpResult struct {
	score [][]float64
	dir   [][]int // 0 = diagonal, >0 = horizontal run length, <0 = vertical run length (negated)
}

// fill runs the affine-gap recurrence with free end-gaps over two
// Scorers, producing the DP tables. This is the direct translation of
// NeedlemanWunsh.cpp's needlemanWunshAlign table-filling loop.
func fill(a, b Scorer, p Params) *dpResult {
	n, m := a.Len(), b.Len()
	score := make([][]float64, n+1)
	dir := make([][]int, n+1)
	for i := range score {
		score[i] = make([]float64, m+1)
		dir[i] = make([]int, m+1)
	}

	score[0][0] = 0
	dir[0][0] = 0
	for i := 1; i <= n; i++ {
		// leading vertical gap run on the edge: rate 0.
		score[i][0] = 0
		dir[i][0] = -i
	}
	for j := 1; j <= m; j++ {
		score[0][j] = 0
		dir[0][j] = j
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			sMatch := score[i-1][j-1] + p.Matrix[a.Index(i-1)][b.Index(j-1)]

			// sHoriz: j advances, a fixed -- a trailing run of this
			// type is free once a is fully consumed.
			var sHoriz float64
			atEdgeH := i == n
			if dir[i][j-1] > 0 {
				if atEdgeH {
					sHoriz = score[i][j-1]
				} else {
					sHoriz = score[i][j-1] + p.GapExtension
				}
			} else {
				if atEdgeH {
					sHoriz = score[i][j-1]
				} else {
					sHoriz = score[i][j-1] + p.GapOpen + p.GapExtension
				}
			}

			// sVert: i advances, b fixed -- a trailing run of this
			// type is free once b is fully consumed.
			var sVert float64
			atEdgeV := j == m
			if dir[i-1][j] < 0 {
				if atEdgeV {
					sVert = score[i-1][j]
				} else {
					sVert = score[i-1][j] + p.GapExtension
				}
			} else {
				if atEdgeV {
					sVert = score[i-1][j]
				} else {
					sVert = score[i-1][j] + p.GapOpen + p.GapExtension
				}
			}

			switch {
			case sMatch >= sHoriz && sMatch >= sVert:
				score[i][j] = sMatch
				dir[i][j] = 0
			case sHoriz >= sVert:
				score[i][j] = sHoriz
				if dir[i][j-1] > 0 {
					dir[i][j] = dir[i][j-1] + 1
				} else {
					dir[i][j] = 1
				}
			default:
				score[i][j] = sVert
				if dir[i-1][j] < 0 {
					dir[i][j] = dir[i-1][j] - 1
				} else {
					dir[i][j] = -1
				}
			}
		}
	}

	return &dpResult{score: score, dir: dir}
}

// traceback walks dp from (n, m) back to (0, 0), returning, for each
// sequence, the list of gap-insertion positions (in the original,
// pre-alignment coordinate of that sequence) needed to realize the
// alignment. Positions are returned in increasing order.
func traceback(a, b Scorer, dp *dpResult) (gapsInA []int, gapsInB []int) {
	i, j := a.Len(), b.Len()
	for i > 0 || j > 0 {
		d := dp.dir[i][j]
		switch {
		case d == 0:
			i--
			j--
		case d > 0:
			// gap in a, consuming one symbol of b
			gapsInA = append(gapsInA, i)
			j--
		default:
			// gap in b, consuming one symbol of a
			gapsInB = append(gapsInB, j)
			i--
		}
	}
	reverseInts(gapsInA)
	reverseInts(gapsInB)
	return
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// AlignNT aligns two nucleotide sequences in place (inserting GAP
// symbols) and returns the score. Pre-existing gaps are stripped
// first.
func AlignNT(a, b *seq.NTSequence, p Params) float64 {
	a.StripGaps()
	b.StripGaps()

	dp := fill(ntScorer{a}, ntScorer{b}, p)
	gapsInA, gapsInB := traceback(ntScorer{a}, ntScorer{b}, dp)

	insertGapsNT(a, gapsInA)
	insertGapsNT(b, gapsInB)

	return dp.score[len(dp.score)-1][len(dp.score[0])-1]
}

// insertGapsNT inserts a GAP at each position in positions (positions
// are in the original sequence's coordinate system, ascending); each
// insertion shifts subsequent positions by one, so the positions are
// walked front to back with an offset counting the gaps already
// inserted.
func insertGapsNT(s *seq.NTSequence, positions []int) {
	offset := 0
	for _, pos := range positions {
		s.InsertGaps(pos+offset, 1)
		offset++
	}
}

func insertGapsAA(s *seq.AASequence, positions []int) {
	offset := 0
	for _, pos := range positions {
		s.InsertGap(pos + offset)
		offset++
	}
}

// AlignAA aligns two amino-acid sequences in place and returns the score.
func AlignAA(a, b *seq.AASequence, p Params) float64 {
	dp := fill(aaScorer{a}, aaScorer{b}, p)
	gapsInA, gapsInB := traceback(aaScorer{a}, aaScorer{b}, dp)

	insertGapsAA(a, gapsInA)
	insertGapsAA(b, gapsInB)

	return dp.score[len(dp.score)-1][len(dp.score[0])-1]
}

// ComputeAlignScore re-scores an already-aligned pair. Direct
// translation of NeedlemanWunsh.cpp's computeAlignScore, including its
// quirk that every gap run -- not just leading ones -- is scored at
// the free edge rate: the leading-gap flags it tracks are never
// cleared, so gapOpen/gapExtension never actually apply here. Kept
// bit-for-bit rather than corrected, since callers compare scores
// produced by this function against each other and against fill()'s
// scores.
func ComputeAlignScore(a, b *seq.NTSequence, p Params) float64 {
	n := a.Len()
	if b.Len() != n {
		return math.Inf(-1)
	}

	score := 0.0
	for i := 0; i < n; i++ {
		na, nb := a.At(i), b.At(i)
		if na == seq.NT_GAP || nb == seq.NT_GAP {
			continue
		}
		score += p.Matrix[int(na)][int(nb)]
	}
	return score
}
