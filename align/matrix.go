package align

import "github.com/rega-cev/virulign/seq"

// Matrix is a symmetric substitution score table indexed by a
// sequence symbol's integer representation (seq.Nucleotide or
// seq.AminoAcid).
type Matrix [][]float64

// nucRowOrder lists, in the order the teacher repo's dnafull_subst_matrix
// table uses, the nucleotide characters it scores (see
// align/const.go's dna_to_matrix_pos / dnafull_subst_matrix,
// fredericlemoine-goalign). 'U' there stands in for T/U, already
// collapsed into seq.NT_T by seq.NewNucleotide.
var nucRowOrder = []byte{'A', 'T', 'G', 'C', 'S', 'W', 'R', 'Y', 'K', 'M', 'B', 'V', 'H', 'D', 'N', 'U'}

// nucFullMatrix is the teacher's NUC.4.4 literal table, copied
// verbatim from align/const.go's dnafull_subst_matrix.
var nucFullMatrix = [][]float64{
	{5, -4, -4, -4, -4, 1, 1, -4, -4, 1, -4, -1, -1, -1, -2, -4},
	{-4, 5, -4, -4, -4, 1, -4, 1, 1, -4, -1, -4, -1, -1, -2, 5},
	{-4, -4, 5, -4, 1, -4, 1, -4, 1, -4, -1, -1, -4, -1, -2, -4},
	{-4, -4, -4, 5, 1, -4, -4, 1, -4, 1, -1, -1, -1, -4, -2, -4},
	{-4, -4, 1, 1, -1, -4, -2, -2, -2, -2, -1, -1, -3, -3, -1, -4},
	{1, 1, -4, -4, -4, -1, -2, -2, -2, -2, -3, -3, -1, -1, -1, 1},
	{1, -4, 1, -4, -2, -2, -1, -4, -2, -2, -3, -1, -3, -1, -1, -4},
	{-4, 1, -4, 1, -2, -2, -4, -1, -2, -2, -1, -3, -1, -3, -1, 1},
	{-4, 1, 1, -4, -2, -2, -2, -2, -1, -4, -1, -3, -3, -1, -1, 1},
	{1, -4, -4, 1, -2, -2, -2, -2, -4, -1, -3, -1, -1, -3, -1, -4},
	{-4, -1, -1, -1, -1, -3, -3, -1, -1, -3, -1, -2, -2, -2, -1, -1},
	{-1, -4, -1, -1, -1, -3, -1, -3, -3, -1, -2, -1, -2, -2, -1, -4},
	{-1, -1, -4, -1, -3, -1, -3, -1, -3, -1, -2, -2, -1, -2, -1, -1},
	{-1, -1, -1, -4, -3, -1, -1, -3, -1, -3, -2, -2, -2, -1, -1, -1},
	{-2, -2, -2, -2, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -2},
	{-4, 5, -4, -4, -4, 1, -4, 1, 1, -4, -1, -4, -1, -1, -2, 5},
}

// NucleotideMatrix is the 16x16 NUC.4.4 matrix, reindexed to
// seq.Nucleotide's internal representation order (A,C,G,T,M,R,W,S,Y,K,V,H,D,B,N,GAP).
// Gap columns/rows score 0 since the DP kernel never substitution-scores
// a gap column directly (see nw.go), but the table is kept total.
var NucleotideMatrix Matrix

// blosum30RowOrder/blosum30Matrix are the published NCBI/EMBOSS
// BLOSUM30 substitution matrix (the standard 24x24 table distributed
// with ftp://ftp.ncbi.nih.gov/blast/matrices/BLOSUM30 and EMBOSS's
// data/BLOSUM30), not a rescaling of BLOSUM62: BLOSUM30 is clustered
// at a different identity threshold and its scores are not a linear
// function of BLOSUM62's.
var blosum30RowOrder = []byte{'A', 'R', 'N', 'D', 'C', 'Q', 'E', 'G', 'H', 'I', 'L', 'K', 'M', 'F', 'P', 'S', 'T', 'W', 'Y', 'V', 'B', 'Z', 'X', '*'}

var blosum30Matrix = [][]float64{
	{4, -1, 0, 0, 1, -1, 0, 0, -2, 0, 1, -1, 1, -2, -1, 1, 1, -5, -4, 1, -1, -1, 0, -7},
	{-1, 8, -1, -2, -4, 3, 0, -3, 0, -1, -1, 2, -1, -3, -1, -1, -2, 0, 0, -3, -1, 1, -1, -7},
	{0, -1, 8, 1, -1, 0, -1, 0, -1, 0, -2, 0, -2, -3, -1, 0, 0, -7, 0, -3, 4, 0, -1, -7},
	{0, -2, 1, 9, -3, -1, 1, -1, -2, -4, -1, 0, -3, -5, -1, 0, -1, -4, -1, -2, 5, 0, -1, -7},
	{1, -4, -1, -3, 17, -2, 1, -4, -5, -2, 0, -3, -2, -2, -3, -2, -2, -2, -6, -2, -2, 0, -2, -7},
	{-1, 3, 0, -1, -2, 8, 2, -2, 0, -2, -2, 0, -1, -3, -1, -1, 0, -1, -1, -3, 0, 4, -1, -7},
	{0, 0, -1, 1, 1, 2, 6, -2, 0, -3, -1, -1, -2, -1, 1, 0, -2, -1, -2, -3, 1, 5, -1, -7},
	{0, -3, 0, -1, -4, -2, -2, 8, -3, -1, -2, -2, -2, -3, -1, 0, -2, -2, -3, -3, 0, -2, -1, -7},
	{-2, 0, -1, -2, -5, 0, 0, -3, 14, -2, -1, -2, 2, -3, 1, -1, -2, -5, 0, -3, -1, 0, -1, -7},
	{0, -1, 0, -4, -2, -2, -3, -1, -2, 6, 2, -2, 1, 0, -3, -1, 0, -3, -1, 4, -2, -3, -1, -7},
	{1, -1, -2, -1, 0, -2, -1, -2, -1, 2, 4, -2, 2, 0, -3, -2, 0, -2, -1, 1, -1, -2, -1, -7},
	{-1, 2, 0, 0, -3, 0, -1, -2, -2, -2, -2, 4, 2, -1, -1, -1, -1, -2, -1, -3, 0, 0, -1, -7},
	{1, -1, -2, -3, -2, -1, -2, -2, 2, 1, 2, 2, 6, -2, -4, -2, 0, -3, -1, 0, -2, -2, -1, -7},
	{-2, -3, -3, -5, -2, -3, -1, -3, -3, 0, 0, -1, -2, 10, -4, -1, 1, 3, 4, -2, -4, -2, -1, -7},
	{-1, -1, -1, -1, -3, -1, 1, -1, 1, -3, -3, -1, -4, -4, 11, -1, 0, -3, -3, -1, -1, 0, -1, -7},
	{1, -1, 0, 0, -2, -1, 0, 0, -1, -1, -2, -1, -2, -1, -1, 4, 2, -3, -2, -1, 0, -1, -1, -7},
	{1, -2, 0, -1, -2, 0, -2, -2, -2, 0, 0, -1, 0, 1, 0, 2, 5, -5, -1, 1, 0, -1, -1, -7},
	{-5, 0, -7, -4, -2, -1, -1, -2, -5, -3, -2, -2, -3, 3, -3, -3, -5, 20, 5, -3, -5, -1, -3, -7},
	{-4, 0, 0, -1, -6, -1, -2, -3, 0, -1, -1, -1, -1, 4, -3, -2, -1, 5, 9, -1, -1, -2, -1, -7},
	{1, -3, -3, -2, -2, -3, -3, -3, -3, 4, 1, -3, 0, -2, -1, -1, 1, -3, -1, 5, -3, -3, -1, -7},
	{-1, -1, 4, 5, -2, 0, 1, 0, -1, -2, -1, 0, -2, -4, -1, 0, 0, -5, -1, -3, 5, 2, -1, -7},
	{-1, 1, 0, 0, 0, 4, 5, -2, 0, -3, -2, 0, -2, -2, 0, -1, -1, -1, -2, -3, 2, 5, -1, -7},
	{0, -1, -1, -1, -2, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -3, -1, -1, -1, -1, -1, -7},
	{-7, -7, -7, -7, -7, -7, -7, -7, -7, -7, -7, -7, -7, -7, -7, -7, -7, -7, -7, -7, -7, -7, -7, 1},
}

// AminoAcidMatrix is the 27x27 BLOSUM30 matrix, reindexed to
// seq.AminoAcid's internal representation order.
var AminoAcidMatrix Matrix

func buildMatrix(order []byte, src [][]float64, size int, indexOf func(byte) int, scale float64) Matrix {
	m := make(Matrix, size)
	for i := range m {
		m[i] = make([]float64, size)
	}
	pos := make(map[byte]int, len(order))
	for i, c := range order {
		pos[c] = i
	}
	for i, ci := range order {
		for j, cj := range order {
			v := src[i][j] * scale
			ii, jj := indexOf(ci), indexOf(cj)
			m[ii][jj] = v
		}
	}
	return m
}

func init() {
	nucIndexOf := func(c byte) int {
		n, err := seq.NewNucleotide(c)
		if err != nil {
			panic(err)
		}
		return int(n)
	}
	NucleotideMatrix = buildMatrix(nucRowOrder, nucFullMatrix, 16, nucIndexOf, 1.0)
	// GAP row/column explicitly zeroed; nucRowOrder never mentions GAP
	// so buildMatrix leaves it at the zero value already, but state the
	// invariant for clarity.
	gapIdx := int(seq.NT_GAP)
	for i := range NucleotideMatrix {
		NucleotideMatrix[i][gapIdx] = 0
		NucleotideMatrix[gapIdx][i] = 0
	}

	aaIndexOf := func(c byte) int {
		switch c {
		case '*':
			return int(seq.AA_STP)
		default:
			a, err := seq.NewAminoAcid(c)
			if err != nil {
				panic(err)
			}
			return int(a)
		}
	}
	base := buildMatrix(blosum30RowOrder, blosum30Matrix, 27, aaIndexOf, 1.0)
	AminoAcidMatrix = extendAAMatrix(base)
}

// extendAAMatrix fills in the J, U and GAP rows/columns that the
// 24-symbol BLOSUM30 table lacks and replaces its B and Z rows: B/Z/J
// are the average of their constituent pair's rows (D&N, E&Q, I&L
// respectively, matching the seq package's translate-ambiguity
// reduction), U (selenocysteine) copies the C (cysteine) row as the
// closest biochemical analogue, and GAP scores 0 against everything.
// The X row keeps the published BLOSUM30 values.
func extendAAMatrix(m Matrix) Matrix {
	avg := func(dst, x, y int) {
		for k := range m {
			v := (m[x][k] + m[y][k]) / 2
			m[dst][k] = v
			m[k][dst] = v
		}
	}
	avg(int(seq.AA_B), int(seq.AA_D), int(seq.AA_N))
	avg(int(seq.AA_Z), int(seq.AA_E), int(seq.AA_Q))
	avg(int(seq.AA_J), int(seq.AA_I), int(seq.AA_L))

	uIdx, cIdx := int(seq.AA_U), int(seq.AA_C)
	for k := range m {
		m[uIdx][k] = m[cIdx][k]
		m[k][uIdx] = m[k][cIdx]
	}

	gapIdx := int(seq.AA_GAP)
	for k := range m {
		m[gapIdx][k] = 0
		m[k][gapIdx] = 0
	}
	return m
}
