package seq

import "strings"

// AASequence is a named amino-acid sequence: a private slice with
// explicit accessor/mutator methods, not an embedded container.
type AASequence struct {
	name        string
	description string
	residues    []AminoAcid
}

// NewAASequenceFilled builds a sequence of the given length filled with X.
func NewAASequenceFilled(size int) *AASequence {
	r := make([]AminoAcid, size)
	for i := range r {
		r[i] = AA_X
	}
	return &AASequence{residues: r}
}

func (s *AASequence) Name() string           { return s.name }
func (s *AASequence) SetName(n string)       { s.name = n }
func (s *AASequence) Len() int               { return len(s.residues) }
func (s *AASequence) At(i int) AminoAcid     { return s.residues[i] }
func (s *AASequence) Set(i int, a AminoAcid) { s.residues[i] = a }
func (s *AASequence) Residues() []AminoAcid  { return s.residues }

// InsertGap inserts a single GAP residue at position pos (pos may equal Len()).
func (s *AASequence) InsertGap(pos int) {
	s.residues = append(s.residues[:pos:pos], append([]AminoAcid{AA_GAP}, s.residues[pos:]...)...)
}

// Clone returns a deep copy.
func (s *AASequence) Clone() *AASequence {
	r := make([]AminoAcid, len(s.residues))
	copy(r, s.residues)
	return &AASequence{name: s.name, description: s.description, residues: r}
}

// AsString renders the sequence as an uppercase character string.
func (s *AASequence) AsString() string {
	var b strings.Builder
	b.Grow(len(s.residues))
	for _, a := range s.residues {
		b.WriteByte(a.Char())
	}
	return b.String()
}

// Translate translates a whole-codon range [begin,end) of nt into an
// amino acid sequence; len(nt.Bases()[begin:end]) must be a multiple
// of 3.
func Translate(nt *NTSequence, begin, end int) *AASequence {
	n := (end - begin) / 3
	result := &AASequence{name: nt.Name(), description: nt.Description(), residues: make([]AminoAcid, n)}
	for i := 0; i < n; i++ {
		p := begin + i*3
		result.residues[i] = translateWith(nt, p)
	}
	return result
}

// TranslateAll translates a whole nucleotide sequence (length must be
// a multiple of 3).
func TranslateAll(nt *NTSequence) *AASequence {
	return Translate(nt, 0, nt.Len())
}

func translateWith(nt *NTSequence, p int) AminoAcid {
	return TranslateCodon(nt.At(p), nt.At(p+1), nt.At(p+2))
}
