package seq

// CodingSequence pairs a nucleotide sequence with its translation,
// recomputing the amino-acid view lazily after a mutation rather than
// eagerly on every write. Translation stays a pure function of the
// current nucleotide sequence; this is purely a read-side cache.
//
// Grounded on original_source/src/libseq/CodingSequence.{h,cpp}.
type CodingSequence struct {
	nt    *NTSequence
	aa    *AASequence
	dirty bool
}

// NewCodingSequence wraps nt. nt.Len() must be a multiple of 3.
func NewCodingSequence(nt *NTSequence) *CodingSequence {
	return &CodingSequence{nt: nt, dirty: true}
}

// NTSequence returns the underlying nucleotide sequence.
func (c *CodingSequence) NTSequence() *NTSequence { return c.nt }

// AASequence returns the translation, recomputing it if the
// nucleotide sequence changed since the last call.
func (c *CodingSequence) AASequence() *AASequence {
	if c.dirty {
		c.aa = TranslateAll(c.nt)
		c.dirty = false
	}
	return c.aa
}

// ChangeNucleotide sets nt[pos] = value and marks the translation dirty.
func (c *CodingSequence) ChangeNucleotide(pos int, value Nucleotide) {
	c.nt.Set(pos, value)
	c.dirty = true
}

// WhatIfMutation reports the amino acid encoded at pos before and
// after hypothetically setting nt[pos] = value, without mutating c.
// Returns the reference-AA index of the affected codon.
func (c *CodingSequence) WhatIfMutation(pos int, value Nucleotide) (aaPos int, oldAA, newAA AminoAcid) {
	aaPos = pos / 3
	codonStart := aaPos * 3
	a, b, cc := c.nt.At(codonStart), c.nt.At(codonStart+1), c.nt.At(codonStart+2)
	oldAA = TranslateCodon(a, b, cc)

	switch pos - codonStart {
	case 0:
		a = value
	case 1:
		b = value
	case 2:
		cc = value
	}
	newAA = TranslateCodon(a, b, cc)
	return aaPos, oldAA, newAA
}

// IsSynonymousMutation reports whether setting nt[pos] = value would
// leave the encoded amino acid unchanged.
func (c *CodingSequence) IsSynonymousMutation(pos int, value Nucleotide) bool {
	_, oldAA, newAA := c.WhatIfMutation(pos, value)
	return oldAA == newAA
}
