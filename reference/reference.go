// Package reference loads and represents the annotated Open Reading
// Frame that targets are aligned against.
package reference

import "github.com/rega-cev/virulign/seq"

// Region is a named AA-coordinate sub-interval of a Reference. Begin
// and End are static, set at load time; the four Aligned*/Target*
// fields are populated per-result by the caller after alignment
// (kept apart from the static definition rather than mutated in
// place, since a Reference is shared read-only across concurrent
// alignments).
type Region struct {
	Prefix string
	Begin  int // AA position, inclusive
	End    int // AA position, exclusive
}

// ProjectedRegion is a Region's per-alignment coordinate projection.
type ProjectedRegion struct {
	Region
	AlignedBegin int // AA index into the aligned reference
	AlignedEnd   int
	TargetBegin  int // reference-AA position of first target-non-gap codon in region
	TargetEnd    int // reference-AA position of last target-non-gap codon in region
}

// Reference is the annotated ORF: an in-frame nucleotide sequence
// (length a multiple of 3) plus its named regions.
type Reference struct {
	*seq.NTSequence
	Regions []Region
}

// AALen returns the reference's length in amino acids.
func (r *Reference) AALen() int { return r.Len() / 3 }
