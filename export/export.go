// Package export renders a batch of result.AlignmentResult values in
// the output formats the tool supports: per-sequence mutation lists,
// pairwise FASTA alignments, a single merged global alignment, and
// two wide CSV tables keyed by reference position.
package export

import (
	"io"

	"github.com/rega-cev/virulign/reference"
	"github.com/rega-cev/virulign/result"
)

// Kind selects which of the five output formats to render.
type Kind int

const (
	Mutations Kind = iota
	PairwiseAlignments
	GlobalAlignment
	PositionTable
	MutationTable
)

// Alphabet selects whether GlobalAlignment/PairwiseAlignments/
// PositionTable render nucleotides or their translated amino acids.
// MutationTable always works on amino acids.
type Alphabet int

const (
	AminoAcids Alphabet = iota
	Nucleotides
)

// Exporter streams a set of results in one Kind/Alphabet combination.
//
// Grounded on original_source/src/ResultsExporter.{h,cpp}.
type Exporter struct {
	Results        []result.AlignmentResult
	Ref            *reference.Reference
	Kind           Kind
	Alphabet       Alphabet
	WithInsertions bool
}

// StreamData writes the selected export format to w.
func (e *Exporter) StreamData(w io.Writer) error {
	switch e.Kind {
	case Mutations:
		return e.streamMutationsCSV(w)
	case PairwiseAlignments:
		return e.streamPairwiseAlignments(w)
	case GlobalAlignment:
		return e.streamGlobalAlignment(w)
	case PositionTable:
		return e.streamPositionTable(w)
	case MutationTable:
		return e.streamMutationTable(w)
	default:
		return nil
	}
}
