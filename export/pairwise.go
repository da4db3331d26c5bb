package export

import (
	"io"

	"github.com/rega-cev/virulign/seq"
)

// streamPairwiseAlignments writes, for every target, its own
// reference/target FASTA pair -- each target keeps the gap pattern
// from its own alignment rather than being merged into a shared
// global coordinate system (that's GlobalAlignment's job).
//
// Grounded on ResultsExporter.cpp's streamPairwiseAlignments.
func (e *Exporter) streamPairwiseAlignments(w io.Writer) error {
	for _, r := range e.Results {
		ref := r.AlignedRef
		target := r.AlignedTarget

		refOut := ref.Clone()
		refOut.SetDescription(refOut.Description() + " aligned for " + target.Name())

		if e.Alphabet == Nucleotides {
			if err := seq.WriteFasta(w, refOut, 70); err != nil {
				return err
			}
			if err := seq.WriteFasta(w, target, 70); err != nil {
				return err
			}
		} else {
			if err := seq.WriteFastaAA(w, seq.TranslateAll(refOut), 70); err != nil {
				return err
			}
			if err := seq.WriteFastaAA(w, seq.TranslateAll(target), 70); err != nil {
				return err
			}
		}
	}
	return nil
}
