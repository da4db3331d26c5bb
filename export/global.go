package export

import (
	"io"

	"github.com/rega-cev/virulign/result"
	"github.com/rega-cev/virulign/seq"
)

// mergedAlignment is the shared-coordinate result of computeGlobalAlignment:
// a reference sequence (with gaps inserted wherever any target needed
// an insertion) and one target sequence per successful result,
// each the same length as ref.
type mergedAlignment struct {
	ref     *seq.NTSequence
	targets []*seq.NTSequence
}

// computeGlobalAlignment folds every successful result's own pairwise
// alignment into one shared coordinate system. Starting from the
// first result's reference, each subsequent (ref, target) pair is
// merged in by alignToGlobal, which either widens the shared
// reference (and every target merged so far) with a new gap column,
// or -- when withInsertions is false -- drops the target-specific
// insertion instead.
//
// Grounded on ResultsExporter.cpp's computeGlobalAlignment/
// alignToGlobalAlignment.
func computeGlobalAlignment(results []result.AlignmentResult, withInsertions bool) *mergedAlignment {
	if len(results) == 0 {
		return nil
	}

	globalRef := results[0].AlignedRef.Clone()
	if !withInsertions {
		globalRef.StripGaps()
	} else {
		trimEdgeGaps(globalRef)
	}

	var targets []*seq.NTSequence
	for _, r := range results {
		if r.Status != result.StatusSuccess {
			continue
		}
		ref := r.AlignedRef.Clone()
		target := r.AlignedTarget.Clone()
		trimEdgeGapsPair(ref, target)

		alignToGlobal(globalRef, &targets, ref, target, withInsertions)
		targets = append(targets, target)
	}

	return &mergedAlignment{ref: globalRef, targets: targets}
}

// trimEdgeGaps removes leading and trailing (but not interior) gap
// columns from s.
func trimEdgeGaps(s *seq.NTSequence) {
	for s.Len() > 0 && s.At(0) == seq.NT_GAP {
		s.Delete(0, 1)
	}
	for s.Len() > 0 && s.At(s.Len()-1) == seq.NT_GAP {
		s.Delete(s.Len()-1, s.Len())
	}
}

// trimEdgeGapsPair removes leading/trailing columns where ref is
// gapped, deleting the same column from target in lockstep.
func trimEdgeGapsPair(ref, target *seq.NTSequence) {
	for ref.Len() > 0 && ref.At(0) == seq.NT_GAP {
		ref.Delete(0, 1)
		target.Delete(0, 1)
	}
	for ref.Len() > 0 && ref.At(ref.Len()-1) == seq.NT_GAP {
		ref.Delete(ref.Len()-1, ref.Len())
		target.Delete(target.Len()-1, target.Len())
	}
}

// alignToGlobal reconciles one more (ref, target) pair into
// globalRef's coordinate system in place.
func alignToGlobal(globalRef *seq.NTSequence, globalTargets *[]*seq.NTSequence, ref, target *seq.NTSequence, withInsertions bool) {
	maxLen := func() int {
		if globalRef.Len() > ref.Len() {
			return globalRef.Len()
		}
		return ref.Len()
	}

	for i := 0; i < maxLen(); i++ {
		if i < globalRef.Len() && i < ref.Len() && globalRef.At(i) == ref.At(i) {
			continue
		}

		if i < globalRef.Len() && globalRef.At(i) == seq.NT_GAP {
			ref.InsertGaps(i, 1)
			target.InsertGaps(i, 1)
		} else if withInsertions {
			globalRef.InsertGaps(i, 1)
			for _, t := range *globalTargets {
				t.InsertGaps(i, 1)
			}
		} else {
			ref.Delete(i, i+1)
			target.Delete(i, i+1)
			i--
		}
	}
}

// streamGlobalAlignment writes every target's merged-coordinate
// sequence as FASTA, nucleotide or translated amino acid per
// e.Alphabet.
func (e *Exporter) streamGlobalAlignment(w io.Writer) error {
	merged := computeGlobalAlignment(e.Results, e.WithInsertions)
	if merged == nil {
		return nil
	}

	for _, t := range merged.targets {
		var err error
		if e.Alphabet == Nucleotides {
			err = seq.WriteFasta(w, t, 70)
		} else {
			err = seq.WriteFastaAA(w, seq.TranslateAll(t), 70)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// StreamConsensusSequence writes a single ">consensus" FASTA record:
// at each merged-alignment column, the ambiguity code covering every
// observed base across all targets (seq.SingleNucleotide).
//
// Grounded on ResultsExporter.cpp's streamConsensusSequence.
func (e *Exporter) StreamConsensusSequence(w io.Writer) error {
	merged := computeGlobalAlignment(e.Results, e.WithInsertions)
	if merged == nil {
		return nil
	}

	if _, err := io.WriteString(w, ">consensus\n"); err != nil {
		return err
	}

	var line []byte
	for pos := 0; pos < merged.ref.Len(); pos++ {
		seen := make([]seq.Nucleotide, 0, len(merged.targets))
		for _, t := range merged.targets {
			seen = appendUnique(seen, t.At(pos))
		}
		line = append(line, seq.SingleNucleotide(seen).Char())
	}
	line = append(line, '\n')
	_, err := w.Write(line)
	return err
}

func appendUnique(set []seq.Nucleotide, n seq.Nucleotide) []seq.Nucleotide {
	for _, s := range set {
		if s == n {
			return set
		}
	}
	return append(set, n)
}
