package align

import (
	"math"

	"github.com/rega-cev/virulign/seq"
)

// Scoring bundles the nucleotide and amino-acid substitution matrices
// under the shared pair of affine gap costs used by AlignCodon: one
// gap-open/gap-extension pair drives both the nucleotide and the
// amino-acid alignment passes.
type Scoring struct {
	GapOpen      float64
	GapExtension float64
	NTMatrix     Matrix
	AAMatrix     Matrix
}

func (s Scoring) ntParams() Params { return Params{s.GapOpen, s.GapExtension, s.NTMatrix} }
func (s Scoring) aaParams() Params { return Params{s.GapOpen, s.GapExtension, s.AAMatrix} }

// NTParams exposes the plain nucleotide Params this Scoring implies, for
// callers that want a non-codon-aware NT alignment (e.g. the --nt-debug
// pre-pass) without duplicating the gap-cost bundling.
func (s Scoring) NTParams() Params { return s.ntParams() }

// AlignmentError reports that no acceptable alignment could be found.
type AlignmentError struct {
	NTScore, CodonScore       float64
	RefAligned, TargetAligned *seq.NTSequence
	Message                   string
}

func (e *AlignmentError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "alignment error"
}

// FrameShiftError reports that an apparent frameshift could not be
// corrected within the allotted number of retries.
type FrameShiftError struct {
	*AlignmentError
}

func (e *FrameShiftError) Error() string { return "frameshift error" }

const (
	minAcceptableNTScore = 200
	frameShiftTolerance  = 100
	isolationBoundary    = 10
)

// AlignCodon performs a codon-aware pairwise alignment of target
// against ref.
//
// ref must have a length that is a multiple of 3: it is the
// annotated Open Reading Frame. target is translated in each of its 3
// reading frames; the frame whose translation aligns best (by amino
// acid score) against ref's translation is chosen, and that
// amino-acid alignment is projected back onto the nucleotide
// sequences at codon boundaries. If the resulting nucleotide
// alignment score disagrees too much with a plain, non-codon-aware
// nucleotide alignment, an isolated non-triplet gap run is searched
// for and repaired by inserting N's into target, and the whole
// procedure is retried -- up to maxFrameShifts times.
//
// On success, ref and target are overwritten in place with their
// aligned forms, and the returned int is the number of frameshifts
// corrected. On failure, *AlignmentError or *FrameShiftError is
// returned and ref is left untouched; target keeps any N's inserted by
// repair attempts made before the failure.
//
// Grounded on original_source/src/libseq/CodonAlign.cpp.
func AlignCodon(ref, target *seq.NTSequence, sc Scoring, maxFrameShifts int) (float64, int, error) {
	refAA := seq.TranslateAll(ref)

	refNTAligned := ref.Clone()
	targetNTAligned := target.Clone()
	ntScore := AlignNT(refNTAligned, targetNTAligned, sc.ntParams())

	if ntScore < minAcceptableNTScore {
		return 0, 0, &AlignmentError{
			NTScore:       ntScore,
			CodonScore:    0,
			RefAligned:    refNTAligned,
			TargetAligned: targetNTAligned,
			Message:       "alignment error",
		}
	}

	bestFrame := -1
	bestScore := math.Inf(-1)
	var bestRefAA, bestTargetAA *seq.AASequence

	for i := 0; i < 3; i++ {
		last := i + ((target.Len()-i)/3)*3
		targetAA := seq.Translate(target, i, last)
		refCopyAA := refAA.Clone()
		score := AlignAA(refCopyAA, targetAA, sc.aaParams())

		if score > bestScore {
			bestFrame = i
			bestScore = score
			bestRefAA = refCopyAA
			bestTargetAA = targetAA
		}
	}

	refCodonAligned := ref.Clone()
	targetCodonAligned := target.Clone()
	ntCodonScore := alignLikeAA(refCodonAligned, targetCodonAligned, bestFrame, bestRefAA, bestTargetAA, sc)

	if ntScore-ntCodonScore > frameShiftTolerance {
		if maxFrameShifts > 0 {
			if repairFrameShift(refNTAligned, targetNTAligned, target) {
				score, corrected, err := AlignCodon(ref, target, sc, maxFrameShifts-1)
				return score, corrected + 1, err
			}
		}
		return 0, 0, &FrameShiftError{&AlignmentError{
			NTScore:       ntScore,
			CodonScore:    ntCodonScore,
			RefAligned:    refNTAligned,
			TargetAligned: targetNTAligned,
		}}
	}

	ref.Assign(refCodonAligned)
	target.Assign(targetCodonAligned)
	return ntCodonScore, 0, nil
}

// alignLikeAA projects the amino-acid alignment (seqAA1 against
// seqAA2, the translation of target's frame-shifted ORF) back onto
// the nucleotide sequences seq1 (ref) and seq2 (target) by inserting
// a 3-base gap at every codon position where the amino-acid alignment
// shows a gap. orf is the number of leading target bases that fall
// before the chosen reading frame; any trailing target bases that
// didn't form a full codon, plus those leading bases, are spliced back
// in at the alignment's edges rather than discarded.
func alignLikeAA(seq1, seq2 *seq.NTSequence, orf int, seqAA1, seqAA2 *seq.AASequence, sc Scoring) float64 {
	seq2ORFLead := seq2.Slice(0, orf)
	seq2.Delete(0, orf)
	aaLength := seq2.Len() / 3
	seq2ORFEnd := seq2.Slice(aaLength*3, seq2.Len())
	seq2.Delete(aaLength*3, seq2.Len())

	firstNonGap, lastNonGap := -1, -1

	n := seqAA1.Len()
	for i := 0; i < n; i++ {
		if seqAA1.At(i) == seq.AA_GAP && noGapAt(seq1, i) {
			seq1.InsertGaps(i*3, 3)
		}

		if seqAA2.At(i) == seq.AA_GAP && noGapAt(seq2, i) {
			seq2.InsertGaps(i*3, 3)
		} else {
			if firstNonGap == -1 {
				firstNonGap = i * 3
			}
			lastNonGap = i*3 + 3
		}
	}

	for i := 0; i < seq2ORFLead.Len(); i++ {
		if pos := firstNonGap - seq2ORFLead.Len() + i; pos >= 0 {
			seq2.Set(pos, seq2ORFLead.At(i))
		}
	}
	for i := 0; i < seq2ORFEnd.Len(); i++ {
		if pos := lastNonGap + i; pos < seq2.Len() {
			seq2.Set(pos, seq2ORFEnd.At(i))
		}
	}

	return ComputeAlignScore(seq1, seq2, sc.ntParams())
}

// noGapAt reports whether codon i of s (bases [3i, 3i+3)) contains no
// gap. A codon index exactly at s.Len()/3 (one past the last full
// codon) is treated as gap-free: there is nothing there to conflict with.
func noGapAt(s *seq.NTSequence, i int) bool {
	p := i * 3
	if p == s.Len() {
		return true
	}
	return s.At(p) != seq.NT_GAP && s.At(p+1) != seq.NT_GAP && s.At(p+2) != seq.NT_GAP
}

// haveGaps reports whether s contains a GAP anywhere in [from, to),
// clamped to s's bounds.
func haveGaps(s *seq.NTSequence, from, to int) bool {
	if from < 0 {
		from = 0
	}
	end := s.Len()
	if to < end {
		end = to
	}
	for i := from; i < end; i++ {
		if s.At(i) == seq.NT_GAP {
			return true
		}
	}
	return false
}

// repairFrameShift scans the plain nucleotide alignment
// (refNTAligned/targetNTAligned) for the first gap run, in either
// sequence, whose length is not a multiple of 3 and that is isolated
// -- no gaps within isolationBoundary bases on either side, in either
// sequence. If found, it inserts N's into target (the original,
// unaligned sequence) to absorb the frameshift and reports success.
//
// The repair amount is deliberately asymmetric between the two
// sequences, mirroring CodonAlign.cpp exactly: a ref-gap run of
// length L gets 3-(L%3) N's inserted into target, while a
// target-gap run of the same length L gets only L%3 N's. This is not
// a simplification -- both cases are kept bit-for-bit as the original
// computes them.
func repairFrameShift(refNTAligned, targetNTAligned, target *seq.NTSequence) bool {
	const boundary = isolationBoundary
	seq2pos := 0
	refGapStart := 0
	targetGapStart := 0

	n := refNTAligned.Len()
	for i := 0; i < n; i++ {
		if refNTAligned.At(i) == seq.NT_GAP {
			if refGapStart == -1 {
				refGapStart = i
			}
		} else {
			if refGapStart > 0 {
				refGapStop := i
				if (refGapStop-refGapStart)%3 != 0 {
					isolated := !haveGaps(refNTAligned, refGapStart-boundary, refGapStart) &&
						!haveGaps(refNTAligned, refGapStop, refGapStop+boundary) &&
						!haveGaps(targetNTAligned, refGapStart-boundary, refGapStart) &&
						!haveGaps(targetNTAligned, refGapStop, refGapStop+boundary)
					if isolated {
						insertN(target, seq2pos, 3-(refGapStop-refGapStart)%3)
						return true
					}
				}
			}
			refGapStart = -1
		}

		if targetNTAligned.At(i) == seq.NT_GAP {
			if targetGapStart == -1 {
				targetGapStart = i
			}
		} else {
			if targetGapStart > 0 {
				targetGapStop := i
				if (targetGapStop-targetGapStart)%3 != 0 {
					isolated := !haveGaps(refNTAligned, targetGapStart-boundary, targetGapStart) &&
						!haveGaps(refNTAligned, targetGapStop, targetGapStop+boundary) &&
						!haveGaps(targetNTAligned, targetGapStart-boundary, targetGapStart) &&
						!haveGaps(targetNTAligned, targetGapStop, targetGapStop+boundary)
					if isolated {
						insertN(target, seq2pos, (targetGapStop-targetGapStart)%3)
						return true
					}
				}
			}
			targetGapStart = -1
			seq2pos++
		}
	}
	return false
}

func insertN(s *seq.NTSequence, pos, count int) {
	ns := make([]seq.Nucleotide, count)
	for i := range ns {
		ns[i] = seq.NT_N
	}
	s.InsertSymbols(pos, ns)
}
