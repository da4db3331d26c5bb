// Package result computes and queries a single pairwise alignment
// outcome: the aligned reference/target pair, its status, and the
// per-region coordinate projections mutations are read from.
package result

import (
	"fmt"

	"github.com/rega-cev/virulign/align"
	"github.com/rega-cev/virulign/reference"
	"github.com/rega-cev/virulign/seq"
)

// Status classifies how an alignment attempt concluded.
type Status int

const (
	StatusSuccess Status = iota
	StatusTooShort
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusTooShort:
		return "too short"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// AlignmentResult is one target's completed (or failed) alignment
// against a shared Reference.
type AlignmentResult struct {
	Ref                  *reference.Reference // shared, read-only
	AlignedRef           *seq.NTSequence      // this result's own copy
	AlignedTarget        *seq.NTSequence
	Status               Status
	Score                float64
	CorrectedFrameshifts int
	FailureMessage       string
	Regions              []reference.ProjectedRegion
}

// minTargetLength mirrors Alignment::compute's bare-minimum length
// check before attempting a codon alignment at all.
const minTargetLength = 6

// Compute aligns target against ref and projects ref's regions onto
// the result. target is modified in place (gaps stripped) to match
// the original's pre-alignment cleanup.
//
// Grounded on original_source/src/Alignment.cpp's Alignment::compute.
func Compute(ref *reference.Reference, target *seq.NTSequence, sc align.Scoring, maxFrameShifts int) AlignmentResult {
	target.StripGaps()

	r := AlignmentResult{Ref: ref}

	alignedRef := ref.Clone()
	alignedTarget := target.Clone()

	if target.Len() > minTargetLength {
		score, corrected, err := align.AlignCodon(alignedRef, alignedTarget, sc, maxFrameShifts)
		if err != nil {
			r.Status = StatusFailure
			r.FailureMessage = err.Error()
		} else {
			r.Score = score
			r.CorrectedFrameshifts = corrected
			r.Status = StatusSuccess
		}
	} else {
		r.Status = StatusTooShort
	}

	r.AlignedRef = alignedRef
	r.AlignedTarget = alignedTarget
	r.Regions = computeProjectedRegions(ref, alignedRef, alignedTarget, r.Status == StatusSuccess)
	return r
}

// Given builds a result from an already-aligned (equal-length) pair,
// skipping the alignment step entirely.
//
// Grounded on original_source/src/Alignment.cpp's Alignment::given.
func Given(ref *reference.Reference, alignedRef, alignedTarget *seq.NTSequence) AlignmentResult {
	r := AlignmentResult{
		Ref:           ref,
		AlignedRef:    alignedRef,
		AlignedTarget: alignedTarget,
		Status:        StatusSuccess,
	}
	r.Regions = computeProjectedRegions(ref, alignedRef, alignedTarget, true)
	return r
}

func computeProjectedRegions(ref *reference.Reference, alignedRef, alignedTarget *seq.NTSequence, success bool) []reference.ProjectedRegion {
	refAALen := ref.AALen()
	out := make([]reference.ProjectedRegion, len(ref.Regions))

	for i, region := range ref.Regions {
		regionEnd := region.End
		if refAALen < regionEnd {
			regionEnd = refAALen
		}

		pr := reference.ProjectedRegion{Region: region}
		if success {
			pr.AlignedBegin = alignedPos(alignedRef, region.Begin)
			pr.AlignedEnd = alignedPos(alignedRef, regionEnd)
			pr.TargetBegin = firstPos(alignedRef, alignedTarget, region.Begin, regionEnd)
			pr.TargetEnd = lastPos(alignedRef, alignedTarget, region.Begin, regionEnd)
		} else {
			pr.AlignedBegin = region.Begin
			pr.AlignedEnd = regionEnd
			pr.TargetBegin = alignedRef.Len()
			pr.TargetEnd = -1
		}
		out[i] = pr
	}
	return out
}

// alignedPos walks alignedRef in codon stride and returns the
// aligned-AA index of the refPos-th non-gap codon.
func alignedPos(alignedRef *seq.NTSequence, refPos int) int {
	j := -1
	for i := 0; i < alignedRef.Len(); i += 3 {
		if alignedRef.At(i) != seq.NT_GAP {
			j++
		}
		if j == refPos {
			return i / 3
		}
	}
	if j == refPos-1 {
		return alignedRef.Len() / 3
	}
	panic(fmt.Sprintf("alignedPos: refPos %d out of range (reference AA length %d)", refPos, j+1))
}

// firstPos returns the smallest reference-AA index r in [begin, end)
// whose target codon is not gapped at its first base; end if none.
func firstPos(alignedRef, alignedTarget *seq.NTSequence, begin, end int) int {
	refPos := -1
	for i := 0; i < alignedRef.Len(); i += 3 {
		if alignedRef.At(i) != seq.NT_GAP {
			refPos++
		}
		if refPos >= begin {
			if refPos >= end {
				return end
			}
			if alignedTarget.At(i) != seq.NT_GAP {
				return refPos
			}
		}
	}
	return end
}

// lastPos returns the largest reference-AA index r in [begin, end)
// whose target codon is not gapped at its third base; -1 if none.
func lastPos(alignedRef, alignedTarget *seq.NTSequence, begin, end int) int {
	refPos := -1
	last := -1
	for i := 0; i < alignedRef.Len(); i += 3 {
		if alignedRef.At(i) != seq.NT_GAP {
			refPos++
		}
		if refPos >= begin {
			if refPos >= end {
				return last
			}
			if alignedTarget.At(i+2) != seq.NT_GAP {
				last = refPos
			}
		}
	}
	return last
}

// FindAminoAcid locates the aligned-AA index of the posInRegion-th
// reference codon of region, followed by exactly insertion
// aligned-AA gap codons. The first return value reports whether
// target actually covers that position.
func (r *AlignmentResult) FindAminoAcid(region reference.ProjectedRegion, posInRegion, insertion int) (withinTarget bool, alignedIndex int) {
	withinTarget = region.TargetBegin < region.TargetEnd &&
		posInRegion >= region.TargetBegin-region.Begin+1 &&
		posInRegion <= region.TargetEnd-region.Begin+1

	pos, gap := 0, 0
	for i := region.AlignedBegin; i < region.AlignedEnd; i++ {
		if r.AlignedRef.At(i*3) != seq.NT_GAP {
			pos++
			gap = 0
		} else {
			gap++
		}

		if pos == posInRegion && gap == insertion &&
			(!withinTarget || r.AlignedTarget.At(i*3) != seq.NT_GAP) {
			return withinTarget, i
		} else if pos > posInRegion {
			return withinTarget, -1
		}
	}
	panic("FindAminoAcid: posInRegion not found within region bounds")
}
