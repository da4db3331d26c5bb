package align

import (
	"testing"

	"github.com/rega-cev/virulign/seq"
)

func ntSeq(t *testing.T, s string) *seq.NTSequence {
	t.Helper()
	n, err := seq.NewNTSequence("x", "", s)
	if err != nil {
		t.Fatalf("NewNTSequence(%q): %v", s, err)
	}
	return n
}

func defaultScoring() Scoring {
	return Scoring{
		GapOpen:      -10.0,
		GapExtension: -3.3,
		NTMatrix:     NucleotideMatrix,
		AAMatrix:     AminoAcidMatrix,
	}
}

// A long in-frame reference and an identical target should align with
// zero frameshifts and no repair, per the length/identity invariants.
func TestAlignCodonIdentitySequence(t *testing.T) {
	ref := ntSeq(t, "ATGGCTGATCCGCATAAACGTGGTTGTGAAGGCTTTGGATCTAAACCCTTTGGGTTTGAG")
	target := ref.Clone()

	score, corrected, err := AlignCodon(ref, target, defaultScoring(), 3)
	if err != nil {
		t.Fatalf("AlignCodon: %v", err)
	}
	if corrected != 0 {
		t.Errorf("corrected = %d, want 0", corrected)
	}
	if ref.Len() != target.Len() {
		t.Errorf("aligned lengths differ: ref=%d target=%d", ref.Len(), target.Len())
	}
	if ref.Len()%3 != 0 {
		t.Errorf("aligned length %d not a multiple of 3", ref.Len())
	}
	if score <= 0 {
		t.Errorf("score = %v, want positive for an identical sequence", score)
	}
}

// The asymmetric N-insertion rule for isolated non-triplet gap runs:
// a gap run in the reference gets 3-(L%3) N's, a gap run in the
// target gets only L%3 N's -- deliberately not harmonized, per
// CodonAlign.cpp's repair loop. This test pins the behavior so a
// future change can't "fix" it into symmetry by accident.
func TestRepairFrameShiftAsymmetricNCount(t *testing.T) {
	// refNTAligned has an isolated 1-base gap run (length%3 == 1) in the
	// reference at a position far from either edge and from any other
	// gap, flanked by isolationBoundary clean bases on both sides.
	refAligned := ntSeq(t, "AAAAAAAAAAAAAAAAAAAA"+"-"+"AAAAAAAAAAAAAAAAAAAA")
	targetAligned := ntSeq(t, "AAAAAAAAAAAAAAAAAAAA"+"A"+"AAAAAAAAAAAAAAAAAAAA")
	target := ntSeq(t, "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")

	fixed := repairFrameShift(refAligned, targetAligned, target)
	if !fixed {
		t.Fatal("repairFrameShift did not find the isolated gap run")
	}
	// ref-gap run length 1 -> inserts 3-(1%3) = 2 N's.
	if target.Len() != 41+2 {
		t.Errorf("target length after ref-gap repair = %d, want %d", target.Len(), 41+2)
	}

	// Same scenario but the isolated gap run sits in the target instead.
	refAligned2 := ntSeq(t, "AAAAAAAAAAAAAAAAAAAA"+"A"+"AAAAAAAAAAAAAAAAAAAA")
	targetAligned2 := ntSeq(t, "AAAAAAAAAAAAAAAAAAAA"+"-"+"AAAAAAAAAAAAAAAAAAAA")
	target2 := ntSeq(t, "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")

	fixed2 := repairFrameShift(refAligned2, targetAligned2, target2)
	if !fixed2 {
		t.Fatal("repairFrameShift did not find the isolated target-gap run")
	}
	// target-gap run length 1 -> inserts 1%3 = 1 N, not 3-(1%3).
	if target2.Len() != 40+1 {
		t.Errorf("target length after target-gap repair = %d, want %d", target2.Len(), 40+1)
	}
}

func TestNoGapAt(t *testing.T) {
	s := ntSeq(t, "ATG---")
	if !noGapAt(s, 0) {
		t.Error("noGapAt(0) on ATG should be true (no gap)")
	}
	if noGapAt(s, 1) {
		t.Error("noGapAt(1) on --- should report a gap (false expected)")
	}
	// codon index exactly at one-past-end is vacuously gap-free.
	if !noGapAt(s, 2) {
		t.Error("noGapAt at s.Len()/3 boundary should be true")
	}
}

func TestHaveGaps(t *testing.T) {
	s := ntSeq(t, "AA-AA")
	if !haveGaps(s, 0, 5) {
		t.Error("haveGaps(0,5) should find the gap at index 2")
	}
	if haveGaps(s, 0, 2) {
		t.Error("haveGaps(0,2) should not find a gap")
	}
	// out-of-range bounds are clamped, not a panic.
	if haveGaps(s, -20, 1) {
		t.Error("haveGaps with negative from should clamp to 0")
	}
}

// A too-short/too-dissimilar pair should fail the floor score check
// with an *AlignmentError before any codon-level work happens.
func TestAlignCodonTooShortFails(t *testing.T) {
	ref := ntSeq(t, "ATGGCT")
	target := ntSeq(t, "TTTTTT")

	_, _, err := AlignCodon(ref, target, defaultScoring(), 1)
	if err == nil {
		t.Fatal("expected an AlignmentError for a too-dissimilar short pair")
	}
	if _, ok := err.(*AlignmentError); !ok {
		t.Errorf("err = %T, want *AlignmentError", err)
	}
}
