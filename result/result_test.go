package result

import (
	"testing"

	"github.com/rega-cev/virulign/align"
	"github.com/rega-cev/virulign/reference"
	"github.com/rega-cev/virulign/seq"
)

func mustRef(t *testing.T, s string) *reference.Reference {
	t.Helper()
	nt, err := seq.NewNTSequence("ref", "", s)
	if err != nil {
		t.Fatal(err)
	}
	return &reference.Reference{
		NTSequence: nt,
		Regions:    []reference.Region{{Prefix: "P", Begin: 0, End: nt.Len() / 3}},
	}
}

func defaultScoring() align.Scoring {
	return align.Scoring{
		GapOpen:      -10.0,
		GapExtension: -3.3,
		NTMatrix:     align.NucleotideMatrix,
		AAMatrix:     align.AminoAcidMatrix,
	}
}

// Identity property (§8): aligning a target equal to the reference
// yields Success, zero mutations, zero corrected frameshifts.
func TestComputeIdentityAlignment(t *testing.T) {
	ref := mustRef(t, "ATGGCTGATCCGCATAAACGTGGTTGTGAAGGCTTTGGATCTAAACCCTTTGGGTTTGAG")
	target, err := seq.NewNTSequence("t1", "", ref.AsString())
	if err != nil {
		t.Fatal(err)
	}

	r := Compute(ref, target, defaultScoring(), 3)
	if r.Status != StatusSuccess {
		t.Fatalf("Status = %v, want Success", r.Status)
	}
	if r.CorrectedFrameshifts != 0 {
		t.Errorf("CorrectedFrameshifts = %d, want 0", r.CorrectedFrameshifts)
	}
	if got := r.Mutations(r.Regions[0]); got != "" {
		t.Errorf("Mutations = %q, want empty for an identical target", got)
	}
}

func TestComputeTooShort(t *testing.T) {
	ref := mustRef(t, "ATGGCTGATCCGCATAAACGT")
	target, err := seq.NewNTSequence("t1", "", "ATG")
	if err != nil {
		t.Fatal(err)
	}

	r := Compute(ref, target, defaultScoring(), 1)
	if r.Status != StatusTooShort {
		t.Fatalf("Status = %v, want TooShort", r.Status)
	}
}

// A synonymous third-position wobble (GGT -> GGC, both Gly) must be
// labeled "syn"; a nonsynonymous first-position change in the next
// codon (GCT -> CCT) must be labeled "nonsyn". Both sequences share a
// long identical tail so the target clears the length and score floors.
func TestSynonymousNucleotideMutations(t *testing.T) {
	const tail = "ATGGCTGATCCGCATAAACGTGGTTGTGAAGGCTTTGGATCTAAACCCTTTGGGTTTGAG"
	ref := mustRef(t, "GGTGCT"+tail) // Gly Ala ...
	target, err := seq.NewNTSequence("t1", "", "GGCCCT"+tail) // Gly(syn) Pro(nonsyn) ...
	if err != nil {
		t.Fatal(err)
	}

	r := Compute(ref, target, defaultScoring(), 1)
	if r.Status != StatusSuccess {
		t.Fatalf("Status = %v, want Success", r.Status)
	}

	got := r.SynonymousNucleotideMutations(r.Regions[0])
	want := "T3C:syn G4C:nonsyn"
	if got != want {
		t.Errorf("SynonymousNucleotideMutations = %q, want %q", got, want)
	}
}

func TestMutationsEmptyWhenTargetBeginGEEnd(t *testing.T) {
	ref := mustRef(t, "ATGGCTGATCCGCATAAACGT")
	r := &AlignmentResult{AlignedRef: ref.NTSequence, AlignedTarget: ref.NTSequence}
	region := reference.ProjectedRegion{
		Region:      ref.Regions[0],
		TargetBegin: 5,
		TargetEnd:   2, // begin >= end -> no coverage
	}
	if got := r.Mutations(region); got != "" {
		t.Errorf("Mutations = %q, want empty", got)
	}
}
