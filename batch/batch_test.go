package batch

import (
	"context"
	"testing"

	"github.com/rega-cev/virulign/align"
	"github.com/rega-cev/virulign/reference"
	"github.com/rega-cev/virulign/result"
	"github.com/rega-cev/virulign/seq"
)

func testScoring() align.Scoring {
	return align.Scoring{
		GapOpen:      -10.0,
		GapExtension: -3.3,
		NTMatrix:     align.NucleotideMatrix,
		AAMatrix:     align.AminoAcidMatrix,
	}
}

func testRef(t *testing.T, s string) *reference.Reference {
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

func testTarget(t *testing.T, name, s string) *seq.NTSequence {
	t.Helper()
	nt, err := seq.NewNTSequence(name, "", s)
	if err != nil {
		t.Fatal(err)
	}
	return nt
}

func TestRunPreservesOrderAndCount(t *testing.T) {
	ref := testRef(t, "ATGGCTGATCCGCATAAACGTGGTTGTGAAGGCTTTGGATCTAAACCCTTTGGGTTTGAG")
	targets := []*seq.NTSequence{
		testTarget(t, "a", ref.AsString()),
		testTarget(t, "b", ref.AsString()),
		testTarget(t, "c", ref.AsString()),
	}

	results, err := Run(context.Background(), ref, targets, Options{
		Scoring:        testScoring(),
		MaxFrameShifts: 3,
		Workers:        2,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != len(targets) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(targets))
	}
	for i, r := range results {
		if r.Status != result.StatusSuccess {
			t.Errorf("result[%d].Status = %v, want Success", i, r.Status)
		}
	}
}

func TestDuplicateCountsIgnoresCase(t *testing.T) {
	targets := []*seq.NTSequence{
		testTarget(t, "a", "ATGGCT"),
		testTarget(t, "b", "atggct"),
		testTarget(t, "c", "ATGGCC"),
	}
	dups := duplicateCounts(targets)
	if len(dups) != 1 {
		t.Fatalf("duplicateCounts = %v, want exactly one repeated sequence", dups)
	}
	if dups["ATGGCT"] != 2 {
		t.Errorf("duplicateCounts[ATGGCT] = %d, want 2", dups["ATGGCT"])
	}
}

func TestRunContextCancelled(t *testing.T) {
	ref := testRef(t, "ATGGCTGATCCGCATAAACGTGGTTGTGAAGGCTTTGGATCTAAACCCTTTGGGTTTGAG")
	targets := []*seq.NTSequence{testTarget(t, "a", ref.AsString())}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, ref, targets, Options{Scoring: testScoring(), MaxFrameShifts: 3}); err == nil {
		t.Fatal("expected an error from a pre-cancelled context")
	}
}
