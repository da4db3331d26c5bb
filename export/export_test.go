package export

import (
	"strings"
	"testing"

	"github.com/rega-cev/virulign/align"
	"github.com/rega-cev/virulign/reference"
	"github.com/rega-cev/virulign/result"
	"github.com/rega-cev/virulign/seq"
)

func scoring() align.Scoring {
	return align.Scoring{
		GapOpen:      -10.0,
		GapExtension: -3.3,
		NTMatrix:     align.NucleotideMatrix,
		AAMatrix:     align.AminoAcidMatrix,
	}
}

func buildRef(t *testing.T, s string) *reference.Reference {
	t.Helper()
	nt, err := seq.NewNTSequence("ref", "ref", s)
	if err != nil {
		t.Fatal(err)
	}
	return &reference.Reference{
		NTSequence: nt,
		Regions:    []reference.Region{{Prefix: "P", Begin: 0, End: nt.Len() / 3}},
	}
}

func computeResult(t *testing.T, ref *reference.Reference, name, s string) result.AlignmentResult {
	t.Helper()
	target, err := seq.NewNTSequence(name, "", s)
	if err != nil {
		t.Fatal(err)
	}
	return result.Compute(ref, target, scoring(), 3)
}

func TestStreamMutationsCSVHeaderAndIdentityRow(t *testing.T) {
	ref := buildRef(t, "ATGGCTGATCCGCATAAACGTGGTTGTGAAGGCTTTGGATCTAAACCCTTTGGGTTTGAG")
	r := computeResult(t, ref, "t1", ref.AsString())

	e := &Exporter{Results: []result.AlignmentResult{r}, Ref: ref, Kind: Mutations}
	var buf strings.Builder
	if err := e.StreamData(&buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "seqid,status,score,frameshifts,begin,end,mutations,synNt" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "t1,Success,") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestStreamPairwiseAlignmentsNucleotides(t *testing.T) {
	ref := buildRef(t, "ATGGCTGATCCGCATAAACGT")
	r := computeResult(t, ref, "t1", ref.AsString())

	e := &Exporter{Results: []result.AlignmentResult{r}, Ref: ref, Kind: PairwiseAlignments, Alphabet: Nucleotides}
	var buf strings.Builder
	if err := e.StreamData(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), ">ref") || !strings.Contains(buf.String(), ">t1") {
		t.Errorf("output missing expected FASTA headers: %q", buf.String())
	}
}

func TestStreamGlobalAlignmentTwoIdenticalTargets(t *testing.T) {
	ref := buildRef(t, "ATGGCTGATCCGCATAAACGTGGTTGTGAAGGCTTTGGATCTAAACCCTTTGGGTTTGAG")
	r1 := computeResult(t, ref, "t1", ref.AsString())
	r2 := computeResult(t, ref, "t2", ref.AsString())

	e := &Exporter{Results: []result.AlignmentResult{r1, r2}, Ref: ref, Kind: GlobalAlignment, Alphabet: Nucleotides, WithInsertions: true}
	var buf strings.Builder
	if err := e.StreamData(&buf); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), ">") != 2 {
		t.Errorf("expected exactly 2 FASTA records, got: %q", buf.String())
	}
}

func TestAlignedAAPosSkipsGapColumns(t *testing.T) {
	s, err := seq.NewNTSequence("x", "", "---ATGCTGTTTATG")
	if err != nil {
		t.Fatal(err)
	}
	if got := alignedAAPos(s, 0); got != 1 {
		t.Errorf("alignedAAPos(s, 0) = %d, want 1", got)
	}
}
