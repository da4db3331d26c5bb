package seq

import "testing"

func mustNT(t *testing.T, c byte) Nucleotide {
	t.Helper()
	n, err := NewNucleotide(c)
	if err != nil {
		t.Fatalf("NewNucleotide(%q): %v", c, err)
	}
	return n
}

func TestTranslateCodonConcrete(t *testing.T) {
	cases := []struct {
		codon string
		want  byte
	}{
		{"ATG", 'M'},
		{"TAA", '*'},
		{"GCT", 'A'},
		{"---", '-'},
	}
	for _, c := range cases {
		aa := TranslateCodon(mustNT(t, c.codon[0]), mustNT(t, c.codon[1]), mustNT(t, c.codon[2]))
		if aa.Char() != c.want {
			t.Errorf("TranslateCodon(%s) = %c, want %c", c.codon, aa.Char(), c.want)
		}
	}
}

func TestTranslateCodonAmbiguityReduction(t *testing.T) {
	// GAT=D, AAT=N -> RAT ambiguous first base expands to {D,N} -> B
	aa := TranslateCodon(mustNT(t, 'R'), mustNT(t, 'A'), mustNT(t, 'T'))
	if aa != AA_B {
		t.Errorf("RAT -> %c, want B", aa.Char())
	}

	// NNN expands to 4*4*4=64 concrete codons -> far more than 2 distinct AAs -> X
	aa = TranslateCodon(mustNT(t, 'N'), mustNT(t, 'N'), mustNT(t, 'N'))
	if aa != AA_X {
		t.Errorf("NNN -> %c, want X", aa.Char())
	}

	// all-gap -> GAP
	aa = TranslateCodon(NT_GAP, NT_GAP, NT_GAP)
	if aa != AA_GAP {
		t.Errorf("--- -> %c, want GAP", aa.Char())
	}

	// partial gap (not all three) -> X, per spec even though it isn't
	// a size>=3 ambiguity case: single concrete triplet candidate is
	// itself gap-bearing and reduces to X.
	aa = TranslateCodon(NT_GAP, mustNT(t, 'A'), mustNT(t, 'T'))
	if aa != AA_X {
		t.Errorf("-AT -> %c, want X", aa.Char())
	}
}

func TestAmbiguityContainment(t *testing.T) {
	// property 6: TranslateCodonAll(t) always contains TranslateCodon(t')
	// for every concrete expansion t' of t.
	codon := [3]Nucleotide{mustNT(t, 'R'), mustNT(t, 'Y'), mustNT(t, 'A')}
	all := TranslateCodonAll(codon[0], codon[1], codon[2])

	for _, a := range codon[0].NonAmbiguousNucleotides() {
		for _, b := range codon[1].NonAmbiguousNucleotides() {
			for _, c := range codon[2].NonAmbiguousNucleotides() {
				want := TranslateCodon(a, b, c)
				if !contains(all, want) {
					t.Errorf("TranslateCodonAll(RYA) = %v missing %c from concrete expansion %c%c%c",
						all, want.Char(), a.Char(), b.Char(), c.Char())
				}
			}
		}
	}
}

func TestReverseComplementInvolution(t *testing.T) {
	s, err := NewNTSequence("x", "", "ACGTMRWSYKVHDBN-")
	if err != nil {
		t.Fatal(err)
	}
	rc := s.ReverseComplement().ReverseComplement()
	if rc.AsString() != s.AsString() {
		t.Errorf("reverseComplement(reverseComplement(s)) = %s, want %s", rc.AsString(), s.AsString())
	}
}

func TestSingleNucleotide(t *testing.T) {
	r := SingleNucleotide([]Nucleotide{mustNT(t, 'A'), mustNT(t, 'G')})
	if r != NT_R {
		t.Errorf("SingleNucleotide(A,G) = %c, want R", r.Char())
	}
	r = SingleNucleotide([]Nucleotide{mustNT(t, 'A'), NT_GAP})
	if r != NT_A {
		t.Errorf("SingleNucleotide(A,-) = %c, want A (gap dropped)", r.Char())
	}
}
