package seq

// standardCode maps a concrete (non-ambiguous, non-gap) triplet of
// nucleotide characters to the amino acid character it encodes. This
// is the standard genetic code table. Reused from the teacher
// repo's align/const.go standardcode map (fredericlemoine-goalign),
// which carries the same table keyed by rune values.
var standardCode = map[[3]Nucleotide]AminoAcid{}

func init() {
	table := map[string]byte{
		"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
		"TTA": 'L', "TTG": 'L', "CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
		"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R', "AGA": 'R', "AGG": 'R',
		"AAA": 'K', "AAG": 'K',
		"AAT": 'N', "AAC": 'N',
		"ATG": 'M',
		"GAT": 'D', "GAC": 'D',
		"TTT": 'F', "TTC": 'F',
		"TGT": 'C', "TGC": 'C',
		"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
		"CAA": 'Q', "CAG": 'Q',
		"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S', "AGT": 'S', "AGC": 'S',
		"GAA": 'E', "GAG": 'E',
		"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
		"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
		"TGG": 'W',
		"CAT": 'H', "CAC": 'H',
		"TAT": 'Y', "TAC": 'Y',
		"ATT": 'I', "ATC": 'I', "ATA": 'I',
		"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
		"TAA": '*', "TGA": '*', "TAG": '*',
	}
	for tri, aaChar := range table {
		n0, _ := NewNucleotide(tri[0])
		n1, _ := NewNucleotide(tri[1])
		n2, _ := NewNucleotide(tri[2])
		aa, _ := NewAminoAcid(aaChar)
		standardCode[[3]Nucleotide{n0, n1, n2}] = aa
	}
}

// translateConcrete translates one expanded triplet. A triplet that
// still carries a GAP after expansion (possible when only one or two
// positions of the original codon were gapped) translates to X, not a
// table lookup, mirroring the source's single-codon translate().
func translateConcrete(a, b, c Nucleotide) AminoAcid {
	if a == NT_GAP || b == NT_GAP || c == NT_GAP {
		return AA_X
	}
	return standardCode[[3]Nucleotide{a, b, c}]
}

func contains(set []AminoAcid, aa AminoAcid) bool {
	for _, x := range set {
		if x == aa {
			return true
		}
	}
	return false
}

// TranslateCodonAll expands a possibly-ambiguous codon to every
// concrete triplet it represents and translates each, returning the
// set of distinct amino acids observed (duplicates removed, order
// unspecified). An all-gap codon yields {GAP}.
func TranslateCodonAll(a, b, c Nucleotide) []AminoAcid {
	if a == NT_GAP && b == NT_GAP && c == NT_GAP {
		return []AminoAcid{AA_GAP}
	}
	as := a.NonAmbiguousNucleotides()
	bs := b.NonAmbiguousNucleotides()
	cs := c.NonAmbiguousNucleotides()

	var result []AminoAcid
	for _, x := range as {
		for _, y := range bs {
			for _, z := range cs {
				aa := translateConcrete(x, y, z)
				if !contains(result, aa) {
					result = append(result, aa)
				}
			}
		}
	}
	return result
}

// TranslateCodon translates one codon (three nucleotides) to an amino
// acid, following the ambiguity-aware reduction rule:
//   - all three positions gap -> GAP
//   - any position ambiguous or gap (not all-gap) -> expand, translate
//     each, reduce: size 1 -> that AA; size 2 -> B/Z/J if the pair
//     matches one of those classes, else X; size >= 3 -> X
//   - else -> direct table lookup
func TranslateCodon(a, b, c Nucleotide) AminoAcid {
	if a == NT_GAP && b == NT_GAP && c == NT_GAP {
		return AA_GAP
	}
	if a.IsAmbiguity() || b.IsAmbiguity() || c.IsAmbiguity() ||
		a == NT_GAP || b == NT_GAP || c == NT_GAP {
		possibilities := TranslateCodonAll(a, b, c)
		switch len(possibilities) {
		case 1:
			return possibilities[0]
		case 2:
			switch {
			case contains(possibilities, AA_D) && contains(possibilities, AA_N):
				return AA_B
			case contains(possibilities, AA_E) && contains(possibilities, AA_Q):
				return AA_Z
			case contains(possibilities, AA_I) && contains(possibilities, AA_L):
				return AA_J
			default:
				return AA_X
			}
		default:
			return AA_X
		}
	}
	return translateConcrete(a, b, c)
}
