package result

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rega-cev/virulign/reference"
	"github.com/rega-cev/virulign/seq"
)

// sortedAASet reduces an unordered amino-acid set (as returned by
// seq.TranslateCodonAll) to ascending order, mirroring the ordering
// the original gets for free from std::set<AminoAcid>.
func sortedAASet(aas []seq.AminoAcid) []seq.AminoAcid {
	out := append([]seq.AminoAcid(nil), aas...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Mutations reports the amino-acid differences within region, one
// "<refAA><1-based pos><all observed target AAs>" token per mutated
// position, space-separated.
//
// Grounded on original_source/src/Alignment.cpp's Alignment::mutations.
func (r *AlignmentResult) Mutations(region reference.ProjectedRegion) string {
	fp, lp := region.TargetBegin, region.TargetEnd
	if fp >= lp {
		return ""
	}

	var parts []string
	refPos := -1
	for i := 0; i < r.AlignedRef.Len(); i += 3 {
		if r.AlignedRef.At(i) != seq.NT_GAP {
			refPos++
		}
		if refPos < fp {
			continue
		}
		if refPos > lp {
			break
		}

		refAA := seq.TranslateCodon(r.AlignedRef.At(i), r.AlignedRef.At(i+1), r.AlignedRef.At(i+2))
		targetAAs := sortedAASet(seq.TranslateCodonAll(r.AlignedTarget.At(i), r.AlignedTarget.At(i+1), r.AlignedTarget.At(i+2)))

		if (len(targetAAs) > 1 || targetAAs[0] != refAA) && targetAAs[0] != seq.AA_GAP {
			var b strings.Builder
			b.WriteByte(refAA.Char())
			fmt.Fprintf(&b, "%d", refPos-region.Begin+1)
			for _, aa := range targetAAs {
				b.WriteByte(aa.Char())
			}
			parts = append(parts, b.String())
		}
	}

	return strings.Join(parts, " ")
}

// CodonMutations reports nucleotide-codon-level differences within
// region, skipping incomplete boundary codons (a codon partially
// outside the target's covered span). start/end return the 1-based
// region-relative positions of the first/last codon actually visited
// (-1 if none).
//
// Grounded on original_source/src/Alignment.cpp's
// Alignment::codonMutations, including its boundary-codon skip rules.
func (r *AlignmentResult) CodonMutations(region reference.ProjectedRegion) (mutations string, start, end int) {
	fp := region.Begin
	lp := region.End - 1
	start, end = -1, -1

	if fp >= lp {
		return "", start, end
	}

	var parts []string
	refPos := -1
	for i := 0; i < r.AlignedRef.Len(); i += 3 {
		if r.AlignedRef.At(i) != seq.NT_GAP {
			refPos++
		}
		pos := refPos - region.Begin + 1

		if refPos < fp {
			continue
		}
		if refPos > lp {
			break
		}

		refGap := r.AlignedRef.At(i) == seq.NT_GAP && r.AlignedRef.At(i+1) == seq.NT_GAP && r.AlignedRef.At(i+2) == seq.NT_GAP
		targetGap := r.AlignedTarget.At(i) == seq.NT_GAP && r.AlignedTarget.At(i+1) == seq.NT_GAP && r.AlignedTarget.At(i+2) == seq.NT_GAP

		if targetGap && (refPos < region.TargetBegin || refPos > region.TargetEnd) {
			continue
		}
		if refPos == region.TargetEnd && refGap {
			continue
		}
		// skip incomplete begin codon
		if refPos == region.TargetBegin-1 && r.AlignedTarget.At(i) == seq.NT_GAP {
			continue
		}
		// skip incomplete end codon
		if refPos == region.TargetEnd+1 && r.AlignedTarget.At(i+2) == seq.NT_GAP {
			continue
		}

		if start == -1 {
			start = pos
		}
		end = pos

		mutated := r.AlignedRef.At(i) != r.AlignedTarget.At(i) ||
			r.AlignedRef.At(i+1) != r.AlignedTarget.At(i+1) ||
			r.AlignedRef.At(i+2) != r.AlignedTarget.At(i+2)

		if mutated {
			refAA := seq.TranslateCodon(r.AlignedRef.At(i), r.AlignedRef.At(i+1), r.AlignedRef.At(i+2))
			targetAAs := sortedAASet(seq.TranslateCodonAll(r.AlignedTarget.At(i), r.AlignedTarget.At(i+1), r.AlignedTarget.At(i+2)))

			var b strings.Builder
			b.WriteByte(refAA.Char())
			fmt.Fprintf(&b, "%d", refPos-region.Begin+1)
			for _, aa := range targetAAs {
				b.WriteByte(aa.Char())
			}
			b.WriteByte(';')
			b.WriteByte(r.AlignedRef.At(i).Char())
			b.WriteByte(r.AlignedRef.At(i + 1).Char())
			b.WriteByte(r.AlignedRef.At(i + 2).Char())
			fmt.Fprintf(&b, "%d", pos)
			b.WriteByte(r.AlignedTarget.At(i).Char())
			b.WriteByte(r.AlignedTarget.At(i + 1).Char())
			b.WriteByte(r.AlignedTarget.At(i + 2).Char())

			parts = append(parts, b.String())
		}
	}

	return strings.Join(parts, " "), start, end
}

// SynonymousNucleotideMutations reports, for every single nucleotide
// that differs between reference and target within region, whether
// that substitution alone -- holding the rest of its codon at the
// reference base -- is synonymous. One "<ref><1-based nt pos
// within region><target>:syn|nonsyn" token per differing base,
// space-separated.
//
// Grounded on original_source/src/libseq/CodingSequence.cpp's
// WhatIfMutation/IsSynonymousMutation, the per-base mutation-effect
// check the original uses upstream of its mutation scan.
func (r *AlignmentResult) SynonymousNucleotideMutations(region reference.ProjectedRegion) string {
	fp, lp := region.TargetBegin, region.TargetEnd
	if fp >= lp {
		return ""
	}

	cs := seq.NewCodingSequence(r.AlignedRef)

	var parts []string
	refPos := -1
	for i := 0; i < r.AlignedRef.Len(); i += 3 {
		if r.AlignedRef.At(i) != seq.NT_GAP {
			refPos++
		}
		if refPos < fp {
			continue
		}
		if refPos > lp {
			break
		}

		for k := i; k < i+3; k++ {
			refBase, targetBase := r.AlignedRef.At(k), r.AlignedTarget.At(k)
			if refBase == targetBase || refBase == seq.NT_GAP || targetBase == seq.NT_GAP {
				continue
			}

			label := "nonsyn"
			if cs.IsSynonymousMutation(k, targetBase) {
				label = "syn"
			}

			var b strings.Builder
			b.WriteByte(refBase.Char())
			fmt.Fprintf(&b, "%d", (refPos-region.Begin)*3+(k-i)+1)
			b.WriteByte(targetBase.Char())
			b.WriteByte(':')
			b.WriteString(label)
			parts = append(parts, b.String())
		}
	}

	return strings.Join(parts, " ")
}
