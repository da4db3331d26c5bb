package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rega-cev/virulign/reference"
	"github.com/rega-cev/virulign/result"
	"github.com/rega-cev/virulign/seq"
)

// sortedAASet reduces an unordered amino-acid set to ascending order,
// mirroring the ordering the original gets for free from
// std::set<AminoAcid>.
func sortedAASet(aas []seq.AminoAcid) []seq.AminoAcid {
	out := append([]seq.AminoAcid(nil), aas...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// alignedAAPos returns the merged-alignment codon index of the
// aapos-th reference-AA position (0-based), walking past gap codons.
//
// Grounded on ResultsExporter.cpp's anonymous alignedAAPos.
func alignedAAPos(s *seq.NTSequence, aapos int) int {
	j, pos := 0, 0
	for pos < aapos && (j+1)*3 < s.Len() {
		if s.At(j * 3) != seq.NT_GAP {
			pos++
		}
		j++
	}
	for (j+1)*3 < s.Len() && s.At(j*3) == seq.NT_GAP {
		j++
	}
	return j
}

// streamPositionTable writes one CSV row per target, one column
// group per reference-AA position (3 nucleotide columns, or 1 amino
// acid column listing every translation the target's codon admits).
//
// Grounded on ResultsExporter.cpp's streamPositionTable.
func (e *Exporter) streamPositionTable(w io.Writer) error {
	if len(e.Results) == 0 {
		return nil
	}
	merged := computeGlobalAlignment(e.Results, e.WithInsertions)
	if merged == nil {
		return nil
	}

	if _, err := io.WriteString(w, "seqid"); err != nil {
		return err
	}
	for _, region := range e.Ref.Regions {
		if err := e.writePositionHeader(w, merged.ref, region); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	for i, t := range merged.targets {
		if _, err := io.WriteString(w, successName(e.Results, i)); err != nil {
			return err
		}
		for _, region := range e.Ref.Regions {
			if err := e.writePositionRow(w, merged.ref, t, region); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writePositionHeader(w io.Writer, globalRef *seq.NTSequence, region reference.Region) error {
	first := alignedAAPos(globalRef, region.Begin)
	last := alignedAAPos(globalRef, region.End-1)

	pos, insert := 0, 0
	for j := first; j <= last; j++ {
		var err error
		if globalRef.At(j*3) != seq.NT_GAP {
			pos++
			insert = 0
			err = writeHeaderLabel(w, region.Prefix, pos, 0, e.Alphabet)
		} else {
			insert++
			err = writeHeaderLabel(w, region.Prefix, pos, insert, e.Alphabet)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeHeaderLabel(w io.Writer, prefix string, pos, insert int, alphabet Alphabet) error {
	label := fmt.Sprintf("%s_%d", prefix, pos)
	if insert > 0 {
		label = fmt.Sprintf("%s_%dins%d", prefix, pos, insert)
	}
	if alphabet == Nucleotides {
		_, err := fmt.Fprintf(w, ",%s_1,%s_2,%s_3", label, label, label)
		return err
	}
	_, err := fmt.Fprintf(w, ",%s", label)
	return err
}

func (e *Exporter) writePositionRow(w io.Writer, globalRef, t *seq.NTSequence, region reference.Region) error {
	first := alignedAAPos(globalRef, region.Begin)
	last := alignedAAPos(globalRef, region.End-1)

	seqLast := last
	for seqLast >= first && t.At(seqLast*3) == seq.NT_GAP {
		seqLast--
	}

	beforeFirst := true
	for j := first; j <= seqLast; j++ {
		if t.At(j*3) == seq.NT_GAP && beforeFirst {
			if err := writeEmptyCell(w, e.Alphabet); err != nil {
				return err
			}
			continue
		}
		beforeFirst = false
		if err := writeCodonCell(w, t, j, e.Alphabet); err != nil {
			return err
		}
	}
	for j := seqLast + 1; j <= last; j++ {
		if err := writeEmptyCell(w, e.Alphabet); err != nil {
			return err
		}
	}
	return nil
}

func writeEmptyCell(w io.Writer, alphabet Alphabet) error {
	if alphabet == Nucleotides {
		_, err := io.WriteString(w, ",,,")
		return err
	}
	_, err := io.WriteString(w, ",")
	return err
}

func writeCodonCell(w io.Writer, s *seq.NTSequence, j int, alphabet Alphabet) error {
	if alphabet == Nucleotides {
		_, err := fmt.Fprintf(w, ",%c,%c,%c", s.At(j*3).Char(), s.At(j*3+1).Char(), s.At(j*3+2).Char())
		return err
	}
	aas := sortedAASet(seq.TranslateCodonAll(s.At(j*3), s.At(j*3+1), s.At(j*3+2)))
	var b strings.Builder
	for _, aa := range aas {
		b.WriteByte(aa.Char())
	}
	_, err := fmt.Fprintf(w, ",%s", b.String())
	return err
}

// streamMutationTable writes a presence/absence ("y"/"n"/empty) CSV
// table: one column per (reference-AA position, amino acid ever
// observed at that position across all targets).
//
// Grounded on ResultsExporter.cpp's streamMutationTable.
func (e *Exporter) streamMutationTable(w io.Writer) error {
	if len(e.Results) == 0 {
		return nil
	}
	merged := computeGlobalAlignment(e.Results, e.WithInsertions)
	if merged == nil {
		return nil
	}

	observed := make([][]seq.AminoAcid, merged.ref.Len()/3)
	for _, t := range merged.targets {
		for j := 0; j < t.Len(); j += 3 {
			for _, aa := range seq.TranslateCodonAll(t.At(j), t.At(j+1), t.At(j+2)) {
				if aa == seq.AA_GAP {
					continue
				}
				observed[j/3] = appendUniqueAA(observed[j/3], aa)
			}
		}
	}

	if _, err := io.WriteString(w, "seqid"); err != nil {
		return err
	}
	for _, region := range e.Ref.Regions {
		first := alignedAAPos(merged.ref, region.Begin)
		last := alignedAAPos(merged.ref, region.End-1)
		pos, insert := 0, 0
		for j := first; j <= last; j++ {
			var varName string
			if merged.ref.At(j*3) != seq.NT_GAP {
				pos++
				insert = 0
				varName = fmt.Sprintf("%s_%d", region.Prefix, pos)
			} else {
				insert++
				varName = fmt.Sprintf("%s_%dins%d", region.Prefix, pos, insert)
			}
			for _, aa := range sortedAASet(observed[j]) {
				if _, err := fmt.Fprintf(w, ",%s%c", varName, aa.Char()); err != nil {
					return err
				}
			}
		}
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	for i, t := range merged.targets {
		if _, err := io.WriteString(w, successName(e.Results, i)); err != nil {
			return err
		}
		for _, region := range e.Ref.Regions {
			first := alignedAAPos(merged.ref, region.Begin)
			last := alignedAAPos(merged.ref, region.End-1)
			seqLast := last
			for seqLast >= first && t.At(seqLast*3) == seq.NT_GAP {
				seqLast--
			}
			beforeFirst := true
			for j := first; j <= last; j++ {
				if t.At(j*3) != seq.NT_GAP {
					beforeFirst = false
				}
				aas := seq.TranslateCodonAll(t.At(j*3), t.At(j*3+1), t.At(j*3+2))
				for _, aa := range sortedAASet(observed[j]) {
					switch {
					case containsAA(aas, aa):
						if _, err := io.WriteString(w, ",y"); err != nil {
							return err
						}
					case beforeFirst || j > seqLast:
						if _, err := io.WriteString(w, ","); err != nil {
							return err
						}
					default:
						if _, err := io.WriteString(w, ",n"); err != nil {
							return err
						}
					}
				}
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func appendUniqueAA(set []seq.AminoAcid, aa seq.AminoAcid) []seq.AminoAcid {
	for _, s := range set {
		if s == aa {
			return set
		}
	}
	return append(set, aa)
}

func containsAA(set []seq.AminoAcid, aa seq.AminoAcid) bool {
	for _, s := range set {
		if s == aa {
			return true
		}
	}
	return false
}

// successName returns the i-th successful result's target name, for
// labeling a merged-alignment row.
func successName(results []result.AlignmentResult, i int) string {
	n := -1
	for _, r := range results {
		if r.Status != result.StatusSuccess {
			continue
		}
		n++
		if n == i {
			return r.AlignedTarget.Name()
		}
	}
	return ""
}
