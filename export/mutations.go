package export

import (
	"fmt"
	"io"

	"github.com/rega-cev/virulign/result"
)

// streamMutationsCSV writes one row per target: its status, score,
// corrected-frameshift count, and, per reference region, the
// 1-based [begin,end] span the target actually covers plus its
// amino-acid mutation list.
//
// Grounded on ResultsExporter.cpp's streamMutationsCsv.
func (e *Exporter) streamMutationsCSV(w io.Writer) error {
	if len(e.Results) == 0 {
		return nil
	}

	regions := e.Ref.Regions
	if _, err := io.WriteString(w, "seqid,status,score,frameshifts"); err != nil {
		return err
	}
	for _, region := range regions {
		prefix := ""
		if len(regions) > 1 {
			prefix = " " + region.Prefix
		}
		if _, err := fmt.Fprintf(w, ",begin%s,end%s,mutations%s,synNt%s", prefix, prefix, prefix, prefix); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	for _, r := range e.Results {
		if err := e.streamMutationsRow(w, r); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) streamMutationsRow(w io.Writer, r result.AlignmentResult) error {
	if _, err := fmt.Fprintf(w, "%s,%s", r.AlignedTarget.Name(), statusLabel(r.Status)); err != nil {
		return err
	}

	if r.Status != result.StatusSuccess {
		if _, err := io.WriteString(w, ",,"); err != nil {
			return err
		}
		for range r.Regions {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	if _, err := fmt.Fprintf(w, ",%g,%d", r.Score, r.CorrectedFrameshifts); err != nil {
		return err
	}

	for _, region := range r.Regions {
		if region.TargetBegin < region.TargetEnd {
			if _, err := fmt.Fprintf(w, ",%d,%d", region.TargetBegin-region.Begin+1, region.TargetEnd-region.Begin+1); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, ",%s", r.Mutations(region)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, ",%s", r.SynonymousNucleotideMutations(region)); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// statusLabel mirrors the original's status->string mapping: an
// alignment that isn't Success is reported as FailTooShort or
// Failure depending on result.Status, never a generic label.
func statusLabel(s result.Status) string {
	switch s {
	case result.StatusSuccess:
		return "Success"
	case result.StatusTooShort:
		return "FailTooShort"
	default:
		return "Failure"
	}
}
