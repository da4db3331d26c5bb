package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rega-cev/virulign/align"
	"github.com/rega-cev/virulign/batch"
	"github.com/rega-cev/virulign/export"
	"github.com/rega-cev/virulign/internal/vlog"
	"github.com/rega-cev/virulign/reference"
	"github.com/rega-cev/virulign/seq"
)

// runAlign is RootCmd's RunE: load the reference and targets, run the
// batch aligner, and stream the requested export format to stdout.
//
// Grounded on original_source/src/Virulign.cpp's main: the same
// reference-format dispatch, argument validation, and
// load -> align -> export pipeline, reworked into cobra flags instead
// of a manual argv switch-chain.
func runAlign(cmd *cobra.Command, args []string) error {
	refPath, targetsPath := args[0], args[1]

	ref, err := loadReference(refPath)
	if err != nil {
		return err
	}

	targets, err := loadTargets(targetsPath)
	if err != nil {
		return err
	}

	withRefSeq, err := parseYesNo("exportReferenceSequence", viper.GetString("exportReferenceSequence"))
	if err != nil {
		return err
	}
	if withRefSeq {
		refSeq := ref.Clone()
		targets = append([]*seq.NTSequence{refSeq}, targets...)
	}

	sc := align.Scoring{
		GapOpen:      -viper.GetFloat64("gapOpenPenalty"),
		GapExtension: -viper.GetFloat64("gapExtensionPenalty"),
		NTMatrix:     align.NucleotideMatrix,
		AAMatrix:     align.AminoAcidMatrix,
	}

	progress, err := parseYesNo("progress", viper.GetString("progress"))
	if err != nil {
		return err
	}

	opts := batch.Options{
		Scoring:        sc,
		MaxFrameShifts: viper.GetInt("maxFrameShifts"),
		Workers:        viper.GetInt("threads"),
		Progress:       progress,
		NTDebugDir:     viper.GetString("nt-debug"),
	}

	results, err := batch.Run(cmd.Context(), ref, targets, opts)
	if err != nil {
		return fmt.Errorf("align: %w", err)
	}

	kind, err := parseExportKind(viper.GetString("exportKind"))
	if err != nil {
		return err
	}
	alphabet, err := parseExportAlphabet(viper.GetString("exportAlphabet"))
	if err != nil {
		return err
	}
	withInsertions, err := parseYesNo("exportWithInsertions", viper.GetString("exportWithInsertions"))
	if err != nil {
		return err
	}

	exporter := &export.Exporter{
		Results:        results,
		Ref:            ref,
		Kind:           kind,
		Alphabet:       alphabet,
		WithInsertions: withInsertions,
	}

	if err := exporter.StreamData(os.Stdout); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if kind == export.GlobalAlignment && viper.GetBool("exportConsensus") {
		if err := exporter.StreamConsensusSequence(os.Stdout); err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	return nil
}

func loadReference(path string) (*reference.Reference, error) {
	switch {
	case strings.HasSuffix(path, ".fasta"):
		return reference.LoadFasta(path)
	case strings.HasSuffix(path, ".xml"):
		return reference.LoadXML(path)
	default:
		return nil, fmt.Errorf("unsupported reference sequence format: %s (expected .fasta or .xml)", path)
	}
}

func loadTargets(path string) ([]*seq.NTSequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("targets: %w", err)
	}
	defer f.Close()

	targets, errs := seq.ReadFastaAll(f)
	for _, e := range errs {
		vlog.Warnf("targets: skipping a record: %v", e)
	}
	return targets, nil
}

func parseExportKind(s string) (export.Kind, error) {
	switch s {
	case "Mutations":
		return export.Mutations, nil
	case "PairwiseAlignments":
		return export.PairwiseAlignments, nil
	case "GlobalAlignment":
		return export.GlobalAlignment, nil
	case "PositionTable":
		return export.PositionTable, nil
	case "MutationTable":
		return export.MutationTable, nil
	default:
		return 0, newUsageError("Unkown value %q for parameter : --exportKind", s)
	}
}

func parseExportAlphabet(s string) (export.Alphabet, error) {
	switch s {
	case "AminoAcids":
		return export.AminoAcids, nil
	case "Nucleotides":
		return export.Nucleotides, nil
	default:
		return 0, newUsageError("Unkown value %q for parameter : --exportAlphabet", s)
	}
}

// parseYesNo parses one of virulign's "yes"/"no" flags, matching
// Virulign.cpp's strict validation of these same parameters (anything
// else is a usage error, not a silently-ignored default).
func parseYesNo(flagName, s string) (bool, error) {
	switch {
	case strings.EqualFold(s, "yes"):
		return true, nil
	case strings.EqualFold(s, "no"):
		return false, nil
	default:
		return false, newUsageError("Unkown value %q for parameter : --%s", s, flagName)
	}
}
