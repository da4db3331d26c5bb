// Package cmd implements the command-line interface: flag parsing,
// wiring file loaders to the batch driver and the chosen exporter.
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rega-cev/virulign/internal/vlog"
)

var cfgFile string

// usageError marks an invocation problem -- a wrong argument count, or
// an unrecognized flag or flag value -- as opposed to a failure that
// happened while actually doing the work. Virulign.cpp's manual argv
// parser exit(0)s on exactly these (missing/odd argument counts,
// "Unkown parameter name", "Unkown value ... for parameter"); it
// exit(1)s only on an unsupported reference format or a fatal load
// error. Execute uses this type to route to the matching exit code.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func newUsageError(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// reachedRunE is set once cobra has finished parsing flags and
// arguments and is about to run the command body. Any error surfacing
// before that point (bad argument count, unknown flag) is a usage
// error by construction, whether or not it was built with
// newUsageError.
var reachedRunE bool

// RootCmd is the virulign command; Execute runs it directly rather
// than through a subcommand, since the tool has exactly one job.
var RootCmd = &cobra.Command{
	Use:   "virulign <reference.fasta|reference.xml> <targets.fasta>",
	Short: "Codon-aware pairwise alignment of sequences against an annotated reference ORF",
	Long: `virulign aligns every sequence in targets.fasta against a single annotated
Open Reading Frame (reference.fasta or reference.xml), correcting frameshifts
at codon boundaries, and writes the requested export format to standard out.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return newUsageError("Usage: %s <reference.fasta|reference.xml> <targets.fasta>", cmd.Name())
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		reachedRunE = true
		return runAlign(cmd, args)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default flags only)")

	RootCmd.Flags().String("exportKind", "Mutations", "Mutations, PairwiseAlignments, GlobalAlignment, PositionTable, MutationTable")
	RootCmd.Flags().String("exportAlphabet", "AminoAcids", "AminoAcids, Nucleotides")
	RootCmd.Flags().String("exportWithInsertions", "yes", "yes, no")
	RootCmd.Flags().String("exportReferenceSequence", "no", "no, yes -- prepend the reference itself as a target")
	RootCmd.Flags().Bool("exportConsensus", false, "append a >consensus row to a GlobalAlignment export")
	RootCmd.Flags().Float64("gapExtensionPenalty", 3.3, "affine gap extension penalty (positive)")
	RootCmd.Flags().Float64("gapOpenPenalty", 10.0, "affine gap open penalty (positive)")
	RootCmd.Flags().Int("maxFrameShifts", 3, "maximum number of frameshift repairs attempted per target")
	RootCmd.Flags().String("progress", "no", "no, yes -- report progress and ETA on stderr")
	RootCmd.Flags().Int("threads", 0, "worker goroutines (default: all CPUs)")
	RootCmd.Flags().String("nt-debug", "", "directory to dump plain NT alignments scoring > 200 before the real run")

	viper.BindPFlags(RootCmd.Flags())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			vlog.Warnf("config: %v", err)
		}
	}
}

// Execute runs the root command; main's only responsibility.
//
// Grounded on original_source/src/Virulign.cpp's main: it exits 0 on a
// bad invocation (missing arguments, an unrecognized flag or flag
// value) and 1 on a failure encountered while actually aligning
// (unsupported reference format, an unreadable file, ...).
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}

	var uerr *usageError
	if !reachedRunE || errors.As(err, &uerr) {
		vlog.ExitUsage(err.Error())
		return
	}
	vlog.ExitWithMessage(err)
}
