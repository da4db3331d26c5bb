// Package batch drives result.Compute concurrently over many targets
// against a single shared Reference.
package batch

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/armon/go-radix"
	"github.com/cheggaaa/pb/v3"
	"golang.org/x/sync/errgroup"

	"github.com/rega-cev/virulign/align"
	"github.com/rega-cev/virulign/internal/vlog"
	"github.com/rega-cev/virulign/reference"
	"github.com/rega-cev/virulign/result"
	"github.com/rega-cev/virulign/seq"
)

// Options configures a Run.
type Options struct {
	Scoring        align.Scoring
	MaxFrameShifts int

	// Workers bounds concurrent alignments; <= 0 means runtime.NumCPU().
	Workers int

	// Progress enables the per-target ETA line on stderr.
	Progress bool

	// NTDebugDir, if non-empty, receives one FASTA file per target
	// whose plain (non-codon-aware) nucleotide alignment against ref
	// scores above minAcceptableNTScore -- a pre-pass used to spot
	// targets that are "alignable but not translatable" before the
	// real batch runs.
	NTDebugDir string
}

// Run aligns every target against ref and returns one
// result.AlignmentResult per target, in input order.
//
// Grounded on original_source/src/Virulign.cpp's main: the
// --nt-debug pre-pass, the `#pragma omp parallel for` loop over
// targets (translated here into a bounded worker pool that still
// preserves result order by index rather than append order), and the
// --progress ETA line.
func Run(ctx context.Context, ref *reference.Reference, targets []*seq.NTSequence, opts Options) ([]result.AlignmentResult, error) {
	if opts.NTDebugDir != "" {
		dumpNTDebug(ref, targets, opts.Scoring, opts.NTDebugDir)
	}

	if dups := duplicateCounts(targets); len(dups) > 0 {
		total := 0
		for _, n := range dups {
			total += n
		}
		vlog.Warnf("%d distinct sequence(s) repeat across %d of %d input targets", len(dups), total, len(targets))
	}

	results := make([]result.AlignmentResult, len(targets))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var bar *pb.ProgressBar
	if opts.Progress {
		bar = pb.StartNew(len(targets))
		defer bar.Finish()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	start := time.Now()
	done := 0

	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			vlog.Warnf("Align target %d (%s)", i, t.Name())
			results[i] = result.Compute(ref, t, opts.Scoring, opts.MaxFrameShifts)

			mu.Lock()
			done++
			n := done
			mu.Unlock()

			if bar != nil {
				bar.Increment()
			}
			if opts.Progress {
				reportProgress(start, n, len(targets))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func reportProgress(start time.Time, done, total int) {
	elapsed := time.Since(start)
	perSeq := elapsed / time.Duration(done)
	left := perSeq * time.Duration(total-done)
	vlog.Warnf("Progress: %d/%d sequences aligned (%.2f%%), Estimated time left %s",
		done, total, float64(done)/float64(total)*100, left.Round(time.Second))
}

// duplicateCounts reports, for diagnostics only, how many targets
// share an identical (case-insensitive) sequence. Each target is
// still aligned independently by Run -- this never substitutes a
// cached result for a duplicate.
//
// Adapted from align/align.go's Compress(), which uses the same
// radix-tree exact-pattern-counting idea over alignment columns
// instead of whole target sequences.
func duplicateCounts(targets []*seq.NTSequence) map[string]int {
	r := radix.New()
	for _, t := range targets {
		key := strings.ToUpper(t.AsString())
		count := 0
		if v, ok := r.Get(key); ok {
			count = v.(int)
		}
		r.Insert(key, count+1)
	}

	dups := make(map[string]int)
	r.Walk(func(key string, v interface{}) bool {
		if n := v.(int); n > 1 {
			dups[key] = n
		}
		return false
	})
	return dups
}

// dumpNTDebug writes ref/target FASTA pairs for every target whose
// plain nucleotide alignment against ref scores above
// minAcceptableNTScore, the same threshold AlignCodon itself applies
// before attempting a codon-aware alignment.
func dumpNTDebug(ref *reference.Reference, targets []*seq.NTSequence, sc align.Scoring, dir string) {
	const minAcceptableNTScore = 200

	for _, t := range targets {
		r := ref.Clone()
		tc := t.Clone()
		score := align.AlignNT(r, tc, sc.NTParams())
		if score <= minAcceptableNTScore {
			continue
		}

		path := filepath.Join(dir, t.Name()+".fasta")
		f, err := os.Create(path)
		if err != nil {
			vlog.Errorf("nt-debug: %v", err)
			continue
		}
		if err := seq.WriteFasta(f, r, 70); err != nil {
			vlog.Errorf("nt-debug: %v", err)
		}
		if err := seq.WriteFasta(f, tc, 70); err != nil {
			vlog.Errorf("nt-debug: %v", err)
		}
		f.Close()
	}
}
