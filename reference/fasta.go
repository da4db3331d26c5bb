package reference

import (
	"fmt"
	"io"
	"os"

	"github.com/rega-cev/virulign/seq"
)

// LoadFasta reads a single-record FASTA reference and wraps it with
// one region, "P", covering the whole ORF.
//
// Grounded on original_source/src/CLIUtils.cpp's loadRefSeqFromFile.
func LoadFasta(path string) (*Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	defer f.Close()
	return loadFastaFrom(f)
}

func loadFastaFrom(r io.Reader) (*Reference, error) {
	nt, err := seq.ReadFastaOne(r)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	if nt.Len()%3 != 0 {
		return nil, fmt.Errorf("reference: length %d is not a multiple of 3", nt.Len())
	}
	return &Reference{
		NTSequence: nt,
		Regions:    []Region{{Prefix: "P", Begin: 0, End: nt.Len() / 3}},
	}, nil
}
