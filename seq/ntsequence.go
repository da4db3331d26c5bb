package seq

import (
	"fmt"
	"strings"
)

// NTSequence is a named nucleotide sequence. The sequence data is a
// private slice with explicit accessor/mutator methods, not an
// embedded/inherited container.
type NTSequence struct {
	name        string
	description string
	bases       []Nucleotide
}

// NewNTSequence builds a sequence from a string, interpreting each
// character with NewNucleotide.
func NewNTSequence(name, description, s string) (*NTSequence, error) {
	bases := make([]Nucleotide, len(s))
	for i := 0; i < len(s); i++ {
		n, err := NewNucleotide(s[i])
		if err != nil {
			return nil, fmt.Errorf("sequence %s: %w", name, err)
		}
		bases[i] = n
	}
	return &NTSequence{name: name, description: description, bases: bases}, nil
}

// NewNTSequenceFilled builds a sequence of the given length filled with N.
func NewNTSequenceFilled(size int) *NTSequence {
	bases := make([]Nucleotide, size)
	for i := range bases {
		bases[i] = NT_N
	}
	return &NTSequence{bases: bases}
}

func (s *NTSequence) Name() string            { return s.name }
func (s *NTSequence) Description() string     { return s.description }
func (s *NTSequence) SetName(n string)        { s.name = n }
func (s *NTSequence) SetDescription(d string) { s.description = d }
func (s *NTSequence) Len() int                { return len(s.bases) }
func (s *NTSequence) At(i int) Nucleotide     { return s.bases[i] }
func (s *NTSequence) Set(i int, n Nucleotide) { s.bases[i] = n }

// Bases returns the underlying slice. Callers must not retain it
// across mutating calls (InsertGaps reallocates).
func (s *NTSequence) Bases() []Nucleotide { return s.bases }

// Slice returns a new, independent NTSequence over [from, to).
func (s *NTSequence) Slice(from, to int) *NTSequence {
	b := make([]Nucleotide, to-from)
	copy(b, s.bases[from:to])
	return &NTSequence{bases: b}
}

// Clone returns a deep copy.
func (s *NTSequence) Clone() *NTSequence {
	b := make([]Nucleotide, len(s.bases))
	copy(b, s.bases)
	return &NTSequence{name: s.name, description: s.description, bases: b}
}

// InsertGaps inserts n GAP symbols at position pos (pos may equal Len()).
func (s *NTSequence) InsertGaps(pos, n int) {
	gaps := make([]Nucleotide, n)
	for i := range gaps {
		gaps[i] = NT_GAP
	}
	s.bases = append(s.bases[:pos:pos], append(gaps, s.bases[pos:]...)...)
}

// Delete removes the range [from, to).
func (s *NTSequence) Delete(from, to int) {
	s.bases = append(s.bases[:from:from], s.bases[to:]...)
}

// Assign replaces the receiver's contents with a copy of other's,
// keeping the receiver's own name/description.
func (s *NTSequence) Assign(other *NTSequence) {
	b := make([]Nucleotide, len(other.bases))
	copy(b, other.bases)
	s.bases = b
}

// InsertSymbols inserts the given symbols at position pos.
func (s *NTSequence) InsertSymbols(pos int, syms []Nucleotide) {
	s.bases = append(s.bases[:pos:pos], append(append([]Nucleotide{}, syms...), s.bases[pos:]...)...)
}

// Append appends n to the end of the sequence.
func (s *NTSequence) Append(n Nucleotide) { s.bases = append(s.bases, n) }

// StripGaps removes every GAP symbol in place.
func (s *NTSequence) StripGaps() {
	out := s.bases[:0]
	for _, n := range s.bases {
		if n != NT_GAP {
			out = append(out, n)
		}
	}
	s.bases = out
}

// AsString renders the sequence as an uppercase character string.
func (s *NTSequence) AsString() string {
	var b strings.Builder
	b.Grow(len(s.bases))
	for _, n := range s.bases {
		b.WriteByte(n.Char())
	}
	return b.String()
}

// ReverseComplement returns the reverse complement as a new sequence.
func (s *NTSequence) ReverseComplement() *NTSequence {
	n := len(s.bases)
	b := make([]Nucleotide, n)
	for i, x := range s.bases {
		b[n-1-i] = x.ReverseComplement()
	}
	return &NTSequence{name: s.name, description: s.description, bases: b}
}

// NonGapCount returns the number of non-gap symbols.
func (s *NTSequence) NonGapCount() int {
	c := 0
	for _, n := range s.bases {
		if n != NT_GAP {
			c++
		}
	}
	return c
}
