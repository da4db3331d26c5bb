package seq

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseError is returned by the FASTA readers. Recovered indicates
// whether the reader was able to skip to the next record.
type ParseError struct {
	Name      string
	Message   string
	Recovered bool
}

func (e *ParseError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s", e.Name, e.Message)
	}
	return e.Message
}

// ReadFastaOne reads exactly one FASTA record from r. It is an error
// for the stream to be empty or to contain more than one record.
func ReadFastaOne(r io.Reader) (*NTSequence, error) {
	seqs, errs := ReadFastaAll(r)
	for _, e := range errs {
		return nil, e
	}
	if len(seqs) == 0 {
		return nil, &ParseError{Message: "no FASTA record found", Recovered: false}
	}
	if len(seqs) > 1 {
		return nil, &ParseError{Message: "expected a single FASTA record, found multiple", Recovered: false}
	}
	return seqs[0], nil
}

// ReadFastaAll reads a (possibly multi-record) FASTA stream. Records
// that fail to parse are skipped (scanning resumes at the next '>')
// and an error is appended per skipped record; a record is never both
// returned and reported as an error.
func ReadFastaAll(r io.Reader) ([]*NTSequence, []*ParseError) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var sequences []*NTSequence
	var errs []*ParseError

	var name, description string
	var body strings.Builder
	haveRecord := false

	flush := func() {
		if !haveRecord {
			return
		}
		s, err := NewNTSequence(name, description, body.String())
		if err != nil {
			errs = append(errs, &ParseError{Name: name, Message: err.Error(), Recovered: true})
		} else {
			sequences = append(sequences, s)
		}
		body.Reset()
		haveRecord = false
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, ">") {
			flush()
			header := strings.TrimPrefix(line, ">")
			fields := strings.SplitN(strings.TrimSpace(header), " ", 2)
			name = fields[0]
			if len(fields) == 2 {
				description = fields[1]
			} else {
				description = ""
			}
			haveRecord = true
			continue
		}
		for _, r := range line {
			if r == ' ' || r == '\t' {
				continue
			}
			body.WriteRune(r)
		}
	}
	flush()
	return sequences, errs
}

// WriteFasta writes a single nucleotide sequence in FASTA format,
// wrapping the body at width characters (0 disables wrapping).
func WriteFasta(w io.Writer, s *NTSequence, width int) error {
	return writeFastaEntry(w, s.Name(), s.Description(), s.AsString(), width)
}

// WriteFastaAA writes a single amino-acid sequence in FASTA format.
func WriteFastaAA(w io.Writer, s *AASequence, width int) error {
	return writeFastaEntry(w, s.Name(), "", s.AsString(), width)
}

func writeFastaEntry(w io.Writer, name, description, body string, width int) error {
	header := ">" + name
	if description != "" {
		header += " " + description
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	if width <= 0 {
		_, err := fmt.Fprintln(w, body)
		return err
	}
	for i := 0; i < len(body); i += width {
		end := i + width
		if end > len(body) {
			end = len(body)
		}
		if _, err := fmt.Fprintln(w, body[i:end]); err != nil {
			return err
		}
	}
	return nil
}
