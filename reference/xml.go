package reference

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strconv"

	"github.com/rega-cev/virulign/seq"
)

// orfXML mirrors <orf name="..." referenceSequence="..."><protein
// abbreviation="..." startPosition="..." stopPosition="..."/>...</orf>.
type orfXML struct {
	Name              string       `xml:"name,attr"`
	ReferenceSequence string       `xml:"referenceSequence,attr"`
	Proteins          []proteinXML `xml:"protein"`
}

type proteinXML struct {
	Abbreviation  string `xml:"abbreviation,attr"`
	StartPosition string `xml:"startPosition,attr"`
	StopPosition  string `xml:"stopPosition,attr"`
}

// genomesXML mirrors the multi-organism wrapper
// <genomes><genome organismName="..."><openReadingFrame/>...</genome>...</genomes>.
type genomesXML struct {
	Genomes []genomeXML `xml:"genome"`
}

type genomeXML struct {
	OrganismName string   `xml:"organismName,attr"`
	ORFs         []orfXML `xml:"openReadingFrame"`
}

// LoadXML reads a structured ORF description: either a bare <orf> or
// a <genomes> wrapper, in which case the first <openReadingFrame>
// found (in document order) is used.
//
// Grounded on original_source/src/ReferenceSequence.cpp's
// parseOrfReference/parseOrfReferenceFile/parseProteinReferences.
func LoadXML(path string) (*Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	return loadXMLBytes(data)
}

func loadXMLBytes(data []byte) (*Reference, error) {
	root, err := rootElementName(data)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}

	var orf orfXML
	switch root {
	case "genomes":
		var g genomesXML
		if err := xml.Unmarshal(data, &g); err != nil {
			return nil, fmt.Errorf("reference: %w", err)
		}
		found := false
		for _, genome := range g.Genomes {
			if len(genome.ORFs) > 0 {
				orf = genome.ORFs[0]
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("reference: no openReadingFrame element found")
		}
	case "orf":
		if err := xml.Unmarshal(data, &orf); err != nil {
			return nil, fmt.Errorf("reference: %w", err)
		}
	default:
		return nil, fmt.Errorf("reference: unrecognized root element %q", root)
	}

	return referenceFromORF(orf)
}

func rootElementName(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se.Name.Local, nil
		}
	}
}

func referenceFromORF(o orfXML) (*Reference, error) {
	nt, err := seq.NewNTSequence(o.Name, o.Name, o.ReferenceSequence)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	if nt.Len()%3 != 0 {
		return nil, fmt.Errorf("reference: length %d is not a multiple of 3", nt.Len())
	}

	regions := make([]Region, 0, len(o.Proteins))
	for _, p := range o.Proteins {
		if p.Abbreviation == "" {
			return nil, fmt.Errorf("reference: protein abbreviation is invalid")
		}
		if p.StartPosition == "" {
			return nil, fmt.Errorf("reference: protein start is invalid")
		}
		if p.StopPosition == "" {
			return nil, fmt.Errorf("reference: protein end is invalid")
		}
		start, err := strconv.Atoi(p.StartPosition)
		if err != nil {
			return nil, fmt.Errorf("reference: protein start is invalid: %w", err)
		}
		stop, err := strconv.Atoi(p.StopPosition)
		if err != nil {
			return nil, fmt.Errorf("reference: protein end is invalid: %w", err)
		}

		regions = append(regions, Region{
			Prefix: p.Abbreviation,
			Begin:  (start - 1) / 3,
			End:    (stop - 1) / 3,
		})
	}

	return &Reference{NTSequence: nt, Regions: regions}, nil
}
