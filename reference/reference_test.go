package reference

import (
	"strings"
	"testing"
)

func TestLoadFastaWrapsWholeORFAsRegionP(t *testing.T) {
	r, err := loadFastaFrom(strings.NewReader(">ref\nATGGCTTAA\n"))
	if err != nil {
		t.Fatalf("loadFastaFrom: %v", err)
	}
	if len(r.Regions) != 1 || r.Regions[0].Prefix != "P" {
		t.Fatalf("Regions = %v, want a single region named P", r.Regions)
	}
	if r.Regions[0].Begin != 0 || r.Regions[0].End != 3 {
		t.Errorf("region interval = [%d,%d), want [0,3)", r.Regions[0].Begin, r.Regions[0].End)
	}
}

func TestLoadFastaRejectsNonTripletLength(t *testing.T) {
	_, err := loadFastaFrom(strings.NewReader(">ref\nATGGCTT\n"))
	if err == nil {
		t.Fatal("expected an error for a reference length not a multiple of 3")
	}
}

func TestLoadXMLBareOrf(t *testing.T) {
	doc := `<orf name="HIV-PR" referenceSequence="ATGGCTGATCCGCATAAACGT">
  <protein abbreviation="PR" startPosition="1" stopPosition="21"/>
</orf>`
	r, err := loadXMLBytesForTest(doc)
	if err != nil {
		t.Fatalf("LoadXML: %v", err)
	}
	if len(r.Regions) != 1 {
		t.Fatalf("Regions = %v, want exactly one", r.Regions)
	}
	// start=1 -> (1-1)/3=0; stop=21 -> (21-1)/3=6
	if r.Regions[0].Begin != 0 || r.Regions[0].End != 6 {
		t.Errorf("region interval = [%d,%d), want [0,6)", r.Regions[0].Begin, r.Regions[0].End)
	}
	if r.Regions[0].Prefix != "PR" {
		t.Errorf("prefix = %q, want PR", r.Regions[0].Prefix)
	}
}

func TestLoadXMLGenomesWrapperPicksFirstORF(t *testing.T) {
	doc := `<genomes>
  <genome organismName="HIV-1">
    <openReadingFrame name="gag" referenceSequence="ATGGCTGATCCGCATAAACGT">
      <protein abbreviation="GAG" startPosition="1" stopPosition="21"/>
    </openReadingFrame>
  </genome>
</genomes>`
	r, err := loadXMLBytesForTest(doc)
	if err != nil {
		t.Fatalf("LoadXML: %v", err)
	}
	if r.Name() != "gag" {
		t.Errorf("Name() = %q, want gag", r.Name())
	}
	if len(r.Regions) != 1 || r.Regions[0].Prefix != "GAG" {
		t.Errorf("Regions = %v, want a single GAG region", r.Regions)
	}
}

func loadXMLBytesForTest(doc string) (*Reference, error) {
	return loadXMLBytes([]byte(doc))
}
