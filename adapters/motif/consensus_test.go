package motif

import (
	"testing"

	"gobind/domain/genomic"
	dmotif "gobind/domain/motif"
)

func scanner(t *testing.T, consensi map[string]string) *ConsensusScanner {
	t.Helper()
	var motifs []dmotif.Motif
	for id := range consensi {
		motifs = append(motifs, dmotif.Motif{ID: id, Name: id})
	}
	catalog, err := dmotif.NewCatalog(motifs)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	s, err := NewConsensusScanner(catalog, consensi)
	if err != nil {
		t.Fatalf("scanner: %v", err)
	}
	return s
}

func TestScanForwardStrand(t *testing.T) {
	s := scanner(t, map[string]string{"M1": "ACGT"})
	region := genomic.Region{Chrom: "chr1", Start: 1000, End: 1010}

	occs := s.Scan([]byte("TTACGTTTTT"), region)
	if len(occs) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occs))
	}
	occ := occs[0]
	if occ.Start != 1002 || occ.End != 1006 {
		t.Errorf("expected absolute coordinates 1002-1006, got %d-%d", occ.Start, occ.End)
	}
	if occ.Strand != '+' {
		t.Errorf("expected forward strand, got %c", occ.Strand)
	}
	if occ.Score != 1 {
		t.Errorf("fully informative consensus must score 1, got %v", occ.Score)
	}
}

func TestScanReverseStrand(t *testing.T) {
	// GGGTA has reverse complement TACCC.
	s := scanner(t, map[string]string{"M1": "GGGTA"})

	occs := s.Scan([]byte("TTTACCCTTT"), genomic.Region{Chrom: "chr1", Start: 0, End: 10})
	if len(occs) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occs))
	}
	if occs[0].Strand != '-' {
		t.Errorf("expected reverse strand, got %c", occs[0].Strand)
	}
	if occs[0].Start != 2 || occs[0].End != 7 {
		t.Errorf("expected 2-7, got %d-%d", occs[0].Start, occs[0].End)
	}
}

func TestScanDegenerateConsensusScoresLower(t *testing.T) {
	s := scanner(t, map[string]string{"M1": "ACNT"})

	occs := s.Scan([]byte("ACGT"), genomic.Region{Chrom: "chr1", Start: 0, End: 4})
	if len(occs) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(occs))
	}
	if occs[0].Score != 0.75 {
		t.Errorf("expected score 0.75 for one N in four positions, got %v", occs[0].Score)
	}
}

func TestScanIUPACCodes(t *testing.T) {
	// R matches A or G.
	s := scanner(t, map[string]string{"M1": "RCGT"})

	occs := s.Scan([]byte("ACGTGCGT"), genomic.Region{Chrom: "chr1", Start: 0, End: 8})
	forward := 0
	for _, occ := range occs {
		if occ.Strand == '+' {
			forward++
		}
	}
	if forward != 2 {
		t.Errorf("expected 2 forward matches for R prefix, got %d", forward)
	}
}

func TestScanRejectsInvalidConsensus(t *testing.T) {
	catalog, err := dmotif.NewCatalog([]dmotif.Motif{{ID: "M1", Name: "M1"}})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if _, err := NewConsensusScanner(catalog, map[string]string{"M1": "ACXT"}); err == nil {
		t.Error("expected error for invalid IUPAC code")
	}
	if _, err := NewConsensusScanner(catalog, map[string]string{}); err == nil {
		t.Error("expected error for missing consensus")
	}
}

func TestScanLowercaseSequence(t *testing.T) {
	s := scanner(t, map[string]string{"M1": "ACGT"})

	occs := s.Scan([]byte("acgt"), genomic.Region{Chrom: "chr1", Start: 0, End: 4})
	if len(occs) == 0 {
		t.Fatal("lowercase sequence must still match")
	}
}
