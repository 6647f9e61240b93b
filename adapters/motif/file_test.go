package motif

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMotifFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "motifs.tsv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write motif file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	content := "# id\tname\talt\tconsensus\n" +
		"MA0139.1\tCTCF\tZBTB\tCCGCGNGGNGGCAG\n" +
		"M2\tGATA1\tWGATAR\n" +
		"M3\tACGT\n" +
		"\n"
	catalog, consensi, err := LoadFile(writeMotifFile(t, content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if catalog.Len() != 3 {
		t.Fatalf("expected 3 motifs, got %d", catalog.Len())
	}
	motifs := catalog.Motifs()
	if motifs[0].ID != "MA0139.1" || motifs[0].Name != "CTCF" || motifs[0].AltName != "ZBTB" {
		t.Errorf("unexpected first motif: %+v", motifs[0])
	}
	// Three-column lines reuse the name as the alternate name.
	if motifs[1].ID != "M2" || motifs[1].Name != "GATA1" || motifs[1].AltName != "GATA1" {
		t.Errorf("unexpected second motif: %+v", motifs[1])
	}
	// Two-column lines use the id for both names.
	if motifs[2].ID != "M3" || motifs[2].Name != "M3" || motifs[2].AltName != "M3" {
		t.Errorf("unexpected third motif: %+v", motifs[2])
	}
	if consensi["MA0139.1"] != "CCGCGNGGNGGCAG" || consensi["M2"] != "WGATAR" || consensi["M3"] != "ACGT" {
		t.Errorf("unexpected consensi: %v", consensi)
	}
}

func TestLoadFileRejectsBadInput(t *testing.T) {
	if _, _, err := LoadFile(writeMotifFile(t, "M1\n")); err == nil {
		t.Error("expected error for single-column line")
	}
	if _, _, err := LoadFile(writeMotifFile(t, "M1\tACGT\nM1\tCCGG\n")); err == nil {
		t.Error("expected error for duplicate motif id")
	}
	if _, _, err := LoadFile(filepath.Join(t.TempDir(), "missing.tsv")); err == nil {
		t.Error("expected error for missing file")
	}
}
