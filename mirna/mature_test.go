package mirna

import (
	"strings"
	"testing"
)

const sampleMatureTable = "species_id\tmirbase_id\tmature_sequence\tseed\n" +
	"9606\thsa-miR-1-3p\tTGGAATGTAAAGAAGTATGTAT\tGGAATGT\n" +
	"10090\tmmu-miR-1-3p\tTGGAATGTAAAGAAGTATGTAT\tGGAATGT\n" +
	"9606\thsa-miR-208a-3p\tATAAGACGAGCAAAAAGCTTGT\tTAAGACG\n"

func TestLoadMatureSequencesFiltersToHuman(t *testing.T) {
	seqs, err := LoadMatureSequences(strings.NewReader(sampleMatureTable))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seqs) != 2 {
		t.Fatalf("len(seqs) = %d, want 2 human rows", len(seqs))
	}
	if _, ok := seqs["mmu-miR-1-3p"]; ok {
		t.Error("mouse row should have been filtered out")
	}
	if got := seqs["hsa-miR-1-3p"]; got != "UGGAAUGUAAAGAAGUAUGUAU" {
		t.Errorf("hsa-miR-1-3p = %q, want DNA T folded to RNA U", got)
	}
}

func TestLoadMatureSequencesMissingColumnsErrors(t *testing.T) {
	_, err := LoadMatureSequences(strings.NewReader("a\tb\tc\n1\t2\t3\n"))
	if err == nil {
		t.Fatal("expected an error for a table missing required columns")
	}
}

func TestLoadMatureSequencesEmptyReturnsEmptyMap(t *testing.T) {
	seqs, err := LoadMatureSequences(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seqs) != 0 {
		t.Fatalf("len(seqs) = %d, want 0", len(seqs))
	}
}
