package seed

import (
	"strings"
	"testing"
)

const sampleCSV = `utr5,heart,liver,brain
AAAACCCCGGGGUUUU,1.0,2.0,3.0
CCCCGGGGUUUUAAAA,0.5,0.5,0.5
GGGGUUUUAAAACCCC,9.0,9.0,9.0
`

func TestTopUTR5SeedsSortsByMeanTEDescending(t *testing.T) {
	seeds, err := TopUTR5Seeds(strings.NewReader(sampleCSV), 3, 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seeds) != 3 {
		t.Fatalf("len(seeds) = %d, want 3", len(seeds))
	}
	if seeds[0] != "GGGGUUUUAAAACCCC" {
		t.Errorf("seeds[0] = %q, want the highest mean-TE row", seeds[0])
	}
	if seeds[2] != "CCCCGGGGUUUUAAAA" {
		t.Errorf("seeds[2] = %q, want the lowest mean-TE row last", seeds[2])
	}
}

func TestTopUTR5SeedsRespectsLengthBounds(t *testing.T) {
	seeds, err := TopUTR5Seeds(strings.NewReader(sampleCSV), 3, 20, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seeds) != 0 {
		t.Fatalf("len(seeds) = %d, want 0 when no row satisfies the length bound", len(seeds))
	}
}

func TestTopUTR5SeedsTruncatesToN(t *testing.T) {
	seeds, err := TopUTR5Seeds(strings.NewReader(sampleCSV), 1, 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seeds) != 1 {
		t.Fatalf("len(seeds) = %d, want 1", len(seeds))
	}
}

func TestTopUTR5SeedsEmptyCSVReturnsEmptyList(t *testing.T) {
	seeds, err := TopUTR5Seeds(strings.NewReader(""), 3, 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seeds) != 0 {
		t.Fatalf("len(seeds) = %d, want 0 for an empty reader", len(seeds))
	}
}

func TestLoadTopUTR5SeedsFromFileMissingFileReturnsEmptyList(t *testing.T) {
	seeds, err := LoadTopUTR5SeedsFromFile("/nonexistent/path/seeds.csv", 5, 1, 100)
	if err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if seeds != nil {
		t.Fatalf("seeds = %v, want nil for a missing file", seeds)
	}
}
