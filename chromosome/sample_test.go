package chromosome

import (
	"math/rand"
	"testing"
)

func testConfig() Config {
	return Config{UTR5Min: 4, UTR5Max: 20, MaxLengthDelta: 2}
}

func TestSampleLengthWithinBounds(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(1))
	matrix := Sample(50, cfg, nil, nil, rng)
	for _, row := range matrix {
		if row[0] < cfg.UTR5Min || row[0] > cfg.UTR5Max {
			t.Fatalf("length %d outside [%d,%d]", row[0], cfg.UTR5Min, cfg.UTR5Max)
		}
	}
}

func TestSampleGaussianAroundInitialLength(t *testing.T) {
	cfg := testConfig()
	initial := 12
	rng := rand.New(rand.NewSource(2))
	matrix := Sample(200, cfg, &initial, nil, rng)
	for _, row := range matrix {
		if row[0] < cfg.UTR5Min || row[0] > cfg.UTR5Max {
			t.Fatalf("length %d outside bounds", row[0])
		}
	}
}

func TestSamplePayloadColumnsInRange(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(3))
	matrix := Sample(20, cfg, nil, nil, rng)
	for _, row := range matrix {
		for _, code := range row[1:] {
			if code < 0 || code > 3 {
				t.Fatalf("payload code %d out of range", code)
			}
		}
	}
}

func TestSampleSeedsOverwriteLeadingRows(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(4))
	seeds := []string{"GCAU", "AUGC"}
	matrix := Sample(5, cfg, nil, seeds, rng)

	if got := Decode(matrix[0]); got != "GCAU" {
		t.Errorf("row 0 = %q, want seed GCAU", got)
	}
	if got := Decode(matrix[1]); got != "AUGC" {
		t.Errorf("row 1 = %q, want seed AUGC", got)
	}
}

func TestSampleSeedsCappedAtSampleCount(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(5))
	seeds := []string{"GCAU", "AUGC", "CCCC"}
	matrix := Sample(2, cfg, nil, seeds, rng)
	if len(matrix) != 2 {
		t.Fatalf("len(matrix) = %d, want 2", len(matrix))
	}
}
