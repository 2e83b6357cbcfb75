package chromosome

import (
	"math/rand"
	"testing"
)

func cloneMatrix(m Matrix) Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append(Row(nil), row...)
	}
	return out
}

func TestMutateZeroRateIsIdentity(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(10))
	matrix := Sample(30, cfg, nil, nil, rng)
	before := cloneMatrix(matrix)

	Mutate(matrix, cfg, 0.0, rng)

	for i := range matrix {
		for j := range matrix[i] {
			if matrix[i][j] != before[i][j] {
				t.Fatalf("row %d col %d changed under mutation rate 0", i, j)
			}
		}
	}
}

func TestMutateLengthStaysWithinDeltaAndBounds(t *testing.T) {
	cfg := Config{UTR5Min: 4, UTR5Max: 20, MaxLengthDelta: 2}
	rng := rand.New(rand.NewSource(11))
	initial := 12
	matrix := Sample(100, cfg, &initial, nil, rng)
	before := cloneMatrix(matrix)

	Mutate(matrix, cfg, 1.0, rng)

	for i, row := range matrix {
		if row[0] < cfg.UTR5Min || row[0] > cfg.UTR5Max {
			t.Fatalf("row %d length %d outside bounds", i, row[0])
		}
		delta := row[0] - before[i][0]
		if delta > cfg.MaxLengthDelta || delta < -cfg.MaxLengthDelta {
			t.Fatalf("row %d length jumped by %d, want within ±%d", i, delta, cfg.MaxLengthDelta)
		}
	}
}

func TestCrossoverProducesRowsOfSameWidth(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	a := Row{10, 1, 2, 3, 0, 0}
	b := Row{15, 3, 2, 1, 0, 0}
	childA, childB := Crossover(a, b, rng)
	if len(childA) != len(a) || len(childB) != len(b) {
		t.Fatal("crossover children must match parent width")
	}
}

func TestCrossoverLengthGeneTakesEitherParent(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	a := Row{10, 0, 0}
	b := Row{15, 1, 1}
	sawA, sawB := false, false
	for i := 0; i < 50; i++ {
		childA, _ := Crossover(a, b, rng)
		if childA[0] == 10 {
			sawA = true
		}
		if childA[0] == 15 {
			sawB = true
		}
	}
	if !sawA || !sawB {
		t.Error("expected crossover to sometimes inherit each parent's length gene")
	}
}

func TestDeduplicateRemovesTrueDuplicates(t *testing.T) {
	m := Matrix{
		{3, 0, 1, 2, 9, 9},
		{3, 0, 1, 2, 1, 1}, // same active prefix, different padding
		{3, 0, 1, 1, 0, 0}, // different active payload
	}
	out := Deduplicate(m)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
}

func TestDeduplicatePreservesOrder(t *testing.T) {
	m := Matrix{
		{2, 0, 1},
		{2, 1, 0},
	}
	out := Deduplicate(m)
	if len(out) != 2 {
		t.Fatalf("expected both rows to survive, got %d", len(out))
	}
}
