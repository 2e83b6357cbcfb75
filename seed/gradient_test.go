package seed

import (
	"math/rand"
	"testing"

	"github.com/avantgene/utrforge/chromosome"
)

// gcRewardModel is a deterministic stand-in for oracle.DifferentiableOracle
// whose prediction is simply the mean per-position probability mass on
// {C, G}, with an exact analytic gradient. Gradient ascent against it should
// reliably push every position's logits toward C or G.
type gcRewardModel struct{}

func (gcRewardModel) EvaluateGradient(utr5Probs [][4]float64, cds, utr3, target string) (float64, [][4]float64, error) {
	n := len(utr5Probs)
	grad := make([][4]float64, n)
	var sum float64
	for i, p := range utr5Probs {
		sum += p[1] + p[2]
		grad[i][1] = 1.0 / float64(n)
		grad[i][2] = 1.0 / float64(n)
	}
	return sum / float64(n), grad, nil
}

func TestGradientSeedsConvergesTowardRewardedBases(t *testing.T) {
	cfg := chromosome.Config{UTR5Min: 5, UTR5Max: 20, MaxLengthDelta: 2}
	rng := rand.New(rand.NewSource(1))

	seeds, err := GradientSeeds(cfg, 10, "AUGGCC", "AAAA", "heart", 200, 3, 2, gcRewardModel{}, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("len(seeds) = %d, want 2", len(seeds))
	}

	for _, row := range seeds {
		if row[0] != 10 {
			t.Errorf("row length = %d, want 10", row[0])
		}
		gcCount := 0
		for i := 0; i < row[0]; i++ {
			if row[1+i] == 1 || row[1+i] == 2 {
				gcCount++
			}
		}
		if gcCount < row[0]/2 {
			t.Errorf("row has only %d/%d GC-coded positions after ascent, want a majority", gcCount, row[0])
		}
	}
}

func TestGradientSeedsRowWidthMatchesConfig(t *testing.T) {
	cfg := chromosome.Config{UTR5Min: 5, UTR5Max: 30, MaxLengthDelta: 2}
	rng := rand.New(rand.NewSource(2))

	seeds, err := GradientSeeds(cfg, 8, "AUGGCC", "AAAA", "heart", 20, 1, 1, gcRewardModel{}, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seeds) != 1 {
		t.Fatalf("len(seeds) = %d, want 1", len(seeds))
	}
	if len(seeds[0]) != cfg.Width() {
		t.Errorf("row width = %d, want %d", len(seeds[0]), cfg.Width())
	}
}

func TestGradientSeedsNSeedsCapsOutput(t *testing.T) {
	cfg := chromosome.Config{UTR5Min: 5, UTR5Max: 20, MaxLengthDelta: 2}
	rng := rand.New(rand.NewSource(3))

	seeds, err := GradientSeeds(cfg, 10, "AUGGCC", "AAAA", "heart", 10, 2, 5, gcRewardModel{}, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("len(seeds) = %d, want 2 (capped by the number of successful restarts)", len(seeds))
	}
}
