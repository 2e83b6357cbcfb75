package orchestrator

import (
	"testing"

	"github.com/avantgene/utrforge/fold"
	"github.com/avantgene/utrforge/oracle"
	"github.com/avantgene/utrforge/sponge"
)

func testLoadEnsemble() (*oracle.Ensemble, error) {
	models := []oracle.Model{
		oracle.ReferenceModel{TissueBias: []float64{0.0, -0.4}},
		oracle.ReferenceModel{TissueBias: []float64{0.1, -0.3}},
	}
	return oracle.NewEnsemble(models, []string{"fibroblast", "heart"}), nil
}

func baseConfig(t *testing.T) Config {
	t.Helper()
	utr3, err := sponge.Build([]string{"UAGCUUAUCAGACUGAUGUUGA"}, 1)
	if err != nil {
		t.Fatalf("building test sponge utr3: %v", err)
	}
	// Scenario 1 of spec.md §8 ("minimal run") uses pop_size 128 / n_gen 3;
	// this test keeps the same shape at a smaller scale so it stays fast
	// under the reference-model/Nussinov-fold stand-ins.
	return Config{
		UTR5Min:        4,
		UTR5Max:        20,
		CDS:            "AUGCCCAAGUAA",
		UTR3:           utr3,
		PopSize:        24,
		NGen:           2,
		MutationRate:   0.1,
		MaxLengthDelta: 3,
		Seed:           42,
		TargetCellType: "fibroblast",
	}
}

func TestRunMinimalProducesValidParetoFront(t *testing.T) {
	cfg := baseConfig(t)

	result, err := Run(cfg, testLoadEnsemble, fold.NussinovFolder{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.FrontChromosomes) == 0 {
		t.Fatal("expected at least one Pareto-front row")
	}
	if len(result.FrontChromosomes) != len(result.FrontObjectives) {
		t.Fatalf("front has %d chromosomes but %d objective rows", len(result.FrontChromosomes), len(result.FrontObjectives))
	}

	for _, row := range result.FrontChromosomes {
		if row[0] < cfg.UTR5Min || row[0] > cfg.UTR5Max {
			t.Errorf("front row length gene = %d, want in [%d, %d]", row[0], cfg.UTR5Min, cfg.UTR5Max)
		}
	}

	for _, obj := range result.FrontObjectives {
		if len(obj) != 4 {
			t.Fatalf("objective row has %d columns, want 4", len(obj))
		}
		for _, v := range obj {
			if v < 0 || v > 1 {
				t.Errorf("objective value %v out of [0, 1]", v)
			}
		}
	}
}

func TestRunBestOverallIsNonDecreasing(t *testing.T) {
	cfg := baseConfig(t)

	var seenBest []float64
	_, err := Run(cfg, testLoadEnsemble, fold.NussinovFolder{}, func(gen int, bestOverall float64) {
		seenBest = append(seenBest, bestOverall)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(seenBest); i++ {
		if seenBest[i] < seenBest[i-1] {
			t.Errorf("best-overall regressed at generation %d: %v -> %v", i, seenBest[i-1], seenBest[i])
		}
	}
}

func TestRunRejectsUnknownTargetTissue(t *testing.T) {
	cfg := baseConfig(t)
	cfg.TargetCellType = "nonexistent-tissue"

	_, err := Run(cfg, testLoadEnsemble, fold.NussinovFolder{}, nil)
	if err == nil {
		t.Fatal("expected an error for an unknown target tissue")
	}
	if _, ok := err.(*InvalidConfigError); !ok {
		t.Errorf("error = %T, want *InvalidConfigError", err)
	}
}

func TestRunRejectsInvertedLengthBounds(t *testing.T) {
	cfg := baseConfig(t)
	cfg.UTR5Min, cfg.UTR5Max = 20, 4

	_, err := Run(cfg, testLoadEnsemble, fold.NussinovFolder{}, nil)
	if _, ok := err.(*InvalidConfigError); !ok {
		t.Errorf("error = %T, want *InvalidConfigError", err)
	}
}

func TestRunZeroGenerationsStillReturnsAFront(t *testing.T) {
	cfg := baseConfig(t)
	cfg.NGen = 0

	result, err := Run(cfg, testLoadEnsemble, fold.NussinovFolder{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.FrontChromosomes) == 0 {
		t.Fatal("n_gen=0 should still seed the archive from the initial population's front")
	}
}
