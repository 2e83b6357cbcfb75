package scoring

import (
	"testing"

	"github.com/avantgene/utrforge/fold"
	"github.com/avantgene/utrforge/oracle"
	"github.com/avantgene/utrforge/sequence"
)

func testMRNA(t *testing.T, utr5 string) sequence.MRNA {
	t.Helper()
	mrna, err := sequence.New(utr5, "AUGCCCAAGAAGUAA", "CCCUUUCCC")
	if err != nil {
		t.Fatalf("sequence.New returned error: %v", err)
	}
	return mrna
}

func validOracleResult() oracle.Result {
	return oracle.Result{
		Valid:           true,
		MeanTE:          1.2,
		TargetTE:        1.6,
		MeanOffTargetTE: 1.0,
		PerTissue:       map[string]float64{"fibroblast": 1.6, "hepatocyte": 0.8},
	}
}

func TestPipelineScoreRunsAllScorers(t *testing.T) {
	pipeline := NewPipeline(fold.NussinovFolder{})
	mrna := testMRNA(t, "GGCCAAUUGGCCAAUUGGCC")

	report, err := pipeline.Score(mrna, validOracleResult(), false)
	if err != nil {
		t.Fatalf("Score returned error: %v", err)
	}
	if report.Structure.Status == "" {
		t.Error("structure report status should be set")
	}
	if report.Stability.Status == "" {
		t.Error("stability report status should be set")
	}
	if report.Specificity.Status != StatusGreen {
		t.Errorf("specificity status = %v, want GREEN", report.Specificity.Status)
	}
}

func TestPipelineScoreFastFoldDoesNotError(t *testing.T) {
	pipeline := NewPipeline(fold.NussinovFolder{})
	mrna := testMRNA(t, "GGCCAAUUGGCCAAUUGGCCAAUUGGCCAAUU")

	if _, err := pipeline.Score(mrna, validOracleResult(), true); err != nil {
		t.Fatalf("Score with fastFold returned error: %v", err)
	}
}

func TestClassifyAccessibility(t *testing.T) {
	cases := []struct {
		mfePerNt float64
		want     Status
	}{
		{-0.05, StatusGreen},
		{-0.2, StatusAmber},
		{-0.5, StatusRed},
	}
	for _, c := range cases {
		if got := classifyAccessibility(c.mfePerNt); got != c.want {
			t.Errorf("classifyAccessibility(%v) = %v, want %v", c.mfePerNt, got, c.want)
		}
	}
}

func TestClassifySpecificity(t *testing.T) {
	cases := []struct {
		target, offTarget float64
		want              Status
	}{
		{1.6, 1.0, StatusGreen},
		{1.2, 1.2, StatusAmber},
		{0.5, 0.9, StatusRed},
	}
	for _, c := range cases {
		if got := classifySpecificity(c.target, c.offTarget); got != c.want {
			t.Errorf("classifySpecificity(%v, %v) = %v, want %v", c.target, c.offTarget, got, c.want)
		}
	}
}
