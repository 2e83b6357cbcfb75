package oracle

import "testing"

func uniformProbs(n int) [][4]float64 {
	probs := make([][4]float64, n)
	for i := range probs {
		probs[i] = [4]float64{0.25, 0.25, 0.25, 0.25}
	}
	return probs
}

func TestEvaluateGradientShape(t *testing.T) {
	ensemble := testEnsemble()
	probs := uniformProbs(6)

	prediction, grad, err := ensemble.EvaluateGradient(probs, "AUGCCCAAGUAA", "CCCU", "fibroblast")
	if err != nil {
		t.Fatalf("EvaluateGradient returned error: %v", err)
	}
	if len(grad) != len(probs) {
		t.Fatalf("grad has %d rows, want %d", len(grad), len(probs))
	}
	if prediction == 0 {
		t.Error("prediction should not be exactly zero for a realistic input")
	}
}

func TestEvaluateGradientFavoursGC(t *testing.T) {
	ensemble := testEnsemble()
	probs := uniformProbs(4)

	_, grad, err := ensemble.EvaluateGradient(probs, "AUGCCCAAGUAA", "CCCU", "fibroblast")
	if err != nil {
		t.Fatalf("EvaluateGradient returned error: %v", err)
	}

	for i, row := range grad {
		// alphabet.RNA order is {A, C, G, U}; the reference model rewards
		// GC content, so increasing C or G probability should never be
		// penalised relative to A or U at balanced (0.25) composition.
		if row[1] < row[0]-1e-6 && row[1] < row[3]-1e-6 {
			t.Errorf("position %d: expected C gradient to not trail both A and U, got %v", i, row)
		}
	}
}

func TestEvaluateGradientUnknownTissue(t *testing.T) {
	ensemble := testEnsemble()
	probs := uniformProbs(3)
	if _, _, err := ensemble.EvaluateGradient(probs, "AUGCCCAAGUAA", "CCCU", "neuron"); err == nil {
		t.Error("EvaluateGradient should reject an unknown target tissue")
	}
}
