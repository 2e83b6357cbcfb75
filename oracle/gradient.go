package oracle

import (
	"fmt"

	"github.com/avantgene/utrforge/nucleotide"
)

// gradientEpsilon is the finite-difference step used to estimate the
// target-tissue prediction's gradient with respect to each soft UTR5
// nucleotide probability.
const gradientEpsilon = 1e-3

// DifferentiableOracle exposes the one operation gradient-ascent seed
// generation needs: the target-tissue prediction for a soft (probability
// distribution per position) 5′ UTR spliced against a fixed CDS/3′UTR
// body, and the gradient of that prediction with respect to every entry
// of the probability matrix (spec.md §4.9).
type DifferentiableOracle interface {
	EvaluateGradient(utr5Probs [][4]float64, cds, utr3, target string) (prediction float64, grad [][4]float64, err error)
}

// EvaluateGradient implements DifferentiableOracle by numerically
// differentiating the ensemble's own forward pass. A real trained ensemble
// would back-propagate analytically; this is the same kind of concession
// fold.NussinovFolder and oracle.ReferenceModel make elsewhere — a working
// stand-in behind the interface production code actually depends on.
func (e *Ensemble) EvaluateGradient(utr5Probs [][4]float64, cds, utr3, target string) (float64, [][4]float64, error) {
	targetIdx, err := e.tissueIndex(target)
	if err != nil {
		return 0, nil, err
	}

	base, err := e.forwardTarget(utr5Probs, cds, utr3, targetIdx)
	if err != nil {
		return 0, nil, err
	}

	grad := make([][4]float64, len(utr5Probs))
	for i := range utr5Probs {
		for c := 0; c < 4; c++ {
			perturbed := copyProbs(utr5Probs)
			perturbed[i][c] += gradientEpsilon
			high, err := e.forwardTarget(perturbed, cds, utr3, targetIdx)
			if err != nil {
				return 0, nil, err
			}
			perturbed[i][c] -= 2 * gradientEpsilon
			low, err := e.forwardTarget(perturbed, cds, utr3, targetIdx)
			if err != nil {
				return 0, nil, err
			}
			grad[i][c] = (high - low) / (2 * gradientEpsilon)
		}
	}

	return base, grad, nil
}

// forwardTarget runs every ensemble member once over a single soft-encoded
// sequence and returns the averaged target-tissue prediction.
func (e *Ensemble) forwardTarget(utr5Probs [][4]float64, cds, utr3 string, targetIdx int) (float64, error) {
	batch, err := nucleotide.EncodeSoftUTR5Batch(utr5Probs, cds, utr3)
	if err != nil {
		return 0, fmt.Errorf("oracle: encoding soft batch: %w", err)
	}

	var sum float64
	for _, model := range e.models {
		predictions, err := model.Forward(batch)
		if err != nil {
			return 0, fmt.Errorf("oracle: model forward pass: %w", err)
		}
		sum += predictions[0][targetIdx]
	}
	return sum / float64(len(e.models)), nil
}

func copyProbs(probs [][4]float64) [][4]float64 {
	out := make([][4]float64, len(probs))
	copy(out, probs)
	return out
}
