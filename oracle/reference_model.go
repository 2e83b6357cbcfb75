package oracle

import "github.com/avantgene/utrforge/nucleotide"

// ReferenceModel is a self-contained, deterministic stand-in for a trained
// ensemble member: a smooth function of 5′ UTR composition and length that
// gives every Ensemble consumer (scoring, gradient seeds, tests) a working
// Model without depending on real trained weights, the same role
// fold.NussinovFolder plays for fold.Folder. Production wiring swaps in a
// Model backed by the real accelerator-hosted network.
//
// Per-tissue predictions are a weighted combination of GC content and
// UTR5 length, offset by a per-tissue bias so different tissues respond
// differently to the same sequence — enough structure for gradient ascent
// to have a direction to climb, without claiming any biological fidelity.
type ReferenceModel struct {
	TissueBias []float64
}

// Forward implements Model.
func (m ReferenceModel) Forward(batch *nucleotide.Batch) ([][]float64, error) {
	predictions := make([][]float64, batch.N)
	for i := 0; i < batch.N; i++ {
		predictions[i] = make([]float64, len(m.TissueBias))
		if !batch.Valid[i] {
			continue
		}
		gc, length := rowGCAndLength(batch, i)
		base := 1.0 + 2.0*gcScore(gc) - 0.2*lengthPenalty(length)
		for t, bias := range m.TissueBias {
			predictions[i][t] = base + bias
		}
	}
	return predictions, nil
}

// rowGCAndLength scans the UTR5 columns of row i that carry any base
// probability (channels 2/3 are C/G) and returns the share of that
// probability on C/G and the number of such columns. For a one-hot row this
// is the plain GC fraction; for a soft encoding it varies smoothly with the
// per-column probabilities.
func rowGCAndLength(batch *nucleotide.Batch, row int) (gc float64, length int) {
	bodyStart := nucleotide.Width - nucleotide.BodyWindow
	var gcMass, totalMass float64
	for col := 0; col < bodyStart; col++ {
		mass := float64(batch.At(row, 0, col) + batch.At(row, 1, col) +
			batch.At(row, 2, col) + batch.At(row, 3, col))
		if mass == 0 {
			continue
		}
		length++
		totalMass += mass
		gcMass += float64(batch.At(row, 2, col) + batch.At(row, 3, col))
	}
	if length == 0 {
		return 0, 0
	}
	return gcMass / totalMass, length
}

// gcScore peaks at 0.5 GC content, the composition the reference model
// treats as most favourable.
func gcScore(gc float64) float64 {
	d := gc - 0.5
	return 1 - 4*d*d
}

// lengthPenalty grows mildly with UTR5 length, modelling the intuition
// that longer leaders cost some initiation efficiency.
func lengthPenalty(length int) float64 {
	return float64(length) / 500.0
}
