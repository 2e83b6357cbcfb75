/*
Package oracle is the batch driver for the translation-efficiency (TE)
prediction ensemble. The ensemble itself — the trained neural network
weights — is an external collaborator (spec.md §1); this package owns
everything around it: batch tensor assembly via nucleotide.EncodeBatch,
one forward pass per ensemble member, tissue-wise aggregation, the
process-wide singleton, and the null result for rows the encoder rejected.
*/
package oracle

// Status mirrors the scoring report's four-way traffic light for the
// specificity sub-score (spec.md §4.4d/§3).
type Status string

const (
	StatusGreen Status = "GREEN"
	StatusAmber Status = "AMBER"
	StatusRed   Status = "RED"
	StatusGrey  Status = "GREY"
)

// Result is one sequence's aggregated TE prediction: its mean TE across
// all tissues, the target tissue's TE, the mean TE of every other tissue,
// the full per-tissue breakdown, and the derived traffic light.
type Result struct {
	Valid           bool
	MeanTE          float64
	TargetTE        float64
	MeanOffTargetTE float64
	PerTissue       map[string]float64
	Status          Status
}

// NullResult is returned for a sequence the batch encoder marked invalid
// (too long for the oracle's input window): specificity collapses to 0 and
// the status is GREY rather than RED, so it is visibly distinct from a
// validly-encoded but poorly-performing design (spec.md §3).
func NullResult() Result {
	return Result{
		Valid:  false,
		Status: StatusGrey,
	}
}

// classify derives the specificity traffic light from target and
// off-target TE (spec.md §4.4d).
func classify(targetTE, meanOffTargetTE float64) Status {
	switch {
	case targetTE >= 1.5 && (targetTE-meanOffTargetTE) >= 0.5:
		return StatusGreen
	case targetTE >= 1.0 && (targetTE-meanOffTargetTE) >= 0:
		return StatusAmber
	default:
		return StatusRed
	}
}
