package scoring

import "github.com/avantgene/utrforge/oracle"

// SpecificityReport wraps an already-computed TE oracle result with the
// scoring-layer traffic light (spec.md §4.4d).
type SpecificityReport struct {
	TargetTE        float64
	MeanOffTargetTE float64
	MeanTE          float64
	PerTissue       map[string]float64
	Valid           bool
	Status          Status
}

// scoreSpecificity reclassifies an oracle.Result using spec.md §4.4d's
// scoring-layer thresholds (independent of oracle.Status's own classify,
// which exists so the oracle package can report a result's quality without
// importing scoring).
func scoreSpecificity(result oracle.Result) SpecificityReport {
	return SpecificityReport{
		TargetTE:        result.TargetTE,
		MeanOffTargetTE: result.MeanOffTargetTE,
		MeanTE:          result.MeanTE,
		PerTissue:       result.PerTissue,
		Valid:           result.Valid,
		Status:          classifySpecificity(result.TargetTE, result.MeanOffTargetTE),
	}
}

// classifySpecificity implements spec.md §4.4d: GREEN iff target ≥ 1.5 and
// (target − mean_off) ≥ 0.5; AMBER iff target ≥ 1.0 and (target − mean_off)
// ≥ 0; else RED.
func classifySpecificity(targetTE, meanOffTargetTE float64) Status {
	diff := targetTE - meanOffTargetTE
	switch {
	case targetTE >= 1.5 && diff >= 0.5:
		return StatusGreen
	case targetTE >= 1.0 && diff >= 0:
		return StatusAmber
	default:
		return StatusRed
	}
}
