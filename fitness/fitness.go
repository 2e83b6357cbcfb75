// Package fitness turns a scoring.Report into the four normalised
// objectives the NSGA-III engine optimises, plus the single weighted
// scalar used for seed ranking and operator telemetry. Every sigmoid is
// deliberately non-saturating so an individual at either extreme still
// carries gradient for the engine to select on (spec.md §4.6).
package fitness

import "math"

// Weights are the default per-objective contributions to Overall,
// summing to 1.0 (spec.md §4.6).
type Weights struct {
	UTR5Accessibility float64
	Manufacturability float64
	Stability         float64
	Specificity       float64
}

// DefaultWeights is the spec's default weighting.
var DefaultWeights = Weights{
	UTR5Accessibility: 0.15,
	Manufacturability: 0.30,
	Stability:         0.20,
	Specificity:       0.35,
}

// Metrics is the minimal set of raw scoring outputs the normaliser needs.
// UTR5MFEPerNt is a pointer so that a caller without a value can pass nil,
// which normalises to the neutral 0.5 rather than to either sigmoid tail.
type Metrics struct {
	UTR5MFEPerNt      *float64
	UTR5Violations    int
	StabilityScore    float64
	SpecificityTarget float64
}

// Objectives is the per-objective normalised [0,1] score plus the single
// weighted Overall scalar.
type Objectives struct {
	UTR5Accessibility float64
	Manufacturability float64
	Stability         float64
	Specificity       float64
	Overall           float64
}

// sigmoid is the shared normalisation curve: σ(x; μ, k) = 1/(1+exp(−k(x−μ))),
// clamped so that it stays strictly inside (0, 1) even where float64
// rounding would otherwise give exactly 0 or 1.
func sigmoid(x, mu, k float64) float64 {
	s := 1 / (1 + math.Exp(-k*(x-mu)))
	return math.Min(math.Max(s, math.SmallestNonzeroFloat64), math.Nextafter(1, 0))
}

const neutralScore = 0.5

// Normalise computes all four sigmoid-normalised objectives and their
// weighted sum. The (μ, k) pairs are spec.md §4.6's fixed constants: UTR5
// accessibility μ=−0.2 k=15, manufacturability μ=1 k=−2 (on 5′UTR-only
// violation count), stability μ=0.6 k=8, specificity μ=1.0 k=6.
func Normalise(m Metrics, w Weights) Objectives {
	utr5Acc := neutralScore
	if m.UTR5MFEPerNt != nil {
		utr5Acc = sigmoid(*m.UTR5MFEPerNt, -0.2, 15)
	}

	manufacturability := sigmoid(float64(m.UTR5Violations), 1, -2)
	stability := sigmoid(m.StabilityScore, 0.6, 8)
	specificity := sigmoid(m.SpecificityTarget, 1.0, 6)

	overall := w.UTR5Accessibility*utr5Acc +
		w.Manufacturability*manufacturability +
		w.Stability*stability +
		w.Specificity*specificity

	return Objectives{
		UTR5Accessibility: utr5Acc,
		Manufacturability: manufacturability,
		Stability:         stability,
		Specificity:       specificity,
		Overall:           overall,
	}
}
