package scoring

import (
	"strings"

	"github.com/avantgene/utrforge/fold"
	"github.com/avantgene/utrforge/sequence"
)

// arePentamer is the AU-rich element motif the original scorer counts in
// the 3′UTR as a destabilising signal (SPEC_FULL §12).
const arePentamer = "AUUUA"

// StabilityReport is spec.md §4.4c's combined stability score plus the
// supplemented AU-rich-element diagnostic.
type StabilityReport struct {
	GC3            float64
	MFEPerNt       float64
	AURichElements int
	StabilityScore float64
	Status         Status
}

func scoreStability(mrna sequence.MRNA, transcriptLength int, globalFold fold.Result) StabilityReport {
	gc3 := computeGC3(mrna.Codons())
	mfePerNt := globalFold.MFEPerNt(transcriptLength)
	areCount := countAURichElements(mrna.UTR3())

	gc3Norm := normaliseGC3(gc3)
	mfeNorm := normaliseStabilityMFE(mfePerNt)
	stabilityScore := (gc3Norm + mfeNorm) / 2

	return StabilityReport{
		GC3:            gc3,
		MFEPerNt:       mfePerNt,
		AURichElements: areCount,
		StabilityScore: stabilityScore,
		Status:         classifyStability(stabilityScore),
	}
}

// computeGC3 is the GC fraction at the third (wobble) position of every
// codon (spec.md §4.4c).
func computeGC3(codons []string) float64 {
	if len(codons) == 0 {
		return 0
	}
	var gc3 int
	for _, codon := range codons {
		if len(codon) != 3 {
			continue
		}
		last := codon[2]
		if last == 'G' || last == 'C' {
			gc3++
		}
	}
	return float64(gc3) / float64(len(codons))
}

// normaliseGC3 implements the piecewise-linear GC3 normalisation: optimum
// plateau 0.5-0.7, linear falloff outside it (spec.md §4.4c).
func normaliseGC3(gc3 float64) float64 {
	switch {
	case gc3 >= 0.5 && gc3 <= 0.7:
		return 1.0
	case gc3 < 0.5:
		return max0(gc3 / 0.5)
	default:
		return max0((1.0 - gc3) / 0.3)
	}
}

// normaliseStabilityMFE implements the piecewise-linear MFE/nt
// normalisation: ≤ −0.4 is fully stable, ≥ −0.1 is fully unstable, linear
// between (spec.md §4.4c).
func normaliseStabilityMFE(mfePerNt float64) float64 {
	switch {
	case mfePerNt <= -0.4:
		return 1.0
	case mfePerNt >= -0.1:
		return 0.0
	default:
		return (-mfePerNt - 0.1) / 0.3
	}
}

func classifyStability(score float64) Status {
	switch {
	case score >= 0.7:
		return StatusGreen
	case score >= 0.4:
		return StatusAmber
	default:
		return StatusRed
	}
}

// countAURichElements counts non-overlapping AUUUA pentamer occurrences in
// the 3′UTR.
func countAURichElements(utr3 string) int {
	if utr3 == "" {
		return 0
	}
	var count int
	rest := utr3
	for {
		idx := strings.Index(rest, arePentamer)
		if idx == -1 {
			break
		}
		count++
		rest = rest[idx+len(arePentamer):]
	}
	return count
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
