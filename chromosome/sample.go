package chromosome

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sample builds an nSamples × Width() matrix. Column 0 is drawn from a
// Gaussian clamped to [UTR5Min, UTR5Max] when initialLength is non-nil,
// else uniformly over the same range; payload columns are drawn uniformly
// from {0,1,2,3}. If seeds are supplied, the first min(len(seeds),
// nSamples) rows are overwritten with the encoded seed strings (spec.md
// §4.7 "Sampling").
func Sample(nSamples int, cfg Config, initialLength *int, seeds []string, rng *rand.Rand) Matrix {
	width := cfg.Width()
	matrix := make(Matrix, nSamples)
	for i := range matrix {
		matrix[i] = sampleRow(cfg, width, initialLength, rng)
	}

	seeded := len(seeds)
	if seeded > nSamples {
		seeded = nSamples
	}
	for i := 0; i < seeded; i++ {
		matrix[i] = Encode(seeds[i], width, cfg.UTR5Min, cfg.UTR5Max)
	}

	return matrix
}

func sampleRow(cfg Config, width int, initialLength *int, rng *rand.Rand) Row {
	row := make(Row, width)
	row[0] = sampleLength(cfg, initialLength, rng)
	for i := 1; i < width; i++ {
		row[i] = rng.Intn(len(NucleotideCodes))
	}
	return row
}

// sampleLength draws column 0: Gaussian-around-initialLength when given,
// uniform otherwise, always clamped into [UTR5Min, UTR5Max].
func sampleLength(cfg Config, initialLength *int, rng *rand.Rand) int {
	if initialLength == nil {
		span := cfg.UTR5Max - cfg.UTR5Min + 1
		return cfg.UTR5Min + rng.Intn(span)
	}

	mu := float64(*initialLength)
	dist := distuv.Normal{Mu: mu, Sigma: 0.1 * mu, Src: rng}
	draw := int(dist.Rand())
	return clamp(draw, cfg.UTR5Min, cfg.UTR5Max)
}
