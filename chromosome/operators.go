package chromosome

import (
	"fmt"
	"math/rand"
	"strings"
)

// Mutate applies spec.md §4.7's two mutation rules independently to every
// row of m, in place: each nucleotide column is resampled uniformly with
// probability p, and the length column takes a bounded random walk step of
// up to ±maxLengthDelta with probability p (never a uniform resample —
// large length jumps are disruptive).
func Mutate(m Matrix, cfg Config, p float64, rng *rand.Rand) {
	for _, row := range m {
		if rng.Float64() < p {
			delta := rng.Intn(2*cfg.MaxLengthDelta+1) - cfg.MaxLengthDelta
			row[0] = clamp(row[0]+delta, cfg.UTR5Min, cfg.UTR5Max)
		}
		for i := 1; i < len(row); i++ {
			if rng.Float64() < p {
				row[i] = rng.Intn(len(NucleotideCodes))
			}
		}
	}
}

// Crossover performs uniform crossover on two equal-width parent rows,
// including the length column, so a child may inherit either parent's
// active length independently of its payload (spec.md §4.7 "Crossover").
func Crossover(a, b Row, rng *rand.Rand) (Row, Row) {
	childA := make(Row, len(a))
	childB := make(Row, len(b))
	for i := range a {
		if rng.Float64() < 0.5 {
			childA[i], childB[i] = a[i], b[i]
		} else {
			childA[i], childB[i] = b[i], a[i]
		}
	}
	return childA, childB
}

// Deduplicate removes chromosomes that are duplicates under spec.md §4.7's
// definition: equal length AND equal active (non-padding) nucleotide
// columns. The first occurrence of each distinct chromosome is kept, order
// preserved.
func Deduplicate(m Matrix) Matrix {
	seen := make(map[string]bool, len(m))
	out := make(Matrix, 0, len(m))
	for _, row := range m {
		key := dedupeKey(row)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, row)
	}
	return out
}

func dedupeKey(row Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:", row[0])
	for i := 0; i < row[0]; i++ {
		b.WriteByte(byte('0' + row[1+i]))
	}
	return b.String()
}
