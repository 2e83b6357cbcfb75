// Package nsga3 implements the elitist NSGA-III survival step the
// orchestrator drives once per generation: fast non-dominated sorting,
// reference-direction niching, and an external elitist archive that gives
// the engine its monotone-improvement guarantee (spec.md §4.8, §9
// "Elitist archive").
package nsga3

// Partitions is the Das–Dennis partition count the whole system is fixed
// to (spec.md §6 "Constants that implementations must match bit-exactly").
const Partitions = 3

// DasDennis generates the canonical set of structured reference points on
// the unit simplex in numObjectives dimensions, each coordinate a multiple
// of 1/partitions, every point's coordinates summing to 1. This is the
// boundary-layer construction NSGA-III niches individuals against.
func DasDennis(numObjectives, partitions int) [][]float64 {
	var points [][]float64
	var recurse func(remaining int, depth int, current []int)
	recurse = func(remaining int, depth int, current []int) {
		if depth == numObjectives-1 {
			point := make([]float64, numObjectives)
			for i, v := range current {
				point[i] = float64(v) / float64(partitions)
			}
			point[numObjectives-1] = float64(remaining) / float64(partitions)
			points = append(points, point)
			return
		}
		for v := 0; v <= remaining; v++ {
			recurse(remaining-v, depth+1, append(current, v))
		}
	}
	recurse(partitions, 0, make([]int, 0, numObjectives))
	return points
}
