package nsga3

import "github.com/avantgene/utrforge/chromosome"

// Archive is the external elitist set required for the engine's monotone
// improvement guarantee: because it is always merged back into the
// survival pool, a solution non-dominated in generation g remains eligible
// to survive generation g+1 even if the rest of the population regresses
// (spec.md §4.8 "Monotone improvement invariant", §9 "Elitist archive").
type Archive struct {
	Chromosomes chromosome.Matrix
	Objectives  [][]float64
}

// SetFromFront replaces the archive outright with front (already assumed
// non-dominated — the engine passes the survivors' own front 0), pruned to
// maxSize by reference-direction niching if it overflows (spec.md §4.8
// step 5: "the survivors' non-dominated front becomes the new archive").
// The engine, not this method, is responsible for having already folded
// the previous archive into the survival pool that produced front.
func (arc *Archive) SetFromFront(frontChromosomes chromosome.Matrix, frontObjectives [][]float64, refDirs [][]float64, maxSize int) {
	if len(frontObjectives) <= maxSize {
		arc.Chromosomes = frontChromosomes
		arc.Objectives = frontObjectives
		return
	}

	selected := NicheSelect([][]int{allIndices(len(frontObjectives))}, frontObjectives, refDirs, maxSize)
	arc.Chromosomes = selectChromosomes(frontChromosomes, selected)
	arc.Objectives = selectObjectives(frontObjectives, selected)
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func selectChromosomes(m chromosome.Matrix, indices []int) chromosome.Matrix {
	out := make(chromosome.Matrix, len(indices))
	for i, idx := range indices {
		out[i] = m[idx]
	}
	return out
}

func selectObjectives(o [][]float64, indices []int) [][]float64 {
	out := make([][]float64, len(indices))
	for i, idx := range indices {
		out[i] = o[idx]
	}
	return out
}
