package nsga3

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Normalize translates population onto the ideal point (per-objective
// minimum becomes 0) and scales by per-objective intercepts found via the
// achievement scalarising function, the standard NSGA-III normalisation
// step that makes reference-direction distances comparable across
// objectives of very different magnitude.
func Normalize(population [][]float64) (ideal []float64, normalized [][]float64) {
	m := len(population[0])
	ideal = make([]float64, m)
	for j := 0; j < m; j++ {
		ideal[j] = math.Inf(1)
	}
	for _, row := range population {
		for j, v := range row {
			if v < ideal[j] {
				ideal[j] = v
			}
		}
	}

	translated := make([][]float64, len(population))
	for i, row := range population {
		translated[i] = make([]float64, m)
		for j, v := range row {
			translated[i][j] = v - ideal[j]
		}
	}

	intercepts := computeIntercepts(translated, m)

	normalized = make([][]float64, len(population))
	for i, row := range translated {
		normalized[i] = make([]float64, m)
		for j, v := range row {
			if intercepts[j] < 1e-10 {
				normalized[i][j] = v
				continue
			}
			normalized[i][j] = v / intercepts[j]
		}
	}
	return ideal, normalized
}

// computeIntercepts finds, for each objective axis, the extreme point
// (via the achievement scalarising function with objective j weighted
// heavily) and solves for the hyperplane those extreme points define,
// falling back to the per-objective maximum when the hyperplane is
// degenerate (near-collinear extreme points).
func computeIntercepts(translated [][]float64, m int) []float64 {
	extremeIdx := make([]int, m)
	for j := 0; j < m; j++ {
		best := -1
		bestASF := math.Inf(1)
		for i, row := range translated {
			asf := achievementScalarisingFunction(row, j)
			if asf < bestASF {
				bestASF = asf
				best = i
			}
		}
		extremeIdx[j] = best
	}

	a := mat.NewDense(m, m, nil)
	for i, idx := range extremeIdx {
		a.SetRow(i, translated[idx])
	}
	ones := make([]float64, m)
	for i := range ones {
		ones[i] = 1
	}

	var coeffs mat.VecDense
	if err := coeffs.SolveVec(a, mat.NewVecDense(m, ones)); err != nil {
		return fallbackIntercepts(translated, m)
	}

	intercepts := make([]float64, m)
	degenerate := false
	for j := 0; j < m; j++ {
		c := coeffs.AtVec(j)
		if c <= 1e-10 {
			degenerate = true
			break
		}
		intercepts[j] = 1 / c
	}
	if degenerate {
		return fallbackIntercepts(translated, m)
	}
	return intercepts
}

func fallbackIntercepts(translated [][]float64, m int) []float64 {
	intercepts := make([]float64, m)
	for j := 0; j < m; j++ {
		max := 0.0
		for _, row := range translated {
			if row[j] > max {
				max = row[j]
			}
		}
		if max < 1e-10 {
			max = 1.0
		}
		intercepts[j] = max
	}
	return intercepts
}

// achievementScalarisingFunction weights every axis but j by a large
// constant, so its minimiser is whichever point is most extreme along
// axis j.
func achievementScalarisingFunction(point []float64, axis int) float64 {
	const epsilonWeight = 1e6
	max := 0.0
	for j, v := range point {
		weight := 1.0
		if j != axis {
			weight = epsilonWeight
		}
		if scaled := v * weight; scaled > max {
			max = scaled
		}
	}
	return max
}

// perpendicularDistance is the distance from point to the line through the
// origin in direction dir, the quantity reference-direction niching
// minimises over.
func perpendicularDistance(point, dir []float64) float64 {
	dirNormSq := floats.Dot(dir, dir)
	if dirNormSq < 1e-12 {
		return floats.Norm(point, 2)
	}
	proj := floats.Dot(point, dir) / dirNormSq
	projected := make([]float64, len(point))
	copy(projected, dir)
	floats.Scale(proj, projected)
	diff := make([]float64, len(point))
	floats.SubTo(diff, point, projected)
	return floats.Norm(diff, 2)
}

// association is one individual's closest reference direction and its
// perpendicular distance to it.
type association struct {
	index    int
	refDir   int
	distance float64
}

// associate assigns every normalized point to its nearest reference
// direction by perpendicular distance.
func associate(normalized [][]float64, refDirs [][]float64) []association {
	out := make([]association, len(normalized))
	for i, point := range normalized {
		bestDir := 0
		bestDist := math.Inf(1)
		for d, dir := range refDirs {
			dist := perpendicularDistance(point, dir)
			if dist < bestDist {
				bestDist = dist
				bestDir = d
			}
		}
		out[i] = association{index: i, refDir: bestDir, distance: bestDist}
	}
	return out
}

// NicheSelect implements NSGA-III's niching survival: sweep fronts in
// order, take whole fronts while they fit within popSize, then fill the
// remaining slots from the last (partially-accepted) front by repeatedly
// picking from the least-represented reference direction, breaking ties by
// smallest perpendicular distance (spec.md §4.8 step 4).
func NicheSelect(fronts [][]int, objectives [][]float64, refDirs [][]float64, popSize int) []int {
	var selected []int
	var lastFront []int
	frontIdx := 0
	for ; frontIdx < len(fronts); frontIdx++ {
		if len(selected)+len(fronts[frontIdx]) > popSize {
			lastFront = fronts[frontIdx]
			break
		}
		selected = append(selected, fronts[frontIdx]...)
	}
	remaining := popSize - len(selected)
	if remaining <= 0 {
		return selected
	}

	_, normalized := Normalize(objectives)
	assocAll := associate(normalized, refDirs)
	assocByIdx := make(map[int]association, len(assocAll))
	for _, a := range assocAll {
		assocByIdx[a.index] = a
	}

	nicheCount := make([]int, len(refDirs))
	for _, idx := range selected {
		nicheCount[assocByIdx[idx].refDir]++
	}

	candidates := make([]association, len(lastFront))
	for i, idx := range lastFront {
		candidates[i] = assocByIdx[idx]
	}

	for remaining > 0 && len(candidates) > 0 {
		minNiche := minNicheCount(nicheCount, candidates)
		pickIdx := pickFromNiche(candidates, nicheCount, minNiche)
		selected = append(selected, candidates[pickIdx].index)
		nicheCount[candidates[pickIdx].refDir]++
		candidates = append(candidates[:pickIdx], candidates[pickIdx+1:]...)
		remaining--
	}
	return selected
}

func minNicheCount(nicheCount []int, candidates []association) int {
	min := math.MaxInt32
	for _, c := range candidates {
		if nicheCount[c.refDir] < min {
			min = nicheCount[c.refDir]
		}
	}
	return min
}

// pickFromNiche returns the index within candidates of the closest
// individual whose reference direction currently has minNiche members.
func pickFromNiche(candidates []association, nicheCount []int, minNiche int) int {
	best := -1
	bestDist := math.Inf(1)
	for i, c := range candidates {
		if nicheCount[c.refDir] != minNiche {
			continue
		}
		if c.distance < bestDist {
			bestDist = c.distance
			best = i
		}
	}
	if best == -1 {
		return 0
	}
	return best
}
