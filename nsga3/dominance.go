package nsga3

// Objectives are minimisation-convention cost vectors: lower is better in
// every dimension. The orchestrator converts fitness.Objectives (higher is
// better, in (0,1)) to this convention via 1-value before calling into
// this package.

// Dominates reports whether a Pareto-dominates b: a is no worse than b in
// every objective and strictly better in at least one.
func Dominates(a, b []float64) bool {
	strictlyBetter := false
	for i := range a {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			strictlyBetter = true
		}
	}
	return strictlyBetter
}

// FastNonDominatedSort partitions population indices into successive
// non-domination fronts (front 0 is the non-dominated set), the classic
// Deb et al. O(MN²) algorithm NSGA-III's survival step builds on.
func FastNonDominatedSort(population [][]float64) [][]int {
	n := len(population)
	dominationCount := make([]int, n)
	dominatedBy := make([][]int, n)

	var front0 []int
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			if p == q {
				continue
			}
			switch {
			case Dominates(population[p], population[q]):
				dominatedBy[p] = append(dominatedBy[p], q)
			case Dominates(population[q], population[p]):
				dominationCount[p]++
			}
		}
		if dominationCount[p] == 0 {
			front0 = append(front0, p)
		}
	}

	fronts := [][]int{front0}
	for i := 0; len(fronts[i]) > 0; i++ {
		var next []int
		for _, p := range fronts[i] {
			for _, q := range dominatedBy[p] {
				dominationCount[q]--
				if dominationCount[q] == 0 {
					next = append(next, q)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		fronts = append(fronts, next)
	}
	return fronts
}
