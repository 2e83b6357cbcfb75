package mirna

import (
	"fmt"
	"sort"

	"github.com/juliangruber/go-intersect"
)

// CoverResult is the outcome of GreedyCover: the chosen miRNAs, the newly
// covered cell types contributed by each selection step (in selection
// order), any cell type still uncovered when the loop stopped, and whether
// every non-target cell type was covered.
type CoverResult struct {
	Selected       []string
	CoveredPerStep [][]string
	Uncovered      []string
	Success        bool
}

// GreedyCover selects a minimal set of miRNAs such that every cell type
// other than target is covered (mean RPM ≥ coverThreshold) by at least one
// selected miRNA, while every selected miRNA is silent in target (mean RPM
// < targetThreshold). It stops once every non-target cell type is covered
// or maxMirnas have been picked (spec.md §4.3).
func GreedyCover(matrix *ExpressionMatrix, target string, targetThreshold, coverThreshold float64, maxMirnas int) (CoverResult, error) {
	if !matrix.HasCellType(target) {
		return CoverResult{}, fmt.Errorf("mirna: unknown target cell type %q", target)
	}

	nonTarget := make([]string, 0, len(matrix.cellTypes)-1)
	for _, cellType := range matrix.cellTypes {
		if cellType != target {
			nonTarget = append(nonTarget, cellType)
		}
	}

	candidates := make([]string, 0)
	covers := make(map[string][]string)
	for _, mirnaID := range matrix.MirnaIDs() {
		targetRPM, _ := matrix.MeanRPM(mirnaID, target)
		if targetRPM >= targetThreshold {
			continue
		}
		candidates = append(candidates, mirnaID)

		covered := make([]string, 0)
		for _, cellType := range nonTarget {
			if rpm, ok := matrix.MeanRPM(mirnaID, cellType); ok && rpm >= coverThreshold {
				covered = append(covered, cellType)
			}
		}
		covers[mirnaID] = covered
	}

	uncovered := append([]string(nil), nonTarget...)
	result := CoverResult{
		Selected:       make([]string, 0),
		CoveredPerStep: make([][]string, 0),
	}

	for len(uncovered) > 0 && (maxMirnas <= 0 || len(result.Selected) < maxMirnas) {
		bestMirna := ""
		var bestNewlyCovered []string

		for _, mirnaID := range candidates {
			if alreadySelected(result.Selected, mirnaID) {
				continue
			}
			newlyCovered := intersectStrings(covers[mirnaID], uncovered)
			if len(newlyCovered) > len(bestNewlyCovered) ||
				(len(newlyCovered) == len(bestNewlyCovered) && len(newlyCovered) > 0 && mirnaID < bestMirna) {
				bestMirna = mirnaID
				bestNewlyCovered = newlyCovered
			}
		}

		if bestMirna == "" || len(bestNewlyCovered) == 0 {
			break
		}

		result.Selected = append(result.Selected, bestMirna)
		result.CoveredPerStep = append(result.CoveredPerStep, bestNewlyCovered)
		uncovered = subtractStrings(uncovered, bestNewlyCovered)
	}

	result.Uncovered = uncovered
	result.Success = len(uncovered) == 0
	return result, nil
}

func alreadySelected(selected []string, mirnaID string) bool {
	for _, s := range selected {
		if s == mirnaID {
			return true
		}
	}
	return false
}

// intersectStrings returns the sorted intersection of a and b using
// go-intersect, mirroring the teacher's range-intersection idiom in
// synthesis.go (there used for overlapping suggestion ranges, here for a
// candidate's covered-cell-type set against the still-uncovered set).
func intersectStrings(a, b []string) []string {
	aSorted := append([]string(nil), a...)
	bSorted := append([]string(nil), b...)
	sort.Strings(aSorted)
	sort.Strings(bSorted)

	overlap, ok := intersect.Sorted(aSorted, bSorted).([]string)
	if !ok {
		return nil
	}
	return overlap
}

func subtractStrings(a, remove []string) []string {
	removeSet := make(map[string]bool, len(remove))
	for _, r := range remove {
		removeSet[r] = true
	}
	out := make([]string, 0, len(a))
	for _, v := range a {
		if !removeSet[v] {
			out = append(out, v)
		}
	}
	return out
}
