package fold

import "strings"

// minHairpinLoop is the minimum number of unpaired bases enclosed by a base
// pair; real hairpins need at least 3 unpaired nucleotides to close without
// steric clash.
const minHairpinLoop = 3

// pairEnergy is the free-energy contribution of a single base pair.
// stackBonus is the additional contribution when a pair is immediately
// nested inside another pair (i+1, j-1), approximating the real stacking
// stabilisation nearest-neighbour models give adjacent stacked pairs.
const (
	pairEnergy = -1.0
	stackBonus = -0.5
)

// canPair reports whether two RNA bases are Watson-Crick or wobble
// complementary.
func canPair(a, b byte) bool {
	switch {
	case a == 'A' && b == 'U', a == 'U' && b == 'A':
		return true
	case a == 'C' && b == 'G', a == 'G' && b == 'C':
		return true
	case a == 'G' && b == 'U', a == 'U' && b == 'G':
		return true
	default:
		return false
	}
}

// NussinovFolder is a self-contained Folder implementation: a classic
// Nussinov maximum base-pairing dynamic program with a fixed stacking bonus
// in place of a full nearest-neighbour energy model. It trades thermodynamic
// accuracy for having no external dependency and no large parameter table,
// and exists so the scoring pipeline has a working Folder without requiring
// a real ViennaRNA integration to be wired in first.
type NussinovFolder struct{}

// Fold implements Folder.
func (NussinovFolder) Fold(seq string) (Result, error) {
	seq = strings.ToUpper(seq)
	n := len(seq)
	if n == 0 {
		return Result{DotBracket: "", MFE: 0}, nil
	}

	dp := make([][]int, n)
	for i := range dp {
		dp[i] = make([]int, n)
	}

	for span := minHairpinLoop + 1; span < n; span++ {
		for i := 0; i+span < n; i++ {
			j := i + span
			best := dp[i+1][j]
			if v := dp[i][j-1]; v > best {
				best = v
			}
			if canPair(seq[i], seq[j]) {
				inner := 0
				if i+1 <= j-1 {
					inner = dp[i+1][j-1]
				}
				if v := inner + 1; v > best {
					best = v
				}
			}
			for k := i + 1; k < j; k++ {
				if v := dp[i][k] + dp[k+1][j]; v > best {
					best = v
				}
			}
			dp[i][j] = best
		}
	}

	pairs := make(map[int]int)
	traceback(seq, dp, 0, n-1, pairs)

	bracket := make([]byte, n)
	for i := range bracket {
		bracket[i] = '.'
	}
	stacked := 0
	for i, j := range pairs {
		if i < j {
			bracket[i] = '('
			bracket[j] = ')'
			if partner, ok := pairs[i+1]; ok && partner == j-1 {
				stacked++
			}
		}
	}

	numPairs := len(pairs) / 2
	mfe := float64(numPairs)*pairEnergy + float64(stacked)*stackBonus
	return Result{DotBracket: string(bracket), MFE: mfe}, nil
}

// traceback recovers one optimal pairing from the dp table, recording each
// pair symmetrically in pairs (i->j and j->i).
func traceback(seq string, dp [][]int, i, j int, pairs map[int]int) {
	if j-i <= minHairpinLoop {
		return
	}
	if dp[i][j] == dp[i+1][j] {
		traceback(seq, dp, i+1, j, pairs)
		return
	}
	if dp[i][j] == dp[i][j-1] {
		traceback(seq, dp, i, j-1, pairs)
		return
	}
	if canPair(seq[i], seq[j]) {
		inner := 0
		if i+1 <= j-1 {
			inner = dp[i+1][j-1]
		}
		if dp[i][j] == inner+1 {
			pairs[i] = j
			pairs[j] = i
			if i+1 <= j-1 {
				traceback(seq, dp, i+1, j-1, pairs)
			}
			return
		}
	}
	for k := i + 1; k < j; k++ {
		if dp[i][j] == dp[i][k]+dp[k+1][j] {
			traceback(seq, dp, i, k, pairs)
			traceback(seq, dp, k+1, j, pairs)
			return
		}
	}
}
