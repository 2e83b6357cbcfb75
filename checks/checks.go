/*
Package checks provides small predicates over RNA/DNA sequence strings used
throughout the manufacturability and sponge-building code: alphabet
membership, GC content, and palindrome detection for restriction-site
strand deduplication.
*/
package checks

import (
	"strings"

	"github.com/avantgene/utrforge/transform"
)

// IsPalindromic reports whether sequence equals its own reverse complement,
// e.g. a restriction site that reads the same on both strands. Used to skip
// double-counting a site's reverse-complement scan (spec.md §4.4b).
func IsPalindromic(sequence string) bool {
	return sequence == transform.ReverseComplement(sequence)
}

// GcContent returns the fraction of G/C bases in sequence, in [0,1].
func GcContent(sequence string) float64 {
	sequence = strings.ToUpper(sequence)
	if len(sequence) == 0 {
		return 0
	}
	g := strings.Count(sequence, "G")
	c := strings.Count(sequence, "C")
	return float64(g+c) / float64(len(sequence))
}

// IsDNA reports whether seq contains only the DNA alphabet {A,C,G,T}.
func IsDNA(seq string) bool {
	for _, base := range seq {
		switch base {
		case 'A', 'C', 'T', 'G':
			continue
		default:
			return false
		}
	}
	return len(seq) > 0
}

// IsRNA reports whether seq contains only the RNA alphabet {A,C,G,U}.
func IsRNA(seq string) bool {
	for _, base := range seq {
		switch base {
		case 'A', 'C', 'U', 'G':
			continue
		default:
			return false
		}
	}
	return len(seq) > 0
}
