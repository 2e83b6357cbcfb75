/*
Package random generates random RNA sequences for population seeding: when
neither gradient nor empirical seeds are available, the orchestrator uses
RNASequence to build a few fallback seed 5' UTRs that chromosome.Sample
writes into the initial population. The remaining rows are filled by
chromosome.Sample itself.
*/
package random

import (
	"math/rand"

	"github.com/avantgene/utrforge/alphabet"
)

// RandomRune returns a uniformly random rune from runes.
func RandomRune(runes []rune) rune {
	randomIndex := rand.Intn(len(runes))
	return runes[randomIndex]
}

// RNASequence returns a random RNA sequence of a given length drawn from a
// seeded source, so that two calls with the same length and seed produce the
// same candidate.
func RNASequence(length int, seed int64) string {
	source := rand.New(rand.NewSource(seed))
	return randomNucleotideSequence(length, source, rnaAlphabet)
}

// rnaAlphabet is the {A,C,G,U} symbol set, shared with alphabet.RNA so the
// sampled bases always round-trip through the chromosome codec.
var rnaAlphabet = runesOf(alphabet.RNA.Symbols())

func runesOf(symbols []string) []rune {
	runes := make([]rune, len(symbols))
	for i, symbol := range symbols {
		runes[i] = []rune(symbol)[0]
	}
	return runes
}

func randomNucleotideSequence(length int, source *rand.Rand, bases []rune) string {
	sequence := make([]rune, length)
	for i := range sequence {
		sequence[i] = bases[source.Intn(len(bases))]
	}
	return string(sequence)
}
