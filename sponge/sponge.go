/*
Package sponge builds the miRNA sponge cassette spliced into a design's 3′
UTR. Build is a pure function: given the mature sequences of the miRNAs
selected by the mirna package's set-cover selector, it returns a single
RNA literal ready to append to a 3′ UTR.
*/
package sponge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/avantgene/utrforge/transform"
)

// minMirnaLength is the shortest mature miRNA sequence a sponge site can be
// built from: a 4-nt bulge plus an 8-nt seed match take 12 nt, and any
// bases beyond those form the 3′ match.
const minMirnaLength = 12

const bulgeLength = 4
const seedMatchLength = 8

// spacers is a frozen, cyclically-reused list of 4-nt linkers between
// consecutive sponge sites.
var spacers = []string{
	"ACGU", "UGCA", "GACU", "CUGA",
	"AGUC", "UCAG", "GUAC", "CAGU",
	"AUCG", "UAGC", "GCUA", "CGAU",
	"AACC", "UUGG", "GGAA", "CCUU",
}

// polyASignal is the 258-nt literal appended to the end of every sponge
// cassette, a synthetic polyadenylation signal.
const polyASignal = "AAGCCCAAUAAACCACUCUGACUGGCCGAAUAGGGAUAUAGGCAACGACAUGUGCGGCGACCCUUGCGACAGUGACGCUUUCGCCGUUGCCUAAACCUAUUUGAAGGAGUCUAGCAGCCGCAGUAAGGCACAAUACCUCGUCCGUGUUACCAGACCAAACAAGACGUCCUCUUCAAUGUUUAAAUGACCCUCUCGUCAUAAAACCUUUCUACUAUGUGUUCCGCAAGAAUCAACAACUACAAUGGCGCGUCGUGAAUA"

// mismatchedBulgePartner maps each RNA base to the nucleotide the bulge
// construction substitutes in its place (spec.md §4.2 step 3). This is
// deliberately not the Watson-Crick complement: a mismatched bulge induces
// translational repression rather than slicer-mediated cleavage.
var mismatchedBulgePartner = map[rune]rune{
	'A': 'C',
	'U': 'G',
	'G': 'U',
	'C': 'A',
}

// Build assembles a sponge cassette from the mature miRNA sequences already
// chosen by the set-cover selector. numSites sponge sites are emitted,
// cycling through mirnaSeqs if fewer miRNAs than sites are supplied. Every
// miRNA must be at least minMirnaLength nt long.
func Build(mirnaSeqs []string, numSites int) (string, error) {
	if len(mirnaSeqs) == 0 {
		return "", errors.New("sponge: at least one miRNA sequence is required")
	}
	if numSites <= 0 {
		return "", errors.New("sponge: numSites must be positive")
	}
	for _, seq := range mirnaSeqs {
		if len(seq) < minMirnaLength {
			return "", fmt.Errorf("sponge: miRNA %q is shorter than %d nt", seq, minMirnaLength)
		}
	}

	var cassette strings.Builder
	for i := 0; i < numSites; i++ {
		mirna := mirnaSeqs[i%len(mirnaSeqs)]
		site := buildSite(mirna)
		cassette.WriteString(site)
		if i < numSites-1 {
			cassette.WriteString(spacers[i%len(spacers)])
		}
	}

	var wrapped strings.Builder
	wrapped.WriteString("UAA")
	wrapped.WriteString("GCAUAC")
	wrapped.WriteString(cassette.String())
	wrapped.WriteString("GAUC")
	wrapped.WriteString(polyASignal)
	return wrapped.String(), nil
}

// buildSite builds a single bulged sponge site for one mature miRNA
// sequence: reverse-complement the miRNA, partition it into
// three_prime_match ∥ bulge ∥ seed_match, then scramble the bulge to a
// mismatched partner base.
func buildSite(mirna string) string {
	reverseComplement := transform.ReverseComplement(mirna)
	n := len(reverseComplement)

	seedMatch := reverseComplement[n-seedMatchLength:]
	bulge := reverseComplement[n-seedMatchLength-bulgeLength : n-seedMatchLength]
	threePrimeMatch := reverseComplement[:n-seedMatchLength-bulgeLength]

	bulgedBulge := strings.Map(func(r rune) rune {
		if partner, ok := mismatchedBulgePartner[r]; ok {
			return partner
		}
		return r
	}, bulge)

	var site strings.Builder
	site.WriteString(threePrimeMatch)
	site.WriteString(bulgedBulge)
	site.WriteString(seedMatch)
	return site.String()
}
