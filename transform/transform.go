/*
Package transform provides RNA sequence transformations shared across the
sponge builder, manufacturability scanner, and miRNA scanner: complement,
reverse, and reverse-complement over the 4-letter RNA alphabet {A,C,G,U}.
*/
package transform

import "strings"

// complementBaseRuneMap maps each RNA base to its Watson-Crick complement.
// Unlike DNA, U complements A (not T); there is no T in this alphabet.
var complementBaseRuneMap = map[rune]rune{
	'A': 'U',
	'C': 'G',
	'G': 'C',
	'U': 'A',
	'a': 'u',
	'c': 'g',
	'g': 'c',
	'u': 'a',
}

// ReverseComplement returns the reverse complement of an RNA sequence.
func ReverseComplement(sequence string) string {
	return Reverse(Complement(sequence))
}

// Complement returns the complement of an RNA sequence, preserving order.
func Complement(sequence string) string {
	return strings.Map(ComplementBase, sequence)
}

// Reverse returns sequence with its characters in reverse order.
func Reverse(sequence string) string {
	runes := []rune(sequence)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// ComplementBase returns the Watson-Crick complement of a single RNA base.
// Bases outside the RNA alphabet are returned unchanged.
func ComplementBase(base rune) rune {
	if c, ok := complementBaseRuneMap[base]; ok {
		return c
	}
	return base
}
