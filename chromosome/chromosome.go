// Package chromosome implements the variable-length 5′UTR encoding the
// NSGA-III engine evolves: a fixed-width row with a length header and a
// nucleotide-code payload, so vectorised sampling/mutation/crossover never
// have to branch on an individual's active length (spec.md §4.7, §9
// "Variable-length individuals").
package chromosome

import (
	"github.com/avantgene/utrforge/alphabet"
)

// NucleotideCodes is the fixed column order {0,1,2,3} a chromosome's
// payload columns are drawn from, matching alphabet.RNA's symbol order.
var NucleotideCodes = alphabet.RNA.Symbols()

// Row is one chromosome: Row[0] is the active 5′UTR length, Row[1:] are
// nucleotide codes in [0,3]; columns at or beyond the active length are
// padding and must never influence decoding.
type Row []int

// Matrix is a population of chromosomes sharing the same row width.
type Matrix []Row

// Config bounds every sampling/mutation operation.
type Config struct {
	UTR5Min        int
	UTR5Max        int
	MaxLengthDelta int
}

// Width returns the fixed row width (1 length column + UTR5Max payload
// columns) for a configuration.
func (c Config) Width() int {
	return c.UTR5Max + 1
}

// Decode reads a row's active length and returns the 5′UTR string it
// encodes, ignoring any padding columns beyond the active length.
func Decode(row Row) string {
	length := row[0]
	out := make([]byte, length)
	for i := 0; i < length; i++ {
		out[i] = codeToBase(row[1+i])
	}
	return string(out)
}

// Encode builds a row from a concrete 5′UTR string, padding or clipping
// the payload to width-1 columns and clamping the length to [min, max]
// (spec.md §4.7 seed-row handling).
func Encode(utr5 string, width, min, max int) Row {
	row := make(Row, width)
	row[0] = clamp(len(utr5), min, max)

	for i := 0; i < width-1; i++ {
		if i < len(utr5) {
			row[1+i] = baseToCode(utr5[i])
		}
	}
	return row
}

func codeToBase(code int) byte {
	if code < 0 || code >= len(NucleotideCodes) {
		code = 0
	}
	return NucleotideCodes[code][0]
}

func baseToCode(base byte) int {
	for i, symbol := range NucleotideCodes {
		if symbol[0] == base {
			return i
		}
	}
	return 0
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
