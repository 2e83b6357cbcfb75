/*
Package alphabet provides a small symbol<->index mapping used by the
nucleotide codec to translate between RNA sequence strings and the integer
codes the chromosome and tensor encodings operate on.
*/
package alphabet

import "fmt"

// Alphabet is a struct that holds a list of symbols and a map of symbols to their index in the list.
type Alphabet struct {
	symbols  []string
	encoding map[string]uint8
}

// Error is an error type that is returned when a symbol is not in the alphabet.
type Error struct {
	message string
}

// Error returns the error message for Error.
func (e *Error) Error() string {
	return e.message
}

// NewAlphabet creates a new alphabet from an ordered list of single-character
// symbols. The position of each symbol in the list is its code.
func NewAlphabet(symbols []string) *Alphabet {
	encoding := make(map[string]uint8, len(symbols))
	for index, symbol := range symbols {
		encoding[symbol] = uint8(index)
	}
	return &Alphabet{symbols: symbols, encoding: encoding}
}

// Encode returns the code of a single-character symbol.
func (alphabet *Alphabet) Encode(symbol string) (uint8, error) {
	c, ok := alphabet.encoding[symbol]
	if !ok {
		return 0, fmt.Errorf("symbol %q not in alphabet", symbol)
	}
	return c, nil
}

// EncodeAll encodes every character of seq, failing on the first symbol
// outside the alphabet.
func (alphabet *Alphabet) EncodeAll(seq string) ([]uint8, error) {
	encoded := make([]uint8, len(seq))
	for i := 0; i < len(seq); i++ {
		code, err := alphabet.Encode(string(seq[i]))
		if err != nil {
			return nil, fmt.Errorf("symbol %q at position %d not in alphabet", seq[i], i)
		}
		encoded[i] = code
	}
	return encoded, nil
}

// Check returns the index of the first character of seq that falls outside
// the alphabet, or -1 if seq is entirely within the alphabet.
func (alphabet *Alphabet) Check(seq string) int {
	for i := 0; i < len(seq); i++ {
		if _, ok := alphabet.encoding[string(seq[i])]; !ok {
			return i
		}
	}
	return -1
}

// Decode returns the symbol at a given code.
func (alphabet *Alphabet) Decode(code uint8) (string, error) {
	if int(code) >= len(alphabet.symbols) {
		return "", &Error{message: fmt.Sprintf("code %d not in alphabet", code)}
	}
	return alphabet.symbols[code], nil
}

// Symbols returns the list of symbols in the alphabet.
func (alphabet *Alphabet) Symbols() []string {
	return alphabet.symbols
}

// Len returns the number of symbols in the alphabet.
func (alphabet *Alphabet) Len() int {
	return len(alphabet.symbols)
}

// RNA is the 4-letter ribonucleotide alphabet used throughout utrforge:
// A=0, C=1, G=2, U=3, matching the chromosome row encoding in spec.md §3.
var RNA = NewAlphabet([]string{"A", "C", "G", "U"})
