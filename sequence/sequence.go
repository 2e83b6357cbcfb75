/*
Package sequence is the typed record of a candidate mRNA design: a 5′ UTR,
a fixed coding sequence, and a fixed 3′ UTR. It owns the invariants that
every downstream package (nucleotide, scoring, chromosome) assumes already
hold: all three regions are valid RNA, the CDS starts with AUG, its length
is a multiple of 3, and it ends on a stop codon.
*/
package sequence

import (
	"fmt"
	"strings"

	"github.com/avantgene/utrforge/alphabet"
)

// Kozak is the fixed consensus sequence placed between the 5′ UTR and the
// CDS to promote ribosome initiation. It is never evolved.
const Kozak = "GCCACC"

// Cap5 is the synthetic 5′ cap marker prefixed to the full molecule view.
const Cap5 = "GGG"

// PolyALength is the length, in nucleotides, of the poly-A tail appended to
// the full molecule view.
const PolyALength = 120

var stopCodons = map[string]bool{
	"UAA": true,
	"UAG": true,
	"UGA": true,
}

// Error reports why an mRNA record failed validation.
type Error struct {
	message string
}

func (e *Error) Error() string {
	return e.message
}

// MRNA is a validated (5′UTR, CDS, 3′UTR) triple over the RNA alphabet.
type MRNA struct {
	utr5 string
	cds  string
	utr3 string
}

// New validates and constructs an MRNA record. cds must start with AUG,
// have a length divisible by 3, and end with a stop codon; all three
// regions must be entirely over {A,C,G,U}.
func New(utr5, cds, utr3 string) (MRNA, error) {
	for name, seq := range map[string]string{"utr5": utr5, "cds": cds, "utr3": utr3} {
		if idx := alphabet.RNA.Check(seq); idx != -1 {
			return MRNA{}, &Error{message: fmt.Sprintf("%s: byte %d (%q) is not an RNA base", name, idx, seq[idx])}
		}
	}
	if len(cds) < 6 {
		return MRNA{}, &Error{message: "cds must be at least 2 codons (start + stop)"}
	}
	if !strings.HasPrefix(cds, "AUG") {
		return MRNA{}, &Error{message: "cds must start with AUG"}
	}
	if len(cds)%3 != 0 {
		return MRNA{}, &Error{message: fmt.Sprintf("cds length %d is not divisible by 3", len(cds))}
	}
	if !stopCodons[cds[len(cds)-3:]] {
		return MRNA{}, &Error{message: fmt.Sprintf("cds must end with a stop codon, got %q", cds[len(cds)-3:])}
	}
	return MRNA{utr5: utr5, cds: cds, utr3: utr3}, nil
}

// UTR5 returns the 5′ UTR region.
func (m MRNA) UTR5() string { return m.utr5 }

// CDS returns the coding sequence region.
func (m MRNA) CDS() string { return m.cds }

// UTR3 returns the 3′ UTR region.
func (m MRNA) UTR3() string { return m.utr3 }

// Len returns the total length of the transcript (utr5+cds+utr3), not
// including the Kozak insert or the full-molecule cap/poly-A.
func (m MRNA) Len() int {
	return len(m.utr5) + len(m.cds) + len(m.utr3)
}

// Codons returns the CDS split into its constituent 3-nt codons.
func (m MRNA) Codons() []string {
	codons := make([]string, 0, len(m.cds)/3)
	for i := 0; i+3 <= len(m.cds); i += 3 {
		codons = append(codons, m.cds[i:i+3])
	}
	return codons
}

// Transcript returns the assembled sequence exactly as the oracle and
// scoring pipeline see it: utr5 ∥ Kozak ∥ cds ∥ utr3. This is the sequence
// chromosome decoding must reproduce bit-exactly (spec.md §8).
func (m MRNA) Transcript() string {
	var b strings.Builder
	b.Grow(m.Len() + len(Kozak))
	b.WriteString(m.utr5)
	b.WriteString(Kozak)
	b.WriteString(m.cds)
	b.WriteString(m.utr3)
	return b.String()
}

// FullMolecule returns the Transcript annotated with the 5′ cap and the
// poly-A tail, the shape an mRNA actually takes in a cell. Downstream
// fitness scoring operates on Transcript, not FullMolecule: the cap/poly-A
// are not part of the oracle's input window (spec.md §4.1).
func (m MRNA) FullMolecule() string {
	var b strings.Builder
	transcript := m.Transcript()
	b.Grow(len(Cap5) + len(transcript) + PolyALength)
	b.WriteString(Cap5)
	b.WriteString(transcript)
	b.WriteString(strings.Repeat("A", PolyALength))
	return b.String()
}
