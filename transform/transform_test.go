package transform

import (
	"fmt"
	"testing"
)

func ExampleReverseComplement() {
	sequence := "GAUUACA"
	reverseComplement := ReverseComplement(sequence)
	fmt.Println(reverseComplement)

	// Output: UGUAAUC
}

func ExampleComplement() {
	sequence := "GAUUACA"
	complement := Complement(sequence)
	fmt.Println(complement)

	// Output: CUAAUGU
}

func ExampleReverse() {
	sequence := "GAUUACA"
	reverse := Reverse(sequence)
	fmt.Println(reverse)

	// Output: ACAUUAG
}

func TestComplementBaseIsInvolution(t *testing.T) {
	for _, base := range []rune{'A', 'C', 'G', 'U'} {
		complement := ComplementBase(base)
		if back := ComplementBase(complement); back != base {
			t.Errorf("ComplementBase(ComplementBase(%q)) = %q, want %q", base, back, base)
		}
	}
}

func TestComplementBaseUnknown(t *testing.T) {
	if got := ComplementBase('N'); got != 'N' {
		t.Errorf("ComplementBase('N') = %q, want 'N'", got)
	}
}
