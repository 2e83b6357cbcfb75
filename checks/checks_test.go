package checks

import "testing"

func TestIsPalindromic(t *testing.T) {
	ecoRI := IsPalindromic("GAAUUC")
	if !ecoRI {
		t.Errorf("IsPalindromic failed to call EcoRI (RNA) a palindrome")
	}
	bsaI := IsPalindromic("GGUCUC")
	if bsaI {
		t.Errorf("IsPalindromic called BsaI (RNA) a palindrome")
	}
}

func TestGcContent(t *testing.T) {
	if got := GcContent("GGCC"); got != 1.0 {
		t.Errorf("GcContent(GGCC) = %v, want 1.0", got)
	}
	if got := GcContent("AAUU"); got != 0.0 {
		t.Errorf("GcContent(AAUU) = %v, want 0.0", got)
	}
}

func TestIsRNA(t *testing.T) {
	if !IsRNA("ACGU") {
		t.Errorf("IsRNA(ACGU) = false, want true")
	}
	if IsRNA("ACGT") {
		t.Errorf("IsRNA(ACGT) = true, want false")
	}
	if IsRNA("") {
		t.Errorf("IsRNA(\"\") = true, want false")
	}
}
