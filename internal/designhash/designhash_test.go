package designhash

import "testing"

func TestHashDeterministic(t *testing.T) {
	a, err := Hash("GCCACCAUGGCCUAA")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	b, err := Hash("gccaccauggccuaa")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if a != b {
		t.Errorf("Hash is case-sensitive: %q != %q", a, b)
	}
}

func TestHashDistinguishesSequences(t *testing.T) {
	a, _ := Hash("AAAACCCC")
	b, _ := Hash("CCCCAAAA")
	if a == b {
		t.Errorf("Hash collided for distinct sequences: %q", a)
	}
}

func TestHashRejectsInvalidBases(t *testing.T) {
	if _, err := Hash("ACGT"); err == nil {
		t.Errorf("Hash(\"ACGT\") should reject T (not an RNA base)")
	}
}

func TestHashPrefix(t *testing.T) {
	hash, err := Hash("ACGU")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash[:4] != "dh1_" {
		t.Errorf("Hash(%q) = %q, want dh1_ prefix", "ACGU", hash)
	}
}

func TestShortIDLength(t *testing.T) {
	id, err := ShortID("GCCACCAUGGCCUAA")
	if err != nil {
		t.Fatalf("ShortID returned error: %v", err)
	}
	if len(id) != 8 {
		t.Errorf("ShortID length = %d, want 8", len(id))
	}
}

func TestShortIDRejectsInvalidBases(t *testing.T) {
	if _, err := ShortID("ACGT"); err == nil {
		t.Errorf("ShortID(\"ACGT\") should reject T (not an RNA base)")
	}
}
