package chromosome

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	utr5 := "GCAU"
	row := Encode(utr5, 10, 1, 20)
	if got := Decode(row); got != utr5 {
		t.Errorf("Decode(Encode(%q)) = %q, want %q", utr5, got, utr5)
	}
}

func TestEncodeClampsLength(t *testing.T) {
	row := Encode("GCAUGCAUGCAU", 5, 1, 3)
	if row[0] != 3 {
		t.Errorf("length = %d, want clamped to 3", row[0])
	}
}

func TestEncodeIgnoresPaddingBeyondActiveLength(t *testing.T) {
	row := Encode("GC", 10, 1, 20)
	row[1+row[0]] = 3 // corrupt a padding column
	if got := Decode(row); got != "GC" {
		t.Errorf("padding corruption leaked into decode: got %q", got)
	}
}

func TestWidthIsUTR5MaxPlusOne(t *testing.T) {
	cfg := Config{UTR5Min: 1, UTR5Max: 20, MaxLengthDelta: 2}
	if cfg.Width() != 21 {
		t.Errorf("Width() = %d, want 21", cfg.Width())
	}
}
