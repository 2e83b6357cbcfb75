package scoring

import (
	"strings"
	"testing"

	"github.com/avantgene/utrforge/transform"
)

func TestScanAccidentalMirnaSitesDetectsFullMatch(t *testing.T) {
	fullTarget := transform.ReverseComplement(accidentalMirnaLibrary["miR-1-3p"])
	transcript := "CCCC" + fullTarget + "CCCC"

	warnings := ScanAccidentalMirnaSites(transcript, 4, 4+len(fullTarget))
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if !strings.Contains(warnings[0].Message, "miR-1-3p") {
		t.Errorf("warning message %q should name miR-1-3p", warnings[0].Message)
	}
}

func TestScanAccidentalMirnaSitesNoHits(t *testing.T) {
	transcript := "AAAACCCCGGGGUUUU"
	if warnings := ScanAccidentalMirnaSites(transcript, 4, 8); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %d", len(warnings))
	}
}

func TestDedupeSeedHitsDropsOverlap(t *testing.T) {
	fullHits := []int{10}
	seedHits := []int{10, 50}
	kept := dedupeSeedHits(seedHits, fullHits, 22)
	if len(kept) != 1 || kept[0] != 50 {
		t.Errorf("kept = %v, want [50]", kept)
	}
}
