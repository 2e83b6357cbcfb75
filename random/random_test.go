package random

import (
	"testing"

	"github.com/avantgene/utrforge/checks"
)

func TestRNASequenceLength(t *testing.T) {
	const length = 150
	sequence := RNASequence(length, 2)

	if len(sequence) != length {
		t.Errorf("RNASequence(150, 2) has length %d, want %d", len(sequence), length)
	}
	if !checks.IsRNA(sequence) {
		t.Errorf("RNASequence(150, 2) = %q, want only RNA bases", sequence)
	}
}

func TestRNASequenceDeterministic(t *testing.T) {
	a := RNASequence(64, 7)
	b := RNASequence(64, 7)
	if a != b {
		t.Errorf("RNASequence(64, 7) is not deterministic: got %q then %q", a, b)
	}
}

func TestRNASequenceVariesWithSeed(t *testing.T) {
	a := RNASequence(64, 1)
	b := RNASequence(64, 2)
	if a == b {
		t.Errorf("RNASequence(64, 1) and RNASequence(64, 2) collided: %q", a)
	}
}
