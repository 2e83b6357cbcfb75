/*
Package designhash produces a content hash for a decoded mRNA design
(5' UTR + CDS + 3' UTR), used by the orchestrator as the key of its
per-run cache of scored objectives. Designs
are always linear single-stranded RNA, so the hash carries none of the
circular/double-stranded/protein variation a general-purpose sequence
hash would need - it is deliberately the narrow case of that problem.

A digest is the Blake3 hash of the uppercased full molecule sequence,
hex-encoded with a version prefix so a human reading a cache dump or a
log line can tell at a glance which hash scheme produced it.
*/
package designhash

import (
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/blake2b"
	"lukechampine.com/blake3"
)

// rnaAlphabet is the set of characters a decoded design may contain.
const rnaAlphabet = "ACGU"

// Hash returns the version-tagged digest of an RNA design sequence.
// sequence must contain only A, C, G, U (case-insensitive).
func Hash(sequence string) (string, error) {
	digest, err := Digest(sequence)
	if err != nil {
		return "", err
	}
	return "dh1_" + hex.EncodeToString(digest[:]), nil
}

// Digest returns the raw 32-byte Blake3 digest of an RNA design
// sequence. Two designs with the same bases in the same order always
// produce the same digest, independent of input case.
func Digest(sequence string) ([32]byte, error) {
	var zero [32]byte
	sequence = strings.ToUpper(sequence)
	for _, base := range sequence {
		if !strings.ContainsRune(rnaAlphabet, base) {
			return zero, errors.New("designhash: only letters ACGU are allowed, got: " + string(base))
		}
	}
	return blake3.Sum256([]byte(sequence)), nil
}

// ShortID returns an 8 hex character fingerprint of sequence, for use in
// human-facing output (the CLI's log lines) where the full Hash digest
// would be unwieldy. It deliberately uses a different algorithm than Hash
// (blake2b rather than blake3) so the two never get confused when grepping
// logs for one or the other.
func ShortID(sequence string) (string, error) {
	sequence = strings.ToUpper(sequence)
	for _, base := range sequence {
		if !strings.ContainsRune(rnaAlphabet, base) {
			return "", errors.New("designhash: only letters ACGU are allowed, got: " + string(base))
		}
	}
	digest := blake2b.Sum256([]byte(sequence))
	return hex.EncodeToString(digest[:4]), nil
}
