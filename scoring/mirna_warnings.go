package scoring

import (
	"fmt"
	"strings"

	"github.com/avantgene/utrforge/transform"
)

// accidentalMirnaLibrary holds mature sequences of well-known,
// tissue-restricted miRNAs whose accidental target sites in the assembled
// transcript are worth flagging even though they do not affect fitness
// (SPEC_FULL §12, grounded on evaluation/mirna.py's WARNING_MIRNAS set).
var accidentalMirnaLibrary = map[string]string{
	"miR-1-3p":    "UGGAAUGUAAAGAAGUAUGUAU",
	"miR-208a-3p": "AUAAGACGAGCAAAAAGCUUGU",
	"miR-142-3p":  "UGUAGUGUUUCCUACUUUAUGGA",
}

// seedStart and seedEnd are the 0-indexed, end-exclusive bounds (nt 2-8 in
// 1-indexed terms) of a miRNA's seed region.
const (
	seedStart = 1
	seedEnd   = 8
)

// ScanAccidentalMirnaSites scans transcript for full complementary matches
// and 7-mer seed matches to every miRNA in accidentalMirnaLibrary, the same
// two match classes evaluation/mirna.py's scan_for_mirna computes, adapted
// to this repo's transform codec instead of Python regex. cdsStart/cdsEnd
// mark the CDS boundary within transcript so each hit can be labelled by
// region in its message.
func ScanAccidentalMirnaSites(transcript string, cdsStart, cdsEnd int) []Warning {
	var warnings []Warning
	for name, mirna := range accidentalMirnaLibrary {
		fullTarget := transform.ReverseComplement(mirna)
		seedTarget := transform.ReverseComplement(mirna[seedStart:seedEnd])

		fullHits := findAll(transcript, fullTarget)
		seedHits := dedupeSeedHits(findAll(transcript, seedTarget), fullHits, len(fullTarget))

		total := len(fullHits) + len(seedHits)
		if total == 0 {
			continue
		}
		warnings = append(warnings, Warning{
			Source: "mirna",
			Message: fmt.Sprintf(
				"accidental %s target site(s) detected (%d) — may cause unwanted silencing in the target cell type; regions: %s",
				name, total, regionsOf(append(fullHits, seedHits...), cdsStart, cdsEnd)),
		})
	}
	return warnings
}

// dedupeSeedHits drops seed-match positions that fall within a full-match
// span, mirroring scan_for_mirna's is_in_full check.
func dedupeSeedHits(seedHits, fullHits []int, fullLen int) []int {
	if len(fullHits) == 0 {
		return seedHits
	}
	var kept []int
	for _, pos := range seedHits {
		covered := false
		for _, fullPos := range fullHits {
			if pos >= fullPos && pos <= fullPos+fullLen {
				covered = true
				break
			}
		}
		if !covered {
			kept = append(kept, pos)
		}
	}
	return kept
}

func regionsOf(positions []int, cdsStart, cdsEnd int) string {
	var regions []string
	for _, pos := range positions {
		switch {
		case pos < cdsStart:
			regions = append(regions, "5utr")
		case pos < cdsEnd:
			regions = append(regions, "cds")
		default:
			regions = append(regions, "3utr")
		}
	}
	return strings.Join(regions, ",")
}
