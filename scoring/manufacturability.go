package scoring

import (
	"github.com/avantgene/utrforge/transform"
)

const (
	gcWindowSize    = 50
	gcWindowMin     = 0.30
	gcWindowMax     = 0.70
	maxHomopolymer  = 8
	minViolationGap = gcWindowSize
)

// restrictionSites mirrors the teacher's own banned-site list (synthesis.go
// FindBsaI and friends), expressed directly in RNA and generalised from a
// hard-coded per-enzyme function to a table scanned once per candidate.
var restrictionSites = map[string]string{
	"BsaI":    "GGUCUC",
	"BsmBI":   "CGUCUC",
	"EcoRI":   "GAAUUC",
	"BamHI":   "GGAUCC",
	"HindIII": "AAGCUU",
	"NotI":    "GCGGCCGC",
}

// GCWindowViolation is a single sliding-window GC-content violation.
type GCWindowViolation struct {
	Position  int
	GCContent float64
	TooHigh   bool
}

// HomopolymerViolation is a single homopolymer run exceeding maxHomopolymer.
type HomopolymerViolation struct {
	Position int
	Base     byte
	Length   int
}

// RestrictionSiteViolation is a single restriction-enzyme recognition site
// match on either strand.
type RestrictionSiteViolation struct {
	Position int
	Enzyme   string
	Reverse  bool
}

// ManufacturabilityReport is the full output of spec.md §4.4b: violation
// counts over the full transcript and, separately, over the 5′UTR alone
// (the only region the optimiser actually edits), plus the uORF count.
type ManufacturabilityReport struct {
	GCWindowViolations        []GCWindowViolation
	HomopolymerViolations     []HomopolymerViolation
	RestrictionSiteViolations []RestrictionSiteViolation
	TotalViolations           int
	UTR5Violations            int
	UpstreamAUGCount          int
	UpstreamAUGPositions      []int
}

func scoreManufacturability(transcript, utr5 string) ManufacturabilityReport {
	gc := scanGCWindows(transcript)
	hp := scanHomopolymers(transcript)
	rs := scanRestrictionSites(transcript)
	total := len(gc) + len(hp) + len(rs)

	var utr5Violations int
	if len(utr5) > 0 {
		utr5Violations = len(scanGCWindows(utr5)) + len(scanHomopolymers(utr5)) + len(scanRestrictionSites(utr5))
	}

	augPositions := scanUpstreamAUGs(utr5)

	return ManufacturabilityReport{
		GCWindowViolations:        gc,
		HomopolymerViolations:     hp,
		RestrictionSiteViolations: rs,
		TotalViolations:           total,
		UTR5Violations:            utr5Violations,
		UpstreamAUGCount:          len(augPositions),
		UpstreamAUGPositions:      augPositions,
	}
}

// scanGCWindows checks GC fraction in every 50-nt sliding window, reporting
// at most one violation per window-length stretch (spec.md §4.4b.1).
func scanGCWindows(seq string) []GCWindowViolation {
	if len(seq) < gcWindowSize {
		return nil
	}
	var violations []GCWindowViolation
	lastReported := -minViolationGap
	for i := 0; i+gcWindowSize <= len(seq); i++ {
		gc := gcFraction(seq[i : i+gcWindowSize])
		if gc >= gcWindowMin && gc <= gcWindowMax {
			continue
		}
		if i-lastReported < minViolationGap {
			continue
		}
		violations = append(violations, GCWindowViolation{
			Position:  i,
			GCContent: gc,
			TooHigh:   gc > gcWindowMax,
		})
		lastReported = i
	}
	return violations
}

// scanHomopolymers finds every maximal run of a single base longer than
// maxHomopolymer (spec.md §4.4b.2).
func scanHomopolymers(seq string) []HomopolymerViolation {
	var violations []HomopolymerViolation
	i := 0
	for i < len(seq) {
		j := i + 1
		for j < len(seq) && seq[j] == seq[i] {
			j++
		}
		if run := j - i; run > maxHomopolymer {
			violations = append(violations, HomopolymerViolation{
				Position: i,
				Base:     seq[i],
				Length:   run,
			})
		}
		i = j
	}
	return violations
}

// scanRestrictionSites scans both strands for every enzyme in
// restrictionSites, skipping the reverse strand for palindromic sites
// (spec.md §4.4b.3).
func scanRestrictionSites(seq string) []RestrictionSiteViolation {
	var violations []RestrictionSiteViolation
	for enzyme, site := range restrictionSites {
		for _, pos := range findAll(seq, site) {
			violations = append(violations, RestrictionSiteViolation{Position: pos, Enzyme: enzyme})
		}
		rc := transform.ReverseComplement(site)
		if rc == site {
			continue
		}
		for _, pos := range findAll(seq, rc) {
			violations = append(violations, RestrictionSiteViolation{Position: pos, Enzyme: enzyme, Reverse: true})
		}
	}
	return violations
}

// scanUpstreamAUGs counts every AUG occurrence in the 5′UTR; each is a
// candidate upstream open reading frame that competes with the main ORF
// for ribosome initiation (spec.md §4.4b, SPEC_FULL §12).
func scanUpstreamAUGs(utr5 string) []int {
	return findAll(utr5, "AUG")
}

func findAll(seq, pattern string) []int {
	if len(pattern) == 0 || len(pattern) > len(seq) {
		return nil
	}
	var positions []int
	for i := 0; i+len(pattern) <= len(seq); i++ {
		if seq[i:i+len(pattern)] == pattern {
			positions = append(positions, i)
		}
	}
	return positions
}
