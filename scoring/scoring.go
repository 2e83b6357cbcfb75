// Package scoring runs the fixed battery of per-candidate quality checks —
// structure, manufacturability, stability, and translation-efficiency
// specificity — that feed the fitness normaliser. Every scorer reads a
// sequence.MRNA and an already-computed oracle.Result; none of them mutate
// the sequence, mirroring how the teacher's synthesis fixers separate
// problem detection from problem repair.
package scoring

import (
	"github.com/avantgene/utrforge/fold"
	"github.com/avantgene/utrforge/oracle"
	"github.com/avantgene/utrforge/sequence"
)

// Status is the shared GREEN/AMBER/RED traffic light used by every scorer.
type Status string

const (
	StatusGreen Status = "GREEN"
	StatusAmber Status = "AMBER"
	StatusRed   Status = "RED"
)

// Report is the full per-candidate scoring output: one sub-report per
// scorer, plus non-fitness-affecting warnings surfaced for the operator.
type Report struct {
	Structure         StructureReport
	Manufacturability ManufacturabilityReport
	Stability         StabilityReport
	Specificity       SpecificityReport
	Warnings          []Warning
}

// Warning is a non-fitness-affecting diagnostic attached to a Report, e.g.
// an accidental off-target miRNA seed match.
type Warning struct {
	Source  string
	Message string
}

// accessibilityWindow bounds how much of the 3' end of the 5' UTR the
// structure scorer folds (spec.md §4.4a).
const accessibilityWindow = 200

// fastFoldCap is the number of nucleotides actually folded in batch
// ("fast_fold") mode before linear extrapolation to full-sequence length.
// This is strictly a ranking-speed substitute and must never back a final
// per-candidate report (spec.md §4.4 "Fold sharing").
const fastFoldCap = 150

// Pipeline runs every scorer against a folder implementation and an
// already-computed TE oracle result.
type Pipeline struct {
	Folder fold.Folder
}

// NewPipeline builds a scoring pipeline backed by folder.
func NewPipeline(folder fold.Folder) Pipeline {
	return Pipeline{Folder: folder}
}

// Score runs all four scorers against a single mRNA. teResult must already
// carry the target cell type's TE oracle prediction (§4.5); fastFold
// selects the batch-mode global-fold approximation instead of a full fold
// and must only be set true for population-ranking passes, never for the
// final report written out for a candidate.
func (p Pipeline) Score(mrna sequence.MRNA, teResult oracle.Result, fastFold bool) (Report, error) {
	transcript := mrna.Transcript()

	globalFold, err := p.foldGlobal(transcript, fastFold)
	if err != nil {
		return Report{}, err
	}

	structureReport, err := p.scoreStructure(mrna, globalFold)
	if err != nil {
		return Report{}, err
	}

	manufacturabilityReport := scoreManufacturability(transcript, mrna.UTR5())
	stabilityReport := scoreStability(mrna, len(transcript), globalFold)
	specificityReport := scoreSpecificity(teResult)

	warnings := ScanAccidentalMirnaSites(transcript, len(mrna.UTR5()), len(mrna.UTR5())+len(mrna.CDS()))

	return Report{
		Structure:         structureReport,
		Manufacturability: manufacturabilityReport,
		Stability:         stabilityReport,
		Specificity:       specificityReport,
		Warnings:          warnings,
	}, nil
}

// foldGlobal folds the whole transcript once so structure and stability can
// share the result (spec.md §4.4 "Fold sharing"). In fast-fold mode only
// the first fastFoldCap nucleotides are folded and the MFE is linearly
// extrapolated to the full length.
func (p Pipeline) foldGlobal(transcript string, fastFold bool) (fold.Result, error) {
	if !fastFold || len(transcript) <= fastFoldCap {
		return p.Folder.Fold(transcript)
	}

	sample, err := p.Folder.Fold(transcript[:fastFoldCap])
	if err != nil {
		return fold.Result{}, err
	}
	scale := float64(len(transcript)) / float64(fastFoldCap)
	return fold.Result{
		DotBracket: sample.DotBracket, // not length-extended; only MFE drives downstream scores
		MFE:        sample.MFE * scale,
	}, nil
}

func gcFraction(seq string) float64 {
	if len(seq) == 0 {
		return 0
	}
	var gc int
	for _, b := range seq {
		if b == 'G' || b == 'C' || b == 'g' || b == 'c' {
			gc++
		}
	}
	return float64(gc) / float64(len(seq))
}

