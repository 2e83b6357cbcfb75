package scoring

import (
	"github.com/avantgene/utrforge/fold"
	"github.com/avantgene/utrforge/sequence"
)

// StructureReport is the 5′UTR accessibility scorer's output (spec.md
// §4.4a) plus the global fold shared with stability.
type StructureReport struct {
	UTR5MFE      float64
	UTR5MFEPerNt float64
	Status       Status
	GlobalFold   fold.Result
}

func (p Pipeline) scoreStructure(mrna sequence.MRNA, globalFold fold.Result) (StructureReport, error) {
	utr5 := mrna.UTR5()
	window := utr5
	if len(window) > accessibilityWindow {
		window = window[len(window)-accessibilityWindow:]
	}

	result, err := p.Folder.Fold(window)
	if err != nil {
		return StructureReport{}, err
	}

	mfePerNt := result.MFEPerNt(len(window))

	return StructureReport{
		UTR5MFE:      result.MFE,
		UTR5MFEPerNt: mfePerNt,
		Status:       classifyAccessibility(mfePerNt),
		GlobalFold:   globalFold,
	}, nil
}

// classifyAccessibility implements spec.md §4.4a's traffic light: MFE/nt
// ≥ −0.1 GREEN, ≥ −0.3 AMBER, otherwise RED.
func classifyAccessibility(mfePerNt float64) Status {
	switch {
	case mfePerNt >= -0.1:
		return StatusGreen
	case mfePerNt >= -0.3:
		return StatusAmber
	default:
		return StatusRed
	}
}
