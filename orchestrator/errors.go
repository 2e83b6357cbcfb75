package orchestrator

import "fmt"

// InvalidConfigError is spec.md §7's InvalidConfig kind: bounds violated,
// unknown target tissue, or a negative generation count. The run is aborted
// before any work happens.
type InvalidConfigError struct {
	Message string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("orchestrator: invalid config: %s", e.Message)
}

// ExternalResourceMissingError is spec.md §7's ExternalResourceMissing kind:
// the oracle ensemble (or, for the CLI layer, a CDS lookup) could not be
// loaded.
type ExternalResourceMissingError struct {
	Message string
}

func (e *ExternalResourceMissingError) Error() string {
	return fmt.Sprintf("orchestrator: external resource missing: %s", e.Message)
}

// InfrastructureError is spec.md §7's InfrastructureError kind: an
// accelerator transfer or batch-level failure unrelated to any single
// candidate. Fatal, propagated to the caller.
type InfrastructureError struct {
	Message string
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("orchestrator: infrastructure error: %s", e.Message)
}

// validateConfig enforces spec.md §7's InvalidConfig preconditions before
// any generation runs.
func validateConfig(cfg Config, tissues []string) error {
	if cfg.UTR5Min <= 0 {
		return &InvalidConfigError{Message: "utr5_min must be positive"}
	}
	if cfg.UTR5Max < cfg.UTR5Min {
		return &InvalidConfigError{Message: "utr5_max must be >= utr5_min"}
	}
	if cfg.PopSize <= 0 {
		return &InvalidConfigError{Message: "pop_size must be positive"}
	}
	if cfg.NGen < 0 {
		return &InvalidConfigError{Message: "n_gen must not be negative"}
	}
	if cfg.MaxLengthDelta < 0 {
		return &InvalidConfigError{Message: "max_length_delta must not be negative"}
	}
	if !containsString(tissues, cfg.TargetCellType) {
		return &InvalidConfigError{Message: fmt.Sprintf("unknown target cell type %q", cfg.TargetCellType)}
	}
	return nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
