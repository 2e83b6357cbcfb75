package oracle

import (
	"fmt"
	"sync"

	"github.com/avantgene/utrforge/nucleotide"
	"github.com/avantgene/utrforge/sequence"
)

// Model is a single trained ensemble member: one forward pass over an
// encoded batch, returning per-sequence, per-tissue TE predictions.
// Implementations own their own accelerator weights; Forward must process
// the whole batch in one call (spec.md §4.5 constraint 3 — never loop one
// sequence at a time).
type Model interface {
	Forward(batch *nucleotide.Batch) (predictions [][]float64, err error)
}

// UnknownTissueError is returned when a target tissue name does not match
// any column the ensemble was trained on (spec.md §4.5 fatal precondition).
type UnknownTissueError struct {
	Tissue string
}

func (e *UnknownTissueError) Error() string {
	return fmt.Sprintf("oracle: unknown target tissue %q", e.Tissue)
}

// Ensemble is the process-wide TE oracle: K folds × top-k models per fold,
// averaged within and across folds into a single (N, T) prediction matrix
// per batch.
type Ensemble struct {
	models  []Model
	tissues []string
}

// NewEnsemble constructs an ensemble over an already-loaded set of models
// sharing the same tissue column order. It does not itself load weights —
// that is the caller's (or a Model implementation's) concern.
func NewEnsemble(models []Model, tissues []string) *Ensemble {
	return &Ensemble{models: models, tissues: append([]string(nil), tissues...)}
}

// Tissues returns the ensemble's tissue column names, in column order.
func (e *Ensemble) Tissues() []string {
	return append([]string(nil), e.tissues...)
}

func (e *Ensemble) tissueIndex(target string) (int, error) {
	for i, tissue := range e.tissues {
		if tissue == target {
			return i, nil
		}
	}
	return -1, &UnknownTissueError{Tissue: target}
}

// PredictBatch encodes mrnas into a single batch tensor held in an ordinary
// Go slice (not pinned memory), runs every ensemble member once over the
// whole batch, and aggregates into one Result per sequence. Invalid rows
// (oversized sequences) are passed to the models as all-zero rows along with
// the rest; their model outputs are discarded and they receive NullResult
// (spec.md §4.5 step 5).
func (e *Ensemble) PredictBatch(mrnas []sequence.MRNA, target string) ([]Result, error) {
	targetIdx, err := e.tissueIndex(target)
	if err != nil {
		return nil, err
	}
	if len(e.models) == 0 {
		return nil, fmt.Errorf("oracle: ensemble has no models loaded")
	}

	batch := nucleotide.EncodeBatch(mrnas)

	sum := make([][]float64, batch.N)
	for i := range sum {
		sum[i] = make([]float64, len(e.tissues))
	}

	for _, model := range e.models {
		predictions, err := model.Forward(batch)
		if err != nil {
			return nil, fmt.Errorf("oracle: model forward pass: %w", err)
		}
		if len(predictions) != batch.N {
			return nil, fmt.Errorf("oracle: model returned %d rows, want %d", len(predictions), batch.N)
		}
		for i, row := range predictions {
			for t, v := range row {
				sum[i][t] += v
			}
		}
	}

	results := make([]Result, batch.N)
	for i := range results {
		if !batch.Valid[i] {
			results[i] = NullResult()
			continue
		}
		results[i] = aggregate(sum[i], len(e.models), e.tissues, targetIdx)
	}
	return results, nil
}

// aggregate turns a per-tissue prediction sum across models into a single
// Result: averaged predictions, target/off-target split, and traffic light.
func aggregate(sum []float64, numModels int, tissues []string, targetIdx int) Result {
	perTissue := make(map[string]float64, len(tissues))
	var total float64
	for t, tissue := range tissues {
		mean := sum[t] / float64(numModels)
		perTissue[tissue] = mean
		total += mean
	}
	meanTE := total / float64(len(tissues))
	targetTE := perTissue[tissues[targetIdx]]

	var offTargetTotal float64
	for t, tissue := range tissues {
		if t == targetIdx {
			continue
		}
		offTargetTotal += perTissue[tissue]
	}
	meanOffTargetTE := offTargetTotal / float64(len(tissues)-1)

	return Result{
		Valid:           true,
		MeanTE:          meanTE,
		TargetTE:        targetTE,
		MeanOffTargetTE: meanOffTargetTE,
		PerTissue:       perTissue,
		Status:          classify(targetTE, meanOffTargetTE),
	}
}

var (
	singletonOnce  sync.Once
	singleton      *Ensemble
	singletonError error
)

// Warm lazily constructs the process-wide ensemble singleton via loader,
// the one time it is ever invoked for the lifetime of the process
// (spec.md §5/§9 — never re-initialised mid-run). Subsequent calls, with
// any loader, return the first result.
func Warm(loader func() (*Ensemble, error)) (*Ensemble, error) {
	singletonOnce.Do(func() {
		singleton, singletonError = loader()
	})
	return singleton, singletonError
}

// Default returns the already-warmed singleton, or an error if Warm has
// not been called yet.
func Default() (*Ensemble, error) {
	if singleton == nil && singletonError == nil {
		return nil, fmt.Errorf("oracle: ensemble not warmed; call Warm first")
	}
	return singleton, singletonError
}
