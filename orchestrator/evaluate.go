package orchestrator

import (
	"log"
	"runtime"
	"sync"

	"github.com/avantgene/utrforge/chromosome"
	"github.com/avantgene/utrforge/fitness"
	"github.com/avantgene/utrforge/internal/designhash"
	"github.com/avantgene/utrforge/oracle"
	"github.com/avantgene/utrforge/scoring"
	"github.com/avantgene/utrforge/sequence"
)

// scoreCache memoises a design's sigmoid-space objectives by content hash,
// so a design surviving unchanged across generations (common once the
// archive converges) isn't re-folded and re-scored every generation. Scoped
// to a single Run: nothing here crosses a process-wide cache.
type scoreCache struct {
	mu      sync.Mutex
	entries map[string]fitness.Objectives
}

func newScoreCache() *scoreCache {
	return &scoreCache{entries: make(map[string]fitness.Objectives)}
}

func (c *scoreCache) get(hash string) (fitness.Objectives, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	obj, ok := c.entries[hash]
	return obj, ok
}

func (c *scoreCache) set(hash string, obj fitness.Objectives) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[hash] = obj
}

// worstMinObjective is the minimisation-convention row a candidate receives
// when its scorer fails: spec.md §7's "worst possible objective vector"
// (ScorerFailure is handled locally, not fatal).
var worstMinObjective = []float64{1, 1, 1, 1}

// evaluatePopulation decodes every chromosome row, runs exactly one TE
// oracle batch call for the whole population, then fans the remaining three
// scorers out across a fixed CPU worker pool (spec.md §5). It returns both
// the minimisation-convention objective matrix NSGA-III consumes and the
// sigmoid-space fitness.Objectives used for history/reporting.
func evaluatePopulation(
	population chromosome.Matrix,
	pipeline scoring.Pipeline,
	ensemble *oracle.Ensemble,
	target, cds, utr3 string,
	weights fitness.Weights,
	fastFold bool,
	cache *scoreCache,
) ([][]float64, []fitness.Objectives, error) {
	mrnas := make([]sequence.MRNA, len(population))
	hashes := make([]string, len(population))
	for i, row := range population {
		mrna, err := sequence.New(chromosome.Decode(row), cds, utr3)
		if err != nil {
			return nil, nil, &InvalidConfigError{Message: "decoded chromosome row produced an invalid mRNA: " + err.Error()}
		}
		mrnas[i] = mrna
		if hash, err := designhash.Hash(mrna.FullMolecule()); err == nil {
			hashes[i] = hash
		}
	}

	teResults, err := ensemble.PredictBatch(mrnas, target)
	if err != nil {
		return nil, nil, &InfrastructureError{Message: "TE oracle batch: " + err.Error()}
	}

	reports := make([]scoring.Report, len(population))
	scoreErrs := make([]error, len(population))
	cached := make([]bool, len(population))
	if cache != nil {
		for i, hash := range hashes {
			if hash == "" {
				continue
			}
			if _, ok := cache.get(hash); ok {
				cached[i] = true
			}
		}
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := runtime.NumCPU()
	if workers > len(population) {
		workers = len(population)
	}
	if workers < 1 {
		workers = 1
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if cached[i] {
					continue
				}
				report, err := pipeline.Score(mrnas[i], teResults[i], fastFold)
				reports[i] = report
				scoreErrs[i] = err
			}
		}()
	}
	for i := range population {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	minObj := make([][]float64, len(population))
	sigObj := make([]fitness.Objectives, len(population))
	for i := range population {
		if cached[i] {
			obj, _ := cache.get(hashes[i])
			sigObj[i] = obj
			minObj[i] = []float64{1 - obj.UTR5Accessibility, 1 - obj.Manufacturability, 1 - obj.Stability, 1 - obj.Specificity}
			continue
		}
		if scoreErrs[i] != nil {
			log.Printf("orchestrator: scorer failure on candidate %d, carrying the worst objective vector forward: %v", i, scoreErrs[i])
			minObj[i] = append([]float64(nil), worstMinObjective...)
			sigObj[i] = sigmoidFromMin(minObj[i], weights)
			continue
		}
		obj := fitness.Normalise(toMetrics(reports[i]), weights)
		sigObj[i] = obj
		minObj[i] = []float64{1 - obj.UTR5Accessibility, 1 - obj.Manufacturability, 1 - obj.Stability, 1 - obj.Specificity}
		if cache != nil && hashes[i] != "" && scoreErrs[i] == nil {
			cache.set(hashes[i], obj)
		}
	}

	return minObj, sigObj, nil
}

// toMetrics bridges a scoring.Report into the raw fitness.Metrics the
// sigmoid normaliser expects.
func toMetrics(report scoring.Report) fitness.Metrics {
	mfePerNt := report.Structure.UTR5MFEPerNt
	return fitness.Metrics{
		UTR5MFEPerNt:      &mfePerNt,
		UTR5Violations:    report.Manufacturability.UTR5Violations,
		StabilityScore:    report.Stability.StabilityScore,
		SpecificityTarget: report.Specificity.TargetTE,
	}
}
