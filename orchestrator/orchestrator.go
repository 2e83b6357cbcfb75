// Package orchestrator wires the sequence codec, scoring pipeline, TE
// oracle, seed generators, and NSGA-III engine into the single end-to-end
// evolutionary run described by spec.md §4.10: seed a population, drive it
// through n_gen generations of selection/crossover/mutation/survival, and
// return the decoded Pareto front, its objective matrix, and a per-generation
// history.
package orchestrator

import (
	"fmt"
	"math/rand"

	"github.com/avantgene/utrforge/chromosome"
	"github.com/avantgene/utrforge/fitness"
	"github.com/avantgene/utrforge/fold"
	"github.com/avantgene/utrforge/nsga3"
	"github.com/avantgene/utrforge/oracle"
	"github.com/avantgene/utrforge/random"
	"github.com/avantgene/utrforge/scoring"
	"github.com/avantgene/utrforge/seed"
	"github.com/avantgene/utrforge/sequence"
)

// numObjectives is the fixed width of every objective vector this engine
// ever produces: UTR5 accessibility, manufacturability, stability,
// specificity (spec.md §4.6).
const numObjectives = 4

// Config bundles every Run parameter spec.md §4.10 names.
type Config struct {
	UTR5Min, UTR5Max int
	CDS, UTR3        string

	PopSize        int
	NGen           int
	MutationRate   float64
	MaxLengthDelta int
	InitialLength  *int
	Seed           int64
	TargetCellType string

	SeedFromData       bool
	EmpiricalSeedsPath string
	GradientSeedSteps  int

	// Weights defaults to fitness.DefaultWeights when left zero-valued.
	Weights fitness.Weights
	// ArchiveSize defaults to PopSize when zero.
	ArchiveSize int
}

func (c Config) weights() fitness.Weights {
	if c.Weights == (fitness.Weights{}) {
		return fitness.DefaultWeights
	}
	return c.Weights
}

func (c Config) archiveSize() int {
	if c.ArchiveSize > 0 {
		return c.ArchiveSize
	}
	return c.PopSize
}

func (c Config) chromosomeConfig() chromosome.Config {
	return chromosome.Config{UTR5Min: c.UTR5Min, UTR5Max: c.UTR5Max, MaxLengthDelta: c.MaxLengthDelta}
}

// HistoryRow is one (generation, individual) record of spec.md §6's history
// wire format.
type HistoryRow struct {
	Generation        int
	Sequence          string
	UTR5Accessibility float64
	Manufacturability float64
	Stability         float64
	Specificity       float64
	Overall           float64
}

// Result is what Run returns: the final archive, decoded to full mRNA
// strings, its objective matrix, the full per-generation history, and a
// diagnostic count of generations since the last overall-score improvement.
type Result struct {
	FrontChromosomes chromosome.Matrix
	FrontSequences   []string
	FrontObjectives  [][]float64
	History          []HistoryRow
	StaleGenerations int
}

// Observer is invoked once per generation with the generation index and the
// best Overall score seen so far (spec.md §4.10 step 5).
type Observer func(generation int, bestOverall float64)

// Run executes the full evolutionary loop. loadEnsemble is passed to
// oracle.Warm and is therefore only ever invoked once per process lifetime.
// folder backs the scoring pipeline's fold operations.
func Run(cfg Config, loadEnsemble func() (*oracle.Ensemble, error), folder fold.Folder, observer Observer) (Result, error) {
	ensemble, err := oracle.Warm(loadEnsemble)
	if err != nil {
		return Result{}, &ExternalResourceMissingError{Message: fmt.Sprintf("loading TE oracle ensemble: %v", err)}
	}

	if err := validateConfig(cfg, ensemble.Tissues()); err != nil {
		return Result{}, err
	}
	if observer == nil {
		observer = func(int, float64) {}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	chromCfg := cfg.chromosomeConfig()
	weights := cfg.weights()
	pipeline := scoring.NewPipeline(folder)

	seedPool, err := buildSeedPool(cfg, ensemble, chromCfg, rng)
	if err != nil {
		return Result{}, err
	}

	population := chromosome.Sample(cfg.PopSize, chromCfg, cfg.InitialLength, seedPool, rng)
	engine := nsga3.NewEngine(numObjectives, cfg.PopSize, cfg.archiveSize())
	cache := newScoreCache()

	minObj, sigObj, err := evaluatePopulation(population, pipeline, ensemble, cfg.TargetCellType, cfg.CDS, cfg.UTR3, weights, true, cache)
	if err != nil {
		return Result{}, err
	}

	var history []HistoryRow
	bestOverall := 0.0
	staleGenerations := 0

	for gen := 0; gen < cfg.NGen; gen++ {
		genBest := 0.0
		for i, obj := range sigObj {
			history = append(history, HistoryRow{
				Generation:        gen,
				Sequence:          chromosome.Decode(population[i]),
				UTR5Accessibility: obj.UTR5Accessibility,
				Manufacturability: obj.Manufacturability,
				Stability:         obj.Stability,
				Specificity:       obj.Specificity,
				Overall:           obj.Overall,
			})
			if obj.Overall > genBest {
				genBest = obj.Overall
			}
		}
		if genBest > bestOverall {
			bestOverall = genBest
			staleGenerations = 0
		} else {
			staleGenerations++
		}
		observer(gen, bestOverall)

		offspring := nextGeneration(population, minObj, chromCfg, cfg.MutationRate, engine, rng)
		offspringMinObj, _, err := evaluatePopulation(offspring, pipeline, ensemble, cfg.TargetCellType, cfg.CDS, cfg.UTR3, weights, true, cache)
		if err != nil {
			return Result{}, err
		}

		population, minObj = engine.Survive(population, offspring, minObj, offspringMinObj)
		sigObj = sigmoidObjectives(minObj, weights)
	}

	if len(engine.Archive.Chromosomes) == 0 {
		// n_gen == 0: Survive was never called, so seed the archive directly
		// from the initial population's own non-dominated front.
		fronts := nsga3.FastNonDominatedSort(minObj)
		frontChromo := make(chromosome.Matrix, len(fronts[0]))
		frontObj := make([][]float64, len(fronts[0]))
		for i, idx := range fronts[0] {
			frontChromo[i] = population[idx]
			frontObj[i] = minObj[idx]
		}
		engine.Archive.SetFromFront(frontChromo, frontObj, engine.RefDirs, engine.ArchiveSize)
	}

	frontSequences, frontObjectives, err := finalReport(engine.Archive.Chromosomes, pipeline, ensemble, cfg, weights)
	if err != nil {
		return Result{}, err
	}

	return Result{
		FrontChromosomes: engine.Archive.Chromosomes,
		FrontSequences:   frontSequences,
		FrontObjectives:  frontObjectives,
		History:          history,
		StaleGenerations: staleGenerations,
	}, nil
}

// nextGeneration produces up to PopSize offspring via binary tournament
// selection, uniform crossover, and mutation (spec.md §4.8 step 2). Duplicate
// offspring are dropped and not replaced, so fewer than PopSize rows can be
// returned.
func nextGeneration(population chromosome.Matrix, minObj [][]float64, chromCfg chromosome.Config, mutationRate float64, engine *nsga3.Engine, rng *rand.Rand) chromosome.Matrix {
	rank, nicheSize := engine.RankAndNiche(minObj)
	offspring := make(chromosome.Matrix, 0, len(population))
	for len(offspring) < len(population) {
		p1 := population[nsga3.TournamentSelect(rank, nicheSize, rng)]
		p2 := population[nsga3.TournamentSelect(rank, nicheSize, rng)]
		c1, c2 := chromosome.Crossover(p1, p2, rng)
		offspring = append(offspring, c1, c2)
	}
	offspring = offspring[:len(population)]
	chromosome.Mutate(offspring, chromCfg, mutationRate, rng)
	return chromosome.Deduplicate(offspring)
}

// sigmoidObjectives converts a whole minimisation-convention objective
// matrix back to sigmoid-space fitness.Objectives for history/reporting.
func sigmoidObjectives(minObj [][]float64, weights fitness.Weights) []fitness.Objectives {
	out := make([]fitness.Objectives, len(minObj))
	for i, obj := range minObj {
		out[i] = sigmoidFromMin(obj, weights)
	}
	return out
}

func sigmoidFromMin(minObj []float64, weights fitness.Weights) fitness.Objectives {
	utr5Acc := 1 - minObj[0]
	manufacturability := 1 - minObj[1]
	stability := 1 - minObj[2]
	specificity := 1 - minObj[3]
	overall := weights.UTR5Accessibility*utr5Acc +
		weights.Manufacturability*manufacturability +
		weights.Stability*stability +
		weights.Specificity*specificity
	return fitness.Objectives{
		UTR5Accessibility: utr5Acc,
		Manufacturability: manufacturability,
		Stability:         stability,
		Specificity:       specificity,
		Overall:           overall,
	}
}

// buildSeedPool assembles the combined gradient + empirical seed list
// (spec.md §4.10 steps 2-3). Either source failing to produce seeds is not
// fatal: the orchestrator still proceeds with whatever it has.
func buildSeedPool(cfg Config, ensemble *oracle.Ensemble, chromCfg chromosome.Config, rng *rand.Rand) ([]string, error) {
	var pool []string

	if cfg.GradientSeedSteps > 0 {
		n := cfg.PopSize / 8
		if n < 1 {
			n = 1
		}
		utr5Len := cfg.UTR5Min + (cfg.UTR5Max-cfg.UTR5Min)/2
		if cfg.InitialLength != nil {
			utr5Len = *cfg.InitialLength
		}
		rows, err := seed.GradientSeeds(chromCfg, utr5Len, cfg.CDS, cfg.UTR3, cfg.TargetCellType, cfg.GradientSeedSteps, n*2, n, ensemble, rng)
		if err != nil {
			return nil, &InfrastructureError{Message: fmt.Sprintf("gradient seed generation: %v", err)}
		}
		for _, row := range rows {
			pool = append(pool, chromosome.Decode(row))
		}
	}

	if cfg.SeedFromData {
		n := cfg.PopSize / 8
		if n < 1 {
			n = 1
		}
		empirical, err := seed.LoadTopUTR5SeedsFromFile(cfg.EmpiricalSeedsPath, n, cfg.UTR5Min, cfg.UTR5Max)
		if err != nil {
			return nil, &InfrastructureError{Message: fmt.Sprintf("loading empirical seeds: %v", err)}
		}
		pool = append(pool, empirical...)
	}

	if len(pool) == 0 {
		// Neither seed source produced anything (no empirical data on disk,
		// gradient seeding disabled): still exercise chromosome.Sample's
		// seed-overwrite path with a few explicit random sequences rather
		// than falling through to pure uniform column fill for every row.
		utr5Len := cfg.UTR5Min + (cfg.UTR5Max-cfg.UTR5Min)/2
		if cfg.InitialLength != nil {
			utr5Len = *cfg.InitialLength
		}
		n := cfg.PopSize / 8
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			pool = append(pool, random.RNASequence(utr5Len, cfg.Seed+int64(i)))
		}
	}

	return pool, nil
}

// finalReport re-scores the final archive with a full (non-fast) fold, per
// SPEC_FULL §13 open-question decision 1: fast_fold extrapolation must never
// back the report handed back to the caller.
func finalReport(archive chromosome.Matrix, pipeline scoring.Pipeline, ensemble *oracle.Ensemble, cfg Config, weights fitness.Weights) ([]string, [][]float64, error) {
	sequences := make([]string, len(archive))
	objectives := make([][]float64, len(archive))

	mrnas := make([]sequence.MRNA, len(archive))
	for i, row := range archive {
		mrna, err := sequence.New(chromosome.Decode(row), cfg.CDS, cfg.UTR3)
		if err != nil {
			return nil, nil, &InvalidConfigError{Message: fmt.Sprintf("decoded archive row %d: %v", i, err)}
		}
		mrnas[i] = mrna
	}

	teResults, err := ensemble.PredictBatch(mrnas, cfg.TargetCellType)
	if err != nil {
		return nil, nil, &InfrastructureError{Message: fmt.Sprintf("final TE oracle batch: %v", err)}
	}

	for i, mrna := range mrnas {
		report, err := pipeline.Score(mrna, teResults[i], false)
		var obj fitness.Objectives
		if err != nil {
			obj = sigmoidFromMin([]float64{1, 1, 1, 1}, weights)
		} else {
			obj = fitness.Normalise(toMetrics(report), weights)
		}
		sequences[i] = mrna.FullMolecule()
		objectives[i] = []float64{obj.UTR5Accessibility, obj.Manufacturability, obj.Stability, obj.Specificity}
	}

	return sequences, objectives, nil
}
