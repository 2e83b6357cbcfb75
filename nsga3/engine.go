package nsga3

import (
	"math/rand"

	"github.com/avantgene/utrforge/chromosome"
)

// Engine holds the reference-direction set and elitist archive that
// persist across generations; the orchestrator owns chromosome sampling,
// mutation, crossover, and evaluation, and drives the engine one
// generation at a time via Survive.
type Engine struct {
	RefDirs     [][]float64
	PopSize     int
	ArchiveSize int
	Archive     Archive
}

// NewEngine builds an engine with Das-Dennis reference directions fixed to
// the system-wide Partitions constant, for a population scored on
// numObjectives axes (spec.md §6 "Das-Dennis n_partitions = 3").
func NewEngine(numObjectives, popSize, archiveSize int) *Engine {
	return &Engine{
		RefDirs:     DasDennis(numObjectives, Partitions),
		PopSize:     popSize,
		ArchiveSize: archiveSize,
	}
}

// RankAndNiche computes, for every row of objectives, its non-domination
// front rank and the current size of the reference-direction niche it
// associates to — the two quantities tournament selection compares on
// (spec.md §4.8 step 1).
func (e *Engine) RankAndNiche(objectives [][]float64) (rank []int, nicheSize []int) {
	fronts := FastNonDominatedSort(objectives)
	rank = make([]int, len(objectives))
	for f, front := range fronts {
		for _, idx := range front {
			rank[idx] = f
		}
	}

	_, normalized := Normalize(objectives)
	assoc := associate(normalized, e.RefDirs)
	dirCount := make([]int, len(e.RefDirs))
	for _, a := range assoc {
		dirCount[a.refDir]++
	}

	nicheSize = make([]int, len(objectives))
	for _, a := range assoc {
		nicheSize[a.index] = dirCount[a.refDir]
	}
	return rank, nicheSize
}

// TournamentSelect runs a binary tournament between two random indices:
// lower front rank wins; ties broken by the smaller niche (less crowded
// reference direction) so diversity pressure also shapes mating selection.
func TournamentSelect(rank, nicheSize []int, rng *rand.Rand) int {
	n := len(rank)
	a, b := rng.Intn(n), rng.Intn(n)
	if rank[a] != rank[b] {
		if rank[a] < rank[b] {
			return a
		}
		return b
	}
	if nicheSize[a] != nicheSize[b] {
		if nicheSize[a] < nicheSize[b] {
			return a
		}
		return b
	}
	return a
}

// Survive implements spec.md §4.8 steps 3-5: the survival pool is current
// population ∪ offspring ∪ archive; non-dominated sort plus
// reference-direction niching selects exactly PopSize survivors; the
// survivors' own non-dominated front becomes the next archive, pruned to
// ArchiveSize if necessary.
func (e *Engine) Survive(
	population, offspring chromosome.Matrix,
	populationObj, offspringObj [][]float64,
) (chromosome.Matrix, [][]float64) {
	pool := append(chromosome.Matrix{}, population...)
	pool = append(pool, offspring...)
	pool = append(pool, e.Archive.Chromosomes...)

	poolObj := append([][]float64{}, populationObj...)
	poolObj = append(poolObj, offspringObj...)
	poolObj = append(poolObj, e.Archive.Objectives...)

	fronts := FastNonDominatedSort(poolObj)
	selected := NicheSelect(fronts, poolObj, e.RefDirs, e.PopSize)

	survivorsChromo := selectChromosomes(pool, selected)
	survivorsObj := selectObjectives(poolObj, selected)

	survivorFronts := FastNonDominatedSort(survivorsObj)
	frontChromo := selectChromosomes(survivorsChromo, survivorFronts[0])
	frontObj := selectObjectives(survivorsObj, survivorFronts[0])
	e.Archive.SetFromFront(frontChromo, frontObj, e.RefDirs, e.ArchiveSize)

	return survivorsChromo, survivorsObj
}
