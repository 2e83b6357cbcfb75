package nsga3

import (
	"math/rand"
	"testing"

	"github.com/avantgene/utrforge/chromosome"
)

func toyPopulation(n int) chromosome.Matrix {
	m := make(chromosome.Matrix, n)
	for i := range m {
		m[i] = chromosome.Row{5, 0, 1, 2, 3, 0}
	}
	return m
}

func TestSurviveReturnsPopSizeIndividuals(t *testing.T) {
	engine := NewEngine(2, 4, 4)
	population := toyPopulation(4)
	offspring := toyPopulation(4)
	populationObj := [][]float64{{0.5, 0.5}, {0.3, 0.7}, {0.7, 0.3}, {0.4, 0.6}}
	offspringObj := [][]float64{{0.2, 0.8}, {0.8, 0.2}, {0.1, 0.9}, {0.9, 0.1}}

	survivors, survivorsObj := engine.Survive(population, offspring, populationObj, offspringObj)
	if len(survivors) != 4 || len(survivorsObj) != 4 {
		t.Fatalf("survived %d chromosomes / %d objectives, want 4/4", len(survivors), len(survivorsObj))
	}
}

func TestSurviveArchiveNeverEmptiesAfterFirstGeneration(t *testing.T) {
	engine := NewEngine(2, 4, 4)
	population := toyPopulation(4)
	offspring := toyPopulation(4)
	populationObj := [][]float64{{0.5, 0.5}, {0.3, 0.7}, {0.7, 0.3}, {0.4, 0.6}}
	offspringObj := [][]float64{{0.2, 0.8}, {0.8, 0.2}, {0.1, 0.9}, {0.9, 0.1}}

	engine.Survive(population, offspring, populationObj, offspringObj)
	if len(engine.Archive.Objectives) == 0 {
		t.Fatal("archive should hold at least the first generation's non-dominated front")
	}
}

func TestRankAndNicheAssignsRankZeroToNonDominated(t *testing.T) {
	engine := NewEngine(2, 4, 4)
	objectives := [][]float64{{0.1, 0.1}, {0.5, 0.5}, {0.9, 0.9}}
	rank, _ := engine.RankAndNiche(objectives)
	if rank[0] != 0 {
		t.Errorf("rank[0] = %d, want 0", rank[0])
	}
	if rank[2] == 0 {
		t.Errorf("rank[2] = %d, should not be the best front", rank[2])
	}
}

func TestTournamentSelectPrefersLowerRank(t *testing.T) {
	rank := []int{0, 5}
	niche := []int{1, 1}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		if got := TournamentSelect(rank, niche, rng); got != 0 {
			t.Fatalf("TournamentSelect should always prefer rank 0, got %d", got)
		}
	}
}
