package seed

import (
	"math"
	"math/rand"
	"sort"

	"github.com/avantgene/utrforge/chromosome"
	"github.com/avantgene/utrforge/oracle"
	"gonum.org/v1/gonum/floats"
)

// Adam hyperparameters for the gradient-ascent logit optimisation
// (spec.md §4.9). These are fixed, not user-tunable: the seed generator is
// an internal initialisation heuristic, not a user-facing model.
const (
	adamLearningRate = 0.1
	adamBeta1        = 0.9
	adamBeta2        = 0.999
	adamEpsilon      = 1e-8
)

type restartResult struct {
	row Row
	te  float64
}

// Row is a decoded gradient-ascent restart: the discretised nucleotide code
// at every 5′ UTR position, in alphabet.RNA order (0=A, 1=C, 2=G, 3=U).
type Row []int

// GradientSeeds runs nRestarts independent Adam gradient-ascent optimisations
// of a (utr5Len, 4) soft-logit tensor against oracle's target-tissue
// prediction, discretises each restart's final logits by per-position
// argmax, re-scores the discretised sequence once, and returns the
// nSeeds best-scoring restarts as chromosome rows sized to cfg (spec.md
// §4.9).
func GradientSeeds(cfg chromosome.Config, utr5Len int, cds, utr3, target string, nSteps, nRestarts, nSeeds int, model oracle.DifferentiableOracle, rng *rand.Rand) (chromosome.Matrix, error) {
	results := make([]restartResult, 0, nRestarts)

	for r := 0; r < nRestarts; r++ {
		logits := initLogits(utr5Len, rng)
		m := make([]float64, utr5Len*4)
		v := make([]float64, utr5Len*4)

		var lastErr error
		for step := 1; step <= nSteps; step++ {
			probs := softmaxRows(logits, utr5Len)
			_, grad, err := model.EvaluateGradient(probs, cds, utr3, target)
			if err != nil {
				lastErr = err
				break
			}
			logitGrad := backpropSoftmax(probs, grad, utr5Len)
			adamStep(logits, logitGrad, m, v, step)
		}
		if lastErr != nil {
			continue
		}

		probs := softmaxRows(logits, utr5Len)
		discretised := argmaxRows(probs, utr5Len)
		onehot := toOneHot(discretised, utr5Len)
		prediction, _, err := model.EvaluateGradient(onehot, cds, utr3, target)
		if err != nil {
			continue
		}
		results = append(results, restartResult{row: discretised, te: prediction})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].te > results[j].te })

	if nSeeds > len(results) {
		nSeeds = len(results)
	}
	out := make(chromosome.Matrix, nSeeds)
	for i := 0; i < nSeeds; i++ {
		out[i] = toChromosomeRow(results[i].row, cfg)
	}
	return out, nil
}

func initLogits(utr5Len int, rng *rand.Rand) []float64 {
	logits := make([]float64, utr5Len*4)
	for i := range logits {
		logits[i] = rng.NormFloat64() * 0.01
	}
	return logits
}

func softmaxRows(logits []float64, utr5Len int) [][4]float64 {
	probs := make([][4]float64, utr5Len)
	for i := 0; i < utr5Len; i++ {
		row := logits[i*4 : i*4+4]
		maxV := floats.Max(row)
		var sum float64
		var exp [4]float64
		for c, x := range row {
			exp[c] = math.Exp(x - maxV)
			sum += exp[c]
		}
		for c := range exp {
			probs[i][c] = exp[c] / sum
		}
	}
	return probs
}

// backpropSoftmax converts dLoss/dProbs (the negated target-tissue gradient,
// since the optimiser ascends the prediction) into dLoss/dLogits through the
// per-position softmax Jacobian: dP_j/dL_k = P_j(δ_jk − P_k).
func backpropSoftmax(probs [][4]float64, predictionGrad [][4]float64, utr5Len int) []float64 {
	out := make([]float64, utr5Len*4)
	for i := 0; i < utr5Len; i++ {
		p := probs[i]
		var dotProduct float64
		for c := 0; c < 4; c++ {
			// Ascending the prediction means descending its negation.
			dotProduct += p[c] * -predictionGrad[i][c]
		}
		for j := 0; j < 4; j++ {
			out[i*4+j] = p[j] * (-predictionGrad[i][j] - dotProduct)
		}
	}
	return out
}

func adamStep(logits, grad, m, v []float64, step int) {
	floats.Scale(adamBeta1, m)
	floats.AddScaled(m, 1-adamBeta1, grad)

	gradSq := make([]float64, len(grad))
	for i, g := range grad {
		gradSq[i] = g * g
	}
	floats.Scale(adamBeta2, v)
	floats.AddScaled(v, 1-adamBeta2, gradSq)

	biasCorrection1 := 1 - math.Pow(adamBeta1, float64(step))
	biasCorrection2 := 1 - math.Pow(adamBeta2, float64(step))

	for i := range logits {
		mHat := m[i] / biasCorrection1
		vHat := v[i] / biasCorrection2
		logits[i] -= adamLearningRate * mHat / (math.Sqrt(vHat) + adamEpsilon)
	}
}

func argmaxRows(probs [][4]float64, utr5Len int) Row {
	row := make(Row, utr5Len)
	for i := 0; i < utr5Len; i++ {
		best := 0
		for c := 1; c < 4; c++ {
			if probs[i][c] > probs[i][best] {
				best = c
			}
		}
		row[i] = best
	}
	return row
}

func toOneHot(codes Row, utr5Len int) [][4]float64 {
	out := make([][4]float64, utr5Len)
	for i, code := range codes {
		out[i][code] = 1
	}
	return out
}

func toChromosomeRow(codes Row, cfg chromosome.Config) chromosome.Row {
	row := make(chromosome.Row, cfg.Width())
	length := len(codes)
	if length > cfg.UTR5Max {
		length = cfg.UTR5Max
	}
	if length < cfg.UTR5Min {
		length = cfg.UTR5Min
	}
	row[0] = length
	for i := 0; i < length; i++ {
		row[1+i] = codes[i]
	}
	return row
}
