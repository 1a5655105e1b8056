package segment

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// added to every variance so a component collapsed onto one value
	// keeps a finite density
	regVariance = 1e-6
	maxIter     = 100
	tolerance   = 1e-3
)

// GMM is a one dimensional Gaussian mixture.
type GMM struct {
	Weights   []float64
	Means     []float64
	Variances []float64
	Converged bool
	Iter      int
}

func (g *GMM) K() int {
	return len(g.Means)
}

// logJoint fills dst with log(w_j) + log N(x | mu_j, var_j).
func (g *GMM) logJoint(x float64, dst []float64) {
	for j := range g.Means {
		n := distuv.Normal{Mu: g.Means[j], Sigma: math.Sqrt(g.Variances[j])}
		dst[j] = math.Log(g.Weights[j]) + n.LogProb(x)
	}
}

func (g *GMM) LogLikelihood(xs []float64) float64 {
	lj := make([]float64, g.K())
	var total float64
	for _, x := range xs {
		g.logJoint(x, lj)
		total += floats.LogSumExp(lj)
	}
	return total
}

// BIC is -2 log L + p ln n with p = 3k - 1 free parameters.
func (g *GMM) BIC(xs []float64) float64 {
	params := float64(3*g.K() - 1)
	return -2*g.LogLikelihood(xs) + params*math.Log(float64(len(xs)))
}

// Predict labels every sample with its most probable component.
func (g *GMM) Predict(xs []float64) []int {
	lj := make([]float64, g.K())
	labels := make([]int, len(xs))
	for i, x := range xs {
		g.logJoint(x, lj)
		labels[i] = floats.MaxIdx(lj)
	}
	return labels
}

// FitGMM fits a k component mixture nInit times from different seeds and
// keeps the fit with the highest likelihood.
func FitGMM(xs []float64, k, nInit int, rng *rand.Rand) (*GMM, error) {
	if len(xs) == 0 {
		return nil, ErrEmptySeries
	}
	if k > len(xs) {
		return nil, fmt.Errorf("%w: %v components for %v samples", ErrTooFewSamples, k, len(xs))
	}
	if nInit < 1 {
		nInit = 1
	}

	var best *GMM
	bestLL := math.Inf(-1)
	for i := 0; i < nInit; i++ {
		g := initGMM(xs, k, rng)
		ll := g.em(xs)
		if best == nil || ll > bestLL {
			best = g
			bestLL = ll
		}
	}
	return best, nil
}

// initGMM seeds means with k-means++ and derives weights and variances from
// the hard assignment to the nearest seed.
func initGMM(xs []float64, k int, rng *rand.Rand) *GMM {
	means := make([]float64, 0, k)
	means = append(means, xs[rng.Intn(len(xs))])

	dists := make([]float64, len(xs))
	for len(means) < k {
		for i, x := range xs {
			d := math.Inf(1)
			for _, m := range means {
				d = math.Min(d, (x-m)*(x-m))
			}
			dists[i] = d
		}
		total := floats.Sum(dists)
		if total == 0 {
			means = append(means, xs[rng.Intn(len(xs))])
			continue
		}
		target := rng.Float64() * total
		var acc float64
		pick := len(xs) - 1
		for i, d := range dists {
			acc += d
			if acc >= target {
				pick = i
				break
			}
		}
		means = append(means, xs[pick])
	}

	resp := make([][]float64, len(xs))
	for i, x := range xs {
		resp[i] = make([]float64, k)
		nearest := 0
		for j, m := range means {
			if math.Abs(x-m) < math.Abs(x-means[nearest]) {
				nearest = j
			}
		}
		resp[i][nearest] = 1
	}

	g := &GMM{
		Weights:   make([]float64, k),
		Means:     means,
		Variances: make([]float64, k),
	}
	g.mStep(xs, resp)
	return g
}

func (g *GMM) em(xs []float64) float64 {
	k := g.K()
	resp := make([][]float64, len(xs))
	for i := range resp {
		resp[i] = make([]float64, k)
	}

	prev := math.Inf(-1)
	var mean float64
	for g.Iter = 1; g.Iter <= maxIter; g.Iter++ {
		// E step
		var total float64
		for i, x := range xs {
			g.logJoint(x, resp[i])
			norm := floats.LogSumExp(resp[i])
			total += norm
			for j := range resp[i] {
				resp[i][j] = math.Exp(resp[i][j] - norm)
			}
		}
		mean = total / float64(len(xs))

		g.mStep(xs, resp)

		if math.Abs(mean-prev) < tolerance {
			g.Converged = true
			break
		}
		prev = mean
	}
	return g.LogLikelihood(xs)
}

func (g *GMM) mStep(xs []float64, resp [][]float64) {
	col := make([]float64, len(xs))
	for j := range g.Means {
		for i := range xs {
			col[i] = resp[i][j]
		}
		// keep empty components alive with a vanishing weight
		nk := floats.Sum(col) + 10*epsilon
		g.Weights[j] = nk / float64(len(xs))
		if floats.Sum(col) > 0 {
			mu, variance := stat.PopMeanVariance(xs, col)
			g.Means[j] = mu
			g.Variances[j] = variance + regVariance
		} else if g.Variances[j] == 0 {
			g.Variances[j] = stat.PopVariance(xs, nil) + regVariance
		}
	}
	floats.Scale(1/floats.Sum(g.Weights), g.Weights)
}

const epsilon = 2.220446049250313e-16
