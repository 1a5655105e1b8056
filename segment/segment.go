package segment

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jsphweid/lyricmidi/model"
)

type Options struct {
	MaxClusters int
	KernelSize  int
	NInit       int
	Seed        int64
}

func DefaultOptions() Options {
	return Options{
		MaxClusters: 6,
		KernelSize:  8,
		NInit:       5,
		Seed:        0,
	}
}

// FindClusters smooths ts and labels each sample with a cluster from the
// Gaussian mixture whose component count has the lowest BIC. Ties go to the
// smaller count.
func FindClusters(ts []float64, opts Options) (model.ClusterResult, error) {
	var res model.ClusterResult
	if len(ts) == 0 {
		return res, ErrEmptySeries
	}
	if opts.MaxClusters < 1 {
		return res, ErrMaxClusters
	}

	smoothed := MedianFilter(ts, opts.KernelSize)
	rng := rand.New(rand.NewSource(opts.Seed))

	var best *GMM
	lowest := math.Inf(1)
	maxK := opts.MaxClusters
	if maxK > len(smoothed) {
		maxK = len(smoothed)
	}
	for k := 1; k <= maxK; k++ {
		g, err := FitGMM(smoothed, k, opts.NInit, rng)
		if err != nil {
			return res, fmt.Errorf("fitting %v components: %w", k, err)
		}
		bic := g.BIC(smoothed)
		if bic < lowest {
			lowest = bic
			best = g
		}
	}

	res.Labels = best.Predict(smoothed)
	res.ClusterCount = best.K()
	res.BIC = lowest
	return res, nil
}

// Run is a maximal stretch of samples [From, To) sharing one label.
type Run struct {
	Label int `json:"label"`
	From  int `json:"from"`
	To    int `json:"to"`
}

func Runs(labels []int) []Run {
	var res []Run
	for i, l := range labels {
		if len(res) > 0 && res[len(res)-1].Label == l {
			res[len(res)-1].To = i + 1
			continue
		}
		res = append(res, Run{Label: l, From: i, To: i + 1})
	}
	return res
}
