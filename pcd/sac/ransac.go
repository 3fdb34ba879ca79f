package sac

import (
	"errors"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Search runs a random sample consensus over a problem: draw a
// minimal sample, fit, score all indices, keep the model with the
// largest inlier set. Degenerate samples are skipped and retried.
type Search[M any] struct {
	Problem       *Problem[M]
	Threshold     float64
	MaxIterations int
	// Probability is the target confidence that at least one
	// outlier-free sample was drawn. Used to shrink the iteration
	// bound as better models are found.
	Probability float64

	coeff   M
	inliers []int
	found   bool
}

func NewSearch[M any](p *Problem[M], threshold float64, maxIterations int) *Search[M] {
	return &Search[M]{
		Problem:       p,
		Threshold:     threshold,
		MaxIterations: maxIterations,
		Probability:   0.99,
	}
}

func (s *Search[M]) Compute() error {
	indice := s.Problem.Indices()
	if len(indice) == 0 {
		return ErrNoIndices
	}
	k := s.Problem.Estimator.SampleSize()
	maxIter := s.MaxIterations
	s.found = false
	s.inliers = nil

	for i := 0; i < maxIter; i++ {
		sample, err := s.Problem.Samples()
		if err != nil {
			return err
		}
		coeff, err := s.Problem.Estimator.Fit(sample)
		if err != nil {
			if errors.Is(err, ErrDegenerate) {
				continue
			}
			return err
		}
		d := s.Problem.Estimator.Distances(coeff, indice)
		var cnt int
		for _, dd := range d {
			if dd < s.Threshold {
				cnt++
			}
		}
		if s.found && cnt <= len(s.inliers) {
			continue
		}
		inliers := make([]int, 0, cnt)
		for j, dd := range d {
			if dd < s.Threshold {
				inliers = append(inliers, indice[j])
			}
		}
		s.coeff, s.inliers, s.found = coeff, inliers, true

		if p := s.Probability; 0 < p && p < 1 {
			w := float64(cnt) / float64(len(indice))
			pGood := math.Pow(w, float64(k))
			if pGood >= 1 {
				break
			}
			if pGood > 0 {
				// Compare in float64. The bound can exceed the int
				// range for tiny inlier ratios, and log(1-pGood) can
				// round to zero, making the quotient infinite.
				need := math.Ceil(math.Log(1-p) / math.Log(1-pGood))
				if 0 <= need && need < float64(maxIter) {
					maxIter = int(need)
				}
			}
		}
	}
	if !s.found {
		return ErrNoConsensus
	}
	return nil
}

// Coefficients returns the best model of the last Compute.
func (s *Search[M]) Coefficients() (M, bool) {
	return s.coeff, s.found
}

// Inliers returns the indices supporting the best model, in universe
// order.
func (s *Search[M]) Inliers() []int {
	return s.inliers
}

// Refine runs the estimator optimization over the best inlier set.
func (s *Search[M]) Refine() (M, error) {
	if !s.found {
		var zero M
		return zero, ErrNoConsensus
	}
	return s.Problem.Estimator.Optimize(s.inliers, s.coeff)
}

// SearchParallel runs independent consensus searches on separate
// problem instances, one per worker, and returns the model with the
// largest inlier set. Each instance owns its generator state, so the
// workers explore statistically independent sample sequences.
func SearchParallel[M any](newProblem func() *Problem[M], threshold float64, maxIterations, workers int) (M, []int, error) {
	var (
		mu   sync.Mutex
		best *Search[M]
	)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			s := NewSearch(newProblem(), threshold, maxIterations)
			if err := s.Compute(); err != nil {
				if errors.Is(err, ErrNoConsensus) {
					return nil
				}
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			if best == nil || len(s.inliers) > len(best.inliers) {
				best = s
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var zero M
		return zero, nil, err
	}
	if best == nil {
		var zero M
		return zero, nil, ErrNoConsensus
	}
	return best.coeff, best.inliers, nil
}
