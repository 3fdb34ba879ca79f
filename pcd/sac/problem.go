package sac

// Estimator is the capability set a concrete model type supplies.
// The sampling engine uses it without knowing the model semantics.
type Estimator[M any] interface {
	// SampleSize returns the minimal number of data elements needed to
	// compute one candidate model. Constant for a given estimator.
	SampleSize() int
	// Fit computes model coefficients from a minimal sample of index
	// values. Returns ErrDegenerate when the sampled configuration can
	// not determine a model.
	Fit(indices []int) (M, error)
	// Optimize refines coefficients over a larger index set, typically
	// the inliers of a consensus round. Pure function of its inputs.
	Optimize(inliers []int, coeff M) (M, error)
	// Distances returns the residual of each listed data element under
	// the given coefficients, in input order.
	Distances(coeff M, indices []int) []float64
}

// Problem binds an index universe to an estimator and owns the random
// sampler producing candidate minimal samples. Randomness is local to
// the instance: problems running on different goroutines generate
// independent sequences. A single instance must not be used from
// multiple goroutines without external serialization.
type Problem[M any] struct {
	Estimator Estimator[M]

	indice  []int
	sampler *RandomIndexSampler
}

// NewProblem creates a problem in the unconfigured state. Sampling
// becomes available after SetIndices. randomSeed selects between a
// reproducible sequence (false) and a per-instance independent one
// (true).
func NewProblem[M any](e Estimator[M], randomSeed bool) *Problem[M] {
	return &Problem[M]{
		Estimator: e,
		sampler:   NewRandomIndexSampler(randomSeed),
	}
}

// SetIndices installs or replaces the index universe. The slice is
// copied; previously returned samples stay valid. Values must be
// non-negative and unique.
func (p *Problem[M]) SetIndices(indice []int) error {
	seen := make(map[int]struct{}, len(indice))
	for _, id := range indice {
		if id < 0 {
			return ErrInvalidIndices
		}
		if _, ok := seen[id]; ok {
			return ErrInvalidIndices
		}
		seen[id] = struct{}{}
	}
	p.indice = append([]int(nil), indice...)
	return nil
}

// Indices returns the current index universe. The returned slice is
// owned by the problem and must not be modified.
func (p *Problem[M]) Indices() []int {
	return p.indice
}

// Samples draws Estimator.SampleSize() distinct index values from the
// universe. The sampler draws positions, which are mapped to universe
// values, so the universe does not need to be contiguous.
func (p *Problem[M]) Samples() ([]int, error) {
	if len(p.indice) == 0 {
		return nil, ErrNoIndices
	}
	pos, err := p.sampler.Sample(len(p.indice), p.Estimator.SampleSize())
	if err != nil {
		return nil, err
	}
	out := make([]int, len(pos))
	for i, j := range pos {
		out[i] = p.indice[j]
	}
	return out, nil
}

// Rnd exposes the raw instance-local generator for consensus variants
// needing unstructured randomness. Same independence guarantees as
// Samples.
func (p *Problem[M]) Rnd() int {
	return p.sampler.NextInt()
}
