package sac

import (
	"math/rand"
	"sync/atomic"
	"time"
)

// fixedSeed initializes samplers created with randomSeed=false.
// All such samplers produce an identical sequence, across instances
// and across runs.
const fixedSeed = 42

var seedSeq uint64

// RandomIndexSampler generates uniform random indices from an
// instance-local generator. Instances never share generator state, so
// samplers driven from different goroutines produce independent
// sequences. A single instance is not safe for concurrent use; the
// caller serializes access.
type RandomIndexSampler struct {
	rng *rand.Rand
	buf []int
}

// NewRandomIndexSampler creates a sampler. With randomSeed=false the
// sequence is reproducible (fixedSeed). With randomSeed=true the seed
// mixes wall clock time with a process-wide counter, so instances
// created on the same clock tick still diverge.
func NewRandomIndexSampler(randomSeed bool) *RandomIndexSampler {
	seed := int64(fixedSeed)
	if randomSeed {
		n := atomic.AddUint64(&seedSeq, 1)
		seed = int64(splitmix64(uint64(time.Now().UnixNano()) + n*0x9e3779b97f4a7c15))
	}
	return &RandomIndexSampler{rng: rand.New(rand.NewSource(seed))}
}

// NextInt returns the next non-negative pseudo-random integer and
// advances the instance-local generator state.
func (s *RandomIndexSampler) NextInt() int {
	return int(s.rng.Int63())
}

// Sample draws k distinct values from [0, n) by partial Fisher-Yates
// shuffle over a working array reused between calls. The inner draw
// uses rejection sampling (rand.Intn), so every ordered k-sample is
// equally likely.
func (s *RandomIndexSampler) Sample(n, k int) ([]int, error) {
	if n < 0 || k < 0 || k > n {
		return nil, ErrInvalidRange
	}
	if cap(s.buf) < n {
		s.buf = make([]int, n)
	}
	buf := s.buf[:n]
	for i := range buf {
		buf[i] = i
	}
	out := make([]int, k)
	for i := 0; i < k; i++ {
		j := i + s.rng.Intn(n-i)
		buf[i], buf[j] = buf[j], buf[i]
		out[i] = buf[i]
	}
	return out, nil
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
