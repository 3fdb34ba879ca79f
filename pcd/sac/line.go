package sac

import (
	"math"

	"github.com/seqsense/pcsac/mat"
	"github.com/seqsense/pcsac/pcd"
)

const coincidentEpsSq = 1e-12

// Line is a line through Origin along unit Dir.
type Line struct {
	Origin mat.Vec3
	Dir    mat.Vec3
}

// Distance returns the distance from v to the line.
func (l Line) Distance(v mat.Vec3) float64 {
	d := v.Sub(l.Origin)
	distSq := float64(d.CrossNormSq(l.Dir))
	if distSq < 0 {
		// float32 cancellation on near-zero distances
		distSq = 0
	}
	return math.Sqrt(distSq)
}

// LineEstimator fits a line to points of a cloud. The minimal sample
// is two distinct points.
type LineEstimator struct {
	ra pcd.Vec3RandomAccessor
}

func NewLineEstimator(ra pcd.Vec3RandomAccessor) *LineEstimator {
	return &LineEstimator{ra: ra}
}

func (*LineEstimator) SampleSize() int {
	return 2
}

func (e *LineEstimator) Fit(indices []int) (Line, error) {
	if len(indices) != 2 {
		return Line{}, ErrInvalidRange
	}
	p0 := e.ra.Vec3At(indices[0])
	d := e.ra.Vec3At(indices[1]).Sub(p0)
	if d.NormSq() <= coincidentEpsSq {
		return Line{}, ErrDegenerate
	}
	return Line{Origin: p0, Dir: d.Normalized()}, nil
}

// Optimize refits the line to the given indices: the refined
// direction is the principal axis of the covariance of the points,
// through their centroid.
func (e *LineEstimator) Optimize(inliers []int, coeff Line) (Line, error) {
	if len(inliers) < 2 {
		return coeff, ErrInvalidRange
	}
	centroid, cov := covariance3(e.ra, inliers)
	d, ok := largestEigenvec(cov, coeff.Dir)
	if !ok {
		return coeff, ErrDegenerate
	}
	if d.Dot(coeff.Dir) < 0 {
		d = d.Mul(-1)
	}
	return Line{Origin: centroid, Dir: d}, nil
}

func (e *LineEstimator) Distances(coeff Line, indices []int) []float64 {
	out := make([]float64, len(indices))
	for i, id := range indices {
		out[i] = coeff.Distance(e.ra.Vec3At(id))
	}
	return out
}
