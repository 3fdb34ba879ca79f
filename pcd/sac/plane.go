package sac

import (
	"math"

	"github.com/seqsense/pcsac/mat"
	"github.com/seqsense/pcsac/pcd"
)

// collinearEpsSq bounds the squared sine of the angle between the two
// sample edges below which the sample is treated as collinear.
const collinearEpsSq = 1e-10

// Plane is a plane in Hessian normal form: Normal·p = D with unit
// Normal.
type Plane struct {
	Normal mat.Vec3
	D      float32
}

// Distance returns the distance from v to the plane.
func (p Plane) Distance(v mat.Vec3) float64 {
	return math.Abs(float64(p.Normal.Dot(v) - p.D))
}

// PlaneEstimator fits a plane to points of a cloud. The minimal
// sample is three non-collinear points.
type PlaneEstimator struct {
	ra pcd.Vec3RandomAccessor
}

func NewPlaneEstimator(ra pcd.Vec3RandomAccessor) *PlaneEstimator {
	return &PlaneEstimator{ra: ra}
}

func (*PlaneEstimator) SampleSize() int {
	return 3
}

func (e *PlaneEstimator) Fit(indices []int) (Plane, error) {
	if len(indices) != 3 {
		return Plane{}, ErrInvalidRange
	}
	p0 := e.ra.Vec3At(indices[0])
	v1 := e.ra.Vec3At(indices[1]).Sub(p0)
	v2 := e.ra.Vec3At(indices[2]).Sub(p0)

	norm := v1.Cross(v2)
	nSq := norm.NormSq()
	if nSq <= collinearEpsSq*v1.NormSq()*v2.NormSq() {
		return Plane{}, ErrDegenerate
	}
	n := norm.Mul(1 / float32(math.Sqrt(float64(nSq))))
	return Plane{Normal: n, D: n.Dot(p0)}, nil
}

// Optimize refits the plane to the given indices by least squares:
// the refined normal is the smallest eigenvector of the covariance
// of the points, and the plane passes through their centroid.
func (e *PlaneEstimator) Optimize(inliers []int, coeff Plane) (Plane, error) {
	if len(inliers) < 3 {
		return coeff, ErrInvalidRange
	}
	centroid, cov := covariance3(e.ra, inliers)
	n, ok := smallestEigenvec(cov, coeff.Normal)
	if !ok {
		return coeff, ErrDegenerate
	}
	if n.Dot(coeff.Normal) < 0 {
		n = n.Mul(-1)
	}
	return Plane{Normal: n, D: n.Dot(centroid)}, nil
}

func (e *PlaneEstimator) Distances(coeff Plane, indices []int) []float64 {
	out := make([]float64, len(indices))
	for i, id := range indices {
		out[i] = coeff.Distance(e.ra.Vec3At(id))
	}
	return out
}
