package sac

import (
	"math"

	"github.com/seqsense/pcsac/mat"
	"github.com/seqsense/pcsac/pcd"
)

// sym3 is a symmetric 3x3 matrix in float64.
type sym3 struct {
	xx, xy, xz, yy, yz, zz float64
}

func (m sym3) mulVec(v [3]float64) [3]float64 {
	return [3]float64{
		m.xx*v[0] + m.xy*v[1] + m.xz*v[2],
		m.xy*v[0] + m.yy*v[1] + m.yz*v[2],
		m.xz*v[0] + m.yz*v[1] + m.zz*v[2],
	}
}

func (m sym3) trace() float64 {
	return m.xx + m.yy + m.zz
}

// covariance3 accumulates the centroid and covariance of the listed
// points.
func covariance3(ra pcd.Vec3RandomAccessor, indice []int) (mat.Vec3, sym3) {
	var cx, cy, cz float64
	for _, id := range indice {
		p := ra.Vec3At(id)
		cx += float64(p[0])
		cy += float64(p[1])
		cz += float64(p[2])
	}
	n := float64(len(indice))
	cx, cy, cz = cx/n, cy/n, cz/n

	var m sym3
	for _, id := range indice {
		p := ra.Vec3At(id)
		dx, dy, dz := float64(p[0])-cx, float64(p[1])-cy, float64(p[2])-cz
		m.xx += dx * dx
		m.xy += dx * dy
		m.xz += dx * dz
		m.yy += dy * dy
		m.yz += dy * dz
		m.zz += dz * dz
	}
	return mat.Vec3{float32(cx), float32(cy), float32(cz)}, m
}

const eigenIterations = 64

// powerIteration returns the dominant eigenvector of m, started from
// seed to speed up convergence on nearby solutions.
func powerIteration(m sym3, seed mat.Vec3) (mat.Vec3, bool) {
	v := [3]float64{float64(seed[0]), float64(seed[1]), float64(seed[2])}
	if v[0] == 0 && v[1] == 0 && v[2] == 0 {
		v = [3]float64{1, 1, 1}
	}
	for i := 0; i < eigenIterations; i++ {
		w := m.mulVec(v)
		norm := math.Sqrt(w[0]*w[0] + w[1]*w[1] + w[2]*w[2])
		if norm == 0 {
			// Seed is in the null space. Restart off-axis once.
			if i == 0 {
				v = [3]float64{1, 0.5, 0.25}
				continue
			}
			return mat.Vec3{}, false
		}
		v = [3]float64{w[0] / norm, w[1] / norm, w[2] / norm}
	}
	return mat.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}, true
}

// largestEigenvec returns the unit eigenvector of the largest
// eigenvalue of m.
func largestEigenvec(m sym3, seed mat.Vec3) (mat.Vec3, bool) {
	return powerIteration(m, seed)
}

// smallestEigenvec returns the unit eigenvector of the smallest
// eigenvalue of m, via power iteration on the spectrum flipped around
// the trace.
func smallestEigenvec(m sym3, seed mat.Vec3) (mat.Vec3, bool) {
	c := m.trace()
	if c == 0 {
		return mat.Vec3{}, false
	}
	flipped := sym3{
		xx: c - m.xx, xy: -m.xy, xz: -m.xz,
		yy: c - m.yy, yz: -m.yz,
		zz: c - m.zz,
	}
	return powerIteration(flipped, seed)
}
