package pcd

import (
	"github.com/seqsense/pcsac/mat"
)

type Vec3RandomAccessor interface {
	Vec3At(int) mat.Vec3
	Len() int
}

// Vec3Slice adapts a plain vector slice to Vec3RandomAccessor.
type Vec3Slice []mat.Vec3

func (s Vec3Slice) Vec3At(i int) mat.Vec3 {
	return s[i]
}

func (s Vec3Slice) Len() int {
	return len(s)
}

type float32RandomAccessor struct {
	data   []float32
	pos    int
	stride int
	n      int
}

func (a *float32RandomAccessor) Len() int {
	return a.n
}

func (a *float32RandomAccessor) Vec3At(i int) mat.Vec3 {
	p := a.pos + i*a.stride
	return mat.Vec3{a.data[p], a.data[p+1], a.data[p+2]}
}
