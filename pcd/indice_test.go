package pcd

import (
	"testing"

	"github.com/seqsense/pcsac/mat"
)

func TestIndiceVec3RandomAccessor(t *testing.T) {
	base := Vec3Slice{
		{0, 0, 0},
		{1, 0, 0},
		{2, 0, 0},
		{3, 0, 0},
	}
	ra := NewIndiceVec3RandomAccessor(base, []int{3, 1})

	if n := ra.Len(); n != 2 {
		t.Fatalf("Expected len: 2, got: %d", n)
	}
	if p := ra.Vec3At(0); !p.Equal(mat.Vec3{3, 0, 0}) {
		t.Errorf("Expected point: %v, got: %v", mat.Vec3{3, 0, 0}, p)
	}
	if p := ra.Vec3At(1); !p.Equal(mat.Vec3{1, 0, 0}) {
		t.Errorf("Expected point: %v, got: %v", mat.Vec3{1, 0, 0}, p)
	}
}
