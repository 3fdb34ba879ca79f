package pcd

import (
	"errors"

	"github.com/seqsense/pcsac/pcd/internal/float"
)

type PointCloudHeader struct {
	Version   float32
	Fields    []string
	Size      []int
	Type      []string
	Count     []int
	Width     int
	Height    int
	Viewpoint []float32
}

func (h *PointCloudHeader) Clone() PointCloudHeader {
	return PointCloudHeader{
		Version:   h.Version,
		Fields:    append([]string{}, h.Fields...),
		Size:      append([]int{}, h.Size...),
		Type:      append([]string{}, h.Type...),
		Count:     append([]int{}, h.Count...),
		Width:     h.Width,
		Height:    h.Height,
		Viewpoint: append([]float32{}, h.Viewpoint...),
	}
}

// Stride returns the number of bytes per point.
func (h *PointCloudHeader) Stride() int {
	var stride int
	for i := range h.Fields {
		stride += h.Count[i] * h.Size[i]
	}
	return stride
}

func (h *PointCloudHeader) fieldOffset(name string) (int, bool) {
	offset := 0
	for i, fn := range h.Fields {
		if fn == name {
			return offset, true
		}
		offset += h.Size[i] * h.Count[i]
	}
	return 0, false
}

type PointCloud struct {
	PointCloudHeader
	Points int

	Data      []byte
	dataFloat []float32
}

func (pc *PointCloud) Float32Iterator(name string) (Float32Iterator, error) {
	offset, ok := pc.fieldOffset(name)
	if !ok {
		return nil, errors.New("invalid field name")
	}
	if pc.Stride()&3 == 0 && offset&3 == 0 {
		// Aligned
		if pc.dataFloat == nil {
			pc.dataFloat = float.ByteSliceAsFloat32Slice(pc.Data)
		}
		return &float32Iterator{
			data:   pc.dataFloat,
			pos:    offset / 4,
			stride: pc.Stride() / 4,
		}, nil
	}
	return &binaryFloat32Iterator{
		binaryIterator: binaryIterator{
			data:   pc.Data,
			pos:    offset,
			stride: pc.Stride(),
		},
	}, nil
}

func (pc *PointCloud) Uint32Iterator(name string) (Uint32Iterator, error) {
	offset, ok := pc.fieldOffset(name)
	if !ok {
		return nil, errors.New("invalid field name")
	}
	if pc.Stride()&3 == 0 && offset&3 == 0 {
		// Aligned
		if pc.dataFloat == nil {
			pc.dataFloat = float.ByteSliceAsFloat32Slice(pc.Data)
		}
		return &float32BitsIterator{float32Iterator{
			data:   pc.dataFloat,
			pos:    offset / 4,
			stride: pc.Stride() / 4,
		}}, nil
	}
	return &binaryUint32Iterator{
		binaryIterator: binaryIterator{
			data:   pc.Data,
			pos:    offset,
			stride: pc.Stride(),
		},
	}, nil
}

func (pc *PointCloud) Float32Iterators(names ...string) ([]Float32Iterator, error) {
	var its []Float32Iterator
	for _, name := range names {
		it, err := pc.Float32Iterator(name)
		if err != nil {
			return nil, err
		}
		its = append(its, it)
	}
	return its, nil
}

func (pc *PointCloud) Vec3Iterator() (Vec3Iterator, error) {
	var xyz int
	for _, name := range pc.Fields {
		if name == "x" && xyz == 0 {
			xyz = 1
		} else if name == "y" && xyz == 1 {
			xyz = 2
		} else if name == "z" && xyz == 2 {
			xyz = 3
		}
	}
	if xyz != 3 {
		return pc.naiveVec3Iterator()
	}
	it, err := pc.Float32Iterator("x")
	if err != nil {
		return nil, err
	}
	vit, ok := it.(*float32Iterator)
	if !ok {
		return pc.naiveVec3Iterator()
	}
	return vit, nil
}

func (pc *PointCloud) naiveVec3Iterator() (Vec3Iterator, error) {
	its, err := pc.Float32Iterators("x", "y", "z")
	if err != nil {
		return nil, err
	}
	return naiveVec3Iterator{its[0], its[1], its[2]}, nil
}

// Vec3RandomAccessor returns a random accessor over the x, y, z fields.
// Clouds without aligned contiguous coordinates are copied out.
func (pc *PointCloud) Vec3RandomAccessor() (Vec3RandomAccessor, error) {
	it, err := pc.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	if vit, ok := it.(*float32Iterator); ok {
		return &float32RandomAccessor{
			data:   vit.data,
			pos:    vit.pos,
			stride: vit.stride,
			n:      pc.Points,
		}, nil
	}
	vs := make(Vec3Slice, 0, pc.Points)
	for ; it.IsValid(); it.Incr() {
		vs = append(vs, it.Vec3())
	}
	return vs, nil
}

// Select returns a new point cloud consisting of the points at the
// given indice, in the given order.
func (pc *PointCloud) Select(indice []int) (*PointCloud, error) {
	stride := pc.Stride()
	out := &PointCloud{
		PointCloudHeader: pc.PointCloudHeader.Clone(),
		Points:           len(indice),
		Data:             make([]byte, stride*len(indice)),
	}
	out.Width = len(indice)
	out.Height = 1
	for j, i := range indice {
		if i < 0 || i >= pc.Points {
			return nil, errors.New("index out of range")
		}
		copy(out.Data[j*stride:(j+1)*stride], pc.Data[i*stride:(i+1)*stride])
	}
	return out, nil
}
