package pcd

import (
	"encoding/binary"
	"math"

	"github.com/seqsense/pcsac/mat"
)

type Float32Iterator interface {
	Incr()
	IsValid() bool
	Float32() float32
	SetFloat32(float32)
}

type Uint32Iterator interface {
	Incr()
	IsValid() bool
	Uint32() uint32
	SetUint32(uint32)
}

type Vec3Iterator interface {
	Incr()
	IsValid() bool
	Vec3() mat.Vec3
	SetVec3(mat.Vec3)
}

type binaryIterator struct {
	data   []byte
	pos    int
	stride int
}

func (i *binaryIterator) Incr() {
	i.pos += i.stride
}

func (i *binaryIterator) IsValid() bool {
	return i.pos+4 <= len(i.data)
}

type binaryFloat32Iterator struct {
	binaryIterator
}

func (i *binaryFloat32Iterator) Float32() float32 {
	return math.Float32frombits(
		binary.LittleEndian.Uint32(i.data[i.pos : i.pos+4]),
	)
}

func (i *binaryFloat32Iterator) SetFloat32(v float32) {
	binary.LittleEndian.PutUint32(i.data[i.pos:i.pos+4], math.Float32bits(v))
}

type binaryUint32Iterator struct {
	binaryIterator
}

func (i *binaryUint32Iterator) Uint32() uint32 {
	return binary.LittleEndian.Uint32(i.data[i.pos : i.pos+4])
}

func (i *binaryUint32Iterator) SetUint32(v uint32) {
	binary.LittleEndian.PutUint32(i.data[i.pos:i.pos+4], v)
}

// float32Iterator iterates aligned data without byte decoding.
type float32Iterator struct {
	data   []float32
	pos    int
	stride int
}

func (i *float32Iterator) Incr() {
	i.pos += i.stride
}

func (i *float32Iterator) IsValid() bool {
	return i.pos < len(i.data)
}

func (i *float32Iterator) Float32() float32 {
	return i.data[i.pos]
}

func (i *float32Iterator) SetFloat32(v float32) {
	i.data[i.pos] = v
}

func (i *float32Iterator) Vec3() mat.Vec3 {
	return mat.Vec3{i.data[i.pos], i.data[i.pos+1], i.data[i.pos+2]}
}

func (i *float32Iterator) SetVec3(v mat.Vec3) {
	i.data[i.pos] = v[0]
	i.data[i.pos+1] = v[1]
	i.data[i.pos+2] = v[2]
}

type float32BitsIterator struct {
	float32Iterator
}

func (i *float32BitsIterator) Uint32() uint32 {
	return math.Float32bits(i.data[i.pos])
}

func (i *float32BitsIterator) SetUint32(v uint32) {
	i.data[i.pos] = math.Float32frombits(v)
}

type naiveVec3Iterator [3]Float32Iterator

func (i naiveVec3Iterator) IsValid() bool {
	return i[0].IsValid()
}

func (i naiveVec3Iterator) Incr() {
	i[0].Incr()
	i[1].Incr()
	i[2].Incr()
}

func (i naiveVec3Iterator) Vec3() mat.Vec3 {
	return mat.Vec3{i[0].Float32(), i[1].Float32(), i[2].Float32()}
}

func (i naiveVec3Iterator) SetVec3(v mat.Vec3) {
	i[0].SetFloat32(v[0])
	i[1].SetFloat32(v[1])
	i[2].SetFloat32(v[2])
}
