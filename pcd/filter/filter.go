package filter

import (
	"github.com/seqsense/pcsac/pcd"
)

type Filter interface {
	Filter(*pcd.PointCloud) (*pcd.PointCloud, error)
}
