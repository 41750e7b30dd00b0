package index

import (
	"math"

	"github.com/ZanzyTHEbar/dirmeta/dirmeta/meta"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// MetaPoint projects a record's numeric attributes (size, modification time,
// permission bits) into a k-dimensional point for spatial queries. Records
// without an attribute group have no point.
type MetaPoint struct {
	Record *meta.Meta
	Coords kdtree.Point
}

func newMetaPoint(record *meta.Meta) (MetaPoint, bool) {
	if record.Attr == nil {
		return MetaPoint{}, false
	}
	return MetaPoint{
		Record: record,
		Coords: kdtree.Point{
			float64(record.Attr.Size),
			float64(record.Attr.Date.Unix()),
			float64(record.Attr.Permissions.Mode.Perm()),
		},
	}, true
}

// Compare performs axis comparisons for the KD-Tree.
func (p MetaPoint) Compare(comparable kdtree.Comparable, dim kdtree.Dim) float64 {
	other := comparable.(MetaPoint)
	return p.Coords[dim] - other.Coords[dim]
}

// Dims returns the number of dimensions in the point.
func (p MetaPoint) Dims() int {
	return len(p.Coords)
}

// Distance calculates the squared Euclidean distance between two MetaPoints.
func (p MetaPoint) Distance(c kdtree.Comparable) float64 {
	other, ok := c.(MetaPoint)
	if !ok {
		return math.Inf(1)
	}

	if len(p.Coords) != len(other.Coords) {
		return math.Inf(1)
	}

	dist := 0.0
	for i := range p.Coords {
		delta := p.Coords[i] - other.Coords[i]
		dist += delta * delta
	}
	return dist
}

// MetaPointCollection implements kdtree.Interface over MetaPoints.
type MetaPointCollection []MetaPoint

func (p MetaPointCollection) Index(i int) kdtree.Comparable { return p[i] }
func (p MetaPointCollection) Len() int                      { return len(p) }
func (p MetaPointCollection) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}

func (p MetaPointCollection) Pivot(d kdtree.Dim) int {
	return plane{MetaPointCollection: p, Dim: d}.Pivot()
}

// plane is a helper for sorting the collection along one dimension.
type plane struct {
	kdtree.Dim
	MetaPointCollection
}

func (p plane) Less(i, j int) bool {
	return p.MetaPointCollection[i].Coords[p.Dim] < p.MetaPointCollection[j].Coords[p.Dim]
}

func (p plane) Pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.MetaPointCollection = p.MetaPointCollection[start:end]
	return p
}

func (p plane) Swap(i, j int) {
	p.MetaPointCollection[i], p.MetaPointCollection[j] = p.MetaPointCollection[j], p.MetaPointCollection[i]
}
