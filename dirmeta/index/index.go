// Package index builds read-only query structures over a finished listing
// tree: a patricia path index, per-kind roaring bitmaps, and a KD-Tree over
// the numeric attributes. The tree must be fully built (and size-finalized,
// if that pass runs) before indexing; the index never mutates records.
package index

import (
	"log/slog"
	"time"

	"github.com/ZanzyTHEbar/dirmeta/dirmeta/meta"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// Index is the combined query surface over one listing tree.
type Index struct {
	paths   *PathIndex
	kinds   *KindBitmaps
	points  MetaPointCollection
	kd      *kdtree.Tree
	records []*meta.Meta // position == RecordID
	logger  *slog.Logger
}

// Option allows for customization of an Index
type Option func(*Index)

// WithLogger sets a custom logger
func WithLogger(logger *slog.Logger) Option {
	return func(idx *Index) {
		idx.logger = logger
	}
}

// Build walks a finished tree depth-first, assigning each record an id and
// populating every index structure.
func Build(root *meta.Meta, opts ...Option) *Index {
	idx := &Index{
		paths:  NewPathIndex(),
		kinds:  NewKindBitmaps(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(idx)
	}

	idx.collect(root)

	if len(idx.points) > 0 {
		idx.kd = kdtree.New(idx.points, false)
	}

	idx.logger.Debug("listing index built",
		"records", len(idx.records),
		"points", len(idx.points))

	return idx
}

func (idx *Index) collect(record *meta.Meta) {
	id := RecordID(len(idx.records))
	idx.records = append(idx.records, record)

	if err := idx.paths.Insert(record); err != nil {
		idx.logger.Error("failed to insert record into path index",
			"error", err,
			"path", record.Path)
	}
	idx.kinds.Add(record.FileType.Kind, id)

	if point, ok := newMetaPoint(record); ok {
		idx.points = append(idx.points, point)
	}

	for _, child := range record.Content {
		idx.collect(child)
	}
}

// Len returns the number of indexed records.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Lookup finds a record by its exact path.
func (idx *Index) Lookup(path string) (*meta.Meta, bool) {
	return idx.paths.Lookup(path)
}

// PrefixLookup finds all records whose paths start with the given prefix.
func (idx *Index) PrefixLookup(prefix string) []*meta.Meta {
	return idx.paths.PrefixLookup(prefix)
}

// ByKind returns every record of the given kinds in id order.
func (idx *Index) ByKind(kinds ...meta.FileKind) []*meta.Meta {
	bm := idx.kinds.Or(kinds...)

	results := make([]*meta.Meta, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		results = append(results, idx.records[it.Next()])
	}
	return results
}

// Nearest returns the record whose (size, mtime, permissions) vector is
// closest to the query, or nil when nothing carries attributes.
func (idx *Index) Nearest(size int64, date time.Time, perm uint32) *meta.Meta {
	if idx.kd == nil {
		return nil
	}

	query := MetaPoint{Coords: kdtree.Point{
		float64(size),
		float64(date.Unix()),
		float64(perm),
	}}

	got, _ := idx.kd.Nearest(query)
	point, ok := got.(MetaPoint)
	if !ok {
		return nil
	}
	return point.Record
}
