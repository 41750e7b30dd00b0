package index

import (
	"github.com/ZanzyTHEbar/dirmeta/dirmeta/meta"

	roaring "github.com/RoaringBitmap/roaring"
)

// RecordID identifies a record inside one built Index. IDs are assigned in
// depth-first order and are only meaningful within that Index.
type RecordID uint32

// KindBitmaps holds roaring bitmaps keyed by file kind.
// Example: KindDirectory -> bitmap of RecordIDs that are directories.
type KindBitmaps struct {
	Kinds map[meta.FileKind]*roaring.Bitmap
}

func NewKindBitmaps() *KindBitmaps {
	return &KindBitmaps{Kinds: make(map[meta.FileKind]*roaring.Bitmap)}
}

func (kb *KindBitmaps) Add(kind meta.FileKind, id RecordID) {
	bm, ok := kb.Kinds[kind]
	if !ok {
		bm = roaring.New()
		kb.Kinds[kind] = bm
	}
	bm.Add(uint32(id))
}

// Bitmap returns a copy of the bitmap for one kind.
func (kb *KindBitmaps) Bitmap(kind meta.FileKind) *roaring.Bitmap {
	return kb.clone(kb.Kinds[kind])
}

// Or returns the union of several kind bitmaps.
func (kb *KindBitmaps) Or(kinds ...meta.FileKind) *roaring.Bitmap {
	res := roaring.New()
	for _, kind := range kinds {
		if bm := kb.Kinds[kind]; bm != nil {
			res.Or(bm)
		}
	}
	return res
}

func (kb *KindBitmaps) clone(b *roaring.Bitmap) *roaring.Bitmap {
	if b == nil {
		return roaring.New()
	}
	c := roaring.New()
	c.Or(b) // copy
	return c
}
