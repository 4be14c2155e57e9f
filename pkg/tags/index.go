package tags

import (
	"sort"

	"github.com/RoaringBitmap/roaring"

	"github.com/alekulyn/limo/pkg/entry"
)

// Index maps tags to the load-order positions of the entries carrying them.
type Index struct {
	byTag map[string]*roaring.Bitmap
	all   *roaring.Bitmap
	ids   []int
	auto  map[string][]string
}

// Build indexes entries, which must be in load order.
func Build(entries []*entry.Entry) *Index {
	ix := &Index{
		byTag: make(map[string]*roaring.Bitmap),
		all:   roaring.New(),
		ids:   make([]int, len(entries)),
		auto:  make(map[string][]string),
	}
	for i, e := range entries {
		pos := uint32(i)
		ix.all.Add(pos)
		ix.ids[i] = e.ID
		if e.IsSeparator() {
			continue
		}
		ix.auto[e.Name] = append([]string{}, e.Mod.AutoTags...)
		for _, tag := range e.Tags() {
			bm, ok := ix.byTag[tag]
			if !ok {
				bm = roaring.New()
				ix.byTag[tag] = bm
			}
			bm.Add(pos)
		}
	}
	return ix
}

// Len returns the number of indexed positions.
func (ix *Index) Len() int {
	return len(ix.ids)
}

// Positions returns the sorted load-order positions tagged with tag.
func (ix *Index) Positions(tag string) []int {
	bm, ok := ix.byTag[tag]
	if !ok {
		return []int{}
	}
	return toInts(bm)
}

// Members returns the IDs of the entries tagged with tag, in load order.
func (ix *Index) Members(tag string) []int {
	positions := ix.Positions(tag)
	out := make([]int, len(positions))
	for i, p := range positions {
		out[i] = ix.ids[p]
	}
	return out
}

// Has reports whether the entry at pos carries tag.
func (ix *Index) Has(tag string, pos int) bool {
	bm, ok := ix.byTag[tag]
	return ok && pos >= 0 && bm.Contains(uint32(pos))
}

// Count returns how many entries carry tag.
func (ix *Index) Count(tag string) int {
	if bm, ok := ix.byTag[tag]; ok {
		return int(bm.GetCardinality())
	}
	return 0
}

// Counts returns the number of entries per tag.
func (ix *Index) Counts() map[string]int {
	out := make(map[string]int, len(ix.byTag))
	for tag, bm := range ix.byTag {
		out[tag] = int(bm.GetCardinality())
	}
	return out
}

// Tags returns every indexed tag, sorted.
func (ix *Index) Tags() []string {
	out := make([]string, 0, len(ix.byTag))
	for tag := range ix.byTag {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// TagMap returns entry name -> automatic tags.
func (ix *Index) TagMap() map[string][]string {
	out := make(map[string][]string, len(ix.auto))
	for name, tags := range ix.auto {
		out[name] = append([]string{}, tags...)
	}
	return out
}

// Partition splits all positions into len(classes)+1 ordered buckets. A
// position goes to the first class whose tag it carries; the rest fill the
// final bucket.
func (ix *Index) Partition(classes []string) [][]int {
	claimed := roaring.New()
	buckets := make([][]int, 0, len(classes)+1)
	for _, tag := range classes {
		bucket := roaring.New()
		if bm, ok := ix.byTag[tag]; ok {
			bucket = roaring.AndNot(bm, claimed)
		}
		claimed.Or(bucket)
		buckets = append(buckets, toInts(bucket))
	}
	buckets = append(buckets, toInts(roaring.AndNot(ix.all, claimed)))
	return buckets
}

func toInts(bm *roaring.Bitmap) []int {
	out := make([]int, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}
