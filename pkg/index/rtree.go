package index

import (
	"github.com/dhconnelly/rtreego"
	"golang.org/x/exp/slices"

	"lintang/mapview/pkg/feature"
	"lintang/mapview/pkg/geo"
)

// markers are points, the r-tree wants rectangles with area
var tol = 0.0001

type markerItem struct {
	marker *feature.Marker
}

func (it *markerItem) Bounds() rtreego.Rect {
	// rectangle centered on the marker with side lengths 2 * tol
	loc := rtreego.Point{it.marker.Loc.Lng, it.marker.Loc.Lat}
	return loc.ToRect(tol)
}

// MarkerIndex is an r-tree over marker locations used to cull markers
// down to the current viewport before they go anywhere near a renderer.
// Not safe for concurrent mutation, the rendering loop owns it.
type MarkerIndex struct {
	tree  *rtreego.Rtree
	items map[int64]*markerItem
}

func NewMarkerIndex() *MarkerIndex {
	return &MarkerIndex{
		tree:  rtreego.NewTree(2, 25, 50),
		items: make(map[int64]*markerItem),
	}
}

// Insert adds the marker, replacing a previous marker with the same ID.
func (idx *MarkerIndex) Insert(m *feature.Marker) {
	if old, ok := idx.items[m.ID]; ok {
		idx.tree.Delete(old)
	}
	item := &markerItem{marker: m}
	idx.items[m.ID] = item
	idx.tree.Insert(item)
}

func (idx *MarkerIndex) Delete(id int64) bool {
	item, ok := idx.items[id]
	if !ok {
		return false
	}
	delete(idx.items, id)
	return idx.tree.Delete(item)
}

// Search returns the markers inside the viewport, ordered by ID. An
// invalid viewport has nothing inside it.
func (idx *MarkerIndex) Search(viewport *geo.LatLngBounds) []*feature.Marker {
	if viewport == nil || !viewport.IsValid() {
		return nil
	}

	searchRect, err := rtreego.NewRectFromPoints(
		rtreego.Point{viewport.West() - tol, viewport.South() - tol},
		rtreego.Point{viewport.East() + tol, viewport.North() + tol})
	if err != nil {
		return nil
	}

	out := []*feature.Marker{}
	for _, spatial := range idx.tree.SearchIntersect(searchRect) {
		item := spatial.(*markerItem)
		// the r-tree rectangles are inflated by tol, recheck for real
		if viewport.Contains(&item.marker.Loc) {
			out = append(out, item.marker)
		}
	}
	slices.SortFunc(out, func(a, b *feature.Marker) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return out
}

func (idx *MarkerIndex) Len() int {
	return idx.tree.Size()
}
