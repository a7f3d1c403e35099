// pkg/physics/collision.go
package physics

import (
	"fmt"

	"github.com/dhconnelly/rtreego"
)

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// CollidesWithin reports whether two circles touch once the sum of their
// radii is grown by delta. Touching exactly at the boundary counts.
func (c Circle) CollidesWithin(other Circle, delta float64) bool {
	return c.Center.Distance(other.Center) <= c.Radius+other.Radius+delta
}

// Bounds returns the axis-aligned box enclosing the circle grown by pad.
func (c Circle) Bounds(pad float64) Rect {
	r := c.Radius + pad
	return Rect{
		Center: c.Center,
		Width:  2 * r,
		Height: 2 * r,
	}
}

// Rect represents a rectangular area
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// rtree converts the rectangle to an R-tree box. Degenerate sizes are
// widened slightly since rtreego rejects zero-length sides.
func (r Rect) rtree() (rtreego.Rect, error) {
	w, h := r.Width, r.Height
	if w <= 0 {
		w = minSide
	}
	if h <= 0 {
		h = minSide
	}
	return rtreego.NewRect(
		rtreego.Point{r.Center.X - w/2, r.Center.Y - h/2},
		[]float64{w, h},
	)
}

const minSide = 0.01

// Item is anything the broad phase can index.
type Item interface {
	Collider() Circle
}

type indexed struct {
	item Item
	rect rtreego.Rect
}

func (s *indexed) Bounds() rtreego.Rect {
	return s.rect
}

// Index is a per-tick broad phase over circular items. It only narrows the
// set of pairs worth testing; callers still run the exact circle test.
type Index struct {
	tree *rtreego.Rtree
}

// NewIndex builds an index over items.
func NewIndex(items []Item) (*Index, error) {
	spatials := make([]rtreego.Spatial, 0, len(items))
	for _, it := range items {
		rect, err := it.Collider().Bounds(0).rtree()
		if err != nil {
			return nil, fmt.Errorf("index bounds: %w", err)
		}
		spatials = append(spatials, &indexed{item: it, rect: rect})
	}
	return &Index{tree: rtreego.NewTree(2, 2, 8, spatials...)}, nil
}

// Candidates returns the items whose bounding boxes intersect the box of c
// grown by delta. Order is unspecified. The query is padded by minSide so
// boxes that merely touch, as with circles exactly delta apart, are kept.
func (idx *Index) Candidates(c Circle, delta float64) map[Item]struct{} {
	found := make(map[Item]struct{})
	if idx == nil || idx.tree == nil {
		return found
	}
	query, err := c.Bounds(delta + minSide).rtree()
	if err != nil {
		return found
	}
	for _, s := range idx.tree.SearchIntersect(query) {
		found[s.(*indexed).item] = struct{}{}
	}
	return found
}
