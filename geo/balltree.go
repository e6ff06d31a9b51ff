package geo

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"

	"github.com/epimodel/hospitals/schema"
)

var (
	ErrNoPoints = fmt.Errorf("no points to index")
)

// BallTree answers k-nearest-neighbour queries over a fixed set of
// coordinates using great-circle (haversine) distance. Euclidean
// distance on raw latitude/longitude is not a valid metric at this
// point on the globe, so the tree partitions points by their distance
// to a vantage point instead of by axis.
//
// The tree is immutable once built and safe for concurrent queries.
type BallTree struct {
	points []orb.Point
	root   *vpNode
}

// vpNode splits its subtree by distance to the vantage point: points
// closer than radius go inside, the rest outside.
type vpNode struct {
	index   int
	radius  float64
	inside  *vpNode
	outside *vpNode
}

// NewBallTree builds the tree from an ordered list of locations in
// degrees. Query results refer to positions in this list.
func NewBallTree(locations []schema.Location) (*BallTree, error) {
	if len(locations) == 0 {
		return nil, ErrNoPoints
	}

	points := make([]orb.Point, len(locations))
	indices := make([]int, len(locations))
	for i, loc := range locations {
		points[i] = locationPoint(loc)
		indices[i] = i
	}

	return &BallTree{
		points: points,
		root:   buildNode(points, indices),
	}, nil
}

func buildNode(points []orb.Point, indices []int) *vpNode {
	if len(indices) == 0 {
		return nil
	}

	node := &vpNode{index: indices[0]}
	rest := indices[1:]
	if len(rest) == 0 {
		return node
	}

	type entry struct {
		index int
		dist  float64
	}
	entries := make([]entry, len(rest))
	for i, index := range rest {
		entries[i] = entry{
			index: index,
			dist:  orbgeo.DistanceHaversine(points[node.index], points[index]),
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].dist < entries[j].dist
	})

	mid := len(entries) / 2
	node.radius = entries[mid].dist

	inside := make([]int, 0, mid)
	outside := make([]int, 0, len(entries)-mid)
	for i, e := range entries {
		if i < mid {
			inside = append(inside, e.index)
		} else {
			outside = append(outside, e.index)
		}
	}
	node.inside = buildNode(points, inside)
	node.outside = buildNode(points, outside)

	return node
}

// Count - number of indexed points
func (t *BallTree) Count() int {
	return len(t.points)
}

// Query returns the indices of the k points closest to the given
// location together with their distances in metres, sorted ascending
// by distance. Ties are broken by index order. k is clamped to the
// number of indexed points.
func (t *BallTree) Query(location schema.Location, k int) ([]int, []float64) {
	if k > len(t.points) {
		k = len(t.points)
	}
	if k <= 0 {
		return []int{}, []float64{}
	}

	s := &knnSearch{k: k}
	t.search(t.root, locationPoint(location), s)

	indices := make([]int, len(s.best))
	distances := make([]float64, len(s.best))
	for i, n := range s.best {
		indices[i] = n.index
		distances[i] = n.dist
	}
	return indices, distances
}

func (t *BallTree) search(node *vpNode, query orb.Point, s *knnSearch) {
	if node == nil {
		return
	}

	d := orbgeo.DistanceHaversine(query, t.points[node.index])
	s.consider(node.index, d)

	// Descend into the side the query falls on first, then into the
	// other side only if the ball boundary is within the current
	// worst candidate distance.
	if d < node.radius {
		t.search(node.inside, query, s)
		if d+s.worst() >= node.radius {
			t.search(node.outside, query, s)
		}
	} else {
		t.search(node.outside, query, s)
		if d-s.worst() <= node.radius {
			t.search(node.inside, query, s)
		}
	}
}

type neighbour struct {
	index int
	dist  float64
}

// knnSearch keeps the k best candidates seen so far, ascending by
// distance with ties on index order.
type knnSearch struct {
	k    int
	best []neighbour
}

func (s *knnSearch) consider(index int, dist float64) {
	i := sort.Search(len(s.best), func(i int) bool {
		if s.best[i].dist != dist {
			return s.best[i].dist > dist
		}
		return s.best[i].index > index
	})
	if i >= s.k {
		return
	}

	s.best = append(s.best, neighbour{})
	copy(s.best[i+1:], s.best[i:])
	s.best[i] = neighbour{index: index, dist: dist}
	if len(s.best) > s.k {
		s.best = s.best[:s.k]
	}
}

func (s *knnSearch) worst() float64 {
	if len(s.best) < s.k {
		return math.MaxFloat64
	}
	return s.best[len(s.best)-1].dist
}

// orb points are longitude first
func locationPoint(loc schema.Location) orb.Point {
	return orb.Point{loc.Longitude, loc.Latitude}
}
