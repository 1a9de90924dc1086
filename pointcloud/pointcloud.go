// Package pointcloud provides an obstacle point cloud with nearest-neighbor
// lookup, the spatial index consumed by the lookahead planner's cost model.
package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// Cloud is an immutable set of obstacle points indexed by a k-d tree.
// A nil *Cloud behaves as an empty cloud.
type Cloud struct {
	tree *kdtree.Tree
	size int
}

// New builds a Cloud from world-frame obstacle points.
func New(points []r3.Vector) *Cloud {
	pts := make(kdtree.Points, 0, len(points))
	for _, p := range points {
		pts = append(pts, kdtree.Point{p.X, p.Y, p.Z})
	}
	cloud := &Cloud{size: len(pts)}
	if len(pts) > 0 {
		cloud.tree = kdtree.New(pts, false)
	}
	return cloud
}

// Size returns the number of points in the cloud.
func (c *Cloud) Size() int {
	if c == nil {
		return 0
	}
	return c.size
}

// NearestNeighbor returns the stored point closest to p and the Euclidean
// distance to it. ok is false for an empty cloud.
func (c *Cloud) NearestNeighbor(p r3.Vector) (r3.Vector, float64, bool) {
	if c == nil || c.tree == nil {
		return r3.Vector{}, 0, false
	}
	got, dist2 := c.tree.Nearest(kdtree.Point{p.X, p.Y, p.Z})
	if got == nil {
		return r3.Vector{}, 0, false
	}
	q := got.(kdtree.Point)
	// gonum's kdtree reports squared Euclidean distances.
	return r3.Vector{X: q[0], Y: q[1], Z: q[2]}, math.Sqrt(dist2), true
}
