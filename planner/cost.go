package planner

import (
	"github.com/golang/geo/r3"

	"github.com/brunopinto900/PX4-Avoidance/pointcloud"
	"github.com/brunopinto900/PX4-Avoidance/simulation"
)

// SimpleCost is the default edge-cost evaluator. It blends deviation from
// the direct path (distance to the line through closestPt and goal) with
// obstacle proximity, where a nearest obstacle at distance d contributes
// weight/(1+d²). Both terms are smooth and finite everywhere.
func SimpleCost(
	state simulation.State,
	goal r3.Vector,
	weights CostWeights,
	cloud *pointcloud.Cloud,
	closestPt r3.Vector,
) float64 {
	cost := weights.PathDeviation * distanceToLine(state.Position, closestPt, goal)
	if _, dist, ok := cloud.NearestNeighbor(state.Position); ok {
		cost += weights.Obstacle / (1 + dist*dist)
	}
	return cost
}

// distanceToLine returns the distance from p to the line through a and b,
// falling back to the distance to b when a and b coincide.
func distanceToLine(p, a, b r3.Vector) float64 {
	ab := b.Sub(a)
	n := ab.Norm()
	if n < 1e-9 {
		return p.Sub(b).Norm()
	}
	return ab.Cross(p.Sub(a)).Norm() / n
}
