package planner

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/brunopinto900/PX4-Avoidance/pointcloud"
	"github.com/brunopinto900/PX4-Avoidance/simulation"
)

func TestSimpleCostObstacleProximity(t *testing.T) {
	cloud := pointcloud.New([]r3.Vector{{X: 5}})
	weights := CostWeights{Obstacle: 100}
	goal := r3.Vector{X: 10}

	near := SimpleCost(simulation.State{Position: r3.Vector{X: 4}}, goal, weights, cloud, r3.Vector{})
	far := SimpleCost(simulation.State{Position: r3.Vector{X: 1}}, goal, weights, cloud, r3.Vector{})

	test.That(t, near, test.ShouldBeGreaterThan, far)
	test.That(t, math.IsInf(near, 0), test.ShouldBeFalse)

	// Sitting exactly on an obstacle point still costs a finite amount.
	onTop := SimpleCost(simulation.State{Position: r3.Vector{X: 5}}, goal, weights, cloud, r3.Vector{})
	test.That(t, onTop, test.ShouldEqual, 100.0)
}

func TestSimpleCostPathDeviation(t *testing.T) {
	weights := CostWeights{PathDeviation: 2}
	goal := r3.Vector{X: 10}

	onLine := SimpleCost(simulation.State{Position: r3.Vector{X: 3}}, goal, weights, nil, r3.Vector{})
	offLine := SimpleCost(simulation.State{Position: r3.Vector{X: 3, Y: 4}}, goal, weights, nil, r3.Vector{})

	test.That(t, onLine, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, offLine, test.ShouldAlmostEqual, 8, 1e-9)
}

func TestSimpleCostDegenerateLine(t *testing.T) {
	// Closest point and goal coincide: deviation falls back to the distance
	// to the goal itself.
	goal := r3.Vector{X: 2}
	cost := SimpleCost(simulation.State{Position: r3.Vector{X: 2, Y: 3}}, goal, CostWeights{PathDeviation: 1}, nil, goal)
	test.That(t, cost, test.ShouldAlmostEqual, 3, 1e-9)
}
