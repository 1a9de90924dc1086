package planner

import (
	"github.com/golang/geo/r3"

	"github.com/brunopinto900/PX4-Avoidance/pointcloud"
	"github.com/brunopinto900/PX4-Avoidance/simulation"
)

// default values for planning options.
const (
	defaultChildrenPerNode        = 10
	defaultExpandedNodes          = 40
	defaultTreeNodeDuration       = 0.5
	defaultMaxSensorRange         = 15.0
	defaultMinSensorRange         = 0.2
	defaultMaxPathLength          = 15.0
	defaultSmoothingMarginDegrees = 30.0
	defaultTreeHeuristicWeight    = 10.0
	defaultAcceptanceRadius       = 2.0

	defaultObstacleWeight      = 100.0
	defaultPathDeviationWeight = 1.0

	defaultMaxJerkNorm         = 20.0
	defaultMaxAccelerationNorm = 5.0
	defaultMaxXYVelocityNorm   = 3.0
)

// SimulateFunc forward-integrates one motion edge. It must be a pure
// function of its inputs so the search is reproducible.
type SimulateFunc func(limits simulation.Limits, start simulation.State, direction r3.Vector, duration float64) simulation.State

// EdgeCostFunc scores a candidate terminal state. It must return a finite
// value that increases with obstacle proximity and with deviation from the
// direct path to the goal, varying smoothly.
type EdgeCostFunc func(state simulation.State, goal r3.Vector, weights CostWeights, cloud *pointcloud.Cloud, closestPt r3.Vector) float64

// BrakingSpeedFunc returns the maximum speed from which the vehicle can stop
// within distance without violating the jerk and acceleration norms.
type BrakingSpeedFunc func(jerk, accel, distance float64) float64

// CostWeights tune the edge-cost evaluator.
type CostWeights struct {
	Obstacle      float64 `json:"obstacle_cost_param"`
	PathDeviation float64 `json:"path_deviation_cost_param"`
}

// Options is the parameter bundle applied to one planning cycle.
//
// ChildrenPerNode, ExpandedNodes, MaxPathLength and SmoothingMarginDegrees
// are recognized and stored but have no effect on the expansion loop; the
// fan-out is fixed by candidateDirections. They are kept so configurations
// round-trip unchanged.
type Options struct {
	ChildrenPerNode        int     `json:"children_per_node"`
	ExpandedNodes          int     `json:"n_expanded_nodes"`
	TreeNodeDuration       float64 `json:"tree_node_duration"`
	MaxPathLength          float64 `json:"max_path_length"`
	SmoothingMarginDegrees float64 `json:"smoothing_margin_degrees"`
	TreeHeuristicWeight    float64 `json:"tree_heuristic_weight"`
	MaxSensorRange         float64 `json:"max_sensor_range"`
	MinSensorRange         float64 `json:"min_sensor_range"`
	AcceptanceRadius       float64 `json:"acceptance_radius"`

	CostWeights CostWeights       `json:"cost_weights"`
	Limits      simulation.Limits `json:"limits"`

	// Collaborators; left nil, the package defaults are used.
	Simulate     SimulateFunc     `json:"-"`
	EdgeCost     EdgeCostFunc     `json:"-"`
	BrakingSpeed BrakingSpeedFunc `json:"-"`
}

// DefaultOptions returns an Options populated with the package defaults.
func DefaultOptions() *Options {
	return &Options{
		ChildrenPerNode:        defaultChildrenPerNode,
		ExpandedNodes:          defaultExpandedNodes,
		TreeNodeDuration:       defaultTreeNodeDuration,
		MaxPathLength:          defaultMaxPathLength,
		SmoothingMarginDegrees: defaultSmoothingMarginDegrees,
		TreeHeuristicWeight:    defaultTreeHeuristicWeight,
		MaxSensorRange:         defaultMaxSensorRange,
		MinSensorRange:         defaultMinSensorRange,
		AcceptanceRadius:       defaultAcceptanceRadius,
		CostWeights: CostWeights{
			Obstacle:      defaultObstacleWeight,
			PathDeviation: defaultPathDeviationWeight,
		},
		Limits: simulation.Limits{
			MaxJerkNorm:         defaultMaxJerkNorm,
			MaxAccelerationNorm: defaultMaxAccelerationNorm,
			MaxXYVelocityNorm:   defaultMaxXYVelocityNorm,
		},
		Simulate:     simulation.Simulate,
		EdgeCost:     SimpleCost,
		BrakingSpeed: simulation.MaxSpeedFromBrakingDistance,
	}
}
