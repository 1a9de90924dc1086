// Package planner builds a receding-horizon lookahead tree of candidate
// motion edges toward a goal and backtracks the cheapest branch into an
// ordered sequence of directional setpoints for the downstream controller.
package planner

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/brunopinto900/PX4-Avoidance/pointcloud"
	"github.com/brunopinto900/PX4-Avoidance/simulation"
)

// Status classifies how a planning call terminated.
type Status int

const (
	// StatusNoProgress means no usable plan was produced; the caller must
	// fall back to a safety behavior.
	StatusNoProgress Status = iota
	// StatusReachedGoal means the tree reached the acceptance radius.
	StatusReachedGoal
	// StatusReachedSensorHorizon means the tree grew past twice the maximum
	// sensor range before reaching the goal.
	StatusReachedSensorHorizon
)

func (s Status) String() string {
	switch s {
	case StatusReachedGoal:
		return "reached goal"
	case StatusReachedSensorHorizon:
		return "reached sensor horizon"
	default:
		return "no progress"
	}
}

// PlanRequest fully describes one planning cycle. It is consumed read-only;
// no state carries over between calls.
type PlanRequest struct {
	// Position, Velocity and Orientation describe the current vehicle pose
	// in the world frame.
	Position    r3.Vector
	Velocity    r3.Vector
	Orientation quat.Number

	// Goal is the world-frame position to plan toward.
	Goal r3.Vector

	// Cloud holds nearby obstacle points; nil means no obstacles.
	Cloud *pointcloud.Cloud

	// ClosestPointOnLine is the vehicle's projection onto the global path,
	// forwarded to the edge-cost evaluator.
	ClosestPointOnLine r3.Vector

	// Time stamps the root node, in seconds.
	Time float64

	Options *Options
}

// validate fills in defaults and rejects configurations the search cannot
// run under.
func (req *PlanRequest) validate() error {
	if req.Options == nil {
		req.Options = DefaultOptions()
	}
	opts := req.Options
	if opts.Simulate == nil {
		opts.Simulate = simulation.Simulate
	}
	if opts.EdgeCost == nil {
		opts.EdgeCost = SimpleCost
	}
	if opts.BrakingSpeed == nil {
		opts.BrakingSpeed = simulation.MaxSpeedFromBrakingDistance
	}
	if opts.TreeNodeDuration <= 0 {
		return errors.New("tree node duration must be positive")
	}
	if opts.MaxSensorRange <= 0 {
		return errors.New("max sensor range must be positive")
	}
	if opts.AcceptanceRadius <= 0 {
		return errors.New("acceptance radius must be positive")
	}
	if opts.TreeHeuristicWeight <= 0 {
		return errors.New("tree heuristic weight must be positive")
	}
	return nil
}

// PlanResult is the output of one planning cycle.
type PlanResult struct {
	// Setpoints are the directional setpoints of the winning branch in
	// start-to-goal order; the first element is the root's zero setpoint.
	Setpoints []r3.Vector

	// StartingDirection is the edge leaving the root, the immediately
	// actionable command. It is the zero vector when Status is
	// StatusNoProgress and the tree produced fewer than two segments.
	StartingDirection r3.Vector

	// States are the simulated states along the winning branch, in the same
	// order as Setpoints.
	States []simulation.State

	Status Status
}

var errNilRequest = errors.New("plan request must not be nil")

// BuildLookaheadTree runs one planning cycle. It is single-threaded and
// blocking; an expired context converts an in-flight search into a
// StatusNoProgress result rather than an error.
func BuildLookaheadTree(ctx context.Context, req *PlanRequest, logger golog.Logger) (*PlanResult, error) {
	p, err := newStarPlanner(req, logger)
	if err != nil {
		return nil, err
	}
	return p.buildLookaheadTree(ctx), nil
}
