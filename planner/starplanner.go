package planner

import (
	"context"
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/brunopinto900/PX4-Avoidance/simulation"
)

const (
	// Two simulated terminal states closer than this are considered the same
	// node and the later one is discarded.
	nodeDedupRadius = 0.2

	// Number of expansion iterations before giving up.
	defaultPlanIter = 10000
)

// candidateDirections are the body-frame motion directions tried at every
// expansion: the six axis-aligned unit vectors plus the four ±45° horizontal
// diagonals.
var candidateDirections = []r3.Vector{
	{X: 1}, {Y: 1}, {Z: 1},
	{X: -1}, {Y: -1}, {Z: -1},
	{X: 0.707, Y: 0.707}, {X: 0.707, Y: -0.707},
	{X: -0.707, Y: 0.707}, {X: -0.707, Y: -0.707},
}

// starPlanner owns the node store for the lifetime of one planning call.
type starPlanner struct {
	req    *PlanRequest
	opts   *Options
	logger golog.Logger

	tree      []treeNode
	closedSet []int
}

func newStarPlanner(req *PlanRequest, logger golog.Logger) (*starPlanner, error) {
	if req == nil {
		return nil, errNilRequest
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = golog.Global()
	}
	return &starPlanner{req: req, opts: req.Options, logger: logger}, nil
}

// buildLookaheadTree grows the tree greedily from the current pose until the
// goal, the sensor horizon, or a no-progress condition terminates it, then
// backtracks the winning branch.
func (p *starPlanner) buildLookaheadTree(ctx context.Context) *PlanResult {
	opts := p.opts
	p.tree = p.tree[:0]
	p.closedSet = p.closedSet[:0]

	start := simulation.State{
		Position: p.req.Position,
		Velocity: p.req.Velocity,
		Time:     p.req.Time,
	}
	p.tree = append(p.tree, newTreeNode(0, start, r3.Vector{}))
	rootHeuristic := p.heuristic(0)
	p.tree[0].setCosts(rootHeuristic, rootHeuristic)

	status := StatusNoProgress
	origin := 0
	for iter := 0; ; iter++ {
		if iter >= defaultPlanIter || ctx.Err() != nil {
			break
		}
		originPos := p.tree[origin].position()

		// Terminal checks. The acceptance test skips the first two node
		// indices, so the root is always expanded at least once per call.
		reachedGoal := origin > 1 && originPos.Sub(p.req.Goal).Norm() < opts.AcceptanceRadius
		reachedHorizon := originPos.Sub(p.req.Position).Norm() >= 2*opts.MaxSensorRange
		if reachedGoal || reachedHorizon {
			p.tree = append(p.tree, newTreeNode(origin,
				simulation.State{Position: p.req.Goal}, p.req.Goal.Sub(originPos)))
			terminal := len(p.tree) - 1
			p.closeNode(origin)
			p.closeNode(terminal)
			// The closed list may carry duplicate entries from this branch;
			// consumers treat it as a set.
			p.closedSet = append(p.closedSet, origin, terminal)
			origin = terminal
			if reachedGoal {
				status = StatusReachedGoal
			} else {
				status = StatusReachedSensorHorizon
			}
			break
		}

		limits := p.speedBoundedLimits(p.tree[origin].state)

		children := 0
		for _, candidate := range candidateDirections {
			direction := rotateByOrientation(p.req.Orientation, candidate)
			terminalState := opts.Simulate(limits, p.tree[origin].state, direction, opts.TreeNodeDuration)
			if p.hasCloseNode(terminalState.Position) {
				continue
			}

			p.tree = append(p.tree, newTreeNode(origin, terminalState, direction))
			idx := len(p.tree) - 1
			h := p.heuristic(idx)
			edgeCost := opts.EdgeCost(terminalState, p.req.Goal, opts.CostWeights, p.req.Cloud, p.req.ClosestPointOnLine)
			// Subtracting the parent's heuristic keeps its estimate from
			// being double-counted in the child's f-score.
			p.tree[idx].setCosts(h, p.tree[origin].totalCost-p.tree[origin].heuristic+edgeCost+h)
			children++
		}
		p.closeNode(origin)
		if children == 0 {
			p.logger.Debugf("node %d closed as dead end, tree size %d", origin, len(p.tree))
		}

		// Frontier selection: cheapest open node, lowest index on ties.
		minimalCost := math.Inf(1)
		next := -1
		for i := range p.tree {
			if !p.tree[i].closed && p.tree[i].totalCost < minimalCost {
				minimalCost = p.tree[i].totalCost
				next = i
			}
		}
		if next >= 0 {
			origin = next
		}

		// The root could not be expanded at all.
		if len(p.tree) <= 1 {
			break
		}
		// Frontier exhausted without reaching a terminal condition.
		if next < 0 {
			break
		}
	}

	result := p.assembleResult(origin, status)
	p.logger.Debugf("lookahead tree finished: %s, %d nodes, %d path segments",
		result.Status, len(p.tree), len(result.Setpoints))
	return result
}

// heuristic estimates the remaining cost from node i to the goal.
func (p *starPlanner) heuristic(i int) float64 {
	return p.req.Goal.Sub(p.tree[i].position()).Norm() * p.opts.TreeHeuristicWeight
}

// speedBoundedLimits lowers the horizontal speed limit so the vehicle can
// always stop before the goal and within the sensed free space.
func (p *starPlanner) speedBoundedLimits(state simulation.State) simulation.Limits {
	limits := p.opts.Limits
	toGoal := state.Position.Sub(p.req.Goal)
	horizontal := r2.Point{X: toGoal.X, Y: toGoal.Y}.Norm()
	limits.MaxXYVelocityNorm = math.Min(limits.MaxXYVelocityNorm, math.Min(
		p.opts.BrakingSpeed(limits.MaxJerkNorm, limits.MaxAccelerationNorm, horizontal),
		p.opts.BrakingSpeed(limits.MaxJerkNorm, limits.MaxAccelerationNorm, p.opts.MaxSensorRange)))
	return limits
}

func (p *starPlanner) closeNode(i int) {
	p.tree[i].closed = true
	p.closedSet = append(p.closedSet, i)
}

func (p *starPlanner) hasCloseNode(pos r3.Vector) bool {
	for i := range p.tree {
		if p.tree[i].position().Sub(pos).Norm() < nodeDedupRadius {
			return true
		}
	}
	return false
}

// assembleResult walks parent links from the terminating node back to the
// root and reverses the collected branch into start-to-goal order.
func (p *starPlanner) assembleResult(origin int, status Status) *PlanResult {
	setpoints := make([]r3.Vector, 0, len(p.tree))
	states := make([]simulation.State, 0, len(p.tree))
	for end := origin; end > 0; end = p.tree[end].origin {
		setpoints = append(setpoints, p.tree[end].setpoint)
		states = append(states, p.tree[end].state)
	}
	setpoints = append(setpoints, p.tree[0].setpoint)
	states = append(states, p.tree[0].state)

	result := &PlanResult{Status: status}
	if len(setpoints) >= 2 {
		// The edge leaving the root is the immediately actionable command.
		result.StartingDirection = setpoints[len(setpoints)-2]
	}

	for i, j := 0, len(setpoints)-1; i < j; i, j = i+1, j-1 {
		setpoints[i], setpoints[j] = setpoints[j], setpoints[i]
		states[i], states[j] = states[j], states[i]
	}
	result.Setpoints = setpoints
	result.States = states
	return result
}

// rotateByOrientation rotates a body-frame vector into the world frame by
// the unit quaternion q (q·v·q*).
func rotateByOrientation(q quat.Number, v r3.Vector) r3.Vector {
	point := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	rotated := quat.Mul(quat.Mul(q, point), quat.Conj(q))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}
}
