package planner

import (
	"github.com/golang/geo/r3"

	"github.com/brunopinto900/PX4-Avoidance/simulation"
)

// treeNode is one explored (or synthetic terminal) state in the lookahead
// tree. Nodes live in an append-only store; origin is the index of the
// parent node in that store, a traversal relation only. The root is its own
// origin at index 0.
type treeNode struct {
	state  simulation.State
	origin int

	// setpoint is the world-frame direction that produced this node from its
	// parent; it is what ultimately gets handed to the controller.
	setpoint r3.Vector

	// heuristic is the weighted straight-line distance to the goal.
	// totalCost is cost-so-far plus heuristic (an f-score).
	heuristic float64
	totalCost float64

	closed bool
}

func newTreeNode(origin int, state simulation.State, setpoint r3.Vector) treeNode {
	return treeNode{origin: origin, state: state, setpoint: setpoint}
}

func (n *treeNode) position() r3.Vector {
	return n.state.Position
}

func (n *treeNode) setCosts(heuristic, totalCost float64) {
	n.heuristic = heuristic
	n.totalCost = totalCost
}
