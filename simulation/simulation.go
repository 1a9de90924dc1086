// Package simulation forward-integrates vehicle dynamics under jerk,
// acceleration and velocity limits. The planner uses it to predict where a
// fixed-duration motion edge ends up before committing a tree node to it.
package simulation

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

const (
	// Internal integration step in seconds.
	simulationStep = 0.05

	// Proportional gain pulling the simulated velocity toward its setpoint.
	velocityTrackingGain = 2.0
)

// State is a snapshot of the vehicle along a simulated trajectory.
type State struct {
	Position     r3.Vector
	Velocity     r3.Vector
	Acceleration r3.Vector
	Time         float64
}

// Limits bound the simulated dynamics.
type Limits struct {
	MaxJerkNorm         float64 `json:"max_jerk_norm"`
	MaxAccelerationNorm float64 `json:"max_acceleration_norm"`
	MaxXYVelocityNorm   float64 `json:"max_xy_velocity_norm"`
	MinXYVelocityNorm   float64 `json:"min_xy_velocity_norm"`
}

// Simulate integrates the motion model from start for the given duration
// while tracking a velocity setpoint along direction. It is a pure function
// of its inputs; identical calls produce identical terminal states.
func Simulate(limits Limits, start State, direction r3.Vector, duration float64) State {
	state := start
	if duration <= 0 {
		return state
	}

	desired := velocitySetpoint(limits, direction)
	steps := int(math.Round(duration / simulationStep))
	if steps < 1 {
		steps = 1
	}

	for i := 0; i < steps; i++ {
		accelCmd := clampNorm(desired.Sub(state.Velocity).Mul(velocityTrackingGain), limits.MaxAccelerationNorm)

		// Slew-limit the acceleration change to respect the jerk bound.
		jerk := clampNorm(accelCmd.Sub(state.Acceleration).Mul(1/simulationStep), limits.MaxJerkNorm)
		state.Acceleration = state.Acceleration.Add(jerk.Mul(simulationStep))

		state.Velocity = clampHorizontalNorm(state.Velocity.Add(state.Acceleration.Mul(simulationStep)), limits.MaxXYVelocityNorm)
		state.Position = state.Position.Add(state.Velocity.Mul(simulationStep))
		state.Time += simulationStep
	}
	return state
}

// velocitySetpoint scales the commanded direction to the allowed speed. The
// minimum horizontal norm acts as a stall floor only when a nonzero speed is
// commanded at all.
func velocitySetpoint(limits Limits, direction r3.Vector) r3.Vector {
	speed := limits.MaxXYVelocityNorm
	if speed <= 0 {
		return r3.Vector{}
	}
	if speed < limits.MinXYVelocityNorm {
		speed = limits.MinXYVelocityNorm
	}
	return direction.Normalize().Mul(speed)
}

func clampNorm(v r3.Vector, maxNorm float64) r3.Vector {
	if maxNorm <= 0 {
		return r3.Vector{}
	}
	if n := v.Norm(); n > maxNorm {
		return v.Mul(maxNorm / n)
	}
	return v
}

func clampHorizontalNorm(v r3.Vector, maxNorm float64) r3.Vector {
	horizontal := r2.Point{X: v.X, Y: v.Y}
	if maxNorm <= 0 {
		return r3.Vector{Z: v.Z}
	}
	if n := horizontal.Norm(); n > maxNorm {
		scale := maxNorm / n
		return r3.Vector{X: v.X * scale, Y: v.Y * scale, Z: v.Z}
	}
	return v
}
