package simulation

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func testLimits() Limits {
	return Limits{
		MaxJerkNorm:         20,
		MaxAccelerationNorm: 5,
		MaxXYVelocityNorm:   3,
	}
}

func TestMaxSpeedFromBrakingDistance(t *testing.T) {
	test.That(t, MaxSpeedFromBrakingDistance(20, 5, 0), test.ShouldEqual, 0)
	test.That(t, MaxSpeedFromBrakingDistance(20, 5, -1), test.ShouldEqual, 0)
	test.That(t, MaxSpeedFromBrakingDistance(0, 5, 10), test.ShouldEqual, 0)

	// Positive root of v² + (4a²/j)v − 2ad = 0 for j=20, a=5, d=10.
	test.That(t, MaxSpeedFromBrakingDistance(20, 5, 10), test.ShouldAlmostEqual, 7.80776, 1e-4)

	// Allowed speed grows with the available distance.
	prev := 0.0
	for d := 0.5; d <= 16; d *= 2 {
		speed := MaxSpeedFromBrakingDistance(20, 5, d)
		test.That(t, speed, test.ShouldBeGreaterThan, prev)
		prev = speed
	}
}

func TestSimulateMovesAlongCommandedDirection(t *testing.T) {
	end := Simulate(testLimits(), State{}, r3.Vector{X: 1}, 1.0)

	test.That(t, end.Position.X, test.ShouldBeGreaterThan, 0.5)
	test.That(t, math.Abs(end.Position.Y), test.ShouldBeLessThan, 1e-9)
	test.That(t, math.Abs(end.Position.Z), test.ShouldBeLessThan, 1e-9)
	test.That(t, end.Time, test.ShouldAlmostEqual, 1.0, 1e-9)
	test.That(t, end.Velocity.Norm(), test.ShouldBeLessThanOrEqualTo, 3+1e-9)
}

func TestSimulateRespectsHorizontalVelocityLimit(t *testing.T) {
	start := State{Velocity: r3.Vector{X: 5, Y: 2}}
	end := Simulate(testLimits(), start, r3.Vector{X: 1}, 2.0)

	horizontal := r2.Point{X: end.Velocity.X, Y: end.Velocity.Y}.Norm()
	test.That(t, horizontal, test.ShouldBeLessThanOrEqualTo, 3+1e-9)
}

func TestSimulateZeroSpeedLimitHoldsPosition(t *testing.T) {
	limits := testLimits()
	limits.MaxXYVelocityNorm = 0
	end := Simulate(limits, State{Position: r3.Vector{X: 2, Y: -1}}, r3.Vector{X: 1}, 1.0)

	test.That(t, end.Position, test.ShouldResemble, r3.Vector{X: 2, Y: -1})
}

func TestSimulateIsDeterministic(t *testing.T) {
	start := State{Position: r3.Vector{X: 1}, Velocity: r3.Vector{Y: 0.5}}
	first := Simulate(testLimits(), start, r3.Vector{X: 0.707, Y: 0.707}, 1.5)
	second := Simulate(testLimits(), start, r3.Vector{X: 0.707, Y: 0.707}, 1.5)

	test.That(t, second, test.ShouldResemble, first)
}

func TestSimulateZeroDurationReturnsStart(t *testing.T) {
	start := State{Position: r3.Vector{X: 1}, Velocity: r3.Vector{X: 1}}
	test.That(t, Simulate(testLimits(), start, r3.Vector{X: 1}, 0), test.ShouldResemble, start)
}
