package simulation

import "math"

// MaxSpeedFromBrakingDistance returns the highest speed from which the
// vehicle can still come to rest within distance under the given jerk and
// acceleration norms. It is the positive root of v² + (4a²/j)·v − 2ad = 0.
func MaxSpeedFromBrakingDistance(jerk, accel, distance float64) float64 {
	if jerk <= 0 || accel <= 0 || distance <= 0 {
		return 0
	}
	b := 4 * accel * accel / jerk
	c := -2 * accel * distance
	return 0.5 * (-b + math.Sqrt(b*b-4*c))
}
