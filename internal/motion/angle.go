// Package motion holds the pure kinematics shared by the chase actors:
// angle/direction conversions, shortest rotation deltas and interpolation.
// All angles are in degrees, counter-clockwise from +X.
package motion

import "math"

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// AngleToward returns the heading of the offset from -> to, in [-180, 180].
func AngleToward(from, to Vec2) float64 {
	return VectorAngle(to.Sub(from))
}

// VectorAngle returns the heading of v, in [-180, 180].
func VectorAngle(v Vec2) float64 {
	return math.Atan2(v.Y, v.X) * radToDeg
}

// SignedAngleDelta returns the shortest signed rotation from current to
// target, in (-180, 180].
func SignedAngleDelta(current, target float64) float64 {
	d := math.Mod(target-current, 360)
	if d < 0 {
		d += 360
	}
	if d > 180 {
		d -= 360
	}
	return d
}

// Lerp linearly interpolates between a and b. t is not clamped.
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Clamp01 restricts t to [0, 1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// FromAngle rotates base by deg. With base (1,0) this is the unit heading
// vector for deg.
func FromAngle(deg float64, base Vec2) Vec2 {
	return base.Rotate(deg)
}

// Right returns the local +X axis of a body rotated by deg.
func Right(deg float64) Vec2 {
	s, c := math.Sincos(deg * degToRad)
	return Vec2{X: c, Y: s}
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
