package vmath

import (
	"fmt"
	"math"
)

// Vec2 is a 2D float vector in arena pixels
// Value type: every assignment is an independent copy
type Vec2 struct {
	X, Y float64
}

// V2 constructs a vector
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromAngle returns the point at angle (radians) and radius from the origin
func FromAngle(angle, radius float64) Vec2 {
	return Vec2{X: math.Cos(angle) * radius, Y: math.Sin(angle) * radius}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale multiplies both components by s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dot returns v·o
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Magnitude returns vector length
func (v Vec2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns unit vector, zero-safe
// Zero vector is returned unchanged so callers never see NaN
func (v Vec2) Normalize() Vec2 {
	mag := v.Magnitude()
	if mag == 0 {
		return v
	}
	return Vec2{X: v.X / mag, Y: v.Y / mag}
}

// Distance returns Euclidean distance between v and o
func (v Vec2) Distance(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Equals compares within tolerance per component
func (v Vec2) Equals(o Vec2, tolerance float64) bool {
	return math.Abs(v.X-o.X) < tolerance && math.Abs(v.Y-o.Y) < tolerance
}

// IsZero reports whether both components are exactly zero
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Clamp bounds each component to [lo, hi] of the matching axis
func (v Vec2) Clamp(lo, hi Vec2) Vec2 {
	return Vec2{X: Clamp(v.X, lo.X, hi.X), Y: Clamp(v.Y, lo.Y, hi.Y)}
}

// MoveToward steps v toward target by at most maxStep along the straight line
// Returns target exactly when within maxStep
func (v Vec2) MoveToward(target Vec2, maxStep float64) Vec2 {
	d := v.Distance(target)
	if d <= maxStep || d == 0 {
		return target
	}
	dir := target.Sub(v).Normalize()
	return v.Add(dir.Scale(maxStep))
}

func (v Vec2) String() string {
	return fmt.Sprintf("Vec2(%.2f, %.2f)", v.X, v.Y)
}
