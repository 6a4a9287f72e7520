package vmath

import "math"

// TwoPi is a full rotation in radians
const TwoPi = 2 * math.Pi

// Clamp bounds x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 bounds x to [0, 1]
func Clamp01(x float64) float64 {
	return Clamp(x, 0, 1)
}

// WrapAngle maps an angle into [0, 2π)
func WrapAngle(a float64) float64 {
	a = math.Mod(a, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	return a
}

// SegmentDistance returns the distance from p to the segment a-b
// along with whether the projection of p falls inside the segment
func SegmentDistance(p, a, b Vec2) (dist float64, within bool) {
	length := a.Distance(b)
	if length == 0 {
		return p.Distance(a), true
	}
	dir := b.Sub(a).Normalize()
	proj := p.Sub(a).Dot(dir)
	if proj < 0 || proj > length {
		return 0, false
	}
	closest := a.Add(dir.Scale(proj))
	return p.Distance(closest), true
}
