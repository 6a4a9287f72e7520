package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2Arithmetic(t *testing.T) {
	a := V2(3, 4)
	b := V2(1, -2)

	assert.Equal(t, V2(4, 2), a.Add(b))
	assert.Equal(t, V2(2, 6), a.Sub(b))
	assert.Equal(t, V2(6, 8), a.Scale(2))
	assert.Equal(t, 5.0, a.Magnitude())
	assert.InDelta(t, -5.0, a.Dot(b), 1e-9)

	// Receivers are values, operands stay untouched
	assert.Equal(t, V2(3, 4), a)
	assert.Equal(t, V2(1, -2), b)
}

func TestVec2NormalizeZeroSafe(t *testing.T) {
	n := V2(0, 0).Normalize()
	assert.False(t, math.IsNaN(n.X) || math.IsNaN(n.Y))
	assert.True(t, n.IsZero())

	u := V2(10, 0).Normalize()
	assert.InDelta(t, 1.0, u.Magnitude(), 1e-12)
	assert.Equal(t, V2(1, 0), u)
}

func TestVec2Distance(t *testing.T) {
	assert.Equal(t, 5.0, V2(0, 0).Distance(V2(3, 4)))
	assert.Equal(t, 0.0, V2(7, 7).Distance(V2(7, 7)))
}

func TestVec2MoveToward(t *testing.T) {
	from := V2(0, 0)
	to := V2(10, 0)

	step := from.MoveToward(to, 3)
	assert.InDelta(t, 3.0, step.X, 1e-9)
	assert.InDelta(t, 0.0, step.Y, 1e-9)

	// Within one step snaps to target
	assert.Equal(t, to, V2(9, 0).MoveToward(to, 3))
}

func TestFromAngleAndWrap(t *testing.T) {
	p := FromAngle(math.Pi/2, 10)
	assert.InDelta(t, 0.0, p.X, 1e-9)
	assert.InDelta(t, 10.0, p.Y, 1e-9)

	assert.InDelta(t, 0.5, WrapAngle(TwoPi+0.5), 1e-12)
	assert.InDelta(t, TwoPi-0.5, WrapAngle(-0.5), 1e-12)
}

func TestSegmentDistance(t *testing.T) {
	a, b := V2(0, 0), V2(10, 0)

	d, within := SegmentDistance(V2(5, 3), a, b)
	assert.True(t, within)
	assert.InDelta(t, 3.0, d, 1e-9)

	_, within = SegmentDistance(V2(-1, 0), a, b)
	assert.False(t, within)

	_, within = SegmentDistance(V2(11, 0), a, b)
	assert.False(t, within)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-2))
	assert.Equal(t, 1.0, Clamp01(3))
	assert.Equal(t, 0.25, Clamp01(0.25))
	assert.Equal(t, V2(1, 9), V2(-5, 20).Clamp(V2(1, 1), V2(9, 9)))
}
