package recording

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/clone-chaos/vmath"
)

func moveAt(ms int, x, y float64) Action {
	a := NewMove(vmath.V2(x, y), vmath.V2(0, 0))
	a.Timestamp = time.Duration(ms) * time.Millisecond
	return a
}

func interactAt(ms int, kind string) Action {
	a := NewInteract(kind, "", nil)
	a.Timestamp = time.Duration(ms) * time.Millisecond
	return a
}

func TestCompressCollapsesIdenticalMoves(t *testing.T) {
	in := []Action{moveAt(0, 50, 50), moveAt(50, 50, 50), moveAt(100, 50, 50)}

	out := Compress(in, 3)
	require.Len(t, out, 1)
	assert.Equal(t, time.Duration(0), out[0].Timestamp)
}

func TestCompressKeepsNonMoves(t *testing.T) {
	in := []Action{
		moveAt(0, 0, 0),
		interactAt(10, "a"),
		moveAt(20, 1, 0), // within 3px of last retained move
		interactAt(30, "b"),
		moveAt(40, 10, 0),
		NewStateChange("x", 1, 2),
	}

	out := Compress(in, 3)
	require.Len(t, out, 5)
	assert.Equal(t, KindMove, out[0].Kind)
	assert.Equal(t, "a", out[1].Interact.Kind)
	assert.Equal(t, "b", out[2].Interact.Kind)
	assert.Equal(t, 10.0, out[3].Move.Position.X)
	assert.Equal(t, KindStateChange, out[4].Kind)
}

func TestCompressMeasuresFromLastRetained(t *testing.T) {
	// Creeping 1px steps: each is near its predecessor but drifts from the last kept one
	var in []Action
	for i := 0; i < 10; i++ {
		in = append(in, moveAt(i*10, float64(i), 0))
	}

	out := Compress(in, 3)
	xs := make([]float64, len(out))
	for i, a := range out {
		xs[i] = a.Move.Position.X
	}
	assert.Equal(t, []float64{0, 3, 6, 9}, xs)
}

func TestCompressEmpty(t *testing.T) {
	assert.Nil(t, Compress(nil, 3))
	assert.Nil(t, Compress([]Action{}, 3))
}

func TestCompressDoesNotAlias(t *testing.T) {
	in := []Action{moveAt(0, 1, 1), interactAt(5, "a")}
	out := Compress(in, 3)
	out[0].Move.Position.X = 500
	assert.Equal(t, 1.0, in[0].Move.Position.X)
}

func TestCompressProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for trial := 0; trial < 200; trial++ {
		n := rng.IntN(40)
		in := make([]Action, 0, n)
		pos := vmath.V2(400, 300)
		for i := 0; i < n; i++ {
			if rng.Float64() < 0.2 {
				in = append(in, interactAt(i*16, "k"))
				continue
			}
			pos = pos.Add(vmath.V2(rng.Float64()*6-3, rng.Float64()*6-3))
			in = append(in, moveAt(i*16, pos.X, pos.Y))
		}

		out := Compress(in, 3)

		require.LessOrEqual(t, len(out), len(in))

		// Non-moves survive in original relative order
		var inNon, outNon []time.Duration
		for _, a := range in {
			if a.Kind != KindMove {
				inNon = append(inNon, a.Timestamp)
			}
		}
		for _, a := range out {
			if a.Kind != KindMove {
				outNon = append(outNon, a.Timestamp)
			}
		}
		require.Equal(t, inNon, outNon)

		// Timestamps stay ordered
		for i := 1; i < len(out); i++ {
			require.GreaterOrEqual(t, out[i].Timestamp, out[i-1].Timestamp)
		}

		// The first action is always retained
		if n > 0 {
			require.Equal(t, in[0].Timestamp, out[0].Timestamp)
		}
	}
}
