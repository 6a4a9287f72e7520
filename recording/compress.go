package recording

import "github.com/lixenwraith/clone-chaos/vmath"

// Compress drops move actions whose position lies closer than threshold pixels
// to the last retained move. Non-move actions are always kept and order is preserved.
// The result shares no memory with src.
func Compress(src []Action, threshold float64) []Action {
	if len(src) == 0 {
		return nil
	}

	out := make([]Action, 0, len(src))
	var lastPos vmath.Vec2
	hasLast := false

	for i := range src {
		a := src[i]
		if a.Kind == KindMove {
			if hasLast && a.Move.Position.Distance(lastPos) < threshold {
				continue
			}
			lastPos = a.Move.Position
			hasLast = true
		}
		out = append(out, a.Clone())
	}
	return out
}
