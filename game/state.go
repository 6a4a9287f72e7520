package game

// State is the top-level game phase
type State uint8

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
	StateVictory
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game over"
	case StateVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// validTransitions lists the phases reachable from each phase
// Restart bypasses this table and always lands in StatePlaying
var validTransitions = map[State][]State{
	StateMenu:    {StatePlaying},
	StatePlaying: {StatePaused, StateGameOver, StateVictory},
	StatePaused:  {StatePlaying},
}

// CanTransition checks if a phase transition is valid
func CanTransition(from, to State) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
