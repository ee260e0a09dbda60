package sim

// State is the top-level game state. Only Playing runs the full rules;
// LevelComplete runs the celebration subset; the rest run nothing.
type State int

const (
	StateMenu State = iota
	StateGenerating
	StatePlaying
	StateLevelComplete
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "MENU"
	case StateGenerating:
		return "GENERATING"
	case StatePlaying:
		return "PLAYING"
	case StateLevelComplete:
		return "LEVEL_COMPLETE"
	case StateGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}
