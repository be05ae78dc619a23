package scaffold

// State is a step of the per-target state machine.
type State int

const (
	StateIdle State = iota
	StateCloning
	StatePruning
	StateSubstituting
	StateRenaming
	StateInstalling
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:         "idle",
	StateCloning:      "cloning",
	StatePruning:      "pruning",
	StateSubstituting: "substituting",
	StateRenaming:     "renaming",
	StateInstalling:   "installing",
	StateDone:         "done",
	StateFailed:       "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
