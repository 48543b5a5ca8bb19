package actions

// State is a step of the upload workflow
type State int

// Upload states. Done, DryRunExit and Failed are terminal.
const (
	StateParsingArgs State = iota
	StateValidatingTool
	StateFiltering
	StateDryRunExit
	StateConfirming
	StateInitializing
	StateStaging
	StateCommitting
	StatePushing
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateParsingArgs:    "ParsingArgs",
	StateValidatingTool: "ValidatingTool",
	StateFiltering:      "Filtering",
	StateDryRunExit:     "DryRunExit",
	StateConfirming:     "Confirming",
	StateInitializing:   "Initializing",
	StateStaging:        "Staging",
	StateCommitting:     "Committing",
	StatePushing:        "Pushing",
	StateDone:           "Done",
	StateFailed:         "Failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Terminal reports whether no transition leaves s
func (s State) Terminal() bool {
	return s == StateDone || s == StateDryRunExit || s == StateFailed
}

// next lists the legal successors of each state. Every non-terminal state
// may also move to StateFailed.
var next = map[State][]State{
	StateParsingArgs:    {StateValidatingTool},
	StateValidatingTool: {StateFiltering},
	StateFiltering:      {StateDryRunExit, StateConfirming, StateInitializing},
	StateConfirming:     {StateInitializing},
	StateInitializing:   {StateStaging},
	StateStaging:        {StateCommitting},
	StateCommitting:     {StatePushing},
	StatePushing:        {StateDone},
}

// CanTransition reports whether the workflow may move from s to to
func (s State) CanTransition(to State) bool {
	if s.Terminal() {
		return false
	}
	if to == StateFailed {
		return true
	}
	for _, candidate := range next[s] {
		if candidate == to {
			return true
		}
	}
	return false
}
