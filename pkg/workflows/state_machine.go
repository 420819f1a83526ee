package workflows

// View modes a visitor moves through
const (
	ModeLanding    = "landing"
	ModeOnboarding = "onboarding"
	ModeAnalysis   = "analysis"
	ModeWorkspace  = "workspace"
)

// StateMachine enforces view mode transitions
type StateMachine struct {
	allowedTransitions map[string][]string
}

// NewStateMachine creates a new state machine with allowed transitions
func NewStateMachine() *StateMachine {
	return &StateMachine{
		allowedTransitions: map[string][]string{
			ModeLanding:    {ModeOnboarding},
			ModeOnboarding: {ModeAnalysis, ModeLanding},
			ModeAnalysis:   {ModeWorkspace, ModeLanding},
			ModeWorkspace:  {ModeLanding}, // start over
		},
	}
}

// CanTransition checks if a mode transition is allowed
func (sm *StateMachine) CanTransition(from, to string) bool {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return false
	}
	for _, allowedTo := range allowed {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// GetAllowedTransitions returns the allowed next modes for a given mode
func (sm *StateMachine) GetAllowedTransitions(from string) []string {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return []string{}
	}
	out := make([]string, len(allowed))
	copy(out, allowed)
	return out
}
