package onboarding

// Event is an input to the wizard reducer
type Event interface {
	Type() string
}

// Open enters the wizard from the landing page
type Open struct{}

// Exit abandons the wizard and discards the record
type Exit struct{}

// SetField updates a scalar record field
type SetField struct {
	Field Field
	Value string
}

// ToggleGoal adds the goal if absent and removes it otherwise
type ToggleGoal struct {
	GoalID string
}

// SetGoals replaces the whole goal selection
type SetGoals struct {
	GoalIDs []string
}

// SetHasWebsite answers the website question
type SetHasWebsite struct {
	Value bool
}

// SetIntegration toggles one integration
type SetIntegration struct {
	ID      string
	Enabled bool
}

// SetIntegrationCredential fills a credential placeholder of an integration
type SetIntegrationCredential struct {
	ID    string
	Key   string
	Value string
}

// SetTerms checks or unchecks the review confirmation
type SetTerms struct {
	Accepted bool
}

// Next validates the active step and advances
type Next struct{}

// Previous moves back one step
type Previous struct{}

// GoTo jumps to a 1-based step index, clamped to the visible steps
type GoTo struct {
	Index int
}

// ProgressTick advances the simulated analysis
type ProgressTick struct {
	Increment int
}

// AnalysisDone moves a finished analysis to the workspace
type AnalysisDone struct{}

// Restart leaves the workspace and starts over on the landing page
type Restart struct{}

func (Open) Type() string                     { return "open" }
func (Exit) Type() string                     { return "exit" }
func (SetField) Type() string                 { return "set_field" }
func (ToggleGoal) Type() string               { return "toggle_goal" }
func (SetGoals) Type() string                 { return "set_goals" }
func (SetHasWebsite) Type() string            { return "set_has_website" }
func (SetIntegration) Type() string           { return "set_integration" }
func (SetIntegrationCredential) Type() string { return "set_integration_credential" }
func (SetTerms) Type() string                 { return "set_terms" }
func (Next) Type() string                     { return "next" }
func (Previous) Type() string                 { return "previous" }
func (GoTo) Type() string                     { return "go_to" }
func (ProgressTick) Type() string             { return "progress_tick" }
func (AnalysisDone) Type() string             { return "analysis_done" }
func (Restart) Type() string                  { return "restart" }
