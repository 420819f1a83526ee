package onboarding

import (
	"encoding/json"
	"fmt"

	"growthai/portal/internal/catalog"
	"growthai/portal/pkg/workflows"
)

// =====================================================
// Enums and Constants
// =====================================================

// Mode is the view a visitor is currently in
type Mode string

const (
	ModeLanding    Mode = workflows.ModeLanding
	ModeOnboarding Mode = workflows.ModeOnboarding
	ModeAnalysis   Mode = workflows.ModeAnalysis
	ModeWorkspace  Mode = workflows.ModeWorkspace
)

// DefaultMonthlyBudget is the budget a fresh record starts with
const DefaultMonthlyBudget = 1000

// Tristate is an answer that starts out unknown
type Tristate int

const (
	Unknown Tristate = iota
	Yes
	No
)

// TristateOf converts a bool answer
func TristateOf(b bool) Tristate {
	if b {
		return Yes
	}
	return No
}

func (t Tristate) String() string {
	switch t {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes Unknown as null and the answers as booleans
func (t Tristate) MarshalJSON() ([]byte, error) {
	switch t {
	case Yes:
		return []byte("true"), nil
	case No:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, true or false
func (t *Tristate) UnmarshalJSON(data []byte) error {
	var b *bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("tristate must be a boolean or null: %w", err)
	}
	if b == nil {
		*t = Unknown
	} else {
		*t = TristateOf(*b)
	}
	return nil
}

// =====================================================
// Record
// =====================================================

// Integration is the toggle state of one integration. Credentials are
// placeholder inputs only; they are excluded from every serialization.
type Integration struct {
	Enabled     bool              `json:"enabled"`
	Credentials map[string]string `json:"-"`
}

// Record is everything the wizard collects
type Record struct {
	// Business profile
	BusinessName        string `json:"business_name"`
	BusinessCategory    string `json:"business_category"`
	BusinessSize        string `json:"business_size"`
	BusinessLocation    string `json:"business_location"`
	BusinessDescription string `json:"business_description"`

	// Goals and market
	SelectedGoals    []string `json:"selected_goals"`
	CompetitionLevel string   `json:"competition_level"`
	MonthlyBudget    int      `json:"monthly_budget"`

	// Web presence
	HasWebsite      Tristate `json:"has_website"`
	WebsiteURL      string   `json:"website_url"`
	CMSType         string   `json:"cms_type"`
	HostingType     string   `json:"hosting_type"`
	HostingProvider string   `json:"hosting_provider"`
	HostingUsername string   `json:"-"`
	HostingPassword string   `json:"-"`

	Integrations  map[string]Integration `json:"integrations"`
	TermsAccepted bool                   `json:"terms_accepted"`
}

// NewRecord returns a record with every field at its default
func NewRecord() Record {
	integrations := make(map[string]Integration, len(catalog.Integrations))
	for _, i := range catalog.Integrations {
		integrations[i.ID] = Integration{Credentials: map[string]string{}}
	}
	return Record{
		SelectedGoals: []string{},
		MonthlyBudget: DefaultMonthlyBudget,
		Integrations:  integrations,
	}
}

// Clone returns a deep copy
func (r Record) Clone() Record {
	out := r
	out.SelectedGoals = append([]string{}, r.SelectedGoals...)
	out.Integrations = make(map[string]Integration, len(r.Integrations))
	for id, integ := range r.Integrations {
		creds := make(map[string]string, len(integ.Credentials))
		for k, v := range integ.Credentials {
			creds[k] = v
		}
		out.Integrations[id] = Integration{Enabled: integ.Enabled, Credentials: creds}
	}
	return out
}

// HasGoal reports whether the goal is selected
func (r Record) HasGoal(id string) bool {
	for _, g := range r.SelectedGoals {
		if g == id {
			return true
		}
	}
	return false
}

// EnabledIntegrations returns the enabled integration ids in catalog order
func (r Record) EnabledIntegrations() []string {
	var ids []string
	for _, i := range catalog.Integrations {
		if r.Integrations[i.ID].Enabled {
			ids = append(ids, i.ID)
		}
	}
	return ids
}

// =====================================================
// Wizard state
// =====================================================

// State is the whole wizard state container for one visitor
type State struct {
	Mode             Mode     `json:"mode"`
	Step             int      `json:"step"`
	Record           Record   `json:"record"`
	Errors           []string `json:"errors"`
	AnalysisProgress int      `json:"analysis_progress"`
}

// NewState returns the state of a visitor who just landed
func NewState() State {
	return State{
		Mode:   ModeLanding,
		Step:   1,
		Record: NewRecord(),
		Errors: []string{},
	}
}

// Clone returns a deep copy
func (s State) Clone() State {
	out := s
	out.Record = s.Record.Clone()
	out.Errors = append([]string{}, s.Errors...)
	return out
}

// VisibleSteps is the step list that applies to the current answers
func (s State) VisibleSteps() []Step {
	return VisibleSteps(s.Record)
}

// TotalSteps is the number of visible steps
func (s State) TotalSteps() int {
	return len(s.VisibleSteps())
}

// ActiveStep is the step currently shown
func (s State) ActiveStep() Step {
	steps := s.VisibleSteps()
	idx := s.Step - 1
	if idx > len(steps)-1 {
		idx = len(steps) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return steps[idx]
}

// IsLastStep reports whether Next would leave the form
func (s State) IsLastStep() bool {
	return s.Step >= s.TotalSteps()
}

// ProgressPercent is the wizard progress bar value
func (s State) ProgressPercent() float64 {
	total := s.TotalSteps()
	if total == 0 {
		return 0
	}
	return float64(s.Step) / float64(total) * 100
}

// StepProgress mirrors the per-step completion list exposed to API clients
type StepProgress struct {
	ID       StepID `json:"id"`
	Label    string `json:"label"`
	Order    int    `json:"order"`
	Active   bool   `json:"active"`
	Complete bool   `json:"complete"`
}

// Progress summarises where the visitor is in the visible step list
type Progress struct {
	CurrentStep     int            `json:"current_step"`
	TotalSteps      int            `json:"total_steps"`
	PercentComplete float64        `json:"percent_complete"`
	Steps           []StepProgress `json:"steps"`
}

// Progress builds the visible step list with each step's completion. A step
// is complete when it validates cleanly against the current state.
func (s State) Progress() Progress {
	steps := s.VisibleSteps()
	out := Progress{
		CurrentStep:     s.Step,
		TotalSteps:      len(steps),
		PercentComplete: s.ProgressPercent(),
		Steps:           make([]StepProgress, len(steps)),
	}
	for i, st := range steps {
		out.Steps[i] = StepProgress{
			ID:       st.ID,
			Label:    st.Label,
			Order:    i + 1,
			Active:   i+1 == s.Step,
			Complete: len(st.Validate(s)) == 0,
		}
	}
	return out
}
