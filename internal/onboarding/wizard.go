package onboarding

import (
	"fmt"
	"strconv"
	"strings"

	"growthai/portal/internal/catalog"
	"growthai/portal/internal/simulation"
	"growthai/portal/pkg/workflows"
)

var modes = workflows.NewStateMachine()

// Reduce applies one event to a state and returns the resulting state. The
// input is never modified. When the event is rejected the input state is
// returned together with the error.
//
// Every record mutation clears the displayed errors and re-clamps the step
// index, so a step hidden by the new answers is never left active.
func Reduce(s State, e Event) (State, error) {
	if e == nil {
		return s, ErrUnknownEvent
	}

	switch ev := e.(type) {
	case Open:
		if s.Mode == ModeOnboarding {
			return s, nil
		}
		if err := transition(s.Mode, ModeOnboarding); err != nil {
			return s, err
		}
		next := NewState()
		next.Mode = ModeOnboarding
		return next, nil

	case Exit:
		if s.Mode == ModeLanding || s.Mode == ModeWorkspace {
			return s, fmt.Errorf("exit from %s: %w", s.Mode, ErrInvalidTransition)
		}
		if err := transition(s.Mode, ModeLanding); err != nil {
			return s, err
		}
		return NewState(), nil

	case Restart:
		if s.Mode != ModeWorkspace {
			return s, fmt.Errorf("restart from %s: %w", s.Mode, ErrInvalidTransition)
		}
		if err := transition(s.Mode, ModeLanding); err != nil {
			return s, err
		}
		return NewState(), nil

	case SetField, ToggleGoal, SetGoals, SetHasWebsite, SetIntegration, SetIntegrationCredential, SetTerms:
		if err := requireOnboarding(s, e); err != nil {
			return s, err
		}
		next := s.Clone()
		if err := mutate(&next.Record, ev); err != nil {
			return s, err
		}
		next.Errors = []string{}
		next.Step = ClampStep(next.Step, next.TotalSteps())
		return next, nil

	case Next:
		if err := requireOnboarding(s, e); err != nil {
			return s, err
		}
		return advance(s)

	case Previous:
		if err := requireOnboarding(s, e); err != nil {
			return s, err
		}
		next := s.Clone()
		next.Errors = []string{}
		next.Step = ClampStep(next.Step-1, next.TotalSteps())
		return next, nil

	case GoTo:
		if err := requireOnboarding(s, e); err != nil {
			return s, err
		}
		next := s.Clone()
		next.Errors = []string{}
		next.Step = ClampStep(ev.Index, next.TotalSteps())
		return next, nil

	case ProgressTick:
		if s.Mode != ModeAnalysis {
			return s, fmt.Errorf("%s in %s: %w", e.Type(), s.Mode, ErrInvalidTransition)
		}
		next := s.Clone()
		next.AnalysisProgress = simulation.Step(next.AnalysisProgress, ev.Increment)
		return next, nil

	case AnalysisDone:
		if s.Mode != ModeAnalysis {
			return s, fmt.Errorf("%s in %s: %w", e.Type(), s.Mode, ErrInvalidTransition)
		}
		if s.AnalysisProgress < simulation.MaxProgress {
			return s, ErrAnalysisIncomplete
		}
		if err := transition(s.Mode, ModeWorkspace); err != nil {
			return s, err
		}
		next := s.Clone()
		next.Mode = ModeWorkspace
		return next, nil
	}

	return s, fmt.Errorf("%s: %w", e.Type(), ErrUnknownEvent)
}

// ReduceAll applies events in order and stops at the first rejection. The
// returned state is the input state if any event fails.
func ReduceAll(s State, events ...Event) (State, error) {
	next := s
	for _, e := range events {
		var err error
		next, err = Reduce(next, e)
		if err != nil {
			return s, err
		}
	}
	return next, nil
}

func advance(s State) (State, error) {
	next := s.Clone()
	next.Step = ClampStep(next.Step, next.TotalSteps())

	if errs := next.ActiveStep().Validate(next); len(errs) > 0 {
		next.Errors = errs
		return next, nil
	}
	next.Errors = []string{}

	if next.Step < next.TotalSteps() {
		next.Step++
		return next, nil
	}

	if err := transition(next.Mode, ModeAnalysis); err != nil {
		return s, err
	}
	next.Mode = ModeAnalysis
	next.AnalysisProgress = 0
	return next, nil
}

func mutate(r *Record, e Event) error {
	switch ev := e.(type) {
	case SetField:
		return setField(r, ev.Field, ev.Value)

	case ToggleGoal:
		if _, ok := catalog.GoalByID(ev.GoalID); !ok {
			return fmt.Errorf("%q: %w", ev.GoalID, ErrUnknownGoal)
		}
		if r.HasGoal(ev.GoalID) {
			kept := make([]string, 0, len(r.SelectedGoals))
			for _, g := range r.SelectedGoals {
				if g != ev.GoalID {
					kept = append(kept, g)
				}
			}
			r.SelectedGoals = kept
		} else {
			r.SelectedGoals = append(r.SelectedGoals, ev.GoalID)
		}

	case SetGoals:
		goals := make([]string, 0, len(ev.GoalIDs))
		seen := make(map[string]bool, len(ev.GoalIDs))
		for _, id := range ev.GoalIDs {
			if _, ok := catalog.GoalByID(id); !ok {
				return fmt.Errorf("%q: %w", id, ErrUnknownGoal)
			}
			if !seen[id] {
				seen[id] = true
				goals = append(goals, id)
			}
		}
		r.SelectedGoals = goals

	case SetHasWebsite:
		r.HasWebsite = TristateOf(ev.Value)

	case SetIntegration:
		if _, ok := catalog.IntegrationByID(ev.ID); !ok {
			return fmt.Errorf("%q: %w", ev.ID, ErrUnknownIntegration)
		}
		integ := r.Integrations[ev.ID]
		integ.Enabled = ev.Enabled
		if integ.Credentials == nil {
			integ.Credentials = map[string]string{}
		}
		r.Integrations[ev.ID] = integ

	case SetIntegrationCredential:
		def, ok := catalog.IntegrationByID(ev.ID)
		if !ok {
			return fmt.Errorf("%q: %w", ev.ID, ErrUnknownIntegration)
		}
		if !def.HasCredential(ev.Key) {
			return fmt.Errorf("%s.%s: %w", ev.ID, ev.Key, ErrUnknownCredential)
		}
		integ := r.Integrations[ev.ID]
		if integ.Credentials == nil {
			integ.Credentials = map[string]string{}
		}
		integ.Credentials[ev.Key] = ev.Value
		r.Integrations[ev.ID] = integ

	case SetTerms:
		r.TermsAccepted = ev.Accepted
	}
	return nil
}

func setField(r *Record, f Field, value string) error {
	switch f {
	case FieldBusinessName:
		r.BusinessName = value
	case FieldBusinessCategory:
		r.BusinessCategory = value
	case FieldBusinessSize:
		r.BusinessSize = value
	case FieldBusinessLocation:
		r.BusinessLocation = value
	case FieldBusinessDescription:
		r.BusinessDescription = value
	case FieldCompetitionLevel:
		r.CompetitionLevel = value
	case FieldMonthlyBudget:
		budget, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: %w", f, ErrInvalidValue)
		}
		r.MonthlyBudget = budget
	case FieldWebsiteURL:
		r.WebsiteURL = value
	case FieldCMSType:
		r.CMSType = value
	case FieldHostingType:
		r.HostingType = value
	case FieldHostingProvider:
		r.HostingProvider = value
	case FieldHostingUsername:
		r.HostingUsername = value
	case FieldHostingPassword:
		r.HostingPassword = value
	default:
		return fmt.Errorf("%q: %w", f, ErrUnknownField)
	}
	return nil
}

func requireOnboarding(s State, e Event) error {
	if s.Mode != ModeOnboarding {
		return fmt.Errorf("%s in %s: %w", e.Type(), s.Mode, ErrInvalidTransition)
	}
	return nil
}

func transition(from, to Mode) error {
	if !modes.CanTransition(string(from), string(to)) {
		return fmt.Errorf("%s -> %s (allowed: %v): %w", from, to, modes.GetAllowedTransitions(string(from)), ErrInvalidTransition)
	}
	return nil
}
