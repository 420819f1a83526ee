package onboarding

import (
	"fmt"
)

// EventRequest is the wire form of a wizard event
type EventRequest struct {
	Type        string   `json:"type" binding:"required"`
	Field       string   `json:"field,omitempty"`
	Value       string   `json:"value,omitempty"`
	Goal        string   `json:"goal,omitempty"`
	Goals       []string `json:"goals,omitempty"`
	Integration string   `json:"integration,omitempty"`
	Key         string   `json:"key,omitempty"`
	Flag        *bool    `json:"flag,omitempty"`
	Index       int      `json:"index,omitempty"`
}

// EventBatchRequest applies several events atomically
type EventBatchRequest struct {
	Events []EventRequest `json:"events" binding:"required,min=1,dive"`
}

// StateResponse is the state as returned by the API
type StateResponse struct {
	State
	Progress   Progress `json:"progress"`
	ActiveStep Step     `json:"active_step"`
}

// NewStateResponse builds the response for a state
func NewStateResponse(s State) StateResponse {
	return StateResponse{
		State:      s,
		Progress:   s.Progress(),
		ActiveStep: s.ActiveStep(),
	}
}

// ToEvent converts the request into a wizard event. Progress and completion
// of the analysis are driven by the server and cannot be sent by clients.
func (r EventRequest) ToEvent() (Event, error) {
	switch r.Type {
	case "open":
		return Open{}, nil
	case "exit":
		return Exit{}, nil
	case "restart":
		return Restart{}, nil
	case "next":
		return Next{}, nil
	case "previous":
		return Previous{}, nil
	case "go_to":
		return GoTo{Index: r.Index}, nil
	case "set_field":
		if r.Field == "" {
			return nil, fmt.Errorf("set_field requires field: %w", ErrUnknownField)
		}
		return SetField{Field: Field(r.Field), Value: r.Value}, nil
	case "toggle_goal":
		return ToggleGoal{GoalID: r.Goal}, nil
	case "set_goals":
		return SetGoals{GoalIDs: r.Goals}, nil
	case "set_has_website":
		flag, err := r.flag()
		if err != nil {
			return nil, err
		}
		return SetHasWebsite{Value: flag}, nil
	case "set_integration":
		flag, err := r.flag()
		if err != nil {
			return nil, err
		}
		return SetIntegration{ID: r.Integration, Enabled: flag}, nil
	case "set_integration_credential":
		return SetIntegrationCredential{ID: r.Integration, Key: r.Key, Value: r.Value}, nil
	case "set_terms":
		flag, err := r.flag()
		if err != nil {
			return nil, err
		}
		return SetTerms{Accepted: flag}, nil
	}
	return nil, fmt.Errorf("%q: %w", r.Type, ErrUnknownEvent)
}

func (r EventRequest) flag() (bool, error) {
	if r.Flag == nil {
		return false, fmt.Errorf("%s requires flag: %w", r.Type, ErrInvalidValue)
	}
	return *r.Flag, nil
}
