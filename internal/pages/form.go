package pages

import (
	"strings"

	"github.com/gin-gonic/gin"

	"growthai/portal/internal/catalog"
	"growthai/portal/internal/components"
	"growthai/portal/internal/onboarding"
)

// FormEvents turns the posted wizard form into the events that record the
// answers of the given step. Text and choice fields that were not posted are
// left alone; checkbox groups are posted only when checked, so their absence
// clears them.
func FormEvents(c *gin.Context, step onboarding.Step) []onboarding.Event {
	var events []onboarding.Event

	for _, field := range step.Fields {
		if value, ok := c.GetPostForm(string(field)); ok {
			// The password input is never pre-filled, so blank keeps the stored one.
			if field == onboarding.FieldHostingPassword && value == "" {
				continue
			}
			events = append(events, onboarding.SetField{Field: field, Value: value})
		}
	}

	switch step.Input {
	case onboarding.InputSelect:
		if step.ID == onboarding.StepCompetitionLevel {
			if budget, ok := c.GetPostForm(string(onboarding.FieldMonthlyBudget)); ok && strings.TrimSpace(budget) != "" {
				events = append(events, onboarding.SetField{Field: onboarding.FieldMonthlyBudget, Value: budget})
			}
		}

	case onboarding.InputGoals:
		events = append(events, onboarding.SetGoals{GoalIDs: c.PostFormArray(components.FormGoals)})

	case onboarding.InputYesNo:
		switch c.PostForm(components.FormHasWebsite) {
		case "yes":
			events = append(events, onboarding.SetHasWebsite{Value: true})
		case "no":
			events = append(events, onboarding.SetHasWebsite{Value: false})
		}

	case onboarding.InputIntegrations:
		enabled := make(map[string]bool)
		for _, id := range c.PostFormArray(components.FormIntegrations) {
			enabled[id] = true
		}
		for _, integ := range catalog.Integrations {
			events = append(events, onboarding.SetIntegration{ID: integ.ID, Enabled: enabled[integ.ID]})
			if !enabled[integ.ID] {
				continue
			}
			for _, cred := range integ.Credentials {
				value, ok := c.GetPostForm(components.CredentialKey(integ.ID, cred.Key))
				// Secret inputs render empty, so blank keeps the stored value.
				if !ok || (cred.Secret && value == "") {
					continue
				}
				events = append(events, onboarding.SetIntegrationCredential{ID: integ.ID, Key: cred.Key, Value: value})
			}
		}

	case onboarding.InputReview:
		events = append(events, onboarding.SetTerms{Accepted: c.PostForm(components.FormTerms) != ""})
	}

	return events
}

func withoutBudget(events []onboarding.Event) []onboarding.Event {
	kept := make([]onboarding.Event, 0, len(events))
	for _, e := range events {
		if f, ok := e.(onboarding.SetField); ok && f.Field == onboarding.FieldMonthlyBudget {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
