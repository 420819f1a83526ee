package onboarding

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"growthai/portal/internal/catalog"
)

// Placeholder values shown for unanswered questions
const (
	NotProvided  = "Not provided"
	NotSelected  = "Not selected"
	NoneSelected = "None selected"
)

// SummaryLine is one label/value pair of a summary
type SummaryLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summary is the exportable overview of a record. It never carries
// credentials.
type Summary struct {
	SessionID   uuid.UUID     `json:"session_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Lines       []SummaryLine `json:"lines"`
}

// ReviewLines are the lines shown on the review step
func ReviewLines(r Record) []SummaryLine {
	return []SummaryLine{
		{Label: "Business", Value: orDefault(r.BusinessName, NotProvided)},
		{Label: "Category", Value: orDefault(r.BusinessCategory, NotProvided)},
		{Label: "Goals", Value: orDefault(strings.Join(r.SelectedGoals, ", "), NotSelected)},
		{Label: "Website", Value: websiteLine(r)},
		{Label: "Integrations", Value: integrationsLine(r)},
	}
}

// SummaryLines is the full overview used for exports
func SummaryLines(r Record) []SummaryLine {
	goals := make([]string, 0, len(r.SelectedGoals))
	for _, id := range r.SelectedGoals {
		if g, ok := catalog.GoalByID(id); ok {
			goals = append(goals, g.Title)
		} else {
			goals = append(goals, id)
		}
	}

	return []SummaryLine{
		{Label: "Business", Value: orDefault(r.BusinessName, NotProvided)},
		{Label: "Category", Value: orDefault(catalog.Label(catalog.BusinessCategories, r.BusinessCategory), NotProvided)},
		{Label: "Size", Value: orDefault(catalog.Label(catalog.BusinessSizes, r.BusinessSize), NotProvided)},
		{Label: "Location", Value: orDefault(r.BusinessLocation, NotProvided)},
		{Label: "Description", Value: orDefault(strings.TrimSpace(r.BusinessDescription), NotProvided)},
		{Label: "Goals", Value: orDefault(strings.Join(goals, ", "), NotSelected)},
		{Label: "Competition", Value: orDefault(catalog.Label(catalog.CompetitionLevels, r.CompetitionLevel), NotSelected)},
		{Label: "Monthly Budget", Value: "$" + strconv.Itoa(r.MonthlyBudget)},
		{Label: "Website", Value: websiteLine(r)},
		{Label: "Platform", Value: orDefault(catalog.Label(catalog.CMSTypes, r.CMSType), NotSelected)},
		{Label: "Hosting", Value: hostingLine(r)},
		{Label: "Integrations", Value: integrationsLine(r)},
	}
}

// SummaryAvailable reports whether the record may be exported. The visitor
// has to have reached the review step or finished the form.
func SummaryAvailable(s State) bool {
	switch s.Mode {
	case ModeAnalysis, ModeWorkspace:
		return true
	case ModeOnboarding:
		return s.ActiveStep().ID == StepReview
	}
	return false
}

func websiteLine(r Record) string {
	if r.HasWebsite != Yes {
		return "Needs new website"
	}
	return orDefault(r.WebsiteURL, "Has website")
}

func hostingLine(r Record) string {
	hostingType := catalog.Label(catalog.HostingTypes, r.HostingType)
	provider := strings.TrimSpace(r.HostingProvider)
	switch {
	case hostingType == "" && provider == "":
		return NotProvided
	case hostingType == "":
		return provider
	case provider == "":
		return hostingType
	}
	return hostingType + " (" + provider + ")"
}

func integrationsLine(r Record) string {
	ids := r.EnabledIntegrations()
	if len(ids) == 0 {
		return NoneSelected
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id
		if integ, ok := catalog.IntegrationByID(id); ok {
			names[i] = integ.Name
		}
	}
	return strings.Join(names, ", ")
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
