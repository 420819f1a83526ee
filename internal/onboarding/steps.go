package onboarding

import (
	"growthai/portal/internal/catalog"
)

// StepID identifies a wizard step
type StepID string

const (
	StepBusinessName        StepID = "businessName"
	StepBusinessCategory    StepID = "businessCategory"
	StepBusinessSize        StepID = "businessSize"
	StepBusinessLocation    StepID = "businessLocation"
	StepBusinessDescription StepID = "businessDescription"
	StepSelectedGoals       StepID = "selectedGoals"
	StepCompetitionLevel    StepID = "competitionLevel"
	StepHasWebsite          StepID = "hasWebsite"
	StepWebsiteURL          StepID = "websiteUrl"
	StepCMSType             StepID = "cmsType"
	StepHostingType         StepID = "hostingType"
	StepHostingProvider     StepID = "hostingProvider"
	StepIntegrations        StepID = "integrations"
	StepReview              StepID = "review"
)

// Field names accepted by SetField
type Field string

const (
	FieldBusinessName        Field = "business_name"
	FieldBusinessCategory    Field = "business_category"
	FieldBusinessSize        Field = "business_size"
	FieldBusinessLocation    Field = "business_location"
	FieldBusinessDescription Field = "business_description"
	FieldCompetitionLevel    Field = "competition_level"
	FieldMonthlyBudget       Field = "monthly_budget"
	FieldWebsiteURL          Field = "website_url"
	FieldCMSType             Field = "cms_type"
	FieldHostingType         Field = "hosting_type"
	FieldHostingProvider     Field = "hosting_provider"
	FieldHostingUsername     Field = "hosting_username"
	FieldHostingPassword     Field = "hosting_password"
)

// InputKind tells the renderer which control a step uses
type InputKind string

const (
	InputText         InputKind = "text"
	InputTextarea     InputKind = "textarea"
	InputSelect       InputKind = "select"
	InputGoals        InputKind = "goals"
	InputYesNo        InputKind = "yes_no"
	InputIntegrations InputKind = "integrations"
	InputReview       InputKind = "review"
)

// Step describes one entry of the master step list. Visible decides whether
// the step applies to the current answers; Validate produces the messages
// that block Next.
type Step struct {
	ID          StepID           `json:"id"`
	Label       string           `json:"label"`
	Question    string           `json:"question"`
	Placeholder string           `json:"placeholder,omitempty"`
	Note        string           `json:"note,omitempty"`
	Input       InputKind        `json:"input"`
	Options     []catalog.Option `json:"options,omitempty"`
	Fields      []Field          `json:"fields,omitempty"`

	Visible  func(Record) bool    `json:"-"`
	Validate func(State) []string `json:"-"`
}

func always(Record) bool { return true }

func hasWebsite(r Record) bool { return r.HasWebsite == Yes }

var masterSteps = []Step{
	{
		ID:          StepBusinessName,
		Label:       "Business Name",
		Question:    "What is your business name?",
		Placeholder: "e.g., Joe's Coffee Shop",
		Input:       InputText,
		Fields:      []Field{FieldBusinessName},
		Visible:     always,
		Validate:    validateBusinessName,
	},
	{
		ID:       StepBusinessCategory,
		Label:    "Business Category",
		Question: "Which category fits your business?",
		Input:    InputSelect,
		Options:  catalog.BusinessCategories,
		Fields:   []Field{FieldBusinessCategory},
		Visible:  always,
		Validate: validateBusinessCategory,
	},
	{
		ID:       StepBusinessSize,
		Label:    "Business Size",
		Question: "How large is your business?",
		Input:    InputSelect,
		Options:  catalog.BusinessSizes,
		Fields:   []Field{FieldBusinessSize},
		Visible:  always,
		Validate: validateBusinessSize,
	},
	{
		ID:          StepBusinessLocation,
		Label:       "Location",
		Question:    "Where is your business located?",
		Placeholder: "e.g., New York, NY",
		Input:       InputText,
		Fields:      []Field{FieldBusinessLocation},
		Visible:     always,
		Validate:    validateBusinessLocation,
	},
	{
		ID:          StepBusinessDescription,
		Label:       "Description",
		Question:    "Describe your business briefly",
		Placeholder: "What you do, who you serve, and what makes you different.",
		Note:        "Minimum 20 characters.",
		Input:       InputTextarea,
		Fields:      []Field{FieldBusinessDescription},
		Visible:     always,
		Validate:    validateBusinessDescription,
	},
	{
		ID:       StepSelectedGoals,
		Label:    "Goals",
		Question: "What are your top goals?",
		Input:    InputGoals,
		Visible:  always,
		Validate: validateSelectedGoals,
	},
	{
		ID:       StepCompetitionLevel,
		Label:    "Competition",
		Question: "How competitive is your market?",
		Input:    InputSelect,
		Options:  catalog.CompetitionLevels,
		Fields:   []Field{FieldCompetitionLevel},
		Visible:  always,
		Validate: validateCompetitionLevel,
	},
	{
		ID:       StepHasWebsite,
		Label:    "Website Status",
		Question: "Do you already have a website?",
		Input:    InputYesNo,
		Visible:  always,
		Validate: validateHasWebsite,
	},
	{
		ID:          StepWebsiteURL,
		Label:       "Website URL",
		Question:    "What is your website URL?",
		Placeholder: "https://example.com",
		Input:       InputText,
		Fields:      []Field{FieldWebsiteURL},
		Visible:     hasWebsite,
		Validate:    validateWebsiteURL,
	},
	{
		ID:       StepCMSType,
		Label:    "Platform",
		Question: "Which platform/CMS do you use?",
		Input:    InputSelect,
		Options:  catalog.CMSTypes,
		Fields:   []Field{FieldCMSType},
		Visible:  always,
		Validate: validateCMSType,
	},
	{
		ID:       StepHostingType,
		Label:    "Hosting Type",
		Question: "What hosting type do you use?",
		Input:    InputSelect,
		Options:  catalog.HostingTypes,
		Fields:   []Field{FieldHostingType},
		Visible:  always,
		Validate: validateHostingType,
	},
	{
		ID:          StepHostingProvider,
		Label:       "Hosting Provider",
		Question:    "Who is your hosting provider?",
		Placeholder: "e.g., Bluehost, SiteGround, AWS",
		Input:       InputText,
		Fields:      []Field{FieldHostingProvider, FieldHostingUsername, FieldHostingPassword},
		Visible:     always,
		Validate:    validateHostingProvider,
	},
	{
		ID:       StepIntegrations,
		Label:    "Integrations",
		Question: "Which integrations should we connect first?",
		Input:    InputIntegrations,
		Visible:  always,
		Validate: noValidation,
	},
	{
		ID:       StepReview,
		Label:    "Review",
		Question: "Review and confirm",
		Input:    InputReview,
		Visible:  always,
		Validate: validateReview,
	},
}

var stepsByID = func() map[StepID]Step {
	m := make(map[StepID]Step, len(masterSteps))
	for _, s := range masterSteps {
		m[s.ID] = s
	}
	return m
}()

// MasterSteps returns the full ordered step list
func MasterSteps() []Step {
	out := make([]Step, len(masterSteps))
	copy(out, masterSteps)
	return out
}

// LookupStep finds a step descriptor by id
func LookupStep(id StepID) (Step, bool) {
	s, ok := stepsByID[id]
	return s, ok
}

// VisibleSteps filters the master list by each step's visibility predicate
func VisibleSteps(r Record) []Step {
	out := make([]Step, 0, len(masterSteps))
	for _, s := range masterSteps {
		if s.Visible(r) {
			out = append(out, s)
		}
	}
	return out
}

// StepPosition returns the 1-based position of id among the visible steps,
// or 0 if the step is hidden.
func StepPosition(r Record, id StepID) int {
	for i, s := range VisibleSteps(r) {
		if s.ID == id {
			return i + 1
		}
	}
	return 0
}

// ClampStep bounds a step index to [1, total]
func ClampStep(index, total int) int {
	if total < 1 {
		return 1
	}
	if index < 1 {
		return 1
	}
	if index > total {
		return total
	}
	return index
}
