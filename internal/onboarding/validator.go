package onboarding

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"growthai/portal/internal/catalog"
)

// MinDescriptionLength is the shortest accepted business description,
// counted in characters after trimming.
const MinDescriptionLength = 20

// Validation messages
const (
	MsgBusinessNameRequired     = "Business name is required."
	MsgBusinessCategoryRequired = "Business category is required."
	MsgBusinessSizeRequired     = "Business size is required."
	MsgBusinessLocationRequired = "Business location is required."
	MsgDescriptionTooShort      = "Business description should be at least 20 characters."
	MsgGoalsRequired            = "Select at least one business goal."
	MsgCompetitionRequired      = "Select your competition level."
	MsgHasWebsiteRequired       = "Choose whether you already have a website."
	MsgWebsiteURLRequired       = "Website URL is required."
	MsgWebsiteURLInvalid        = "Website URL must be a valid http(s) URL."
	MsgCMSTypeRequired          = "Website platform/CMS is required."
	MsgHostingTypeRequired      = "Hosting type is required."
	MsgHostingProviderRequired  = "Hosting provider is required."
	MsgTermsRequired            = "Please confirm the agreement before continuing."
)

// Validate returns the messages blocking Next on the given step. An empty
// result means the step can be advanced. Unknown steps never block.
func Validate(id StepID, s State) []string {
	step, ok := LookupStep(id)
	if !ok {
		return []string{}
	}
	return step.Validate(s)
}

// IsValidURL reports whether raw is an absolute http or https URL with a
// host. Like a browser, it reads "http:example.com" and "http:/example.com"
// as http://example.com.
func IsValidURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" {
		rest := strings.TrimLeft(raw[len(u.Scheme)+1:], `/\`)
		if u, err = url.Parse(u.Scheme + "://" + rest); err != nil {
			return false
		}
	}
	return u.Hostname() != ""
}

func blank(v string) bool {
	return strings.TrimSpace(v) == ""
}

func check(ok bool, msg string) []string {
	if ok {
		return []string{}
	}
	return []string{msg}
}

func noValidation(State) []string { return []string{} }

func validateBusinessName(s State) []string {
	return check(!blank(s.Record.BusinessName), MsgBusinessNameRequired)
}

func validateBusinessCategory(s State) []string {
	return check(catalog.Contains(catalog.BusinessCategories, s.Record.BusinessCategory), MsgBusinessCategoryRequired)
}

func validateBusinessSize(s State) []string {
	return check(catalog.Contains(catalog.BusinessSizes, s.Record.BusinessSize), MsgBusinessSizeRequired)
}

func validateBusinessLocation(s State) []string {
	return check(!blank(s.Record.BusinessLocation), MsgBusinessLocationRequired)
}

func validateBusinessDescription(s State) []string {
	n := utf8.RuneCountInString(strings.TrimSpace(s.Record.BusinessDescription))
	return check(n >= MinDescriptionLength, MsgDescriptionTooShort)
}

func validateSelectedGoals(s State) []string {
	return check(len(s.Record.SelectedGoals) > 0, MsgGoalsRequired)
}

func validateCompetitionLevel(s State) []string {
	return check(catalog.Contains(catalog.CompetitionLevels, s.Record.CompetitionLevel), MsgCompetitionRequired)
}

func validateHasWebsite(s State) []string {
	return check(s.Record.HasWebsite != Unknown, MsgHasWebsiteRequired)
}

func validateWebsiteURL(s State) []string {
	if s.Record.HasWebsite != Yes {
		return []string{}
	}
	raw := strings.TrimSpace(s.Record.WebsiteURL)
	if raw == "" {
		return []string{MsgWebsiteURLRequired}
	}
	return check(IsValidURL(raw), MsgWebsiteURLInvalid)
}

func validateCMSType(s State) []string {
	return check(catalog.Contains(catalog.CMSTypes, s.Record.CMSType), MsgCMSTypeRequired)
}

func validateHostingType(s State) []string {
	return check(catalog.Contains(catalog.HostingTypes, s.Record.HostingType), MsgHostingTypeRequired)
}

func validateHostingProvider(s State) []string {
	return check(!blank(s.Record.HostingProvider), MsgHostingProviderRequired)
}

func validateReview(s State) []string {
	return check(s.Record.TermsAccepted, MsgTermsRequired)
}
