package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lineValues(lines []SummaryLine) map[string]string {
	out := make(map[string]string, len(lines))
	for _, l := range lines {
		out[l.Label] = l.Value
	}
	return out
}

func TestReviewLinesDefaults(t *testing.T) {
	got := lineValues(ReviewLines(NewRecord()))

	assert.Equal(t, map[string]string{
		"Business":     NotProvided,
		"Category":     NotProvided,
		"Goals":        NotSelected,
		"Website":      "Needs new website",
		"Integrations": NoneSelected,
	}, got)
}

func TestReviewLinesAnswered(t *testing.T) {
	r := NewRecord()
	r.BusinessName = "Acme"
	r.BusinessCategory = "retail"
	r.SelectedGoals = []string{"seo", "brand"}
	r.HasWebsite = Yes
	r.Integrations["linkedin"] = Integration{Enabled: true}
	r.Integrations["gmb"] = Integration{Enabled: true}

	got := lineValues(ReviewLines(r))
	assert.Equal(t, "Acme", got["Business"])
	assert.Equal(t, "retail", got["Category"])
	assert.Equal(t, "seo, brand", got["Goals"])
	assert.Equal(t, "Has website", got["Website"])
	assert.Equal(t, "Google Business Profile, LinkedIn", got["Integrations"], "catalog order")

	r.WebsiteURL = "https://acme.test"
	assert.Equal(t, "https://acme.test", lineValues(ReviewLines(r))["Website"])
}

func TestSummaryLinesUseLabels(t *testing.T) {
	r := NewRecord()
	r.BusinessCategory = "real-estate"
	r.BusinessSize = "solo"
	r.SelectedGoals = []string{"revenue"}
	r.HostingType = "vps"
	r.HostingProvider = "Linode"
	r.HostingPassword = "hunter2"

	got := lineValues(SummaryLines(r))
	assert.Equal(t, "Real Estate", got["Category"])
	assert.Equal(t, "Just me (1 person)", got["Size"])
	assert.Equal(t, "Boost Revenue", got["Goals"])
	assert.Equal(t, "$1000", got["Monthly Budget"])
	assert.Equal(t, "VPS Hosting (Linode)", got["Hosting"])

	for _, v := range got {
		assert.NotContains(t, v, "hunter2")
	}
}

func TestSummaryAvailable(t *testing.T) {
	s := NewState()
	assert.False(t, SummaryAvailable(s))

	s.Mode = ModeOnboarding
	assert.False(t, SummaryAvailable(s))

	s.Step = s.TotalSteps()
	assert.True(t, SummaryAvailable(s))

	s.Mode = ModeWorkspace
	s.Step = 1
	assert.True(t, SummaryAvailable(s))
}
