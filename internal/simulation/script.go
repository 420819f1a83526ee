package simulation

import (
	"fmt"
	"strings"

	"growthai/portal/internal/catalog"
)

// DefaultTargetURL is previewed when the visitor gave no usable website
const DefaultTargetURL = "https://example.com"

// TargetURL picks the page the workspace previews
func TargetURL(websiteURL string) string {
	if websiteURL != "" && strings.HasPrefix(websiteURL, "http") {
		return websiteURL
	}
	return DefaultTargetURL
}

// Script is the canned agent output for one workspace session
type Script struct {
	TargetURL      string   `json:"target_url"`
	Blocks         []string `json:"blocks"`
	Phases         []string `json:"phases"`
	PlannedChanges []string `json:"planned_changes"`
}

// PlannedChange is a checklist row in the live preview panel
type PlannedChange struct {
	Item string `json:"item"`
	Done bool   `json:"done"`
}

// NewWorkspaceScript builds the four-block script for the given website
func NewWorkspaceScript(websiteURL string) Script {
	target := TargetURL(websiteURL)

	blocks := []string{
		fmt.Sprintf("// Crawl target URL and extract structure\nconst pageMap = await crawler.scan(%q)\nconst sections = extractor.getSections(pageMap)\n", target),
		"// Generate content and SEO patches\nconst patch = await agent.generatePatch({\n  goal: \"increase qualified leads\",\n  sections,\n  keywords: [\"local seo\", \"service pages\", \"conversion\"]\n})\n",
		"// Apply patch to runtime preview\nawait preview.apply(patch)\nawait preview.validate({ lighthouse: true, links: true, schema: true })\n",
		fmt.Sprintf("// Finalize session output\nreturn {\n  status: \"ready\",\n  updatedSections: patch.sections.length,\n  previewUrl: %q\n}\n", target),
	}

	return Script{
		TargetURL:      target,
		Blocks:         blocks,
		Phases:         append([]string(nil), catalog.WorkspacePhases...),
		PlannedChanges: append([]string(nil), catalog.PlannedChanges...),
	}
}

// Phase returns the headline for a phase index, clamped to the known phases
func (s Script) Phase(index int) string {
	if len(s.Phases) == 0 {
		return ""
	}
	if index < 0 {
		index = 0
	}
	if index >= len(s.Phases) {
		index = len(s.Phases) - 1
	}
	return s.Phases[index]
}

// PhasePercent is the width of the phase bar for a phase index
func (s Script) PhasePercent(index int) float64 {
	if len(s.Phases) == 0 {
		return 0
	}
	return float64(index+1) / float64(len(s.Phases)) * 100
}

// Changes marks every planned change up to and including the phase index as done
func (s Script) Changes(phase int) []PlannedChange {
	out := make([]PlannedChange, len(s.PlannedChanges))
	for i, item := range s.PlannedChanges {
		out[i] = PlannedChange{Item: item, Done: i <= phase}
	}
	return out
}
