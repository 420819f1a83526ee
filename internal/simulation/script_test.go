package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetURL(t *testing.T) {
	assert.Equal(t, "https://acme.test", TargetURL("https://acme.test"))
	assert.Equal(t, "http://acme.test", TargetURL("http://acme.test"))
	assert.Equal(t, DefaultTargetURL, TargetURL(""))
	assert.Equal(t, DefaultTargetURL, TargetURL("acme.test"))
	assert.Equal(t, DefaultTargetURL, TargetURL("ftp://acme.test"))
}

func TestWorkspaceScriptInterpolatesURL(t *testing.T) {
	s := NewWorkspaceScript("https://acme.test")

	require.Len(t, s.Blocks, 4)
	assert.Contains(t, s.Blocks[0], `crawler.scan("https://acme.test")`)
	assert.Contains(t, s.Blocks[3], `previewUrl: "https://acme.test"`)
	assert.NotContains(t, s.Blocks[1], "acme.test")
	assert.Len(t, s.Phases, 4)
	assert.Len(t, s.PlannedChanges, 5)
}

func TestScriptPhaseHelpers(t *testing.T) {
	s := NewWorkspaceScript("")

	assert.Equal(t, "Reading target site structure", s.Phase(0))
	assert.Equal(t, "Running validation and preparing release", s.Phase(9))
	assert.Equal(t, 25.0, s.PhasePercent(0))
	assert.Equal(t, 100.0, s.PhasePercent(3))

	changes := s.Changes(1)
	require.Len(t, changes, 5)
	assert.True(t, changes[0].Done)
	assert.True(t, changes[1].Done)
	assert.False(t, changes[2].Done)
}
