package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graph-migrator/internal/manifest"
)

const settlementDef = `{
	"resource_model_name": "Settlement",
	"target_model_name": "Settlement Area",
	"nodes": [{"name": "NAME.E48", "target_name": "Name"}]
}`

const selectorInstances = `{
	"resources": [
		{"id": "r1", "model": "ACTOR.E39", "nodes": []},
		{"id": "r2", "model": "SETTLEMENT.E27", "nodes": []},
		{"id": "r3", "model": "HERITAGE_RESOURCE.E18", "nodes": []}
	]
}`

func TestSelectDefaultMode(t *testing.T) {
	repo := testRepo(t, actorDef, settlementDef)
	man := manifest.NewRun()

	selected, err := Select(loadInstances(t, selectorInstances), nil, repo, man)
	require.NoError(t, err)
	require.Len(t, selected, 2)

	assert.Equal(t, "r1", selected[0].Instance.ID)
	assert.Equal(t, "Person or Group", selected[0].Definition.V4Name)
	assert.Equal(t, "r2", selected[1].Instance.ID)
	assert.Equal(t, "Settlement Area", selected[1].Definition.V4Name)

	// The uncovered instance is recorded, not errored.
	o, ok := man.Outcome("r3")
	require.True(t, ok)
	assert.Equal(t, manifest.StatusSkipped, o.Status)
	assert.Contains(t, o.Reason, "HERITAGE_RESOURCE.E18")
}

func TestSelectRequestedModels(t *testing.T) {
	repo := testRepo(t, actorDef, settlementDef)
	man := manifest.NewRun()

	selected, err := Select(loadInstances(t, selectorInstances), []string{"Actor"}, repo, man)
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "r1", selected[0].Instance.ID)

	// Non-requested instances get no manifest entry in requested mode.
	_, ok := man.Outcome("r2")
	assert.False(t, ok)
	_, ok = man.Outcome("r3")
	assert.False(t, ok)
}

func TestSelectRequestedModelResolvesRawName(t *testing.T) {
	repo := testRepo(t, actorDef)

	selected, err := Select(loadInstances(t, selectorInstances), []string{"ACTOR.E39"}, repo, manifest.NewRun())
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "r1", selected[0].Instance.ID)
}

func TestSelectRequestedModelUnmapped(t *testing.T) {
	repo := testRepo(t, actorDef)

	_, err := Select(loadInstances(t, selectorInstances), []string{"Spacecraft"}, repo, manifest.NewRun())
	require.Error(t, err)

	var unmapped *UnmappedModelError
	require.True(t, errors.As(err, &unmapped))
	assert.Equal(t, "Spacecraft", unmapped.Model)
}
