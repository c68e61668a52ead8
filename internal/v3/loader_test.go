package v3

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBasic(t *testing.T) {
	raw := `{
		"resources": [
			{
				"id": "r1",
				"model": "ACTOR.E39",
				"nodes": [
					{"id": "n1", "type": "NAME.E41", "attributes": {"ACTOR_NAME.E82": "Ada"}},
					{"id": "n2", "type": "ROLE.E55", "attributes": {"ROLE_TYPE.E55": "Architect"}}
				],
				"edges": [
					{"type": "P107", "from": "n1", "to": "n2"}
				]
			}
		]
	}`

	instances, err := Load([]byte(raw))
	require.NoError(t, err)
	require.Len(t, instances, 1)

	inst := instances[0]
	assert.Equal(t, "r1", inst.ID)
	assert.Equal(t, "ACTOR.E39", inst.Model)
	require.Len(t, inst.Nodes, 2)
	require.Len(t, inst.Edges, 1)

	node := inst.Node("n1")
	require.NotNil(t, node)
	assert.Equal(t, "NAME.E41", node.Type)
	assert.Equal(t, "Ada", node.Attributes["ACTOR_NAME.E82"])
	assert.Equal(t, "r1", node.Instance())

	assert.False(t, inst.Edges[0].CrossInstance())
}

func TestLoadFlattensChildren(t *testing.T) {
	raw := `{
		"resources": [
			{
				"id": "r1",
				"model": "ACTOR.E39",
				"nodes": [
					{
						"id": "n1",
						"type": "NAME.E41",
						"attributes": {"NAME.E41": "Ada"},
						"children": [
							{
								"id": "n2",
								"type": "NAME_TYPE.E55",
								"edge": "P2",
								"attributes": {"NAME_TYPE.E55": "primary"},
								"children": [
									{"id": "n3", "type": "NOTE.E62", "edge": "P3", "attributes": {}}
								]
							}
						]
					}
				]
			}
		]
	}`

	instances, err := Load([]byte(raw))
	require.NoError(t, err)
	require.Len(t, instances, 1)

	inst := instances[0]
	require.Len(t, inst.Nodes, 3)
	require.Len(t, inst.Edges, 2)

	assert.Equal(t, Edge{Type: "P2", From: "n1", To: "n2"}, inst.Edges[0])
	assert.Equal(t, Edge{Type: "P3", From: "n2", To: "n3"}, inst.Edges[1])
}

func TestLoadCrossInstanceEdge(t *testing.T) {
	raw := `{
		"resources": [
			{
				"id": "r1",
				"model": "ACTOR.E39",
				"nodes": [{"id": "n1", "type": "NAME.E41"}],
				"edges": [{"type": "P12", "from": "n1", "to": "n9", "to_instance": "r2"}]
			}
		]
	}`

	instances, err := Load([]byte(raw))
	require.NoError(t, err)

	edge := instances[0].Edges[0]
	assert.True(t, edge.CrossInstance())
	assert.Equal(t, "r2", edge.ToInstance)
	// The target is not validated at load; it may belong to an instance
	// that is never selected.
	assert.Equal(t, "n9", edge.To)
}

func TestLoadDanglingEdgeTarget(t *testing.T) {
	raw := `{
		"resources": [
			{
				"id": "r1",
				"model": "ACTOR.E39",
				"nodes": [{"id": "n1", "type": "NAME.E41"}],
				"edges": [{"type": "P1", "from": "n1", "to": "missing"}]
			}
		]
	}`

	_, err := Load([]byte(raw))
	require.Error(t, err)

	var malformed *MalformedGraphError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "r1", malformed.Instance)
	assert.Equal(t, "missing", malformed.Reference)
}

func TestLoadDanglingEdgeSource(t *testing.T) {
	raw := `{
		"resources": [
			{
				"id": "r1",
				"model": "ACTOR.E39",
				"nodes": [{"id": "n1", "type": "NAME.E41"}],
				"edges": [{"type": "P1", "from": "missing", "to": "n1"}]
			}
		]
	}`

	_, err := Load([]byte(raw))

	var malformed *MalformedGraphError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "missing", malformed.Reference)
}

func TestLoadMissingModel(t *testing.T) {
	raw := `{"resources": [{"id": "r1", "nodes": []}]}`

	_, err := Load([]byte(raw))

	var malformed *MalformedGraphError
	require.True(t, errors.As(err, &malformed))
	assert.Contains(t, malformed.Reason, "resource-model name")
}

func TestLoadDuplicateNodeID(t *testing.T) {
	raw := `{
		"resources": [
			{
				"id": "r1",
				"model": "ACTOR.E39",
				"nodes": [
					{"id": "n1", "type": "NAME.E41"},
					{"id": "n1", "type": "ROLE.E55"}
				]
			}
		]
	}`

	_, err := Load([]byte(raw))

	var malformed *MalformedGraphError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "n1", malformed.Reference)
	assert.Contains(t, malformed.Reason, "duplicate")
}

func TestLoadChildWithoutEdgeType(t *testing.T) {
	raw := `{
		"resources": [
			{
				"id": "r1",
				"model": "ACTOR.E39",
				"nodes": [
					{"id": "n1", "type": "NAME.E41", "children": [{"id": "n2", "type": "NOTE.E62"}]}
				]
			}
		]
	}`

	_, err := Load([]byte(raw))

	var malformed *MalformedGraphError
	require.True(t, errors.As(err, &malformed))
	assert.Contains(t, malformed.Reason, "edge type")
}

func TestLoadDuplicateInstanceID(t *testing.T) {
	raw := `{
		"resources": [
			{"id": "r1", "model": "ACTOR.E39", "nodes": []},
			{"id": "r1", "model": "ACTOR.E39", "nodes": []}
		]
	}`

	_, err := Load([]byte(raw))

	var malformed *MalformedGraphError
	require.True(t, errors.As(err, &malformed))
	assert.Contains(t, malformed.Reason, "duplicate instance")
}

func TestLoadSameNodeIDAcrossInstances(t *testing.T) {
	// Node identifiers are instance-local; the same value in two
	// instances names unrelated nodes.
	raw := `{
		"resources": [
			{"id": "r1", "model": "ACTOR.E39", "nodes": [{"id": "n1", "type": "NAME.E41"}]},
			{"id": "r2", "model": "ACTOR.E39", "nodes": [{"id": "n1", "type": "ROLE.E55"}]}
		]
	}`

	instances, err := Load([]byte(raw))
	require.NoError(t, err)
	require.Len(t, instances, 2)

	assert.Equal(t, "NAME.E41", instances[0].Node("n1").Type)
	assert.Equal(t, "ROLE.E55", instances[1].Node("n1").Type)
}
