package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/fabriconv/types"
)

func entity(id, name, parent string) types.EntityType {
	e := types.NewEntityType(id, name)
	e.BaseEntityTypeID = parent
	return e
}

func TestTopoSortParentsFirst(t *testing.T) {
	// Input deliberately lists children before their parent.
	input := []types.EntityType{
		entity("1000000000002", "Dog", "1000000000001"),
		entity("1000000000003", "Cat", "1000000000001"),
		entity("1000000000001", "Animal", ""),
	}

	sorted := TopoSort(input)
	require.Len(t, sorted, 3)

	pos := make(map[string]int)
	for i, e := range sorted {
		pos[e.Name] = i
	}
	assert.Less(t, pos["Animal"], pos["Dog"])
	assert.Less(t, pos["Animal"], pos["Cat"])
	// Ties keep input order.
	assert.Less(t, pos["Dog"], pos["Cat"])
}

func TestTopoSortDeepChain(t *testing.T) {
	input := []types.EntityType{
		entity("3", "C", "2"),
		entity("2", "B", "1"),
		entity("1", "A", ""),
	}

	sorted := TopoSort(input)
	assert.Equal(t, "A", sorted[0].Name)
	assert.Equal(t, "B", sorted[1].Name)
	assert.Equal(t, "C", sorted[2].Name)
}

func TestTopoSortCycleMembersAppended(t *testing.T) {
	input := []types.EntityType{
		entity("1", "A", "2"),
		entity("2", "B", "1"),
		entity("3", "C", ""),
	}

	sorted := TopoSort(input)
	require.Len(t, sorted, 3, "cycle members must not be dropped")
	assert.Equal(t, "C", sorted[0].Name)
	assert.Equal(t, "A", sorted[1].Name)
	assert.Equal(t, "B", sorted[2].Name)
}

func TestBreakInheritanceCycles(t *testing.T) {
	entities := []types.EntityType{
		entity("1", "A", "2"),
		entity("2", "B", "1"),
		entity("3", "C", ""),
		entity("4", "D", "3"),
	}

	warnings := BreakInheritanceCycles(entities)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "A")
	assert.Contains(t, warnings[0], "circular inheritance")
	// One cleared link breaks the cycle; B keeps its (now acyclic) parent.
	assert.Empty(t, entities[0].BaseEntityTypeID)
	assert.Equal(t, "1", entities[1].BaseEntityTypeID)
	assert.Equal(t, "3", entities[3].BaseEntityTypeID)

	// Emission order is now satisfiable: every parent precedes its child.
	sorted := TopoSort(entities)
	pos := make(map[string]int)
	for i, e := range sorted {
		pos[e.ID] = i
	}
	for _, e := range entities {
		if e.BaseEntityTypeID != "" {
			assert.Less(t, pos[e.BaseEntityTypeID], pos[e.ID])
		}
	}
}

func TestBreakInheritanceCyclesSelfLoop(t *testing.T) {
	entities := []types.EntityType{entity("1", "A", "1")}

	warnings := BreakInheritanceCycles(entities)
	require.Len(t, warnings, 1)
	assert.Empty(t, entities[0].BaseEntityTypeID)
}

func TestBreakInheritanceCyclesKeepsBranchesOffCycle(t *testing.T) {
	// D hangs off the B<->C cycle but is not part of it.
	entities := []types.EntityType{
		entity("2", "B", "3"),
		entity("3", "C", "2"),
		entity("4", "D", "2"),
	}

	warnings := BreakInheritanceCycles(entities)
	require.Len(t, warnings, 1)
	assert.Empty(t, entities[0].BaseEntityTypeID)
	assert.Equal(t, "2", entities[1].BaseEntityTypeID)
	assert.Equal(t, "2", entities[2].BaseEntityTypeID)
}

func TestBreakInheritanceCyclesExternalParentUntouched(t *testing.T) {
	entities := []types.EntityType{entity("1", "A", "9999999999999")}

	assert.Empty(t, BreakInheritanceCycles(entities))
	assert.Equal(t, "9999999999999", entities[0].BaseEntityTypeID)
}

func TestDropUnresolvedParents(t *testing.T) {
	entities := []types.EntityType{
		entity("1", "Known", ""),
		entity("2", "Orphan", "9999999999999"),
		entity("3", "Child", "1"),
	}

	warnings := DropUnresolvedParents(entities)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Orphan")
	assert.Empty(t, entities[1].BaseEntityTypeID)
	assert.Equal(t, "1", entities[2].BaseEntityTypeID)
}

func TestParentChain(t *testing.T) {
	entities := []types.EntityType{
		entity("1", "A", ""),
		entity("2", "B", "1"),
		entity("3", "C", "2"),
	}
	byID := map[string]*types.EntityType{}
	for i := range entities {
		byID[entities[i].ID] = &entities[i]
	}

	assert.Equal(t, []string{"2", "1"}, ParentChain("3", byID))
	assert.Empty(t, ParentChain("1", byID))
}

func TestParentChainTerminatesOnCycle(t *testing.T) {
	entities := []types.EntityType{
		entity("1", "A", "2"),
		entity("2", "B", "1"),
	}
	byID := map[string]*types.EntityType{}
	for i := range entities {
		byID[entities[i].ID] = &entities[i]
	}

	chain := ParentChain("1", byID)
	assert.Equal(t, []string{"2"}, chain)
}

func TestConflictResolverRenamesOnTypeMismatch(t *testing.T) {
	cr := NewConflictResolver()

	name, renamed := cr.Resolve("status", types.ValueString)
	assert.Equal(t, "status", name)
	assert.False(t, renamed)

	// Same name, same type: allowed as-is on another entity.
	name, renamed = cr.Resolve("status", types.ValueString)
	assert.Equal(t, "status", name)
	assert.False(t, renamed)

	// Same name, different type: suffixed.
	name, renamed = cr.Resolve("status", types.ValueBigInt)
	assert.Equal(t, "status_bigint", name)
	assert.True(t, renamed)

	// Third distinct type gets its own suffix.
	name, renamed = cr.Resolve("status", types.ValueBoolean)
	assert.Equal(t, "status_boolean", name)
	assert.True(t, renamed)
}

func TestApplyInheritanceMarksRedefines(t *testing.T) {
	parent := entity("1000000000001", "Animal", "")
	parent.Properties = []types.EntityTypeProperty{
		{ID: "p1", Name: "name", ValueType: types.ValueString},
	}
	child := entity("1000000000002", "Dog", "1000000000001")
	child.Properties = []types.EntityTypeProperty{
		{ID: "p2", Name: "name", ValueType: types.ValueString},
	}

	entities := []types.EntityType{parent, child}
	warnings := ApplyInheritance(entities, func(entityID, name string) string {
		return entityID + "-" + name
	})

	assert.Empty(t, warnings)
	assert.Equal(t, "p1", entities[1].Properties[0].Redefines)
	assert.Equal(t, "name", entities[1].Properties[0].Name)
}

func TestApplyInheritanceRenamesTypeConflict(t *testing.T) {
	parent := entity("1000000000001", "Animal", "")
	parent.Properties = []types.EntityTypeProperty{
		{ID: "p1", Name: "age", ValueType: types.ValueBigInt},
	}
	child := entity("1000000000002", "Dog", "1000000000001")
	child.Properties = []types.EntityTypeProperty{
		{ID: "p2", Name: "age", ValueType: types.ValueString},
	}

	entities := []types.EntityType{parent, child}
	warnings := ApplyInheritance(entities, func(entityID, name string) string {
		return entityID + "-" + name
	})

	require.Len(t, warnings, 1)
	got := entities[1].Properties[0]
	assert.Equal(t, "age_string", got.Name)
	assert.Equal(t, "1000000000002-age_string", got.ID)
	assert.Empty(t, got.Redefines)
}

func TestInferKeyParts(t *testing.T) {
	tests := []struct {
		name  string
		props []types.EntityTypeProperty
		want  []string
	}{
		{
			"id-named property preferred",
			[]types.EntityTypeProperty{
				{ID: "a", Name: "label", ValueType: types.ValueString},
				{ID: "b", Name: "deviceId", ValueType: types.ValueString},
			},
			[]string{"b"},
		},
		{
			"first key-typed fallback",
			[]types.EntityTypeProperty{
				{ID: "a", Name: "active", ValueType: types.ValueBoolean},
				{ID: "b", Name: "serial", ValueType: types.ValueBigInt},
			},
			[]string{"b"},
		},
		{
			"keyless entity",
			[]types.EntityTypeProperty{
				{ID: "a", Name: "reading", ValueType: types.ValueDouble},
				{ID: "b", Name: "active", ValueType: types.ValueBoolean},
			},
			nil,
		},
		{
			"id-named but wrong type skipped",
			[]types.EntityTypeProperty{
				{ID: "a", Name: "idRatio", ValueType: types.ValueDouble},
				{ID: "b", Name: "code", ValueType: types.ValueString},
			},
			[]string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferKeyParts(tt.props))
		})
	}
}

func TestInferDisplayName(t *testing.T) {
	props := []types.EntityTypeProperty{
		{ID: "a", Name: "deviceId", ValueType: types.ValueString},
		{ID: "b", Name: "displayName", ValueType: types.ValueString},
	}

	assert.Equal(t, "b", InferDisplayName(props, []string{"a"}))

	noName := []types.EntityTypeProperty{
		{ID: "a", Name: "deviceId", ValueType: types.ValueString},
	}
	assert.Equal(t, "a", InferDisplayName(noName, []string{"a"}))
	assert.Equal(t, "", InferDisplayName(nil, nil))
}

func TestSplitTimeseries(t *testing.T) {
	props := []types.EntityTypeProperty{
		{ID: "a", Name: "readingTimestamp", ValueType: types.ValueDateTime},
		{ID: "b", Name: "installedAt", ValueType: types.ValueDateTime},
		{ID: "c", Name: "timestamp", ValueType: types.ValueString},
	}

	static, timeseries := SplitTimeseries(props)

	require.Len(t, timeseries, 1)
	assert.Equal(t, "a", timeseries[0].ID)
	require.Len(t, static, 2)
	assert.Equal(t, "b", static[0].ID)
	assert.Equal(t, "c", static[1].ID)
}

func TestFinalize(t *testing.T) {
	e := types.NewEntityType("1000000000001", "Device")
	e.Properties = []types.EntityTypeProperty{
		{ID: "a", Name: "deviceId", ValueType: types.ValueString},
		{ID: "b", Name: "deviceName", ValueType: types.ValueString},
		{ID: "c", Name: "lastTimestamp", ValueType: types.ValueDateTime},
	}

	entities := []types.EntityType{e}
	Finalize(entities)

	got := entities[0]
	assert.Equal(t, []string{"a"}, got.EntityIDParts)
	assert.Equal(t, "b", got.DisplayNamePropertyID)
	require.Len(t, got.TimeseriesProperties, 1)
	assert.Equal(t, "c", got.TimeseriesProperties[0].ID)
	assert.Len(t, got.Properties, 2)
}

func TestFinalizeKeepsExplicitKeys(t *testing.T) {
	// Inference would pick "r" (name contains "id"); an explicit key wins.
	e := types.NewEntityType("1000000000001", "Reboot")
	e.Properties = []types.EntityTypeProperty{
		{ID: "r", Name: "requestId", ValueType: types.ValueString},
		{ID: "k", Name: "commandName", ValueType: types.ValueString},
	}
	e.EntityIDParts = []string{"k"}
	e.DisplayNamePropertyID = "k"

	entities := []types.EntityType{e}
	Finalize(entities)

	assert.Equal(t, []string{"k"}, entities[0].EntityIDParts)
	assert.Equal(t, "k", entities[0].DisplayNamePropertyID)
}
