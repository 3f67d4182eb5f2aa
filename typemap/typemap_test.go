package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c360studio/fabriconv/types"
)

func TestResolveXSDDefaults(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		source string
		want   types.ValueType
		lossy  bool
	}{
		{"string", types.ValueString, false},
		{"boolean", types.ValueBoolean, false},
		{"integer", types.ValueBigInt, false},
		{"nonNegativeInteger", types.ValueBigInt, false},
		{"double", types.ValueDouble, false},
		{"decimal", types.ValueDouble, true},
		{"dateTime", types.ValueDateTime, false},
		{"date", types.ValueDateTime, true},
		{"time", types.ValueString, true},
		{"anyURI", types.ValueString, false},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			m, ok := r.Resolve(FormatXSD, tt.source)
			assert.True(t, ok)
			assert.Equal(t, tt.want, m.Target)
			assert.Equal(t, tt.lossy, m.PrecisionLoss)
		})
	}
}

func TestResolveFullURIAlias(t *testing.T) {
	r := NewRegistry()

	m, ok := r.Resolve(FormatXSD, XSDNamespace+"integer")
	assert.True(t, ok)
	assert.Equal(t, types.ValueBigInt, m.Target)
}

func TestResolveUnknownFallsBackToString(t *testing.T) {
	r := NewRegistry()

	m, ok := r.Resolve(FormatXSD, "http://example.org/custom#weirdType")
	assert.False(t, ok)
	assert.Equal(t, types.ValueString, m.Target)
	assert.Contains(t, m.Note, "unknown")
}

func TestResolveDTDLDefaults(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		source string
		want   types.ValueType
	}{
		{"boolean", types.ValueBoolean},
		{"long", types.ValueBigInt},
		{"float", types.ValueDouble},
		{"dateTime", types.ValueDateTime},
		{"duration", types.ValueString},
		{"uuid", types.ValueString},
		{"unsignedLong", types.ValueBigInt},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			m, ok := r.Resolve(FormatDTDL, tt.source)
			assert.True(t, ok)
			assert.Equal(t, tt.want, m.Target)
		})
	}
}

func TestRegisterOverride(t *testing.T) {
	r := NewRegistry()
	r.Register(FormatXSD, "decimal", Mapping{Target: types.ValueString, Note: "kept verbatim"})

	m, ok := r.Resolve(FormatXSD, "decimal")
	assert.True(t, ok)
	assert.Equal(t, types.ValueString, m.Target)
	assert.False(t, m.PrecisionLoss)
}

func TestResolveUnionPrecedence(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name    string
		members []string
		want    types.ValueType
	}{
		{"boolean beats everything", []string{"string", "double", "boolean"}, types.ValueBoolean},
		{"bigint beats double", []string{"double", "integer"}, types.ValueBigInt},
		{"double beats datetime", []string{"dateTime", "float"}, types.ValueDouble},
		{"datetime beats string", []string{"string", "dateTime"}, types.ValueDateTime},
		{"all strings", []string{"string", "anyURI"}, types.ValueString},
		{"unknown members default", []string{"ex:alpha", "ex:beta"}, types.ValueString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rationale := r.ResolveUnion(FormatXSD, tt.members)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, rationale)
		})
	}
}

func TestResolveUnionEmpty(t *testing.T) {
	r := NewRegistry()

	got, rationale := r.ResolveUnion(FormatXSD, nil)
	assert.Equal(t, types.ValueString, got)
	assert.Contains(t, rationale, "empty union")
}

func TestResolveUnionRationaleNamesMembers(t *testing.T) {
	r := NewRegistry()

	got, rationale := r.ResolveUnion(FormatXSD, []string{"string", "integer"})
	assert.Equal(t, types.ValueBigInt, got)
	assert.Contains(t, rationale, "integer")
	assert.Contains(t, rationale, "BigInt")
}

func TestFormats(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{FormatDTDL, FormatXSD}, r.Formats())
}
