package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalName(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"fragment", "http://example.org/ontology#Animal", "Animal"},
		{"path", "http://example.org/ontology/Animal", "Animal"},
		{"trailing slash", "http://example.org/ontology/Animal/", "Animal"},
		{"fragment wins over path", "http://example.org/a/b#Cat", "Cat"},
		{"no separator", "Animal", "Animal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocalName(tt.uri))
		})
	}
}

func TestNamespace(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"fragment", "http://example.org/ontology#Animal", "http://example.org/ontology#"},
		{"path", "http://example.org/ontology/Animal", "http://example.org/ontology/"},
		{"no separator", "Animal", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Namespace(tt.uri))
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already valid", "Animal", "Animal"},
		{"spaces replaced", "has legs", "has_legs"},
		{"punctuation replaced", "temp-reading.v2", "temp_reading_v2"},
		{"leading digit prefixed", "3DModel", "n3DModel"},
		{"leading underscore prefixed", "_private", "n_private"},
		{"unicode replaced", "tempèrature", "temp_rature"},
		{"empty", "", "unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in, MaxLengthRDF))
		})
	}
}

func TestSanitizeTruncates(t *testing.T) {
	long := strings.Repeat("a", 200)

	assert.Len(t, SanitizeRDF(long), MaxLengthRDF)
	assert.Len(t, SanitizeDTDL(long), MaxLengthDTDL)
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"simple", "Animal", true},
		{"with underscore and digits", "sensor_42", true},
		{"leading digit", "3DModel", false},
		{"leading underscore", "_x", false},
		{"hyphen", "a-b", false},
		{"empty", "", false},
		{"too long", strings.Repeat("a", MaxLengthRDF+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.in, MaxLengthRDF))
		})
	}
}

func TestSanitizeProducesValidNames(t *testing.T) {
	inputs := []string{"Animal", "3DModel", "has legs", "a.b-c", "_x", "tempèrature"}
	for _, in := range inputs {
		out := Sanitize(in, MaxLengthRDF)
		assert.True(t, IsValid(out, MaxLengthRDF), "Sanitize(%q) = %q should be valid", in, out)
	}
}
