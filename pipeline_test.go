package fabriconv

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/fabriconv/config"
	"github.com/c360studio/fabriconv/errors"
	"github.com/c360studio/fabriconv/export"
)

const zooTurtle = `
@prefix ex: <http://example.org/> .
@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

ex:Animal rdf:type owl:Class .
ex:Dog rdf:type owl:Class ; rdfs:subClassOf ex:Animal .
ex:name rdf:type owl:DatatypeProperty ; rdfs:domain ex:Animal ; rdfs:range xsd:string .
`

const thermostatJSON = `{
	"@context": "dtmi:dtdl:context;2",
	"@id": "dtmi:com:example:Thermostat;1",
	"@type": "Interface",
	"displayName": "Thermostat",
	"contents": [{"@type": "Property", "name": "deviceId", "schema": "string"}]
}`

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func forcedConfig() *config.Config {
	cfg := config.Default()
	cfg.Force = true
	return cfg
}

func TestPipelineConvertRDFFile(t *testing.T) {
	p := NewPipeline(forcedConfig(), nil)

	result, err := p.ConvertFile(writeInput(t, "zoo.ttl", zooTurtle))
	require.NoError(t, err)

	assert.Len(t, result.EntityTypes, 2)
	assert.Equal(t, 3, result.TripleCount)
	assert.NotEmpty(t, result.RunID)
}

func TestPipelineConvertDTDLFile(t *testing.T) {
	p := NewPipeline(forcedConfig(), nil)

	result, err := p.ConvertFile(writeInput(t, "thermostat.json", thermostatJSON))
	require.NoError(t, err)

	require.Len(t, result.EntityTypes, 1)
	assert.Equal(t, "Thermostat", result.EntityTypes[0].Name)
	assert.Equal(t, 1, result.InterfaceCount)
}

func TestPipelineConvertFilesMerges(t *testing.T) {
	p := NewPipeline(forcedConfig(), nil)

	result, err := p.ConvertFiles([]string{
		writeInput(t, "zoo.ttl", zooTurtle),
		writeInput(t, "thermostat.json", thermostatJSON),
	})
	require.NoError(t, err)

	assert.Len(t, result.EntityTypes, 3)
	assert.Equal(t, 3, result.TripleCount)
	assert.Equal(t, 1, result.InterfaceCount)
}

func TestPipelineConvertFilesEmpty(t *testing.T) {
	p := NewPipeline(forcedConfig(), nil)

	_, err := p.ConvertFiles(nil)
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestPipelineExportRoundTrip(t *testing.T) {
	p := NewPipeline(forcedConfig(), nil)

	result, err := p.ConvertFile(writeInput(t, "zoo.ttl", zooTurtle))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, p.Export(&buf, &result, "Zoo"))

	var doc export.Definition
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	// .platform, definition.json, and one part per entity type.
	assert.Len(t, doc.Parts, 2+len(result.EntityTypes))
	require.NotNil(t, doc.Part(export.PlatformPartPath))
}

func TestPipelineSharedGeneratorAvoidsCollisions(t *testing.T) {
	p := NewPipeline(forcedConfig(), nil)

	first, err := p.ConvertFile(writeInput(t, "a.ttl", zooTurtle))
	require.NoError(t, err)
	second, err := p.ConvertFile(writeInput(t, "b.ttl", zooTurtle))
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, e := range first.EntityTypes {
		seen[e.ID] = true
	}
	for _, e := range second.EntityTypes {
		assert.False(t, seen[e.ID], "id %s reused across documents", e.ID)
	}
}
