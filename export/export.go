// Package export serializes conversion results into the target platform's
// parts document: a JSON envelope listing named parts whose payloads are
// base64-encoded JSON definitions. Output is byte-deterministic for a given
// result: part order is fixed, entity parts emit parents-first, and payload
// JSON comes from fixed-order struct marshaling.
package export

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/cristalhq/base64"
	"github.com/goccy/go-json"

	"github.com/c360studio/fabriconv/errors"
	"github.com/c360studio/fabriconv/resolve"
	"github.com/c360studio/fabriconv/types"
)

// PayloadTypeInline marks payloads carried inline as base64 JSON.
const PayloadTypeInline = "InlineBase64"

// Well-known part paths.
const (
	PlatformPartPath   = ".platform"
	DefinitionPartPath = "definition.json"
)

const platformSchemaURL = "https://developer.microsoft.com/json-schemas/fabric/gitIntegration/platformProperties/2.0.0/schema.json"

// Part is one named payload of the definition document.
type Part struct {
	Path        string `json:"path"`
	Payload     string `json:"payload"`
	PayloadType string `json:"payloadType"`
}

// Definition is the full parts document.
type Definition struct {
	Parts []Part `json:"parts"`
}

// Part returns the part with the given path, or nil.
func (d *Definition) Part(path string) *Part {
	for i := range d.Parts {
		if d.Parts[i].Path == path {
			return &d.Parts[i]
		}
	}
	return nil
}

// platformPart is the .platform payload: item metadata for the target.
type platformPart struct {
	Schema   string           `json:"$schema"`
	Metadata platformMetadata `json:"metadata"`
	Config   platformConfig   `json:"config"`
}

type platformMetadata struct {
	Type        string `json:"type"`
	DisplayName string `json:"displayName"`
}

type platformConfig struct {
	Version   string `json:"version"`
	LogicalID string `json:"logicalId"`
}

// Serializer builds parts documents from conversion results.
type Serializer struct {
	// DisplayName labels the exported item; falls back to the result's
	// ontology name, then "ontology".
	DisplayName string
}

// Build assembles the parts document. Entity parts are re-sorted so parents
// precede children regardless of how the result was merged.
func (s *Serializer) Build(result *types.ConversionResult) (*Definition, error) {
	entities := resolve.TopoSort(result.EntityTypes)

	relationships := make([]types.RelationshipType, len(result.RelationshipTypes))
	copy(relationships, result.RelationshipTypes)
	sort.Slice(relationships, func(i, j int) bool { return relationships[i].ID < relationships[j].ID })

	displayName := s.DisplayName
	if displayName == "" {
		displayName = result.OntologyName
	}
	if displayName == "" {
		displayName = "ontology"
	}

	doc := &Definition{}
	if err := doc.add(PlatformPartPath, platformPart{
		Schema: platformSchemaURL,
		Metadata: platformMetadata{
			Type:        "Ontology",
			DisplayName: displayName,
		},
		Config: platformConfig{
			Version:   "2.0",
			LogicalID: result.RunID,
		},
	}); err != nil {
		return nil, err
	}

	// The top-level definition record is an empty object; the consumer reads
	// the typed parts by path and rejects definitions carrying extra fields
	// here.
	if err := doc.add(DefinitionPartPath, struct{}{}); err != nil {
		return nil, err
	}

	for _, e := range entities {
		if err := doc.add(EntityPartPath(e.ID), e); err != nil {
			return nil, err
		}
	}
	for _, r := range relationships {
		if err := doc.add(RelationshipPartPath(r.ID), r); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Write serializes the parts document for a result onto w.
func (s *Serializer) Write(w io.Writer, result *types.ConversionResult) error {
	doc, err := s.Build(result)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.WrapFatal(err, "Serializer", "Write", "marshal definition")
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return errors.WrapFatal(err, "Serializer", "Write", "write definition")
	}
	return nil
}

// WriteFile serializes the parts document for a result into a file.
func (s *Serializer) WriteFile(path string, result *types.ConversionResult) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapFatal(err, "Serializer", "WriteFile", "create output file")
	}
	defer f.Close()
	return s.Write(f, result)
}

func (d *Definition) add(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errors.WrapFatal(err, "Serializer", "Build", "marshal part "+path)
	}
	d.Parts = append(d.Parts, Part{
		Path:        path,
		Payload:     base64.StdEncoding.EncodeToString(data),
		PayloadType: PayloadTypeInline,
	})
	return nil
}

// EntityPartPath returns the part path for an entity type definition.
func EntityPartPath(id string) string {
	return fmt.Sprintf("EntityTypes/%s/definition.json", id)
}

// RelationshipPartPath returns the part path for a relationship type
// definition.
func RelationshipPartPath(id string) string {
	return fmt.Sprintf("RelationshipTypes/%s/definition.json", id)
}

// DecodePart unmarshals a part's payload into out. Mostly useful in tests
// and round-trip tooling.
func DecodePart(p *Part, out any) error {
	raw, err := base64.StdEncoding.DecodeString(p.Payload)
	if err != nil {
		return errors.WrapInvalid(err, "Serializer", "DecodePart", "decode payload "+p.Path)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.WrapInvalid(err, "Serializer", "DecodePart", "unmarshal payload "+p.Path)
	}
	return nil
}
