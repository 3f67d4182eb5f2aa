// Package types provides the shared data model for ontology conversion:
// entity types, relationship types, conversion results and the narrow
// interfaces through which the converter consumes external collaborators.
package types

// Default classification values applied to every converted type.
const (
	DefaultNamespace     = "usertypes"
	DefaultNamespaceType = "Custom"
	DefaultVisibility    = "Visible"
)

// EntityTypeProperty is a single typed property of an entity type.
//
// Property ids are derived deterministically from the owning entity id and
// the resolved property name, so re-running the converter on unchanged input
// reproduces identical ids.
type EntityTypeProperty struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ValueType ValueType `json:"valueType"`
	Redefines string    `json:"redefines,omitempty"`
}

// EntityType is a node type in the target ontology, analogous to a class.
//
// BaseEntityTypeID, when non-empty, must reference an EntityType present in
// the same ConversionResult. Front-ends drop (never fabricate) parents that
// resolve outside the compilation set.
type EntityType struct {
	ID                    string               `json:"id"`
	Namespace             string               `json:"namespace"`
	Name                  string               `json:"name"`
	NamespaceType         string               `json:"namespaceType"`
	Visibility            string               `json:"visibility"`
	BaseEntityTypeID      string               `json:"baseEntityTypeId,omitempty"`
	EntityIDParts         []string             `json:"entityIdParts,omitempty"`
	DisplayNamePropertyID string               `json:"displayNamePropertyId,omitempty"`
	Properties            []EntityTypeProperty `json:"properties,omitempty"`
	TimeseriesProperties  []EntityTypeProperty `json:"timeseriesProperties,omitempty"`
}

// NewEntityType creates an entity type with default namespace, namespace
// type and visibility.
func NewEntityType(id, name string) EntityType {
	return EntityType{
		ID:            id,
		Name:          name,
		Namespace:     DefaultNamespace,
		NamespaceType: DefaultNamespaceType,
		Visibility:    DefaultVisibility,
	}
}

// Property returns the property with the given id, or nil.
func (et *EntityType) Property(id string) *EntityTypeProperty {
	for i := range et.Properties {
		if et.Properties[i].ID == id {
			return &et.Properties[i]
		}
	}
	for i := range et.TimeseriesProperties {
		if et.TimeseriesProperties[i].ID == id {
			return &et.TimeseriesProperties[i]
		}
	}
	return nil
}

// RelationshipEnd identifies one end of a relationship type.
type RelationshipEnd struct {
	EntityTypeID string `json:"entityTypeId"`
}

// RelationshipType is a typed, directed edge between two entity types. Both
// ends must reference entity types present in the same result; relationships
// whose target cannot be resolved are skipped, not emitted dangling.
type RelationshipType struct {
	ID            string          `json:"id"`
	Namespace     string          `json:"namespace"`
	Name          string          `json:"name"`
	NamespaceType string          `json:"namespaceType"`
	Source        RelationshipEnd `json:"source"`
	Target        RelationshipEnd `json:"target"`
}

// NewRelationshipType creates a relationship type with default namespace
// classification.
func NewRelationshipType(id, name, sourceID, targetID string) RelationshipType {
	return RelationshipType{
		ID:            id,
		Name:          name,
		Namespace:     DefaultNamespace,
		NamespaceType: DefaultNamespaceType,
		Source:        RelationshipEnd{EntityTypeID: sourceID},
		Target:        RelationshipEnd{EntityTypeID: targetID},
	}
}
