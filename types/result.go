package types

import (
	"fmt"
	"strings"
)

// SkippedItem is an audit record for a single source item that could not be
// converted. Skipped items are always reported, never silently discarded.
type SkippedItem struct {
	// Kind categorizes the skipped item: "class", "property",
	// "relationship", "interface", "component", "command".
	Kind string `json:"kind"`

	// Name is the human-readable name of the item.
	Name string `json:"name"`

	// Reason explains why the item was skipped.
	Reason string `json:"reason"`

	// Source is the original URI, DTMI or other locator from the source
	// document.
	Source string `json:"source"`
}

// ConversionResult aggregates the output of one front-end conversion run.
// It is a value: front-ends return it fully populated and callers treat it
// as immutable. Merge combines results from multiple files or chunks.
type ConversionResult struct {
	// RunID correlates log lines and reports for one conversion run. It is
	// metadata only and never influences generated identifiers.
	RunID string `json:"runId,omitempty"`

	// OntologyName is the source document's own name when it declares one
	// (rdfs:label on the ontology header, for instance). Informational only.
	OntologyName string `json:"ontologyName,omitempty"`

	EntityTypes       []EntityType       `json:"entityTypes"`
	RelationshipTypes []RelationshipType `json:"relationshipTypes"`
	SkippedItems      []SkippedItem      `json:"skippedItems,omitempty"`
	Warnings          []string           `json:"warnings,omitempty"`

	// TripleCount is the number of RDF triples processed (RDF front-end).
	TripleCount int `json:"tripleCount,omitempty"`

	// InterfaceCount is the number of interfaces processed (DTDL front-end).
	InterfaceCount int `json:"interfaceCount,omitempty"`
}

// SuccessRate returns the percentage (0-100) of items successfully
// converted. Returns 100 when nothing was processed.
func (cr *ConversionResult) SuccessRate() float64 {
	total := len(cr.EntityTypes) + len(cr.RelationshipTypes) + len(cr.SkippedItems)
	if total == 0 {
		return 100.0
	}
	converted := len(cr.EntityTypes) + len(cr.RelationshipTypes)
	return float64(converted) / float64(total) * 100.0
}

// HasSkippedItems reports whether any items were skipped.
func (cr *ConversionResult) HasSkippedItems() bool {
	return len(cr.SkippedItems) > 0
}

// HasWarnings reports whether any advisory warnings were recorded.
func (cr *ConversionResult) HasWarnings() bool {
	return len(cr.Warnings) > 0
}

// SkippedByKind groups skipped item counts by their kind.
func (cr *ConversionResult) SkippedByKind() map[string]int {
	counts := make(map[string]int)
	for _, item := range cr.SkippedItems {
		counts[item.Kind]++
	}
	return counts
}

// EntityByID returns the entity type with the given id, or nil.
func (cr *ConversionResult) EntityByID(id string) *EntityType {
	for i := range cr.EntityTypes {
		if cr.EntityTypes[i].ID == id {
			return &cr.EntityTypes[i]
		}
	}
	return nil
}

// Merge combines two results into a new one: lists concatenate, counts sum.
// The merge is associative, so chunked inputs may be folded in any grouping.
// The receiver's RunID wins when both are set.
func (cr ConversionResult) Merge(other ConversionResult) ConversionResult {
	runID := cr.RunID
	if runID == "" {
		runID = other.RunID
	}
	name := cr.OntologyName
	if name == "" {
		name = other.OntologyName
	}
	return ConversionResult{
		RunID:             runID,
		OntologyName:      name,
		EntityTypes:       append(append([]EntityType{}, cr.EntityTypes...), other.EntityTypes...),
		RelationshipTypes: append(append([]RelationshipType{}, cr.RelationshipTypes...), other.RelationshipTypes...),
		SkippedItems:      append(append([]SkippedItem{}, cr.SkippedItems...), other.SkippedItems...),
		Warnings:          append(append([]string{}, cr.Warnings...), other.Warnings...),
		TripleCount:       cr.TripleCount + other.TripleCount,
		InterfaceCount:    cr.InterfaceCount + other.InterfaceCount,
	}
}

// Summary renders a human-readable conversion summary.
func (cr *ConversionResult) Summary() string {
	var b strings.Builder
	b.WriteString("Conversion Summary:\n")
	fmt.Fprintf(&b, "  Entity Types: %d\n", len(cr.EntityTypes))
	fmt.Fprintf(&b, "  Relationships: %d\n", len(cr.RelationshipTypes))

	if len(cr.SkippedItems) > 0 {
		fmt.Fprintf(&b, "  Skipped: %d\n", len(cr.SkippedItems))
		for kind, count := range cr.SkippedByKind() {
			fmt.Fprintf(&b, "    - %s: %d\n", kind, count)
		}
	}
	if len(cr.Warnings) > 0 {
		fmt.Fprintf(&b, "  Warnings: %d\n", len(cr.Warnings))
	}
	fmt.Fprintf(&b, "  Success Rate: %.1f%%", cr.SuccessRate())
	if cr.TripleCount > 0 {
		fmt.Fprintf(&b, "\n  RDF Triples: %d", cr.TripleCount)
	}
	if cr.InterfaceCount > 0 {
		fmt.Fprintf(&b, "\n  Interfaces: %d", cr.InterfaceCount)
	}
	return b.String()
}
