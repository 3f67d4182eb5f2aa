// Package rdfio loads RDF documents in any supported serialization into a
// single in-memory graph. Turtle-family formats parse directly; RDF/XML and
// the quad formats decode through dedicated readers and fold into the same
// graph, with named-graph context discarded.
package rdfio

import (
	"path/filepath"
	"strings"
)

// Format identifies an RDF serialization format.
type Format string

const (
	// FormatTurtle is Terse RDF Triple Language (.ttl).
	FormatTurtle Format = "turtle"
	// FormatRDFXML is the XML serialization (.rdf, .owl, .xml).
	FormatRDFXML Format = "rdfxml"
	// FormatNTriples is line-based triples (.nt), a Turtle subset.
	FormatNTriples Format = "ntriples"
	// FormatNQuads is line-based quads (.nq).
	FormatNQuads Format = "nquads"
	// FormatTriG is Turtle extended with named graph blocks (.trig).
	FormatTriG Format = "trig"
	// FormatN3 is Notation3 (.n3); its RDF subset parses as Turtle.
	FormatN3 Format = "n3"
	// FormatJSONLD is JSON for Linked Data (.jsonld).
	FormatJSONLD Format = "jsonld"
)

// String returns the string representation of the Format.
func (f Format) String() string { return string(f) }

// IsValid checks if the Format is one of the defined constants.
func (f Format) IsValid() bool {
	switch f {
	case FormatTurtle, FormatRDFXML, FormatNTriples, FormatNQuads,
		FormatTriG, FormatN3, FormatJSONLD:
		return true
	default:
		return false
	}
}

var extensions = map[string]Format{
	".ttl":    FormatTurtle,
	".turtle": FormatTurtle,
	".rdf":    FormatRDFXML,
	".owl":    FormatRDFXML,
	".xml":    FormatRDFXML,
	".nt":     FormatNTriples,
	".nq":     FormatNQuads,
	".nquads": FormatNQuads,
	".trig":   FormatTriG,
	".n3":     FormatN3,
	".jsonld": FormatJSONLD,
}

var names = map[string]Format{
	"turtle":    FormatTurtle,
	"ttl":       FormatTurtle,
	"rdfxml":    FormatRDFXML,
	"rdf/xml":   FormatRDFXML,
	"xml":       FormatRDFXML,
	"ntriples":  FormatNTriples,
	"nt":        FormatNTriples,
	"nquads":    FormatNQuads,
	"nq":        FormatNQuads,
	"trig":      FormatTriG,
	"n3":        FormatN3,
	"notation3": FormatN3,
	"jsonld":    FormatJSONLD,
	"json-ld":   FormatJSONLD,
}

// DetectFormat infers the serialization format from a file path extension.
func DetectFormat(path string) (Format, bool) {
	f, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// ParseFormat resolves a user-supplied format name or alias.
func ParseFormat(name string) (Format, bool) {
	f, ok := names[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// SupportedExtensions lists the recognized RDF file extensions.
func SupportedExtensions() []string {
	return []string{".ttl", ".turtle", ".rdf", ".owl", ".xml", ".nt", ".nq", ".nquads", ".trig", ".n3", ".jsonld"}
}
