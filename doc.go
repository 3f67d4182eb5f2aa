// Package fabriconv compiles ontology and schema documents into a normalized
// ontology definition: an ordered set of typed entity and relationship
// definitions with stable numeric identifiers.
//
// # Architecture
//
// Two front-ends feed a shared set of resolution passes:
//
//   - rdfconv: RDF/OWL graphs (Turtle, RDF/XML, N-Triples, N-Quads, TriG,
//     Notation3, JSON-LD) parsed through rdfio into an in-memory graph.
//   - dtdl: DTDL JSON interface definitions, versions v2 through v4.
//
// Both front-ends produce a types.ConversionResult containing entity types,
// relationship types, skipped items and advisory warnings. The shared passes
// live in resolve (inheritance ordering, conflict renaming, key inference),
// typemap (source type to value type mapping with union precedence), naming
// (identifier sanitization) and idgen (identifier assignment). The export
// package turns a result into the final ordered definition document.
//
// # Error posture
//
// Three tiers, never conflated: fatal errors (unparsable input, empty input,
// failed memory pre-flight) abort the compilation and surface to the caller;
// per-item failures become SkippedItem audit records and the run continues;
// resolved conflicts and lossy mappings are warnings on the result.
//
// The compilation pipeline is single-threaded per document. Only the
// identifier generator is safe for concurrent use, so multiple documents may
// be compiled against one shared generator.
package fabriconv
