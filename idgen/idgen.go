// Package idgen provides identifier generation for ontology definitions.
//
// Two schemes exist, matching the two front-ends:
//
//   - Generator: a thread-safe monotonic counter starting from a
//     configurable prefix, used by the RDF front-end where source documents
//     carry no stable intrinsic identifier.
//   - Deterministic: a content-derived hash of the cleaned source
//     identifier, used by the DTDL front-end so re-running the converter on
//     an unchanged document yields byte-identical ids.
//
// All ids are 13-digit numeric strings.
package idgen

import (
	"strconv"
	"sync"
)

// DefaultPrefix is the default starting value for generated ids.
const DefaultPrefix = 1_000_000_000_000

// Generator is a thread-safe sequential id generator.
//
// Multiple front-end instances, or multiple documents compiled inside one
// host process, may share a single Generator; Next and ReserveRange are the
// only operations in the conversion core that must be safe for concurrent
// use.
type Generator struct {
	mu       sync.Mutex
	counter  uint64
	prefix   uint64
	byNS     map[string]int
	reserved map[string]Range
}

// Range is a contiguous block of reserved id values: [Start, End).
type Range struct {
	Start uint64
	End   uint64
}

// Len returns the number of ids in the range.
func (r Range) Len() int {
	return int(r.End - r.Start)
}

// ID returns the i-th id of the range as a string.
func (r Range) ID(i int) string {
	return strconv.FormatUint(r.Start+uint64(i), 10)
}

// NewGenerator creates a generator whose first id equals prefix. A zero
// prefix selects DefaultPrefix.
func NewGenerator(prefix uint64) *Generator {
	if prefix == 0 {
		prefix = DefaultPrefix
	}
	return &Generator{
		counter:  prefix,
		prefix:   prefix,
		byNS:     make(map[string]int),
		reserved: make(map[string]Range),
	}
}

// Next returns the next sequential id. Thread-safe.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	current := g.counter
	g.counter++
	return strconv.FormatUint(current, 10)
}

// NextFor returns the next sequential id, tracked under a namespace so
// callers can report how many ids each category consumed. Thread-safe.
func (g *Generator) NextFor(namespace string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	current := g.counter
	g.counter++
	g.byNS[namespace]++
	return strconv.FormatUint(current, 10)
}

// NamespaceCount returns the number of ids generated under a namespace.
func (g *Generator) NamespaceCount(namespace string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.byNS[namespace]
}

// ReserveRange reserves a contiguous block of count ids for a namespace and
// returns it. Useful for batch operations that need the id range up front.
// Thread-safe.
func (g *Generator) ReserveRange(namespace string, count int) Range {
	g.mu.Lock()
	defer g.mu.Unlock()
	r := Range{Start: g.counter, End: g.counter + uint64(count)}
	g.counter = r.End
	g.reserved[namespace] = r
	g.byNS[namespace] += count
	return r
}

// Current returns the value the next id would take, without consuming it.
func (g *Generator) Current() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counter
}

// TotalGenerated returns the number of ids handed out since creation.
func (g *Generator) TotalGenerated() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return int(g.counter - g.prefix)
}

// IsValidID reports whether a string is a valid 13-digit numeric id.
func IsValidID(id string) bool {
	if len(id) != 13 {
		return false
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
