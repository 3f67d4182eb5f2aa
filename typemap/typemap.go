// Package typemap maps source schema datatypes (XSD datatypes from RDF
// documents, DTDL primitive schemas) onto target value types. A registry
// holds per-format mapping tables plus aliases, and records whether a
// mapping loses precision so converters can surface that as a warning.
package typemap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/fabriconv/types"
)

// Source format identifiers for registry lookups.
const (
	FormatXSD  = "xsd"
	FormatDTDL = "dtdl"
)

// Mapping describes how one source datatype converts to a target value type.
type Mapping struct {
	Target types.ValueType

	// PrecisionLoss marks conversions that cannot represent the full source
	// value space, e.g. xsd:decimal stored as a float64-backed Double.
	PrecisionLoss bool

	// Note explains the mapping choice when it is not obvious, included in
	// conversion warnings for lossy mappings.
	Note string
}

// Registry holds datatype mapping tables keyed by source format.
type Registry struct {
	byFormat map[string]map[string]Mapping
	aliases  map[string]map[string]string
	fallback types.ValueType
}

// NewRegistry creates a registry preloaded with the XSD and DTDL default
// tables. Unknown datatypes fall back to String.
func NewRegistry() *Registry {
	r := &Registry{
		byFormat: make(map[string]map[string]Mapping),
		aliases:  make(map[string]map[string]string),
		fallback: types.ValueString,
	}
	registerXSDDefaults(r)
	registerDTDLDefaults(r)
	return r
}

// Register adds or replaces a mapping for a source datatype.
func (r *Registry) Register(format, source string, m Mapping) {
	table, ok := r.byFormat[format]
	if !ok {
		table = make(map[string]Mapping)
		r.byFormat[format] = table
	}
	table[source] = m
}

// RegisterAlias makes alias resolve to the same mapping as canonical.
func (r *Registry) RegisterAlias(format, alias, canonical string) {
	table, ok := r.aliases[format]
	if !ok {
		table = make(map[string]string)
		r.aliases[format] = table
	}
	table[alias] = canonical
}

// Resolve maps a source datatype to its target value type. Unknown types
// resolve to the String fallback with ok=false so callers can warn.
func (r *Registry) Resolve(format, source string) (Mapping, bool) {
	source = r.canonical(format, source)
	if table, ok := r.byFormat[format]; ok {
		if m, ok := table[source]; ok {
			return m, true
		}
	}
	return Mapping{
		Target: r.fallback,
		Note:   fmt.Sprintf("unknown %s datatype %q mapped to %s", format, source, r.fallback),
	}, false
}

// Known reports whether a source datatype has an explicit mapping.
func (r *Registry) Known(format, source string) bool {
	_, ok := r.Resolve(format, source)
	return ok
}

// Formats lists the registered source formats, sorted.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.byFormat))
	for f := range r.byFormat {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) canonical(format, source string) string {
	if table, ok := r.aliases[format]; ok {
		if c, ok := table[source]; ok {
			return c
		}
	}
	return source
}

// unionPrecedence orders target types for union resolution. When a source
// declares a union of datatypes, the member mapping to the most specific
// target type wins; String is the catch-all and therefore last.
var unionPrecedence = []types.ValueType{
	types.ValueBoolean,
	types.ValueBigInt,
	types.ValueDouble,
	types.ValueDateTime,
	types.ValueString,
}

// ResolveUnion picks a single target value type for a union of source
// datatypes. Any member mapping to a candidate type is sufficient, which
// keeps unions permissive: the chosen type is the most specific one some
// member supports, and remaining members degrade through the value encoding.
// The rationale explains the choice for conversion reports.
func (r *Registry) ResolveUnion(format string, members []string) (types.ValueType, string) {
	if len(members) == 0 {
		return r.fallback, "empty union defaulted to " + r.fallback.String()
	}

	present := make(map[types.ValueType][]string)
	for _, m := range members {
		mapping, _ := r.Resolve(format, m)
		present[mapping.Target] = append(present[mapping.Target], m)
	}

	for _, vt := range unionPrecedence {
		if sources, ok := present[vt]; ok {
			rationale := fmt.Sprintf("union resolved to %s via %s", vt, strings.Join(sources, ", "))
			if len(present) > 1 {
				rationale += fmt.Sprintf(" (%d member types collapsed)", len(present))
			}
			return vt, rationale
		}
	}
	return r.fallback, "union defaulted to " + r.fallback.String()
}
