package rdfconv

import (
	"fmt"

	"github.com/deiu/rdf2go"

	"github.com/c360studio/fabriconv/typemap"
	"github.com/c360studio/fabriconv/types"
)

// Bounds on class expression traversal. Malformed or adversarial documents
// can nest expressions arbitrarily or close list cycles; traversal gives up
// rather than recursing forever.
const (
	maxExpressionDepth = 10
	maxListItems       = 1000
)

// rangeResolution is the outcome of resolving a property range expression.
// Either the range is a datatype (ValueType set) or a class (IsObject set
// with the target class IRI).
type rangeResolution struct {
	ValueType types.ValueType
	IsObject  bool
	TargetIRI string
	Note      string
}

// exprResolver resolves class and datatype expressions against a parsed
// graph.
type exprResolver struct {
	g            *rdf2go.Graph
	reg          *typemap.Registry
	namedClasses map[string]bool
}

// resolveRange resolves a range term: a datatype IRI, a named class IRI, or
// a blank-node class expression.
func (r *exprResolver) resolveRange(term rdf2go.Term) rangeResolution {
	if term == nil {
		return rangeResolution{ValueType: types.ValueString, Note: "no range declared, defaulted to String"}
	}
	return r.resolve(term, 0, make(map[string]bool))
}

func (r *exprResolver) resolve(term rdf2go.Term, depth int, visited map[string]bool) rangeResolution {
	if depth > maxExpressionDepth {
		return rangeResolution{ValueType: types.ValueString,
			Note: fmt.Sprintf("expression deeper than %d levels, defaulted to String", maxExpressionDepth)}
	}

	key := term.String()
	if visited[key] {
		return rangeResolution{ValueType: types.ValueString, Note: "cyclic expression, defaulted to String"}
	}
	visited[key] = true

	switch t := term.(type) {
	case *rdf2go.Resource:
		return r.resolveIRI(t.RawValue())
	case *rdf2go.BlankNode:
		return r.resolveExpression(term, depth, visited)
	case *rdf2go.Literal:
		// A literal in range position is malformed; take its datatype.
		if t.Datatype != nil {
			m, _ := r.reg.Resolve(typemap.FormatXSD, t.Datatype.RawValue())
			return rangeResolution{ValueType: m.Target, Note: m.Note}
		}
		return rangeResolution{ValueType: types.ValueString}
	default:
		return rangeResolution{ValueType: types.ValueString, Note: "unrecognized range term, defaulted to String"}
	}
}

func (r *exprResolver) resolveIRI(iri string) rangeResolution {
	if iri == RDFSLiteral {
		return rangeResolution{ValueType: types.ValueString}
	}
	if m, ok := r.reg.Resolve(typemap.FormatXSD, iri); ok {
		return rangeResolution{ValueType: m.Target, Note: m.Note}
	}
	if r.namedClasses[iri] {
		return rangeResolution{IsObject: true, TargetIRI: iri}
	}
	return rangeResolution{ValueType: types.ValueString,
		Note: fmt.Sprintf("range %s is neither a known datatype nor a class in this document, defaulted to String", iri)}
}

// resolveExpression handles blank-node class expressions: unions,
// intersections, complements and enumerations.
func (r *exprResolver) resolveExpression(node rdf2go.Term, depth int, visited map[string]bool) rangeResolution {
	if t := r.g.One(node, rdf2go.NewResource(OWLUnionOf), nil); t != nil {
		return r.resolveUnion(t.Object, depth, visited)
	}
	if t := r.g.One(node, rdf2go.NewResource(OWLIntersectionOf), nil); t != nil {
		return r.resolveIntersection(t.Object, depth, visited)
	}
	if t := r.g.One(node, rdf2go.NewResource(OWLComplementOf), nil); t != nil {
		// The negation itself has no representation; resolving the operand
		// keeps the referenced type reachable.
		res := r.resolve(t.Object, depth+1, visited)
		extra := "complement resolved to its operand"
		if res.Note != "" {
			res.Note += "; " + extra
		} else {
			res.Note = extra
		}
		return res
	}
	if t := r.g.One(node, rdf2go.NewResource(OWLOneOf), nil); t != nil {
		return r.resolveEnumeration(t.Object)
	}
	if r.g.One(node, rdf2go.NewResource(RDFType), rdf2go.NewResource(OWLRestriction)) != nil {
		return rangeResolution{ValueType: types.ValueString,
			Note: "property restriction used as range, defaulted to String"}
	}
	return rangeResolution{ValueType: types.ValueString,
		Note: "anonymous class expression without a recognized operator, defaulted to String"}
}

// resolveUnion resolves a union: datatype members collapse through the
// mapping precedence; a union made purely of classes becomes an object range
// to its first member.
func (r *exprResolver) resolveUnion(list rdf2go.Term, depth int, visited map[string]bool) rangeResolution {
	members := r.listMembers(list)
	if len(members) == 0 {
		return rangeResolution{ValueType: types.ValueString, Note: "empty union, defaulted to String"}
	}

	var datatypes []string
	var firstClass string
	for _, m := range members {
		res := r.resolve(m, depth+1, visited)
		if res.IsObject {
			if firstClass == "" {
				firstClass = res.TargetIRI
			}
			continue
		}
		datatypes = append(datatypes, rawIRI(m))
	}

	if len(datatypes) == 0 && firstClass != "" {
		note := ""
		if len(members) > 1 {
			note = fmt.Sprintf("class union narrowed to first member of %d", len(members))
		}
		return rangeResolution{IsObject: true, TargetIRI: firstClass, Note: note}
	}

	vt, rationale := r.reg.ResolveUnion(typemap.FormatXSD, datatypes)
	return rangeResolution{ValueType: vt, Note: rationale}
}

// resolveIntersection keeps only the first member. An intersection's true
// type is narrower than any member; the first member is the closest
// representable approximation.
func (r *exprResolver) resolveIntersection(list rdf2go.Term, depth int, visited map[string]bool) rangeResolution {
	members := r.listMembers(list)
	if len(members) == 0 {
		return rangeResolution{ValueType: types.ValueString, Note: "empty intersection, defaulted to String"}
	}
	res := r.resolve(members[0], depth+1, visited)
	if len(members) > 1 {
		extra := fmt.Sprintf("intersection narrowed to first of %d members", len(members))
		if res.Note != "" {
			res.Note += "; " + extra
		} else {
			res.Note = extra
		}
	}
	return res
}

// resolveEnumeration infers a type from the enumerated members: literals
// resolve through their datatypes, individuals stringify.
func (r *exprResolver) resolveEnumeration(list rdf2go.Term) rangeResolution {
	members := r.listMembers(list)
	if len(members) == 0 {
		return rangeResolution{ValueType: types.ValueString, Note: "empty enumeration, defaulted to String"}
	}

	var datatypes []string
	for _, m := range members {
		lit, ok := m.(*rdf2go.Literal)
		if !ok {
			// Enumerated individuals are stored by IRI string.
			return rangeResolution{ValueType: types.ValueString,
				Note: "enumeration of individuals stored as String"}
		}
		if lit.Datatype != nil {
			datatypes = append(datatypes, lit.Datatype.RawValue())
		} else {
			datatypes = append(datatypes, "string")
		}
	}
	vt, rationale := r.reg.ResolveUnion(typemap.FormatXSD, datatypes)
	return rangeResolution{ValueType: vt, Note: rationale}
}

// listMembers walks an rdf:first/rdf:rest list, bounded by maxListItems and
// a visited set so cyclic lists terminate.
func (r *exprResolver) listMembers(head rdf2go.Term) []rdf2go.Term {
	var members []rdf2go.Term
	seen := make(map[string]bool)

	current := head
	for i := 0; i < maxListItems; i++ {
		if current == nil || rawIRI(current) == RDFNil {
			break
		}
		key := current.String()
		if seen[key] {
			break
		}
		seen[key] = true

		first := r.g.One(current, rdf2go.NewResource(RDFFirst), nil)
		if first == nil {
			break
		}
		members = append(members, first.Object)

		rest := r.g.One(current, rdf2go.NewResource(RDFRest), nil)
		if rest == nil {
			break
		}
		current = rest.Object
	}
	return members
}

// rawIRI returns the raw IRI of a term, or "" for non-resources.
func rawIRI(t rdf2go.Term) string {
	if r, ok := t.(*rdf2go.Resource); ok {
		return r.RawValue()
	}
	return ""
}
