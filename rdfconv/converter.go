// Package rdfconv is the RDF front-end: it extracts entity types,
// properties and relationships from a parsed RDF graph. Class expressions
// resolve through bounded traversal, property ranges map through the
// datatype registry, and all ids come from the sequential generator since
// RDF documents carry no stable intrinsic identifier.
package rdfconv

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/deiu/rdf2go"
	"github.com/google/uuid"

	"github.com/c360studio/fabriconv/config"
	"github.com/c360studio/fabriconv/idgen"
	"github.com/c360studio/fabriconv/metric"
	"github.com/c360studio/fabriconv/naming"
	"github.com/c360studio/fabriconv/resolve"
	"github.com/c360studio/fabriconv/typemap"
	"github.com/c360studio/fabriconv/types"
)

// propertyKind classifies a property declaration found in the graph.
type propertyKind int

const (
	kindData propertyKind = iota
	kindObject
	kindPlain // rdf:Property, promoted by range shape
	kindAnnotation
)

// Converter converts parsed RDF graphs into conversion results.
type Converter struct {
	cfg     *config.Config
	gen     *idgen.Generator
	reg     *typemap.Registry
	log     *slog.Logger
	metrics *metric.Metrics
}

// New creates an RDF converter. The generator may be shared across
// documents so ids never collide within one compilation.
func New(cfg *config.Config, gen *idgen.Generator, log *slog.Logger) *Converter {
	if log == nil {
		log = slog.Default()
	}
	return &Converter{
		cfg: cfg,
		gen: gen,
		reg: typemap.NewRegistry(),
		log: log.With("component", "rdfconv"),
	}
}

// WithMetrics attaches pipeline metrics.
func (c *Converter) WithMetrics(m *metric.Metrics) *Converter {
	c.metrics = m
	return c
}

// Convert extracts all entity and relationship types from the graph. Item
// level failures become skipped items; only document-level problems return
// an error.
func (c *Converter) Convert(g *rdf2go.Graph) (types.ConversionResult, error) {
	result := types.ConversionResult{
		RunID:       uuid.NewString(),
		TripleCount: g.Len(),
	}
	result.OntologyName = c.extractOntologyName(g)

	classIRIs := c.collectClasses(g)
	resolver := &exprResolver{g: g, reg: c.reg, namedClasses: make(map[string]bool, len(classIRIs))}
	for _, iri := range classIRIs {
		resolver.namedClasses[iri] = true
	}

	// Entity per named class. IRIs are sorted so counter ids assign in a
	// stable order run to run.
	entityID := make(map[string]string, len(classIRIs))
	var entities []types.EntityType
	for _, iri := range classIRIs {
		id := c.gen.NextFor("entity")
		entityID[iri] = id
		e := types.NewEntityType(id, naming.SanitizeRDF(naming.LocalName(iri)))
		e.Namespace = c.cfg.Namespace
		entities = append(entities, e)
	}

	// Parent wiring: the first named parent wins, expression parents are
	// advisory only and ignored here.
	for i, iri := range classIRIs {
		for _, t := range g.All(rdf2go.NewResource(iri), rdf2go.NewResource(RDFSSubClassOf), nil) {
			parent := rawIRI(t.Object)
			if parent == "" || parent == OWLThing {
				continue
			}
			if pid, ok := entityID[parent]; ok {
				entities[i].BaseEntityTypeID = pid
				break
			}
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"class %s: parent %s not defined in this document, inheritance dropped",
				entities[i].Name, parent))
		}
	}

	byIRI := make(map[string]*types.EntityType, len(entities))
	for i, iri := range classIRIs {
		byIRI[iri] = &entities[i]
	}

	conflicts := resolve.NewConflictResolver()
	props := c.collectProperties(g)
	for _, p := range props {
		switch p.kind {
		case kindAnnotation:
			continue
		case kindObject:
			c.convertObjectProperty(g, resolver, p.iri, entityID, &result)
		case kindData:
			c.convertDataProperty(g, resolver, conflicts, p.iri, byIRI, &result)
		case kindPlain:
			// Promote by range shape: a class range makes it a relationship.
			res := resolver.resolveRange(rangeTerm(g, p.iri))
			if res.IsObject {
				c.convertObjectProperty(g, resolver, p.iri, entityID, &result)
			} else {
				c.convertDataProperty(g, resolver, conflicts, p.iri, byIRI, &result)
			}
		}
	}

	result.Warnings = append(result.Warnings, resolve.BreakInheritanceCycles(entities)...)
	result.Warnings = append(result.Warnings, resolve.DropUnresolvedParents(entities)...)
	renames := resolve.ApplyInheritance(entities, idgen.PropertyID)
	result.Warnings = append(result.Warnings, renames...)
	resolve.Finalize(entities)
	result.EntityTypes = resolve.TopoSort(entities)

	c.observe(&result, len(renames))
	c.log.Info("rdf conversion complete",
		"run_id", result.RunID,
		"triples", result.TripleCount,
		"entity_types", len(result.EntityTypes),
		"relationship_types", len(result.RelationshipTypes),
		"skipped", len(result.SkippedItems))
	return result, nil
}

// extractOntologyName reads the document's self-declared name, when any.
func (c *Converter) extractOntologyName(g *rdf2go.Graph) string {
	header := g.One(nil, rdf2go.NewResource(RDFType), rdf2go.NewResource(OWLOntology))
	if header == nil {
		return ""
	}
	label := g.One(header.Subject, rdf2go.NewResource(RDFSLabel), nil)
	if label == nil {
		return naming.LocalName(rawIRI(header.Subject))
	}
	return label.Object.RawValue()
}

// collectClasses gathers every named class: explicit owl:Class and
// rdfs:Class declarations plus anything used as a subject or named object of
// rdfs:subClassOf. Blank-node classes stay anonymous and only participate in
// expressions.
func (c *Converter) collectClasses(g *rdf2go.Graph) []string {
	seen := make(map[string]bool)
	add := func(t rdf2go.Term) {
		if iri := rawIRI(t); iri != "" && iri != OWLThing {
			seen[iri] = true
		}
	}

	for _, t := range g.All(nil, rdf2go.NewResource(RDFType), rdf2go.NewResource(OWLClass)) {
		add(t.Subject)
	}
	for _, t := range g.All(nil, rdf2go.NewResource(RDFType), rdf2go.NewResource(RDFSClass)) {
		add(t.Subject)
	}
	for _, t := range g.All(nil, rdf2go.NewResource(RDFSSubClassOf), nil) {
		add(t.Subject)
		add(t.Object)
	}

	out := make([]string, 0, len(seen))
	for iri := range seen {
		out = append(out, iri)
	}
	sort.Strings(out)
	return out
}

type propertyDecl struct {
	iri  string
	kind propertyKind
}

// collectProperties gathers property declarations, sorted by IRI. A subject
// declared under several property classes takes the most specific kind.
func (c *Converter) collectProperties(g *rdf2go.Graph) []propertyDecl {
	kinds := make(map[string]propertyKind)
	collect := func(class string, kind propertyKind) {
		for _, t := range g.All(nil, rdf2go.NewResource(RDFType), rdf2go.NewResource(class)) {
			iri := rawIRI(t.Subject)
			if iri == "" {
				continue
			}
			if existing, ok := kinds[iri]; !ok || existing == kindPlain {
				kinds[iri] = kind
			}
		}
	}

	// Plain rdf:Property first so specific OWL kinds override it.
	collect(RDFProperty, kindPlain)
	collect(OWLAnnotationProperty, kindAnnotation)
	collect(OWLDatatypeProperty, kindData)
	collect(OWLObjectProperty, kindObject)

	out := make([]propertyDecl, 0, len(kinds))
	for iri, kind := range kinds {
		out = append(out, propertyDecl{iri: iri, kind: kind})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].iri < out[j].iri })
	return out
}

// convertDataProperty attaches a typed property to every domain class.
func (c *Converter) convertDataProperty(g *rdf2go.Graph, resolver *exprResolver,
	conflicts *resolve.ConflictResolver, propIRI string,
	byIRI map[string]*types.EntityType, result *types.ConversionResult) {

	var res rangeResolution
	if rt := rangeTerm(g, propIRI); rt != nil {
		res = resolver.resolveRange(rt)
		if res.IsObject {
			// Declared as a datatype property but ranging over a class;
			// treat the IRI value as a string rather than dropping the
			// property.
			res = rangeResolution{ValueType: types.ValueString,
				Note: fmt.Sprintf("datatype property %s ranges over a class, values stored as String", propIRI)}
		}
	} else if vt, note, ok := c.inferRangeFromUsage(g, propIRI); ok {
		// No declared range; infer from how the property is used.
		res = rangeResolution{ValueType: vt, Note: note}
	} else {
		res = rangeResolution{ValueType: types.ValueString, Note: "no range declared, defaulted to String"}
	}
	if res.Note != "" {
		result.Warnings = append(result.Warnings, fmt.Sprintf("property %s: %s", propIRI, res.Note))
	}

	domains := c.domainEntities(g, resolver, propIRI, byIRI)
	if len(domains) == 0 {
		result.SkippedItems = append(result.SkippedItems, types.SkippedItem{
			Kind:   "property",
			Name:   naming.LocalName(propIRI),
			Reason: "no domain class declared or inferable",
			Source: propIRI,
		})
		return
	}

	rawName := naming.SanitizeRDF(naming.LocalName(propIRI))
	name, renamed := conflicts.Resolve(rawName, res.ValueType)
	if renamed {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"property %s: name %q already used at a different type, renamed to %q", propIRI, rawName, name))
	}

	for _, e := range domains {
		e.Properties = append(e.Properties, types.EntityTypeProperty{
			ID:        idgen.PropertyID(e.ID, name),
			Name:      name,
			ValueType: res.ValueType,
		})
	}
}

// convertObjectProperty emits a relationship for every domain/target pair.
func (c *Converter) convertObjectProperty(g *rdf2go.Graph, resolver *exprResolver,
	propIRI string, entityID map[string]string, result *types.ConversionResult) {

	name := naming.SanitizeRDF(naming.LocalName(propIRI))

	res := resolver.resolveRange(rangeTerm(g, propIRI))
	if res.Note != "" {
		result.Warnings = append(result.Warnings, fmt.Sprintf("property %s: %s", propIRI, res.Note))
	}
	if !res.IsObject {
		result.SkippedItems = append(result.SkippedItems, types.SkippedItem{
			Kind:   "relationship",
			Name:   name,
			Reason: "target class missing or not resolvable",
			Source: propIRI,
		})
		return
	}
	targetID, ok := entityID[res.TargetIRI]
	if !ok {
		result.SkippedItems = append(result.SkippedItems, types.SkippedItem{
			Kind:   "relationship",
			Name:   name,
			Reason: fmt.Sprintf("target class %s not defined in this document", res.TargetIRI),
			Source: propIRI,
		})
		return
	}

	domains := c.domainIRIs(g, resolver, propIRI)
	var sourceIDs []string
	for _, d := range domains {
		if id, ok := entityID[d]; ok {
			sourceIDs = append(sourceIDs, id)
		}
	}
	if len(sourceIDs) == 0 {
		result.SkippedItems = append(result.SkippedItems, types.SkippedItem{
			Kind:   "relationship",
			Name:   name,
			Reason: "no source class declared or inferable",
			Source: propIRI,
		})
		return
	}

	for _, sourceID := range sourceIDs {
		r := types.NewRelationshipType(c.gen.NextFor("relationship"), name, sourceID, targetID)
		r.Namespace = c.cfg.Namespace
		result.RelationshipTypes = append(result.RelationshipTypes, r)
	}
}

// domainEntities resolves a property's domain classes to entity pointers.
func (c *Converter) domainEntities(g *rdf2go.Graph, resolver *exprResolver,
	propIRI string, byIRI map[string]*types.EntityType) []*types.EntityType {

	var out []*types.EntityType
	for _, iri := range c.domainIRIs(g, resolver, propIRI) {
		if e, ok := byIRI[iri]; ok {
			out = append(out, e)
		}
	}
	return out
}

// domainIRIs collects a property's domain class IRIs, expanding union
// domains into their members and falling back to usage-based inference when
// no domain is declared.
func (c *Converter) domainIRIs(g *rdf2go.Graph, resolver *exprResolver, propIRI string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(iri string) {
		if iri != "" && !seen[iri] {
			seen[iri] = true
			out = append(out, iri)
		}
	}

	for _, t := range g.All(rdf2go.NewResource(propIRI), rdf2go.NewResource(RDFSDomain), nil) {
		if iri := rawIRI(t.Object); iri != "" {
			add(iri)
			continue
		}
		// Blank-node domain: a union expression contributes every member.
		if u := g.One(t.Object, rdf2go.NewResource(OWLUnionOf), nil); u != nil {
			for _, m := range resolver.listMembers(u.Object) {
				add(rawIRI(m))
			}
		}
	}
	if len(out) > 0 {
		sort.Strings(out)
		return out
	}

	// Usage-based inference: the declared types of subjects that actually
	// use the property.
	for _, t := range g.All(nil, rdf2go.NewResource(propIRI), nil) {
		for _, ty := range g.All(t.Subject, rdf2go.NewResource(RDFType), nil) {
			if iri := rawIRI(ty.Object); resolver.namedClasses[iri] {
				add(iri)
			}
		}
	}
	sort.Strings(out)
	return out
}

// inferRangeFromUsage derives a value type from the datatypes of literal
// values observed for the property.
func (c *Converter) inferRangeFromUsage(g *rdf2go.Graph, propIRI string) (types.ValueType, string, bool) {
	var datatypes []string
	for _, t := range g.All(nil, rdf2go.NewResource(propIRI), nil) {
		lit, ok := t.Object.(*rdf2go.Literal)
		if !ok {
			continue
		}
		if lit.Datatype != nil {
			datatypes = append(datatypes, lit.Datatype.RawValue())
		} else {
			datatypes = append(datatypes, "string")
		}
	}
	if len(datatypes) == 0 {
		return types.ValueString, "", false
	}
	vt, rationale := c.reg.ResolveUnion(typemap.FormatXSD, datatypes)
	return vt, "range inferred from usage: " + rationale, true
}

// rangeTerm returns the declared rdfs:range term of a property, or nil.
func rangeTerm(g *rdf2go.Graph, propIRI string) rdf2go.Term {
	if t := g.One(rdf2go.NewResource(propIRI), rdf2go.NewResource(RDFSRange), nil); t != nil {
		return t.Object
	}
	return nil
}

func (c *Converter) observe(result *types.ConversionResult, renames int) {
	if c.metrics == nil {
		return
	}
	c.metrics.TriplesParsed.Add(float64(result.TripleCount))
	c.metrics.EntityTypesEmitted.WithLabelValues("rdf").Add(float64(len(result.EntityTypes)))
	c.metrics.RelationshipTypesEmitted.WithLabelValues("rdf").Add(float64(len(result.RelationshipTypes)))
	c.metrics.PropertiesRenamed.WithLabelValues("rdf").Add(float64(renames))
	for _, item := range result.SkippedItems {
		c.metrics.ItemsSkipped.WithLabelValues("rdf", item.Kind).Inc()
	}
}
