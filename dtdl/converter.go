package dtdl

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/c360studio/fabriconv/config"
	"github.com/c360studio/fabriconv/idgen"
	"github.com/c360studio/fabriconv/metric"
	"github.com/c360studio/fabriconv/naming"
	"github.com/c360studio/fabriconv/resolve"
	"github.com/c360studio/fabriconv/typemap"
	"github.com/c360studio/fabriconv/types"
)

// Converter converts parsed DTDL documents into conversion results.
type Converter struct {
	cfg     *config.Config
	ids     *idgen.Deterministic
	reg     *typemap.Registry
	log     *slog.Logger
	metrics *metric.Metrics
}

// New creates a DTDL converter.
func New(cfg *config.Config, log *slog.Logger) *Converter {
	if log == nil {
		log = slog.Default()
	}
	return &Converter{
		cfg: cfg,
		ids: idgen.NewDeterministic(cfg.IDPrefix),
		reg: typemap.NewRegistry(),
		log: log.With("component", "dtdl"),
	}
}

// WithMetrics attaches pipeline metrics.
func (c *Converter) WithMetrics(m *metric.Metrics) *Converter {
	c.metrics = m
	return c
}

// conversion carries per-run state so Converter itself stays reusable.
type conversion struct {
	*Converter
	result    *types.ConversionResult
	entityID  map[string]string // clean DTMI -> entity id
	ifaces    map[string]*Interface
	schemas   map[string]*ComplexSchema // reusable schema DTMI -> definition
	conflicts *resolve.ConflictResolver
	renames   int
}

// Convert compiles every valid interface of the document. Item-level
// failures become skipped items; Convert itself only fails on empty input.
func (c *Converter) Convert(doc *Document) (types.ConversionResult, error) {
	result := types.ConversionResult{
		RunID:          uuid.NewString(),
		InterfaceCount: len(doc.Interfaces),
	}

	valid, skipped := Validate(doc)
	result.SkippedItems = append(result.SkippedItems, skipped...)

	run := &conversion{
		Converter: c,
		result:    &result,
		entityID:  make(map[string]string, len(valid)),
		ifaces:    make(map[string]*Interface, len(valid)),
		schemas:   make(map[string]*ComplexSchema),
		conflicts: resolve.NewConflictResolver(),
	}
	for i := range valid {
		iface := &valid[i]
		clean := idgen.CleanDTMI(iface.ID)
		run.entityID[clean] = c.ids.EntityID(iface.ID)
		run.ifaces[clean] = iface
		for j := range iface.Schemas {
			if id := iface.Schemas[j].ID; id != "" {
				run.schemas[idgen.CleanDTMI(id)] = &iface.Schemas[j]
			}
		}
	}

	entities := make([]types.EntityType, 0, len(valid))
	for i := range valid {
		entities = run.convertInterface(&valid[i], entities)
	}

	result.Warnings = append(result.Warnings, resolve.BreakInheritanceCycles(entities)...)
	result.Warnings = append(result.Warnings, resolve.DropUnresolvedParents(entities)...)
	renameWarnings := resolve.ApplyInheritance(entities, idgen.PropertyID)
	result.Warnings = append(result.Warnings, renameWarnings...)
	run.renames += len(renameWarnings)
	resolve.Finalize(entities)
	result.EntityTypes = resolve.TopoSort(entities)

	if result.OntologyName == "" && len(valid) > 0 {
		result.OntologyName = valid[0].Name()
	}

	c.observe(&result, run.renames)
	c.log.Info("dtdl conversion complete",
		"run_id", result.RunID,
		"interfaces", result.InterfaceCount,
		"entity_types", len(result.EntityTypes),
		"relationship_types", len(result.RelationshipTypes),
		"skipped", len(result.SkippedItems))
	return result, nil
}

func (run *conversion) convertInterface(iface *Interface, entities []types.EntityType) []types.EntityType {
	clean := idgen.CleanDTMI(iface.ID)
	e := types.NewEntityType(run.entityID[clean], naming.SanitizeDTDL(iface.Name()))
	e.Namespace = run.cfg.Namespace

	// First resolvable parent wins; the rest are advisory.
	for _, parent := range iface.Extends {
		if pid, ok := run.entityID[idgen.CleanDTMI(parent)]; ok {
			e.BaseEntityTypeID = pid
			break
		}
		run.warnf("interface %s: parent %s not in this document, inheritance dropped", iface.ID, parent)
	}

	for i := range iface.Contents {
		content := &iface.Contents[i]
		switch content.Kind() {
		case "Property":
			run.convertProperty(&e, content, false)
		case "Telemetry":
			run.convertProperty(&e, content, true)
		case "Relationship":
			run.convertRelationship(iface, &e, content)
		case "Component":
			entities = run.convertComponent(iface, &e, content, entities)
		case "Command":
			entities = run.convertCommand(iface, &e, content, entities)
		}
	}

	return append(entities, e)
}

// convertProperty maps one Property or Telemetry content onto the entity.
// Telemetry lands in the timeseries list: it is observed data, not state.
func (run *conversion) convertProperty(e *types.EntityType, content *Content, telemetry bool) {
	if content.Schema != nil && content.Schema.Primitive == "scaledDecimal" &&
		run.cfg.ScaledDecimalMode == config.ScaledDecimalStructured {
		run.addScaledDecimalPair(e, content.Name)
		return
	}

	vt, note := run.resolveSchema(content.Schema, 0)
	if note != "" {
		run.warnf("property %s.%s: %s", e.Name, content.Name, note)
	}

	name, renamed := run.conflicts.Resolve(naming.SanitizeDTDL(content.Name), vt)
	if renamed {
		run.renames++
		run.warnf("property %s.%s: name already used at a different type, renamed to %q",
			e.Name, content.Name, name)
	}

	p := types.EntityTypeProperty{
		ID:        idgen.PropertyID(e.ID, name),
		Name:      name,
		ValueType: vt,
	}
	if telemetry {
		e.TimeseriesProperties = append(e.TimeseriesProperties, p)
	} else {
		e.Properties = append(e.Properties, p)
	}
}

// addScaledDecimalPair emits the structured form: mantissa and exponent as
// separate integral properties.
func (run *conversion) addScaledDecimalPair(e *types.EntityType, rawName string) {
	base := naming.SanitizeDTDL(rawName)
	for _, part := range []string{"mantissa", "exponent"} {
		name, _ := run.conflicts.Resolve(base+"_"+part, types.ValueBigInt)
		e.Properties = append(e.Properties, types.EntityTypeProperty{
			ID:        idgen.PropertyID(e.ID, name),
			Name:      name,
			ValueType: types.ValueBigInt,
		})
	}
}

func (run *conversion) convertRelationship(iface *Interface, e *types.EntityType, content *Content) {
	if content.Target == "" {
		run.skip("relationship", content.Name, "no target declared", iface.ID)
		return
	}
	targetID, ok := run.entityID[idgen.CleanDTMI(content.Target)]
	if !ok {
		run.skip("relationship", content.Name,
			fmt.Sprintf("target %s not in this document", content.Target), iface.ID)
		return
	}

	id := run.ids.ID(idgen.CleanDTMI(iface.ID) + "|rel|" + content.Name)
	r := types.NewRelationshipType(id, naming.SanitizeDTDL(content.Name), e.ID, targetID)
	r.Namespace = run.cfg.Namespace
	run.result.RelationshipTypes = append(run.result.RelationshipTypes, r)
}

func (run *conversion) convertComponent(iface *Interface, e *types.EntityType,
	content *Content, entities []types.EntityType) []types.EntityType {

	switch run.cfg.ComponentMode {
	case config.ComponentSkip:
		run.skip("component", content.Name, "component conversion disabled", iface.ID)
		return entities
	case config.ComponentSeparate:
		return run.convertComponentSeparate(iface, e, content, entities)
	}

	// Flatten: the component interface's own properties merge into the
	// owner, prefixed with the component name.
	comp, ok := run.ifaces[idgen.CleanDTMI(content.Schema.Primitive)]
	if !ok {
		run.skip("component", content.Name,
			fmt.Sprintf("component schema %s not in this document", content.Schema.Primitive), iface.ID)
		return entities
	}

	prefix := naming.SanitizeDTDL(content.Name)
	for i := range comp.Contents {
		inner := &comp.Contents[i]
		switch inner.Kind() {
		case "Property", "Telemetry":
			flattened := *inner
			flattened.Name = prefix + "_" + inner.Name
			run.convertProperty(e, &flattened, inner.Kind() == "Telemetry")
		case "Component":
			run.skip("component", content.Name+"."+inner.Name,
				"nested components do not flatten", comp.ID)
		}
	}
	return entities
}

// convertComponentSeparate links the owner to the component's entity type.
// A schema outside the document gets a stub entity keyed on a componentId
// property, so the relationship always has a resolvable target.
func (run *conversion) convertComponentSeparate(iface *Interface, e *types.EntityType,
	content *Content, entities []types.EntityType) []types.EntityType {

	cleanSchema := idgen.CleanDTMI(content.Schema.Primitive)
	targetID, ok := run.entityID[cleanSchema]
	if !ok {
		targetID = run.ids.EntityID(content.Schema.Primitive)
		stub := types.NewEntityType(targetID,
			naming.SanitizeDTDL(content.Name+"_"+lastDTMISegment(content.Schema.Primitive)))
		stub.Namespace = run.cfg.Namespace
		idProp := types.EntityTypeProperty{
			ID:        idgen.PropertyID(targetID, "componentId"),
			Name:      "componentId",
			ValueType: types.ValueString,
		}
		stub.Properties = []types.EntityTypeProperty{idProp}
		stub.EntityIDParts = []string{idProp.ID}

		// Later references to the same external schema reuse the stub.
		run.entityID[cleanSchema] = targetID
		entities = append(entities, stub)
		run.warnf("component %s: schema %s not in this document, stub entity created",
			content.Name, content.Schema.Primitive)
	}

	id := run.ids.ID(idgen.CleanDTMI(iface.ID) + "|comp|" + content.Name)
	r := types.NewRelationshipType(id, naming.SanitizeDTDL("has_"+content.Name), e.ID, targetID)
	r.Namespace = run.cfg.Namespace
	run.result.RelationshipTypes = append(run.result.RelationshipTypes, r)
	return entities
}

// convertCommand handles one command per the configured mode. Entity mode
// appends a new entity type for the command, so it returns the updated set.
func (run *conversion) convertCommand(iface *Interface, e *types.EntityType,
	content *Content, entities []types.EntityType) []types.EntityType {

	switch run.cfg.CommandMode {
	case config.CommandSkip:
		run.skip("command", content.Name, "command conversion disabled", iface.ID)
		return entities

	case config.CommandProperty:
		// The command collapses to a String property carrying its name;
		// invocation semantics have no target-side representation.
		name, _ := run.conflicts.Resolve(naming.SanitizeDTDL(content.Name), types.ValueString)
		e.Properties = append(e.Properties, types.EntityTypeProperty{
			ID:        idgen.PropertyID(e.ID, name),
			Name:      name,
			ValueType: types.ValueString,
		})
		return entities
	}

	// Entity mode: the command becomes its own entity type holding request
	// and response payloads, linked from the owning interface.
	cmdID := run.ids.ID(idgen.CleanDTMI(iface.ID) + "|cmd|" + content.Name)
	cmd := types.NewEntityType(cmdID, naming.SanitizeDTDL(iface.Name()+"_"+content.Name))
	cmd.Namespace = run.cfg.Namespace

	// The command name identifies the entity regardless of payload shape, so
	// it is always the key and the display label.
	nameProp := types.EntityTypeProperty{
		ID:        idgen.PropertyID(cmdID, "commandName"),
		Name:      "commandName",
		ValueType: types.ValueString,
	}
	cmd.Properties = append(cmd.Properties, nameProp)
	cmd.EntityIDParts = []string{nameProp.ID}
	cmd.DisplayNamePropertyID = nameProp.ID

	payloads := []struct {
		payload    *CommandPayload
		schemaProp string
	}{
		{content.Request, "requestSchema"},
		{content.Response, "responseSchema"},
	}
	for _, pl := range payloads {
		if pl.payload == nil {
			continue
		}
		// The full payload schema lands in a JSON string property next to
		// the individual parameter properties.
		cmd.Properties = append(cmd.Properties, types.EntityTypeProperty{
			ID:        idgen.PropertyID(cmdID, pl.schemaProp),
			Name:      pl.schemaProp,
			ValueType: types.ValueString,
		})
		if pl.payload.Name == "" {
			continue
		}
		vt, note := run.resolveSchema(pl.payload.Schema, 0)
		if note != "" {
			run.warnf("command %s.%s payload %s: %s", e.Name, content.Name, pl.payload.Name, note)
		}
		name, _ := run.conflicts.Resolve(naming.SanitizeDTDL(pl.payload.Name), vt)
		cmd.Properties = append(cmd.Properties, types.EntityTypeProperty{
			ID:        idgen.PropertyID(cmdID, name),
			Name:      name,
			ValueType: vt,
		})
	}

	relID := run.ids.ID(idgen.CleanDTMI(iface.ID) + "|cmdrel|" + content.Name)
	r := types.NewRelationshipType(relID, naming.SanitizeDTDL("supports_"+content.Name), e.ID, cmdID)
	r.Namespace = run.cfg.Namespace
	run.result.RelationshipTypes = append(run.result.RelationshipTypes, r)

	return append(entities, cmd)
}

// resolveSchema maps a schema onto a value type. Complex schemas that the
// target model cannot represent serialize as JSON strings.
func (run *conversion) resolveSchema(s *Schema, depth int) (types.ValueType, string) {
	if s.IsZero() {
		return types.ValueString, "no schema declared, defaulted to String"
	}
	if depth > 10 {
		return types.ValueString, "schema nesting too deep, defaulted to String"
	}

	if s.Primitive != "" {
		if s.Primitive == "scaledDecimal" {
			switch run.cfg.ScaledDecimalMode {
			case config.ScaledDecimalCalculated:
				return types.ValueDouble, "scaledDecimal computed into Double, precision may be lost"
			default:
				return types.ValueString, "scaledDecimal kept as JSON string"
			}
		}
		if ref, ok := run.schemas[idgen.CleanDTMI(s.Primitive)]; ok {
			return run.resolveComplex(ref, depth+1)
		}
		m, known := run.reg.Resolve(typemap.FormatDTDL, s.Primitive)
		if !known {
			return m.Target, m.Note
		}
		if m.PrecisionLoss {
			return m.Target, m.Note
		}
		return m.Target, ""
	}
	return run.resolveComplex(s.Complex, depth+1)
}

func (run *conversion) resolveComplex(cs *ComplexSchema, depth int) (types.ValueType, string) {
	if depth > 10 {
		return types.ValueString, "schema nesting too deep, defaulted to String"
	}
	switch cs.Kind() {
	case "Enum":
		if cs.ValueSchema != nil {
			vt, _ := run.resolveSchema(cs.ValueSchema, depth+1)
			return vt, ""
		}
		return types.ValueBigInt, "enum without valueSchema assumed integral"
	case "Object", "Map", "Array":
		return types.ValueString, fmt.Sprintf("%s schema serialized as JSON string", cs.Kind())
	default:
		return types.ValueString, fmt.Sprintf("unrecognized schema class %q, defaulted to String", cs.Kind())
	}
}

func (run *conversion) skip(kind, name, reason, source string) {
	run.result.SkippedItems = append(run.result.SkippedItems, types.SkippedItem{
		Kind:   kind,
		Name:   name,
		Reason: reason,
		Source: source,
	})
}

func (run *conversion) warnf(format string, args ...any) {
	run.result.Warnings = append(run.result.Warnings, fmt.Sprintf(format, args...))
}

func (c *Converter) observe(result *types.ConversionResult, renames int) {
	if c.metrics == nil {
		return
	}
	c.metrics.EntityTypesEmitted.WithLabelValues("dtdl").Add(float64(len(result.EntityTypes)))
	c.metrics.RelationshipTypesEmitted.WithLabelValues("dtdl").Add(float64(len(result.RelationshipTypes)))
	c.metrics.PropertiesRenamed.WithLabelValues("dtdl").Add(float64(renames))
	for _, item := range result.SkippedItems {
		c.metrics.ItemsSkipped.WithLabelValues("dtdl", item.Kind).Inc()
	}
}
