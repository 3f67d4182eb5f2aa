// Package dtdl is the interface-definition front-end: it parses DTDL-style
// JSON documents (v2, v3 and v4 contexts) and converts interfaces into
// entity and relationship types. Unlike the RDF front-end, ids derive
// deterministically from interface identifiers, so recompiling an unchanged
// document reproduces identical output.
package dtdl

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// StringList accepts a JSON string or array of strings. Non-string array
// entries are ignored.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringList{single}
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("expected string or array: %w", err)
	}
	out := make(StringList, 0, len(raw))
	for _, r := range raw {
		var v string
		if err := json.Unmarshal(r, &v); err == nil {
			out = append(out, v)
		}
	}
	*s = out
	return nil
}

// Contains reports whether the list holds the given value.
func (s StringList) Contains(v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// First returns the first value, or "".
func (s StringList) First() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// LocalizedString accepts a plain JSON string or a localization map. Value
// prefers the "en" entry, then the lexicographically first language.
type LocalizedString struct {
	byLang map[string]string
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *LocalizedString) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		l.byLang = map[string]string{"": single}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("expected string or localization map: %w", err)
	}
	l.byLang = m
	return nil
}

// Value returns the preferred localization.
func (l LocalizedString) Value() string {
	if len(l.byLang) == 0 {
		return ""
	}
	if v, ok := l.byLang[""]; ok {
		return v
	}
	if v, ok := l.byLang["en"]; ok {
		return v
	}
	langs := make([]string, 0, len(l.byLang))
	for k := range l.byLang {
		langs = append(langs, k)
	}
	sort.Strings(langs)
	return l.byLang[langs[0]]
}

// Schema is a sum type: either a primitive (or schema reference) name, or an
// inline complex schema.
type Schema struct {
	// Primitive holds the schema string form: a primitive name such as
	// "double", or a DTMI referencing a reusable schema.
	Primitive string

	// Complex holds the inline object form.
	Complex *ComplexSchema
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var prim string
	if err := json.Unmarshal(data, &prim); err == nil {
		s.Primitive = prim
		return nil
	}
	var obj ComplexSchema
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("expected schema name or object: %w", err)
	}
	s.Complex = &obj
	return nil
}

// IsZero reports whether no schema was given.
func (s *Schema) IsZero() bool {
	return s == nil || (s.Primitive == "" && s.Complex == nil)
}

// ComplexSchema is an inline Enum, Object, Array or Map definition.
type ComplexSchema struct {
	ID            string      `json:"@id,omitempty"`
	Type          StringList  `json:"@type"`
	ValueSchema   *Schema     `json:"valueSchema,omitempty"`
	EnumValues    []EnumValue `json:"enumValues,omitempty"`
	Fields        []Field     `json:"fields,omitempty"`
	ElementSchema *Schema     `json:"elementSchema,omitempty"`
	MapKey        *MapKey     `json:"mapKey,omitempty"`
	MapValue      *MapValue   `json:"mapValue,omitempty"`
}

// Kind returns the complex schema class: Enum, Object, Array or Map.
func (cs *ComplexSchema) Kind() string {
	for _, t := range cs.Type {
		switch t {
		case "Enum", "Object", "Array", "Map":
			return t
		}
	}
	return cs.Type.First()
}

// EnumValue is one member of an Enum schema.
type EnumValue struct {
	Name        string          `json:"name"`
	EnumValue   json.RawMessage `json:"enumValue"`
	DisplayName LocalizedString `json:"displayName,omitempty"`
}

// Field is one member of an Object schema.
type Field struct {
	Name   string  `json:"name"`
	Schema *Schema `json:"schema"`
}

// MapKey describes a Map schema's key.
type MapKey struct {
	Name   string  `json:"name"`
	Schema *Schema `json:"schema,omitempty"`
}

// MapValue describes a Map schema's value.
type MapValue struct {
	Name   string  `json:"name"`
	Schema *Schema `json:"schema"`
}

// CommandPayload is a command request or response declaration.
type CommandPayload struct {
	Name   string  `json:"name"`
	Schema *Schema `json:"schema,omitempty"`
}

// Content is one entry of an interface's contents array. The @type
// discriminates: Property, Telemetry, Relationship, Component or Command.
type Content struct {
	Type        StringList      `json:"@type"`
	ID          string          `json:"@id,omitempty"`
	Name        string          `json:"name"`
	DisplayName LocalizedString `json:"displayName,omitempty"`
	Schema      *Schema         `json:"schema,omitempty"`
	Writable    bool            `json:"writable,omitempty"`

	// Relationship fields.
	Target          string `json:"target,omitempty"`
	MaxMultiplicity int    `json:"maxMultiplicity,omitempty"`
	MinMultiplicity int    `json:"minMultiplicity,omitempty"`

	// Command fields.
	Request  *CommandPayload `json:"request,omitempty"`
	Response *CommandPayload `json:"response,omitempty"`
}

// Kind returns the content class, or "" when unrecognized.
func (c *Content) Kind() string {
	for _, t := range c.Type {
		switch t {
		case "Property", "Telemetry", "Relationship", "Component", "Command":
			return t
		}
	}
	return ""
}

// Interface is a single DTDL interface definition.
type Interface struct {
	Context     StringList      `json:"@context,omitempty"`
	ID          string          `json:"@id"`
	Type        StringList      `json:"@type"`
	DisplayName LocalizedString `json:"displayName,omitempty"`
	Description LocalizedString `json:"description,omitempty"`
	Comment     string          `json:"comment,omitempty"`
	Extends     StringList      `json:"extends,omitempty"`
	Contents    []Content       `json:"contents,omitempty"`
	Schemas     []ComplexSchema `json:"schemas,omitempty"`
}

// Name returns the interface's display name, falling back to the last DTMI
// path segment.
func (i *Interface) Name() string {
	if v := i.DisplayName.Value(); v != "" {
		return v
	}
	return lastDTMISegment(i.ID)
}
