package types

import "github.com/goccy/go-json"

// ValueType represents the value type of an entity type property in the
// target ontology model. The set is closed: every source type, however
// exotic, maps onto one of these five.
type ValueType string

const (
	// ValueString is the catch-all type; unmapped source types land here.
	ValueString ValueType = "String"

	// ValueBoolean holds true/false values.
	ValueBoolean ValueType = "Boolean"

	// ValueDateTime holds date and timestamp values. Time-of-day-only and
	// duration source types are stored as String instead because the target
	// model has no representation for them.
	ValueDateTime ValueType = "DateTime"

	// ValueBigInt holds integral values of any source width.
	ValueBigInt ValueType = "BigInt"

	// ValueDouble holds floating point values. Source decimal types map here
	// with possible precision loss.
	ValueDouble ValueType = "Double"
)

// String returns the string representation of the ValueType.
func (vt ValueType) String() string {
	return string(vt)
}

// IsValid checks if the ValueType is one of the defined constants.
func (vt ValueType) IsValid() bool {
	switch vt {
	case ValueString, ValueBoolean, ValueDateTime, ValueBigInt, ValueDouble:
		return true
	default:
		return false
	}
}

// IsKeyType reports whether properties of this type may participate in an
// entity key. Only String and BigInt are accepted by the target system.
func (vt ValueType) IsKeyType() bool {
	return vt == ValueString || vt == ValueBigInt
}

// Suffix returns the lower-cased type name used when renaming conflicting
// properties (e.g. "status" colliding across types becomes "status_bigint").
func (vt ValueType) Suffix() string {
	switch vt {
	case ValueBoolean:
		return "boolean"
	case ValueDateTime:
		return "datetime"
	case ValueBigInt:
		return "bigint"
	case ValueDouble:
		return "double"
	default:
		return "string"
	}
}

// MarshalJSON implements json.Marshaler to ensure ValueType serializes as a
// plain string.
func (vt ValueType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(vt))
}

// UnmarshalJSON implements json.Unmarshaler.
func (vt *ValueType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*vt = ValueType(s)
	return nil
}
