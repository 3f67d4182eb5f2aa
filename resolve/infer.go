package resolve

import (
	"strings"

	"github.com/c360studio/fabriconv/types"
)

// InferKeyParts picks the properties that identify an entity instance.
// Preference order: the first key-typed property whose name contains "id",
// then the first key-typed property of any name. Entities with no key-typed
// property get no key parts; the target system treats them as keyless.
func InferKeyParts(props []types.EntityTypeProperty) []string {
	for _, p := range props {
		if p.ValueType.IsKeyType() && strings.Contains(strings.ToLower(p.Name), "id") {
			return []string{p.ID}
		}
	}
	for _, p := range props {
		if p.ValueType.IsKeyType() {
			return []string{p.ID}
		}
	}
	return nil
}

// InferDisplayName picks the property shown as an instance label: the first
// String property whose name contains "name", falling back to the first key
// part. Returns "" when neither exists.
func InferDisplayName(props []types.EntityTypeProperty, keyParts []string) string {
	for _, p := range props {
		if p.ValueType == types.ValueString && strings.Contains(strings.ToLower(p.Name), "name") {
			return p.ID
		}
	}
	if len(keyParts) > 0 {
		return keyParts[0]
	}
	return ""
}

// IsTimeseries reports whether a property carries time-stamped measurement
// data and belongs in the timeseries property list instead of the static
// one. Only DateTime-adjacent observation names qualify.
func IsTimeseries(p types.EntityTypeProperty) bool {
	if p.ValueType != types.ValueDateTime {
		return false
	}
	return strings.Contains(strings.ToLower(p.Name), "timestamp")
}

// SplitTimeseries partitions properties into static and timeseries lists,
// preserving relative order within each.
func SplitTimeseries(props []types.EntityTypeProperty) (static, timeseries []types.EntityTypeProperty) {
	for _, p := range props {
		if IsTimeseries(p) {
			timeseries = append(timeseries, p)
		} else {
			static = append(static, p)
		}
	}
	return static, timeseries
}

// Finalize runs the inference passes over every entity: timeseries split,
// key parts, display name. Converters call this once after conflict
// resolution so inference sees final property names and ids. Keys and
// display names set explicitly by a converter are kept as-is.
func Finalize(entities []types.EntityType) {
	for i := range entities {
		e := &entities[i]
		static, timeseries := SplitTimeseries(e.Properties)
		e.Properties = static
		e.TimeseriesProperties = append(e.TimeseriesProperties, timeseries...)
		if len(e.EntityIDParts) == 0 {
			e.EntityIDParts = InferKeyParts(e.Properties)
		}
		if e.DisplayNamePropertyID == "" {
			e.DisplayNamePropertyID = InferDisplayName(e.Properties, e.EntityIDParts)
		}
	}
}
