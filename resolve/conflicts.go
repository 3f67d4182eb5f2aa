package resolve

import (
	"fmt"
	"strings"

	"github.com/c360studio/fabriconv/types"
)

// ConflictResolver tracks property names across a whole compilation and
// renames reuses that disagree on value type. The first occurrence of a name
// claims its type; later properties with the same name but a different type
// get the type suffix appended ("status" reused as BigInt becomes
// "status_bigint"). Same-name same-type reuse is allowed untouched.
type ConflictResolver struct {
	claimed map[string]types.ValueType
}

// NewConflictResolver creates an empty resolver.
func NewConflictResolver() *ConflictResolver {
	return &ConflictResolver{claimed: make(map[string]types.ValueType)}
}

// Resolve returns the final name for a property and whether it was renamed.
func (cr *ConflictResolver) Resolve(name string, vt types.ValueType) (string, bool) {
	existing, ok := cr.claimed[name]
	if !ok {
		cr.claimed[name] = vt
		return name, false
	}
	if existing == vt {
		return name, false
	}

	renamed := name + "_" + vt.Suffix()
	if prior, ok := cr.claimed[renamed]; ok && prior != vt {
		// Suffixed name already claimed at yet another type; disambiguate
		// numerically. Extremely rare in practice.
		for i := 2; ; i++ {
			candidate := fmt.Sprintf("%s_%d", renamed, i)
			if prior, ok := cr.claimed[candidate]; !ok || prior == vt {
				renamed = candidate
				break
			}
		}
	}
	cr.claimed[renamed] = vt
	return renamed, true
}

// ApplyInheritance reconciles each entity's properties against its ancestor
// chain. A child property matching an ancestor property by name and type is
// marked as redefining it; a name match with a different type is renamed
// with the type suffix. Renamed properties get fresh ids from propertyID so
// ids stay derived from final names. Returns one warning per rename.
func ApplyInheritance(entities []types.EntityType, propertyID func(entityID, name string) string) []string {
	byID := make(map[string]*types.EntityType, len(entities))
	for i := range entities {
		byID[entities[i].ID] = &entities[i]
	}

	var warnings []string
	for i := range entities {
		e := &entities[i]

		// Ancestor properties by name, nearest ancestor winning.
		ancestorProps := make(map[string]*types.EntityTypeProperty)
		for _, ancestorID := range ParentChain(e.ID, byID) {
			ancestor := byID[ancestorID]
			for j := range ancestor.Properties {
				p := &ancestor.Properties[j]
				if _, ok := ancestorProps[p.Name]; !ok {
					ancestorProps[p.Name] = p
				}
			}
		}

		for j := range e.Properties {
			p := &e.Properties[j]
			inherited, ok := ancestorProps[p.Name]
			if !ok {
				continue
			}
			if inherited.ValueType == p.ValueType {
				p.Redefines = inherited.ID
				continue
			}
			oldName := p.Name
			p.Name = p.Name + "_" + p.ValueType.Suffix()
			p.ID = propertyID(e.ID, p.Name)
			warnings = append(warnings, fmt.Sprintf(
				"entity type %q: property %q conflicts with inherited %s property, renamed to %q",
				e.Name, oldName, strings.ToLower(inherited.ValueType.String()), p.Name))
		}
	}
	return warnings
}
