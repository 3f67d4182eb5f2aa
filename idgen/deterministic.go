package idgen

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"
)

// Deterministic derives ids by hashing cleaned source identifiers, so the
// same interface document always compiles to the same ids regardless of
// processing order or prior runs.
type Deterministic struct {
	prefix uint64
}

// NewDeterministic creates a deterministic generator. A zero prefix selects
// DefaultPrefix.
func NewDeterministic(prefix uint64) *Deterministic {
	if prefix == 0 {
		prefix = DefaultPrefix
	}
	return &Deterministic{prefix: prefix}
}

// CleanDTMI normalizes a DTMI for hashing: the "dtmi:" scheme prefix and
// the ";version" suffix are stripped, so versions of the same interface map
// to the same id.
func CleanDTMI(dtmi string) string {
	s := strings.TrimPrefix(dtmi, "dtmi:")
	if i := strings.LastIndex(s, ";"); i >= 0 {
		s = s[:i]
	}
	return s
}

// ID derives a 13-digit id from an arbitrary key: the prefix plus a
// 12-digit hash, keeping hash-derived ids in the same numeric space as
// counter-generated ones.
func (d *Deterministic) ID(key string) string {
	h := xxh3.HashString(key) % 1_000_000_000_000
	return fmt.Sprintf("%d", d.prefix+h)
}

// EntityID derives an entity id from a DTMI, version-independent.
func (d *Deterministic) EntityID(dtmi string) string {
	return d.ID(CleanDTMI(dtmi))
}

// PropertyID derives a property id from the owning entity id and the
// resolved property name. The suffix is a 4-digit hash of the name, so a
// property keeps its id as long as its name and owner are unchanged.
func PropertyID(entityID, name string) string {
	h := xxh3.HashString(name) % 10_000
	return fmt.Sprintf("%s%04d", entityID, h)
}
