// Package validate inspects finished conversion results against target
// platform limits and referential rules. Findings are advisory warnings:
// conversion already enforced the hard invariants, these flag output the
// target may still reject or degrade.
package validate

import (
	"fmt"

	"github.com/c360studio/fabriconv/idgen"
	"github.com/c360studio/fabriconv/types"
)

// Limits holds the target platform's documented size limits.
type Limits struct {
	MaxEntityTypes         int
	MaxRelationshipTypes   int
	MaxPropertiesPerEntity int
}

// DefaultLimits returns the published platform limits.
func DefaultLimits() Limits {
	return Limits{
		MaxEntityTypes:         1000,
		MaxRelationshipTypes:   1000,
		MaxPropertiesPerEntity: 100,
	}
}

// Checker validates results against limits and reference rules. It
// implements types.ComplianceChecker.
type Checker struct {
	Limits Limits
}

// NewChecker creates a checker with the default limits.
func NewChecker() *Checker {
	return &Checker{Limits: DefaultLimits()}
}

// Check returns advisory warnings for the result.
func (c *Checker) Check(result *types.ConversionResult) []string {
	var warnings []string

	if n := len(result.EntityTypes); n > c.Limits.MaxEntityTypes {
		warnings = append(warnings, fmt.Sprintf(
			"%d entity types exceed the platform limit of %d", n, c.Limits.MaxEntityTypes))
	}
	if n := len(result.RelationshipTypes); n > c.Limits.MaxRelationshipTypes {
		warnings = append(warnings, fmt.Sprintf(
			"%d relationship types exceed the platform limit of %d", n, c.Limits.MaxRelationshipTypes))
	}

	ids := make(map[string]bool, len(result.EntityTypes))
	for _, e := range result.EntityTypes {
		if ids[e.ID] {
			warnings = append(warnings, fmt.Sprintf("duplicate entity type id %s (%s)", e.ID, e.Name))
		}
		ids[e.ID] = true
	}

	for _, e := range result.EntityTypes {
		warnings = append(warnings, c.checkEntity(&e, ids)...)
	}

	for _, r := range result.RelationshipTypes {
		if !ids[r.Source.EntityTypeID] {
			warnings = append(warnings, fmt.Sprintf(
				"relationship %q references missing source entity %s", r.Name, r.Source.EntityTypeID))
		}
		if !ids[r.Target.EntityTypeID] {
			warnings = append(warnings, fmt.Sprintf(
				"relationship %q references missing target entity %s", r.Name, r.Target.EntityTypeID))
		}
	}
	return warnings
}

func (c *Checker) checkEntity(e *types.EntityType, ids map[string]bool) []string {
	var warnings []string

	if !idgen.IsValidID(e.ID) {
		warnings = append(warnings, fmt.Sprintf("entity type %q has malformed id %q", e.Name, e.ID))
	}
	if e.BaseEntityTypeID != "" && !ids[e.BaseEntityTypeID] {
		warnings = append(warnings, fmt.Sprintf(
			"entity type %q references missing parent %s", e.Name, e.BaseEntityTypeID))
	}
	if n := len(e.Properties) + len(e.TimeseriesProperties); n > c.Limits.MaxPropertiesPerEntity {
		warnings = append(warnings, fmt.Sprintf(
			"entity type %q has %d properties, platform limit is %d",
			e.Name, n, c.Limits.MaxPropertiesPerEntity))
	}
	if len(e.EntityIDParts) == 0 && len(e.Properties) > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"entity type %q has no key properties, instances will not deduplicate", e.Name))
	}

	propIDs := make(map[string]bool, len(e.Properties))
	for _, p := range e.Properties {
		propIDs[p.ID] = true
	}
	for _, keyID := range e.EntityIDParts {
		if !propIDs[keyID] {
			warnings = append(warnings, fmt.Sprintf(
				"entity type %q key references missing property %s", e.Name, keyID))
		}
	}
	if e.DisplayNamePropertyID != "" && !propIDs[e.DisplayNamePropertyID] {
		warnings = append(warnings, fmt.Sprintf(
			"entity type %q display name references missing property %s", e.Name, e.DisplayNamePropertyID))
	}
	return warnings
}
