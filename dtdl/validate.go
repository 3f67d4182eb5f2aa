package dtdl

import (
	"fmt"

	"github.com/c360studio/fabriconv/types"
)

// Validate checks each interface for structural problems. Invalid
// interfaces come back as skipped items for the converter to exclude; the
// remainder are returned ready for conversion.
func Validate(doc *Document) ([]Interface, []types.SkippedItem) {
	var valid []Interface
	var skipped []types.SkippedItem

	seen := make(map[string]bool)
	for _, iface := range doc.Interfaces {
		if reason := validateInterface(&iface, doc.Version, seen); reason != "" {
			skipped = append(skipped, types.SkippedItem{
				Kind:   "interface",
				Name:   iface.Name(),
				Reason: reason,
				Source: iface.ID,
			})
			continue
		}
		seen[iface.ID] = true
		valid = append(valid, iface)
	}
	return valid, skipped
}

func validateInterface(iface *Interface, version int, seen map[string]bool) string {
	if iface.ID == "" {
		return "missing @id"
	}
	if !IsValidDTMI(iface.ID) {
		return fmt.Sprintf("@id %q is not a valid DTMI", iface.ID)
	}
	if version == 2 && !hasVersionSuffix(iface.ID) {
		return "DTDL v2 requires a version suffix on @id"
	}
	if !iface.Type.Contains("Interface") {
		return "@type does not include Interface"
	}
	if seen[iface.ID] {
		return "duplicate @id in document"
	}

	names := make(map[string]bool, len(iface.Contents))
	for i := range iface.Contents {
		content := &iface.Contents[i]
		if content.Name == "" {
			return fmt.Sprintf("content %d has no name", i)
		}
		if names[content.Name] {
			return fmt.Sprintf("duplicate content name %q", content.Name)
		}
		names[content.Name] = true
		if content.Kind() == "" {
			return fmt.Sprintf("content %q has no recognized @type", content.Name)
		}
		if reason := validateContentSchema(content, version); reason != "" {
			return reason
		}
	}
	return ""
}

func validateContentSchema(content *Content, version int) string {
	switch content.Kind() {
	case "Property", "Telemetry":
		if content.Schema.IsZero() {
			return fmt.Sprintf("%s %q has no schema", content.Kind(), content.Name)
		}
	case "Component":
		if content.Schema.IsZero() || content.Schema.Primitive == "" {
			return fmt.Sprintf("component %q must reference an interface by DTMI", content.Name)
		}
	}
	if content.Schema != nil && content.Schema.Primitive == "scaledDecimal" && version < 4 {
		return fmt.Sprintf("%s %q uses scaledDecimal, introduced in DTDL v4", content.Kind(), content.Name)
	}
	return ""
}

func hasVersionSuffix(dtmi string) bool {
	for i := len(dtmi) - 1; i >= 0; i-- {
		if dtmi[i] == ';' {
			return true
		}
		if dtmi[i] < '0' || dtmi[i] > '9' {
			return false
		}
	}
	return false
}
