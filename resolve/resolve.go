// Package resolve holds the shared post-processing passes both front-ends
// run after extracting raw entity types: inheritance ordering, property
// conflict resolution, and key/display-name inference.
package resolve

import (
	"fmt"

	"github.com/c360studio/fabriconv/types"
)

// TopoSort orders entity types so every parent precedes its children, using
// Kahn's algorithm. Ties break by input order, keeping output deterministic.
// Types caught in inheritance cycles can never reach in-degree zero; they are
// appended after the sorted portion, in input order, rather than dropped.
func TopoSort(entities []types.EntityType) []types.EntityType {
	index := make(map[string]int, len(entities))
	for i, e := range entities {
		index[e.ID] = i
	}

	children := make(map[string][]int)
	indegree := make([]int, len(entities))
	for i, e := range entities {
		if e.BaseEntityTypeID == "" {
			continue
		}
		if _, ok := index[e.BaseEntityTypeID]; !ok {
			continue
		}
		children[e.BaseEntityTypeID] = append(children[e.BaseEntityTypeID], i)
		indegree[i]++
	}

	queue := make([]int, 0, len(entities))
	for i := range entities {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	sorted := make([]types.EntityType, 0, len(entities))
	emitted := make([]bool, len(entities))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		sorted = append(sorted, entities[i])
		emitted[i] = true
		for _, child := range children[entities[i].ID] {
			indegree[child]--
			if indegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	// Cycle members remain; append them in input order.
	for i := range entities {
		if !emitted[i] {
			sorted = append(sorted, entities[i])
		}
	}
	return sorted
}

// DropUnresolvedParents clears BaseEntityTypeID on entities whose parent is
// not part of the same compilation set, returning one warning per drop. A
// dangling parent reference would otherwise fail target-side validation.
func DropUnresolvedParents(entities []types.EntityType) []string {
	present := make(map[string]bool, len(entities))
	for _, e := range entities {
		present[e.ID] = true
	}

	var warnings []string
	for i := range entities {
		parent := entities[i].BaseEntityTypeID
		if parent != "" && !present[parent] {
			warnings = append(warnings, fmt.Sprintf(
				"entity type %q: parent %s not in compilation set, inheritance dropped",
				entities[i].Name, parent))
			entities[i].BaseEntityTypeID = ""
		}
	}
	return warnings
}

// BreakInheritanceCycles clears the parent link on entities whose ancestor
// chain leads back to themselves, returning one warning per cleared link.
// One link per cycle is enough to restore a sortable hierarchy; the first
// cycle member in input order loses its parent and becomes a root. Parents
// outside the compilation set end the walk and are left for
// DropUnresolvedParents.
func BreakInheritanceCycles(entities []types.EntityType) []string {
	byID := make(map[string]*types.EntityType, len(entities))
	for i := range entities {
		byID[entities[i].ID] = &entities[i]
	}

	var warnings []string
	for i := range entities {
		e := &entities[i]
		if e.BaseEntityTypeID == "" {
			continue
		}
		seen := map[string]bool{e.ID: true}
		current := e.BaseEntityTypeID
		for current != "" && !seen[current] {
			seen[current] = true
			parent, ok := byID[current]
			if !ok {
				current = ""
				break
			}
			current = parent.BaseEntityTypeID
		}
		if current == e.ID {
			warnings = append(warnings, fmt.Sprintf(
				"entity type %q: circular inheritance through parent %s, parent link dropped",
				e.Name, e.BaseEntityTypeID))
			e.BaseEntityTypeID = ""
		}
	}
	return warnings
}

// ParentChain returns the ids of all ancestors of the given entity, nearest
// first. The walk stops when it revisits an id, so inheritance cycles
// terminate with the partial chain collected so far.
func ParentChain(entityID string, byID map[string]*types.EntityType) []string {
	var chain []string
	visited := map[string]bool{entityID: true}

	current, ok := byID[entityID]
	for ok && current.BaseEntityTypeID != "" {
		parent := current.BaseEntityTypeID
		if visited[parent] {
			break
		}
		visited[parent] = true
		chain = append(chain, parent)
		current, ok = byID[parent]
	}
	return chain
}
