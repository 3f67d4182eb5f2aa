// Package memguard implements the pre-flight memory check consulted before
// parsing large source documents. RDF parsers hold the whole graph in
// memory, so a document several times larger than available memory should be
// rejected before parsing starts rather than OOM-killed halfway through.
package memguard

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"
)

// Estimation constants, calibrated against in-memory graph overhead.
const (
	// ExpansionFactor estimates parsed in-memory size from file size.
	ExpansionFactor = 3.5

	// MinRequiredMB is the floor for the estimate; even tiny documents need
	// headroom for the conversion passes.
	MinRequiredMB = 256.0

	// MaxRequiredMB caps the estimate; graphs share structure, so the
	// expansion factor overshoots on very large inputs.
	MaxRequiredMB = 500.0

	// LoadFactor is the fraction of available memory the converter is
	// allowed to claim.
	LoadFactor = 0.7
)

// vmFunc indirection allows tests to substitute system memory readings.
type vmFunc func() (*mem.VirtualMemoryStat, error)

// Guard checks document sizes against available system memory. The zero
// value is not usable; construct with New.
type Guard struct {
	virtualMemory vmFunc
}

// New creates a guard backed by gopsutil system readings.
func New() *Guard {
	return &Guard{virtualMemory: mem.VirtualMemory}
}

// Check reports whether a document of the given size (in MB) can be parsed
// safely. The message explains the decision either way. When force is true
// the check never blocks, but the message still carries the warning.
func (g *Guard) Check(sizeMB float64, force bool) (bool, string) {
	required := sizeMB * ExpansionFactor
	if required < MinRequiredMB {
		required = MinRequiredMB
	}
	if required > MaxRequiredMB {
		required = MaxRequiredMB
	}

	vm, err := g.virtualMemory()
	if err != nil {
		// Reading system memory failed; proceed rather than block on a
		// monitoring error.
		return true, fmt.Sprintf("memory check unavailable (%v), proceeding", err)
	}

	availableMB := float64(vm.Available) / (1024 * 1024)
	usableMB := availableMB * LoadFactor

	if usableMB >= required {
		return true, fmt.Sprintf(
			"memory check passed: %.0f MB required, %.0f MB usable", required, usableMB)
	}

	msg := fmt.Sprintf(
		"estimated %.0f MB required for a %.1f MB document, only %.0f MB usable of %.0f MB available",
		required, sizeMB, usableMB, availableMB)
	if force {
		return true, "memory check bypassed: " + msg
	}
	return false, "insufficient memory: " + msg
}
