package memguard

import (
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
)

func guardWithAvailable(mb uint64) *Guard {
	return &Guard{virtualMemory: func() (*mem.VirtualMemoryStat, error) {
		return &mem.VirtualMemoryStat{Available: mb * 1024 * 1024}, nil
	}}
}

func TestCheckPassesWithAmpleMemory(t *testing.T) {
	g := guardWithAvailable(8192)

	ok, msg := g.Check(10, false)
	assert.True(t, ok)
	assert.Contains(t, msg, "passed")
}

func TestCheckAppliesMinimumFloor(t *testing.T) {
	// A 1 MB document still requires the 256 MB floor; with only 300 MB
	// available, 0.7*300=210 MB usable is below the floor.
	g := guardWithAvailable(300)

	ok, msg := g.Check(1, false)
	assert.False(t, ok)
	assert.Contains(t, msg, "insufficient memory")
}

func TestCheckCapsLargeEstimates(t *testing.T) {
	// A 1 GB document would naively require 3.5 GB, but the estimate caps at
	// 500 MB, which 1 GB of available memory covers (700 MB usable).
	g := guardWithAvailable(1024)

	ok, _ := g.Check(1024, false)
	assert.True(t, ok)
}

func TestCheckForceBypasses(t *testing.T) {
	g := guardWithAvailable(100)

	ok, msg := g.Check(500, true)
	assert.True(t, ok)
	assert.Contains(t, msg, "bypassed")
}

func TestCheckProceedsWhenReadingFails(t *testing.T) {
	g := &Guard{virtualMemory: func() (*mem.VirtualMemoryStat, error) {
		return nil, errors.New("procfs unavailable")
	}}

	ok, msg := g.Check(100, false)
	assert.True(t, ok)
	assert.Contains(t, msg, "unavailable")
}
