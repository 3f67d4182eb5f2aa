package idgen

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorSequential(t *testing.T) {
	g := NewGenerator(0)

	first := g.Next()
	second := g.Next()

	assert.Equal(t, "1000000000000", first)
	assert.Equal(t, "1000000000001", second)
	assert.Equal(t, 2, g.TotalGenerated())
}

func TestGeneratorCustomPrefix(t *testing.T) {
	g := NewGenerator(5_000_000_000_000)
	assert.Equal(t, "5000000000000", g.Next())
}

func TestGeneratorNamespaceTracking(t *testing.T) {
	g := NewGenerator(0)

	g.NextFor("entities")
	g.NextFor("entities")
	g.NextFor("relationships")

	assert.Equal(t, 2, g.NamespaceCount("entities"))
	assert.Equal(t, 1, g.NamespaceCount("relationships"))
	assert.Equal(t, 0, g.NamespaceCount("unknown"))
}

func TestGeneratorReserveRange(t *testing.T) {
	g := NewGenerator(0)

	r := g.ReserveRange("batch", 5)

	assert.Equal(t, 5, r.Len())
	assert.Equal(t, "1000000000000", r.ID(0))
	assert.Equal(t, "1000000000004", r.ID(4))
	// Next id comes after the reserved block.
	assert.Equal(t, "1000000000005", g.Next())
}

func TestGeneratorConcurrentUnique(t *testing.T) {
	g := NewGenerator(0)

	const workers = 8
	const perWorker = 200

	var mu sync.Mutex
	seen := make(map[string]bool, workers*perWorker)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids := make([]string, 0, perWorker)
			for j := 0; j < perWorker; j++ {
				ids = append(ids, g.Next())
			}
			mu.Lock()
			for _, id := range ids {
				seen[id] = true
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

func TestIsValidID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"valid counter id", "1000000000000", true},
		{"valid high id", "1999999999999", true},
		{"too short", "100000000000", false},
		{"too long", "10000000000000", false},
		{"non numeric", "100000000000a", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidID(tt.id))
		})
	}
}

func TestCleanDTMI(t *testing.T) {
	tests := []struct {
		name string
		dtmi string
		want string
	}{
		{"scheme and version stripped", "dtmi:com:example:Thermostat;1", "com:example:Thermostat"},
		{"version only", "com:example:Thermostat;2", "com:example:Thermostat"},
		{"no version", "dtmi:com:example:Thermostat", "com:example:Thermostat"},
		{"bare name", "Thermostat", "Thermostat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDTMI(tt.dtmi))
		})
	}
}

func TestDeterministicEntityIDStable(t *testing.T) {
	d := NewDeterministic(0)

	a := d.EntityID("dtmi:com:example:Thermostat;1")
	b := d.EntityID("dtmi:com:example:Thermostat;1")
	assert.Equal(t, a, b)
	require.True(t, IsValidID(a), "id %q should be 13 digits", a)
}

func TestDeterministicEntityIDVersionIndependent(t *testing.T) {
	d := NewDeterministic(0)

	v1 := d.EntityID("dtmi:com:example:Thermostat;1")
	v2 := d.EntityID("dtmi:com:example:Thermostat;2")
	assert.Equal(t, v1, v2, "version bump must not change the id")

	other := d.EntityID("dtmi:com:example:TemperatureSensor;1")
	assert.NotEqual(t, v1, other)
}

func TestPropertyIDStable(t *testing.T) {
	entityID := "1000000000042"

	a := PropertyID(entityID, "temperature")
	b := PropertyID(entityID, "temperature")
	assert.Equal(t, a, b)
	assert.Len(t, a, 17)
	assert.Equal(t, entityID, a[:13])

	other := PropertyID(entityID, "humidity")
	assert.NotEqual(t, a, other)
}
