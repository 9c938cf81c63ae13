package ecs

import "sort"

// StorageStats is a point-in-time summary of everything held by a Storage.
// Collected on demand; intended for diagnostics displays, not hot paths.
type StorageStats struct {
	TotalEntityCount   int
	ArchetypeCount     int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes one archetype's shape and population.
type ArchetypeStats struct {
	ID             uint32
	ComponentTypes []string
	EntityCount    int
}

// CollectStats walks all archetypes and singletons and returns a summary.
// Breakdown entries are sorted by archetype id and singleton types by name
// so repeated collections render stably.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		ArchetypeCount:     len(s.archetypes),
		SingletonCount:     len(s.singletons),
		ArchetypeBreakdown: make([]ArchetypeStats, 0, len(s.archetypes)),
		SingletonTypes:     make([]string, 0, len(s.singletons)),
	}

	for _, archetype := range s.archetypes {
		typeNames := make([]string, len(archetype.types))
		for i, typ := range archetype.types {
			typeNames[i] = typ.String()
		}

		count := archetype.EntityCount()
		stats.TotalEntityCount += count
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: typeNames,
			EntityCount:    count,
		})
	}
	sort.Slice(stats.ArchetypeBreakdown, func(i, j int) bool {
		return stats.ArchetypeBreakdown[i].ID < stats.ArchetypeBreakdown[j].ID
	})

	for typ := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, typ.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}

// EntityCount returns the number of live entities across all archetypes.
func (s *Storage) EntityCount() int {
	total := 0
	for _, archetype := range s.archetypes {
		total += archetype.EntityCount()
	}
	return total
}
