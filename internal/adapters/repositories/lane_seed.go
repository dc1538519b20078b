package repositories

import (
	"strings"

	"mode-allocation-simulator/internal/domain"
)

// SeedResult describes one replacement of the lane_costs table.
type SeedResult struct {
	Read   int
	Stored int
	// Duplicates lists lanes defined more than once in the source table, in
	// order of first repeat. Only the first row of each lane is stored.
	Duplicates []domain.LaneKey
}

// findLanesChunk caps the lanes per lookup query so the bound parameters stay
// well under both SQLite's and Postgres' limits.
const findLanesChunk = 500

// firstPerLane keeps the first row of each lane in table order.
func firstPerLane(costs []domain.CostRecord) ([]domain.CostRecord, []domain.LaneKey) {
	kept := make([]domain.CostRecord, 0, len(costs))
	seen := make(map[domain.LaneKey]bool, len(costs))
	var dups []domain.LaneKey

	for _, c := range costs {
		k := c.Lane()
		reported, ok := seen[k]
		if !ok {
			seen[k] = false
			kept = append(kept, c)
			continue
		}
		if !reported {
			seen[k] = true
			dups = append(dups, k)
		}
	}
	return kept, dups
}

// uniqueLaneKeys drops empty and repeated lanes, keeping first-seen order.
func uniqueLaneKeys(lanes []domain.LaneKey) []domain.LaneKey {
	seen := make(map[domain.LaneKey]struct{}, len(lanes))
	out := make([]domain.LaneKey, 0, len(lanes))
	for _, l := range lanes {
		if l.Origin == "" && l.Destination == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

func chunkLanes(keys []domain.LaneKey, size int) [][]domain.LaneKey {
	var out [][]domain.LaneKey
	for len(keys) > size {
		out = append(out, keys[:size])
		keys = keys[size:]
	}
	if len(keys) > 0 {
		out = append(out, keys)
	}
	return out
}

// lanePairsClause matches rows whose (origin_key, destination_key) pair is one
// of keys. Only "?" placeholders are interpolated.
func lanePairsClause(keys []domain.LaneKey) (string, []any) {
	ph := make([]string, 0, len(keys))
	args := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		ph = append(ph, "(?, ?)")
		args = append(args, k.Origin, k.Destination)
	}
	return "(origin_key, destination_key) IN (VALUES " + strings.Join(ph, ", ") + ")", args
}
