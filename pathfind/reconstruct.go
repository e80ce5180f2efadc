package pathfind

import "github.com/katalvlaran/terracost/costgrid"

// ReconstructPath rebuilds the start→end cell sequence from a flat
// predecessor array (as produced by AStar and Dijkstra).
//
// Returns nil when end carries no predecessor and is not the start itself,
// meaning the search never reached it. The walk is capped at rows·cols+1
// steps so a corrupted predecessor array can never loop forever.
func ReconstructPath(prev []int32, start, end int32, rows, cols int) []costgrid.Cell {
	if start != end && prev[end] == noPrev {
		return nil
	}

	// Walk backwards from end, then reverse in place.
	limit := rows*cols + 1
	idxs := make([]int32, 0, 64)
	cur := end
	for steps := 0; steps < limit; steps++ {
		idxs = append(idxs, cur)
		if cur == start {
			break
		}
		cur = prev[cur]
		if cur == noPrev {
			return nil // broken chain: end was never attached to start
		}
	}
	if idxs[len(idxs)-1] != start {
		return nil // walk cap hit on a predecessor cycle
	}

	cells := make([]costgrid.Cell, len(idxs))
	for i, idx := range idxs {
		j := len(idxs) - 1 - i
		cells[j] = costgrid.Cell{Row: int(idx) / cols, Col: int(idx) % cols}
	}

	return cells
}
