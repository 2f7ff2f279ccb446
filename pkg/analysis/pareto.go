package analysis

import "sort"

// ParetoPoint places one profile in the speed/size trade-off plane.
// Higher speedup is better, smaller artifacts are better.
type ParetoPoint struct {
	Profile   string
	Speedup   float64
	SizeBytes int64
}

// ParetoFrontier returns the points no other point beats in both
// dimensions at once. Exact ties on (speedup, size) keep only the
// lexicographically lowest profile name, and the result is sorted by
// size ascending, so identical inputs always produce identical output.
func ParetoFrontier(points []ParetoPoint) []ParetoPoint {
	if len(points) == 0 {
		return nil
	}

	ordered := make([]ParetoPoint, len(points))
	copy(ordered, points)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Speedup != ordered[j].Speedup {
			return ordered[i].Speedup > ordered[j].Speedup
		}
		if ordered[i].SizeBytes != ordered[j].SizeBytes {
			return ordered[i].SizeBytes < ordered[j].SizeBytes
		}
		return ordered[i].Profile < ordered[j].Profile
	})

	var unique []ParetoPoint
	for _, p := range ordered {
		if n := len(unique); n > 0 && unique[n-1].Speedup == p.Speedup && unique[n-1].SizeBytes == p.SizeBytes {
			continue
		}
		unique = append(unique, p)
	}

	var frontier []ParetoPoint
	for i, p := range unique {
		dominated := false
		for j, q := range unique {
			if j == i {
				continue
			}
			if q.Speedup >= p.Speedup && q.SizeBytes <= p.SizeBytes &&
				(q.Speedup > p.Speedup || q.SizeBytes < p.SizeBytes) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, p)
		}
	}

	sort.Slice(frontier, func(i, j int) bool {
		return frontier[i].SizeBytes < frontier[j].SizeBytes
	})

	return frontier
}
