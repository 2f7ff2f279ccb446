package matrix

import (
	"fmt"
	"strings"

	"github.com/perflab/optbench/pkg/profile"
)

// DefaultBalancedLimit is the profile cap used when no explicit limit
// is configured.
const DefaultBalancedLimit = 15

// SelectionPolicy narrows a profile catalog to the subset a study will
// actually build. Policies are deterministic, preserve catalog order,
// and never return duplicates.
type SelectionPolicy func(catalog []profile.Profile) []profile.Profile

// PolicyByName resolves a configured policy name. The limit applies to
// every policy except "all" and is floored at one profile.
func PolicyByName(name string, limit int) (SelectionPolicy, error) {
	switch name {
	case "all":
		return SelectAll, nil
	case "baseline-extremes":
		return BaselineAndExtremes(limit), nil
	case "single-factor":
		return SingleFactorCoverage(limit), nil
	case "balanced":
		return Balanced(limit), nil
	default:
		return nil, fmt.Errorf("unknown selection policy %q", name)
	}
}

// SelectAll keeps the entire catalog.
func SelectAll(catalog []profile.Profile) []profile.Profile {
	out := make([]profile.Profile, len(catalog))
	copy(out, catalog)

	return out
}

// BaselineAndExtremes keeps the two anchors plus the corner profiles,
// the cheapest sweep that still brackets the optimization space.
func BaselineAndExtremes(limit int) SelectionPolicy {
	return func(catalog []profile.Profile) []profile.Profile {
		s := newSelector(catalog, limit)

		s.pickNames("baseline", "standard-release")
		s.pickMatching(func(p profile.Profile) bool {
			return strings.HasPrefix(p.Name, "min-") ||
				strings.HasPrefix(p.Name, "max-") ||
				strings.HasSuffix(p.Name, "-ultra")
		})

		return s.result()
	}
}

// SingleFactorCoverage keeps the anchors plus every profile that moves
// exactly one dimension away from standard-release, so each main
// effect is measured in isolation.
func SingleFactorCoverage(limit int) SelectionPolicy {
	return func(catalog []profile.Profile) []profile.Profile {
		s := newSelector(catalog, limit)

		s.pickNames("baseline", "standard-release")
		s.pickMatching(func(p profile.Profile) bool {
			return dimensionsChanged(p, profile.StandardRelease()) == 1
		})

		return s.result()
	}
}

// Balanced samples boundaries and midpoints across the dimensions in
// priority order: anchors first, then one key profile per dimension,
// then the size family, then the perf family, then whatever catalog
// order offers until the limit is reached.
func Balanced(limit int) SelectionPolicy {
	keyFactors := []string{"opt-z", "lto-thin", "lto-fat", "codegen-1", "cpu-native", "pgo-opt3"}

	return func(catalog []profile.Profile) []profile.Profile {
		s := newSelector(catalog, limit)

		s.pickNames("baseline", "standard-release")
		for _, key := range keyFactors {
			s.pickFirst(func(p profile.Profile) bool {
				return strings.Contains(p.Name, key)
			})
		}
		s.pickMatching(func(p profile.Profile) bool {
			return strings.HasPrefix(p.Name, "size-")
		})
		s.pickMatching(func(p profile.Profile) bool {
			return strings.HasPrefix(p.Name, "perf-") || strings.HasPrefix(p.Name, "max-")
		})
		s.pickMatching(func(p profile.Profile) bool { return true })

		return s.result()
	}
}

// dimensionsChanged counts how many optimization dimensions differ
// between two profiles.
func dimensionsChanged(a, b profile.Profile) int {
	changed := 0

	if a.OptLevel != b.OptLevel {
		changed++
	}
	if a.LTO != b.LTO {
		changed++
	}
	if a.CodegenUnits != b.CodegenUnits {
		changed++
	}
	if a.PGO != b.PGO {
		changed++
	}
	if a.TargetCPU != b.TargetCPU {
		changed++
	}
	if a.Strip != b.Strip {
		changed++
	}
	if a.PanicAbort != b.PanicAbort {
		changed++
	}

	return changed
}

// selector accumulates picks in catalog order, deduplicates, and stops
// once the limit is reached.
type selector struct {
	catalog []profile.Profile
	limit   int
	seen    map[string]bool
	picked  []profile.Profile
}

func newSelector(catalog []profile.Profile, limit int) *selector {
	if limit < 1 {
		limit = 1
	}

	return &selector{
		catalog: catalog,
		limit:   limit,
		seen:    make(map[string]bool, limit),
	}
}

func (s *selector) full() bool {
	return len(s.picked) >= s.limit
}

func (s *selector) pick(p profile.Profile) {
	if s.full() || s.seen[p.Name] {
		return
	}

	s.seen[p.Name] = true
	s.picked = append(s.picked, p)
}

func (s *selector) pickNames(names ...string) {
	for _, name := range names {
		for _, p := range s.catalog {
			if p.Name == name {
				s.pick(p)
				break
			}
		}
	}
}

func (s *selector) pickFirst(match func(profile.Profile) bool) {
	for _, p := range s.catalog {
		if s.seen[p.Name] {
			continue
		}
		if match(p) {
			s.pick(p)
			return
		}
	}
}

func (s *selector) pickMatching(match func(profile.Profile) bool) {
	for _, p := range s.catalog {
		if s.full() {
			return
		}
		if match(p) {
			s.pick(p)
		}
	}
}

func (s *selector) result() []profile.Profile {
	return s.picked
}
