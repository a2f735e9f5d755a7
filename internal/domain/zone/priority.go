package zone

import (
	"math"
	"sort"
	"strings"

	"github.com/turtacn/recreation-potential/internal/domain/scoring"
)

const basePriority = 50.0

// ComprehensivePriority scores a candidate zone from its region analysis and
// local context:
//
//	50 + demand + attractor + nature + transport + infrastructure + fire + saturation
//
// Every regional term is capped at the region-level factor maximum.  The
// attractor depends on the zone type and the saturation term on hyper-local
// competitors.  The result is clamped to [0, 100] and truncated.
func ComprehensivePriority(t Type, a *scoring.RegionAnalysis, fireClusterSize, competitors int, distanceFromPFZ float64, pfzName string) int {
	score := basePriority
	score += math.Min(a.DemandScore, scoring.MaxDemand)
	score += Attractor(t, fireClusterSize, distanceFromPFZ, pfzName)
	score += math.Min(a.NatureScore, scoring.MaxNature)
	score += math.Min(a.AccessibilityScore, scoring.MaxAccessibility)
	score += math.Min(a.InfrastructureScore, scoring.MaxInfrastructure)

	fire := a.FireScore
	if t == TypeFirePrevention {
		fire += 2
	}
	score += math.Min(fire, scoring.MaxFire)
	score += CompetitionPenalty(competitors)

	return int(math.Max(0, math.Min(100, score)))
}

// Attractor returns the zone-type specific attraction term.
func Attractor(t Type, fireClusterSize int, distanceFromPFZ float64, pfzName string) float64 {
	switch t {
	case TypeNearPFZ:
		v := pfzAttraction(pfzName)
		if distanceFromPFZ > 10 {
			v /= 2
		}
		return v
	case TypeRoadside:
		return 15
	case TypeFirePrevention:
		switch {
		case fireClusterSize >= 10:
			return 20
		case fireClusterSize >= 7:
			return 15
		case fireClusterSize >= 5:
			return 12
		case fireClusterSize >= 3:
			return 10
		}
	}
	return 0
}

func pfzAttraction(name string) float64 {
	lower := strings.ToLower(name)
	switch {
	case IsNationalPark(name):
		return 20
	case strings.Contains(lower, "заповідник"):
		return 15
	case strings.Contains(name, "РЛП") || strings.Contains(lower, "ландшафтний парк"):
		return 10
	default:
		return 8
	}
}

// IsNationalPark reports whether a protected object name denotes a national
// nature park.
func IsNationalPark(name string) bool {
	return strings.Contains(name, "Національний") ||
		strings.Contains(name, "національний") ||
		strings.Contains(name, "НПП")
}

// CompetitionPenalty is the hyper-local saturation term.  It is harsher than
// the region-level saturation factor.
func CompetitionPenalty(competitors int) float64 {
	switch {
	case competitors <= 0:
		return 0
	case competitors <= 2:
		return -3
	case competitors <= 5:
		return -7
	case competitors <= 10:
		return -12
	default:
		return -15
	}
}

// Rank drops zones below their type floor and sorts the rest by priority,
// highest first.  Equal priorities keep their input order.
func Rank(zones []Zone) []Zone {
	out := make([]Zone, 0, len(zones))
	for _, z := range zones {
		if z.Priority >= z.Type.Floor() {
			out = append(out, z)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

// CountByType tallies zones per type.  Every type is present in the result.
func CountByType(zones []Zone) map[Type]int {
	counts := make(map[Type]int, len(Types))
	for _, t := range Types {
		counts[t] = 0
	}
	for _, z := range zones {
		counts[z.Type]++
	}
	return counts
}

// Filter returns the zones of the given type, preserving order.
func Filter(zones []Zone, t Type) []Zone {
	out := make([]Zone, 0)
	for _, z := range zones {
		if z.Type == t {
			out = append(out, z)
		}
	}
	return out
}

//Personal.AI order the ending
