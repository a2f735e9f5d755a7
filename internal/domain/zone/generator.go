package zone

import (
	"fmt"
	"math"

	"github.com/turtacn/recreation-potential/internal/domain/dataset"
	"github.com/turtacn/recreation-potential/internal/domain/fire"
	"github.com/turtacn/recreation-potential/internal/domain/geo"
	"github.com/turtacn/recreation-potential/internal/domain/scoring"
)

// Offset ranges in km for seed-based coordinates.
const (
	nearPFZMinKm  = 3.0
	nearPFZMaxKm  = 8.0
	roadsideMinKm = 15.0
	roadsideMaxKm = 30.0
)

// RegionInput is everything the generator needs for one region.
type RegionInput struct {
	Analysis  *scoring.RegionAnalysis
	Protected *dataset.ProtectedAreaRecord
	Infra     *dataset.InfrastructureRecord
	// Fires are the incidents attributed to the region, any cause.
	Fires []dataset.FireIncident
	// ExistingPoints are the locations of all existing facilities in the
	// country, used for competitor counts.
	ExistingPoints []geo.Point
}

// Generator produces zone candidates.
type Generator struct {
	Detector           fire.Detector
	MaxPerStrategy     int
	CompetitorRadiusKm float64
}

// NewGenerator returns a Generator with two candidates per strategy and a
// 5 km competitor radius.
func NewGenerator() *Generator {
	return &Generator{
		Detector:           fire.NewDetector(),
		MaxPerStrategy:     2,
		CompetitorRadiusKm: 5,
	}
}

// Qualifies reports whether a region analysis is eligible for zones.
func Qualifies(a *scoring.RegionAnalysis) bool {
	return a != nil && a.TotalScore >= scoring.ShouldBuildThreshold
}

// Generate returns the unranked candidates for one region.  Regions below the
// should-build threshold yield none.  Candidates outside Ukraine are dropped.
func (g *Generator) Generate(in RegionInput) []Zone {
	if !Qualifies(in.Analysis) {
		return nil
	}
	region := in.Analysis.Region
	center, _ := geo.CenterOf(region)

	var zones []Zone
	zones = append(zones, g.nearPFZ(in, center)...)
	zones = append(zones, g.roadside(in, center)...)
	zones = append(zones, g.firePrevention(in)...)
	return zones
}

func (g *Generator) nearPFZ(in RegionInput, center geo.Point) []Zone {
	if in.Protected == nil {
		return nil
	}
	region := in.Analysis.Region
	var out []Zone
	for i, object := range firstN(in.Protected.NotableObjects, g.MaxPerStrategy) {
		loc := geo.DeterministicOffset(center, fmt.Sprintf("%s_%s_near", region, object), nearPFZMinKm, nearPFZMaxKm)
		if !geo.ZoneBounds.Contains(loc) {
			continue
		}
		distance := 3 + 2*float64(i)
		competitors := g.competitors(loc, in.ExistingPoints)
		tpl, visitors := nearPFZTemplate(object, IsNationalPark(object))

		obj := object
		z := Zone{
			ID:                fmt.Sprintf("%s_%s_%d", TypeNearPFZ, region, i+1),
			Type:              TypeNearPFZ,
			Name:              fmt.Sprintf("Еко-зона біля «%s»", object),
			Region:            region,
			Coordinates:       loc.LatLng(),
			Reasoning:         nearPFZReasoning(object, distance, visitors, competitors),
			Infrastructure:    proximity(TypeNearPFZ, in.Analysis.InfrastructureScore),
			DistanceFromPFZ:   &distance,
			PFZObject:         &obj,
			CompetitorsNearby: competitors,
		}
		tpl.apply(&z)
		z.Priority = ComprehensivePriority(TypeNearPFZ, in.Analysis, 0, competitors, distance, object)
		out = append(out, z)
	}
	return out
}

func (g *Generator) roadside(in RegionInput, center geo.Point) []Zone {
	if in.Infra == nil {
		return nil
	}
	region := in.Analysis.Region
	roads := in.Infra.Transport.MainRoads
	if len(roads) > g.MaxPerStrategy {
		roads = roads[:g.MaxPerStrategy]
	}
	var out []Zone
	for i, road := range roads {
		loc := geo.DeterministicOffset(center, fmt.Sprintf("%s_%s_road", region, road.Name), roadsideMinKm, roadsideMaxKm)
		if !geo.ZoneBounds.Contains(loc) {
			continue
		}
		competitors := g.competitors(loc, in.ExistingPoints)
		tpl, traffic := roadsideTemplate(road.IsInternational())

		z := Zone{
			ID:                fmt.Sprintf("%s_%s_%d", TypeRoadside, region, i+1),
			Type:              TypeRoadside,
			Name:              fmt.Sprintf("Придорожній комплекс на трасі %s", road.Name),
			Region:            region,
			Coordinates:       loc.LatLng(),
			Reasoning:         roadsideReasoning(road, traffic, competitors),
			Infrastructure:    proximity(TypeRoadside, in.Analysis.InfrastructureScore),
			CompetitorsNearby: competitors,
		}
		tpl.apply(&z)
		z.Priority = ComprehensivePriority(TypeRoadside, in.Analysis, 0, competitors, 0, "")
		out = append(out, z)
	}
	return out
}

func (g *Generator) firePrevention(in RegionInput) []Zone {
	region := in.Analysis.Region
	clusters := g.Detector.Detect(fire.HumanCaused(in.Fires))
	if len(clusters) > g.MaxPerStrategy {
		clusters = clusters[:g.MaxPerStrategy]
	}
	var out []Zone
	for i, c := range clusters {
		if !geo.ZoneBounds.Contains(c.Center) {
			continue
		}
		size := c.FireCount
		competitors := g.competitors(c.Center, in.ExistingPoints)
		z := Zone{
			ID:                fmt.Sprintf("%s_%s_%d", TypeFirePrevention, region, i+1),
			Type:              TypeFirePrevention,
			Name:              fmt.Sprintf("Зона пожежної профілактики №%d (%s)", i+1, region),
			Region:            region,
			Coordinates:       c.Center.LatLng(),
			Reasoning:         firePreventionReasoning(size, competitors),
			Infrastructure:    proximity(TypeFirePrevention, in.Analysis.InfrastructureScore),
			CompetitorsNearby: competitors,
			FireClusterSize:   &size,
		}
		firePreventionTemplate(size).apply(&z)
		z.Priority = ComprehensivePriority(TypeFirePrevention, in.Analysis, size, competitors, 0, "")
		out = append(out, z)
	}
	return out
}

func (g *Generator) competitors(p geo.Point, existing []geo.Point) int {
	return geo.CountWithinRadius(p, existing, g.CompetitorRadiusKm)
}

// proximity estimates service distances from the regional infrastructure
// score (0..10).  Better infrastructure means shorter distances; sites near
// protected areas are more remote and roadside sites sit next to fuel.
func proximity(t Type, infraScore float64) Proximity {
	s := math.Max(0, math.Min(infraScore, 10))
	p := Proximity{
		HospitalDistance:   math.Max(2, 20-1.5*s),
		GasStationDistance: math.Max(1, 12-s),
		ShopDistance:       math.Max(0.5, 6-0.5*s),
	}
	switch t {
	case TypeNearPFZ:
		p.HospitalDistance += 5
		p.ShopDistance += 2
	case TypeRoadside:
		p.GasStationDistance = math.Max(0.5, p.GasStationDistance/4)
	}
	p.HospitalDistance = round1(p.HospitalDistance)
	p.GasStationDistance = round1(p.GasStationDistance)
	p.ShopDistance = round1(p.ShopDistance)
	return p
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

//Personal.AI order the ending
