package scoring

import (
	"math"

	"github.com/turtacn/recreation-potential/internal/domain/dataset"
)

// Demand model constants.
const (
	visitorShare     = 0.15
	visitsPerYear    = 3.0
	operatingDays    = 180.0
	shiftsPerDay     = 2.0
	highwayDensityHi = 250.0
)

// Input carries the records of one region.  Nil records are replaced by the
// neutral defaults of the dataset package.
type Input struct {
	// RegionName is used when Region is nil.
	RegionName string

	Region    *dataset.RegionRecord
	Protected *dataset.ProtectedAreaRecord
	Infra     *dataset.InfrastructureRecord
	Points    []dataset.RecreationalPoint

	// HumanFiresNearCenter is the number of human-caused fires within
	// FireRadiusKm of the region centre.
	HumanFiresNearCenter int
}

// Scorer computes RegionAnalysis values.  The zero value is ready to use.
type Scorer struct{}

// NewScorer returns a Scorer.
func NewScorer() *Scorer { return &Scorer{} }

// Score computes the full analysis of one region.
func (s *Scorer) Score(in Input) *RegionAnalysis {
	name := in.RegionName
	var region dataset.RegionRecord
	if in.Region != nil {
		region = *in.Region
		name = region.Name
	} else {
		region = dataset.DefaultRegion(name)
	}
	var protected dataset.ProtectedAreaRecord
	if in.Protected != nil {
		protected = *in.Protected
	} else {
		protected = dataset.DefaultProtectedArea(name)
	}
	var infra dataset.InfrastructureRecord
	if in.Infra != nil {
		infra = *in.Infra
	} else {
		infra = dataset.DefaultInfrastructure(name)
	}

	a := &RegionAnalysis{Region: name}

	demand, pop := demandFactor(region, in.Points)
	a.DemandScore = demand
	a.Details.Population = pop

	a.PFZScore = PFZScore(protected)
	a.Details.PFZ = pfzDetails(protected)

	a.NatureScore = NatureScore(region)
	a.Details.Nature = NatureDetails{
		ForestCoveragePercent: region.ForestCoveragePercent,
		HasWaterBodies:        region.HasWaterBodies,
	}

	a.AccessibilityScore = AccessibilityScore(infra.Transport)
	a.Details.Transport = transportDetails(infra)

	a.InfrastructureScore = InfrastructureScore(infra.Anthropogenic)
	a.Details.Infrastructure = infrastructureDetails(infra.Anthropogenic)

	a.FireScore = FireScoreFor(in.HumanFiresNearCenter)
	a.Details.Fires = FireDetails{HumanCausedFires: in.HumanFiresNearCenter, RadiusKm: FireRadiusKm}

	density := PointDensity(len(in.Points), region.AreaKm2)
	a.SaturationPenalty = SaturationFor(density)
	a.Details.Saturation = SaturationDetails{
		ExistingPoints:    len(in.Points),
		DensityPer1000Km2: density,
		DensityStatus:     DensityStatusFor(density),
	}

	total := a.DemandScore + a.PFZScore + a.NatureScore + a.AccessibilityScore +
		a.InfrastructureScore + a.FireScore + a.SaturationPenalty
	a.TotalScore = math.Max(0, math.Min(100, total))

	a.Category, a.Recommendation = CategoryFor(a.TotalScore)
	a.Details.Investment = InvestmentDetails{
		RiskLevel:       RiskLevelFor(a.TotalScore),
		InvestmentScale: InvestmentScaleFor(a.TotalScore, pop.Gap),
		ShouldBuild:     a.TotalScore >= ShouldBuildThreshold,
	}
	return a
}

func demandFactor(region dataset.RegionRecord, points []dataset.RecreationalPoint) (float64, PopulationDetails) {
	demand := float64(region.Population) * visitorShare * visitsPerYear

	var capacity float64
	unknown := 0
	for _, p := range points {
		c := p.Properties.Capacity
		if !c.Known() {
			unknown++
		}
		capacity += c.Effective()
	}
	supply := capacity * operatingDays * shiftsPerDay

	ratio := 0.0
	if demand > 0 {
		ratio = supply / demand
	}
	gap := demand - supply
	return DemandScoreFor(ratio), PopulationDetails{
		Total:             region.Population,
		AreaKm2:           region.AreaKm2,
		DensityPerKm2:     region.DensityPerKm2,
		AnnualDemand:      demand,
		AnnualSupply:      supply,
		SupplyDemandRatio: ratio,
		Gap:               gap,
		GapStatus:         GapStatusFor(gap),
		UnknownCapacities: unknown,
	}
}

// PFZScore scores the protected-area fund of a region.
func PFZScore(p dataset.ProtectedAreaRecord) float64 {
	c := p.Areas
	score := math.Min(float64(c.NationalParks)*2.0, 8) +
		math.Min(float64(c.NatureReserves)*1.5, 6) +
		math.Min(float64(c.RegionalLandscapeParks)*1.0, 4) +
		math.Min(float64(c.Zakazniks)*0.1, 1.5) +
		math.Min(float64(c.MonumentsOfNature)*0.05, 0.5)

	switch {
	case c.PercentOfRegion > 10:
		score += 2
	case c.PercentOfRegion > 7:
		score += 1.5
	case c.PercentOfRegion > 5:
		score += 1
	}
	return math.Min(score, MaxPFZ)
}

// NatureScore scores forest coverage and water bodies.
func NatureScore(r dataset.RegionRecord) float64 {
	score := math.Min(r.ForestCoveragePercent*0.275, 11)
	if r.HasWaterBodies {
		score += 4
	}
	return score
}

// AccessibilityScore scores transport accessibility.
func AccessibilityScore(t dataset.TransportRecord) float64 {
	score := t.AccessibilityScore
	international := 0
	for _, road := range t.MainRoads {
		if road.IsInternational() {
			international++
		}
	}
	score += math.Min(float64(international)*0.8, 3)
	if t.Airports > 0 {
		score++
	}
	if t.HighwayDensity > highwayDensityHi {
		score++
	}
	return math.Min(score, MaxAccessibility)
}

// InfrastructureScore scores built infrastructure by fixed tiers.
func InfrastructureScore(a dataset.AnthropogenicRecord) float64 {
	score := 0.0

	switch {
	case a.HospitalsPer100k >= 5.0:
		score += 3
	case a.HospitalsPer100k >= 4.0:
		score += 2
	default:
		score++
	}

	switch {
	case a.GasStationsPer100km2 >= 1.0:
		score += 2
	case a.GasStationsPer100km2 >= 0.7:
		score += 1.5
	default:
		score++
	}

	switch {
	case a.MobileCoveragePercent >= 96:
		score += 2
	case a.MobileCoveragePercent >= 93:
		score += 1.5
	default:
		score++
	}

	switch {
	case a.InternetCoveragePercent >= 90:
		score++
	case a.InternetCoveragePercent >= 85:
		score += 0.5
	}

	switch {
	case a.HotelsTotal > 200:
		score++
	case a.HotelsTotal > 100:
		score += 0.5
	}

	score += a.ElectricityReliability.Bonus()
	return math.Min(score, MaxInfrastructure)
}

// PointDensity returns facilities per 1000 km², or 0 for a zero area.
func PointDensity(points int, areaKm2 float64) float64 {
	if areaKm2 <= 0 {
		return 0
	}
	return float64(points) / areaKm2 * 1000
}

func pfzDetails(p dataset.ProtectedAreaRecord) PFZDetails {
	objects := p.NotableObjects
	if objects == nil {
		objects = []string{}
	}
	return PFZDetails{
		NationalParks:          p.Areas.NationalParks,
		NatureReserves:         p.Areas.NatureReserves,
		RegionalLandscapeParks: p.Areas.RegionalLandscapeParks,
		Zakazniks:              p.Areas.Zakazniks,
		MonumentsOfNature:      p.Areas.MonumentsOfNature,
		PercentOfRegion:        p.Areas.PercentOfRegion,
		Rating:                 p.Rating,
		NotableObjects:         objects,
		RecreationalValue:      p.RecreationalValue,
	}
}

func transportDetails(r dataset.InfrastructureRecord) TransportDetails {
	roads := r.Transport.MainRoads
	if roads == nil {
		roads = []dataset.Road{}
	}
	return TransportDetails{
		AccessibilityScore:      r.Transport.AccessibilityScore,
		HighwayDensity:          r.Transport.HighwayDensity,
		MainRoads:               roads,
		InternationalRoadsCount: r.InternationalRoadCount(),
		RailwayStations:         r.Transport.RailwayStations,
		Airports:                r.Transport.Airports,
		AvgTravelTimeMinutes:    r.Transport.AvgTravelTimeMinutes,
	}
}

func infrastructureDetails(a dataset.AnthropogenicRecord) InfrastructureDetails {
	return InfrastructureDetails{
		HospitalsPer100k:        a.HospitalsPer100k,
		HospitalsTotal:          a.HospitalsTotal,
		GasStationsPer100km2:    a.GasStationsPer100km2,
		GasStationsTotal:        a.GasStations,
		MobileCoveragePercent:   a.MobileCoveragePercent,
		InternetCoveragePercent: a.InternetCoveragePercent,
		HotelsTotal:             a.HotelsTotal,
		RestaurantsCafes:        a.RestaurantsCafes,
		ElectricityReliability:  a.ElectricityReliability.String(),
		WaterSupplyQuality:      a.WaterSupplyQuality,
	}
}

//Personal.AI order the ending
