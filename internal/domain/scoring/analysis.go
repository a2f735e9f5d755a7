// Package scoring computes the recreational potential of a single region from
// its population, protected-area, infrastructure, facility and fire records.
//
// The score is the sum of seven independently capped factors:
//
//	demand          0..25   unmet visit demand (supply/demand ratio bands)
//	pfz             0..20   protected-area fund attractiveness
//	nature          0..15   forest coverage and water bodies
//	accessibility   0..15   transport accessibility
//	infrastructure  0..10   built infrastructure tiers
//	fire            0..5    human-caused fires near the region centre
//	saturation    -15..0    density of existing facilities
//
// The total is clamped to [0, 100].  Scoring is a pure function; it never
// fails and never mutates its inputs.
package scoring

import (
	"math"

	"github.com/turtacn/recreation-potential/internal/domain/dataset"
)

// RegionAnalysis is the scored result for one region.
type RegionAnalysis struct {
	Region              string  `json:"region"`
	TotalScore          float64 `json:"total_score"`
	DemandScore         float64 `json:"demand_score"`
	PFZScore            float64 `json:"pfz_score"`
	NatureScore         float64 `json:"nature_score"`
	AccessibilityScore  float64 `json:"accessibility_score"`
	InfrastructureScore float64 `json:"infrastructure_score"`
	FireScore           float64 `json:"fire_score"`
	SaturationPenalty   float64 `json:"saturation_penalty"`
	Category            string  `json:"category"`
	Recommendation      string  `json:"recommendation"`
	Details             Details `json:"details"`
}

// Details is the per-factor audit trail of an analysis.
type Details struct {
	Population     PopulationDetails     `json:"population"`
	PFZ            PFZDetails            `json:"pfz"`
	Nature         NatureDetails         `json:"nature"`
	Transport      TransportDetails      `json:"transport"`
	Infrastructure InfrastructureDetails `json:"infrastructure"`
	Saturation     SaturationDetails     `json:"saturation"`
	Fires          FireDetails           `json:"fires"`
	Investment     InvestmentDetails     `json:"investment"`
}

type PopulationDetails struct {
	Total             int64   `json:"total"`
	AreaKm2           float64 `json:"area_km2"`
	DensityPerKm2     float64 `json:"density_per_km2"`
	AnnualDemand      float64 `json:"annual_demand"`
	AnnualSupply      float64 `json:"annual_supply"`
	SupplyDemandRatio float64 `json:"supply_demand_ratio"`
	Gap               float64 `json:"gap"`
	GapStatus         string  `json:"gap_status"`
	// UnknownCapacities counts facilities whose capacity could not be parsed
	// and therefore contributed nothing to supply.
	UnknownCapacities int `json:"unknown_capacities"`
}

type PFZDetails struct {
	NationalParks          int      `json:"national_parks"`
	NatureReserves         int      `json:"nature_reserves"`
	RegionalLandscapeParks int      `json:"regional_landscape_parks"`
	Zakazniks              int      `json:"zakazniks"`
	MonumentsOfNature      int      `json:"monuments_of_nature"`
	PercentOfRegion        float64  `json:"percent_of_region"`
	Rating                 float64  `json:"pfz_rating"`
	NotableObjects         []string `json:"notable_objects"`
	RecreationalValue      string   `json:"recreational_value"`
}

type NatureDetails struct {
	ForestCoveragePercent float64 `json:"forest_coverage_percent"`
	HasWaterBodies        bool    `json:"has_water_bodies"`
}

type TransportDetails struct {
	AccessibilityScore      float64        `json:"accessibility_score"`
	HighwayDensity          float64        `json:"highway_density"`
	MainRoads               []dataset.Road `json:"main_roads"`
	InternationalRoadsCount int            `json:"international_roads_count"`
	RailwayStations         int            `json:"railway_stations"`
	Airports                int            `json:"airports"`
	AvgTravelTimeMinutes    float64        `json:"avg_travel_time_minutes"`
}

type InfrastructureDetails struct {
	HospitalsPer100k        float64 `json:"hospitals_per_100k"`
	HospitalsTotal          int     `json:"hospitals_total"`
	GasStationsPer100km2    float64 `json:"gas_stations_per_100km2"`
	GasStationsTotal        int     `json:"gas_stations_total"`
	MobileCoveragePercent   float64 `json:"mobile_coverage_percent"`
	InternetCoveragePercent float64 `json:"internet_coverage_percent"`
	HotelsTotal             int     `json:"hotels_total"`
	RestaurantsCafes        int     `json:"restaurants_cafes"`
	ElectricityReliability  string  `json:"electricity_reliability"`
	WaterSupplyQuality      string  `json:"water_supply_quality"`
}

type SaturationDetails struct {
	ExistingPoints    int     `json:"existing_points"`
	DensityPer1000Km2 float64 `json:"density_per_1000km2"`
	DensityStatus     string  `json:"density_status"`
}

type FireDetails struct {
	HumanCausedFires int     `json:"human_caused_fires"`
	RadiusKm         float64 `json:"radius_km"`
}

type InvestmentDetails struct {
	RiskLevel       string `json:"risk_level"`
	InvestmentScale string `json:"investment_scale"`
	ShouldBuild     bool   `json:"should_build"`
}

// Rounded returns a copy with display rounding applied: scores to one
// decimal, demand and supply to whole visits, ratios and densities to two
// decimals.  Ranking and zone generation use the unrounded analysis.
func (a *RegionAnalysis) Rounded() *RegionAnalysis {
	r := *a
	r.TotalScore = round(a.TotalScore, 1)
	r.DemandScore = round(a.DemandScore, 1)
	r.PFZScore = round(a.PFZScore, 1)
	r.NatureScore = round(a.NatureScore, 1)
	r.AccessibilityScore = round(a.AccessibilityScore, 1)
	r.InfrastructureScore = round(a.InfrastructureScore, 1)
	r.FireScore = round(a.FireScore, 1)
	r.SaturationPenalty = round(a.SaturationPenalty, 1)

	p := &r.Details.Population
	p.AnnualDemand = math.Round(p.AnnualDemand)
	p.AnnualSupply = math.Round(p.AnnualSupply)
	p.Gap = math.Round(p.Gap)
	p.SupplyDemandRatio = round(p.SupplyDemandRatio, 2)
	r.Details.Saturation.DensityPer1000Km2 = round(a.Details.Saturation.DensityPer1000Km2, 2)
	return &r
}

func round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

//Personal.AI order the ending
