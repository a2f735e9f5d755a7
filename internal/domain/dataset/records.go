// Package dataset defines the read-only input records of the scoring engine,
// their file envelopes, ingestion validation and the immutable Snapshot that
// every scoring and zone-generation call reads from.
package dataset

import "github.com/turtacn/recreation-potential/internal/domain/geo"

// RegionRecord is one oblast of the population dataset.  Name is the identity
// key shared by all datasets.
type RegionRecord struct {
	Name                  string  `json:"name"`
	Population            int64   `json:"population"`
	AreaKm2               float64 `json:"area_km2"`
	DensityPerKm2         float64 `json:"density_per_km2,omitempty"`
	ForestCoveragePercent float64 `json:"forest_coverage_percent"`
	HasWaterBodies        bool    `json:"has_water_bodies"`
}

// ProtectedAreaCounts holds the per-category counts of the protected-area fund.
type ProtectedAreaCounts struct {
	NationalParks          int     `json:"national_parks"`
	NatureReserves         int     `json:"nature_reserves"`
	RegionalLandscapeParks int     `json:"regional_landscape_parks"`
	Zakazniks              int     `json:"zakazniks"`
	MonumentsOfNature      int     `json:"monuments_of_nature"`
	PercentOfRegion        float64 `json:"percent_of_region"`
}

// ProtectedAreaRecord describes the protected areas of one region.
type ProtectedAreaRecord struct {
	Region            string              `json:"region"`
	Areas             ProtectedAreaCounts `json:"protected_areas"`
	Rating            float64             `json:"pfz_score"`
	NotableObjects    []string            `json:"notable_objects"`
	RecreationalValue string              `json:"recreational_value"`
}

// Road is a main road crossing a region.
type Road struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Quality string `json:"quality,omitempty"`
}

// RoadTypeInternational is the road type that earns the transport bonus.
const RoadTypeInternational = "міжнародна"

// IsInternational reports whether the road is of international class.
func (r Road) IsInternational() bool {
	return geo.NormalizeName(r.Type) == RoadTypeInternational
}

// TransportRecord is the transport accessibility sub-record.
type TransportRecord struct {
	AccessibilityScore   float64 `json:"accessibility_score"`
	HighwayDensity       float64 `json:"highway_density_km_per_1000km2"`
	MainRoads            []Road  `json:"main_roads"`
	RailwayStations      int     `json:"railway_stations"`
	Airports             int     `json:"airports"`
	AvgTravelTimeMinutes float64 `json:"average_travel_time_to_major_city_minutes"`
}

// AnthropogenicRecord is the built-infrastructure sub-record.
type AnthropogenicRecord struct {
	HospitalsPer100k        float64                `json:"hospitals_per_100k"`
	HospitalsTotal          int                    `json:"hospitals_total,omitempty"`
	GasStationsPer100km2    float64                `json:"gas_stations_per_100km2"`
	GasStations             int                    `json:"gas_stations,omitempty"`
	MobileCoveragePercent   float64                `json:"mobile_coverage_percent"`
	InternetCoveragePercent float64                `json:"internet_coverage_percent"`
	HotelsTotal             int                    `json:"hotels_total"`
	RestaurantsCafes        int                    `json:"restaurants_cafes,omitempty"`
	ElectricityReliability  ElectricityReliability `json:"electricity_reliability"`
	WaterSupplyQuality      string                 `json:"water_supply_quality,omitempty"`
}

// InfrastructureRecord combines transport and anthropogenic data of a region.
type InfrastructureRecord struct {
	Region        string              `json:"region"`
	Transport     TransportRecord     `json:"transport_accessibility"`
	Anthropogenic AnthropogenicRecord `json:"anthropogenic_infrastructure"`
}

// InternationalRoadCount counts main roads of international class.
func (r *InfrastructureRecord) InternationalRoadCount() int {
	n := 0
	for _, road := range r.Transport.MainRoads {
		if road.IsInternational() {
			n++
		}
	}
	return n
}

// ─────────────────────────────────────────────────────────────────────────────
// Neutral defaults for missing optional records
// ─────────────────────────────────────────────────────────────────────────────

// DefaultRegion returns the substitute used when population data is missing.
func DefaultRegion(name string) RegionRecord {
	return RegionRecord{
		Name:                  name,
		Population:            1_000_000,
		AreaKm2:               20_000,
		ForestCoveragePercent: 10,
		HasWaterBodies:        false,
	}
}

// DefaultProtectedArea returns a record with no protected areas and the
// neutral rating 5.0.
func DefaultProtectedArea(region string) ProtectedAreaRecord {
	return ProtectedAreaRecord{
		Region:            region,
		Rating:            5.0,
		NotableObjects:    []string{},
		RecreationalValue: "medium",
	}
}

// DefaultInfrastructure returns average transport and infrastructure values.
func DefaultInfrastructure(region string) InfrastructureRecord {
	return InfrastructureRecord{
		Region: region,
		Transport: TransportRecord{
			AccessibilityScore:   5.0,
			HighwayDensity:       200,
			MainRoads:            []Road{},
			RailwayStations:      20,
			Airports:             0,
			AvgTravelTimeMinutes: 60,
		},
		Anthropogenic: AnthropogenicRecord{
			HospitalsPer100k:        4.0,
			GasStationsPer100km2:    0.5,
			MobileCoveragePercent:   90,
			InternetCoveragePercent: 85,
			HotelsTotal:             100,
			ElectricityReliability:  ReliabilityMedium,
		},
	}
}

//Personal.AI order the ending
