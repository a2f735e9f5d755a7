package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/turtacn/recreation-potential/internal/domain/dataset"
	"github.com/turtacn/recreation-potential/internal/domain/geo"
)

// Fixture regions with hand-tuned data.  Every other region gets neutral
// values and scores 37.75.
const (
	// HighPotentialRegion scores 77.575 and qualifies for zones.
	HighPotentialRegion = "Львівська область"
	// MediumPotentialRegion scores 49.85.
	MediumPotentialRegion = "Київська область"
)

// Fixture scores, unrounded.
const (
	HighPotentialScore   = 77.575
	MediumPotentialScore = 49.85
	NeutralScore         = 37.75
)

// Regions returns the population dataset covering all 24 regions.
func Regions() *dataset.RegionsFile {
	f := &dataset.RegionsFile{}
	for _, name := range geo.RegionNames() {
		r := dataset.RegionRecord{
			Name:                  name,
			Population:            1_000_000,
			AreaKm2:               25_000,
			DensityPerKm2:         40,
			ForestCoveragePercent: 10,
		}
		switch name {
		case HighPotentialRegion:
			r.Population, r.AreaKm2, r.DensityPerKm2 = 2_500_000, 21_833, 114.5
			r.ForestCoveragePercent, r.HasWaterBodies = 29, true
		case MediumPotentialRegion:
			r.Population, r.AreaKm2, r.DensityPerKm2 = 1_800_000, 28_131, 64
			r.ForestCoveragePercent, r.HasWaterBodies = 22, true
		}
		f.Regions = append(f.Regions, r)
	}
	return f
}

// Infrastructure returns the infrastructure dataset.
func Infrastructure() *dataset.InfrastructureFile {
	f := &dataset.InfrastructureFile{}
	for _, name := range geo.RegionNames() {
		r := dataset.DefaultInfrastructure(name)
		r.Anthropogenic.HospitalsTotal = 40
		r.Anthropogenic.GasStations = 150
		switch name {
		case HighPotentialRegion:
			r.Transport = dataset.TransportRecord{
				AccessibilityScore: 8.5,
				HighwayDensity:     300,
				MainRoads: []dataset.Road{
					{Name: "М-06", Type: "міжнародна", Quality: "добра"},
					{Name: "М-09", Type: "міжнародна", Quality: "добра"},
					{Name: "Н-13", Type: "національна", Quality: "задовільна"},
				},
				RailwayStations:      60,
				Airports:             1,
				AvgTravelTimeMinutes: 45,
			}
			r.Anthropogenic = dataset.AnthropogenicRecord{
				HospitalsPer100k:        5.2,
				HospitalsTotal:          130,
				GasStationsPer100km2:    1.1,
				GasStations:             240,
				MobileCoveragePercent:   97,
				InternetCoveragePercent: 91,
				HotelsTotal:             350,
				RestaurantsCafes:        2100,
				ElectricityReliability:  dataset.ReliabilityHigh,
				WaterSupplyQuality:      "добра",
			}
		case MediumPotentialRegion:
			r.Transport.AccessibilityScore = 7.0
			r.Transport.MainRoads = []dataset.Road{{Name: "М-06", Type: "міжнародна"}}
		}
		f.Infrastructure.Regions = append(f.Infrastructure.Regions, r)
	}
	return f
}

// ProtectedAreas returns the protected areas dataset.
func ProtectedAreas() *dataset.ProtectedAreasFile {
	f := &dataset.ProtectedAreasFile{}
	for _, name := range geo.RegionNames() {
		r := dataset.DefaultProtectedArea(name)
		switch name {
		case HighPotentialRegion:
			r.Areas = dataset.ProtectedAreaCounts{
				NationalParks:          4,
				NatureReserves:         1,
				RegionalLandscapeParks: 9,
				Zakazniks:              100,
				MonumentsOfNature:      300,
				PercentOfRegion:        11,
			}
			r.Rating = 9.0
			r.NotableObjects = []string{"НПП Сколівські Бескиди", "Розточчя заповідник", "РЛП Знесіння"}
			r.RecreationalValue = "high"
		case MediumPotentialRegion:
			r.Areas = dataset.ProtectedAreaCounts{NationalParks: 1, PercentOfRegion: 3}
			r.NotableObjects = []string{"НПП Голосіївський"}
		}
		f.ProtectedAreas.Regions = append(f.ProtectedAreas.Regions, r)
	}
	return f
}

func feature(lat, lng float64) dataset.Geometry {
	return dataset.Geometry{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Points returns the recreational points dataset: three facilities in each
// of the two tuned regions.
func Points() *dataset.PointCollection {
	mk := func(name, region string, lat, lng float64, c dataset.Capacity) dataset.RecreationalPoint {
		return dataset.RecreationalPoint{
			Type:     "Feature",
			Geometry: feature(lat, lng),
			Properties: dataset.PointProperties{
				Name: name, Region: region, Type: "база відпочинку", Capacity: c,
			},
		}
	}
	return &dataset.PointCollection{
		Type: dataset.FeatureCollectionType,
		Features: []dataset.RecreationalPoint{
			mk("Садиба Карпати", HighPotentialRegion, 49.79, 24.02, dataset.NumericCapacity(100)),
			mk("Глемпінг Розточчя", HighPotentialRegion, 49.95, 23.60, dataset.ParseCapacity("34-36")),
			mk("Хостел Стрий", HighPotentialRegion, 49.26, 23.85, dataset.ParseCapacity("невідомо")),
			mk("База Дніпро", MediumPotentialRegion, 50.30, 30.60, dataset.NumericCapacity(200)),
			mk("База Ірпінь", MediumPotentialRegion, 50.52, 30.25, dataset.NumericCapacity(200)),
			mk("База Обухів", MediumPotentialRegion, 50.11, 30.62, dataset.NumericCapacity(200)),
		},
	}
}

// Fires returns the forest fire dataset.  The high-potential region holds a
// cluster of four human-caused fires and five human-caused fires within 50 km
// of its centre.
func Fires() *dataset.FireCollection {
	mk := func(name, region string, lat, lng float64, cause dataset.CauseType) dataset.FireIncident {
		return dataset.FireIncident{
			Type:     "Feature",
			Geometry: feature(lat, lng),
			Properties: dataset.FireProperties{
				Name: name, Region: region, AreaHa: 2.5, Date: "2024-08-14", CauseType: cause,
			},
		}
	}
	return &dataset.FireCollection{
		Type: dataset.FeatureCollectionType,
		Metadata: &dataset.FireMetadata{
			TotalFires: 7, HumanCaused: 6, OtherCauses: 1, Year: 2024,
		},
		Features: []dataset.FireIncident{
			mk("Пожежа 1", HighPotentialRegion, 49.60, 23.80, dataset.CauseHumanFactor),
			mk("Пожежа 2", HighPotentialRegion, 49.61, 23.80, dataset.CauseHumanFactor),
			mk("Пожежа 3", HighPotentialRegion, 49.60, 23.80, dataset.CauseNatural),
			mk("Пожежа 4", HighPotentialRegion, 49.60, 23.81, dataset.CauseHumanFactor),
			mk("Пожежа 5", HighPotentialRegion, 49.605, 23.805, dataset.CauseHumanFactor),
			mk("Пожежа 6", HighPotentialRegion, 49.90, 24.10, dataset.CauseHumanFactor),
			mk("Пожежа 7", MediumPotentialRegion, 50.90, 30.00, dataset.CauseHumanFactor),
		},
	}
}

// Bundle returns all five fixture datasets.
func Bundle() dataset.Bundle {
	return dataset.Bundle{
		Regions:        Regions(),
		Infrastructure: Infrastructure(),
		ProtectedAreas: ProtectedAreas(),
		Points:         Points(),
		Fires:          Fires(),
	}
}

// Snapshot builds a snapshot from the fixture bundle.
func Snapshot(t testing.TB) *dataset.Snapshot {
	t.Helper()
	s, err := dataset.NewSnapshot(Bundle(), "fixture")
	require.NoError(t, err)
	return s
}

// DatasetJSON returns the encoded fixture document of a dataset kind.
func DatasetJSON(t testing.TB, kind dataset.Kind) []byte {
	t.Helper()
	var v interface{}
	switch kind {
	case dataset.KindPopulation:
		v = Regions()
	case dataset.KindInfrastructure:
		v = Infrastructure()
	case dataset.KindProtectedAreas:
		v = ProtectedAreas()
	case dataset.KindPoints:
		v = Points()
	case dataset.KindFires:
		v = Fires()
	default:
		t.Fatalf("unknown dataset kind %q", kind)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(t, err)
	return data
}

// WriteDataDir writes every fixture dataset into dir under its default name.
func WriteDataDir(t testing.TB, dir string) {
	t.Helper()
	for _, kind := range dataset.AllKinds {
		path := filepath.Join(dir, kind.FileName())
		require.NoError(t, os.WriteFile(path, DatasetJSON(t, kind), 0o644))
	}
}

//Personal.AI order the ending
