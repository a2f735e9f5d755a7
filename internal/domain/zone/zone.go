// Package zone proposes and ranks candidate sites for new recreational
// facilities in high-potential regions.
//
// Three strategies produce candidates per qualifying region: sites near
// notable protected areas, sites along main roads and sites at clusters of
// human-caused fires.  Each candidate receives a seven-factor priority and the
// ranker keeps candidates above a per-type floor, sorted by priority.
package zone

import (
	"github.com/turtacn/recreation-potential/internal/domain/geo"
	"github.com/turtacn/recreation-potential/pkg/errors"
)

// Type is the generation strategy of a zone.
type Type string

const (
	TypeNearPFZ        Type = "near_pfz"
	TypeRoadside       Type = "roadside"
	TypeFirePrevention Type = "fire_prevention"
)

// Types lists the zone types in generation order.
var Types = []Type{TypeNearPFZ, TypeRoadside, TypeFirePrevention}

// ParseType validates a zone type name.
func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if string(t) == s {
			return t, nil
		}
	}
	return "", errors.New(errors.ErrCodeZoneTypeInvalid, "unknown zone type").WithDetail(s)
}

// Floor returns the minimum priority a zone of this type needs to survive
// ranking.
func (t Type) Floor() int {
	if t == TypeNearPFZ {
		return 60
	}
	return 55
}

func (t Type) String() string { return string(t) }

// Reasoning holds the three labelled arguments for a zone.
type Reasoning struct {
	Point1 string `json:"point1"`
	Point2 string `json:"point2"`
	Point3 string `json:"point3"`
}

// Values returns the reasoning points in order.
func (r Reasoning) Values() []string {
	return []string{r.Point1, r.Point2, r.Point3}
}

// Proximity estimates distances in km from a zone to basic services.
type Proximity struct {
	HospitalDistance   float64 `json:"hospital_distance"`
	GasStationDistance float64 `json:"gas_station_distance"`
	ShopDistance       float64 `json:"shop_distance"`
}

// Zone is a candidate site for a new recreational facility.
type Zone struct {
	ID                    string     `json:"id"`
	Type                  Type       `json:"type"`
	Name                  string     `json:"name"`
	Region                string     `json:"region"`
	Coordinates           [2]float64 `json:"coordinates"`
	Priority              int        `json:"priority"`
	Reasoning             Reasoning  `json:"reasoning"`
	RecommendedFacilities []string   `json:"recommended_facilities"`
	Infrastructure        Proximity  `json:"infrastructure"`
	LegalStatus           string     `json:"legal_status"`
	DistanceFromPFZ       *float64   `json:"distance_from_pfz"`
	PFZObject             *string    `json:"pfz_object"`
	RecommendedType       string     `json:"recommended_type"`
	RecommendedCapacity   string     `json:"recommended_capacity"`
	Investment            string     `json:"investment"`
	Payback               string     `json:"payback"`
	CompetitorsNearby     int        `json:"competitors_nearby"`
	FireClusterSize       *int       `json:"fire_cluster_size"`
}

// Location returns the zone coordinates as a Point.
func (z Zone) Location() geo.Point {
	return geo.Point{Lat: z.Coordinates[0], Lng: z.Coordinates[1]}
}

//Personal.AI order the ending
