package dataset

import (
	"encoding/json"

	"github.com/turtacn/recreation-potential/internal/domain/geo"
)

// FeatureCollectionType is the only accepted GeoJSON collection type.
const FeatureCollectionType = "FeatureCollection"

// Geometry is a GeoJSON point geometry.  Coordinates are [lng, lat].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Location converts the geometry into a lat-first Point.
func (g Geometry) Location() (geo.Point, bool) {
	return geo.FromGeoJSON(g.Coordinates)
}

// PointProperties are the attributes of an existing recreational facility.
type PointProperties struct {
	Name          string   `json:"name"`
	Region        string   `json:"region"`
	Type          string   `json:"type,omitempty"`
	Capacity      Capacity `json:"capacity"`
	HasRestaurant bool     `json:"has_restaurant,omitempty"`
	HasHotel      bool     `json:"has_hotel,omitempty"`
}

// RecreationalPoint is an existing facility as a GeoJSON Feature.
type RecreationalPoint struct {
	Type       string          `json:"type"`
	Geometry   Geometry        `json:"geometry"`
	Properties PointProperties `json:"properties"`
}

// PointCollection is the recreational points file.
type PointCollection struct {
	Type     string              `json:"type"`
	Features []RecreationalPoint `json:"features"`
}

// FireProperties are the attributes of a fire incident.
type FireProperties struct {
	Name        string    `json:"name,omitempty"`
	Region      string    `json:"region"`
	AreaHa      float64   `json:"area_ha"`
	Date        string    `json:"date"`
	CauseType   CauseType `json:"cause_type"`
	Cause       string    `json:"cause,omitempty"`
	Description string    `json:"description,omitempty"`
}

// FireIncident is a recorded forest fire as a GeoJSON Feature.
type FireIncident struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties FireProperties `json:"properties"`
}

// Location returns the incident position.
func (f FireIncident) Location() (geo.Point, bool) {
	return f.Geometry.Location()
}

// FireMetadata summarises the fire dataset.
type FireMetadata struct {
	TotalFires  int             `json:"total_fires"`
	HumanCaused int             `json:"human_caused"`
	OtherCauses int             `json:"other_causes"`
	Year        int             `json:"year,omitempty"`
	Regions     json.RawMessage `json:"regions,omitempty"`
	Note        string          `json:"note,omitempty"`
}

// FireCollection is the forest fires file.
type FireCollection struct {
	Type     string         `json:"type"`
	Metadata *FireMetadata  `json:"metadata,omitempty"`
	Features []FireIncident `json:"features"`
}

// RegionsFile is the population dataset envelope.
type RegionsFile struct {
	Regions []RegionRecord `json:"ukraine_regions_data"`
}

// InfrastructureSection holds the per-region infrastructure list.
type InfrastructureSection struct {
	Regions []InfrastructureRecord `json:"regions"`
}

// InfrastructureFile is the infrastructure dataset envelope.
type InfrastructureFile struct {
	Infrastructure InfrastructureSection `json:"ukraine_infrastructure"`
}

// ProtectedAreasSection holds the per-region protected area list.
type ProtectedAreasSection struct {
	Regions []ProtectedAreaRecord `json:"regions"`
}

// ProtectedAreasFile is the protected areas dataset envelope.
type ProtectedAreasFile struct {
	ProtectedAreas ProtectedAreasSection `json:"ukraine_protected_areas"`
}

//Personal.AI order the ending
