package dataset

import (
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/recreation-potential/internal/domain/geo"
)

// Snapshot is an immutable, indexed view over one consistent set of datasets.
// Reloading builds a new Snapshot; existing ones are never mutated, so readers
// may hold a Snapshot for as long as they need.
type Snapshot struct {
	ID       string
	LoadedAt time.Time
	Source   string

	regions        []RegionRecord
	infrastructure []InfrastructureRecord
	protected      []ProtectedAreaRecord
	points         []RecreationalPoint
	fires          []FireIncident
	fireMeta       *FireMetadata

	regionIdx    map[string]int
	infraIdx     map[string]int
	protectedIdx map[string]int
	pointsIdx    map[string][]int
	firesIdx     map[string][]int
	pointLocs    []geo.Point
}

// Counts is the record count of every dataset in a snapshot.
type Counts struct {
	Regions            int `json:"regions"`
	Infrastructure     int `json:"infrastructure"`
	ProtectedAreas     int `json:"protected_areas"`
	RecreationalPoints int `json:"recreational_points"`
	Fires              int `json:"fires"`
}

// NewSnapshot indexes the bundle.  The bundle must contain the population
// dataset; other datasets may be absent and are then treated as empty.
func NewSnapshot(b Bundle, source string) (*Snapshot, error) {
	if err := b.Complete(); err != nil {
		return nil, err
	}
	s := &Snapshot{
		ID:           uuid.NewString(),
		LoadedAt:     time.Now().UTC(),
		Source:       source,
		regions:      b.Regions.Regions,
		regionIdx:    make(map[string]int, len(b.Regions.Regions)),
		infraIdx:     make(map[string]int),
		protectedIdx: make(map[string]int),
		pointsIdx:    make(map[string][]int),
		firesIdx:     make(map[string][]int),
	}
	for i, r := range s.regions {
		key := geo.NormalizeName(r.Name)
		if _, dup := s.regionIdx[key]; !dup {
			s.regionIdx[key] = i
		}
	}
	if b.Infrastructure != nil {
		s.infrastructure = b.Infrastructure.Infrastructure.Regions
		for i, r := range s.infrastructure {
			key := geo.NormalizeName(r.Region)
			if _, dup := s.infraIdx[key]; !dup {
				s.infraIdx[key] = i
			}
		}
	}
	if b.ProtectedAreas != nil {
		s.protected = b.ProtectedAreas.ProtectedAreas.Regions
		for i, r := range s.protected {
			key := geo.NormalizeName(r.Region)
			if _, dup := s.protectedIdx[key]; !dup {
				s.protectedIdx[key] = i
			}
		}
	}
	if b.Points != nil {
		s.points = b.Points.Features
		s.pointLocs = make([]geo.Point, 0, len(s.points))
		for i, p := range s.points {
			key := geo.NormalizeName(p.Properties.Region)
			s.pointsIdx[key] = append(s.pointsIdx[key], i)
			if loc, ok := p.Geometry.Location(); ok {
				s.pointLocs = append(s.pointLocs, loc)
			}
		}
	}
	if b.Fires != nil {
		s.fires = b.Fires.Features
		s.fireMeta = b.Fires.Metadata
		for i, f := range s.fires {
			key := geo.NormalizeName(f.Properties.Region)
			s.firesIdx[key] = append(s.firesIdx[key], i)
		}
	}
	return s, nil
}

// Regions returns the population records in dataset order.
func (s *Snapshot) Regions() []RegionRecord { return s.regions }

// RegionNames returns region names in dataset order.
func (s *Snapshot) RegionNames() []string {
	out := make([]string, len(s.regions))
	for i, r := range s.regions {
		out[i] = r.Name
	}
	return out
}

// Region looks up a population record by name.
func (s *Snapshot) Region(name string) (*RegionRecord, bool) {
	i, ok := s.regionIdx[geo.NormalizeName(name)]
	if !ok {
		return nil, false
	}
	return &s.regions[i], true
}

// Infrastructure looks up the infrastructure record of a region.
func (s *Snapshot) Infrastructure(region string) (*InfrastructureRecord, bool) {
	i, ok := s.infraIdx[geo.NormalizeName(region)]
	if !ok {
		return nil, false
	}
	return &s.infrastructure[i], true
}

// ProtectedArea looks up the protected-area record of a region.
func (s *Snapshot) ProtectedArea(region string) (*ProtectedAreaRecord, bool) {
	i, ok := s.protectedIdx[geo.NormalizeName(region)]
	if !ok {
		return nil, false
	}
	return &s.protected[i], true
}

// PointsIn returns the recreational points attributed to a region.
func (s *Snapshot) PointsIn(region string) []RecreationalPoint {
	idx := s.pointsIdx[geo.NormalizeName(region)]
	out := make([]RecreationalPoint, len(idx))
	for i, j := range idx {
		out[i] = s.points[j]
	}
	return out
}

// AllPointLocations returns the location of every recreational point in the
// country; used for hyper-local competitor counts.
func (s *Snapshot) AllPointLocations() []geo.Point { return s.pointLocs }

// FiresIn returns the fire incidents attributed to a region.
func (s *Snapshot) FiresIn(region string) []FireIncident {
	idx := s.firesIdx[geo.NormalizeName(region)]
	out := make([]FireIncident, len(idx))
	for i, j := range idx {
		out[i] = s.fires[j]
	}
	return out
}

// AllFires returns every fire incident in dataset order.
func (s *Snapshot) AllFires() []FireIncident { return s.fires }

// FireMetadata returns the fire collection metadata, if present.
func (s *Snapshot) FireMetadata() *FireMetadata { return s.fireMeta }

// InfrastructureRecords returns the infrastructure entries in dataset order.
func (s *Snapshot) InfrastructureRecords() []InfrastructureRecord { return s.infrastructure }

// ProtectedAreaRecords returns the protected-area entries in dataset order.
func (s *Snapshot) ProtectedAreaRecords() []ProtectedAreaRecord { return s.protected }

// Points returns every recreational point in dataset order.
func (s *Snapshot) Points() []RecreationalPoint { return s.points }

// Counts reports the record counts of every dataset.
func (s *Snapshot) Counts() Counts {
	return Counts{
		Regions:            len(s.regions),
		Infrastructure:     len(s.infrastructure),
		ProtectedAreas:     len(s.protected),
		RecreationalPoints: len(s.points),
		Fires:              len(s.fires),
	}
}

//Personal.AI order the ending
