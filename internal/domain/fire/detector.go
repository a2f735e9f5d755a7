// Package fire groups human-caused forest fire incidents into clusters that
// mark candidate sites for fire-prevention recreation zones.
package fire

import (
	"encoding/json"

	"github.com/turtacn/recreation-potential/internal/domain/dataset"
	"github.com/turtacn/recreation-potential/internal/domain/geo"
)

const (
	DefaultRadiusKm       = 10.0
	DefaultMinClusterSize = 3
)

// Cluster is a group of fires gathered around one seed incident.
type Cluster struct {
	Center    geo.Point              `json:"center"`
	FireCount int                    `json:"fire_count"`
	Fires     []dataset.FireIncident `json:"fires"`
}

// MarshalJSON writes the centre as [lat, lng].
func (c Cluster) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Center    [2]float64             `json:"center"`
		FireCount int                    `json:"fire_count"`
		Fires     []dataset.FireIncident `json:"fires"`
	}{c.Center.LatLng(), c.FireCount, c.Fires})
}

// Detector performs single-pass radius clustering.
//
// Fires are visited in input order.  Each unassigned fire seeds a candidate
// group made of itself and every other unassigned fire within RadiusKm of the
// seed; the group is not re-expanded from its members.  A group of at least
// MinClusterSize becomes a cluster and its members are marked assigned.  A
// seed whose group is too small stays unassigned and may still be claimed by
// a later seed.  The result therefore depends on input order.
type Detector struct {
	RadiusKm       float64
	MinClusterSize int
}

// NewDetector returns a Detector with the default 10 km radius and minimum
// cluster size of 3.
func NewDetector() Detector {
	return Detector{RadiusKm: DefaultRadiusKm, MinClusterSize: DefaultMinClusterSize}
}

// Detect clusters fires.  Incidents without a usable location are ignored.
func (d Detector) Detect(fires []dataset.FireIncident) []Cluster {
	type located struct {
		fire dataset.FireIncident
		loc  geo.Point
	}
	items := make([]located, 0, len(fires))
	for _, f := range fires {
		if loc, ok := f.Location(); ok {
			items = append(items, located{fire: f, loc: loc})
		}
	}

	assigned := make([]bool, len(items))
	var clusters []Cluster
	for i := range items {
		if assigned[i] {
			continue
		}
		group := []int{i}
		for j := range items {
			if j == i || assigned[j] {
				continue
			}
			if geo.Distance(items[i].loc, items[j].loc) <= d.RadiusKm {
				group = append(group, j)
			}
		}
		if len(group) < d.MinClusterSize {
			continue
		}

		c := Cluster{FireCount: len(group), Fires: make([]dataset.FireIncident, 0, len(group))}
		locs := make([]geo.Point, 0, len(group))
		for _, j := range group {
			assigned[j] = true
			c.Fires = append(c.Fires, items[j].fire)
			locs = append(locs, items[j].loc)
		}
		c.Center = geo.Centroid(locs)
		clusters = append(clusters, c)
	}
	return clusters
}

// HumanCaused returns the fires caused by people, in input order.
func HumanCaused(fires []dataset.FireIncident) []dataset.FireIncident {
	out := make([]dataset.FireIncident, 0, len(fires))
	for _, f := range fires {
		if f.Properties.CauseType.IsHuman() {
			out = append(out, f)
		}
	}
	return out
}

// ForRegion returns the fires attributed to region, in input order.
func ForRegion(fires []dataset.FireIncident, region string) []dataset.FireIncident {
	key := geo.NormalizeName(region)
	out := make([]dataset.FireIncident, 0)
	for _, f := range fires {
		if geo.NormalizeName(f.Properties.Region) == key {
			out = append(out, f)
		}
	}
	return out
}

// CountNear counts fires within radiusKm of center.
func CountNear(center geo.Point, fires []dataset.FireIncident, radiusKm float64) int {
	n := 0
	for _, f := range fires {
		if loc, ok := f.Location(); ok && geo.Distance(center, loc) <= radiusKm {
			n++
		}
	}
	return n
}

//Personal.AI order the ending
