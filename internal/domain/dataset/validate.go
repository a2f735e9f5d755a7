package dataset

import (
	"fmt"
	"strings"

	"github.com/turtacn/recreation-potential/internal/domain/geo"
	"github.com/turtacn/recreation-potential/pkg/errors"
)

// ExpectedRegionCount is the number of oblasts every regional dataset covers.
const ExpectedRegionCount = 24

const maxReportedIssues = 20

// issues collects validation problems of one dataset.
type issues struct {
	kind  Kind
	items []string
}

func (is *issues) addf(format string, args ...interface{}) {
	is.items = append(is.items, fmt.Sprintf(format, args...))
}

func (is *issues) err() error {
	if len(is.items) == 0 {
		return nil
	}
	shown := is.items
	if len(shown) > maxReportedIssues {
		shown = shown[:maxReportedIssues]
	}
	detail := strings.Join(shown, "; ")
	if extra := len(is.items) - len(shown); extra > 0 {
		detail += fmt.Sprintf("; and %d more", extra)
	}
	return errors.DatasetInvalid(string(is.kind), detail)
}

// ValidateRegions checks the population dataset.
func ValidateRegions(f *RegionsFile) error {
	is := &issues{kind: KindPopulation}
	if f == nil {
		is.addf("document is empty")
		return is.err()
	}
	if len(f.Regions) != ExpectedRegionCount {
		is.addf("expected %d regions, got %d", ExpectedRegionCount, len(f.Regions))
	}
	seen := make(map[string]bool, len(f.Regions))
	for i, r := range f.Regions {
		name := geo.NormalizeName(r.Name)
		switch {
		case name == "":
			is.addf("region #%d has no name", i)
		case seen[name]:
			is.addf("region %q is duplicated", r.Name)
		}
		seen[name] = true
		if r.Population < 0 {
			is.addf("%s: population must not be negative", r.Name)
		}
		if r.AreaKm2 < 0 {
			is.addf("%s: area_km2 must not be negative", r.Name)
		}
		if r.ForestCoveragePercent < 0 || r.ForestCoveragePercent > 100 {
			is.addf("%s: forest_coverage_percent %.1f outside [0,100]", r.Name, r.ForestCoveragePercent)
		}
	}
	return is.err()
}

// ValidateInfrastructure checks the infrastructure dataset.
func ValidateInfrastructure(f *InfrastructureFile) error {
	is := &issues{kind: KindInfrastructure}
	if f == nil {
		is.addf("document is empty")
		return is.err()
	}
	regions := f.Infrastructure.Regions
	if len(regions) != ExpectedRegionCount {
		is.addf("expected %d regions, got %d", ExpectedRegionCount, len(regions))
	}
	for i, r := range regions {
		if geo.NormalizeName(r.Region) == "" {
			is.addf("entry #%d has no region", i)
		}
		if r.Transport.AccessibilityScore < 0 || r.Transport.AccessibilityScore > 10 {
			is.addf("%s: accessibility_score %.1f outside [0,10]", r.Region, r.Transport.AccessibilityScore)
		}
	}
	return is.err()
}

// ValidateProtectedAreas checks the protected areas dataset.
func ValidateProtectedAreas(f *ProtectedAreasFile) error {
	is := &issues{kind: KindProtectedAreas}
	if f == nil {
		is.addf("document is empty")
		return is.err()
	}
	regions := f.ProtectedAreas.Regions
	if len(regions) != ExpectedRegionCount {
		is.addf("expected %d regions, got %d", ExpectedRegionCount, len(regions))
	}
	for i, r := range regions {
		if geo.NormalizeName(r.Region) == "" {
			is.addf("entry #%d has no region", i)
		}
		if r.Rating < 0 || r.Rating > 10 {
			is.addf("%s: pfz_score %.1f outside [0,10]", r.Region, r.Rating)
		}
	}
	return is.err()
}

// ValidatePoints checks the recreational points collection.
func ValidatePoints(c *PointCollection) error {
	is := &issues{kind: KindPoints}
	if c == nil {
		is.addf("document is empty")
		return is.err()
	}
	if c.Type != FeatureCollectionType {
		is.addf("type must be %q, got %q", FeatureCollectionType, c.Type)
	}
	if len(c.Features) == 0 {
		is.addf("features must not be empty")
	}
	for i, f := range c.Features {
		checkLocation(is, i, f.Properties.Name, f.Geometry)
	}
	return is.err()
}

// ValidateFires checks the forest fire collection.  Every incident must carry
// one of the two known cause types.
func ValidateFires(c *FireCollection) error {
	is := &issues{kind: KindFires}
	if c == nil {
		is.addf("document is empty")
		return is.err()
	}
	if c.Type != FeatureCollectionType {
		is.addf("type must be %q, got %q", FeatureCollectionType, c.Type)
	}
	if len(c.Features) == 0 {
		is.addf("features must not be empty")
	}
	for i, f := range c.Features {
		checkLocation(is, i, f.Properties.Name, f.Geometry)
		if f.Properties.CauseType != CauseHumanFactor && f.Properties.CauseType != CauseNatural {
			is.addf("feature #%d: cause_type is missing", i)
		}
	}
	return is.err()
}

func checkLocation(is *issues, i int, name string, g Geometry) {
	p, ok := g.Location()
	if !ok {
		is.addf("feature #%d (%s): coordinates must be [lng, lat]", i, name)
		return
	}
	if !geo.UkraineBounds.Contains(p) {
		is.addf("feature #%d (%s): [%.4f, %.4f] outside Ukraine bounds", i, name, p.Lng, p.Lat)
	}
}

//Personal.AI order the ending
