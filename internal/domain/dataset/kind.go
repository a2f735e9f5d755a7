package dataset

import (
	"github.com/turtacn/recreation-potential/pkg/errors"
)

// Kind names one of the five input datasets.
type Kind string

const (
	KindPopulation     Kind = "population"
	KindInfrastructure Kind = "infrastructure"
	KindProtectedAreas Kind = "protected-areas"
	KindPoints         Kind = "recreational-points"
	KindFires          Kind = "fires"
)

// AllKinds lists the datasets in load order.
var AllKinds = []Kind{KindPopulation, KindInfrastructure, KindProtectedAreas, KindPoints, KindFires}

var fileNames = map[Kind]string{
	KindPopulation:     "ukraine_population_data.json",
	KindInfrastructure: "ukraine_infrastructure.json",
	KindProtectedAreas: "ukraine_protected_areas.json",
	KindPoints:         "recreational_points_web.geojson",
	KindFires:          "forest_fires.geojson",
}

// FileName returns the default file name of the dataset inside the data dir.
func (k Kind) FileName() string { return fileNames[k] }

// Required reports whether a snapshot cannot be built without this dataset.
// Only the population dataset is mandatory; region identity comes from it.
func (k Kind) Required() bool { return k == KindPopulation }

func (k Kind) String() string { return string(k) }

// ParseKind resolves a dataset name as used in URLs and CLI flags.  The
// legacy alias "population-data" and "infrastructure-data" are accepted too.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "population", "population-data":
		return KindPopulation, nil
	case "infrastructure", "infrastructure-data":
		return KindInfrastructure, nil
	case "protected-areas":
		return KindProtectedAreas, nil
	case "recreational-points", "points":
		return KindPoints, nil
	case "fires", "forest-fires":
		return KindFires, nil
	}
	return "", errors.New(errors.ErrCodeDatasetUnknown, "unknown dataset").WithDetail(s)
}

//Personal.AI order the ending
