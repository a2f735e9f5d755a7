package geo

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultCenter is used for regions missing from the centre table.
var DefaultCenter = Point{Lat: 48.5, Lng: 31.0}

// regionCenters holds a representative point per oblast.  It is the origin for
// zone coordinate generation and the reference point of the fire sub-score.
var regionCenters = map[string]Point{
	"Київська область":          {50.45, 30.52},
	"Львівська область":         {49.84, 24.03},
	"Закарпатська область":      {48.62, 22.29},
	"Одеська область":           {46.48, 30.73},
	"Харківська область":        {49.99, 36.23},
	"Дніпропетровська область":  {48.46, 35.04},
	"Житомирська область":       {50.25, 28.66},
	"Волинська область":         {50.75, 25.32},
	"Івано-Франківська область": {48.92, 24.71},
	"Вінницька область":         {49.23, 28.47},
	"Чернігівська область":      {51.50, 31.29},
	"Рівненська область":        {50.62, 26.23},
	"Чернівецька область":       {48.29, 25.93},
	"Полтавська область":        {49.59, 34.55},
	"Черкаська область":         {49.44, 32.06},
	"Сумська область":           {50.91, 34.80},
	"Хмельницька область":       {49.42, 26.98},
	"Тернопільська область":     {49.55, 25.59},
	"Миколаївська область":      {46.97, 32.00},
	"Херсонська область":        {46.64, 32.62},
	"Кіровоградська область":    {48.51, 32.26},
	"Запорізька область":        {47.84, 35.14},
	"Донецька область":          {48.02, 37.80},
	"Луганська область":         {48.57, 39.31},
}

func init() {
	normalized := make(map[string]Point, len(regionCenters))
	for name, p := range regionCenters {
		normalized[NormalizeName(name)] = p
	}
	regionCenters = normalized
}

// NormalizeName returns the NFC form of a region name with surrounding
// whitespace removed.  Dataset files mix composed and decomposed Cyrillic
// (й, ї), so every name-keyed lookup goes through this function.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// CenterOf returns the representative point of region and whether the region
// is known.  Unknown regions get DefaultCenter.
func CenterOf(region string) (Point, bool) {
	p, ok := regionCenters[NormalizeName(region)]
	if !ok {
		return DefaultCenter, false
	}
	return p, true
}

// KnownRegions returns the number of regions in the centre table.
func KnownRegions() int {
	return len(regionCenters)
}

// RegionNames returns the names of all regions in the centre table, sorted.
func RegionNames() []string {
	out := make([]string, 0, len(regionCenters))
	for name := range regionCenters {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

//Personal.AI order the ending
