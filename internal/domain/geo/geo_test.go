package geo

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

var (
	kyiv = Point{Lat: 50.45, Lng: 30.52}
	lviv = Point{Lat: 49.84, Lng: 24.03}
)

func TestDistance_KnownPair(t *testing.T) {
	assert.InDelta(t, 467.262, Distance(kyiv, lviv), 0.01)
}

func TestDistance_SymmetricAndZero(t *testing.T) {
	assert.InDelta(t, Distance(kyiv, lviv), Distance(lviv, kyiv), 1e-9)
	assert.Equal(t, 0.0, Distance(kyiv, kyiv))
}

func TestDistance_TriangleInequality(t *testing.T) {
	odesa := Point{Lat: 46.48, Lng: 30.73}
	assert.LessOrEqual(t, Distance(kyiv, odesa), Distance(kyiv, lviv)+Distance(lviv, odesa)+1e-9)
}

func TestDistance_Antipodal(t *testing.T) {
	d := Distance(Point{0, 0}, Point{0, 180})
	assert.InDelta(t, math.Pi*EarthRadiusKm, d, 1e-6)
}

func TestFromGeoJSON_SwapsOrder(t *testing.T) {
	p, ok := FromGeoJSON([]float64{24.03, 49.84})
	require.True(t, ok)
	assert.Equal(t, lviv, p)
	assert.Equal(t, []float64{24.03, 49.84}, p.GeoJSON())
	assert.Equal(t, [2]float64{49.84, 24.03}, p.LatLng())

	_, ok = FromGeoJSON([]float64{1})
	assert.False(t, ok)
}

func TestCountWithinRadius(t *testing.T) {
	near := DeterministicOffset(kyiv, "near", 2, 2) // exactly 2 km away
	far := DeterministicOffset(kyiv, "far", 40, 40)

	assert.Equal(t, 1, CountWithinRadius(kyiv, []Point{near, far}, 5))
	assert.Equal(t, 2, CountWithinRadius(kyiv, []Point{near, far}, 50))
	assert.Equal(t, 0, CountWithinRadius(kyiv, nil, 50))
	assert.Equal(t, 1, CountWithinRadius(kyiv, []Point{kyiv}, 0), "boundary is inclusive")
}

func TestDeterministicOffset_MatchesReferenceValues(t *testing.T) {
	cases := []struct {
		origin   Point
		seed     string
		min, max float64
		want     Point
	}{
		{lviv, "Львівська область_НПП Сколівські Бескиди_near", 3, 8, Point{49.78803990832766, 24.015100683469353}},
		{kyiv, "Київська область_М-06_road", 15, 30, Point{50.626778820592726, 30.673671484268045}},
		{Point{}, "abc", 3, 8, Point{-0.024650100419868003, -0.06772559429087628}},
	}
	for _, tc := range cases {
		got := DeterministicOffset(tc.origin, tc.seed, tc.min, tc.max)
		assert.InDelta(t, tc.want.Lat, got.Lat, 1e-9, tc.seed)
		assert.InDelta(t, tc.want.Lng, got.Lng, 1e-9, tc.seed)
	}
}

func TestDeterministicOffset_Reproducible(t *testing.T) {
	a := DeterministicOffset(kyiv, "seed-1", 3, 8)
	b := DeterministicOffset(kyiv, "seed-1", 3, 8)
	assert.Equal(t, a, b)
}

func TestDeterministicOffset_DistanceWithinRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		seed := fmt.Sprintf("region_%d_near", i)
		p := DeterministicOffset(kyiv, seed, 3, 8)
		assert.NotEqual(t, kyiv, p)
		// the 111 km/deg projection is not exact; allow a wide margin
		d := Distance(kyiv, p)
		assert.GreaterOrEqual(t, d, 1.5, seed)
		assert.LessOrEqual(t, d, 10.0, seed)
	}
}

func TestDeterministicOffset_DistinctSeedsSpread(t *testing.T) {
	seen := map[Point]bool{}
	for i := 0; i < 50; i++ {
		seen[DeterministicOffset(kyiv, fmt.Sprintf("s%d", i), 15, 30)] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestDeterministicOffset_DegenerateRange(t *testing.T) {
	p := DeterministicOffset(kyiv, "x", 5, 4)
	assert.NotEqual(t, kyiv, p)
	assert.LessOrEqual(t, Distance(kyiv, p), 5.1)
}

func TestSeedHash_IsUnsigned128(t *testing.T) {
	h := SeedHash("anything")
	assert.Equal(t, 1, h.Sign())
	assert.LessOrEqual(t, h.BitLen(), 128)
}

func TestCentroid(t *testing.T) {
	c := Centroid([]Point{{48, 30}, {50, 32}})
	assert.Equal(t, Point{49, 31}, c)
	assert.Equal(t, Point{}, Centroid(nil))
}

func TestUkraineBounds(t *testing.T) {
	assert.True(t, UkraineBounds.Contains(kyiv))
	assert.True(t, UkraineBounds.Contains(Point{44.0, 21.5}))
	assert.False(t, UkraineBounds.Contains(Point{53.0, 30.0}))
	assert.False(t, UkraineBounds.Contains(Point{48.0, 41.0}))

	assert.True(t, UkraineBounds.Contains(Point{52.3, 31.0}))
	assert.False(t, ZoneBounds.Contains(Point{52.3, 31.0}))
	assert.True(t, ZoneBounds.Contains(Point{52.0, 31.0}))
}

func TestCenterOf(t *testing.T) {
	p, ok := CenterOf("Львівська область")
	assert.True(t, ok)
	assert.Equal(t, lviv, p)

	p, ok = CenterOf("  Київська область ")
	assert.True(t, ok)
	assert.Equal(t, kyiv, p)

	p, ok = CenterOf("Атлантида")
	assert.False(t, ok)
	assert.Equal(t, DefaultCenter, p)

	assert.Equal(t, 24, KnownRegions())
	names := RegionNames()
	assert.Len(t, names, 24)
	assert.True(t, sort.StringsAreSorted(names))
}

func TestCenterOf_DecomposedInput(t *testing.T) {
	decomposed := norm.NFD.String("Київська область")
	require.NotEqual(t, "Київська область", decomposed)

	p, ok := CenterOf(decomposed)
	assert.True(t, ok)
	assert.Equal(t, kyiv, p)
}

//Personal.AI order the ending
