package dataset_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"github.com/turtacn/recreation-potential/internal/domain/dataset"
	"github.com/turtacn/recreation-potential/internal/testutil"
	"github.com/turtacn/recreation-potential/pkg/errors"
)

func TestParseCapacity(t *testing.T) {
	tests := []struct {
		in        string
		kind      dataset.CapacityKind
		effective float64
	}{
		{"120", dataset.CapacityNumeric, 120},
		{" 45 ", dataset.CapacityNumeric, 45},
		{"12,5", dataset.CapacityNumeric, 12.5},
		{"34-36", dataset.CapacityRange, 34},
		{"20 – 40", dataset.CapacityRange, 20},
		{"", dataset.CapacityUnknown, 0},
		{"невідомо", dataset.CapacityUnknown, 0},
		{"до 50", dataset.CapacityUnknown, 0},
		{"50 місць", dataset.CapacityUnknown, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c := dataset.ParseCapacity(tt.in)
			assert.Equal(t, tt.kind, c.Kind)
			assert.Equal(t, tt.effective, c.Effective())
		})
	}
}

func TestCapacity_UnmarshalJSON(t *testing.T) {
	var p struct {
		Capacity dataset.Capacity `json:"capacity"`
	}
	cases := map[string]float64{
		`{"capacity": 80}`:       80,
		`{"capacity": "34-36"}`:  34,
		`{"capacity": null}`:     0,
		`{"capacity": "—"}`:      0,
		`{"capacity": [1, 2]}`:   0,
		`{"capacity": {"a": 1}}`: 0,
		`{}`:                     0,
	}
	for doc, want := range cases {
		p.Capacity = dataset.Capacity{}
		require.NoError(t, json.Unmarshal([]byte(doc), &p), doc)
		assert.Equal(t, want, p.Capacity.Effective(), doc)
	}
}

func TestCapacity_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(dataset.NumericCapacity(80))
	require.NoError(t, err)
	assert.Equal(t, "80", string(data))

	data, err = json.Marshal(dataset.ParseCapacity("34-36"))
	require.NoError(t, err)
	assert.Equal(t, `"34-36"`, string(data))

	data, err = json.Marshal(dataset.Capacity{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestParseCauseType(t *testing.T) {
	for _, s := range []string{"людський фактор", "Людський фактор", "human factor"} {
		c, err := dataset.ParseCauseType(s)
		require.NoError(t, err, s)
		assert.True(t, c.IsHuman(), s)
	}
	c, err := dataset.ParseCauseType("природні причини")
	require.NoError(t, err)
	assert.Equal(t, dataset.CauseNatural, c)
	assert.False(t, c.IsHuman())

	_, err = dataset.ParseCauseType("блискавка")
	assert.Error(t, err)
}

func TestCauseType_JSON(t *testing.T) {
	var p dataset.FireProperties
	require.NoError(t, json.Unmarshal([]byte(`{"cause_type": "природні причини"}`), &p))
	assert.Equal(t, dataset.CauseNatural, p.CauseType)

	assert.Error(t, json.Unmarshal([]byte(`{"cause_type": "інше"}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"cause_type": 3}`), &p))

	data, err := json.Marshal(dataset.CauseHumanFactor)
	require.NoError(t, err)
	assert.Equal(t, `"людський фактор"`, string(data))
}

func TestElectricityReliability(t *testing.T) {
	assert.Equal(t, dataset.ReliabilityHigh, dataset.ParseElectricityReliability("висока"))
	assert.Equal(t, dataset.ReliabilityMedium, dataset.ParseElectricityReliability(" середня "))
	assert.Equal(t, dataset.ReliabilityOther, dataset.ParseElectricityReliability("низька"))

	assert.Equal(t, 1.0, dataset.ReliabilityHigh.Bonus())
	assert.Equal(t, 0.5, dataset.ReliabilityMedium.Bonus())
	assert.Equal(t, 0.0, dataset.ReliabilityOther.Bonus())

	var a dataset.AnthropogenicRecord
	require.NoError(t, json.Unmarshal([]byte(`{"electricity_reliability": 7}`), &a))
	assert.Equal(t, dataset.ReliabilityOther, a.ElectricityReliability)
}

func TestRoad_IsInternational(t *testing.T) {
	assert.True(t, dataset.Road{Type: "міжнародна"}.IsInternational())
	assert.True(t, dataset.Road{Type: norm.NFD.String("міжнародна")}.IsInternational())
	assert.False(t, dataset.Road{Type: "національна"}.IsInternational())
}

func TestParseKind(t *testing.T) {
	k, err := dataset.ParseKind("protected-areas")
	require.NoError(t, err)
	assert.Equal(t, dataset.KindProtectedAreas, k)
	assert.Equal(t, "ukraine_protected_areas.json", k.FileName())

	k, err = dataset.ParseKind("forest-fires")
	require.NoError(t, err)
	assert.Equal(t, dataset.KindFires, k)

	_, err = dataset.ParseKind("weather")
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetUnknown))
	assert.True(t, errors.IsNotFound(err))

	for _, kind := range dataset.AllKinds {
		assert.NotEmpty(t, kind.FileName(), kind)
	}
}

func TestBundle_ApplyFixtures(t *testing.T) {
	var b dataset.Bundle
	for _, kind := range dataset.AllKinds {
		require.NoError(t, b.Apply(kind, testutil.DatasetJSON(t, kind)), kind)
		assert.True(t, b.Has(kind), kind)
	}
	require.NoError(t, b.Complete())
	assert.Len(t, b.Regions.Regions, dataset.ExpectedRegionCount)
	assert.Equal(t, 7, b.Fires.Metadata.TotalFires)
}

func TestBundle_ApplyLeavesBundleUnchangedOnError(t *testing.T) {
	var b dataset.Bundle
	require.NoError(t, b.Apply(dataset.KindPopulation, testutil.DatasetJSON(t, dataset.KindPopulation)))
	before := b.Regions

	err := b.Apply(dataset.KindPopulation, []byte(`{"ukraine_regions_data": []}`))
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetInvalid))
	assert.Same(t, before, b.Regions)
}

func TestBundle_ApplyRejects(t *testing.T) {
	regions := testutil.Regions()
	regions.Regions = regions.Regions[:23]
	short, _ := json.Marshal(regions)

	dup := testutil.Regions()
	dup.Regions[1].Name = dup.Regions[0].Name
	duplicated, _ := json.Marshal(dup)

	points := testutil.Points()
	points.Features[0].Geometry.Coordinates = []float64{45.0, 49.0}
	outside, _ := json.Marshal(points)

	wrongType := testutil.Points()
	wrongType.Type = "Feature"
	notCollection, _ := json.Marshal(wrongType)

	empty, _ := json.Marshal(&dataset.FireCollection{Type: dataset.FeatureCollectionType})

	tests := []struct {
		name   string
		kind   dataset.Kind
		data   []byte
		detail string
	}{
		{"23 regions", dataset.KindPopulation, short, "expected 24 regions, got 23"},
		{"duplicate region", dataset.KindPopulation, duplicated, "duplicated"},
		{"point outside bounds", dataset.KindPoints, outside, "outside Ukraine bounds"},
		{"not a collection", dataset.KindPoints, notCollection, "FeatureCollection"},
		{"no fires", dataset.KindFires, empty, "features must not be empty"},
		{"malformed JSON", dataset.KindInfrastructure, []byte(`{"ukraine_infrastructure": `), ""},
		{"unknown cause", dataset.KindFires, []byte(`{"type":"FeatureCollection","features":[{"properties":{"cause_type":"інше"}}]}`), ""},
		{"short infrastructure", dataset.KindInfrastructure, []byte(`{"ukraine_infrastructure": {"regions": []}}`), "expected 24"},
		{"short protected areas", dataset.KindProtectedAreas, []byte(`{"ukraine_protected_areas": {"regions": []}}`), "expected 24"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b dataset.Bundle
			err := b.Apply(tt.kind, tt.data)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetInvalid), err.Error())
			assert.Contains(t, err.Error(), tt.detail)
			assert.False(t, b.Has(tt.kind))
		})
	}
}

func TestBundle_MissingCauseType(t *testing.T) {
	fires := testutil.Fires()
	data, err := json.Marshal(fires)
	require.NoError(t, err)
	doc := strings.Replace(string(data), `,"cause_type":"людський фактор"`, "", 1)

	var b dataset.Bundle
	err = b.Apply(dataset.KindFires, []byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feature #0: cause_type is missing")
}

func TestValidate_ReportsAtMostTwentyIssues(t *testing.T) {
	points := testutil.Points()
	for i := 0; i < 30; i++ {
		points.Features = append(points.Features, dataset.RecreationalPoint{
			Type:       "Feature",
			Geometry:   dataset.Geometry{Type: "Point", Coordinates: []float64{10, 10}},
			Properties: dataset.PointProperties{Name: fmt.Sprintf("p%d", i)},
		})
	}
	err := dataset.ValidatePoints(points)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "and 10 more")
	assert.Equal(t, 20, strings.Count(err.Error(), "outside Ukraine bounds"))
}

func TestBundle_Complete(t *testing.T) {
	var b dataset.Bundle
	err := b.Complete()
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetNotLoaded))

	assert.Error(t, b.Apply(dataset.Kind("weather"), []byte(`{}`)))
}

func TestSnapshot_Lookups(t *testing.T) {
	s := testutil.Snapshot(t)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "fixture", s.Source)
	assert.Len(t, s.RegionNames(), 24)

	r, ok := s.Region(norm.NFD.String(testutil.HighPotentialRegion))
	require.True(t, ok)
	assert.Equal(t, int64(2_500_000), r.Population)

	infra, ok := s.Infrastructure(testutil.HighPotentialRegion)
	require.True(t, ok)
	assert.Equal(t, 2, infra.InternationalRoadCount())

	pa, ok := s.ProtectedArea(" " + testutil.HighPotentialRegion + " ")
	require.True(t, ok)
	assert.Len(t, pa.NotableObjects, 3)

	assert.Len(t, s.PointsIn(testutil.HighPotentialRegion), 3)
	assert.Len(t, s.PointsIn("Сумська область"), 0)
	assert.Len(t, s.FiresIn(testutil.HighPotentialRegion), 6)
	assert.Len(t, s.AllPointLocations(), 6)
	assert.Len(t, s.AllFires(), 7)
	assert.NotNil(t, s.FireMetadata())

	_, ok = s.Region("Атлантида")
	assert.False(t, ok)

	assert.Equal(t, dataset.Counts{
		Regions: 24, Infrastructure: 24, ProtectedAreas: 24, RecreationalPoints: 6, Fires: 7,
	}, s.Counts())
}

func TestSnapshot_OptionalDatasetsMissing(t *testing.T) {
	s, err := dataset.NewSnapshot(dataset.Bundle{Regions: testutil.Regions()}, "partial")
	require.NoError(t, err)

	_, ok := s.Infrastructure(testutil.HighPotentialRegion)
	assert.False(t, ok)
	_, ok = s.ProtectedArea(testutil.HighPotentialRegion)
	assert.False(t, ok)
	assert.Empty(t, s.PointsIn(testutil.HighPotentialRegion))
	assert.Empty(t, s.AllFires())
	assert.Nil(t, s.FireMetadata())
}

func TestSnapshot_RequiresRegions(t *testing.T) {
	_, err := dataset.NewSnapshot(dataset.Bundle{Points: testutil.Points()}, "broken")
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetNotLoaded))
}

func TestSnapshot_UniqueVersions(t *testing.T) {
	a := testutil.Snapshot(t)
	b := testutil.Snapshot(t)
	assert.NotEqual(t, a.ID, b.ID)
}

//Personal.AI order the ending
