package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/recreation-potential/internal/domain/scoring"
	"github.com/turtacn/recreation-potential/pkg/errors"
)

func baseAnalysis() *scoring.RegionAnalysis {
	return &scoring.RegionAnalysis{
		Region:              "Тестова область",
		TotalScore:          60,
		DemandScore:         10,
		NatureScore:         5,
		AccessibilityScore:  5,
		InfrastructureScore: 4,
		FireScore:           1,
	}
}

func TestComprehensivePriority(t *testing.T) {
	tests := []struct {
		name        string
		zoneType    Type
		clusterSize int
		competitors int
		distance    float64
		pfzName     string
		want        int
	}{
		{"roadside without competitors", TypeRoadside, 0, 0, 0, "", 90},
		{"roadside with 3 competitors", TypeRoadside, 0, 3, 0, "", 83},
		{"national park", TypeNearPFZ, 0, 0, 3, "НПП Синевир", 95},
		{"national park by full name", TypeNearPFZ, 0, 0, 3, "Національний природний парк Подільські Товтри", 95},
		{"reserve", TypeNearPFZ, 0, 0, 5, "Карпатський заповідник", 90},
		{"landscape park", TypeNearPFZ, 0, 0, 5, "РЛП Знесіння", 85},
		{"landscape park far away", TypeNearPFZ, 0, 0, 12, "РЛП Знесіння", 80},
		{"other object", TypeNearPFZ, 0, 0, 3, "Озеро Синевир", 83},
		{"fire cluster of 7 crowded", TypeFirePrevention, 7, 12, 0, "", 77},
		{"fire cluster of 10", TypeFirePrevention, 10, 0, 0, "", 97},
		{"fire cluster too small", TypeFirePrevention, 2, 0, 0, "", 77},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComprehensivePriority(tt.zoneType, baseAnalysis(), tt.clusterSize, tt.competitors, tt.distance, tt.pfzName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComprehensivePriority_CapsRegionalTerms(t *testing.T) {
	a := &scoring.RegionAnalysis{
		DemandScore:         40,
		NatureScore:         30,
		AccessibilityScore:  30,
		InfrastructureScore: 30,
		FireScore:           5,
	}
	assert.Equal(t, 100, ComprehensivePriority(TypeRoadside, a, 0, 0, 0, ""))

	low := &scoring.RegionAnalysis{}
	assert.Equal(t, 50, ComprehensivePriority(TypeRoadside, low, 0, 20, 0, ""))
	assert.Equal(t, 37, ComprehensivePriority(TypeFirePrevention, low, 0, 20, 0, ""))
}

func TestComprehensivePriority_FireBonusCappedAtFive(t *testing.T) {
	a := baseAnalysis()
	a.FireScore = 5
	// 50+10+5+5+4 + 10 (cluster of 3) + min(5+2, 5)
	assert.Equal(t, 89, ComprehensivePriority(TypeFirePrevention, a, 3, 0, 0, ""))
}

func TestComprehensivePriority_Truncates(t *testing.T) {
	a := baseAnalysis()
	a.NatureScore = 5.9
	assert.Equal(t, 90, ComprehensivePriority(TypeRoadside, a, 0, 0, 0, ""))
}

func TestCompetitionPenalty(t *testing.T) {
	cases := map[int]float64{0: 0, 1: -3, 2: -3, 3: -7, 5: -7, 6: -12, 10: -12, 11: -15, 100: -15}
	for n, want := range cases {
		assert.Equal(t, want, CompetitionPenalty(n), "competitors=%d", n)
	}
	prev := CompetitionPenalty(0)
	for n := 1; n < 30; n++ {
		cur := CompetitionPenalty(n)
		assert.LessOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestRank_FiltersByFloorAndSortsStable(t *testing.T) {
	zones := []Zone{
		{ID: "a", Type: TypeNearPFZ, Priority: 59},
		{ID: "b", Type: TypeRoadside, Priority: 55},
		{ID: "c", Type: TypeFirePrevention, Priority: 80},
		{ID: "d", Type: TypeNearPFZ, Priority: 60},
		{ID: "e", Type: TypeRoadside, Priority: 80},
		{ID: "f", Type: TypeFirePrevention, Priority: 54},
	}
	ranked := Rank(zones)

	ids := make([]string, len(ranked))
	for i, z := range ranked {
		ids[i] = z.ID
	}
	assert.Equal(t, []string{"c", "e", "d", "b"}, ids)
	assert.Len(t, zones, 6)
}

func TestCountByTypeAndFilter(t *testing.T) {
	zones := []Zone{
		{ID: "a", Type: TypeNearPFZ},
		{ID: "b", Type: TypeRoadside},
		{ID: "c", Type: TypeNearPFZ},
	}
	counts := CountByType(zones)
	assert.Equal(t, 2, counts[TypeNearPFZ])
	assert.Equal(t, 1, counts[TypeRoadside])
	assert.Equal(t, 0, counts[TypeFirePrevention])

	near := Filter(zones, TypeNearPFZ)
	assert.Len(t, near, 2)
	assert.Equal(t, "c", near[1].ID)
	assert.Empty(t, Filter(zones, TypeFirePrevention))
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("roadside")
	assert.NoError(t, err)
	assert.Equal(t, TypeRoadside, typ)

	_, err = ParseType("lakeside")
	assert.True(t, errors.IsCode(err, errors.ErrCodeZoneTypeInvalid))
}

//Personal.AI order the ending
