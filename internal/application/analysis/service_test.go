package analysis

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/recreation-potential/internal/domain/dataset"
	"github.com/turtacn/recreation-potential/internal/domain/geo"
	"github.com/turtacn/recreation-potential/internal/domain/zone"
	"github.com/turtacn/recreation-potential/internal/infrastructure/datastore"
	"github.com/turtacn/recreation-potential/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/recreation-potential/internal/infrastructure/storage/minio"
	"github.com/turtacn/recreation-potential/internal/testutil"
	"github.com/turtacn/recreation-potential/pkg/errors"
)

var regionCount = len(geo.RegionNames())

// -----------------------------------------------------------------------
// Test doubles
// -----------------------------------------------------------------------

type staticSnapshots struct {
	snap *dataset.Snapshot
}

func (s *staticSnapshots) Current() (*dataset.Snapshot, error) {
	if s.snap == nil {
		return nil, errors.NotLoaded()
	}
	return s.snap, nil
}

// memoryCache mirrors the redis cache contract with JSON round trips.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	loads   atomic.Int32
	fail    bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) GetOrSet(ctx context.Context, key string, dest interface{}, _ time.Duration, loader func(ctx context.Context) (interface{}, error)) error {
	if c.fail {
		return errors.New(errors.CodeCacheError, "cache down")
	}
	c.mu.Lock()
	data, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		c.loads.Add(1)
		v, err := loader(ctx)
		if err != nil {
			return err
		}
		if data, err = json.Marshal(v); err != nil {
			return err
		}
		c.mu.Lock()
		c.entries[key] = data
		c.mu.Unlock()
	}
	return json.Unmarshal(data, dest)
}

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) PublishEvent(ctx context.Context, topic, key string, payload interface{}) error {
	return m.Called(ctx, topic, key, payload).Error(0)
}

type mockReports struct {
	mock.Mock
}

func (m *mockReports) PutReport(ctx context.Context, snapshotID string, data []byte) (*minio.UploadResult, error) {
	args := m.Called(ctx, snapshotID, data)
	if res := args.Get(0); res != nil {
		return res.(*minio.UploadResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockImporter struct {
	mock.Mock
}

func (m *mockImporter) Import(ctx context.Context, kind dataset.Kind, data []byte) (*datastore.ImportResult, error) {
	args := m.Called(ctx, kind, data)
	if res := args.Get(0); res != nil {
		return res.(*datastore.ImportResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type rawReader map[dataset.Kind][]byte

func (r rawReader) ReadRaw(kind dataset.Kind) ([]byte, error) {
	data, ok := r[kind]
	if !ok {
		return nil, errors.NotFound("dataset file not found")
	}
	return data, nil
}

// -----------------------------------------------------------------------
// Suite
// -----------------------------------------------------------------------

type ServiceTestSuite struct {
	suite.Suite
	snap     *dataset.Snapshot
	cache    *memoryCache
	events   *mockEvents
	reports  *mockReports
	importer *mockImporter
	logger   *testutil.MockLogger
	svc      Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.snap = testutil.Snapshot(s.T())
	s.cache = newMemoryCache()
	s.events = new(mockEvents)
	s.reports = new(mockReports)
	s.importer = new(mockImporter)
	s.logger = testutil.NewMockLogger()

	svc, err := NewService(Config{Workers: 3, CacheTTL: time.Minute}, Deps{
		Snapshots: &staticSnapshots{snap: s.snap},
		Raw:       rawReader{dataset.KindPopulation: []byte(`{"regions":[]}`)},
		Cache:     s.cache,
		Events:    s.events,
		Reports:   s.reports,
		Importer:  s.importer,
		Logger:    s.logger,
	})
	s.Require().NoError(err)
	s.svc = svc
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) TestRegions() {
	names, err := s.svc.Regions(context.Background())
	s.Require().NoError(err)
	s.Len(names, regionCount)
}

func (s *ServiceTestSuite) TestAnalyze() {
	a, err := s.svc.Analyze(context.Background(), testutil.HighPotentialRegion)
	s.Require().NoError(err)
	s.Equal(testutil.HighPotentialRegion, a.Region)
	s.InDelta(testutil.HighPotentialScore, a.TotalScore, 1e-9)
	s.True(a.Details.Investment.ShouldBuild)
}

func (s *ServiceTestSuite) TestAnalyze_CachedPerSnapshot() {
	ctx := context.Background()
	first, err := s.svc.Analyze(ctx, testutil.MediumPotentialRegion)
	s.Require().NoError(err)
	second, err := s.svc.Analyze(ctx, testutil.MediumPotentialRegion)
	s.Require().NoError(err)

	s.Equal(first, second)
	s.EqualValues(1, s.cache.loads.Load())
	s.Contains(s.cache.entries, "analysis:"+s.snap.ID+":"+testutil.MediumPotentialRegion)
}

func (s *ServiceTestSuite) TestAnalyze_UnknownRegion() {
	_, err := s.svc.Analyze(context.Background(), "Атлантида")
	s.Require().Error(err)
	s.True(errors.IsCode(err, errors.ErrCodeRegionNotFound))
}

func (s *ServiceTestSuite) TestAnalyze_LogsUnknownCapacities() {
	_, err := s.svc.Analyze(context.Background(), testutil.HighPotentialRegion)
	s.Require().NoError(err)
	s.True(s.logger.HasMessage("debug", "facility capacities could not be parsed"))
}

func (s *ServiceTestSuite) TestAnalyzeAll_SortedDescending() {
	results, err := s.svc.AnalyzeAll(context.Background())
	s.Require().NoError(err)
	s.Require().Len(results, regionCount)

	s.Equal(testutil.HighPotentialRegion, results[0].Region)
	s.Equal(testutil.MediumPotentialRegion, results[1].Region)
	for i := 1; i < len(results); i++ {
		s.GreaterOrEqual(results[i-1].TotalScore, results[i].TotalScore)
	}
}

func (s *ServiceTestSuite) TestAnalyzeAll_TiesKeepDatasetOrder() {
	results, err := s.svc.AnalyzeAll(context.Background())
	s.Require().NoError(err)

	var want []string
	for _, name := range s.snap.RegionNames() {
		if name != testutil.HighPotentialRegion && name != testutil.MediumPotentialRegion {
			want = append(want, name)
		}
	}
	var got []string
	for _, a := range results[2:] {
		s.InDelta(testutil.NeutralScore, a.TotalScore, 1e-9, a.Region)
		got = append(got, a.Region)
	}
	s.Equal(want, got)
}

func (s *ServiceTestSuite) TestAnalyzeAll_CancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.svc.AnalyzeAll(ctx)
	s.ErrorIs(err, context.Canceled)
}

func (s *ServiceTestSuite) TestAnalyzeAll_CacheFailureDegrades() {
	s.cache.fail = true
	results, err := s.svc.AnalyzeAll(context.Background())
	s.Require().NoError(err)
	s.Len(results, regionCount)
	s.True(s.logger.HasMessage("warn", "cache unavailable, computing directly"))
}

func (s *ServiceTestSuite) TestRecommendedZones() {
	res, err := s.svc.RecommendedZones(context.Background(), ZoneQuery{})
	s.Require().NoError(err)

	s.Equal(s.snap.ID, res.SnapshotID)
	s.Require().NotEmpty(res.Zones)
	s.Equal(len(res.Zones), res.Total)
	sum := 0
	for _, n := range res.ByType {
		sum += n
	}
	s.Equal(res.Total, sum)
	for i, z := range res.Zones {
		s.Equal(testutil.HighPotentialRegion, z.Region)
		s.GreaterOrEqual(z.Priority, z.Type.Floor())
		if i > 0 {
			s.GreaterOrEqual(res.Zones[i-1].Priority, z.Priority)
		}
	}
	s.Positive(res.ByType[zone.TypeFirePrevention])
}

func (s *ServiceTestSuite) TestRecommendedZones_FilterAndLimit() {
	all, err := s.svc.RecommendedZones(context.Background(), ZoneQuery{})
	s.Require().NoError(err)

	res, err := s.svc.RecommendedZones(context.Background(), ZoneQuery{Type: "near_pfz", Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(res.Zones, 1)
	s.Equal(zone.TypeNearPFZ, res.Zones[0].Type)
	s.Equal(all.ByType[zone.TypeNearPFZ], res.Total)
	s.Equal(all.ByType, res.ByType)
}

func (s *ServiceTestSuite) TestRecommendedZones_InvalidQuery() {
	_, err := s.svc.RecommendedZones(context.Background(), ZoneQuery{Type: "lakeside"})
	s.True(errors.IsCode(err, errors.ErrCodeZoneTypeInvalid))

	_, err = s.svc.RecommendedZones(context.Background(), ZoneQuery{Limit: -1})
	s.True(errors.IsCode(err, errors.CodeInvalidParam))
}

func (s *ServiceTestSuite) TestAHPReport() {
	r := s.svc.AHPReport(context.Background())
	s.Len(r.Weights, 7)
	s.InDelta(1.0, r.Weights.Sum(), 1e-6)
}

func (s *ServiceTestSuite) TestDataStatus() {
	st := s.svc.DataStatus(context.Background())
	s.True(st.Loaded)
	s.Equal(s.snap.ID, st.SnapshotID)
	s.Equal(s.snap.Counts(), st.Counts)
	s.Require().NotNil(st.FireMetadata)
	s.Equal(7, st.FireMetadata.TotalFires)
}

func (s *ServiceTestSuite) TestRawDataset() {
	data, err := s.svc.RawDataset(context.Background(), "population-data")
	s.Require().NoError(err)
	s.JSONEq(`{"regions":[]}`, string(data))

	_, err = s.svc.RawDataset(context.Background(), "weather")
	s.True(errors.IsCode(err, errors.ErrCodeDatasetUnknown))

	_, err = s.svc.RawDataset(context.Background(), "fires")
	s.True(errors.IsNotFound(err))
}

func (s *ServiceTestSuite) TestImport() {
	body := []byte(`{"type":"FeatureCollection"}`)
	s.importer.On("Import", mock.Anything, dataset.KindFires, body).
		Return(&datastore.ImportResult{Dataset: "fires", SnapshotID: "next"}, nil).Once()

	res, err := s.svc.Import(context.Background(), "forest-fires", body)
	s.Require().NoError(err)
	s.Equal("next", res.SnapshotID)

	_, err = s.svc.Import(context.Background(), "fires", nil)
	s.True(errors.IsCode(err, errors.CodeInvalidParam))
	s.importer.AssertExpectations(s.T())
}

func (s *ServiceTestSuite) TestExport() {
	s.reports.On("PutReport", mock.Anything, s.snap.ID, mock.MatchedBy(func(data []byte) bool {
		var r Report
		return json.Unmarshal(data, &r) == nil && len(r.Results) == regionCount && len(r.Zones) > 0
	})).Return(&minio.UploadResult{Bucket: "recreation-reports", ObjectKey: "reports/x/y.json", Size: 42}, nil).Once()
	s.events.On("PublishEvent", mock.Anything, kafka.TopicZonesRanked, s.snap.ID, mock.MatchedBy(func(p kafka.ZonesRankedPayload) bool {
		return p.ReportKey == "reports/x/y.json" && p.Total > 0 && p.TopZoneID != ""
	})).Return(nil).Once()

	res, err := s.svc.Export(context.Background())
	s.Require().NoError(err)
	s.Equal("reports/x/y.json", res.ObjectKey)
	s.Equal(regionCount, res.Regions)
	s.reports.AssertExpectations(s.T())
	s.events.AssertExpectations(s.T())
}

func (s *ServiceTestSuite) TestExport_StorageFailure() {
	s.reports.On("PutReport", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New(errors.CodeStorageError, "bucket missing")).Once()

	_, err := s.svc.Export(context.Background())
	s.True(errors.IsCode(err, errors.CodeStorageError))
	s.events.AssertNotCalled(s.T(), "PublishEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServiceTestSuite) TestRecompute_WithoutExportPublishesRanking() {
	s.events.On("PublishEvent", mock.Anything, kafka.TopicZonesRanked, s.snap.ID, mock.MatchedBy(func(p kafka.ZonesRankedPayload) bool {
		return p.ReportKey == "" && p.Total > 0 && p.ByType["fire_prevention"] > 0
	})).Return(nil).Once()

	res, err := s.svc.Recompute(context.Background(), false)
	s.Require().NoError(err)
	s.Equal(regionCount, res.Regions)
	s.Nil(res.Export)
	s.events.AssertExpectations(s.T())
}

func (s *ServiceTestSuite) TestSnapshotReloaded_PublishesEvent() {
	s.events.On("PublishEvent", mock.Anything, kafka.TopicSnapshotReloaded, s.snap.ID, mock.MatchedBy(func(p kafka.SnapshotReloadedPayload) bool {
		return p.Counts["population"] == regionCount && p.Counts["fires"] == 7
	})).Return(errors.New(errors.CodeMessageQueueError, "broker down")).Once()

	s.svc.SnapshotReloaded(context.Background(), s.snap, nil)
	s.events.AssertExpectations(s.T())
	s.True(s.logger.HasMessage("warn", "event publication failed"))

	s.svc.SnapshotReloaded(context.Background(), nil, errors.NotLoaded())
	s.events.AssertNumberOfCalls(s.T(), "PublishEvent", 1)
}

func TestSnapshotReloaded_Quiet(t *testing.T) {
	events := &mockEvents{}
	svc, err := NewService(Config{QuietReloads: true}, Deps{
		Snapshots: &staticSnapshots{snap: testutil.Snapshot(t)},
		Events:    events,
	})
	require.NoError(t, err)

	svc.SnapshotReloaded(context.Background(), testutil.Snapshot(t), nil)
	events.AssertNotCalled(t, "PublishEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// -----------------------------------------------------------------------
// Without optional dependencies
// -----------------------------------------------------------------------

func TestNewService_RequiresSnapshots(t *testing.T) {
	_, err := NewService(Config{}, Deps{})
	assert.Error(t, err)
}

func TestService_NotLoaded(t *testing.T) {
	svc, err := NewService(Config{}, Deps{Snapshots: &staticSnapshots{}})
	require.NoError(t, err)

	_, err = svc.AnalyzeAll(context.Background())
	assert.True(t, errors.IsCode(err, errors.ErrCodeDatasetNotLoaded))
	assert.False(t, svc.DataStatus(context.Background()).Loaded)
}

func TestService_DisabledFeatures(t *testing.T) {
	svc, err := NewService(Config{}, Deps{Snapshots: &staticSnapshots{snap: testutil.Snapshot(t)}})
	require.NoError(t, err)

	_, err = svc.Export(context.Background())
	assert.True(t, errors.IsCode(err, errors.ErrCodeFeatureDisabled))
	_, err = svc.Import(context.Background(), "fires", []byte("{}"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeFeatureDisabled))

	a, err := svc.Analyze(context.Background(), testutil.HighPotentialRegion)
	require.NoError(t, err)
	assert.InDelta(t, testutil.HighPotentialScore, a.TotalScore, 1e-9)
}

func TestAssign(t *testing.T) {
	var n int
	require.NoError(t, assign(&n, 5))
	assert.Equal(t, 5, n)

	v := 7
	require.NoError(t, assign(&n, &v))
	assert.Equal(t, 7, n)

	assert.Error(t, assign(&n, "x"))
	assert.Error(t, assign(n, 1))
}

//Personal.AI order the ending
