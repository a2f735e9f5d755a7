// Package analysis is the application layer of the recreation potential
// service.  It resolves regions against the active snapshot, runs the
// scoring and zone pipelines, caches results per snapshot version and
// publishes events about them.
package analysis

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turtacn/recreation-potential/internal/domain/ahp"
	"github.com/turtacn/recreation-potential/internal/domain/dataset"
	"github.com/turtacn/recreation-potential/internal/domain/fire"
	"github.com/turtacn/recreation-potential/internal/domain/geo"
	"github.com/turtacn/recreation-potential/internal/domain/scoring"
	"github.com/turtacn/recreation-potential/internal/domain/zone"
	"github.com/turtacn/recreation-potential/internal/infrastructure/database/redis"
	"github.com/turtacn/recreation-potential/internal/infrastructure/datastore"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/recreation-potential/pkg/errors"
)

// -----------------------------------------------------------------------
// Request / Response DTOs
// -----------------------------------------------------------------------

// ZoneQuery narrows a zone recommendation request.  Zero values mean no
// filter and no limit.
type ZoneQuery struct {
	Type  string
	Limit int
}

// ZoneRecommendations is the ranked zone list.  Total counts the zones that
// match the type filter before the limit is applied; ByType counts every
// ranked zone.
type ZoneRecommendations struct {
	SnapshotID string            `json:"snapshot_id"`
	Zones      []zone.Zone       `json:"zones"`
	Total      int               `json:"total"`
	ByType     map[zone.Type]int `json:"by_type"`
}

// DataStatus describes the active snapshot.
type DataStatus struct {
	Loaded       bool                  `json:"loaded"`
	SnapshotID   string                `json:"snapshot_id,omitempty"`
	LoadedAt     time.Time             `json:"loaded_at,omitempty"`
	Source       string                `json:"source,omitempty"`
	Counts       dataset.Counts        `json:"counts"`
	FireMetadata *dataset.FireMetadata `json:"fire_metadata,omitempty"`
}

// -----------------------------------------------------------------------
// Service Interface
// -----------------------------------------------------------------------

// Service is the application-level API used by the HTTP, CLI and worker
// entry points.
type Service interface {
	Regions(ctx context.Context) ([]string, error)
	Analyze(ctx context.Context, region string) (*scoring.RegionAnalysis, error)
	AnalyzeAll(ctx context.Context) ([]*scoring.RegionAnalysis, error)
	RecommendedZones(ctx context.Context, q ZoneQuery) (*ZoneRecommendations, error)
	AHPReport(ctx context.Context) ahp.Report
	DataStatus(ctx context.Context) *DataStatus
	RawDataset(ctx context.Context, name string) ([]byte, error)
	Import(ctx context.Context, name string, data []byte) (*datastore.ImportResult, error)
	Export(ctx context.Context) (*ExportResult, error)
	Recompute(ctx context.Context, export bool) (*RecomputeResult, error)
	SnapshotReloaded(ctx context.Context, snap *dataset.Snapshot, err error)
}

// Config tunes the service.
type Config struct {
	Workers  int
	CacheTTL time.Duration

	// QuietReloads keeps SnapshotReloaded from announcing reloads.  Event
	// consumers set it so their own reloads do not feed back into the topic.
	QuietReloads bool
}

// Deps are the collaborators of the service.  Snapshots is required; every
// other field may be nil to disable the feature it backs.
type Deps struct {
	Snapshots SnapshotSource
	Raw       RawDatasetReader
	Cache     Cache
	Events    EventPublisher
	Reports   ReportStore
	Importer  DatasetImporter
	Metrics   *prometheus.AppMetrics
	Logger    logging.Logger
}

// -----------------------------------------------------------------------
// Service Implementation
// -----------------------------------------------------------------------

type serviceImpl struct {
	snapshots SnapshotSource
	raw       RawDatasetReader
	cache     Cache
	events    EventPublisher
	reports   ReportStore
	importer  DatasetImporter
	metrics   *prometheus.AppMetrics
	logger    logging.Logger

	scorer    *scoring.Scorer
	generator *zone.Generator
	ahp       *ahp.Calculator
	workers   int
	cacheTTL  time.Duration
	quiet     bool
	now       func() time.Time
}

// NewService wires a Service.
func NewService(cfg Config, deps Deps) (Service, error) {
	if deps.Snapshots == nil {
		return nil, errors.InvalidParam("snapshot source is required")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 4
	}
	if deps.Metrics == nil {
		deps.Metrics = prometheus.NewNopAppMetrics()
	}
	if deps.Logger == nil {
		deps.Logger = logging.NewNopLogger()
	}
	return &serviceImpl{
		snapshots: deps.Snapshots,
		raw:       deps.Raw,
		cache:     deps.Cache,
		events:    deps.Events,
		reports:   deps.Reports,
		importer:  deps.Importer,
		metrics:   deps.Metrics,
		logger:    deps.Logger.Named("analysis"),
		scorer:    scoring.NewScorer(),
		generator: zone.NewGenerator(),
		ahp:       ahp.NewDefaultCalculator(),
		workers:   cfg.Workers,
		cacheTTL:  cfg.CacheTTL,
		quiet:     cfg.QuietReloads,
		now:       time.Now,
	}, nil
}

func (s *serviceImpl) Regions(_ context.Context) ([]string, error) {
	snap, err := s.snapshots.Current()
	if err != nil {
		return nil, err
	}
	return snap.RegionNames(), nil
}

// Analyze scores one region.  Unknown regions are an error; no default
// region is ever substituted.
func (s *serviceImpl) Analyze(ctx context.Context, region string) (*scoring.RegionAnalysis, error) {
	snap, err := s.snapshots.Current()
	if err != nil {
		return nil, err
	}
	rec, ok := snap.Region(region)
	if !ok {
		return nil, errors.RegionNotFound(region)
	}
	name := rec.Name

	var out scoring.RegionAnalysis
	err = s.cached(ctx, redis.AnalysisKey(snap.ID, geo.NormalizeName(name)), &out, func(context.Context) (interface{}, error) {
		timer := prometheus.NewTimer(s.metrics.AnalysisDuration.WithLabelValues("analyze"))
		defer timer.ObserveDuration()
		return s.score(snap, name, fire.HumanCaused(snap.AllFires())), nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeAll scores every region of the snapshot, highest total first.
func (s *serviceImpl) AnalyzeAll(ctx context.Context) ([]*scoring.RegionAnalysis, error) {
	snap, err := s.snapshots.Current()
	if err != nil {
		return nil, err
	}
	return s.analyzeAll(ctx, snap)
}

func (s *serviceImpl) analyzeAll(ctx context.Context, snap *dataset.Snapshot) ([]*scoring.RegionAnalysis, error) {
	var out []*scoring.RegionAnalysis
	err := s.cached(ctx, redis.AllAnalysesKey(snap.ID), &out, func(ctx context.Context) (interface{}, error) {
		return s.computeAll(ctx, snap)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *serviceImpl) computeAll(ctx context.Context, snap *dataset.Snapshot) ([]*scoring.RegionAnalysis, error) {
	timer := prometheus.NewTimer(s.metrics.AnalysisDuration.WithLabelValues("analyze_all"))
	defer timer.ObserveDuration()

	names := snap.RegionNames()
	humanFires := fire.HumanCaused(snap.AllFires())
	results := make([]*scoring.RegionAnalysis, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.score(snap, name, humanFires)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})
	return results, nil
}

// score runs the scorer for one region of snap.  Missing optional records
// fall back to neutral defaults inside the scorer.
func (s *serviceImpl) score(snap *dataset.Snapshot, name string, humanFires []dataset.FireIncident) *scoring.RegionAnalysis {
	rec, _ := snap.Region(name)
	infra, hasInfra := snap.Infrastructure(name)
	protected, hasProtected := snap.ProtectedArea(name)
	if !hasInfra || !hasProtected {
		s.logger.Debug("optional record missing, using defaults",
			logging.String("region", name),
			logging.Bool("infrastructure", hasInfra),
			logging.Bool("protected_areas", hasProtected))
	}

	center, _ := geo.CenterOf(name)
	a := s.scorer.Score(scoring.Input{
		RegionName:           name,
		Region:               rec,
		Protected:            protected,
		Infra:                infra,
		Points:               snap.PointsIn(name),
		HumanFiresNearCenter: fire.CountNear(center, humanFires, scoring.FireRadiusKm),
	})

	if n := a.Details.Population.UnknownCapacities; n > 0 {
		s.logger.Debug("facility capacities could not be parsed",
			logging.String("region", name), logging.Int("count", n))
		s.metrics.UnknownCapacities.WithLabelValues().Add(float64(n))
	}
	s.metrics.RegionAnalysesTotal.WithLabelValues(a.Category).Inc()
	return a
}

// RecommendedZones generates, ranks and filters zone candidates for every
// qualifying region.
func (s *serviceImpl) RecommendedZones(ctx context.Context, q ZoneQuery) (*ZoneRecommendations, error) {
	var filter zone.Type
	if q.Type != "" {
		t, err := zone.ParseType(q.Type)
		if err != nil {
			return nil, err
		}
		filter = t
	}
	if q.Limit < 0 {
		return nil, errors.InvalidParam("limit must not be negative").WithDetail("limit")
	}

	snap, err := s.snapshots.Current()
	if err != nil {
		return nil, err
	}
	ranked, err := s.rankedZones(ctx, snap)
	if err != nil {
		return nil, err
	}

	res := &ZoneRecommendations{SnapshotID: snap.ID, ByType: zone.CountByType(ranked)}
	selected := ranked
	if filter != "" {
		selected = zone.Filter(ranked, filter)
	}
	res.Total = len(selected)
	if q.Limit > 0 && len(selected) > q.Limit {
		selected = selected[:q.Limit]
	}
	res.Zones = selected
	if res.Zones == nil {
		res.Zones = []zone.Zone{}
	}
	return res, nil
}

func (s *serviceImpl) rankedZones(ctx context.Context, snap *dataset.Snapshot) ([]zone.Zone, error) {
	var out []zone.Zone
	err := s.cached(ctx, redis.ZonesKey(snap.ID), &out, func(ctx context.Context) (interface{}, error) {
		analyses, err := s.analyzeAll(ctx, snap)
		if err != nil {
			return nil, err
		}
		return s.computeZones(ctx, snap, analyses)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *serviceImpl) computeZones(ctx context.Context, snap *dataset.Snapshot, analyses []*scoring.RegionAnalysis) ([]zone.Zone, error) {
	timer := prometheus.NewTimer(s.metrics.AnalysisDuration.WithLabelValues("zones"))
	defer timer.ObserveDuration()

	existing := snap.AllPointLocations()
	perRegion := make([][]zone.Zone, len(analyses))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, a := range analyses {
		if !zone.Qualifies(a) {
			continue
		}
		i, a := i, a
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			infra, _ := snap.Infrastructure(a.Region)
			protected, _ := snap.ProtectedArea(a.Region)
			perRegion[i] = s.generator.Generate(zone.RegionInput{
				Analysis:       a,
				Protected:      protected,
				Infra:          infra,
				Fires:          snap.FiresIn(a.Region),
				ExistingPoints: existing,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []zone.Zone
	for _, zs := range perRegion {
		all = append(all, zs...)
	}
	for t, n := range zone.CountByType(all) {
		s.metrics.ZonesGeneratedTotal.WithLabelValues(t.String()).Add(float64(n))
	}
	ranked := zone.Rank(all)
	for t, n := range zone.CountByType(ranked) {
		s.metrics.ZonesRanked.WithLabelValues(t.String()).Set(float64(n))
	}
	s.logger.Info("zones ranked",
		logging.String("snapshot_id", snap.ID),
		logging.Int("generated", len(all)),
		logging.Int("ranked", len(ranked)))
	return ranked, nil
}

// cached runs load through the cache when one is configured.  Cache
// failures degrade to a direct computation.
func (s *serviceImpl) cached(ctx context.Context, key string, dest interface{}, load func(context.Context) (interface{}, error)) error {
	if s.cache != nil {
		err := s.cache.GetOrSet(ctx, key, dest, s.cacheTTL, load)
		if err == nil {
			return nil
		}
		if !errors.IsCode(err, errors.CodeCacheError) && !errors.IsCode(err, errors.ErrCodeSerialization) {
			return err
		}
		s.logger.Warn("cache unavailable, computing directly", logging.String("key", key), logging.Err(err))
	}
	v, err := load(ctx)
	if err != nil {
		return err
	}
	return assign(dest, v)
}

func (s *serviceImpl) AHPReport(_ context.Context) ahp.Report {
	return s.ahp.Report(ahp.DefaultJustifications)
}

func (s *serviceImpl) DataStatus(_ context.Context) *DataStatus {
	snap, err := s.snapshots.Current()
	if err != nil {
		return &DataStatus{}
	}
	return &DataStatus{
		Loaded:       true,
		SnapshotID:   snap.ID,
		LoadedAt:     snap.LoadedAt,
		Source:       snap.Source,
		Counts:       snap.Counts(),
		FireMetadata: snap.FireMetadata(),
	}
}

func (s *serviceImpl) RawDataset(_ context.Context, name string) ([]byte, error) {
	kind, err := dataset.ParseKind(name)
	if err != nil {
		return nil, err
	}
	if s.raw == nil {
		return nil, errors.New(errors.ErrCodeFeatureDisabled, "raw dataset access is not configured")
	}
	return s.raw.ReadRaw(kind)
}

func (s *serviceImpl) Import(ctx context.Context, name string, data []byte) (*datastore.ImportResult, error) {
	kind, err := dataset.ParseKind(name)
	if err != nil {
		return nil, err
	}
	if s.importer == nil {
		return nil, errors.New(errors.ErrCodeFeatureDisabled, "dataset import is not configured")
	}
	if len(data) == 0 {
		return nil, errors.InvalidParam("dataset body is empty").WithDetail(name)
	}
	return s.importer.Import(ctx, kind, data)
}

//Personal.AI order the ending
