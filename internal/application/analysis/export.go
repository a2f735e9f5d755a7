package analysis

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"github.com/turtacn/recreation-potential/internal/domain/ahp"
	"github.com/turtacn/recreation-potential/internal/domain/dataset"
	"github.com/turtacn/recreation-potential/internal/domain/scoring"
	"github.com/turtacn/recreation-potential/internal/domain/zone"
	"github.com/turtacn/recreation-potential/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/recreation-potential/pkg/errors"
)

// Report is the exported document: every region analysis, the ranked zones
// and the AHP weighting the scores are calibrated against.
type Report struct {
	SnapshotID  string                    `json:"snapshot_id"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Results     []*scoring.RegionAnalysis `json:"results"`
	Zones       []zone.Zone               `json:"zones"`
	ByType      map[zone.Type]int         `json:"by_type"`
	AHP         ahp.Report                `json:"ahp"`
}

// ExportResult locates an exported report.
type ExportResult struct {
	SnapshotID string    `json:"snapshot_id"`
	ObjectKey  string    `json:"object_key"`
	Bucket     string    `json:"bucket"`
	URL        string    `json:"url,omitempty"`
	Size       int64     `json:"size"`
	Regions    int       `json:"regions"`
	Zones      int       `json:"zones"`
	ExportedAt time.Time `json:"exported_at"`
}

// BuildReport assembles the report of the active snapshot.  Analyses are
// rounded for display.
func BuildReport(ctx context.Context, svc Service) (*Report, error) {
	results, err := svc.AnalyzeAll(ctx)
	if err != nil {
		return nil, err
	}
	zones, err := svc.RecommendedZones(ctx, ZoneQuery{})
	if err != nil {
		return nil, err
	}
	rounded := make([]*scoring.RegionAnalysis, len(results))
	for i, a := range results {
		rounded[i] = a.Rounded()
	}
	return &Report{
		SnapshotID:  zones.SnapshotID,
		GeneratedAt: time.Now().UTC(),
		Results:     rounded,
		Zones:       zones.Zones,
		ByType:      zones.ByType,
		AHP:         svc.AHPReport(ctx),
	}, nil
}

// Export uploads the report of the active snapshot to object storage and
// announces it on the zones-ranked topic.
func (s *serviceImpl) Export(ctx context.Context) (*ExportResult, error) {
	if s.reports == nil {
		return nil, errors.New(errors.ErrCodeFeatureDisabled, "report export is not configured")
	}
	report, err := BuildReport(ctx, s)
	if err != nil {
		return nil, err
	}
	report.GeneratedAt = s.now().UTC()

	data, err := json.Marshal(report)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode report")
	}
	up, err := s.reports.PutReport(ctx, report.SnapshotID, data)
	prometheus.RecordResult(s.metrics.ReportExportsTotal, err)
	if err != nil {
		s.logger.Error("report export failed", logging.String("snapshot_id", report.SnapshotID), logging.Err(err))
		return nil, err
	}

	res := &ExportResult{
		SnapshotID: report.SnapshotID,
		ObjectKey:  up.ObjectKey,
		Bucket:     up.Bucket,
		URL:        up.URL,
		Size:       up.Size,
		Regions:    len(report.Results),
		Zones:      len(report.Zones),
		ExportedAt: report.GeneratedAt,
	}
	s.logger.Info("report exported",
		logging.String("snapshot_id", res.SnapshotID),
		logging.String("object_key", res.ObjectKey),
		logging.Int("zones", res.Zones))

	s.publishZonesRanked(ctx, res.SnapshotID, report.Zones, report.ByType, res.ObjectKey)
	return res, nil
}

// RecomputeResult summarises a recompute pass.
type RecomputeResult struct {
	SnapshotID string        `json:"snapshot_id"`
	Regions    int           `json:"regions"`
	Zones      int           `json:"zones"`
	Export     *ExportResult `json:"export,omitempty"`
}

// Recompute scores every region and ranks zones for the active snapshot,
// filling the cache on the way.  With export set and a report store
// configured the report is uploaded as well; either way the ranking is
// announced on the zones-ranked topic.
func (s *serviceImpl) Recompute(ctx context.Context, export bool) (*RecomputeResult, error) {
	results, err := s.AnalyzeAll(ctx)
	if err != nil {
		return nil, err
	}
	zones, err := s.RecommendedZones(ctx, ZoneQuery{})
	if err != nil {
		return nil, err
	}
	res := &RecomputeResult{SnapshotID: zones.SnapshotID, Regions: len(results), Zones: len(zones.Zones)}
	if export && s.reports != nil {
		exp, err := s.Export(ctx)
		if err != nil {
			return nil, err
		}
		res.Export = exp
		return res, nil
	}
	s.publishZonesRanked(ctx, zones.SnapshotID, zones.Zones, zones.ByType, "")
	return res, nil
}

func (s *serviceImpl) publishZonesRanked(ctx context.Context, snapshotID string, zones []zone.Zone, byType map[zone.Type]int, reportKey string) {
	top := ""
	if len(zones) > 0 {
		top = zones[0].ID
	}
	counts := make(map[string]int, len(byType))
	for t, n := range byType {
		counts[t.String()] = n
	}
	s.publish(ctx, kafka.TopicZonesRanked, snapshotID, kafka.ZonesRankedPayload{
		SnapshotID: snapshotID,
		Total:      len(zones),
		ByType:     counts,
		TopZoneID:  top,
		ReportKey:  reportKey,
	})
}

// SnapshotReloaded is a datastore reload hook.  It records the reload and
// announces successful ones on the snapshot-reloaded topic.
func (s *serviceImpl) SnapshotReloaded(ctx context.Context, snap *dataset.Snapshot, err error) {
	prometheus.RecordResult(s.metrics.DatasetReloadsTotal, err)
	if err != nil {
		return
	}
	counts := snap.Counts()
	s.metrics.SnapshotRegions.WithLabelValues().Set(float64(counts.Regions))
	if s.quiet {
		return
	}
	s.publish(ctx, kafka.TopicSnapshotReloaded, snap.ID, kafka.SnapshotReloadedPayload{
		SnapshotID: snap.ID,
		LoadedAt:   snap.LoadedAt,
		Source:     snap.Source,
		Counts: map[string]int{
			dataset.KindPopulation.String():     counts.Regions,
			dataset.KindInfrastructure.String(): counts.Infrastructure,
			dataset.KindProtectedAreas.String(): counts.ProtectedAreas,
			dataset.KindPoints.String():         counts.RecreationalPoints,
			dataset.KindFires.String():          counts.Fires,
		},
	})
}

// publish is best effort: a broker outage never fails the request that
// produced the event.
func (s *serviceImpl) publish(ctx context.Context, topic, key string, payload interface{}) {
	if s.events == nil {
		return
	}
	err := s.events.PublishEvent(ctx, topic, key, payload)
	prometheus.RecordResult(s.metrics.EventsPublished, err, topic)
	if err != nil {
		s.logger.Warn("event publication failed", logging.String("topic", topic), logging.Err(err))
	}
}

// assign copies a computed value into dest, which must be a pointer to the
// value's type or to the type it points to.
func assign(dest, v interface{}) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return errors.Internal("destination must be a non-nil pointer")
	}
	target := dv.Elem()
	rv := reflect.ValueOf(v)
	switch {
	case !rv.IsValid():
		target.Set(reflect.Zero(target.Type()))
	case rv.Type().AssignableTo(target.Type()):
		target.Set(rv)
	case rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Elem().Type().AssignableTo(target.Type()):
		target.Set(rv.Elem())
	default:
		return errors.Internal("computed value does not match destination").WithDetail(rv.Type().String())
	}
	return nil
}

//Personal.AI order the ending
