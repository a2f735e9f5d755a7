package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every metric the service records.
type AppMetrics struct {
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec

	RegionAnalysesTotal CounterVec
	AnalysisDuration    HistogramVec
	ZonesGeneratedTotal CounterVec
	ZonesRanked         GaugeVec
	UnknownCapacities   CounterVec

	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	DatasetReloadsTotal CounterVec
	SnapshotRegions     GaugeVec
	ReportExportsTotal  CounterVec
	EventsPublished     CounterVec
}

var (
	DefaultHTTPDurationBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	DefaultAnalysisDurationBuckets = []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5}
)

// NewAppMetrics registers all metrics on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal:   collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "route", "status_code"),
		HTTPRequestDuration: collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "route"),

		RegionAnalysesTotal: collector.RegisterCounter("region_analyses_total", "Region analyses computed", "category"),
		AnalysisDuration:    collector.RegisterHistogram("analysis_duration_seconds", "Duration of scoring operations", DefaultAnalysisDurationBuckets, "operation"),
		ZonesGeneratedTotal: collector.RegisterCounter("zones_generated_total", "Zone candidates generated", "type"),
		ZonesRanked:         collector.RegisterGauge("zones_ranked", "Zones passing the priority floor in the latest ranking", "type"),
		UnknownCapacities:   collector.RegisterCounter("unknown_capacities_total", "Recreational points with unparseable capacity seen by scoring"),

		CacheHitsTotal:   collector.RegisterCounter("cache_hits_total", "Cache hits", "cache"),
		CacheMissesTotal: collector.RegisterCounter("cache_misses_total", "Cache misses", "cache"),

		DatasetReloadsTotal: collector.RegisterCounter("dataset_reloads_total", "Dataset reload attempts", "result"),
		SnapshotRegions:     collector.RegisterGauge("snapshot_regions", "Regions in the active dataset snapshot"),
		ReportExportsTotal:  collector.RegisterCounter("report_exports_total", "Report exports to object storage", "result"),
		EventsPublished:     collector.RegisterCounter("events_published_total", "Events published to the message broker", "topic", "result"),
	}
}

// NewNopAppMetrics returns metrics that record nothing.
func NewNopAppMetrics() *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal:   noopCounterVec{},
		HTTPRequestDuration: noopHistogramVec{},
		RegionAnalysesTotal: noopCounterVec{},
		AnalysisDuration:    noopHistogramVec{},
		ZonesGeneratedTotal: noopCounterVec{},
		ZonesRanked:         noopGaugeVec{},
		UnknownCapacities:   noopCounterVec{},
		CacheHitsTotal:      noopCounterVec{},
		CacheMissesTotal:    noopCounterVec{},
		DatasetReloadsTotal: noopCounterVec{},
		SnapshotRegions:     noopGaugeVec{},
		ReportExportsTotal:  noopCounterVec{},
		EventsPublished:     noopCounterVec{},
	}
}

func RecordHTTPRequest(m *AppMetrics, method, route string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordCacheAccess(m *AppMetrics, cache string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

// RecordResult increments a counter labelled "success" or "failure".
func RecordResult(vec CounterVec, err error, labels ...string) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	vec.WithLabelValues(append(labels, result)...).Inc()
}

//Personal.AI order the ending
