package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/recreation-potential/internal/application/analysis"
	"github.com/turtacn/recreation-potential/internal/domain/dataset"
	"github.com/turtacn/recreation-potential/internal/infrastructure/datastore"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/recreation-potential/internal/infrastructure/storage/minio"
	"github.com/turtacn/recreation-potential/internal/testutil"
	"github.com/turtacn/recreation-potential/pkg/errors"
)

type fixedSnapshots struct {
	snap *dataset.Snapshot
}

func (f fixedSnapshots) Current() (*dataset.Snapshot, error) {
	if f.snap == nil {
		return nil, errors.NotLoaded()
	}
	return f.snap, nil
}

type rawFiles map[dataset.Kind][]byte

func (r rawFiles) ReadRaw(kind dataset.Kind) ([]byte, error) {
	if data, ok := r[kind]; ok {
		return data, nil
	}
	return nil, errors.NotFound("dataset file not found").WithDetail(kind.String())
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

type fixture struct {
	router   http.Handler
	snap     *dataset.Snapshot
	importer *mockImporter
	reports  *mockReports
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		snap:     testutil.Snapshot(t),
		importer: new(mockImporter),
		reports:  new(mockReports),
	}
	svc, err := analysis.NewService(analysis.Config{Workers: 2}, analysis.Deps{
		Snapshots: fixedSnapshots{snap: f.snap},
		Raw:       rawFiles{dataset.KindPopulation: testutil.DatasetJSON(t, dataset.KindPopulation)},
		Importer:  f.importer,
		Reports:   f.reports,
	})
	require.NoError(t, err)
	f.router = newTestRouter(svc)
	return f
}

func newTestRouter(svc analysis.Service) http.Handler {
	log := logging.NewNopLogger()
	ah := NewAnalysisHandler(svc, log)
	dh := NewDatasetHandler(svc, log)

	r := chi.NewRouter()
	r.Get("/regions", ah.Regions)
	r.Get("/analyze/{region}", ah.Analyze)
	r.Get("/analyze-all", ah.AnalyzeAll)
	r.Get("/recommended-zones", ah.RecommendedZones)
	r.Get("/ahp", ah.AHP)
	r.Get("/population", dh.Raw("population"))
	r.Get("/forest-fires", dh.Raw("forest-fires"))
	r.Get("/data-status", dh.Status)
	r.Post("/import/{dataset}", dh.Import)
	r.Post("/export", dh.Export)
	return r
}

func (f *fixture) do(t *testing.T, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(method, target, body))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestAnalysisHandler_Regions(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/regions", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp RegionsResponse
	decode(t, rec, &resp)
	assert.Equal(t, len(resp.Regions), resp.Count)
	assert.Contains(t, resp.Regions, testutil.HighPotentialRegion)
}

func TestAnalysisHandler_Analyze(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/analyze/"+url.PathEscape(testutil.HighPotentialRegion), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, testutil.HighPotentialRegion, body["region"])
	assert.InDelta(t, 77.6, body["total_score"], 0.11)
}

func TestAnalysisHandler_Analyze_UnknownRegion(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/analyze/"+url.PathEscape("Невідома область"), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var resp ErrorResponse
	decode(t, rec, &resp)
	assert.Equal(t, errors.ErrCodeRegionNotFound.String(), resp.Code)
	assert.Equal(t, "Невідома область", resp.Detail)
}

func TestAnalysisHandler_Analyze_NonCanonicalEscaping(t *testing.T) {
	f := newFixture(t)
	target := "/analyze/" + strings.ToLower(url.PathEscape(testutil.HighPotentialRegion))
	rec := f.do(t, http.MethodGet, target, nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, testutil.HighPotentialRegion, body["region"])
}

func TestAnalysisHandler_Analyze_MalformedEscape(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/analyze/x", nil)
	req.URL.RawPath = "/analyze/%zz"
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	decode(t, rec, &resp)
	assert.Equal(t, errors.CodeInvalidParam.String(), resp.Code)
	assert.Equal(t, "%zz", resp.Detail)
}

func TestAnalysisHandler_AnalyzeAll(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/analyze-all", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Results []struct {
			Region     string  `json:"region"`
			TotalScore float64 `json:"total_score"`
		} `json:"results"`
		Count int `json:"count"`
	}
	decode(t, rec, &resp)
	require.Equal(t, len(f.snap.RegionNames()), resp.Count)
	assert.Equal(t, testutil.HighPotentialRegion, resp.Results[0].Region)
	assert.Equal(t, testutil.MediumPotentialRegion, resp.Results[1].Region)
	assert.InDelta(t, 49.9, resp.Results[1].TotalScore, 0.11)
}

func TestAnalysisHandler_RecommendedZones(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/recommended-zones?type=roadside&limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Zones []struct {
			Type   string `json:"type"`
			Region string `json:"region"`
		} `json:"zones"`
		Total  int            `json:"total"`
		ByType map[string]int `json:"by_type"`
	}
	decode(t, rec, &resp)
	require.Len(t, resp.Zones, 1)
	assert.Equal(t, "roadside", resp.Zones[0].Type)
	assert.Equal(t, resp.ByType["roadside"], resp.Total)

	tests := []struct {
		name  string
		query string
		code  string
	}{
		{"unknown type", "?type=lakeside", errors.ErrCodeZoneTypeInvalid.String()},
		{"bad limit", "?limit=ten", errors.CodeInvalidParam.String()},
		{"negative limit", "?limit=-3", errors.CodeInvalidParam.String()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, "/recommended-zones"+tt.query, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var er ErrorResponse
			decode(t, rec, &er)
			assert.Equal(t, tt.code, er.Code)
		})
	}
}

func TestAnalysisHandler_AHP(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/ahp", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]json.RawMessage
	decode(t, rec, &body)
	assert.Contains(t, body, "weights")

	rec = f.do(t, http.MethodGet, "/ahp?format=text", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	assert.NotEmpty(t, rec.Body.String())
}

func TestDatasetHandler_Raw(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/population", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, string(testutil.DatasetJSON(t, dataset.KindPopulation)), rec.Body.String())

	rec = f.do(t, http.MethodGet, "/forest-fires", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDatasetHandler_Status(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/data-status", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var st analysis.DataStatus
	decode(t, rec, &st)
	assert.True(t, st.Loaded)
	assert.Equal(t, f.snap.ID, st.SnapshotID)
	assert.Equal(t, f.snap.Counts(), st.Counts)
}

func TestDatasetHandler_Import(t *testing.T) {
	f := newFixture(t)
	body := `{"type":"FeatureCollection","features":[]}`
	f.importer.On("Import", mock.Anything, dataset.KindFires, []byte(body)).
		Return(&datastore.ImportResult{Dataset: "fires", SnapshotID: "abc"}, nil).Once()

	rec := f.do(t, http.MethodPost, "/import/fires", strings.NewReader(body))
	require.Equal(t, http.StatusOK, rec.Code)
	var res datastore.ImportResult
	decode(t, rec, &res)
	assert.Equal(t, "abc", res.SnapshotID)
	f.importer.AssertExpectations(t)
}

func TestDatasetHandler_Import_EscapedName(t *testing.T) {
	f := newFixture(t)
	body := `{"type":"FeatureCollection","features":[]}`
	f.importer.On("Import", mock.Anything, dataset.KindFires, []byte(body)).
		Return(&datastore.ImportResult{Dataset: "fires", SnapshotID: "def"}, nil).Once()

	// %73 is "s"; escaping an unreserved character keeps RawPath set
	rec := f.do(t, http.MethodPost, "/import/fire%73", strings.NewReader(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	f.importer.AssertExpectations(t)
}

func TestDatasetHandler_Import_Errors(t *testing.T) {
	f := newFixture(t)
	f.importer.On("Import", mock.Anything, dataset.KindPopulation, mock.Anything).
		Return(nil, errors.DatasetInvalid("population", "expected 24 regions")).Once()

	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"unknown dataset", "/import/weather", "{}", http.StatusNotFound},
		{"empty body", "/import/fires", "", http.StatusBadRequest},
		{"invalid content", "/import/population", `{"regions":[]}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, tt.target, strings.NewReader(tt.body))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestDatasetHandler_Export(t *testing.T) {
	f := newFixture(t)
	f.reports.On("PutReport", mock.Anything, f.snap.ID, mock.Anything).
		Return(&minio.UploadResult{Bucket: "recreation-reports", ObjectKey: "reports/k.json", Size: 10}, nil).Once()

	rec := f.do(t, http.MethodPost, "/export", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var res analysis.ExportResult
	decode(t, rec, &res)
	assert.Equal(t, "reports/k.json", res.ObjectKey)

	f.reports.On("PutReport", mock.Anything, f.snap.ID, mock.Anything).
		Return(nil, errors.New(errors.CodeStorageError, "unreachable")).Once()
	rec = f.do(t, http.MethodPost, "/export", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandlers_NotLoaded(t *testing.T) {
	svc, err := analysis.NewService(analysis.Config{}, analysis.Deps{Snapshots: fixedSnapshots{}})
	require.NoError(t, err)
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyze-all", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/data-status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"loaded":false,"counts":{"regions":0,"infrastructure":0,"protected_areas":0,"recreational_points":0,"fires":0},"loaded_at":"0001-01-01T00:00:00Z"}`, rec.Body.String())
}

func TestWriteAppError_MasksUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeAppError(rec, io.ErrUnexpectedEOF)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp ErrorResponse
	decode(t, rec, &resp)
	assert.Equal(t, errors.CodeInternal.String(), resp.Code)
	assert.NotContains(t, rec.Body.String(), "unexpected EOF")

	rec = httptest.NewRecorder()
	writeAppError(rec, context.DeadlineExceeded)
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	ok := NewCheck("snapshot", func(context.Context) error { return nil })
	failing := NewCheck("redis", func(context.Context) error { return errors.New(errors.CodeCacheError, "connection refused") })

	rec := httptest.NewRecorder()
	NewHealthHandler("1.0.0").Liveness(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"alive"`)

	rec = httptest.NewRecorder()
	NewHealthHandler("1.0.0", ok).Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	NewHealthHandler("1.0.0", ok, failing).Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp ReadinessResponse
	decode(t, rec, &resp)
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "healthy", resp.Components["snapshot"].Status)
	assert.Contains(t, resp.Components["redis"].Error, "connection refused")
}

//Personal.AI order the ending
