package handlers

import (
	"net/http"

	"github.com/turtacn/recreation-potential/internal/application/analysis"
	"github.com/turtacn/recreation-potential/internal/domain/scoring"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
)

// AnalysisHandler serves region scoring, zone recommendations and the AHP
// report.
type AnalysisHandler struct {
	svc    analysis.Service
	logger logging.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(svc analysis.Service, logger logging.Logger) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, logger: logger}
}

// RegionsResponse lists the region names of the active snapshot.
type RegionsResponse struct {
	Regions []string `json:"regions"`
	Count   int      `json:"count"`
}

// AnalyzeAllResponse wraps the ranked analyses.
type AnalyzeAllResponse struct {
	Results []*scoring.RegionAnalysis `json:"results"`
	Count   int                       `json:"count"`
}

// Regions handles GET /api/v1/regions.
func (h *AnalysisHandler) Regions(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.Regions(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RegionsResponse{Regions: names, Count: len(names)})
}

// Analyze handles GET /api/v1/analyze/{region}.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	region, err := pathParam(r, "region")
	if err != nil {
		writeAppError(w, err)
		return
	}
	a, err := h.svc.Analyze(r.Context(), region)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a.Rounded())
}

// AnalyzeAll handles GET /api/v1/analyze-all.
func (h *AnalysisHandler) AnalyzeAll(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.AnalyzeAll(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	rounded := make([]*scoring.RegionAnalysis, len(results))
	for i, a := range results {
		rounded[i] = a.Rounded()
	}
	writeJSON(w, http.StatusOK, AnalyzeAllResponse{Results: rounded, Count: len(rounded)})
}

// RecommendedZones handles GET /api/v1/recommended-zones?type=&limit=.
func (h *AnalysisHandler) RecommendedZones(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeAppError(w, err)
		return
	}
	res, err := h.svc.RecommendedZones(r.Context(), analysis.ZoneQuery{
		Type:  r.URL.Query().Get("type"),
		Limit: limit,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// AHP handles GET /api/v1/ahp.  ?format=text returns the rendered report.
func (h *AnalysisHandler) AHP(w http.ResponseWriter, r *http.Request) {
	report := h.svc.AHPReport(r.Context())
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(report.Render()))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

//Personal.AI order the ending
