package handlers

import (
	"net/http"

	"github.com/turtacn/recreation-potential/internal/application/analysis"
	"github.com/turtacn/recreation-potential/internal/infrastructure/monitoring/logging"
)

// DatasetHandler serves the raw dataset views, dataset imports, the data
// status and report export.
type DatasetHandler struct {
	svc    analysis.Service
	logger logging.Logger
}

// NewDatasetHandler creates a new DatasetHandler.
func NewDatasetHandler(svc analysis.Service, logger logging.Logger) *DatasetHandler {
	return &DatasetHandler{svc: svc, logger: logger}
}

// Raw returns a handler that streams the named dataset file unchanged.
func (h *DatasetHandler) Raw(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := h.svc.RawDataset(r.Context(), name)
		if err != nil {
			writeAppError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// Status handles GET /api/v1/data-status.
func (h *DatasetHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.DataStatus(r.Context()))
}

// Import handles POST /api/v1/import/{dataset}.
func (h *DatasetHandler) Import(w http.ResponseWriter, r *http.Request) {
	name, err := pathParam(r, "dataset")
	if err != nil {
		writeAppError(w, err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeAppError(w, err)
		return
	}
	res, err := h.svc.Import(r.Context(), name, body)
	if err != nil {
		h.logger.Warn("dataset import rejected", logging.String("dataset", name), logging.Err(err))
		writeAppError(w, err)
		return
	}
	h.logger.Info("dataset imported",
		logging.String("dataset", res.Dataset),
		logging.String("snapshot_id", res.SnapshotID),
		logging.String("backup_key", res.BackupKey))
	writeJSON(w, http.StatusOK, res)
}

// Export handles POST /api/v1/export.
func (h *DatasetHandler) Export(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Export(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

//Personal.AI order the ending
