package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ugaemi/divecatch-server/internal/store"
)

const (
	defaultRecordLimit = 20
	maxRecordLimit     = 100
)

// RecordsHandler serves finished chase records over HTTP.
type RecordsHandler struct {
	records store.RecordStore
}

// NewRecordsHandler creates a records handler backed by records.
func NewRecordsHandler(records store.RecordStore) *RecordsHandler {
	return &RecordsHandler{records: records}
}

// Register mounts the record routes on mux.
func (h *RecordsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /records", h.HandleRecent)
	mux.HandleFunc("GET /records/{id}", h.HandleGet)
}

// HandleRecent lists the newest records. ?limit= caps the count.
func (h *RecordsHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecordLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxRecordLimit)
	}

	recs, err := h.records.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list records", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list records")
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// HandleGet returns one record by ID.
func (h *RecordsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, err := h.records.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("failed to load record", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load record")
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
