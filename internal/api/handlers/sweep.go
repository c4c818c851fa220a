package handlers

import (
	"net/http"
	"strconv"

	"github.com/Harshitk-cp/openmind/internal/domain"
	"github.com/Harshitk-cp/openmind/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SweepHandler struct {
	svc *service.SweepService
}

// NewSweepHandler creates a new sweep handler.
func NewSweepHandler(svc *service.SweepService) *SweepHandler {
	return &SweepHandler{svc: svc}
}

type sweepKindResponse struct {
	Kind           domain.SweepKind `json:"kind"`
	RowLabel       string           `json:"row_label"`
	ColumnLabel    string           `json:"column_label"`
	ValueLabel     string           `json:"value_label"`
	DefaultRows    []float64        `json:"default_rows"`
	DefaultColumns []float64        `json:"default_columns"`
}

func (h *SweepHandler) Kinds(w http.ResponseWriter, r *http.Request) {
	out := make([]sweepKindResponse, 0, len(domain.AllSweepKinds))
	for _, k := range domain.AllSweepKinds {
		spec, _ := domain.GetSweepKindSpec(k)
		out = append(out, sweepKindResponse{
			Kind:           spec.Kind,
			RowLabel:       spec.RowLabel,
			ColumnLabel:    spec.ColumnLabel,
			ValueLabel:     spec.ValueLabel,
			DefaultRows:    spec.DefaultRows,
			DefaultColumns: spec.DefaultColumns,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Compute evaluates a sweep without recording it.
func (h *SweepHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req domain.SweepRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Kind == "" {
		writeError(w, http.StatusBadRequest, "kind is required")
		return
	}

	run, err := h.svc.Compute(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "failed to compute sweep")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (h *SweepHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.SweepRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Kind == "" {
		writeError(w, http.StatusBadRequest, "kind is required")
		return
	}

	run, err := h.svc.Run(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "failed to run sweep")
		return
	}
	writeJSON(w, http.StatusCreated, run)
}

func (h *SweepHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sweep id")
		return
	}

	run, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get sweep")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (h *SweepHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	runs, err := h.svc.List(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err, "failed to list sweeps")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sweeps": runs})
}
