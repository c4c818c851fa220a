package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/openmind/internal/epistemic"
	"github.com/Harshitk-cp/openmind/internal/service"
)

type AccuracyHandler struct {
	svc *service.AccuracyService
}

// NewAccuracyHandler creates a new accuracy handler.
func NewAccuracyHandler(svc *service.AccuracyService) *AccuracyHandler {
	return &AccuracyHandler{svc: svc}
}

// Omitted parameters take the model defaults.
type expectedRequest struct {
	epistemic.AgentParameters
	CompanionAccuracy *float64 `json:"companion_accuracy"`
}

type tippingContentRequest struct {
	CompetenceAssociate      *float64 `json:"competence_associate"`
	CompetenceOpposer        *float64 `json:"competence_opposer"`
	SourceEvaluativeCapacity *float64 `json:"source_evaluative_capacity"`
	DegreeOpenMindedness     *int     `json:"degree_open_mindedness"`
}

type tippingSourceRequest struct {
	CompetenceAssociate *float64 `json:"competence_associate"`
	CompetenceOpposer   *float64 `json:"competence_opposer"`
}

// Defaults returns the default agent parameters.
func (h *AccuracyHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, epistemic.DefaultParameters())
}

// Information handles POST /v1/information.
func (h *AccuracyHandler) Information(w http.ResponseWriter, r *http.Request) {
	var req service.InformationQuery
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.Information(req)
	if err != nil {
		writeServiceError(w, err, "failed to compute information accuracy")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Expected handles POST /v1/accuracy.
func (h *AccuracyHandler) Expected(w http.ResponseWriter, r *http.Request) {
	req := expectedRequest{AgentParameters: epistemic.DefaultParameters()}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.Expected(req.AgentParameters, epistemic.CompanionFromPtr(req.CompanionAccuracy))
	if err != nil {
		writeServiceError(w, err, "failed to compute expected accuracy")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// TippingContent handles POST /v1/tipping/content.
func (h *AccuracyHandler) TippingContent(w http.ResponseWriter, r *http.Request) {
	var req tippingContentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CompetenceAssociate == nil {
		writeError(w, http.StatusBadRequest, "competence_associate is required")
		return
	}

	assoc := *req.CompetenceAssociate
	opp := assoc
	if req.CompetenceOpposer != nil {
		opp = *req.CompetenceOpposer
	}
	source := epistemic.DefaultSourceEvaluativeCapacity
	if req.SourceEvaluativeCapacity != nil {
		source = *req.SourceEvaluativeCapacity
	}
	degree := epistemic.DefaultTippingDegree
	if req.DegreeOpenMindedness != nil {
		degree = *req.DegreeOpenMindedness
	}

	res, err := h.svc.TippingContent(assoc, opp, source, degree)
	if err != nil {
		writeServiceError(w, err, "failed to find tipping content capacity")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// TippingSource handles POST /v1/tipping/source.
func (h *AccuracyHandler) TippingSource(w http.ResponseWriter, r *http.Request) {
	var req tippingSourceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CompetenceAssociate == nil || req.CompetenceOpposer == nil {
		writeError(w, http.StatusBadRequest, "competence_associate and competence_opposer are required")
		return
	}

	res, err := h.svc.TippingSource(*req.CompetenceAssociate, *req.CompetenceOpposer)
	if err != nil {
		writeServiceError(w, err, "failed to compute tipping source capacity")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
