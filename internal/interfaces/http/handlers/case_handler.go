package handlers

import (
	"net/http"

	"github.com/turtacn/LexConnect/internal/application/consultation"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
)

// CaseHandler serves case classification and lawyer matching.
type CaseHandler struct {
	svc    consultation.Service
	logger logging.Logger
}

// NewCaseHandler creates a new CaseHandler.
func NewCaseHandler(svc consultation.Service, logger logging.Logger) *CaseHandler {
	return &CaseHandler{svc: svc, logger: logger.Named("case_handler")}
}

// CaseRequest is the body of both case endpoints.
type CaseRequest struct {
	Description string `json:"description"`
	City        string `json:"city,omitempty"`
}

// Classify handles POST /api/v1/cases/classify.
func (h *CaseHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req CaseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.svc.Classify(r.Context(), req.Description, req.City)
	if err != nil {
		failed(w, h.logger, "classify", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Analyze handles POST /api/v1/cases/analyze.
func (h *CaseHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req CaseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := h.svc.Analyze(r.Context(), req.Description, req.City)
	if err != nil {
		failed(w, h.logger, "analyze", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

//Personal.AI order the ending
