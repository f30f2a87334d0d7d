package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/LexConnect/internal/application/directory"
	"github.com/turtacn/LexConnect/internal/domain/lawyer"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
)

// LawyerHandler serves the lawyer directory.
type LawyerHandler struct {
	svc    directory.Service
	logger logging.Logger
}

// NewLawyerHandler creates a new LawyerHandler.
func NewLawyerHandler(svc directory.Service, logger logging.Logger) *LawyerHandler {
	return &LawyerHandler{svc: svc, logger: logger.Named("lawyer_handler")}
}

// CreateLawyerRequest registers a roster entry.
type CreateLawyerRequest struct {
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	SubSpecialty   string  `json:"sub_specialty,omitempty"`
	Experience     int     `json:"experience"`
	Location       string  `json:"location"`
	Fee            float64 `json:"fee"`
	About          string  `json:"about,omitempty"`
	Email          string  `json:"email,omitempty"`
	Phone          string  `json:"phone,omitempty"`
}

// ListResponse wraps collection responses.
type ListResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
}

// List handles GET /api/v1/lawyers?city=&specialization=.
func (h *LawyerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ls, err := h.svc.List(r.Context(), directory.Filter{
		City:           q.Get("city"),
		Specialization: q.Get("specialization"),
	})
	if err != nil {
		failed(w, h.logger, "list lawyers", err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Items: ls, Total: len(ls)})
}

// Get handles GET /api/v1/lawyers/{lawyerID}.
func (h *LawyerHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.Get(r.Context(), chi.URLParam(r, "lawyerID"))
	if err != nil {
		failed(w, h.logger, "get lawyer", err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// Create handles POST /api/v1/lawyers.
func (h *LawyerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLawyerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	l, err := h.svc.Create(r.Context(), &lawyer.Lawyer{
		Name:           req.Name,
		Specialization: req.Specialization,
		Experience:     req.Experience,
		Location:       req.Location,
		Fee:            req.Fee,
		SubSpecialty:   req.SubSpecialty,
		About:          req.About,
		Email:          req.Email,
		Phone:          req.Phone,
	})
	if err != nil {
		failed(w, h.logger, "create lawyer", err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

// Specializations handles GET /api/v1/specializations.
func (h *LawyerHandler) Specializations(w http.ResponseWriter, r *http.Request) {
	tax := h.svc.Taxonomy()
	writeJSON(w, http.StatusOK, ListResponse{Items: tax, Total: len(tax)})
}

//Personal.AI order the ending
