package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/LexConnect/internal/application/booking"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
)

// BookingHandler serves consultation bookings and their payments.
type BookingHandler struct {
	svc    booking.Service
	logger logging.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.Service, logger logging.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger.Named("booking_handler")}
}

// ReceiptResponse carries a short-lived receipt download link.
type ReceiptResponse struct {
	URL string `json:"url"`
}

// Create handles POST /api/v1/bookings.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req booking.CreateInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	b, err := h.svc.Create(r.Context(), req)
	if err != nil {
		failed(w, h.logger, "create booking", err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// Get handles GET /api/v1/bookings/{bookingID}.
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Get(r.Context(), chi.URLParam(r, "bookingID"))
	if err != nil {
		failed(w, h.logger, "get booking", err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Pay handles POST /api/v1/bookings/{bookingID}/payment.
func (h *BookingHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req booking.PayInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	b, err := h.svc.Pay(r.Context(), chi.URLParam(r, "bookingID"), req)
	if err != nil {
		failed(w, h.logger, "pay booking", err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Cancel handles POST /api/v1/bookings/{bookingID}/cancel.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Cancel(r.Context(), chi.URLParam(r, "bookingID"))
	if err != nil {
		failed(w, h.logger, "cancel booking", err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Receipt handles GET /api/v1/bookings/{bookingID}/receipt.
func (h *BookingHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	url, err := h.svc.ReceiptURL(r.Context(), chi.URLParam(r, "bookingID"))
	if err != nil {
		failed(w, h.logger, "receipt url", err)
		return
	}
	writeJSON(w, http.StatusOK, ReceiptResponse{URL: url})
}

// ListByUser handles GET /api/v1/users/{userID}/bookings.
func (h *BookingHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	bs, err := h.svc.ListByUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		failed(w, h.logger, "list bookings", err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Items: bs, Total: len(bs)})
}

//Personal.AI order the ending
