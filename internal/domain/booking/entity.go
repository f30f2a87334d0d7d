package booking

import (
	"strings"
	"time"

	"github.com/turtacn/LexConnect/pkg/errors"
)

// Status is the booking lifecycle state.
type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusConfirmed      Status = "confirmed"
	StatusCancelled      Status = "cancelled"
)

// PaymentMethod is how a consultation fee is paid.
type PaymentMethod string

const (
	MethodCard       PaymentMethod = "card"
	MethodUPI        PaymentMethod = "upi"
	MethodNetBanking PaymentMethod = "netbanking"
)

// Valid reports whether m is a supported method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCard, MethodUPI, MethodNetBanking:
		return true
	}
	return false
}

// PaymentStatus is the outcome of one payment attempt.
type PaymentStatus string

const (
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment records the settled payment of a booking.
type Payment struct {
	TransactionID string        `json:"transaction_id"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	PaidAt        time.Time     `json:"paid_at"`
	ReceiptKey    string        `json:"receipt_key,omitempty"`
}

// Booking is a consultation slot reserved by a user with a lawyer.
type Booking struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	LawyerID        string    `json:"lawyer_id"`
	CaseDescription string    `json:"case_description"`
	City            string    `json:"city,omitempty"`
	Specialization  string    `json:"specialization,omitempty"`
	SubSpecialty    string    `json:"sub_specialty,omitempty"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	Fee             float64   `json:"fee"`
	Status          Status    `json:"status"`
	Payment         *Payment  `json:"payment,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Validate checks the fields supplied when a booking is created.
func (b *Booking) Validate() error {
	if b.UserID == "" {
		return errors.InvalidParam("user_id is required")
	}
	if b.LawyerID == "" {
		return errors.InvalidParam("lawyer_id is required")
	}
	if strings.TrimSpace(b.CaseDescription) == "" {
		return errors.InvalidParam("case_description is required")
	}
	if b.ScheduledAt.IsZero() {
		return errors.InvalidParam("scheduled_at is required")
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// State transitions
// ─────────────────────────────────────────────────────────────────────────────

// Confirm records a successful payment.  Only pending bookings can be paid.
func (b *Booking) Confirm(p Payment, now time.Time) error {
	if b.Status != StatusPendingPayment {
		return errors.New(errors.ErrCodeBookingStateInvalid, "booking is not awaiting payment").
			WithDetail("status=" + string(b.Status))
	}
	b.Payment = &p
	b.Status = StatusConfirmed
	b.UpdatedAt = now
	return nil
}

// Cancel moves a pending or confirmed booking to cancelled.
func (b *Booking) Cancel(now time.Time) error {
	switch b.Status {
	case StatusPendingPayment, StatusConfirmed:
		b.Status = StatusCancelled
		b.UpdatedAt = now
		return nil
	}
	return errors.New(errors.ErrCodeBookingStateInvalid, "booking cannot be cancelled").
		WithDetail("status=" + string(b.Status))
}

//Personal.AI order the ending
