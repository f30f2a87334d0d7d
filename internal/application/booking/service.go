// Package booking reserves consultations with lawyers and settles their fees
// through a simulated payment gateway.
package booking

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/turtacn/LexConnect/internal/domain/booking"
	"github.com/turtacn/LexConnect/internal/domain/lawyer"
	"github.com/turtacn/LexConnect/internal/domain/user"
	"github.com/turtacn/LexConnect/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	metrics "github.com/turtacn/LexConnect/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LexConnect/internal/infrastructure/storage/minio"
	"github.com/turtacn/LexConnect/pkg/errors"
)

// -----------------------------------------------------------------------
// DTOs
// -----------------------------------------------------------------------

// CreateInput is a booking request.
type CreateInput struct {
	UserID          string    `json:"user_id"`
	LawyerID        string    `json:"lawyer_id"`
	CaseDescription string    `json:"case_description"`
	City            string    `json:"city,omitempty"`
	Specialization  string    `json:"specialization,omitempty"`
	SubSpecialty    string    `json:"sub_specialty,omitempty"`
	ScheduledAt     time.Time `json:"scheduled_at"`
}

// PayInput is a payment attempt.  CardNumber is only read for card payments.
type PayInput struct {
	Amount     float64              `json:"amount"`
	Method     domain.PaymentMethod `json:"method"`
	CardNumber string               `json:"card_number,omitempty"`
}

// Receipt is the document stored in object storage for a settled payment.
type Receipt struct {
	BookingID     string               `json:"booking_id"`
	UserID        string               `json:"user_id"`
	LawyerID      string               `json:"lawyer_id"`
	LawyerName    string               `json:"lawyer_name"`
	TransactionID string               `json:"transaction_id"`
	Amount        float64              `json:"amount"`
	Currency      string               `json:"currency"`
	Method        domain.PaymentMethod `json:"method"`
	CardLast4     string               `json:"card_last4,omitempty"`
	ScheduledAt   time.Time            `json:"scheduled_at"`
	PaidAt        time.Time            `json:"paid_at"`
}

// -----------------------------------------------------------------------
// Service
// -----------------------------------------------------------------------

// Service manages bookings.
type Service interface {
	Create(ctx context.Context, in CreateInput) (*domain.Booking, error)
	Get(ctx context.Context, id string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
	Pay(ctx context.Context, id string, in PayInput) (*domain.Booking, error)
	Cancel(ctx context.Context, id string) (*domain.Booking, error)
	ReceiptURL(ctx context.Context, id string) (string, error)
}

// Locker serialises payment and cancellation on one booking across replicas.
type Locker interface {
	Acquire(ctx context.Context, name string) (func(context.Context) error, error)
}

// Deps wires a Service.  Bookings, Users and Lawyers are required.
type Deps struct {
	Bookings domain.Repository
	Users    user.Repository
	Lawyers  lawyer.Repository
	Receipts minio.ReceiptStore
	Locker   Locker
	Events   kafka.EventPublisher
	Metrics  *metrics.AppMetrics
	Logger   logging.Logger
	Currency string
	Now      func() time.Time

	// DeclineSuffix overrides the card suffix the simulated gateway declines.
	DeclineSuffix string
}

// Simulated gateway behaviour.
const (
	// DeclineSuffix marks card numbers the gateway always declines.
	DeclineSuffix   = "0000"
	DefaultCurrency = "INR"

	receiptURLExpiry = 15 * time.Minute
)

var (
	ErrPaymentDeclined  = errors.New(errors.ErrCodePaymentDeclined, "payment declined by the gateway")
	ErrReceiptsDisabled = errors.New(errors.ErrCodeFeatureDisabled, "receipt storage is not configured")
)

type serviceImpl struct {
	bookings domain.Repository
	users    user.Repository
	lawyers  lawyer.Repository
	receipts minio.ReceiptStore
	locker   Locker
	events   kafka.EventPublisher
	metrics  *metrics.AppMetrics
	logger   logging.Logger
	currency string
	decline  string
	now      func() time.Time

	// stateMu stands in for Locker when none is configured.
	stateMu sync.Mutex
}

// NewService validates deps and returns a Service.
func NewService(d Deps) (Service, error) {
	if d.Bookings == nil || d.Users == nil || d.Lawyers == nil {
		return nil, errors.InvalidParam("booking: repositories are required")
	}
	s := &serviceImpl{
		bookings: d.Bookings,
		users:    d.Users,
		lawyers:  d.Lawyers,
		receipts: d.Receipts,
		locker:   d.Locker,
		events:   d.Events,
		metrics:  d.Metrics,
		logger:   d.Logger,
		currency: d.Currency,
		decline:  d.DeclineSuffix,
		now:      d.Now,
	}
	if s.events == nil {
		s.events = kafka.NopPublisher{}
	}
	if s.metrics == nil {
		s.metrics = metrics.NewNopMetrics()
	}
	if s.logger == nil {
		s.logger = logging.NewNopLogger()
	}
	if s.currency == "" {
		s.currency = DefaultCurrency
	}
	if s.decline == "" {
		s.decline = DeclineSuffix
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	s.logger = s.logger.Named("booking")
	return s, nil
}

func (s *serviceImpl) Create(ctx context.Context, in CreateInput) (*domain.Booking, error) {
	b := &domain.Booking{
		UserID:          strings.TrimSpace(in.UserID),
		LawyerID:        strings.TrimSpace(in.LawyerID),
		CaseDescription: strings.TrimSpace(in.CaseDescription),
		City:            strings.TrimSpace(in.City),
		Specialization:  in.Specialization,
		SubSpecialty:    in.SubSpecialty,
		ScheduledAt:     in.ScheduledAt.UTC(),
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	now := s.now()
	if !b.ScheduledAt.After(now) {
		return nil, errors.InvalidParam("scheduled_at must be in the future")
	}

	if _, err := s.users.GetByID(ctx, b.UserID); err != nil {
		return nil, err
	}
	l, err := s.lawyers.GetByID(ctx, b.LawyerID)
	if err != nil {
		return nil, err
	}

	b.ID = uuid.NewString()
	b.Fee = l.Fee
	b.Status = domain.StatusPendingPayment
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.Specialization == "" {
		b.Specialization = l.Specialization
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	s.metrics.RecordBooking(string(b.Status))
	s.logger.Info("booking created",
		logging.String("booking_id", b.ID),
		logging.String("lawyer_id", b.LawyerID),
		logging.Float64("fee", b.Fee))
	s.publish(ctx, kafka.TopicBookingCreated, b.ID, bookingPayload(b))
	return b, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *serviceImpl) ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.bookings.ListByUser(ctx, userID)
}

// Pay settles the booking's fee.  A declined payment leaves the booking
// pending so the client can retry with another instrument.
func (s *serviceImpl) Pay(ctx context.Context, id string, in PayInput) (*domain.Booking, error) {
	unlock, err := s.lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.StatusPendingPayment {
		return nil, errors.New(errors.ErrCodeBookingStateInvalid, "booking is not awaiting payment").
			WithDetail("status=" + string(b.Status))
	}
	if !in.Method.Valid() {
		return nil, errors.New(errors.ErrCodePaymentMethodInvalid, "unsupported payment method").
			WithDetail("method=" + string(in.Method))
	}
	if math.Abs(in.Amount-b.Fee) > 0.005 {
		return nil, errors.New(errors.ErrCodePaymentAmountInvalid, "amount does not match the consultation fee")
	}

	card := digits(in.CardNumber)
	if in.Method == domain.MethodCard {
		if len(card) < 12 {
			return nil, errors.New(errors.ErrCodePaymentMethodInvalid, "card number is required")
		}
		if strings.HasSuffix(card, s.decline) {
			s.metrics.RecordPayment(string(in.Method), string(domain.PaymentFailed))
			s.logger.Info("payment declined", logging.String("booking_id", b.ID))
			return nil, ErrPaymentDeclined
		}
	}

	now := s.now()
	p := domain.Payment{
		TransactionID: "txn_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Amount:        b.Fee,
		Currency:      s.currency,
		Method:        in.Method,
		Status:        domain.PaymentSucceeded,
		PaidAt:        now,
	}
	p.ReceiptKey = s.storeReceipt(ctx, b, p, card)

	if err := b.Confirm(p, now); err != nil {
		return nil, err
	}
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	s.metrics.RecordPayment(string(in.Method), string(domain.PaymentSucceeded))
	s.metrics.RecordBooking(string(b.Status))
	s.logger.Info("payment completed",
		logging.String("booking_id", b.ID),
		logging.String("transaction_id", p.TransactionID))
	s.publish(ctx, kafka.TopicPaymentCompleted, b.ID, kafka.PaymentPayload{
		BookingID:     b.ID,
		UserID:        b.UserID,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Method:        string(p.Method),
		ReceiptKey:    p.ReceiptKey,
		PaidAt:        p.PaidAt,
	})
	return b, nil
}

// storeReceipt writes the receipt and returns its key, or "" when receipts
// are disabled or the write failed.
func (s *serviceImpl) storeReceipt(ctx context.Context, b *domain.Booking, p domain.Payment, card string) string {
	if s.receipts == nil {
		return ""
	}
	r := Receipt{
		BookingID:     b.ID,
		UserID:        b.UserID,
		LawyerID:      b.LawyerID,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Method:        p.Method,
		ScheduledAt:   b.ScheduledAt,
		PaidAt:        p.PaidAt,
	}
	if len(card) >= 4 {
		r.CardLast4 = card[len(card)-4:]
	}
	if l, err := s.lawyers.GetByID(ctx, b.LawyerID); err == nil {
		r.LawyerName = l.Name
	}

	data, err := json.Marshal(r)
	if err != nil {
		s.logger.Error("failed to encode receipt", logging.Err(err))
		return ""
	}
	key := minio.ReceiptKey(b.ID, p.TransactionID)
	if err := s.receipts.Put(ctx, key, data); err != nil {
		s.logger.Warn("failed to store receipt", logging.String("booking_id", b.ID), logging.Err(err))
		return ""
	}
	return key
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	unlock, err := s.lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.Cancel(s.now()); err != nil {
		return nil, err
	}
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}
	s.metrics.RecordBooking(string(b.Status))
	s.logger.Info("booking cancelled", logging.String("booking_id", b.ID))
	s.publish(ctx, kafka.TopicBookingCancelled, b.ID, bookingPayload(b))
	return b, nil
}

// ReceiptURL returns a short-lived download link for a paid booking's receipt.
func (s *serviceImpl) ReceiptURL(ctx context.Context, id string) (string, error) {
	if s.receipts == nil {
		return "", ErrReceiptsDisabled
	}
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if b.Payment == nil || b.Payment.ReceiptKey == "" {
		return "", errors.NotFound("booking has no receipt").WithDetail("id=" + id)
	}
	return s.receipts.PresignedURL(ctx, b.Payment.ReceiptKey, receiptURLExpiry)
}

// -----------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------

// lock serialises state changes on one booking.
func (s *serviceImpl) lock(ctx context.Context, id string) (func(), error) {
	if s.locker == nil {
		s.stateMu.Lock()
		return s.stateMu.Unlock, nil
	}
	release, err := s.locker.Acquire(ctx, "booking:"+id)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("failed to release booking lock", logging.String("booking_id", id), logging.Err(err))
		}
	}, nil
}

func (s *serviceImpl) publish(ctx context.Context, topic, key string, payload interface{}) {
	err := s.events.Publish(ctx, topic, key, payload)
	s.metrics.RecordEvent(topic, err)
	if err != nil {
		s.logger.Warn("failed to publish event", logging.String("topic", topic), logging.Err(err))
	}
}

func bookingPayload(b *domain.Booking) kafka.BookingPayload {
	return kafka.BookingPayload{
		BookingID:      b.ID,
		UserID:         b.UserID,
		LawyerID:       b.LawyerID,
		Status:         string(b.Status),
		Fee:            b.Fee,
		ScheduledAt:    b.ScheduledAt,
		Specialization: b.Specialization,
	}
}

func digits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

//Personal.AI order the ending
