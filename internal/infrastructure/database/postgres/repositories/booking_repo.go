package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/turtacn/LexConnect/internal/domain/booking"
	"github.com/turtacn/LexConnect/internal/infrastructure/database/postgres"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LexConnect/pkg/errors"
)

const bookingColumns = `id, user_id, lawyer_id, case_description, city, specialization, sub_specialty,
	scheduled_at, fee, status, payment, created_at, updated_at`

type postgresBookingRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresBookingRepo returns a booking.Repository backed by conn.
func NewPostgresBookingRepo(conn *postgres.Connection, log logging.Logger) booking.Repository {
	return &postgresBookingRepo{conn: conn, log: log, executor: conn.DB()}
}

func marshalPayment(p *booking.Payment) ([]byte, error) {
	if p == nil {
		return nil, nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode payment")
	}
	return data, nil
}

func (r *postgresBookingRepo) Create(ctx context.Context, b *booking.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	payment, err := marshalPayment(b.Payment)
	if err != nil {
		return err
	}
	_, err = r.executor.ExecContext(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		b.ID, b.UserID, b.LawyerID, b.CaseDescription, b.City, b.Specialization, b.SubSpecialty,
		b.ScheduledAt, b.Fee, string(b.Status), payment, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return errors.Wrap(err, errors.ErrCodeConflict, "booking already exists")
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create booking")
	}
	return nil
}

func (r *postgresBookingRepo) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	row := r.executor.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.New(errors.ErrCodeBookingNotFound, "booking not found").WithDetail("id=" + id)
		}
		return nil, err
	}
	return b, nil
}

func (r *postgresBookingRepo) ListByUser(ctx context.Context, userID string) ([]*booking.Booking, error) {
	rows, err := r.executor.QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list bookings")
	}
	defer rows.Close()

	out := make([]*booking.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate bookings")
	}
	return out, nil
}

// Update writes status, payment and updated_at inside a transaction guarded
// by a row lock so concurrent payments of one booking serialise.
func (r *postgresBookingRepo) Update(ctx context.Context, b *booking.Booking) error {
	payment, err := marshalPayment(b.Payment)
	if err != nil {
		return err
	}

	tx, err := r.conn.DB().BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to begin transaction")
	}

	var current string
	if err := tx.QueryRowContext(ctx, `SELECT status FROM bookings WHERE id = $1 FOR UPDATE`, b.ID).Scan(&current); err != nil {
		tx.Rollback()
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.New(errors.ErrCodeBookingNotFound, "booking not found").WithDetail("id=" + b.ID)
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to lock booking")
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = $2, payment = $3, updated_at = $4 WHERE id = $1`,
		b.ID, string(b.Status), payment, b.UpdatedAt,
	); err != nil {
		tx.Rollback()
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to update booking")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to commit transaction")
	}
	r.log.Debug("booking updated",
		logging.String("id", b.ID),
		logging.String("from", current),
		logging.String("to", string(b.Status)),
	)
	return nil
}

func scanBooking(s scanner) (*booking.Booking, error) {
	b := &booking.Booking{}
	var status string
	var payment []byte
	err := s.Scan(&b.ID, &b.UserID, &b.LawyerID, &b.CaseDescription, &b.City, &b.Specialization,
		&b.SubSpecialty, &b.ScheduledAt, &b.Fee, &status, &payment, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan booking")
	}
	b.Status = booking.Status(status)
	if len(payment) > 0 {
		b.Payment = &booking.Payment{}
		if err := json.Unmarshal(payment, b.Payment); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode payment")
		}
	}
	return b, nil
}

//Personal.AI order the ending
