package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/LexConnect/internal/domain/lawyer"
	"github.com/turtacn/LexConnect/internal/infrastructure/database/postgres"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LexConnect/pkg/errors"
)

const lawyerColumns = `id, name, specialization, sub_specialty, experience, location, fee, about, email, phone, created_at`

type postgresLawyerRepo struct {
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresLawyerRepo returns a lawyer.Repository backed by conn.
func NewPostgresLawyerRepo(conn *postgres.Connection, log logging.Logger) lawyer.Repository {
	return &postgresLawyerRepo{log: log, executor: conn.DB()}
}

func (r *postgresLawyerRepo) List(ctx context.Context) ([]*lawyer.Lawyer, error) {
	rows, err := r.executor.QueryContext(ctx, `SELECT `+lawyerColumns+` FROM lawyers ORDER BY seq`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list lawyers")
	}
	defer rows.Close()

	out := make([]*lawyer.Lawyer, 0)
	for rows.Next() {
		l, err := scanLawyer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate lawyers")
	}
	return out, nil
}

func (r *postgresLawyerRepo) GetByID(ctx context.Context, id string) (*lawyer.Lawyer, error) {
	row := r.executor.QueryRowContext(ctx, `SELECT `+lawyerColumns+` FROM lawyers WHERE id = $1`, id)
	l, err := scanLawyer(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.New(errors.ErrCodeLawyerNotFound, "lawyer not found").WithDetail("id=" + id)
		}
		return nil, err
	}
	return l, nil
}

func (r *postgresLawyerRepo) Create(ctx context.Context, l *lawyer.Lawyer) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	_, err := r.executor.ExecContext(ctx, `
		INSERT INTO lawyers (`+lawyerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		l.ID, l.Name, l.Specialization, l.SubSpecialty, l.Experience, l.Location, l.Fee,
		l.About, l.Email, l.Phone, l.CreatedAt,
	)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return errors.Wrap(err, errors.ErrCodeConflict, "lawyer already exists")
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create lawyer")
	}
	r.log.Debug("lawyer created", logging.String("id", l.ID))
	return nil
}

func scanLawyer(s scanner) (*lawyer.Lawyer, error) {
	l := &lawyer.Lawyer{}
	err := s.Scan(&l.ID, &l.Name, &l.Specialization, &l.SubSpecialty, &l.Experience, &l.Location,
		&l.Fee, &l.About, &l.Email, &l.Phone, &l.CreatedAt)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan lawyer")
	}
	return l, nil
}

//Personal.AI order the ending
