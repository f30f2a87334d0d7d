package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/LexConnect/internal/domain/user"
	"github.com/turtacn/LexConnect/internal/infrastructure/database/postgres"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LexConnect/pkg/errors"
)

const userColumns = `id, name, email, phone, password_hash, role, created_at`

type postgresUserRepo struct {
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresUserRepo returns a user.Repository backed by conn.
func NewPostgresUserRepo(conn *postgres.Connection, log logging.Logger) user.Repository {
	return &postgresUserRepo{log: log, executor: conn.DB()}
}

func (r *postgresUserRepo) Create(ctx context.Context, u *user.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if u.Role == "" {
		u.Role = user.RoleClient
	}
	u.Email = user.NormalizeEmail(u.Email)

	_, err := r.executor.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Name, u.Email, u.Phone, u.PasswordHash, string(u.Role), u.CreatedAt,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if constraint == "users_email_key" {
				return errors.Wrap(err, errors.ErrCodeUserAlreadyExists, "email already registered")
			}
			return errors.Wrap(err, errors.ErrCodeConflict, "user already exists")
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create user")
	}
	return nil
}

func (r *postgresUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	row := r.executor.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *postgresUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.executor.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, user.NormalizeEmail(email))
	return scanUser(row)
}

func scanUser(s scanner) (*user.User, error) {
	u := &user.User{}
	var role string
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.New(errors.ErrCodeUserNotFound, "user not found")
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan user")
	}
	u.Role = user.Role(role)
	return u, nil
}

//Personal.AI order the ending
