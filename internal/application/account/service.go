// Package account registers users and checks their credentials.
package account

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/turtacn/LexConnect/internal/domain/user"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LexConnect/pkg/errors"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
	Password string    `json:"password"`
	Role     user.Role `json:"role,omitempty"`
}

// Service manages accounts.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*user.User, error)
	Login(ctx context.Context, email, password string) (*user.User, error)
	Get(ctx context.Context, id string) (*user.User, error)
}

var errInvalidCredentials = errors.New(errors.ErrCodeInvalidCredentials, "invalid email or password")

type serviceImpl struct {
	users  user.Repository
	cost   int
	logger logging.Logger
}

// Option configures the service.
type Option func(*serviceImpl)

// WithBcryptCost overrides bcrypt.DefaultCost.  Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *serviceImpl) { s.cost = cost }
}

// NewService returns an account Service backed by users.
func NewService(users user.Repository, log logging.Logger, opts ...Option) Service {
	s := &serviceImpl{users: users, cost: bcrypt.DefaultCost, logger: log.Named("account")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates in, hashes the password and stores the user.  The
// returned user carries no password hash.
func (s *serviceImpl) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	u := &user.User{
		Name:  strings.TrimSpace(in.Name),
		Email: user.NormalizeEmail(in.Email),
		Phone: strings.TrimSpace(in.Phone),
		Role:  in.Role,
	}
	if u.Role == "" {
		u.Role = user.RoleClient
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if len(in.Password) < user.MinPasswordLength {
		return nil, errors.New(errors.ErrCodeWeakPassword, "password is too short")
	}

	if _, err := s.users.GetByEmail(ctx, u.Email); err == nil {
		return nil, errors.New(errors.ErrCodeUserAlreadyExists, "email already registered")
	} else if !errors.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to hash password")
	}
	u.PasswordHash = string(hash)

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", logging.String("user_id", u.ID), logging.String("role", string(u.Role)))
	return u.Public(), nil
}

// Login returns the user when email and password match.  Unknown email and
// wrong password yield the same error.
func (s *serviceImpl) Login(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.users.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("login rejected", logging.String("user_id", u.ID))
		return nil, errInvalidCredentials
	}
	return u.Public(), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (*user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Public(), nil
}

//Personal.AI order the ending
