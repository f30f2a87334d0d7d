package jsonfile

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/LexConnect/internal/domain/booking"
	"github.com/turtacn/LexConnect/internal/domain/lawyer"
	"github.com/turtacn/LexConnect/internal/domain/user"
	"github.com/turtacn/LexConnect/pkg/errors"
)

// ── lawyers ──────────────────────────────────────────────────────────────────

type lawyerRepo struct{ s *Store }

func (r *lawyerRepo) List(_ context.Context) ([]*lawyer.Lawyer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*lawyer.Lawyer, 0, len(r.s.doc.Lawyers))
	for _, l := range r.s.doc.Lawyers {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *lawyerRepo) GetByID(_ context.Context, id string) (*lawyer.Lawyer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, l := range r.s.doc.Lawyers {
		if l.ID == id {
			cp := *l
			return &cp, nil
		}
	}
	return nil, errors.New(errors.ErrCodeLawyerNotFound, "lawyer not found").WithDetail("id=" + id)
}

func (r *lawyerRepo) Create(_ context.Context, l *lawyer.Lawyer) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	return r.s.mutate(func(doc *document) error {
		for _, existing := range doc.Lawyers {
			if existing.ID == l.ID {
				return errors.Conflict("lawyer already exists").WithDetail("id=" + l.ID)
			}
		}
		cp := *l
		doc.Lawyers = append(doc.Lawyers, &cp)
		return nil
	})
}

// ── users ────────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.Email = user.NormalizeEmail(u.Email)
	return r.s.mutate(func(doc *document) error {
		for _, existing := range doc.Users {
			if existing.Email == u.Email {
				return errors.New(errors.ErrCodeUserAlreadyExists, "email already registered")
			}
		}
		cp := *u
		doc.Users = append(doc.Users, &cp)
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.doc.Users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.New(errors.ErrCodeUserNotFound, "user not found").WithDetail("id=" + id)
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	email = user.NormalizeEmail(email)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.doc.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.New(errors.ErrCodeUserNotFound, "user not found")
}

// ── bookings ─────────────────────────────────────────────────────────────────

type bookingRepo struct{ s *Store }

func copyBooking(b *booking.Booking) *booking.Booking {
	cp := *b
	if b.Payment != nil {
		p := *b.Payment
		cp.Payment = &p
	}
	return &cp
}

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return r.s.mutate(func(doc *document) error {
		for _, existing := range doc.Bookings {
			if existing.ID == b.ID {
				return errors.Conflict("booking already exists").WithDetail("id=" + b.ID)
			}
		}
		doc.Bookings = append(doc.Bookings, copyBooking(b))
		return nil
	})
}

func (r *bookingRepo) GetByID(_ context.Context, id string) (*booking.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.doc.Bookings {
		if b.ID == id {
			return copyBooking(b), nil
		}
	}
	return nil, errors.New(errors.ErrCodeBookingNotFound, "booking not found").WithDetail("id=" + id)
}

func (r *bookingRepo) ListByUser(_ context.Context, userID string) ([]*booking.Booking, error) {
	r.s.mu.RLock()
	out := make([]*booking.Booking, 0)
	for _, b := range r.s.doc.Bookings {
		if b.UserID == userID {
			out = append(out, copyBooking(b))
		}
	}
	r.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *bookingRepo) Update(_ context.Context, b *booking.Booking) error {
	return r.s.mutate(func(doc *document) error {
		for i, existing := range doc.Bookings {
			if existing.ID == b.ID {
				doc.Bookings[i] = copyBooking(b)
				return nil
			}
		}
		return errors.New(errors.ErrCodeBookingNotFound, "booking not found").WithDetail("id=" + b.ID)
	})
}

//Personal.AI order the ending
