// Package booking defines consultation bookings, their payment record and
// the persistence contract.
package booking

import "context"

// Repository persists bookings.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	// ListByUser returns the user's bookings, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Booking, error)
	Update(ctx context.Context, b *Booking) error
}

//Personal.AI order the ending
