// Package user defines the account entity and its persistence contract.
package user

import "context"

// Repository defines the persistence contract for users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByEmail looks up the normalised address.
	GetByEmail(ctx context.Context, email string) (*User, error)
}

//Personal.AI order the ending
