// Package lawyer defines the roster entity and its persistence contract.
package lawyer

import "context"

// Repository persists the lawyer roster.
type Repository interface {
	// List returns the whole roster in insertion order.
	List(ctx context.Context) ([]*Lawyer, error)
	GetByID(ctx context.Context, id string) (*Lawyer, error)
	Create(ctx context.Context, l *Lawyer) error
}

//Personal.AI order the ending
