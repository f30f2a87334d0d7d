package client

import (
	"context"
	"net/url"

	"github.com/turtacn/LexConnect/pkg/errors"
)

// BookingsClient schedules and pays for consultations.
type BookingsClient struct {
	client *Client
}

// Create books a consultation.  The booking starts pending payment.
func (c *BookingsClient) Create(ctx context.Context, in NewBooking) (*Booking, error) {
	var out Booking
	if err := c.client.post(ctx, "/bookings", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns one booking.
func (c *BookingsClient) Get(ctx context.Context, id string) (*Booking, error) {
	var out Booking
	if err := c.client.get(ctx, bookingPath(id, ""), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByUser returns every booking of a user.
func (c *BookingsClient) ListByUser(ctx context.Context, userID string) ([]Booking, error) {
	if userID == "" {
		return nil, errors.InvalidParam("user id is required")
	}
	var out listResponse[Booking]
	if err := c.client.get(ctx, "/users/"+url.PathEscape(userID)+"/bookings", &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Pay settles a pending booking.  A declined card is an *APIError whose
// IsPaymentFailed reports true.
func (c *BookingsClient) Pay(ctx context.Context, id string, in PaymentRequest) (*Booking, error) {
	var out Booking
	if err := c.client.post(ctx, bookingPath(id, "/payment"), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel cancels a pending or confirmed booking.
func (c *BookingsClient) Cancel(ctx context.Context, id string) (*Booking, error) {
	var out Booking
	if err := c.client.post(ctx, bookingPath(id, "/cancel"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReceiptURL returns a short-lived download link for the payment receipt.
func (c *BookingsClient) ReceiptURL(ctx context.Context, id string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.client.get(ctx, bookingPath(id, "/receipt"), &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

func bookingPath(id, suffix string) string {
	return "/bookings/" + url.PathEscape(id) + suffix
}

//Personal.AI order the ending
