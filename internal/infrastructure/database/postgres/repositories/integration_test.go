//go:build integration

// Package repositories_test runs the PostgreSQL repositories against a real
// database started with testcontainers.  Requires Docker and the
// "integration" build tag.
package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turtacn/LexConnect/internal/config"
	"github.com/turtacn/LexConnect/internal/domain/booking"
	"github.com/turtacn/LexConnect/internal/domain/lawyer"
	"github.com/turtacn/LexConnect/internal/domain/user"
	"github.com/turtacn/LexConnect/internal/infrastructure/database/postgres"
	"github.com/turtacn/LexConnect/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LexConnect/pkg/errors"
)

// startPostgres launches a PostgreSQL 16 container, migrates it and returns
// a connection.
func startPostgres(t *testing.T) *postgres.Connection {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "lexconnect_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Host:     host,
		Port:     port.Int(),
		User:     "test",
		Password: "test",
		DBName:   "lexconnect_test",
		SSLMode:  "disable",
	}
	conn, err := postgres.NewConnection(cfg, logging.NewNopLogger())
	require.NoError(t, err, fmt.Sprintf("connect %s", host))
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, postgres.RunMigrations(conn.URL()))
	return conn
}

func TestRepositories_EndToEnd(t *testing.T) {
	conn := startPostgres(t)
	log := logging.NewNopLogger()
	ctx := context.Background()

	version, dirty, err := postgres.MigrationStatus(conn.URL())
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	lawyers := repositories.NewPostgresLawyerRepo(conn, log)
	users := repositories.NewPostgresUserRepo(conn, log)
	bookings := repositories.NewPostgresBookingRepo(conn, log)

	l := &lawyer.Lawyer{Name: "Anil", Specialization: "Property", Experience: 15, Location: "Dehradun", Fee: 1000}
	require.NoError(t, lawyers.Create(ctx, l))
	roster, err := lawyers.List(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 1)

	u := &user.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "h"}
	require.NoError(t, users.Create(ctx, u))
	err = users.Create(ctx, &user.User{Name: "Again", Email: "ASHA@example.com", PasswordHash: "h"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeUserAlreadyExists))

	now := time.Now().UTC().Truncate(time.Microsecond)
	b := &booking.Booking{
		UserID: u.ID, LawyerID: l.ID, CaseDescription: "tenant issue",
		ScheduledAt: now.Add(24 * time.Hour), Fee: l.Fee,
		Status: booking.StatusPendingPayment, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, bookings.Create(ctx, b))

	require.NoError(t, b.Confirm(booking.Payment{TransactionID: "txn", Amount: 1000, Method: booking.MethodCard, Status: booking.PaymentSucceeded, PaidAt: now}, now))
	require.NoError(t, bookings.Update(ctx, b))

	got, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, got.Status)
	assert.Equal(t, "txn", got.Payment.TransactionID)

	require.NoError(t, postgres.RollbackMigration(conn.URL(), 1))
	version, _, err = postgres.MigrationStatus(conn.URL())
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
}

//Personal.AI order the ending
