package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/LexConnect/pkg/errors"
)

func TestLocker_AcquireRelease(t *testing.T) {
	mr, client := newMiniredisClient(t)
	locker := NewLocker(client, logging.NewNopLogger(), WithLockTTL(time.Second))
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "booking:b-1")
	require.NoError(t, err)
	assert.True(t, mr.Exists("lexconnect:lock:booking:b-1"))

	require.NoError(t, release(ctx))
	assert.False(t, mr.Exists("lexconnect:lock:booking:b-1"))
}

func TestLocker_Contention(t *testing.T) {
	_, client := newMiniredisClient(t)
	locker := NewLocker(client, logging.NewNopLogger(), WithRetry(1, 10*time.Millisecond))
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "booking:b-2")
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, "booking:b-2")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeConflict))

	require.NoError(t, release(ctx))
	release2, err := locker.Acquire(ctx, "booking:b-2")
	require.NoError(t, err)
	require.NoError(t, release2(ctx))
}

func TestLocker_ReleaseAfterExpiry(t *testing.T) {
	mr, client := newMiniredisClient(t)
	locker := NewLocker(client, logging.NewNopLogger(), WithLockTTL(time.Second))
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "booking:b-3")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)
	assert.Equal(t, ErrLockNotHeld, release(ctx))
}

func TestLocker_ContextCancelled(t *testing.T) {
	_, client := newMiniredisClient(t)
	locker := NewLocker(client, logging.NewNopLogger(), WithRetry(100, time.Second))

	release, err := locker.Acquire(context.Background(), "busy")
	require.NoError(t, err)
	defer release(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = locker.Acquire(ctx, "busy")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

//Personal.AI order the ending
