package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/turtacn/LexConnect/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LexConnect/pkg/errors"
)

var (
	ErrLockNotAcquired = errors.New(errors.ErrCodeConflict, "failed to acquire lock")
	ErrLockNotHeld     = errors.New(errors.ErrCodeConflict, "lock not held by this owner")
)

var unlockScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

type LockOption func(*Locker)

func WithLockTTL(ttl time.Duration) LockOption {
	return func(l *Locker) { l.ttl = ttl }
}

func WithRetry(count int, delay time.Duration) LockOption {
	return func(l *Locker) {
		l.retryCount = count
		l.retryDelay = delay
	}
}

// Locker hands out short-lived mutexes keyed by name.  Each acquisition
// stores a random token so only the holder can release it.
type Locker struct {
	client     *Client
	log        logging.Logger
	prefix     string
	ttl        time.Duration
	retryCount int
	retryDelay time.Duration
}

func NewLocker(client *Client, log logging.Logger, opts ...LockOption) *Locker {
	l := &Locker{
		client:     client,
		log:        log,
		prefix:     "lexconnect:lock:",
		ttl:        30 * time.Second,
		retryCount: 10,
		retryDelay: 50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Acquire blocks until name is locked, the retries run out or ctx ends.  The
// returned function releases the lock.
func (l *Locker) Acquire(ctx context.Context, name string) (func(context.Context) error, error) {
	key := l.prefix + name
	token := uuid.NewString()

	for attempt := 0; ; attempt++ {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeCacheError, "failed to acquire lock")
		}
		if ok {
			break
		}
		if attempt >= l.retryCount {
			return nil, ErrLockNotAcquired.WithDetail("name=" + name)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryDelay):
		}
	}

	release := func(ctx context.Context) error {
		n, err := unlockScript.Run(ctx, l.client.GetUnderlyingClient(), []string{key}, token).Int64()
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeCacheError, "failed to release lock")
		}
		if n == 0 {
			l.log.Warn("lock expired before release", logging.String("name", name))
			return ErrLockNotHeld
		}
		return nil
	}
	return release, nil
}

//Personal.AI order the ending
