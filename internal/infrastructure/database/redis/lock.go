package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/turtacn/recreation-potential/pkg/errors"
)

var ErrLockNotHeld = errors.New(errors.ErrCodeConflict, "lock not held by this owner")

var unlockScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

// Mutex is a single-owner lock.  Workers take one per snapshot version so the
// recompute of a reload event runs once across replicas.
type Mutex struct {
	client *Client
	key    string
	value  string
	ttl    time.Duration
}

func NewMutex(client *Client, name string, ttl time.Duration) *Mutex {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Mutex{
		client: client,
		key:    "lock:" + name,
		value:  uuid.NewString(),
		ttl:    ttl,
	}
}

// TryLock attempts the lock once.
func (m *Mutex) TryLock(ctx context.Context) (bool, error) {
	ok, err := m.client.SetNX(ctx, m.key, m.value, m.ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, errors.CodeCacheError, "failed to set lock")
	}
	return ok, nil
}

func (m *Mutex) Unlock(ctx context.Context) error {
	res, err := unlockScript.Run(ctx, m.client.Underlying(), []string{m.key}, m.value).Int64()
	if err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "failed to release lock")
	}
	if res == 0 {
		return ErrLockNotHeld
	}
	return nil
}

//Personal.AI order the ending
