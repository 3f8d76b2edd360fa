package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only while it still belongs to the caller,
// so an expired lock taken over by another process is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RunLock implements usecase.RunLocker with SET NX and a TTL.
type RunLock struct {
	client *redis.Client
	prefix string
	owner  string
}

// NewRunLock creates a new RunLock. owner identifies this process in the lock value.
func NewRunLock(client *redis.Client, owner string) *RunLock {
	return &RunLock{
		client: client,
		prefix: "ledgersync:lock:",
		owner:  owner,
	}
}

// TryLock takes the lock unless someone else holds it.
func (l *RunLock) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, l.prefix+key, l.owner, ttl).Result()
}

// Unlock releases the lock if this process still owns it.
func (l *RunLock) Unlock(ctx context.Context, key string) error {
	return releaseScript.Run(ctx, l.client, []string{l.prefix + key}, l.owner).Err()
}
