package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/iho/ledgersync/internal/domain"
)

// LocalRunLocker serializes runs inside one process. Expired entries are
// treated as free so a panicking run cannot block the account forever.
type LocalRunLocker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	clock func() time.Time
}

// NewLocalRunLocker creates a new LocalRunLocker.
func NewLocalRunLocker() *LocalRunLocker {
	return &LocalRunLocker{
		held:  make(map[string]time.Time),
		clock: time.Now,
	}
}

// TryLock takes key unless it is held and not yet expired.
func (l *LocalRunLocker) TryLock(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if expires, ok := l.held[key]; ok && now.Before(expires) {
		return false, nil
	}
	l.held[key] = now.Add(ttl)
	return true, nil
}

// Unlock releases key.
func (l *LocalRunLocker) Unlock(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

type discardRunRepository struct{}

func (discardRunRepository) Create(context.Context, *domain.SyncRun) error { return nil }
func (discardRunRepository) Update(context.Context, *domain.SyncRun) error { return nil }
func (discardRunRepository) ListRecent(context.Context, int) ([]*domain.SyncRun, error) {
	return nil, nil
}
