package memory

import (
	"context"
	"sync"

	"github.com/iho/ledgersync/internal/domain"
)

// SyncRunRepository keeps the latest runs in process. Older runs are dropped
// once capacity is reached.
type SyncRunRepository struct {
	mu       sync.RWMutex
	runs     []domain.SyncRun
	capacity int
}

// NewSyncRunRepository creates a new SyncRunRepository.
func NewSyncRunRepository(capacity int) *SyncRunRepository {
	if capacity <= 0 {
		capacity = 100
	}
	return &SyncRunRepository{capacity: capacity}
}

// Create records the start of a run.
func (r *SyncRunRepository) Create(_ context.Context, run *domain.SyncRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.runs = append(r.runs, *run)
	if len(r.runs) > r.capacity {
		r.runs = append([]domain.SyncRun(nil), r.runs[len(r.runs)-r.capacity:]...)
	}
	return nil
}

// Update stores the outcome of a run. Unknown runs are ignored.
func (r *SyncRunRepository) Update(_ context.Context, run *domain.SyncRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.runs {
		if r.runs[i].ID == run.ID {
			r.runs[i] = *run
			return nil
		}
	}
	return nil
}

// ListRecent returns the latest runs, newest first.
func (r *SyncRunRepository) ListRecent(_ context.Context, limit int) ([]*domain.SyncRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.runs) {
		limit = len(r.runs)
	}

	out := make([]*domain.SyncRun, 0, limit)
	for i := len(r.runs) - 1; i >= 0 && len(out) < limit; i-- {
		run := r.runs[i]
		out = append(out, &run)
	}
	return out, nil
}
