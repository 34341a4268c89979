package storage

import (
	"sync"
	"time"
)

// settleTTL is how long a settled batch's snapshot stays observable
// before it is cleared.
const settleTTL = 3 * time.Second

// BatchProgress is a point-in-time snapshot of one upload batch.
type BatchProgress struct {
	Progress map[string]int    `json:"progress"`
	Errors   map[string]string `json:"errors"`
	Done     bool              `json:"done"`
}

// ProgressRegistry tracks per-batch upload progress so a caller can poll
// while a batch is in flight. Snapshots of settled batches are cleared a
// short fixed delay after settling.
type ProgressRegistry struct {
	mu      sync.Mutex
	batches map[string]*BatchProgress
	ttl     time.Duration
}

func NewProgressRegistry() *ProgressRegistry {
	return &ProgressRegistry{
		batches: make(map[string]*BatchProgress),
		ttl:     settleTTL,
	}
}

// Start registers a batch. A batch that gets another round of files
// keeps its accumulated state and is simply marked in flight again.
func (r *ProgressRegistry) Start(batchID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.batches[batchID]; ok {
		b.Done = false
		return
	}
	r.batches[batchID] = &BatchProgress{
		Progress: make(map[string]int),
		Errors:   make(map[string]string),
	}
}

// Update records progress for one file. Stale callbacks can arrive out of
// order from concurrent uploads; a lower percentage never overwrites a
// higher one.
func (r *ProgressRegistry) Update(batchID, name string, pct int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[batchID]
	if !ok {
		return
	}
	if pct > b.Progress[name] {
		b.Progress[name] = pct
	}
}

func (r *ProgressRegistry) Fail(batchID, name, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.batches[batchID]; ok {
		b.Errors[name] = msg
	}
}

// Settle marks the batch done and schedules its snapshot for removal.
func (r *ProgressRegistry) Settle(batchID string) {
	r.mu.Lock()
	if b, ok := r.batches[batchID]; ok {
		b.Done = true
	}
	r.mu.Unlock()

	time.AfterFunc(r.ttl, func() {
		r.mu.Lock()
		if b, ok := r.batches[batchID]; ok && b.Done {
			delete(r.batches, batchID)
		}
		r.mu.Unlock()
	})
}

// Snapshot returns a copy of the batch state, or false if the batch is
// unknown or already cleared.
func (r *ProgressRegistry) Snapshot(batchID string) (BatchProgress, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.batches[batchID]
	if !ok {
		return BatchProgress{}, false
	}
	out := BatchProgress{
		Progress: make(map[string]int, len(b.Progress)),
		Errors:   make(map[string]string, len(b.Errors)),
		Done:     b.Done,
	}
	for k, v := range b.Progress {
		out.Progress[k] = v
	}
	for k, v := range b.Errors {
		out.Errors[k] = v
	}
	return out, ok
}
