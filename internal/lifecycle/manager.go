package lifecycle

import (
	"context"
	"log"
	"sync"
	"time"
)

// DeleteFunc removes a material's raw upload from storage
type DeleteFunc func(ctx context.Context, materialID, format string) error

// entry tracks one uploaded file
type entry struct {
	format     string
	uploadedAt time.Time
	deleteAt   time.Time // zero until MarkProcessed schedules deletion
}

// Manager tracks uploaded files and guarantees eventual deletion of
// their raw content. Analysis results outlive the raw upload; the raw
// text does not outlive its retention window.
type Manager struct {
	mu       sync.Mutex
	entries  map[string]*entry
	maxAge   time.Duration
	deleteFn DeleteFunc

	stop chan struct{}
	done chan struct{}
}

// NewManager creates a manager and starts its background sweep.
// maxAge caps how long an upload may exist regardless of processing
// state; sweepInterval controls how often expiry is checked.
func NewManager(maxAge, sweepInterval time.Duration, deleteFn DeleteFunc) *Manager {
	m := &Manager{
		entries:  make(map[string]*entry),
		maxAge:   maxAge,
		deleteFn: deleteFn,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go m.sweepLoop(sweepInterval)

	return m
}

// Track registers an uploaded file
func (m *Manager) Track(materialID, format string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[materialID] = &entry{
		format:     format,
		uploadedAt: time.Now(),
	}
}

// MarkProcessed schedules deletion of the raw file after the given
// retention window. Fire-and-forget: the caller does not wait on the
// deletion itself.
func (m *Manager) MarkProcessed(materialID string, deleteAfter time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[materialID]
	if !ok {
		return
	}
	e.deleteAt = time.Now().Add(deleteAfter)
}

// Delete removes the raw file immediately. Idempotent: deleting an
// untracked or already-deleted material is a no-op.
func (m *Manager) Delete(ctx context.Context, materialID string) error {
	m.mu.Lock()
	e, ok := m.entries[materialID]
	if ok {
		delete(m.entries, materialID)
	}
	m.mu.Unlock()

	if !ok {
		return nil
	}

	return m.deleteFn(ctx, materialID, e.format)
}

// Tracked returns the number of files currently tracked
func (m *Manager) Tracked() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// sweepLoop periodically deletes expired entries
func (m *Manager) sweepLoop(interval time.Duration) {
	defer close(m.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep deletes entries whose retention window has elapsed or that
// exceeded the maximum age without being processed
func (m *Manager) sweep() {
	now := time.Now()

	m.mu.Lock()
	var expired []string
	for id, e := range m.entries {
		scheduled := !e.deleteAt.IsZero() && now.After(e.deleteAt)
		tooOld := now.Sub(e.uploadedAt) > m.maxAge
		if scheduled || tooOld {
			expired = append(expired, id)
		}
	}
	m.mu.Unlock()

	for _, id := range expired {
		if err := m.Delete(context.Background(), id); err != nil {
			log.Printf("Failed to delete expired upload %s: %v", id, err)
		}
	}
}

// Close stops the sweep loop and deletes all tracked files
func (m *Manager) Close() error {
	close(m.stop)
	<-m.done

	m.mu.Lock()
	ids := make([]string, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		if err := m.Delete(context.Background(), id); err != nil {
			log.Printf("Failed to delete upload %s on shutdown: %v", id, err)
		}
	}

	return nil
}
