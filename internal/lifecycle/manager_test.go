package lifecycle

import (
	"context"
	"sync"
	"testing"
	"time"
)

// recordingDeleter counts deletions per material
type recordingDeleter struct {
	mu      sync.Mutex
	deleted map[string]int
}

func newRecordingDeleter() *recordingDeleter {
	return &recordingDeleter{deleted: make(map[string]int)}
}

func (d *recordingDeleter) delete(ctx context.Context, materialID, format string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.deleted[materialID]++
	return nil
}

func (d *recordingDeleter) count(materialID string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.deleted[materialID]
}

func TestManager(t *testing.T) {
	t.Run("Track and delete", func(t *testing.T) {
		deleter := newRecordingDeleter()
		m := NewManager(time.Hour, time.Hour, deleter.delete)
		defer m.Close()

		m.Track("mat-1", "txt")
		if m.Tracked() != 1 {
			t.Errorf("Tracked = %d, want 1", m.Tracked())
		}

		if err := m.Delete(context.Background(), "mat-1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if m.Tracked() != 0 {
			t.Errorf("Tracked = %d, want 0 after delete", m.Tracked())
		}
		if deleter.count("mat-1") != 1 {
			t.Errorf("Delete called %d times, want 1", deleter.count("mat-1"))
		}
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		deleter := newRecordingDeleter()
		m := NewManager(time.Hour, time.Hour, deleter.delete)
		defer m.Close()

		m.Track("mat-2", "pdf")
		ctx := context.Background()

		if err := m.Delete(ctx, "mat-2"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := m.Delete(ctx, "mat-2"); err != nil {
			t.Errorf("Second delete should be a no-op, got %v", err)
		}
		if err := m.Delete(ctx, "never-tracked"); err != nil {
			t.Errorf("Deleting an untracked material should be a no-op, got %v", err)
		}
		if deleter.count("mat-2") != 1 {
			t.Errorf("Delete called %d times, want 1", deleter.count("mat-2"))
		}
	})

	t.Run("Retention expiry after processing", func(t *testing.T) {
		deleter := newRecordingDeleter()
		m := NewManager(time.Hour, 5*time.Millisecond, deleter.delete)
		defer m.Close()

		m.Track("mat-3", "txt")
		m.MarkProcessed("mat-3", 1*time.Millisecond)

		deadline := time.Now().Add(2 * time.Second)
		for deleter.count("mat-3") == 0 && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}

		if deleter.count("mat-3") != 1 {
			t.Errorf("Expected sweep to delete the raw file, deletions = %d", deleter.count("mat-3"))
		}
		if m.Tracked() != 0 {
			t.Errorf("Tracked = %d, want 0 after sweep", m.Tracked())
		}
	})

	t.Run("Max age expiry without processing", func(t *testing.T) {
		deleter := newRecordingDeleter()
		m := NewManager(1*time.Millisecond, 5*time.Millisecond, deleter.delete)
		defer m.Close()

		m.Track("mat-4", "docx")

		deadline := time.Now().Add(2 * time.Second)
		for deleter.count("mat-4") == 0 && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}

		if deleter.count("mat-4") != 1 {
			t.Errorf("Expected max-age sweep to delete the upload, deletions = %d", deleter.count("mat-4"))
		}
	})

	t.Run("Close deletes remaining entries", func(t *testing.T) {
		deleter := newRecordingDeleter()
		m := NewManager(time.Hour, time.Hour, deleter.delete)

		m.Track("mat-5", "txt")
		m.Track("mat-6", "pdf")

		if err := m.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if deleter.count("mat-5") != 1 || deleter.count("mat-6") != 1 {
			t.Error("Close should delete all tracked uploads")
		}
	})
}
